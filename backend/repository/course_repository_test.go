package repository

import (
	"context"
	"testing"

	"coursecatalog/backend/domain"
	"coursecatalog/backend/models"
	"coursecatalog/backend/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func begin(t *testing.T, db *gorm.DB) Tx {
	t.Helper()
	tx, err := NewUnitOfWork(db).Begin(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback() })
	return tx
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestCreateAndFindCourse(t *testing.T) {
	db := testutil.NewTestDB(t)
	tx := begin(t, db)

	id, err := tx.Create("creator", domain.CourseCreate{
		Name:       "Go",
		Price:      10,
		Categories: []string{"programming", "backend"},
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	course, err := NewCourseQueryService(db).FindByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, course)
	assert.Equal(t, "Go", course.Name)
	assert.True(t, course.Active)
	assert.ElementsMatch(t, []string{"programming", "backend"}, course.Categories)
	assert.NotZero(t, course.CreatedAt)
}

func TestFindByNameReturnsNilWhenMissing(t *testing.T) {
	tx := begin(t, testutil.NewTestDB(t))

	course, err := tx.FindByName("missing")
	assert.NoError(t, err)
	assert.Nil(t, course)
}

func TestRollbackDiscardsWrites(t *testing.T) {
	db := testutil.NewTestDB(t)
	tx := begin(t, db)

	_, err := tx.Create("creator", domain.CourseCreate{Name: "Discarded"})
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())
	assert.NoError(t, tx.Rollback())

	var n int64
	require.NoError(t, db.Model(&models.Course{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestRollbackAfterCommitIsNoop(t *testing.T) {
	tx := begin(t, testutil.NewTestDB(t))
	require.NoError(t, tx.Commit())
	assert.NoError(t, tx.Rollback())
	assert.Error(t, tx.Commit())
}

func TestUpdateMergesPresentFieldsOnly(t *testing.T) {
	db := testutil.NewTestDB(t)
	seed := testutil.SeedCourse(t, db, "creator", "Go", func(c *models.Course) {
		c.Price = 10
		c.Description = "old"
		c.Categories = models.NewCategories("", []string{"a"})
	})

	tx := begin(t, db)
	price := 0.0
	categories := []string{"b", "c"}
	require.NoError(t, tx.Update(seed.ID, domain.CourseUpdate{Price: &price, Categories: &categories}))

	course, err := tx.FindByID(seed.ID)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.Equal(t, 0.0, course.Price)
	assert.Equal(t, "old", course.Description)
	assert.Equal(t, "Go", course.Name)
	assert.ElementsMatch(t, []string{"b", "c"}, course.Categories)
}

func TestUpdateMissingCourse(t *testing.T) {
	tx := begin(t, testutil.NewTestDB(t))
	err := tx.Update("nope", domain.CourseUpdate{Name: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)
}

// The unique index on names backs the use case's lookup when two writers
// race past it.
func TestUniqueNameViolationIsConflict(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.SeedCourse(t, db, "creator", "Go")
	other := testutil.SeedCourse(t, db, "creator", "Rust")

	tx := begin(t, db)
	_, err := tx.Create("someone", domain.CourseCreate{Name: "Go"})
	assert.ErrorIs(t, err, domain.ErrCourseNameAlreadyExists)
	require.NoError(t, tx.Rollback())

	tx = begin(t, db)
	err = tx.Update(other.ID, domain.CourseUpdate{Name: strPtr("Go")})
	assert.ErrorIs(t, err, domain.ErrCourseNameAlreadyExists)
}

func TestDeleteCascadesToChildren(t *testing.T) {
	db := testutil.NewTestDB(t)
	seed := testutil.SeedCourse(t, db, "creator", "Go", func(c *models.Course) {
		c.Categories = models.NewCategories("", []string{"a"})
	})

	tx := begin(t, db)
	_, err := tx.AddCollaborator(seed.ID, "u1", domain.RoleCollab)
	require.NoError(t, err)
	_, err = tx.AddContent(seed.ID, domain.ContentCreate{ChapterTitle: "intro"})
	require.NoError(t, err)
	_, err = tx.AddReview(seed.ID, domain.ReviewCreate{ID: "u2", Recommended: true})
	require.NoError(t, err)
	require.NoError(t, tx.DeleteByID(seed.ID))
	require.NoError(t, tx.Commit())

	for _, table := range []interface{}{&models.Course{}, &models.Category{}, &models.Collab{}, &models.Content{}, &models.Review{}} {
		var n int64
		require.NoError(t, db.Model(table).Count(&n).Error)
		assert.Zero(t, n)
	}
}

func TestAddCollaboratorRejectsActiveDuplicate(t *testing.T) {
	db := testutil.NewTestDB(t)
	seed := testutil.SeedCourse(t, db, "creator", "Go")
	tx := begin(t, db)

	collab, err := tx.AddCollaborator(seed.ID, "u1", domain.RoleCollab)
	require.NoError(t, err)
	assert.Equal(t, "u1", collab.ID)
	assert.True(t, collab.Active)

	_, err = tx.AddCollaborator(seed.ID, "u1", domain.RoleCollab)
	assert.ErrorIs(t, err, domain.ErrUserAlreadyInCourse)

	_, err = tx.AddCollaborator(seed.ID, "u1", domain.RoleStudent)
	assert.NoError(t, err)
}

func TestReAddAfterDeactivation(t *testing.T) {
	db := testutil.NewTestDB(t)
	seed := testutil.SeedCourse(t, db, "creator", "Go")
	tx := begin(t, db)

	_, err := tx.AddCollaborator(seed.ID, "u1", domain.RoleStudent)
	require.NoError(t, err)
	require.NoError(t, tx.DeactivateCollaborator(seed.ID, "u1", domain.RoleStudent))
	_, err = tx.AddCollaborator(seed.ID, "u1", domain.RoleStudent)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	var rows []models.Collab
	require.NoError(t, db.Where("course_id = ?", seed.ID).Find(&rows).Error)
	assert.Len(t, rows, 2)
}

func TestAddContentRejectsTakenPosition(t *testing.T) {
	db := testutil.NewTestDB(t)
	seed := testutil.SeedCourse(t, db, "creator", "Go")
	tx := begin(t, db)

	_, err := tx.AddContent(seed.ID, domain.ContentCreate{ChapterTitle: "one", Chapter: 1, Order: 0})
	require.NoError(t, err)
	_, err = tx.AddContent(seed.ID, domain.ContentCreate{ChapterTitle: "dup", Chapter: 1, Order: 0})
	assert.ErrorIs(t, err, domain.ErrChapterAlreadyInCourse)
}

func TestUpdateContent(t *testing.T) {
	db := testutil.NewTestDB(t)
	seed := testutil.SeedCourse(t, db, "creator", "Go")
	tx := begin(t, db)

	first, err := tx.AddContent(seed.ID, domain.ContentCreate{ChapterTitle: "one", Chapter: 1, Order: 0})
	require.NoError(t, err)
	_, err = tx.AddContent(seed.ID, domain.ContentCreate{ChapterTitle: "two", Chapter: 1, Order: 1})
	require.NoError(t, err)

	t.Run("same position with other fields", func(t *testing.T) {
		updated, err := tx.UpdateContent(seed.ID, first.ID, domain.ContentUpdate{Chapter: intPtr(1), Subtitle: strPtr("sub")})
		require.NoError(t, err)
		assert.Equal(t, "sub", updated.Subtitle)
		assert.Equal(t, "one", updated.ChapterTitle)
	})

	t.Run("collision", func(t *testing.T) {
		_, err := tx.UpdateContent(seed.ID, first.ID, domain.ContentUpdate{Order: intPtr(1)})
		assert.ErrorIs(t, err, domain.ErrChapterAlreadyInCourse)
	})

	t.Run("move", func(t *testing.T) {
		updated, err := tx.UpdateContent(seed.ID, first.ID, domain.ContentUpdate{Chapter: intPtr(2)})
		require.NoError(t, err)
		assert.Equal(t, 2, updated.Chapter)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := tx.UpdateContent(seed.ID, "missing", domain.ContentUpdate{})
		assert.ErrorIs(t, err, domain.ErrContentNotFound)
	})
}

func TestAddReviewOncePerUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	seed := testutil.SeedCourse(t, db, "creator", "Go")
	tx := begin(t, db)

	review, err := tx.AddReview(seed.ID, domain.ReviewCreate{ID: "u1", Recommended: true, Review: "great"})
	require.NoError(t, err)
	assert.NotZero(t, review.Date)

	_, err = tx.AddReview(seed.ID, domain.ReviewCreate{ID: "u1"})
	assert.ErrorIs(t, err, domain.ErrUserAlreadyReviewedCourse)
}

func TestUserInvolved(t *testing.T) {
	db := testutil.NewTestDB(t)
	seed := testutil.SeedCourse(t, db, "creator", "Go")
	tx := begin(t, db)

	_, err := tx.AddCollaborator(seed.ID, "collab", domain.RoleCollab)
	require.NoError(t, err)
	_, err = tx.AddCollaborator(seed.ID, "student", domain.RoleStudent)
	require.NoError(t, err)
	_, err = tx.AddCollaborator(seed.ID, "former", domain.RoleCollab)
	require.NoError(t, err)
	require.NoError(t, tx.DeactivateCollaborator(seed.ID, "former", domain.RoleCollab))

	cases := map[string]bool{
		"creator":  true,
		"collab":   true,
		"student":  false,
		"former":   false,
		"stranger": false,
	}
	for user, want := range cases {
		got, err := tx.UserInvolved(seed.ID, user)
		require.NoError(t, err)
		assert.Equal(t, want, got, user)
	}
}
