package usecase

import (
	"context"
	"io"
	"testing"

	"coursecatalog/backend/domain"
	"coursecatalog/backend/models"
	"coursecatalog/backend/repository"
	"coursecatalog/backend/testutil"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakePayments struct {
	balance float64
	err     error
}

func (f *fakePayments) WalletBalance(string) (float64, error) { return f.balance, f.err }

type fakeSubscriptions struct {
	fee      float64
	notified []string
	err      error
}

func (f *fakeSubscriptions) CancelFee(domain.Course) (float64, error) { return f.fee, nil }

func (f *fakeSubscriptions) NotifyCancellation(c domain.Course) error {
	if f.err != nil {
		return f.err
	}
	f.notified = append(f.notified, c.ID)
	return nil
}

type fixture struct {
	db            *gorm.DB
	commands      CourseCommandUseCase
	queries       CourseQueryUseCase
	payments      *fakePayments
	subscriptions *fakeSubscriptions
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	db := testutil.NewTestDB(t)
	qs := repository.NewCourseQueryService(db)
	f := &fixture{
		db:            db,
		payments:      &fakePayments{balance: 100},
		subscriptions: &fakeSubscriptions{fee: 10},
		queries:       NewCourseQueryUseCase(qs),
	}
	f.commands = NewCourseCommandUseCase(repository.NewUnitOfWork(db), qs, f.payments, f.subscriptions, log)
	return f
}

func (f *fixture) create(t *testing.T, name string) *domain.Course {
	t.Helper()
	course, err := f.commands.CreateCourse(context.Background(), "creator", domain.CourseCreate{Name: name, Price: 10})
	require.NoError(t, err)
	return course
}

func TestCreateCourseRejectsDuplicateName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	course := f.create(t, "C Programming")
	assert.Equal(t, "creator", course.CreatorID)
	assert.True(t, course.Active)

	_, err := f.commands.CreateCourse(ctx, "other", domain.CourseCreate{Name: "C Programming"})
	assert.ErrorIs(t, err, domain.ErrCourseNameAlreadyExists)

	var n int64
	require.NoError(t, f.db.Model(&models.Course{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestUpdateCourse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := f.create(t, "Go")
	f.create(t, "Rust")

	t.Run("zero price is applied", func(t *testing.T) {
		price := 0.0
		updated, err := f.commands.UpdateCourse(ctx, course.ID, domain.CourseUpdate{Price: &price})
		require.NoError(t, err)
		assert.Equal(t, 0.0, updated.Price)
		assert.Equal(t, "Go", updated.Name)
	})

	t.Run("rename onto existing name", func(t *testing.T) {
		name := "Rust"
		_, err := f.commands.UpdateCourse(ctx, course.ID, domain.CourseUpdate{Name: &name})
		assert.ErrorIs(t, err, domain.ErrCourseNameAlreadyExists)
	})

	t.Run("keeping own name", func(t *testing.T) {
		name := "Go"
		_, err := f.commands.UpdateCourse(ctx, course.ID, domain.CourseUpdate{Name: &name})
		assert.NoError(t, err)
	})

	t.Run("missing course", func(t *testing.T) {
		_, err := f.commands.UpdateCourse(ctx, "missing", domain.CourseUpdate{})
		assert.ErrorIs(t, err, domain.ErrCourseNotFound)
	})
}

func TestCancelCourse(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes when funds cover the fee", func(t *testing.T) {
		f := newFixture(t)
		course := f.create(t, "Go")

		require.NoError(t, f.commands.CancelCourse(ctx, course.ID))
		assert.Equal(t, []string{course.ID}, f.subscriptions.notified)

		_, err := f.queries.FetchCourseByID(ctx, course.ID)
		assert.ErrorIs(t, err, domain.ErrCourseNotFound)
	})

	t.Run("balance equal to fee is not enough", func(t *testing.T) {
		f := newFixture(t)
		course := f.create(t, "Go")
		f.payments.balance = 10

		err := f.commands.CancelCourse(ctx, course.ID)
		assert.ErrorIs(t, err, domain.ErrNotEnoughFunds)
		assert.Empty(t, f.subscriptions.notified)

		_, err = f.queries.FetchCourseByID(ctx, course.ID)
		assert.NoError(t, err)
	})

	t.Run("outbound failure keeps the course", func(t *testing.T) {
		f := newFixture(t)
		course := f.create(t, "Go")
		f.payments.err = errors.New("connection refused")

		err := f.commands.CancelCourse(ctx, course.ID)
		require.Error(t, err)
		var domainErr *domain.Error
		assert.False(t, errors.As(err, &domainErr))

		_, err = f.queries.FetchCourseByID(ctx, course.ID)
		assert.NoError(t, err)
	})

	t.Run("missing course", func(t *testing.T) {
		f := newFixture(t)
		assert.ErrorIs(t, f.commands.CancelCourse(ctx, "missing"), domain.ErrCourseNotFound)
	})
}

func TestCollaboratorLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := f.create(t, "Go")

	_, err := f.commands.AddCollaborator(ctx, course.ID, "u1")
	require.NoError(t, err)
	_, err = f.commands.AddCollaborator(ctx, course.ID, "u1")
	assert.ErrorIs(t, err, domain.ErrUserAlreadyInCourse)

	involved, err := f.commands.UserInvolved(ctx, course.ID, "u1")
	require.NoError(t, err)
	assert.True(t, involved)

	collabs, err := f.queries.FetchCollaborators(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, domain.IDs(collabs))

	require.NoError(t, f.commands.DeactivateCollaborator(ctx, course.ID, "u1"))
	_, err = f.queries.FetchCollaborators(ctx, course.ID)
	assert.ErrorIs(t, err, domain.ErrNoCollabsInCourse)

	_, err = f.commands.AddCollaborator(ctx, "missing", "u1")
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)
}

func TestStudentsAreSeparateFromCollaborators(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := f.create(t, "Go")

	student, err := f.commands.AddStudent(ctx, course.ID, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, student.Role)

	students, err := f.queries.FetchStudents(ctx, course.ID)
	require.NoError(t, err)
	assert.Len(t, students, 1)

	_, err = f.queries.FetchCollaborators(ctx, course.ID)
	assert.ErrorIs(t, err, domain.ErrNoCollabsInCourse)

	require.NoError(t, f.commands.DeactivateStudent(ctx, course.ID, "s1"))
	_, err = f.queries.FetchStudents(ctx, course.ID)
	assert.ErrorIs(t, err, domain.ErrNoStudentsInCourse)
}

func TestContentIsGroupedIntoChapters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := f.create(t, "Go")

	for _, c := range []domain.ContentCreate{
		{ChapterTitle: "b", Chapter: 1, Order: 1},
		{ChapterTitle: "a", Chapter: 1, Order: 0},
		{ChapterTitle: "c", Chapter: 2, Order: 0},
	} {
		_, err := f.commands.AddContent(ctx, course.ID, c)
		require.NoError(t, err)
	}
	_, err := f.commands.AddContent(ctx, course.ID, domain.ContentCreate{ChapterTitle: "dup", Chapter: 2})
	assert.ErrorIs(t, err, domain.ErrChapterAlreadyInCourse)

	chapters, err := f.queries.FetchContent(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, chapters, 2)
	assert.Equal(t, "a", chapters[0].Content[0].ChapterTitle)
	assert.Equal(t, "b", chapters[0].Content[1].ChapterTitle)
	assert.Len(t, chapters[1].Content, 1)
}

func TestUpdateContentOfUnknownCourse(t *testing.T) {
	f := newFixture(t)
	_, err := f.commands.UpdateContent(context.Background(), "missing", "x", domain.ContentUpdate{})
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)
}

func TestReviewsFeedRecommendations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := f.create(t, "Go")

	_, err := f.commands.AddReview(ctx, course.ID, domain.ReviewCreate{ID: "u1", Recommended: true})
	require.NoError(t, err)
	_, err = f.commands.AddReview(ctx, course.ID, domain.ReviewCreate{ID: "u1"})
	assert.ErrorIs(t, err, domain.ErrUserAlreadyReviewedCourse)
	_, err = f.commands.AddReview(ctx, course.ID, domain.ReviewCreate{ID: "u2"})
	require.NoError(t, err)

	fetched, err := f.queries.FetchCourseByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Recommendations{Recommended: 1, Total: 2}, fetched.Recommendations)

	reviews, err := f.queries.FetchReviews(ctx, course.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}

func TestUserIsCreator(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := f.create(t, "Go")

	ok, err := f.queries.UserIsCreator(ctx, course.ID, "creator")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.queries.UserIsCreator(ctx, course.ID, "someone")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = f.queries.UserIsCreator(ctx, "missing", "creator")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFetchCategoriesEmpty(t *testing.T) {
	f := newFixture(t)
	_, err := f.queries.FetchCategories(context.Background())
	assert.True(t, domain.IsNoneFound(err))
}
