package repository

import (
	"context"
	"testing"
	"time"

	"coursecatalog/backend/domain"
	"coursecatalog/backend/models"
	"coursecatalog/backend/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func names(page *domain.PaginatedCourses) []string {
	out := make([]string, 0, len(page.Courses))
	for _, c := range page.Courses {
		out = append(out, c.Name)
	}
	return out
}

func seedCatalog(t *testing.T, db *gorm.DB) map[string]*models.Course {
	t.Helper()

	courses := map[string]*models.Course{
		"go": testutil.SeedCourse(t, db, "alice", "Go", func(c *models.Course) {
			c.Price = 0
			c.Language = "en"
			c.Description = "Learn concurrency"
			c.Categories = models.NewCategories("", []string{"programming"})
		}),
		"rust": testutil.SeedCourse(t, db, "alice", "Rust", func(c *models.Course) {
			c.Price = 20
			c.Language = "en"
			c.SubscriptionID = 2
			c.Categories = models.NewCategories("", []string{"programming", "systems"})
		}),
		"cooking": testutil.SeedCourse(t, db, "bob", "Cooking", func(c *models.Course) {
			c.Price = 5
			c.Language = "es"
			c.Country = "AR"
			c.Categories = models.NewCategories("", []string{"food"})
		}),
		"old": testutil.SeedCourse(t, db, "bob", "Old", func(c *models.Course) {
			c.Active = false
		}),
	}

	require.NoError(t, db.Create(models.NewCollab(courses["rust"].ID, "carol", domain.RoleCollab)).Error)
	former := models.NewCollab(courses["cooking"].ID, "carol", domain.RoleCollab)
	former.Active = false
	require.NoError(t, db.Create(former).Error)
	require.NoError(t, db.Create(models.NewCollab(courses["go"].ID, "dave", domain.RoleStudent)).Error)
	return courses
}

func TestFindByFilters(t *testing.T) {
	db := testutil.NewTestDB(t)
	courses := seedCatalog(t, db)
	qs := NewCourseQueryService(db)

	tests := []struct {
		name   string
		filter domain.CourseFilter
		want   []string
	}{
		{"active by default", domain.CourseFilter{}, []string{"Go", "Rust", "Cooking"}},
		{"inactive included", domain.CourseFilter{InactiveCourses: true}, []string{"Go", "Rust", "Cooking", "Old"}},
		{"ids override active", domain.CourseFilter{IDs: []string{courses["old"].ID, courses["go"].ID}}, []string{"Go", "Old"}},
		{"creator", domain.CourseFilter{CreatorID: strPtr("bob")}, []string{"Cooking"}},
		{"name", domain.CourseFilter{Name: strPtr("Rust")}, []string{"Rust"}},
		{"language", domain.CourseFilter{Language: strPtr("en")}, []string{"Go", "Rust"}},
		{"country", domain.CourseFilter{Country: strPtr("AR")}, []string{"Cooking"}},
		{"subscription", domain.CourseFilter{SubscriptionID: intPtr(2)}, []string{"Rust"}},
		{"category", domain.CourseFilter{Category: strPtr("programming")}, []string{"Go", "Rust"}},
		{"free only", domain.CourseFilter{Free: true}, []string{"Go"}},
		{"paid only", domain.CourseFilter{Paid: true}, []string{"Rust", "Cooking"}},
		{"free and paid", domain.CourseFilter{Free: true, Paid: true}, []string{"Go", "Rust", "Cooking"}},
		{"text in description", domain.CourseFilter{Text: strPtr("CONCURRENCY")}, []string{"Go"}},
		{"text in name", domain.CourseFilter{Text: strPtr("rus")}, []string{"Rust"}},
		{"active collab", domain.CourseFilter{CollabID: strPtr("carol")}, []string{"Rust"}},
		{"any collab", domain.CourseFilter{CollabID: strPtr("carol"), InactiveCollab: true}, []string{"Rust", "Cooking"}},
		{"student", domain.CourseFilter{StudentID: strPtr("dave")}, []string{"Go"}},
		{"combined", domain.CourseFilter{Language: strPtr("en"), Paid: true}, []string{"Rust"}},
		{"text and creator", domain.CourseFilter{CreatorID: strPtr("bob"), Text: strPtr("concurrency")}, []string{}},
		{"text and language", domain.CourseFilter{Language: strPtr("es"), Text: strPtr("o")}, []string{"Cooking"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := qs.FindByFilters(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, names(page))
			assert.EqualValues(t, len(tt.want), page.Count)
		})
	}
}

func TestFindByFiltersPaginates(t *testing.T) {
	db := testutil.NewTestDB(t)
	seedCatalog(t, db)
	qs := NewCourseQueryService(db)

	first, err := qs.FindByFilters(context.Background(), domain.CourseFilter{Page: domain.Page{Limit: 2}})
	require.NoError(t, err)
	second, err := qs.FindByFilters(context.Background(), domain.CourseFilter{Page: domain.Page{Limit: 2, Offset: 1}})
	require.NoError(t, err)

	assert.Len(t, first.Courses, 2)
	assert.Len(t, second.Courses, 1)
	assert.EqualValues(t, 3, first.Count)
	assert.EqualValues(t, 3, second.Count)
	assert.NotContains(t, names(first), second.Courses[0].Name)
}

func TestFindAllIncludesRecommendations(t *testing.T) {
	db := testutil.NewTestDB(t)
	seed := testutil.SeedCourse(t, db, "alice", "Go")
	require.NoError(t, db.Create(&models.Review{CourseID: seed.ID, UserID: "u1", Recommended: true}).Error)
	require.NoError(t, db.Create(&models.Review{CourseID: seed.ID, UserID: "u2"}).Error)

	page, err := NewCourseQueryService(db).FindAll(context.Background(), domain.Page{})
	require.NoError(t, err)
	require.Len(t, page.Courses, 1)
	assert.Equal(t, domain.Recommendations{Recommended: 1, Total: 2}, page.Courses[0].Recommendations)
}

func TestFindAllCategoriesDeduplicates(t *testing.T) {
	db := testutil.NewTestDB(t)
	seedCatalog(t, db)

	labels, err := NewCourseQueryService(db).FindAllCategories(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"programming", "systems", "food"}, labels)
}

func TestFindCollaborators(t *testing.T) {
	db := testutil.NewTestDB(t)
	courses := seedCatalog(t, db)
	qs := NewCourseQueryService(db)
	ctx := context.Background()

	collabs, err := qs.FindCollaborators(ctx, courses["rust"].ID, domain.RoleCollab)
	require.NoError(t, err)
	assert.Equal(t, []string{"carol"}, domain.IDs(collabs))

	_, err = qs.FindCollaborators(ctx, courses["cooking"].ID, domain.RoleCollab)
	assert.ErrorIs(t, err, domain.ErrNoCollabsInCourse)

	_, err = qs.FindCollaborators(ctx, courses["rust"].ID, domain.RoleStudent)
	assert.ErrorIs(t, err, domain.ErrNoStudentsInCourse)

	_, err = qs.FindCollaborators(ctx, "missing", domain.RoleCollab)
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)
}

func TestFetchContentSortedAndActiveOnly(t *testing.T) {
	db := testutil.NewTestDB(t)
	seed := testutil.SeedCourse(t, db, "alice", "Go")
	for _, c := range []domain.ContentCreate{
		{ChapterTitle: "c2o0", Chapter: 2, Order: 0},
		{ChapterTitle: "c1o1", Chapter: 1, Order: 1},
		{ChapterTitle: "c1o0", Chapter: 1, Order: 0},
	} {
		require.NoError(t, db.Create(models.NewContent(seed.ID, c)).Error)
	}
	hidden := models.NewContent(seed.ID, domain.ContentCreate{ChapterTitle: "hidden", Chapter: 3})
	hidden.Active = false
	require.NoError(t, db.Create(hidden).Error)

	content, err := NewCourseQueryService(db).FetchContent(context.Background(), seed.ID)
	require.NoError(t, err)

	titles := make([]string, 0, len(content))
	for _, c := range content {
		titles = append(titles, c.ChapterTitle)
	}
	assert.Equal(t, []string{"c1o0", "c1o1", "c2o0"}, titles)
}

func TestFetchContentAndReviewsEmpty(t *testing.T) {
	db := testutil.NewTestDB(t)
	seed := testutil.SeedCourse(t, db, "alice", "Go")
	qs := NewCourseQueryService(db)
	ctx := context.Background()

	_, err := qs.FetchContent(ctx, seed.ID)
	assert.ErrorIs(t, err, domain.ErrContentNotFound)
	_, err = qs.FetchReviews(ctx, seed.ID)
	assert.ErrorIs(t, err, domain.ErrReviewsNotFound)
	_, err = qs.FetchReviews(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)
}

func TestCategoryMetrics(t *testing.T) {
	db := testutil.NewTestDB(t)
	seedCatalog(t, db)

	metrics, err := NewCourseQueryService(db).CategoryMetrics(context.Background(), 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, metrics.Count)
	assert.Equal(t, []domain.CategoryMetric{
		{Category: "programming", Count: 2},
		{Category: "food", Count: 1},
	}, metrics.Categories)
}

func TestCourseMetrics(t *testing.T) {
	db := testutil.NewTestDB(t)
	at := func(year int, month time.Month) func(*models.Course) {
		return func(c *models.Course) {
			c.CreatedAt = time.Date(year, month, 10, 12, 0, 0, 0, time.UTC).UnixMilli()
		}
	}
	testutil.SeedCourse(t, db, "a", "Jan21", at(2021, time.January))
	testutil.SeedCourse(t, db, "a", "Mar21", at(2021, time.March))
	testutil.SeedCourse(t, db, "a", "Mar21b", at(2021, time.March))
	testutil.SeedCourse(t, db, "a", "Mar22", at(2022, time.March))
	qs := NewCourseQueryService(db)

	year := 2021
	metrics, err := qs.CourseMetrics(context.Background(), &year)
	require.NoError(t, err)
	assert.Equal(t, 2021, metrics.Year)
	assert.Equal(t, []int{1, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0}, metrics.Months)

	all, err := qs.CourseMetrics(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, all.Year)
	assert.Equal(t, 3, all.Months[2])
}

func TestSubscriptionMetrics(t *testing.T) {
	db := testutil.NewTestDB(t)
	seedCatalog(t, db)

	metrics, err := NewCourseQueryService(db).SubscriptionMetrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{3, 0, 1}, metrics.Subscriptions)
}
