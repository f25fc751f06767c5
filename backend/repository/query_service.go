package repository

import (
	"context"

	"coursecatalog/backend/domain"
	"coursecatalog/backend/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// categoriesScanned caps the rows read when listing category labels.
const categoriesScanned = 100

// CourseQueryService answers the read side. Lookups return nil without
// error when the course does not exist; listings of a course's children
// return domain errors.
type CourseQueryService interface {
	FindByID(ctx context.Context, id string) (*domain.Course, error)
	FindAll(ctx context.Context, page domain.Page) (*domain.PaginatedCourses, error)
	FindAllCategories(ctx context.Context) ([]string, error)
	FindByFilters(ctx context.Context, filter domain.CourseFilter) (*domain.PaginatedCourses, error)
	FindCollaborators(ctx context.Context, courseID string, role domain.Role) ([]domain.Collab, error)
	FetchContent(ctx context.Context, courseID string) ([]domain.Content, error)
	FetchReviews(ctx context.Context, courseID string) ([]domain.Review, error)

	CategoryMetrics(ctx context.Context, limit int) (*domain.CategoryMetrics, error)
	CourseMetrics(ctx context.Context, year *int) (*domain.CourseMetrics, error)
	SubscriptionMetrics(ctx context.Context) (*domain.SubscriptionMetrics, error)
}

type courseQueryService struct {
	db *gorm.DB
}

func NewCourseQueryService(db *gorm.DB) CourseQueryService {
	return &courseQueryService{db: db}
}

func (s *courseQueryService) FindByID(ctx context.Context, id string) (*domain.Course, error) {
	var row models.Course
	err := s.db.WithContext(ctx).Preload("Categories").Preload("Reviews").Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "find course")
	}
	course := row.ToDomain()
	return &course, nil
}

func (s *courseQueryService) FindAll(ctx context.Context, page domain.Page) (*domain.PaginatedCourses, error) {
	return s.list(ctx, page)
}

func (s *courseQueryService) FindByFilters(ctx context.Context, filter domain.CourseFilter) (*domain.PaginatedCourses, error) {
	return s.list(ctx, filter.Page, filterScopes(filter)...)
}

func (s *courseQueryService) list(ctx context.Context, page domain.Page, scopes ...func(*gorm.DB) *gorm.DB) (*domain.PaginatedCourses, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Course{}).Scopes(scopes...).Count(&count).Error; err != nil {
		return nil, errors.Wrap(err, "count courses")
	}

	var rows []models.Course
	err := s.db.WithContext(ctx).
		Preload("Categories").
		Preload("Reviews").
		Scopes(scopes...).
		Scopes(paginate(page)).
		Order("courses.updated_at").
		Order("courses.id").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "list courses")
	}

	return &domain.PaginatedCourses{Courses: models.CoursesToDomain(rows), Count: count}, nil
}

func (s *courseQueryService) FindAllCategories(ctx context.Context) ([]string, error) {
	var rows []models.Category
	if err := s.db.WithContext(ctx).Limit(categoriesScanned).Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list categories")
	}

	seen := make(map[string]struct{}, len(rows))
	labels := make([]string, 0, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.Category]; ok {
			continue
		}
		seen[row.Category] = struct{}{}
		labels = append(labels, row.Category)
	}
	return labels, nil
}

func (s *courseQueryService) FindCollaborators(ctx context.Context, courseID string, role domain.Role) ([]domain.Collab, error) {
	if err := s.mustExist(ctx, courseID); err != nil {
		return nil, err
	}

	var rows []models.Collab
	err := s.db.WithContext(ctx).
		Where("course_id = ? AND role = ? AND active = ?", courseID, string(role), true).
		Order("user_id").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "list associations")
	}
	if len(rows) == 0 {
		return nil, domain.NoneFoundFor(role)
	}

	collabs := make([]domain.Collab, 0, len(rows))
	for i := range rows {
		collabs = append(collabs, rows[i].ToDomain())
	}
	return collabs, nil
}

func (s *courseQueryService) FetchContent(ctx context.Context, courseID string) ([]domain.Content, error) {
	if err := s.mustExist(ctx, courseID); err != nil {
		return nil, err
	}

	var rows []models.Content
	err := s.db.WithContext(ctx).
		Where("course_id = ? AND active = ?", courseID, true).
		Order("chapter").
		Order("order_number").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "list content")
	}
	if len(rows) == 0 {
		return nil, domain.ErrContentNotFound
	}

	content := make([]domain.Content, 0, len(rows))
	for i := range rows {
		content = append(content, rows[i].ToDomain())
	}
	return content, nil
}

func (s *courseQueryService) FetchReviews(ctx context.Context, courseID string) ([]domain.Review, error) {
	if err := s.mustExist(ctx, courseID); err != nil {
		return nil, err
	}

	var rows []models.Review
	err := s.db.WithContext(ctx).Where("course_id = ?", courseID).Order("date").Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "list reviews")
	}
	if len(rows) == 0 {
		return nil, domain.ErrReviewsNotFound
	}

	reviews := make([]domain.Review, 0, len(rows))
	for i := range rows {
		reviews = append(reviews, rows[i].ToDomain())
	}
	return reviews, nil
}

func (s *courseQueryService) mustExist(ctx context.Context, courseID string) error {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Course{}).Where("id = ?", courseID).Count(&n).Error; err != nil {
		return errors.Wrap(err, "check course")
	}
	if n == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}
