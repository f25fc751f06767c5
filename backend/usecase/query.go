package usecase

import (
	"context"

	"coursecatalog/backend/domain"
	"coursecatalog/backend/repository"
)

type CourseQueryUseCase interface {
	FetchCourseByID(ctx context.Context, id string) (*domain.Course, error)
	FetchCourses(ctx context.Context, page domain.Page) (*domain.PaginatedCourses, error)
	FetchCategories(ctx context.Context) ([]string, error)
	FetchCoursesByFilters(ctx context.Context, filter domain.CourseFilter) (*domain.PaginatedCourses, error)
	FetchContent(ctx context.Context, courseID string) ([]domain.Chapter, error)
	FetchReviews(ctx context.Context, courseID string) ([]domain.Review, error)
	FetchCollaborators(ctx context.Context, courseID string) ([]domain.Collab, error)
	FetchStudents(ctx context.Context, courseID string) ([]domain.Collab, error)
	// UserIsCreator is false for unknown courses.
	UserIsCreator(ctx context.Context, courseID, userID string) (bool, error)

	CategoryMetrics(ctx context.Context, limit int) (*domain.CategoryMetrics, error)
	CourseMetrics(ctx context.Context, year *int) (*domain.CourseMetrics, error)
	SubscriptionMetrics(ctx context.Context) (*domain.SubscriptionMetrics, error)
}

type courseQueryUseCase struct {
	queries repository.CourseQueryService
}

func NewCourseQueryUseCase(queries repository.CourseQueryService) CourseQueryUseCase {
	return &courseQueryUseCase{queries: queries}
}

func (u *courseQueryUseCase) FetchCourseByID(ctx context.Context, id string) (*domain.Course, error) {
	course, err := u.queries.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, domain.ErrCourseNotFound
	}
	return course, nil
}

func (u *courseQueryUseCase) FetchCourses(ctx context.Context, page domain.Page) (*domain.PaginatedCourses, error) {
	return u.queries.FindAll(ctx, page)
}

func (u *courseQueryUseCase) FetchCategories(ctx context.Context) ([]string, error) {
	categories, err := u.queries.FindAllCategories(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, domain.ErrCategoriesNotFound
	}
	return categories, nil
}

func (u *courseQueryUseCase) FetchCoursesByFilters(ctx context.Context, filter domain.CourseFilter) (*domain.PaginatedCourses, error) {
	return u.queries.FindByFilters(ctx, filter)
}

func (u *courseQueryUseCase) FetchContent(ctx context.Context, courseID string) ([]domain.Chapter, error) {
	content, err := u.queries.FetchContent(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return domain.GroupChapters(content), nil
}

func (u *courseQueryUseCase) FetchReviews(ctx context.Context, courseID string) ([]domain.Review, error) {
	return u.queries.FetchReviews(ctx, courseID)
}

func (u *courseQueryUseCase) FetchCollaborators(ctx context.Context, courseID string) ([]domain.Collab, error) {
	return u.queries.FindCollaborators(ctx, courseID, domain.RoleCollab)
}

func (u *courseQueryUseCase) FetchStudents(ctx context.Context, courseID string) ([]domain.Collab, error) {
	return u.queries.FindCollaborators(ctx, courseID, domain.RoleStudent)
}

func (u *courseQueryUseCase) UserIsCreator(ctx context.Context, courseID, userID string) (bool, error) {
	course, err := u.queries.FindByID(ctx, courseID)
	if err != nil {
		return false, err
	}
	return course != nil && course.CreatorID == userID, nil
}

func (u *courseQueryUseCase) CategoryMetrics(ctx context.Context, limit int) (*domain.CategoryMetrics, error) {
	return u.queries.CategoryMetrics(ctx, limit)
}

func (u *courseQueryUseCase) CourseMetrics(ctx context.Context, year *int) (*domain.CourseMetrics, error) {
	return u.queries.CourseMetrics(ctx, year)
}

func (u *courseQueryUseCase) SubscriptionMetrics(ctx context.Context) (*domain.SubscriptionMetrics, error) {
	return u.queries.SubscriptionMetrics(ctx)
}
