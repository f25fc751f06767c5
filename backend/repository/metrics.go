package repository

import (
	"context"
	"time"

	"coursecatalog/backend/domain"
	"coursecatalog/backend/models"

	"github.com/pkg/errors"
)

func (s *courseQueryService) CategoryMetrics(ctx context.Context, limit int) (*domain.CategoryMetrics, error) {
	if limit <= 0 {
		limit = domain.DefaultMetricLimit
	}

	metrics := make([]domain.CategoryMetric, 0, limit)
	err := s.db.WithContext(ctx).
		Model(&models.Category{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Order("count DESC").
		Order("category").
		Limit(limit).
		Scan(&metrics).Error
	if err != nil {
		return nil, errors.Wrap(err, "rank categories")
	}

	var distinct int64
	err = s.db.WithContext(ctx).Model(&models.Category{}).Distinct("category").Count(&distinct).Error
	if err != nil {
		return nil, errors.Wrap(err, "count categories")
	}

	return &domain.CategoryMetrics{Categories: metrics, Count: distinct}, nil
}

// CourseMetrics buckets course creation by UTC month. With a year only
// courses created in it are counted.
func (s *courseQueryService) CourseMetrics(ctx context.Context, year *int) (*domain.CourseMetrics, error) {
	q := s.db.WithContext(ctx).Model(&models.Course{})
	result := &domain.CourseMetrics{Months: make([]int, 12)}
	if year != nil {
		from := time.Date(*year, time.January, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(1, 0, 0)
		q = q.Where("created_at >= ? AND created_at < ?", from.UnixMilli(), to.UnixMilli())
		result.Year = *year
	}

	var created []int64
	if err := q.Pluck("created_at", &created).Error; err != nil {
		return nil, errors.Wrap(err, "load creation dates")
	}
	for _, ms := range created {
		result.Months[time.UnixMilli(ms).UTC().Month()-1]++
	}
	return result, nil
}

func (s *courseQueryService) SubscriptionMetrics(ctx context.Context) (*domain.SubscriptionMetrics, error) {
	var rows []struct {
		SubscriptionID int
		Count          int
	}
	err := s.db.WithContext(ctx).
		Model(&models.Course{}).
		Select("subscription_id, COUNT(*) AS count").
		Group("subscription_id").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "count subscriptions")
	}

	result := &domain.SubscriptionMetrics{Subscriptions: make([]int, domain.SubscriptionTiers)}
	for _, row := range rows {
		if row.SubscriptionID >= 0 && row.SubscriptionID < domain.SubscriptionTiers {
			result.Subscriptions[row.SubscriptionID] = row.Count
		}
	}
	return result, nil
}
