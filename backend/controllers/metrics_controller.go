package controllers

import (
	"coursecatalog/backend/domain"
	"coursecatalog/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type MetricsController struct {
	base
}

func NewMetricsController(d Deps) *MetricsController {
	return &MetricsController{base: newBase(d)}
}

// GetCategoryMetrics godoc
// @Summary Category popularity
// @Description Returns the most used categories and the number of distinct categories
// @Tags metrics
// @Produce json
// @Param limit query int false "Categories to return" default(10)
// @Success 200 {object} domain.CategoryMetrics
// @Failure 500 {object} utils.ErrorResponse
// @Router /courses/metrics/categories [get]
func (mc *MetricsController) GetCategoryMetrics(c *fiber.Ctx) error {
	metrics, err := mc.Queries.CategoryMetrics(c.UserContext(), c.QueryInt("limit", domain.DefaultMetricLimit))
	if err != nil {
		return mc.fail(c, err)
	}
	return utils.OK(c, metrics)
}

// GetCourseMetrics godoc
// @Summary New courses per month
// @Tags metrics
// @Produce json
// @Param year query int false "Year, all time when omitted"
// @Success 200 {object} domain.CourseMetrics
// @Failure 422 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /courses/metrics/courses [get]
func (mc *MetricsController) GetCourseMetrics(c *fiber.Ctx) error {
	year, err := optionalIntQuery(c, "year")
	if err != nil {
		return utils.ValidationError(c, map[string]string{"year": err.Error()})
	}

	metrics, err := mc.Queries.CourseMetrics(c.UserContext(), year)
	if err != nil {
		return mc.fail(c, err)
	}
	return utils.OK(c, metrics)
}

// GetSubscriptionMetrics godoc
// @Summary Courses per subscription tier
// @Tags metrics
// @Produce json
// @Success 200 {object} domain.SubscriptionMetrics
// @Failure 500 {object} utils.ErrorResponse
// @Router /courses/metrics/subscriptions [get]
func (mc *MetricsController) GetSubscriptionMetrics(c *fiber.Ctx) error {
	metrics, err := mc.Queries.SubscriptionMetrics(c.UserContext())
	if err != nil {
		return mc.fail(c, err)
	}
	return utils.OK(c, metrics)
}
