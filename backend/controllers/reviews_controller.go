package controllers

import (
	"coursecatalog/backend/domain"
	"coursecatalog/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ReviewsController struct {
	base
}

func NewReviewsController(d Deps) *ReviewsController {
	return &ReviewsController{base: newBase(d)}
}

// AddReview godoc
// @Summary Review course
// @Description Each user may review a course once
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param input body domain.ReviewCreate true "Review"
// @Success 201 {object} domain.Review
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /courses/{id}/reviews [post]
func (rc *ReviewsController) AddReview(c *fiber.Ctx) error {
	var input domain.ReviewCreate
	if ok, err := bind(c, &input); !ok {
		return err
	}

	review, err := rc.Commands.AddReview(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return rc.fail(c, err)
	}
	return utils.Created(c, review)
}

// GetReviews godoc
// @Summary List reviews
// @Tags reviews
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {array} domain.Review
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /courses/{id}/reviews [get]
func (rc *ReviewsController) GetReviews(c *fiber.Ctx) error {
	reviews, err := rc.Queries.FetchReviews(c.UserContext(), c.Params("id"))
	if domain.IsNoneFound(err) {
		return utils.OK(c, []domain.Review{})
	}
	if err != nil {
		return rc.fail(c, err)
	}
	return utils.OK(c, reviews)
}
