package controllers

import (
	"strings"

	"coursecatalog/backend/domain"
	"coursecatalog/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type CoursesController struct {
	base
}

func NewCoursesController(d Deps) *CoursesController {
	return &CoursesController{base: newBase(d)}
}

// CreateCourse godoc
// @Summary Create course
// @Description Creates an active course owned by creator_id
// @Tags courses
// @Accept json
// @Produce json
// @Param creator_id query string true "Creator ID"
// @Param input body domain.CourseCreate true "Course data"
// @Success 201 {object} domain.Course
// @Failure 409 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /courses [post]
func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	creatorID, ok, err := caller(c, "creator_id")
	if !ok {
		return err
	}

	var input domain.CourseCreate
	if ok, err := bind(c, &input); !ok {
		return err
	}

	course, err := cc.Commands.CreateCourse(c.UserContext(), creatorID, input)
	if err != nil {
		return cc.fail(c, err)
	}
	return utils.Created(c, course)
}

// GetCourses godoc
// @Summary List courses
// @Description Returns a page of courses ordered by last update
// @Tags courses
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page index" default(0)
// @Success 200 {object} domain.PaginatedCourses
// @Failure 500 {object} utils.ErrorResponse
// @Router /courses [get]
func (cc *CoursesController) GetCourses(c *fiber.Ctx) error {
	courses, err := cc.Queries.FetchCourses(c.UserContext(), pageQuery(c))
	if err != nil {
		return cc.fail(c, err)
	}
	return utils.OK(c, courses)
}

// GetFilteredCourses godoc
// @Summary Search courses
// @Description Returns the courses matching every given filter
// @Tags courses
// @Produce json
// @Param ids query string false "Comma separated course IDs"
// @Param name query string false "Exact name"
// @Param creator_id query string false "Creator ID"
// @Param collab_id query string false "Collaborator ID"
// @Param student_id query string false "Student ID"
// @Param subscription_id query int false "Subscription tier"
// @Param inactive_courses query bool false "Include inactive courses"
// @Param inactive_collab query bool false "Include inactive associations"
// @Param category query string false "Category"
// @Param language query string false "Language"
// @Param country query string false "Country"
// @Param free query bool false "Free courses"
// @Param paid query bool false "Paid courses"
// @Param text query string false "Text in name or description"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page index" default(0)
// @Success 200 {object} domain.PaginatedCourses
// @Failure 422 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /courses/ [get]
func (cc *CoursesController) GetFilteredCourses(c *fiber.Ctx) error {
	filter, err := filterFromQuery(c)
	if err != nil {
		return utils.ValidationError(c, map[string]string{"subscription_id": err.Error()})
	}

	courses, err := cc.Queries.FetchCoursesByFilters(c.UserContext(), filter)
	if err != nil {
		return cc.fail(c, err)
	}
	return utils.OK(c, courses)
}

func filterFromQuery(c *fiber.Ctx) (domain.CourseFilter, error) {
	subscriptionID, err := optionalIntQuery(c, "subscription_id")
	if err != nil {
		return domain.CourseFilter{}, err
	}

	filter := domain.CourseFilter{
		Name:            optionalQuery(c, "name"),
		CreatorID:       optionalQuery(c, "creator_id"),
		CollabID:        optionalQuery(c, "collab_id"),
		StudentID:       optionalQuery(c, "student_id"),
		SubscriptionID:  subscriptionID,
		InactiveCourses: c.QueryBool("inactive_courses", false),
		InactiveCollab:  c.QueryBool("inactive_collab", false),
		Category:        optionalQuery(c, "category"),
		Language:        optionalQuery(c, "language"),
		Country:         optionalQuery(c, "country"),
		Free:            c.QueryBool("free", false),
		Paid:            c.QueryBool("paid", false),
		Text:            optionalQuery(c, "text"),
		Page:            pageQuery(c),
	}
	if raw := c.Query("ids"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				filter.IDs = append(filter.IDs, id)
			}
		}
	}
	return filter, nil
}

// GetCategories godoc
// @Summary List categories
// @Description Returns the distinct category labels in use
// @Tags courses
// @Produce json
// @Success 200 {array} string
// @Failure 500 {object} utils.ErrorResponse
// @Router /courses/categories/ [get]
func (cc *CoursesController) GetCategories(c *fiber.Ctx) error {
	categories, err := cc.Queries.FetchCategories(c.UserContext())
	if domain.IsNoneFound(err) {
		return utils.OK(c, []string{})
	}
	if err != nil {
		return cc.fail(c, err)
	}
	return utils.OK(c, categories)
}

// GetCourse godoc
// @Summary Get course
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} domain.Course
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /courses/{id} [get]
func (cc *CoursesController) GetCourse(c *fiber.Ctx) error {
	course, err := cc.Queries.FetchCourseByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return cc.fail(c, err)
	}
	return utils.OK(c, course)
}

// UpdateCourse godoc
// @Summary Update course
// @Description Applies the fields present in the body. Only the creator may update.
// @Tags courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param uid query string true "Caller ID"
// @Param input body domain.CourseUpdate true "Fields to change"
// @Success 202 {object} domain.Course
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /courses/{id} [patch]
func (cc *CoursesController) UpdateCourse(c *fiber.Ctx) error {
	uid, ok, err := caller(c, "uid")
	if !ok {
		return err
	}

	var input domain.CourseUpdate
	if ok, err := bind(c, &input); !ok {
		return err
	}

	id := c.Params("id")
	if err := cc.requireCreator(c, id, uid); err != nil {
		return cc.fail(c, err)
	}

	course, err := cc.Commands.UpdateCourse(c.UserContext(), id, input)
	if err != nil {
		return cc.fail(c, err)
	}
	return utils.Accepted(c, course)
}

// DeleteCourse godoc
// @Summary Cancel course
// @Description Deletes the course if the creator can pay the cancellation fee
// @Tags courses
// @Param id path string true "Course ID"
// @Param uid query string true "Caller ID"
// @Success 202
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /courses/{id} [delete]
func (cc *CoursesController) DeleteCourse(c *fiber.Ctx) error {
	uid, ok, err := caller(c, "uid")
	if !ok {
		return err
	}

	id := c.Params("id")
	if err := cc.requireCreator(c, id, uid); err != nil {
		return cc.fail(c, err)
	}

	if err := cc.Commands.CancelCourse(c.UserContext(), id); err != nil {
		return cc.fail(c, err)
	}
	return utils.Accepted(c, nil)
}
