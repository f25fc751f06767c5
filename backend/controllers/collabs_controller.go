package controllers

import (
	"context"

	"coursecatalog/backend/clients"
	"coursecatalog/backend/domain"
	"coursecatalog/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// CollabsController manages collaborators and students. Both are
// associations between a user and a course and differ only by role.
type CollabsController struct {
	base
	Profiles clients.ProfileService
}

func NewCollabsController(d Deps) *CollabsController {
	return &CollabsController{base: newBase(d), Profiles: d.Services.Profiles}
}

// AddCollab godoc
// @Summary Add collaborator
// @Description Only the creator may add collaborators
// @Tags collabs
// @Produce json
// @Param id path string true "Course ID"
// @Param uid query string true "Caller ID"
// @Param user_id query string true "Collaborator ID"
// @Success 201 {object} domain.Collab
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /courses/{id} [post]
func (cc *CollabsController) AddCollab(c *fiber.Ctx) error {
	uid, ok, err := caller(c, "uid")
	if !ok {
		return err
	}
	userID, ok, err := requiredQuery(c, "user_id")
	if !ok {
		return err
	}

	id := c.Params("id")
	if err := cc.requireCreator(c, id, uid); err != nil {
		return cc.fail(c, err)
	}

	collab, err := cc.Commands.AddCollaborator(c.UserContext(), id, userID)
	if err != nil {
		return cc.fail(c, err)
	}
	return utils.Created(c, collab)
}

// DeactivateCollab godoc
// @Summary Remove collaborator
// @Description The creator or the collaborator may end the collaboration
// @Tags collabs
// @Param id path string true "Course ID"
// @Param user_id path string true "Collaborator ID"
// @Param uid query string true "Caller ID"
// @Success 202
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /courses/{id}/collabs/{user_id} [patch]
func (cc *CollabsController) DeactivateCollab(c *fiber.Ctx) error {
	return cc.deactivate(c, cc.Commands.DeactivateCollaborator)
}

// GetCollabs godoc
// @Summary List collaborators
// @Description Returns the profiles of the active collaborators
// @Tags collabs
// @Produce json
// @Param id path string true "Course ID"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page index" default(0)
// @Success 200 {array} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /courses/{id}/collabs [get]
func (cc *CollabsController) GetCollabs(c *fiber.Ctx) error {
	collabs, err := cc.Queries.FetchCollaborators(c.UserContext(), c.Params("id"))
	return cc.profiles(c, collabs, err)
}

// AddStudent godoc
// @Summary Enroll student
// @Description The creator may enroll anyone; users may enroll themselves
// @Tags students
// @Produce json
// @Param id path string true "Course ID"
// @Param uid query string true "Caller ID"
// @Param user_id query string true "Student ID"
// @Success 201 {object} domain.Collab
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /courses/{id}/students [post]
func (cc *CollabsController) AddStudent(c *fiber.Ctx) error {
	uid, ok, err := caller(c, "uid")
	if !ok {
		return err
	}
	userID, ok, err := requiredQuery(c, "user_id")
	if !ok {
		return err
	}

	id := c.Params("id")
	if err := cc.requireCreatorOrSelf(c, id, uid, userID); err != nil {
		return cc.fail(c, err)
	}

	student, err := cc.Commands.AddStudent(c.UserContext(), id, userID)
	if err != nil {
		return cc.fail(c, err)
	}
	return utils.Created(c, student)
}

// DeactivateStudent godoc
// @Summary Unenroll student
// @Tags students
// @Param id path string true "Course ID"
// @Param user_id path string true "Student ID"
// @Param uid query string true "Caller ID"
// @Success 202
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /courses/{id}/students/{user_id} [patch]
func (cc *CollabsController) DeactivateStudent(c *fiber.Ctx) error {
	return cc.deactivate(c, cc.Commands.DeactivateStudent)
}

// GetStudents godoc
// @Summary List students
// @Description Returns the profiles of the enrolled students
// @Tags students
// @Produce json
// @Param id path string true "Course ID"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page index" default(0)
// @Success 200 {array} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /courses/{id}/students [get]
func (cc *CollabsController) GetStudents(c *fiber.Ctx) error {
	students, err := cc.Queries.FetchStudents(c.UserContext(), c.Params("id"))
	return cc.profiles(c, students, err)
}

func (cc *CollabsController) deactivate(c *fiber.Ctx, deactivate func(ctx context.Context, courseID, userID string) error) error {
	uid, ok, err := caller(c, "uid")
	if !ok {
		return err
	}

	id, userID := c.Params("id"), c.Params("user_id")
	if err := cc.requireCreatorOrSelf(c, id, uid, userID); err != nil {
		return cc.fail(c, err)
	}

	if err := deactivate(c.UserContext(), id, userID); err != nil {
		return cc.fail(c, err)
	}
	return utils.Accepted(c, nil)
}

// profiles resolves associations into user profiles. An empty listing is
// answered with an empty array without asking the users service.
func (cc *CollabsController) profiles(c *fiber.Ctx, collabs []domain.Collab, err error) error {
	if domain.IsNoneFound(err) {
		return utils.OK(c, []interface{}{})
	}
	if err != nil {
		return cc.fail(c, err)
	}

	body, err := cc.Profiles.FilterByIDs(domain.IDs(collabs), pageQuery(c), c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return cc.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(body)
}
