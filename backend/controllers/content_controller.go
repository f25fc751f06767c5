package controllers

import (
	"coursecatalog/backend/domain"
	"coursecatalog/backend/middleware"
	"coursecatalog/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ContentController struct {
	base
}

func NewContentController(d Deps) *ContentController {
	return &ContentController{base: newBase(d)}
}

// AddContent godoc
// @Summary Add content
// @Description Adds an item at a free (chapter, order) position. Only the creator may add content.
// @Tags content
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param uid query string true "Caller ID"
// @Param input body domain.ContentCreate true "Content data"
// @Success 201 {object} domain.Content
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /courses/{id}/content [post]
func (cc *ContentController) AddContent(c *fiber.Ctx) error {
	uid, ok, err := caller(c, "uid")
	if !ok {
		return err
	}

	var input domain.ContentCreate
	if ok, err := bind(c, &input); !ok {
		return err
	}

	id := c.Params("id")
	if err := cc.requireCreator(c, id, uid); err != nil {
		return cc.fail(c, err)
	}

	content, err := cc.Commands.AddContent(c.UserContext(), id, input)
	if err != nil {
		return cc.fail(c, err)
	}
	return utils.Created(c, content)
}

// GetContent godoc
// @Summary Get content
// @Description Returns the active content grouped by chapter
// @Tags content
// @Produce json
// @Param id path string true "Course ID"
// @Param uid query string false "Caller ID"
// @Success 200 {array} domain.Chapter
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /courses/{id}/content [get]
func (cc *ContentController) GetContent(c *fiber.Ctx) error {
	id := c.Params("id")

	// Involvement is logged only; content stays readable by anyone.
	if uid := middleware.CallerID(c, "uid"); uid != "" {
		involved, err := cc.Commands.UserInvolved(c.UserContext(), id, uid)
		if err != nil {
			return cc.fail(c, err)
		}
		if !involved {
			cc.Log.WithFields(logrus.Fields{"course_id": id, "uid": uid}).Info("content read by uninvolved user")
		}
	}

	chapters, err := cc.Queries.FetchContent(c.UserContext(), id)
	if domain.IsNoneFound(err) {
		return utils.OK(c, []domain.Chapter{})
	}
	if err != nil {
		return cc.fail(c, err)
	}
	return utils.OK(c, chapters)
}

// UpdateContent godoc
// @Summary Update content
// @Description Applies the fields present in the body. Only the creator may update content.
// @Tags content
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param content_id path string true "Content ID"
// @Param uid query string true "Caller ID"
// @Param input body domain.ContentUpdate true "Fields to change"
// @Success 202 {object} domain.Content
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /courses/{id}/content/{content_id} [patch]
func (cc *ContentController) UpdateContent(c *fiber.Ctx) error {
	uid, ok, err := caller(c, "uid")
	if !ok {
		return err
	}

	var input domain.ContentUpdate
	if ok, err := bind(c, &input); !ok {
		return err
	}

	id := c.Params("id")
	if err := cc.requireCreator(c, id, uid); err != nil {
		return cc.fail(c, err)
	}

	content, err := cc.Commands.UpdateContent(c.UserContext(), id, c.Params("content_id"), input)
	if err != nil {
		return cc.fail(c, err)
	}
	return utils.Accepted(c, content)
}
