package controllers

import (
	"reflect"
	"strconv"
	"strings"

	"coursecatalog/backend/clients"
	"coursecatalog/backend/config"
	"coursecatalog/backend/domain"
	"coursecatalog/backend/middleware"
	"coursecatalog/backend/usecase"
	"coursecatalog/backend/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Deps carries what every controller needs.
type Deps struct {
	Commands usecase.CourseCommandUseCase
	Queries  usecase.CourseQueryUseCase
	Services clients.Services
	Cfg      *config.Config
	Log      *logrus.Logger
}

type base struct {
	Commands usecase.CourseCommandUseCase
	Queries  usecase.CourseQueryUseCase
	Cfg      *config.Config
	Log      *logrus.Logger
}

func newBase(d Deps) base {
	return base{Commands: d.Commands, Queries: d.Queries, Cfg: d.Cfg, Log: d.Log}
}

// fail translates a use case error into a response. Domain errors keep
// their message; anything else is logged and answered with a bare 500.
func (b *base) fail(c *fiber.Ctx, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		switch de.Kind {
		case domain.KindNotFound:
			return utils.NotFound(c, de.Message)
		case domain.KindConflict:
			return utils.Conflict(c, de.Message)
		case domain.KindForbidden:
			return utils.Forbidden(c, de.Message)
		}
	}

	b.Log.WithError(err).WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	}).Error("request failed")
	return utils.InternalServerError(c, "Internal server error")
}

// bind parses the JSON body into out and validates it. When it reports
// false the error response has already been written.
func bind(c *fiber.Ctx, out interface{}) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return false, utils.ValidationError(c, validationDetails(verrs))
		}
		return false, utils.BadRequest(c, err.Error())
	}
	return true, nil
}

func validationDetails(verrs validator.ValidationErrors) map[string]string {
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			details[fe.Field()] = fe.Tag() + "=" + fe.Param()
			continue
		}
		details[fe.Field()] = fe.Tag()
	}
	return details
}

// requiredQuery reads a mandatory query parameter, answering 422 when it
// is missing.
func requiredQuery(c *fiber.Ctx, key string) (string, bool, error) {
	v := c.Query(key)
	if v == "" {
		return "", false, utils.ValidationError(c, map[string]string{key: "required"})
	}
	return v, true, nil
}

// caller resolves the acting user from the token or the query parameter.
func caller(c *fiber.Ctx, param string) (string, bool, error) {
	if id := middleware.CallerID(c, param); id != "" {
		return id, true, nil
	}
	return requiredQuery(c, param)
}

func optionalQuery(c *fiber.Ctx, key string) *string {
	if v := c.Query(key); v != "" {
		return &v
	}
	return nil
}

func optionalIntQuery(c *fiber.Ctx, key string) (*int, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "%s must be an integer", key)
	}
	return &v, nil
}

func pageQuery(c *fiber.Ctx) domain.Page {
	return domain.Page{
		Limit:  c.QueryInt("limit", domain.DefaultLimit),
		Offset: c.QueryInt("offset", 0),
	}.Normalize()
}

// requireCreator answers 404 for unknown courses and 403 when uid is not
// the creator.
func (b *base) requireCreator(c *fiber.Ctx, courseID, uid string) error {
	ok, err := b.Queries.UserIsCreator(c.UserContext(), courseID, uid)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	if _, err := b.Queries.FetchCourseByID(c.UserContext(), courseID); err != nil {
		return err
	}
	return domain.ErrUserIsNotCreator
}

// requireCreatorOrSelf lets users act on their own association.
func (b *base) requireCreatorOrSelf(c *fiber.Ctx, courseID, uid, userID string) error {
	if uid == userID {
		if _, err := b.Queries.FetchCourseByID(c.UserContext(), courseID); err != nil {
			return err
		}
		return nil
	}
	return b.requireCreator(c, courseID, uid)
}
