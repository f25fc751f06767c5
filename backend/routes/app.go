package routes

import (
	"coursecatalog/backend/middleware"
	"coursecatalog/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// NewApp builds the fiber app with the catalog's middleware stack. Routes
// are added with SetupRoutes.
func NewApp(log *logrus.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:       "course-catalog",
		StrictRouting: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			if code >= fiber.StatusInternalServerError {
				log.WithError(err).WithField("path", c.Path()).Error("unhandled error")
			}
			return utils.Error(c, code, err)
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PATCH,DELETE",
	}))
	app.Use(middleware.LoggingMiddleware(log))

	return app
}
