package routes

import (
	"coursecatalog/backend/clients"
	"coursecatalog/backend/config"
	"coursecatalog/backend/controllers"
	"coursecatalog/backend/middleware"
	"coursecatalog/backend/repository"
	"coursecatalog/backend/usecase"
	"coursecatalog/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SetupRoutes wires the catalog onto app. The app must use strict routing:
// /courses lists and /courses/ searches.
func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, log *logrus.Logger, services clients.Services) {
	queries := repository.NewCourseQueryService(db)
	deps := controllers.Deps{
		Commands: usecase.NewCourseCommandUseCase(repository.NewUnitOfWork(db), queries, services.Payments, services.Subscriptions, log),
		Queries:  usecase.NewCourseQueryUseCase(queries),
		Services: services,
		Cfg:      cfg,
		Log:      log,
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.UserContext())
		}
		if err != nil {
			log.WithError(err).Error("health check failed")
			return utils.Error(c, fiber.StatusServiceUnavailable, err)
		}
		return utils.OK(c, fiber.Map{"status": "ok"})
	})

	app.Use(middleware.Identity(cfg))

	// Course routes
	coursesController := controllers.NewCoursesController(deps)
	app.Post("/courses", coursesController.CreateCourse)
	app.Get("/courses", coursesController.GetCourses)
	app.Get("/courses/", coursesController.GetFilteredCourses)
	app.Get("/courses/categories/", coursesController.GetCategories)

	// Metrics routes, registered before /courses/:id
	metricsController := controllers.NewMetricsController(deps)
	app.Get("/courses/metrics/categories", metricsController.GetCategoryMetrics)
	app.Get("/courses/metrics/courses", metricsController.GetCourseMetrics)
	app.Get("/courses/metrics/subscriptions", metricsController.GetSubscriptionMetrics)

	app.Get("/courses/:id", coursesController.GetCourse)
	app.Patch("/courses/:id", coursesController.UpdateCourse)
	app.Delete("/courses/:id", coursesController.DeleteCourse)

	// Collaborator and student routes
	collabsController := controllers.NewCollabsController(deps)
	app.Post("/courses/:id", collabsController.AddCollab)
	app.Get("/courses/:id/collabs", collabsController.GetCollabs)
	app.Patch("/courses/:id/collabs/:user_id", collabsController.DeactivateCollab)
	app.Post("/courses/:id/students", collabsController.AddStudent)
	app.Get("/courses/:id/students", collabsController.GetStudents)
	app.Patch("/courses/:id/students/:user_id", collabsController.DeactivateStudent)

	// Review routes
	reviewsController := controllers.NewReviewsController(deps)
	app.Post("/courses/:id/reviews", reviewsController.AddReview)
	app.Get("/courses/:id/reviews", reviewsController.GetReviews)

	// Content routes
	contentController := controllers.NewContentController(deps)
	app.Post("/courses/:id/content", contentController.AddContent)
	app.Get("/courses/:id/content", contentController.GetContent)
	app.Patch("/courses/:id/content/:content_id", contentController.UpdateContent)
}
