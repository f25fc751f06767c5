package main

import (
	"os"

	"coursecatalog/backend/clients"
	"coursecatalog/backend/config"
	"coursecatalog/backend/routes"
	"coursecatalog/backend/utils"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "coursecatalog",
	Short: "Course catalog service",
	Long: `Course catalog service. Stores courses with their categories, collaborators,
students, content and reviews, and answers catalog searches and metrics.`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, db, err := bootstrap()
		if err != nil {
			return err
		}

		app := routes.NewApp(log)
		routes.SetupRoutes(app, db, cfg, log, clients.NewServices(cfg, log))

		log.WithField("port", cfg.ServerPort).Info("starting server")
		return app.Listen(":" + cfg.ServerPort)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, _, err := bootstrap()
		if err != nil {
			return err
		}
		log.Info("schema is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// bootstrap loads the configuration, opens the database and migrates it.
func bootstrap() (*config.Config, *logrus.Logger, *gorm.DB, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "loading config")
	}

	log := utils.InitLogger(utils.LoggerConfig{Format: cfg.LogFormat, Level: cfg.LogLevel})

	db, err := utils.InitDB(cfg, log)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "initializing database")
	}
	if err := utils.Migrate(db); err != nil {
		return nil, nil, nil, errors.Wrap(err, "migrating database")
	}
	return cfg, log, db, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("command failed")
		os.Exit(1)
	}
}
