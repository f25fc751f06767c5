package utils

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// LoggerConfig defines the logger setup
type LoggerConfig struct {
	// Format is "text" or "json"
	Format string
	// Level is a logrus level name, info when empty or unknown
	Level string
	// Output defaults to os.Stdout
	Output io.Writer
	// EnableColors forces colored text output
	EnableColors bool
}

// InitLogger creates and returns the service logger
func InitLogger(config ...LoggerConfig) *logrus.Logger {
	var cfg LoggerConfig
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	logger := logrus.New()
	logger.SetOutput(cfg.Output)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   cfg.EnableColors,
		})
	}

	return logger
}
