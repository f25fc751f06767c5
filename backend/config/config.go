package config

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Microservice names used as keys of Config.Microservices.
const (
	ServiceUsers         = "users"
	ServicePayments      = "payments"
	ServiceSubscriptions = "subscriptions"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	// DBPath is the sqlite file, or ":memory:".
	DBPath string

	JWTSecret  string
	ServerPort string

	LogLevel  string
	LogFormat string

	// Microservices maps a sibling service name to its base URL, trailing
	// slash included.
	Microservices     map[string]string
	HTTPClientTimeout time.Duration
}

// LoadConfig reads .env, then an optional config.toml, then the environment.
// Environment values win.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file, using environment variables")
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName(getConfigName(v))
	v.SetConfigType("toml")
	v.AddConfigPath("config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config file")
		}
	}

	v.AutomaticEnv()
	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db_driver", "postgres")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "postgres")
	v.SetDefault("db_name", "courses")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("db_path", "courses.db")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("server_port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("http_client_timeout", "10s")
	v.SetDefault("microservices", map[string]string{
		ServiceUsers:         "http://localhost:8001/",
		ServicePayments:      "http://localhost:8002/",
		ServiceSubscriptions: "http://localhost:8003/",
	})
}

func getConfigName(v *viper.Viper) string {
	v.SetDefault("config_name", "config")
	_ = v.BindEnv("config_name", "CONFIG_NAME")
	return v.GetString("config_name")
}

func fromViper(v *viper.Viper) (*Config, error) {
	microservices, err := microservicesFrom(v)
	if err != nil {
		return nil, err
	}

	return &Config{
		DBDriver:          strings.ToLower(v.GetString("db_driver")),
		DBHost:            v.GetString("db_host"),
		DBPort:            v.GetString("db_port"),
		DBUser:            v.GetString("db_user"),
		DBPassword:        v.GetString("db_password"),
		DBName:            v.GetString("db_name"),
		DBSSLMode:         v.GetString("db_sslmode"),
		DBPath:            v.GetString("db_path"),
		JWTSecret:         v.GetString("jwt_secret"),
		ServerPort:        v.GetString("server_port"),
		LogLevel:          v.GetString("log_level"),
		LogFormat:         v.GetString("log_format"),
		Microservices:     microservices,
		HTTPClientTimeout: v.GetDuration("http_client_timeout"),
	}, nil
}

// microservicesFrom accepts the map either as a config table or as a JSON
// object in the MICROSERVICES variable.
func microservicesFrom(v *viper.Viper) (map[string]string, error) {
	if raw, ok := v.Get("microservices").(string); ok {
		services := map[string]string{}
		if err := json.Unmarshal([]byte(raw), &services); err != nil {
			return nil, errors.Wrap(err, "parse MICROSERVICES")
		}
		return normalizeURLs(services), nil
	}
	return normalizeURLs(v.GetStringMapString("microservices")), nil
}

func normalizeURLs(services map[string]string) map[string]string {
	out := make(map[string]string, len(services))
	for name, url := range services {
		if url != "" && !strings.HasSuffix(url, "/") {
			url += "/"
		}
		out[strings.ToLower(name)] = url
	}
	return out
}

// ServiceURL returns the base URL of a sibling service.
func (c *Config) ServiceURL(name string) string {
	return c.Microservices[name]
}
