// Package config loads the server settings from the environment.
package config

import (
	"time"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/database"
	"github.com/alejo890gemini-rgb/loco-alitas-4/pkg/utils"
)

// Config holds every setting the server reads at startup.
type Config struct {
	Port               string
	LogLevel           string
	CORSAllowedOrigins []string

	JWTSecret     string
	JWTTTL        time.Duration
	AdminUsername string
	AdminPassword string

	// Database is only used when DatabaseEnabled is true.
	DatabaseEnabled bool
	Database        database.Config

	AMQPURL      string
	AMQPExchange string
	KafkaBrokers []string
	KafkaTopic   string

	NotifyQueueSize int

	GeminiAPIKey   string
	GeminiModel    string
	AdvisorTimeout time.Duration
	PhoneCountry   string
	SeedDemoData   bool
}

// Load reads the configuration. Missing values fall back to development defaults.
func Load() Config {
	cfg := Config{
		Port:               utils.Getenv("PORT", "8080"),
		LogLevel:           utils.Getenv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: utils.GetenvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),

		JWTSecret:     utils.Getenv("JWT_SECRET", ""),
		JWTTTL:        utils.GetenvDuration("JWT_TTL", 12*time.Hour),
		AdminUsername: utils.Getenv("ADMIN_USERNAME", "admin"),
		AdminPassword: utils.Getenv("ADMIN_PASSWORD", ""),

		Database: database.Config{
			Host:       utils.Getenv("DB_HOST", ""),
			Port:       utils.Getenv("DB_PORT", "5432"),
			User:       utils.Getenv("DB_USER", "loco_alitas"),
			Password:   utils.Getenv("DB_PASSWORD", ""),
			Name:       utils.Getenv("DB_NAME", "loco_alitas"),
			SSLMode:    utils.Getenv("DB_SSLMODE", "disable"),
			SchemaPath: utils.Getenv("DB_SCHEMA_PATH", ""),
		},

		AMQPURL:      utils.Getenv("AMQP_URL", ""),
		AMQPExchange: utils.Getenv("AMQP_EXCHANGE", "loco-alitas.events"),
		KafkaBrokers: utils.GetenvList("KAFKA_BROKERS", nil),
		KafkaTopic:   utils.Getenv("KAFKA_TOPIC", "loco-alitas.kitchen"),

		NotifyQueueSize: utils.GetenvInt("NOTIFY_QUEUE_SIZE", 256),

		GeminiAPIKey:   utils.Getenv("GEMINI_API_KEY", ""),
		GeminiModel:    utils.Getenv("GEMINI_MODEL", ""),
		AdvisorTimeout: utils.GetenvDuration("ADVISOR_TIMEOUT", 20*time.Second),
		PhoneCountry:   utils.Getenv("PHONE_COUNTRY_CODE", "57"),
		SeedDemoData:   utils.GetenvBool("SEED_DEMO_DATA", false),
	}
	cfg.DatabaseEnabled = cfg.Database.Host != ""
	if cfg.NotifyQueueSize <= 0 {
		cfg.NotifyQueueSize = 256
	}
	return cfg
}
