package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/alejo890gemini-rgb/loco-alitas-4/pkg/utils"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// Config holds the PostgreSQL connection settings.
type Config struct {
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SchemaPath string
}

// DSN builds the lib/pq connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

const (
	pingAttempts   = 5
	pingRetryDelay = 2 * time.Second
)

type pinger interface {
	PingContext(ctx context.Context) error
}

// pingWithRetry pings up to attempts times, waiting a growing delay between tries.
func pingWithRetry(ctx context.Context, db pinger, attempts int, delay time.Duration) error {
	var err error
	for i := 1; i <= attempts; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = db.PingContext(pingCtx)
		cancel()
		if err == nil {
			return nil
		}
		if i == attempts {
			break
		}
		wait := time.Duration(i) * delay
		utils.LogWarn("Database not reachable, retrying", map[string]interface{}{"attempt": i, "wait": wait.String(), "error": err.Error()})
		select {
		case <-ctx.Done():
			return fmt.Errorf("database ping cancelled: %w", ctx.Err())
		case <-time.After(wait):
		}
	}
	return fmt.Errorf("database unreachable after %d attempts: %w", attempts, err)
}

// Open connects to PostgreSQL and makes sure the journal tables exist.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := pingWithRetry(ctx, db, pingAttempts, pingRetryDelay); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	utils.LogInfo("Connected to PostgreSQL", map[string]interface{}{"host": cfg.Host, "db": cfg.Name})

	if err := applySchema(db, cfg.SchemaPath); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// applySchema runs the schema file when one is given, otherwise the built-in journal schema.
func applySchema(db *sql.DB, schemaPath string) error {
	schema := journalSchema
	if schemaPath != "" {
		content, err := os.ReadFile(schemaPath)
		if err != nil {
			return fmt.Errorf("could not read schema file %s: %w", schemaPath, err)
		}
		schema = string(content)
	}

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("could not execute schema script: %w", err)
	}
	utils.LogInfo("Database schema applied")
	return nil
}
