package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/advisor"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/config"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/database"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/notifications"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/repositories"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/router"
	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/services"
	"github.com/alejo890gemini-rgb/loco-alitas-4/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func main() {
	cfg := config.Load()
	utils.InitLogger(cfg.LogLevel)

	if err := run(cfg); err != nil {
		utils.LogError(err, "Server stopped with an error")
		os.Exit(1)
	}
}

// run wires the server and blocks until SIGINT/SIGTERM or a listener failure.
func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Sale journal
	var journal repositories.SaleJournal = repositories.NopJournal{}
	var db *sql.DB
	if cfg.DatabaseEnabled {
		var err error
		db, err = database.Open(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		journal = repositories.NewPostgresSaleJournal(db)
		utils.LogInfo("Sale journal enabled", map[string]interface{}{"host": cfg.Database.Host, "db": cfg.Database.Name})
	} else {
		utils.LogWarn("DB_HOST not set, sales are kept in memory only")
	}

	// Notifications
	sinks := []notifications.Sink{notifications.LogSink{}}
	if cfg.AMQPURL != "" {
		sink, err := notifications.NewAMQPSink(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			utils.LogError(err, "RabbitMQ sink disabled")
		} else {
			sinks = append(sinks, sink)
		}
	}
	if len(cfg.KafkaBrokers) > 0 {
		sinks = append(sinks, notifications.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic))
		utils.LogInfo("Kafka sink enabled", map[string]interface{}{"topic": cfg.KafkaTopic})
	}
	dispatcher := notifications.NewDispatcher(cfg.NotifyQueueSize, sinks...)
	dispatcher.Start(ctx)

	// Generative assistant
	var adv advisor.Advisor = advisor.Disabled{}
	if cfg.GeminiAPIKey != "" {
		gemini, err := advisor.NewGeminiClient(ctx, advisor.GeminiConfig{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel})
		if err != nil {
			utils.LogError(err, "Gemini advisor disabled")
		} else {
			adv = gemini
		}
	} else {
		utils.LogInfo("GEMINI_API_KEY not set, assistant features return fallbacks")
	}

	// Tokens
	secret := cfg.JWTSecret
	if secret == "" {
		secret = uuid.NewString() + uuid.NewString()
		utils.LogWarn("JWT_SECRET not set, using a random secret; tokens will not survive a restart")
	}
	tokens, err := utils.NewJWTManager(secret, cfg.JWTTTL)
	if err != nil {
		return fmt.Errorf("failed to configure tokens: %w", err)
	}

	svc := router.NewServices(router.Options{
		Tokens:           tokens,
		Journal:          journal,
		Publisher:        dispatcher,
		Advisor:          advisor.NewFallback(adv, cfg.AdvisorTimeout),
		PhoneCountryCode: cfg.PhoneCountry,
	})

	adminPassword := cfg.AdminPassword
	if adminPassword == "" {
		adminPassword = uuid.NewString()[:12]
		utils.LogWarn("ADMIN_PASSWORD not set, generated one", map[string]interface{}{"username": cfg.AdminUsername, "password": adminPassword})
	}
	if err := svc.Auth.EnsureAdmin(cfg.AdminUsername, adminPassword); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	if cfg.SeedDemoData {
		if err := services.SeedDemoData(svc.Inventory, svc.Menu, svc.Tables); err != nil {
			utils.LogError(err, "Failed to seed demo data")
		}
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(utils.GinLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	router.Setup(engine, svc, tokens)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Port, "api": "/api/v1"})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var listenErr error
	select {
	case <-ctx.Done():
	case listenErr = <-serveErr:
	}
	utils.LogInfo("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		utils.LogError(err, "Server shutdown failed")
	}
	dispatcher.Close()

	if listenErr != nil {
		return fmt.Errorf("failed to start server: %w", listenErr)
	}
	return nil
}
