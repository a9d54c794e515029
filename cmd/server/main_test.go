package main

import (
	"strings"
	"testing"

	"github.com/alejo890gemini-rgb/loco-alitas-4/internal/config"
	"github.com/gin-gonic/gin"
)

func TestRun_ReturnsListenError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := config.Load()
	cfg.Port = "-1"
	cfg.DatabaseEnabled = false
	cfg.AMQPURL = ""
	cfg.KafkaBrokers = nil
	cfg.GeminiAPIKey = ""
	cfg.SeedDemoData = false

	err := run(cfg)
	if err == nil || !strings.Contains(err.Error(), "failed to start server") {
		t.Fatalf("run() error = %v, want listen failure", err)
	}
}
