package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/routepal/routepal/internal/biz/domain"
	"github.com/routepal/routepal/internal/data"
	"github.com/routepal/routepal/mcpserver"
)

// routepal-mcp serves the prediction tools over MCP stdio. Logs go to
// stderr so stdout stays a clean protocol channel.
func main() {
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "/data"
	}
	fallbackYear := os.Getenv("FALLBACK_YEAR")
	if fallbackYear == "" {
		fallbackYear = domain.DefaultFallbackYear
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	resolver := domain.DateTimeResolver{FallbackYear: fallbackYear}
	store := data.NewPredictionRepo(dataDir, logger)

	srv := mcpserver.NewServer(resolver, store, logger)
	if err := srv.Run(context.Background()); err != nil {
		logger.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
