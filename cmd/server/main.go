package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dcapal/dcapal-web/internal/app"
	"github.com/dcapal/dcapal-web/internal/config"
	"github.com/dcapal/dcapal-web/internal/logging"
	"github.com/dcapal/dcapal-web/internal/pubsub"
	"github.com/dcapal/dcapal-web/internal/server"
)

func main() {
	cfg := config.New()
	logging.New() // Initialize the structured logger

	tracer, shutdownTracing, err := pubsub.SetupOTel(context.Background(), pubsub.LoadTracingConfigFromEnv())
	if err != nil {
		slog.Error("Failed to set up tracing", "error", err)
		os.Exit(1)
	}
	defer shutdownTracing()

	deps, err := app.Resolve(app.NewInjector(cfg, tracer))
	if err != nil {
		slog.Error("Failed to resolve dependencies", "error", err)
		os.Exit(1)
	}

	// Create a new server instance.
	s := server.New(deps)

	// Register all application routes.
	s.RegisterRoutes()

	// Start the server.
	s.Start()
}
