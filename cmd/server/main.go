package main

import (
	"fmt"
	"log/slog"

	"github.com/amirasaad/tokenswap/infra/initializer"
	"github.com/amirasaad/tokenswap/pkg/app"
	"github.com/amirasaad/tokenswap/pkg/config"
	"github.com/amirasaad/tokenswap/webapi"
	log "github.com/charmbracelet/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	// Initialize all dependencies
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Create the application and its HTTP surface
	app := app.New(deps, cfg)
	fiberApp := webapi.SetupApp(app)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
		"prices", cfg.Prices.URL,
	)

	return fiberApp.Listen(addr)
}
