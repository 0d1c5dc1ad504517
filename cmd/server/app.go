package main

import (
	"fmt"
	"log/slog"

	"github.com/oculab/iolcalc-api/internal/config"
	"github.com/oculab/iolcalc-api/internal/domain/iol"
	"github.com/oculab/iolcalc-api/internal/platform/logger"
	"github.com/oculab/iolcalc-api/internal/service/auth"
)

// application holds the shared dependencies for the server.
type application struct {
	config      *config.Config
	logger      *slog.Logger
	calcService iol.Service
	jwtService  auth.JWTService
}

// newApplication loads configuration and wires the application components.
func newApplication() (*application, error) {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Set up structured logging using the configured log level
	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	// The calculation service parses the embedded lens table once.
	calcService, err := iol.NewService()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize calculation service: %w", err)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	return &application{
		config:      cfg,
		logger:      log,
		calcService: calcService,
		jwtService:  jwtService,
	}, nil
}
