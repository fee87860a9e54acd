package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/tutorium/tutor-api/internal/config"
	"github.com/tutorium/tutor-api/internal/generation"
	"github.com/tutorium/tutor-api/internal/platform/gemini"
	"github.com/tutorium/tutor-api/internal/platform/logger"
	"github.com/tutorium/tutor-api/internal/platform/postgres"
	"github.com/tutorium/tutor-api/internal/service/auth"
	"github.com/tutorium/tutor-api/internal/store"
)

// application holds the wired dependencies for the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore    store.UserStore
	jwtService   auth.JWTService
	hasher       auth.PasswordHasher
	orchestrator *generation.Orchestrator
}

// initializeApp loads configuration, connects the database, runs
// migrations, and wires every service the HTTP surface depends on.
func initializeApp(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(logger.LoggerConfig{
		Level: cfg.Server.LogLevel,
		JSON:  cfg.Server.LogJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("model", cfg.LLM.ModelName))

	db, err := setupDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, log); err != nil {
		closeQuietly(db, log)
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		closeQuietly(db, log)
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	provider, err := gemini.NewProvider(ctx, cfg.LLM, log)
	if err != nil {
		closeQuietly(db, log)
		return nil, fmt.Errorf("failed to create model provider: %w", err)
	}

	recordStore := postgres.NewPostgresRecordStore(db, log)
	orchestrator, err := generation.NewOrchestrator(provider, recordStore, generation.Config{
		MaxRequests:  cfg.AI.MaxRequests,
		RateWindow:   time.Duration(cfg.AI.RateWindowSeconds) * time.Second,
		CacheTTL:     time.Duration(cfg.AI.CacheTTLSeconds) * time.Second,
		ModelTimeout: time.Duration(cfg.AI.ModelTimeoutSeconds) * time.Second,
	}, log)
	if err != nil {
		closeQuietly(db, log)
		return nil, fmt.Errorf("failed to create orchestrator: %w", err)
	}

	return &application{
		config:       cfg,
		logger:       log,
		db:           db,
		userStore:    postgres.NewPostgresUserStore(db, log),
		jwtService:   jwtService,
		hasher:       auth.NewBcryptHasher(),
		orchestrator: orchestrator,
	}, nil
}

// Close releases the application's long-lived resources.
func (app *application) Close() {
	closeQuietly(app.db, app.logger)
}

func closeQuietly(db *sql.DB, log *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		log.Warn("failed to close database", slog.String("error", err.Error()))
	}
}
