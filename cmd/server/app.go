package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/rillka/wordbank-api/internal/config"
	"github.com/rillka/wordbank-api/internal/domain/scheduler"
	"github.com/rillka/wordbank-api/internal/grading"
	"github.com/rillka/wordbank-api/internal/platform/gemini"
	"github.com/rillka/wordbank-api/internal/platform/postgres"
	"github.com/rillka/wordbank-api/internal/service/auth"
	"github.com/rillka/wordbank-api/internal/service/practice"
	"github.com/rillka/wordbank-api/internal/service/review"
	"github.com/rillka/wordbank-api/internal/service/session"
	"github.com/rillka/wordbank-api/internal/service/stats"
	"github.com/rillka/wordbank-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore     store.UserStore
	profileStore  store.ProfileStore
	wordStore     store.WordStore
	tagStore      store.TagStore
	progressStore store.ProgressStore

	// Services
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	schedulerService scheduler.Service
	practiceService  practice.Service
	reviewService    review.Service
	sessionService   session.Service
	statsService     stats.Service

	// grader is nil when no Gemini API key is configured; the writing
	// feedback endpoint then responds 503.
	grader grading.Grader
}

// newApplication creates an application instance with all dependencies
// initialized. Core dependencies like configuration, logger, and the database
// connection must be established before calling this.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"access_token_minutes", cfg.Auth.AccessTokenMinutes,
		"refresh_token_minutes", cfg.Auth.RefreshTokenMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier(bcrypt.DefaultCost)

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.profileStore = postgres.NewPostgresProfileStore(db, logger)
	app.wordStore = postgres.NewPostgresWordStore(db, logger)
	app.tagStore = postgres.NewPostgresTagStore(db, logger)
	app.progressStore = postgres.NewPostgresProgressStore(db, logger)

	app.schedulerService = scheduler.NewDefaultService()

	app.practiceService = practice.NewService(app.wordStore, app.profileStore, logger)
	app.reviewService = review.NewService(db, app.wordStore, app.progressStore, app.schedulerService, logger)
	app.sessionService = session.NewService(
		app.practiceService,
		app.reviewService,
		app.wordStore,
		app.profileStore,
		app.tagStore,
		logger,
	)
	app.statsService = stats.NewService(app.progressStore, app.profileStore, logger)

	if cfg.Grader.GeminiAPIKey != "" {
		app.grader, err = gemini.NewGeminiGrader(
			ctx,
			logger.With("component", "writing_grader"),
			cfg.Grader,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize writing grader: %w", err)
		}
		logger.Info("Writing grader initialized", "model", cfg.Grader.Model)
	} else {
		logger.Info("Writing grader disabled: no Gemini API key configured")
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
