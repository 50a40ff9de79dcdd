package main

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/jobboard/internal/auth"
	"github.com/desertthunder/jobboard/internal/limiter"
	"github.com/desertthunder/jobboard/internal/notify"
	"github.com/desertthunder/jobboard/internal/repositories"
	"github.com/desertthunder/jobboard/internal/services"
	"github.com/desertthunder/jobboard/internal/shared"
	"github.com/desertthunder/jobboard/internal/uploads"
)

// components is everything a command needs, built from one [shared.Config].
type components struct {
	db            *sql.DB
	limiter       *limiter.Limiter
	uploads       *uploads.Store
	jobs          *services.JobService
	applications  *services.ApplicationService
	auth          *services.AuthService
	notifications *services.NotificationService
	seeder        *services.Seeder
}

// openDatabase opens the configured database and applies pending migrations.
func openDatabase(cfg *shared.Config) (*sql.DB, error) {
	db, err := shared.NewDatabase(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	if cfg.Database.Path != ":memory:" {
		shared.ConfigureDatabase(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

// newSender picks the notification backend named by email.provider.
func newSender(cfg shared.EmailConfig, logger *log.Logger) (notify.Sender, error) {
	switch cfg.Provider {
	case "", "log":
		return notify.NewLogSender(logger), nil
	case "resend":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: email.api_key is required for the resend provider", shared.ErrInvalidConfig)
		}
		return notify.NewResendSender(notify.ResendConfig{
			APIKey:            cfg.APIKey,
			From:              cfg.From,
			BaseURL:           cfg.BaseURL,
			Timeout:           cfg.Timeout.Duration,
			RequestsPerSecond: cfg.RequestsPerSecond,
		}), nil
	default:
		return nil, fmt.Errorf("%w: unknown email provider %q", shared.ErrInvalidConfig, cfg.Provider)
	}
}

// newComponents wires the stores, collaborators and services. The caller closes the result.
func newComponents(cfg *shared.Config, logger *log.Logger, now func() time.Time) (*components, error) {
	sender, err := newSender(cfg.Email, logger)
	if err != nil {
		return nil, err
	}

	store, err := uploads.NewStore(cfg.Uploads.Dir, cfg.Uploads.AllowedExtensions, cfg.Uploads.MaxFileSize)
	if err != nil {
		return nil, err
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return nil, err
	}

	jobRepo := repositories.NewJobRepository(db)
	adminRepo := repositories.NewAdminRepository(db)
	hasher := auth.NewHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL.Duration, now)

	authService, err := services.NewAuthService(adminRepo, hasher, tokens, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	rl := limiter.New(cfg.RateLimit.Limit, cfg.RateLimit.Window.Duration, now)
	dispatcher := notify.NewDispatcher(sender, repositories.NewNotificationLogRepository(db), logger, now, cfg.Email.Timeout.Duration)

	return &components{
		db:      db,
		limiter: rl,
		uploads: store,
		jobs:    services.NewJobService(jobRepo, logger, now),
		applications: services.NewApplicationService(services.ApplicationOptions{
			Applications: repositories.NewApplicationRepository(db),
			Jobs:         jobRepo,
			Uploads:      store,
			Limiter:      rl,
			Dispatcher:   dispatcher,
			NotifyTo:     cfg.Email.To,
			Logger:       logger,
			Now:          now,
		}),
		auth:          authService,
		notifications: services.NewNotificationService(dispatcher, cfg.Email.To),
		seeder:        services.NewSeeder(jobRepo, adminRepo, hasher, logger, now),
	}, nil
}

// Close releases the database connection.
func (c *components) Close() error {
	return c.db.Close()
}
