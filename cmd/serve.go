package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/jobboard/internal/server"
	"github.com/desertthunder/jobboard/internal/shared"
	"github.com/robfig/cron/v3"
	"github.com/urfave/cli/v3"
)

// defaultJWTSecret is the placeholder shipped in the example config.
const defaultJWTSecret = "change-me-in-production"

// Serve runs the API until interrupted.
//
// Startup seeds the admin (only when none exists) and the sample jobs (only when the table is
// empty), then schedules the rate limiter sweep.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	if port := cmd.Int("port"); port > 0 {
		config.Server.Port = port
	}
	if config.Auth.JWTSecret == defaultJWTSecret {
		r.logger.Warn("using the example JWT secret, set auth.jwt_secret or JWT_SECRET")
	}

	app, err := newComponents(config, r.logger, r.now)
	if err != nil {
		return err
	}
	defer app.Close()

	if !cmd.Bool("no-seed") {
		if err := r.seedDefaults(ctx, app, config); err != nil {
			return err
		}
	}

	sweeper := cron.New()
	if _, err := app.limiter.Schedule(sweeper, config.RateLimit.SweepSchedule); err != nil {
		return err
	}
	sweeper.Start()
	defer sweeper.Stop()

	srv := server.New(server.Options{
		Jobs:          app.jobs,
		Applications:  app.applications,
		Auth:          app.auth,
		Notifications: app.notifications,
		Logger:        r.logger,
		Version:       version,
		MaxUploadSize: config.Uploads.MaxFileSize,
		TrustProxy:    config.Server.TrustProxy,
		CORSOrigins:   config.Server.CORSOrigins,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := config.Server.Addr()
	r.logger.Info("starting server", "addr", addr, "database", config.Database.Path, "uploads", app.uploads.Dir())
	if err := srv.ListenAndServe(ctx, addr, config.Server.ReadTimeout.Duration, config.Server.WriteTimeout.Duration); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	r.logger.Info("server stopped")
	return nil
}

func (r *Runner) seedDefaults(ctx context.Context, app *components, config *shared.Config) error {
	created, err := app.seeder.SeedAdmin(ctx, config.Auth.AdminEmail, config.Auth.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	if created {
		r.logger.Info("admin account created", "email", config.Auth.AdminEmail)
	}

	if _, err := app.seeder.SeedJobs(ctx); err != nil {
		return fmt.Errorf("failed to seed jobs: %w", err)
	}
	return nil
}
