package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// Seed creates the admin account unless one with that email exists, then adds every sample job
// whose slug is not taken.
func (r *Runner) Seed(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	email := cmd.String("admin-email")
	if email == "" {
		email = config.Auth.AdminEmail
	}
	password := cmd.String("admin-password")
	if password == "" {
		password = config.Auth.AdminPassword
	}

	app, err := newComponents(config, r.logger, r.now)
	if err != nil {
		return err
	}
	defer app.Close()

	created, err := app.seeder.EnsureAdmin(ctx, email, password)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	if created {
		r.writePlain("✓ Admin created: %s\n", email)
	} else {
		r.writePlain("Admin already exists: %s\n", email)
	}

	if cmd.Bool("skip-jobs") {
		return nil
	}

	jobs, err := app.seeder.SeedJobsBySlug(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed jobs: %w", err)
	}
	return r.writePlain("✓ Sample jobs created: %d\n", jobs)
}
