package services

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/jobboard/internal/auth"
	"github.com/desertthunder/jobboard/internal/models"
	"github.com/desertthunder/jobboard/internal/shared"
)

//go:embed seed.toml
var seedCatalogue []byte

type catalogue struct {
	Jobs []models.JobInput `toml:"jobs"`
}

// Catalogue returns the embedded sample jobs.
func Catalogue() ([]models.JobInput, error) {
	var c catalogue
	if err := toml.Unmarshal(seedCatalogue, &c); err != nil {
		return nil, fmt.Errorf("failed to parse seed catalogue: %w", err)
	}
	return c.Jobs, nil
}

// Seeder creates the admin account and sample jobs.
type Seeder struct {
	jobs   JobStore
	admins AdminStore
	hasher *auth.Hasher
	logger *log.Logger
	now    func() time.Time
}

// NewSeeder creates a [Seeder]. A nil now uses [time.Now].
func NewSeeder(jobs JobStore, admins AdminStore, hasher *auth.Hasher, logger *log.Logger, now func() time.Time) *Seeder {
	return &Seeder{
		jobs:   jobs,
		admins: admins,
		hasher: hasher,
		logger: shared.WithLogger(logger, "component", "seeder"),
		now:    clockOrDefault(now),
	}
}

// SeedAdmin creates the admin only when no admin exists. It reports whether one was created.
func (s *Seeder) SeedAdmin(ctx context.Context, email, password string) (bool, error) {
	n, err := s.admins.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	return true, s.createAdmin(ctx, email, password)
}

// EnsureAdmin creates the admin with email unless an admin with that email already exists.
func (s *Seeder) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	_, err := s.admins.GetByEmail(ctx, email)
	if err == nil {
		s.logger.Warn("admin already exists", "email", email)
		return false, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return false, err
	}
	return true, s.createAdmin(ctx, email, password)
}

// SeedJobs inserts the catalogue when there are no jobs and returns how many were created.
func (s *Seeder) SeedJobs(ctx context.Context) (int, error) {
	n, err := s.jobs.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	inputs, err := Catalogue()
	if err != nil {
		return 0, err
	}

	created := 0
	for _, in := range inputs {
		if err := s.createJob(ctx, in); err != nil {
			return created, err
		}
		created++
	}
	s.logger.Info("sample jobs seeded", "count", created)
	return created, nil
}

// SeedJobsBySlug inserts every catalogue job whose slug is not taken yet and returns how many were created.
func (s *Seeder) SeedJobsBySlug(ctx context.Context) (int, error) {
	inputs, err := Catalogue()
	if err != nil {
		return 0, err
	}

	created := 0
	for _, in := range inputs {
		slug := shared.Slugify(in.Title)
		existing, err := s.jobs.List(ctx, map[string]any{models.CriteriaSlug: slug, models.CriteriaLimit: 1})
		if err != nil {
			return created, err
		}
		if len(existing) > 0 {
			s.logger.Warn("job exists", "slug", slug)
			continue
		}

		if err := s.createJob(ctx, in); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func (s *Seeder) createAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("%w: admin email and password are required", shared.ErrInvalidConfig)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	admin := models.NewAdmin(email, hash, s.now().UTC())
	if err := s.admins.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	s.logger.Info("admin seeded", "email", admin.Email)
	return nil
}

func (s *Seeder) createJob(ctx context.Context, in models.JobInput) error {
	if err := in.Validate(); err != nil {
		return fmt.Errorf("invalid catalogue job %q: %w", in.Title, err)
	}
	job := models.NewJob(in, s.now().UTC())
	if err := s.jobs.Create(ctx, job); err != nil {
		return fmt.Errorf("failed to seed job %q: %w", in.Title, err)
	}
	s.logger.Info("job created", "title", job.Title, "slug", job.Slug)
	return nil
}
