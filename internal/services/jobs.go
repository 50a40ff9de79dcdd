package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/jobboard/internal/models"
	"github.com/desertthunder/jobboard/internal/shared"
)

const (
	DefaultJobLimit = 100
	MaxJobLimit     = 200
)

// JobService manages job listings.
type JobService struct {
	jobs   JobStore
	logger *log.Logger
	now    func() time.Time
}

// NewJobService creates a [JobService]. A nil now uses [time.Now].
func NewJobService(jobs JobStore, logger *log.Logger, now func() time.Time) *JobService {
	return &JobService{jobs: jobs, logger: shared.WithLogger(logger, "service", "jobs"), now: clockOrDefault(now)}
}

// List returns up to limit jobs (default [DefaultJobLimit], at most [MaxJobLimit]).
func (s *JobService) List(ctx context.Context, limit int) ([]*models.Job, error) {
	return s.jobs.List(ctx, map[string]any{models.CriteriaLimit: clampLimit(limit, DefaultJobLimit, MaxJobLimit)})
}

// Get resolves idOrSlug as an id first and as a slug when no job has that id.
func (s *JobService) Get(ctx context.Context, idOrSlug string) (*models.Job, error) {
	job, err := s.jobs.Get(ctx, idOrSlug)
	if err == nil {
		return job, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	job, err = s.jobs.GetBySlug(ctx, idOrSlug)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("%w: job %s", shared.ErrNotFound, idOrSlug)
	}
	return job, err
}

// Create validates in and stores a new job with a generated id, slug and timestamps.
func (s *JobService) Create(ctx context.Context, in models.JobInput) (*models.Job, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	job := models.NewJob(in, s.now().UTC())
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	s.logger.Info("job created", "id", job.ID, "slug", job.Slug)
	return job, nil
}

// Update applies the present fields of patch to the job with id. The slug follows a new title and
// updated_at is refreshed on every call.
func (s *JobService) Update(ctx context.Context, id string, patch models.JobPatch) (*models.Job, error) {
	job, err := s.jobs.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(job, s.now().UTC())
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, err
	}

	s.logger.Info("job updated", "id", job.ID, "slug", job.Slug)
	return job, nil
}

// Delete permanently removes the job with id.
func (s *JobService) Delete(ctx context.Context, id string) error {
	if err := s.jobs.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("job deleted", "id", id)
	return nil
}
