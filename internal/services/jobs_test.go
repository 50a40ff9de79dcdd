package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/jobboard/internal/models"
	"github.com/desertthunder/jobboard/internal/shared"
)

func TestJobService(t *testing.T) {
	ctx := context.Background()

	t.Run("Create derives slug and timestamps", func(t *testing.T) {
		f := newFixture(t)

		job, err := f.jobs.Create(ctx, sampleInput("Senior AI Engineer"))
		if err != nil {
			t.Fatalf("failed to create job: %v", err)
		}
		if job.Slug != "senior-ai-engineer" {
			t.Errorf("expected slug senior-ai-engineer, got %s", job.Slug)
		}
		if job.Type != models.DefaultJobType {
			t.Errorf("expected default type, got %s", job.Type)
		}
		if !job.CreatedAt.Equal(f.clock.Now()) {
			t.Errorf("expected created_at %v, got %v", f.clock.Now(), job.CreatedAt)
		}
	})

	t.Run("Create rejects invalid input", func(t *testing.T) {
		f := newFixture(t)

		if _, err := f.jobs.Create(ctx, models.JobInput{Title: "No details"}); !errors.Is(err, shared.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("Get by id then slug", func(t *testing.T) {
		f := newFixture(t)
		job, err := f.jobs.Create(ctx, sampleInput("Platform Engineer"))
		if err != nil {
			t.Fatalf("failed to create job: %v", err)
		}

		byID, err := f.jobs.Get(ctx, job.ID)
		if err != nil || byID.ID != job.ID {
			t.Fatalf("expected job by id, got %v", err)
		}

		bySlug, err := f.jobs.Get(ctx, "platform-engineer")
		if err != nil || bySlug.ID != job.ID {
			t.Fatalf("expected job by slug, got %v", err)
		}

		if _, err := f.jobs.Get(ctx, "nope"); !errors.Is(err, shared.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Update recomputes slug and refreshes updated_at", func(t *testing.T) {
		f := newFixture(t)
		job, err := f.jobs.Create(ctx, sampleInput("Senior AI Engineer"))
		if err != nil {
			t.Fatalf("failed to create job: %v", err)
		}
		created := job.CreatedAt

		f.clock.Advance(time.Minute)
		title := "Staff AI Engineer!"
		updated, err := f.jobs.Update(ctx, job.ID, models.JobPatch{Title: &title})
		if err != nil {
			t.Fatalf("failed to update job: %v", err)
		}

		if updated.Slug != "staff-ai-engineer" {
			t.Errorf("expected slug staff-ai-engineer, got %s", updated.Slug)
		}
		if !updated.CreatedAt.Equal(created) {
			t.Errorf("expected created_at to stay %v, got %v", created, updated.CreatedAt)
		}
		if !updated.UpdatedAt.After(created) {
			t.Errorf("expected updated_at to move past %v, got %v", created, updated.UpdatedAt)
		}
		if updated.Location != "Remote" {
			t.Errorf("expected untouched location, got %s", updated.Location)
		}

		f.clock.Advance(time.Minute)
		location := "Berlin"
		again, err := f.jobs.Update(ctx, job.ID, models.JobPatch{Location: &location})
		if err != nil {
			t.Fatalf("failed to update job: %v", err)
		}
		if again.Slug != "staff-ai-engineer" {
			t.Errorf("expected slug to stay, got %s", again.Slug)
		}
		if !again.UpdatedAt.After(updated.UpdatedAt) {
			t.Errorf("expected updated_at to refresh without a title change")
		}
	})

	t.Run("Update rejects blanked required field", func(t *testing.T) {
		f := newFixture(t)
		job, err := f.jobs.Create(ctx, sampleInput("QA Engineer"))
		if err != nil {
			t.Fatalf("failed to create job: %v", err)
		}

		blank := "   "
		if _, err := f.jobs.Update(ctx, job.ID, models.JobPatch{Title: &blank}); !errors.Is(err, shared.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("Update and Delete unknown id", func(t *testing.T) {
		f := newFixture(t)
		title := "x"

		if _, err := f.jobs.Update(ctx, "missing", models.JobPatch{Title: &title}); !errors.Is(err, shared.ErrNotFound) {
			t.Fatalf("expected ErrNotFound on update, got %v", err)
		}
		if err := f.jobs.Delete(ctx, "missing"); !errors.Is(err, shared.ErrNotFound) {
			t.Fatalf("expected ErrNotFound on delete, got %v", err)
		}
	})

	t.Run("Delete then Get", func(t *testing.T) {
		f := newFixture(t)
		job, err := f.jobs.Create(ctx, sampleInput("Support Engineer"))
		if err != nil {
			t.Fatalf("failed to create job: %v", err)
		}

		if err := f.jobs.Delete(ctx, job.ID); err != nil {
			t.Fatalf("failed to delete job: %v", err)
		}
		if _, err := f.jobs.Get(ctx, job.ID); !errors.Is(err, shared.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("List is bounded", func(t *testing.T) {
		f := newFixture(t)
		for _, title := range []string{"One", "Two", "Three"} {
			if _, err := f.jobs.Create(ctx, sampleInput(title)); err != nil {
				t.Fatalf("failed to create job: %v", err)
			}
		}

		jobs, err := f.jobs.List(ctx, 2)
		if err != nil {
			t.Fatalf("failed to list jobs: %v", err)
		}
		if len(jobs) != 2 {
			t.Errorf("expected 2 jobs, got %d", len(jobs))
		}
	})
}
