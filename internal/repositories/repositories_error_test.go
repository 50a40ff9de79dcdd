package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/jobboard/internal/models"
	"github.com/desertthunder/jobboard/internal/shared"
)

var errBoom = errors.New("provider exploded")

func TestJobRepositoryErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		t.Run("ValidationError", func(t *testing.T) {
			repo := NewJobRepository(setupTestDB(t))
			job := newTestJob("Title", time.Now())
			job.Location = ""

			if err := repo.Create(ctx, job); !errors.Is(err, shared.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("NotFound", func(t *testing.T) {
			repo := NewJobRepository(setupTestDB(t))

			if _, err := repo.Get(ctx, "nonexistent-id"); !errors.Is(err, shared.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			if _, err := repo.GetBySlug(ctx, "nonexistent-slug"); !errors.Is(err, shared.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	})

	t.Run("Update", func(t *testing.T) {
		t.Run("NotFound", func(t *testing.T) {
			repo := NewJobRepository(setupTestDB(t))
			job := newTestJob("Ghost", time.Now())

			if err := repo.Update(ctx, job); !errors.Is(err, shared.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	})

	t.Run("Delete", func(t *testing.T) {
		t.Run("NotFound", func(t *testing.T) {
			repo := NewJobRepository(setupTestDB(t))

			if err := repo.Delete(ctx, "nonexistent-id"); !errors.Is(err, shared.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	})

	t.Run("ClosedDatabase", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewJobRepository(db)
		db.Close()

		if _, err := repo.List(ctx, nil); !errors.Is(err, shared.ErrStoreUnavailable) {
			t.Fatalf("expected ErrStoreUnavailable, got %v", err)
		}
	})
}

func TestAdminRepositoryErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("DuplicateEmail", func(t *testing.T) {
		repo := NewAdminRepository(setupTestDB(t))

		if err := repo.Create(ctx, models.NewAdmin("admin@example.com", "hash", time.Now())); err != nil {
			t.Fatalf("failed to create first admin: %v", err)
		}

		err := repo.Create(ctx, models.NewAdmin("admin@example.com", "hash", time.Now()))
		if !errors.Is(err, shared.ErrStoreUnavailable) {
			t.Fatalf("expected store error for duplicate email, got %v", err)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := NewAdminRepository(setupTestDB(t))

		if _, err := repo.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, shared.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestApplicationRepositoryErrors(t *testing.T) {
	ctx := context.Background()
	repo := NewApplicationRepository(setupTestDB(t))

	if _, err := repo.Get(ctx, "missing"); !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	app := models.NewApplication(models.ApplicationForm{Name: "Ada", Email: "ada@example.com"}, nil, "", "", time.Now())
	if err := repo.Create(ctx, app); !errors.Is(err, shared.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing resume path, got %v", err)
	}
}
