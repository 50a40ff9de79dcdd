// package services defines the operations behind the HTTP handlers and CLI commands
package services

import (
	"context"
	"time"

	"github.com/desertthunder/jobboard/internal/models"
)

// JobStore is the job persistence the services depend on.
type JobStore interface {
	models.Repository[*models.Job]
	GetBySlug(ctx context.Context, slug string) (*models.Job, error)
	Count(ctx context.Context) (int, error)
}

// AdminStore is the admin persistence the services depend on.
type AdminStore interface {
	models.Store[*models.Admin]
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	Count(ctx context.Context) (int, error)
}

// clampLimit applies def to non-positive limits and caps the result at ceiling.
func clampLimit(limit, def, ceiling int) int {
	if limit <= 0 {
		return def
	}
	return min(limit, ceiling)
}

func clockOrDefault(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}
