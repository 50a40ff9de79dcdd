package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/jobboard/internal/models"
)

const jobColumns = `id, slug, title, location, type, seniority, description, tags, created_at, updated_at`

// JobRepository implements [models.Repository] for [models.Job] persistence.
type JobRepository struct {
	db *sql.DB
}

// NewJobRepository creates a new [JobRepository] with the given database connection
func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create inserts a new job. The job must already carry its id, slug and timestamps.
func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	if err := job.Validate(); err != nil {
		return err
	}

	tags, err := encodeTags(job.Tags)
	if err != nil {
		return err
	}

	query := `INSERT INTO jobs (` + jobColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		job.ID, job.Slug, job.Title, job.Location, job.Type, job.Seniority, job.Description, tags,
		job.CreatedAt.UTC(), job.UpdatedAt.UTC(),
	)
	if err != nil {
		return storeErr("insert job", err)
	}
	return nil
}

// Get retrieves a job by ID
func (r *JobRepository) Get(ctx context.Context, id string) (*models.Job, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	job, err := scanJob(row)
	if isNoRows(err) {
		return nil, notFound("job", id)
	}
	if err != nil {
		return nil, storeErr("query job", err)
	}
	return job, nil
}

// GetBySlug retrieves the oldest job with the given slug. Slugs are not unique.
func (r *JobRepository) GetBySlug(ctx context.Context, slug string) (*models.Job, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE slug = ? ORDER BY created_at ASC, rowid ASC LIMIT 1`, slug)
	job, err := scanJob(row)
	if isNoRows(err) {
		return nil, notFound("job", slug)
	}
	if err != nil {
		return nil, storeErr("query job", err)
	}
	return job, nil
}

// Update overwrites every mutable column of an existing job
func (r *JobRepository) Update(ctx context.Context, job *models.Job) error {
	if err := job.Validate(); err != nil {
		return err
	}

	tags, err := encodeTags(job.Tags)
	if err != nil {
		return err
	}

	query := `
		UPDATE jobs
		SET slug = ?, title = ?, location = ?, type = ?, seniority = ?, description = ?, tags = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		job.Slug, job.Title, job.Location, job.Type, job.Seniority, job.Description, tags, job.UpdatedAt.UTC(), job.ID,
	)
	if err != nil {
		return storeErr("update job", err)
	}
	return expectOne(result, "job", job.ID)
}

// Delete permanently removes a job by ID
func (r *JobRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return storeErr("delete job", err)
	}
	return expectOne(result, "job", id)
}

// List retrieves jobs in insertion order, optionally filtered by [models.CriteriaSlug] and capped by [models.CriteriaLimit].
func (r *JobRepository) List(ctx context.Context, criteria map[string]any) ([]*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs`
	args := []any{}

	if slug, ok := criteria[models.CriteriaSlug].(string); ok && slug != "" {
		query += " WHERE slug = ?"
		args = append(args, slug)
	}

	query += " ORDER BY created_at ASC, rowid ASC LIMIT ?"
	args = append(args, limitFrom(criteria, -1))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr("query jobs", err)
	}
	defer rows.Close()

	jobs := []*models.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, storeErr("scan job", err)
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate jobs", err)
	}
	return jobs, nil
}

// Count returns the number of stored jobs
func (r *JobRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&n); err != nil {
		return 0, storeErr("count jobs", err)
	}
	return n, nil
}

func scanJob(s scanner) (*models.Job, error) {
	var (
		job  models.Job
		tags string
	)
	err := s.Scan(&job.ID, &job.Slug, &job.Title, &job.Location, &job.Type, &job.Seniority, &job.Description,
		&tags, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(tags), &job.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags for job %s: %w", job.ID, err)
	}
	if job.Tags == nil {
		job.Tags = []string{}
	}
	return &job, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to encode tags: %w", err)
	}
	return string(data), nil
}
