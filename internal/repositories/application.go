package repositories

import (
	"context"
	"database/sql"

	"github.com/desertthunder/jobboard/internal/models"
)

const applicationColumns = `id, name, email, message, job_id, job_title, resume_path, original_filename, created_at`

// ApplicationRepository implements [models.Store] for [models.Application] persistence.
// Applications are immutable so there is no Update or Delete.
type ApplicationRepository struct {
	db *sql.DB
}

// NewApplicationRepository creates a new [ApplicationRepository] with the given database connection
func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create inserts a new application
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	if err := app.Validate(); err != nil {
		return err
	}

	query := `INSERT INTO applications (` + applicationColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		app.ID, app.Name, app.Email, nullString(app.Message), nullString(app.JobID), nullString(app.JobTitle),
		app.ResumePath, nullString(app.OriginalFilename), app.CreatedAt.UTC(),
	)
	if err != nil {
		return storeErr("insert application", err)
	}
	return nil
}

// Get retrieves an application by ID
func (r *ApplicationRepository) Get(ctx context.Context, id string) (*models.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = ?`, id)
	app, err := scanApplication(row)
	if isNoRows(err) {
		return nil, notFound("application", id)
	}
	if err != nil {
		return nil, storeErr("query application", err)
	}
	return app, nil
}

// List retrieves applications newest first, capped by [models.CriteriaLimit].
func (r *ApplicationRepository) List(ctx context.Context, criteria map[string]any) ([]*models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications ORDER BY created_at DESC, rowid DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limitFrom(criteria, -1))
	if err != nil {
		return nil, storeErr("query applications", err)
	}
	defer rows.Close()

	apps := []*models.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, storeErr("scan application", err)
		}
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate applications", err)
	}
	return apps, nil
}

func scanApplication(s scanner) (*models.Application, error) {
	var (
		app                                models.Application
		message, jobID, jobTitle, original sql.NullString
	)
	err := s.Scan(&app.ID, &app.Name, &app.Email, &message, &jobID, &jobTitle, &app.ResumePath, &original, &app.CreatedAt)
	if err != nil {
		return nil, err
	}

	app.Message = stringPtr(message)
	app.JobID = stringPtr(jobID)
	app.JobTitle = stringPtr(jobTitle)
	app.OriginalFilename = stringPtr(original)
	return &app, nil
}
