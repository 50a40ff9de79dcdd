package repositories

import (
	"context"
	"database/sql"
	"strings"

	"github.com/desertthunder/jobboard/internal/models"
)

// AdminRepository implements [models.Store] for [models.Admin] persistence.
// Admins are only created by seeding.
type AdminRepository struct {
	db *sql.DB
}

// NewAdminRepository creates a new [AdminRepository] with the given database connection
func NewAdminRepository(db *sql.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// Create inserts a new admin. Duplicate emails are rejected by the store.
func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	if err := admin.Validate(); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO admins (id, email, password, created_at) VALUES (?, ?, ?, ?)`,
		admin.ID, admin.Email, admin.Password, admin.CreatedAt.UTC(),
	)
	if err != nil {
		return storeErr("insert admin", err)
	}
	return nil
}

// Get retrieves an admin by ID
func (r *AdminRepository) Get(ctx context.Context, id string) (*models.Admin, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, email, password, created_at FROM admins WHERE id = ?`, id)
	admin, err := scanAdmin(row)
	if isNoRows(err) {
		return nil, notFound("admin", id)
	}
	if err != nil {
		return nil, storeErr("query admin", err)
	}
	return admin, nil
}

// GetByEmail retrieves an admin by email, the admin's identity
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, email, password, created_at FROM admins WHERE email = ?`, strings.TrimSpace(email))
	admin, err := scanAdmin(row)
	if isNoRows(err) {
		return nil, notFound("admin", email)
	}
	if err != nil {
		return nil, storeErr("query admin", err)
	}
	return admin, nil
}

// List retrieves admins, optionally filtered by [models.CriteriaEmail]
func (r *AdminRepository) List(ctx context.Context, criteria map[string]any) ([]*models.Admin, error) {
	query := `SELECT id, email, password, created_at FROM admins`
	args := []any{}

	if email, ok := criteria[models.CriteriaEmail].(string); ok && email != "" {
		query += " WHERE email = ?"
		args = append(args, email)
	}
	query += " ORDER BY created_at ASC LIMIT ?"
	args = append(args, limitFrom(criteria, -1))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr("query admins", err)
	}
	defer rows.Close()

	admins := []*models.Admin{}
	for rows.Next() {
		admin, err := scanAdmin(rows)
		if err != nil {
			return nil, storeErr("scan admin", err)
		}
		admins = append(admins, admin)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate admins", err)
	}
	return admins, nil
}

// Count returns the number of admins
func (r *AdminRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&n); err != nil {
		return 0, storeErr("count admins", err)
	}
	return n, nil
}

func scanAdmin(s scanner) (*models.Admin, error) {
	var admin models.Admin
	if err := s.Scan(&admin.ID, &admin.Email, &admin.Password, &admin.CreatedAt); err != nil {
		return nil, err
	}
	return &admin, nil
}
