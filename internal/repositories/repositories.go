// package repositories provides persistence layer implementations for all model types.
//
// Each repository implements models.Store[T] or models.Repository[T] for a specific entity type.
package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/jobboard/internal/models"
	"github.com/desertthunder/jobboard/internal/shared"
)

// scanner is satisfied by both [sql.Row] and [sql.Rows].
type scanner interface {
	Scan(dest ...any) error
}

// storeErr wraps a driver error as [shared.ErrStoreUnavailable].
func storeErr(action string, err error) error {
	return fmt.Errorf("%w: failed to %s: %w", shared.ErrStoreUnavailable, action, err)
}

// notFound builds a [shared.ErrNotFound] for the entity and key.
func notFound(entity, key string) error {
	return fmt.Errorf("%w: %s %s", shared.ErrNotFound, entity, key)
}

// limitFrom reads [models.CriteriaLimit] from criteria, falling back to def when absent or not positive.
func limitFrom(criteria map[string]any, def int) int {
	if n, ok := criteria[models.CriteriaLimit].(int); ok && n > 0 {
		return n
	}
	return def
}

// expectOne turns a zero-row result into a not found error.
func expectOne(result sql.Result, entity, key string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return storeErr("get affected rows", err)
	}
	if rows == 0 {
		return notFound(entity, key)
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
