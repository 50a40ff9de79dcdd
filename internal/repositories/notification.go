package repositories

import (
	"context"
	"database/sql"

	"github.com/desertthunder/jobboard/internal/models"
)

const notificationColumns = `id, recipient, subject, body, sent_at, status, provider_reference, error`

// NotificationLogRepository implements [models.Store] for the append-only [models.NotificationLog] trail.
type NotificationLogRepository struct {
	db *sql.DB
}

// NewNotificationLogRepository creates a new [NotificationLogRepository] with the given database connection
func NewNotificationLogRepository(db *sql.DB) *NotificationLogRepository {
	return &NotificationLogRepository{db: db}
}

// Create appends a log entry
func (r *NotificationLogRepository) Create(ctx context.Context, entry *models.NotificationLog) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	query := `INSERT INTO notification_logs (` + notificationColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.To, entry.Subject, entry.Body, entry.SentAt.UTC(), string(entry.Status),
		nullString(entry.ProviderReference), nullString(entry.Error),
	)
	if err != nil {
		return storeErr("insert notification log", err)
	}
	return nil
}

// Get retrieves a log entry by ID
func (r *NotificationLogRepository) Get(ctx context.Context, id string) (*models.NotificationLog, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+notificationColumns+` FROM notification_logs WHERE id = ?`, id)
	entry, err := scanNotification(row)
	if isNoRows(err) {
		return nil, notFound("notification log", id)
	}
	if err != nil {
		return nil, storeErr("query notification log", err)
	}
	return entry, nil
}

// List retrieves log entries newest first, capped by [models.CriteriaLimit]
func (r *NotificationLogRepository) List(ctx context.Context, criteria map[string]any) ([]*models.NotificationLog, error) {
	query := `SELECT ` + notificationColumns + ` FROM notification_logs ORDER BY sent_at DESC, rowid DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limitFrom(criteria, -1))
	if err != nil {
		return nil, storeErr("query notification logs", err)
	}
	defer rows.Close()

	entries := []*models.NotificationLog{}
	for rows.Next() {
		entry, err := scanNotification(rows)
		if err != nil {
			return nil, storeErr("scan notification log", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate notification logs", err)
	}
	return entries, nil
}

func scanNotification(s scanner) (*models.NotificationLog, error) {
	var (
		entry           models.NotificationLog
		status          string
		reference, fail sql.NullString
	)
	err := s.Scan(&entry.ID, &entry.To, &entry.Subject, &entry.Body, &entry.SentAt, &status, &reference, &fail)
	if err != nil {
		return nil, err
	}

	entry.Status = models.NotificationStatus(status)
	entry.ProviderReference = stringPtr(reference)
	entry.Error = stringPtr(fail)
	return &entry, nil
}
