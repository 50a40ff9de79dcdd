package models

import (
	"time"

	"github.com/desertthunder/jobboard/internal/shared"
)

// NotificationStatus is the outcome of a delivery attempt.
type NotificationStatus string

const (
	NotificationSent   NotificationStatus = "sent"
	NotificationFailed NotificationStatus = "failed"
)

// NotificationLog is the audit record of a single notification attempt. Entries are append-only.
type NotificationLog struct {
	ID                string             `json:"id" validate:"required"`
	To                string             `json:"to" validate:"required"`
	Subject           string             `json:"subject"`
	Body              string             `json:"body"`
	SentAt            time.Time          `json:"sent_at"`
	Status            NotificationStatus `json:"status" validate:"oneof=sent failed"`
	ProviderReference *string            `json:"provider_reference,omitempty"`
	Error             *string            `json:"error,omitempty"`
}

// Key implements [Model].
func (n *NotificationLog) Key() string { return n.ID }

// Validate implements [Model].
func (n *NotificationLog) Validate() error { return check(n) }

// NewNotificationLog records the outcome of sending subject to to. A nil sendErr marks the entry as sent.
func NewNotificationLog(to, subject, body string, reference string, sendErr error, now time.Time) *NotificationLog {
	entry := &NotificationLog{
		ID:      shared.GenerateID(),
		To:      to,
		Subject: subject,
		Body:    body,
		SentAt:  now,
		Status:  NotificationSent,
	}
	if reference != "" {
		entry.ProviderReference = &reference
	}
	if sendErr != nil {
		msg := sendErr.Error()
		entry.Status = NotificationFailed
		entry.Error = &msg
	}
	return entry
}

// Delivered reports whether the attempt succeeded.
func (n *NotificationLog) Delivered() bool {
	return n.Status == NotificationSent
}
