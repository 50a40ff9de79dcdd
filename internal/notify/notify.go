package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/jobboard/internal/models"
	"github.com/desertthunder/jobboard/internal/shared"
)

// DefaultHistoryLimit caps [Dispatcher.History] when no limit is given.
const DefaultHistoryLimit = 100

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers a message and returns the provider's reference id, if any.
type Sender interface {
	Name() string
	Send(ctx context.Context, msg Message) (string, error)
}

// Result describes one notification attempt.
type Result struct {
	Delivered         bool   `json:"delivered"`
	LogID             string `json:"email_log_id"`
	ProviderReference string `json:"provider_reference,omitempty"`
	Err               error  `json:"-"`
}

// Dispatcher sends notifications and logs every attempt.
type Dispatcher struct {
	sender  Sender
	logs    models.Store[*models.NotificationLog]
	logger  *log.Logger
	now     func() time.Time
	timeout time.Duration
}

// NewDispatcher creates a [Dispatcher]. A nil now uses [time.Now]; a zero timeout leaves the caller's deadline alone.
func NewDispatcher(sender Sender, logs models.Store[*models.NotificationLog], logger *log.Logger, now func() time.Time, timeout time.Duration) *Dispatcher {
	if now == nil {
		now = time.Now
	}
	return &Dispatcher{
		sender:  sender,
		logs:    logs,
		logger:  shared.WithLogger(logger, "component", "notify", "sender", sender.Name()),
		now:     now,
		timeout: timeout,
	}
}

// Notify attempts delivery and records the outcome.
//
// Delivery failures are recorded with status failed and surfaced only through [Result.Delivered] and
// [Result.Err], which wraps [shared.ErrDispatchFailure]. The returned error is non-nil only when the log
// entry itself could not be written.
func (d *Dispatcher) Notify(ctx context.Context, to, subject, body string) (Result, error) {
	ref, sendErr := d.send(ctx, Message{To: to, Subject: subject, HTML: body})

	entry := models.NewNotificationLog(to, subject, body, ref, sendErr, d.now().UTC())
	result := Result{Delivered: sendErr == nil, LogID: entry.ID, ProviderReference: ref}

	if sendErr != nil {
		result.Err = fmt.Errorf("%w: %w", shared.ErrDispatchFailure, sendErr)
		d.logger.Warn("notification failed", "to", to, "subject", subject, "error", sendErr)
	} else {
		d.logger.Info("notification sent", "to", to, "subject", subject, "reference", ref)
	}

	// the attempt is recorded even when the request that triggered it has gone away
	if err := d.logs.Create(context.WithoutCancel(ctx), entry); err != nil {
		d.logger.Error("failed to record notification", "to", to, "error", err)
		return result, fmt.Errorf("failed to record notification: %w", err)
	}

	return result, nil
}

// History lists logged attempts newest first.
func (d *Dispatcher) History(ctx context.Context, limit int) ([]*models.NotificationLog, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return d.logs.List(ctx, map[string]any{models.CriteriaLimit: limit})
}

// send calls the sender under the dispatch timeout and turns a panic into an error.
func (d *Dispatcher) send(ctx context.Context, msg Message) (ref string, err error) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			ref, err = "", fmt.Errorf("sender panicked: %v", r)
		}
	}()

	return d.sender.Send(ctx, msg)
}

// SenderName returns the name of the configured [Sender].
func (d *Dispatcher) SenderName() string {
	return d.sender.Name()
}
