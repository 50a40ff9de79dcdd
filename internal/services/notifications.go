package services

import (
	"context"

	"github.com/desertthunder/jobboard/internal/models"
	"github.com/desertthunder/jobboard/internal/notify"
)

// NotificationService exposes the delivery check and the notification history.
type NotificationService struct {
	dispatcher *notify.Dispatcher
	to         string
}

// NewNotificationService creates a [NotificationService] that sends checks to to.
func NewNotificationService(dispatcher *notify.Dispatcher, to string) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, to: to}
}

// SendTest sends the delivery check email. The error is non-nil only when the attempt could not be logged.
func (s *NotificationService) SendTest(ctx context.Context) (notify.Result, error) {
	body, err := notify.RenderTest(s.dispatcher.SenderName())
	if err != nil {
		return notify.Result{}, err
	}
	return s.dispatcher.Notify(ctx, s.to, notify.TestSubject, body)
}

// History lists logged attempts newest first.
func (s *NotificationService) History(ctx context.Context, limit int) ([]*models.NotificationLog, error) {
	return s.dispatcher.History(ctx, limit)
}
