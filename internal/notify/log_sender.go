package notify

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/jobboard/internal/shared"
)

// LogSender writes messages to the logger instead of delivering them.
type LogSender struct {
	logger *log.Logger
}

// NewLogSender creates a [LogSender].
func NewLogSender(logger *log.Logger) *LogSender {
	return &LogSender{logger: shared.WithLogger(logger, "sender", "log")}
}

// Name implements [Sender].
func (s *LogSender) Name() string { return "log" }

// Send implements [Sender]. It never fails and returns no provider reference.
func (s *LogSender) Send(_ context.Context, msg Message) (string, error) {
	s.logger.Info("mock email", "to", msg.To, "subject", msg.Subject)
	s.logger.Debug("mock email body", "body", msg.HTML)
	return "", nil
}
