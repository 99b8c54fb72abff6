package notify

import (
	"context"

	"ecodonate-backend/internal/logger"
)

// logMailer writes emails to the log instead of delivering them
type logMailer struct{}

func NewLogMailer() Mailer {
	return logMailer{}
}

func (logMailer) Send(ctx context.Context, msg Message) error {
	logger.FromContext(ctx).Info("Email (not delivered)", "to", msg.To, "subject", msg.Subject, "body", msg.Body)
	return nil
}
