package notification

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/gradetrack-lambda/internal/config"
)

// logNotifier writes messages to the log instead of mailing them.
type logNotifier struct{}

var _ Notifier = logNotifier{}

func NewLogNotifier() Notifier {
	return logNotifier{}
}

func (logNotifier) Send(ctx context.Context, msg Message) error {
	config.WithContext(ctx).WithFields(logrus.Fields{
		"to":      msg.To.String(),
		"subject": msg.Subject,
	}).Info(msg.Text)
	return nil
}

// New picks sendgrid when an API key is configured.
func New() Notifier {
	if config.App.SendgridAPIKey == "" {
		config.Logger.Warn("SENDGRID_API_KEY not set, notifications will only be logged")
		return NewLogNotifier()
	}
	return NewSendgridNotifier(config.App.SendgridAPIKey, config.App.MailFromName, config.App.MailFromAddress)
}
