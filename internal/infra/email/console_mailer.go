package email

import (
	"context"

	"github.com/rs/zerolog"
)

// ConsoleMailer writes mail to the log instead of delivering it. It is the
// development driver so local runs do not need an SMTP server.
type ConsoleMailer struct {
	logger zerolog.Logger
}

func NewConsoleMailer(logger zerolog.Logger) *ConsoleMailer {
	return &ConsoleMailer{logger: logger.With().Str("component", "console-mailer").Logger()}
}

func (m *ConsoleMailer) Send(ctx context.Context, to, subject, body string) error {
	m.logger.Info().
		Str("to", to).
		Str("subject", subject).
		Str("body", body).
		Msg("mail delivery (console driver)")
	return nil
}
