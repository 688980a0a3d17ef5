package email

import (
	"fmt"

	"account-pool-service/internal/config"
	"account-pool-service/internal/domain/ports/adapter"

	"github.com/rs/zerolog"
)

// NewMailer selects the delivery driver from config.
func NewMailer(cfg *config.MailConfig, logger zerolog.Logger) (adapter.Mailer, error) {
	switch cfg.Driver {
	case "smtp":
		return NewSMTPMailer(cfg), nil
	case "console", "":
		return NewConsoleMailer(logger), nil
	default:
		return nil, fmt.Errorf("unknown mail driver %q", cfg.Driver)
	}
}
