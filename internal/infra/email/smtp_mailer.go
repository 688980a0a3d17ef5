package email

import (
	"context"
	"fmt"
	"net/smtp"

	"account-pool-service/internal/config"
	"account-pool-service/internal/domain"
)

// SMTPMailer delivers plain-text mail over authenticated SMTP.
type SMTPMailer struct {
	host     string
	port     int
	user     string
	password string
	fromAddr string
	fromName string
}

func NewSMTPMailer(cfg *config.MailConfig) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.Host,
		port:     cfg.Port,
		user:     cfg.User,
		password: cfg.Password,
		fromAddr: cfg.FromAddr,
		fromName: cfg.FromName,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := []byte(fmt.Sprintf("From: %s <%s>\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"Content-Type: text/plain; charset=UTF-8\r\n\r\n"+
		"%s",
		m.fromName, m.fromAddr, to, subject, body))

	var auth smtp.Auth
	if m.user != "" && m.password != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	if err := smtp.SendMail(addr, auth, m.fromAddr, []string{to}, msg); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}
	return nil
}
