// Package mailer delivers the transactional mails of the account flows:
// activation, password reset, ban notification and mirror-failure alerts.
package mailer

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/damianut/public-InterSynergy/internal/config"
)

// Mailer sends a single message. Delivery is synchronous; callers decide
// what a failure means for their flow.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends through the configured SMTP relay.
type SMTPMailer struct {
	cfg *config.EmailConfig
}

// LogMailer stands in when email is disabled in config. It records the
// message and reports success.
type LogMailer struct{}

func New(cfg *config.EmailConfig) Mailer {
	if !cfg.Enabled {
		return &LogMailer{}
	}
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.SMTPHost)
	}

	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="utf-8"`,
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

func (m *LogMailer) Send(to, subject, body string) error {
	slog.Info("email delivery disabled, message dropped", "to", to, "subject", subject)
	return nil
}
