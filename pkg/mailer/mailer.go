// Package mailer delivers transactional mail for the password reset flow.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/stockmasterhq/stockmaster-backend/pkg/config"
	"github.com/stockmasterhq/stockmaster-backend/pkg/logger"
)

// Sender abstracts outbound mail delivery.
type Sender interface {
	SendOTP(ctx context.Context, to, code string, ttl time.Duration) error
}

// SMTPMailer delivers mail through a plain SMTP relay.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

// NewSMTP returns a mailer for the configured relay.
func NewSMTP(cfg config.SMTPConfig) (*SMTPMailer, error) {
	if !cfg.Configured() {
		return nil, fmt.Errorf("smtp host and default from are required")
	}
	return &SMTPMailer{cfg: cfg}, nil
}

// SendOTP mails the one-time password reset code.
func (m *SMTPMailer) SendOTP(ctx context.Context, to, code string, ttl time.Duration) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("recipient is required")
	}

	subject := "Your password reset code"
	body := fmt.Sprintf(
		"Your password reset code is: %s\r\n\r\nThe code expires in %d minutes. If you did not request a reset, ignore this message.\r\n",
		code, int(ttl.Minutes()),
	)

	msg := strings.Join([]string{
		"From: " + m.cfg.DefaultFrom,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, m.cfg.DefaultFrom, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("sending otp mail: %w", err)
	}
	return nil
}

// LogMailer logs codes instead of sending mail. Dev environments only.
type LogMailer struct {
	logg *logger.Logger
}

// NewLog returns a mailer that writes codes to the application log.
func NewLog(logg *logger.Logger) *LogMailer {
	return &LogMailer{logg: logg}
}

func (m *LogMailer) SendOTP(ctx context.Context, to, code string, ttl time.Duration) error {
	if m.logg != nil {
		ctx = m.logg.WithFields(ctx, map[string]any{
			"recipient": to,
			"otp":       code,
		})
		m.logg.Info(ctx, "smtp not configured, otp logged instead of mailed")
	}
	return nil
}
