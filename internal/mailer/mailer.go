// Package mailer sends outbound notification mail. Dispatch is synchronous:
// a transport failure is returned to the caller, never queued or retried.
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"socialhub/internal/config"
	"socialhub/pkg/logger"
)

type Mailer interface {
	SendPasswordReset(to, resetURL string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	logger logger.Logger
}

func NewSMTPMailer(cfg config.SMTPConfig, logger logger.Logger) Mailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
		logger: logger,
	}
}

func (m *SMTPMailer) SendPasswordReset(to, resetURL string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Password Reset Request")
	msg.SetBody("text/plain", fmt.Sprintf(
		"You have requested a password reset for your account.\n\n"+
			"Click on the following link to reset your password:\n %s\n\n"+
			"If you did not request a password reset, please ignore this email.\n",
		resetURL,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error("failed to send password reset mail", map[string]interface{}{"error": err.Error()})
		return fmt.Errorf("failed to send password reset mail: %w", err)
	}

	m.logger.Info("password reset mail sent", map[string]interface{}{"to": to})
	return nil
}
