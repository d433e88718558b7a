package email

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"
)

// Notifier delivers out-of-band notifications about new messages.
// Implementations must be safe to fail: callers treat errors as advisory.
type Notifier interface {
	NotifyNewMessage(toEmail, toName, fromName, preview string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// SMTPNotifier implements Notifier over plain SMTP.
type SMTPNotifier struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewSMTPNotifier creates a new SMTPNotifier
func NewSMTPNotifier(config SMTPConfig, logger zerolog.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		config: config,
		logger: logger,
	}
}

// NotifyNewMessage sends a new-message notification email to the recipient.
// When SMTP credentials are not configured the notification is logged
// instead of sent, so development setups work without a mail server.
func (n *SMTPNotifier) NotifyNewMessage(toEmail, toName, fromName, preview string) error {
	subject := "New message on LearnHub"
	body := fmt.Sprintf("Hello %s,\r\n\r\nYou have a new message from %s:\r\n\r\n%q\r\n\r\nSign in to reply.\r\n", toName, fromName, preview)

	if n.config.Username == "" || n.config.Password == "" {
		n.logger.Info().
			Str("toEmail", toEmail).
			Str("fromName", fromName).
			Msg("SMTP credentials not configured - message notification logged only")
		return nil
	}

	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		n.config.FromName, n.config.FromEmail, toEmail, subject, body)

	addr := fmt.Sprintf("%s:%d", n.config.Host, n.config.Port)
	auth := smtp.PlainAuth("", n.config.Username, n.config.Password, n.config.Host)

	if err := smtp.SendMail(addr, auth, n.config.FromEmail, []string{toEmail}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}

	return nil
}
