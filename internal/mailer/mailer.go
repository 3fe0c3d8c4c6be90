// Package mailer delivers password-reset links over SMTP. Delivery is
// optional: when no SMTP host is configured the mailer is disabled and
// reset links are surfaced through the demo response field instead.
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"fitcoach/internal/config"
	"fitcoach/internal/logger"
)

// Sender delivers reset links to users out-of-band.
type Sender interface {
	// SendResetLink mails the reset link to the given address.
	SendResetLink(to, name, resetLink string) error

	// Enabled reports whether the sender is configured for delivery.
	Enabled() bool
}

// Mailer is the SMTP implementation of [Sender], built on gomail.
type Mailer struct {
	cfg    config.Mail
	dialer *gomail.Dialer
	logger *logger.Logger
}

// NewMailer builds a mailer from the mail configuration. A mailer with an
// empty host is valid but disabled.
func NewMailer(cfg config.Mail, log *logger.Logger) *Mailer {
	var dialer *gomail.Dialer
	if cfg.Host != "" {
		dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}

	return &Mailer{cfg: cfg, dialer: dialer, logger: log}
}

// Enabled reports whether SMTP delivery is configured.
func (m *Mailer) Enabled() bool {
	return m.dialer != nil
}

// SendResetLink mails a plain-text password-reset message. Calling a
// disabled mailer is an error; callers should check [Mailer.Enabled] first.
func (m *Mailer) SendResetLink(to, name, resetLink string) error {
	if !m.Enabled() {
		return fmt.Errorf("mailer is not configured")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Reset your password")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nA password reset was requested for your account. "+
			"Open the link below to choose a new password:\n\n%s\n\n"+
			"The link expires in one hour. If you did not request this, you can ignore this message.\n",
		name, resetLink))

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Err(err).Str("func", "*Mailer.SendResetLink").Msg("error sending reset e-mail")
		return fmt.Errorf("send reset e-mail: %w", err)
	}

	return nil
}
