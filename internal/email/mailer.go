package email

import (
	"context"
	"fmt"
	"net"
	"net/smtp"

	"ctchen222/Crypto-Tracker/internal/config"
)

// Mailer delivers the password-reset email. The SMTP implementation is the
// production one; Noop stands in for tests and unconfigured environments.
type Mailer interface {
	SendResetEmail(ctx context.Context, to, resetURL string) error
}

type smtpMailer struct {
	cfg config.EmailConfig
}

// NewSMTPMailer creates a Mailer that sends through the configured SMTP
// relay with plain auth.
func NewSMTPMailer(cfg config.EmailConfig) Mailer {
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) SendResetEmail(ctx context.Context, to, resetURL string) error {
	addr := net.JoinHostPort(m.cfg.SMTPHost, m.cfg.SMTPPort)
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.SMTPHost)

	msg := []byte("From: Crypto Tracker <" + m.cfg.From + ">\r\n" +
		"To: " + to + "\r\n" +
		"Subject: Reset your Crypto Tracker password\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		"\r\n" +
		"<h3>Password Reset Request</h3>" +
		"<p>Click below to reset your password:</p>" +
		`<a href="` + resetURL + `" style="padding:10px 15px; background:#2d72d9; color:#fff; text-decoration:none;">Reset Password</a>` +
		"<p>This link is valid for 1 hour.</p>\r\n")

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}

// Noop discards outgoing mail.
type Noop struct{}

func (Noop) SendResetEmail(ctx context.Context, to, resetURL string) error {
	return nil
}
