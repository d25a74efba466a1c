package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/miloshomes9-hub/masti-chat/pkg/logging"
)

// SMTPSender sends emails through a plain SMTP relay (Brevo in production).
// This is the default provider; it matches the credentials the business
// already has.
type SMTPSender struct {
	addr      string
	auth      smtp.Auth
	fromEmail string
	fromName  string
	logger    *logging.Logger

	// sendFunc is swapped in tests.
	sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// SMTPConfig holds configuration for the SMTP relay.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// NewSMTPSender creates an SMTP-backed email sender. Returns nil when
// credentials are missing so callers can fall through to the stub.
func NewSMTPSender(cfg SMTPConfig, logger *logging.Logger) *SMTPSender {
	if cfg.Username == "" || cfg.Password == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.FromName == "" {
		cfg.FromName = "Music Masti Magic"
	}
	return &SMTPSender{
		addr:      fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		auth:      smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		logger:    logger,
		sendFunc:  smtp.SendMail,
	}
}

// Send sends an email through the relay. STARTTLS is negotiated by
// net/smtp when the server offers it.
func (s *SMTPSender) Send(ctx context.Context, msg EmailMessage) error {
	if s == nil {
		return fmt.Errorf("notify: smtp sender not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	payload := s.buildMessage(msg)
	if err := s.sendFunc(s.addr, s.auth, s.fromEmail, []string{msg.To}, payload); err != nil {
		s.logger.Error("smtp send failed", "error", err, "to", msg.To, "relay", s.addr)
		return fmt.Errorf("notify: smtp send failed: %w", err)
	}

	s.logger.Info("email sent via smtp", "to", msg.To, "subject", msg.Subject, "relay", s.addr)
	return nil
}

func (s *SMTPSender) buildMessage(msg EmailMessage) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", s.fromName, s.fromEmail)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	if msg.HTML != "" {
		const boundary = "masti-alt-boundary"
		fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)
		fmt.Fprintf(&b, "--%s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s\r\n", boundary, msg.Body)
		fmt.Fprintf(&b, "--%s\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s\r\n", boundary, msg.HTML)
		fmt.Fprintf(&b, "--%s--\r\n", boundary)
	} else {
		b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
		b.WriteString(msg.Body)
		b.WriteString("\r\n")
	}
	return []byte(b.String())
}

var _ EmailSender = (*SMTPSender)(nil)
