package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/miloshomes9-hub/masti-chat/internal/leads"
	"github.com/miloshomes9-hub/masti-chat/pkg/logging"
)

// Service formats and sends lead notifications to the business inbox.
type Service struct {
	email  EmailSender
	to     string
	logger *logging.Logger

	now func() time.Time
}

// NewService creates a lead notification service delivering to the given
// address.
func NewService(email EmailSender, to string, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		email:  email,
		to:     to,
		logger: logger,
		now:    time.Now,
	}
}

// DeliverLead emails the captured lead to the business.
func (s *Service) DeliverLead(ctx context.Context, lead leads.Lead, message, source string) error {
	if s.email == nil {
		return fmt.Errorf("notify: email sender not configured")
	}

	who := lead.Name
	if who == "" {
		who = lead.Email
	}
	if who == "" {
		who = lead.Phone
	}

	msg := EmailMessage{
		To:      s.to,
		Subject: fmt.Sprintf("New Chat Lead: %s", who),
		Body: fmt.Sprintf(`New DJ inquiry from the chatbot

Name:     %s
Email:    %s
Phone:    %s
Date:     %s
City:     %s
Guests:   %s
Budget:   %s
Services: %s

Message:
%s

Source: %s
Timestamp: %s`,
			lead.Name, lead.Email, lead.Phone, lead.Date, lead.City,
			lead.Guests, lead.Budget, lead.Services,
			message, source, s.now().UTC().Format(time.RFC3339)),
	}

	if err := s.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: lead delivery failed: %w", err)
	}

	s.logger.Info("lead delivered", "to", s.to, "source", source, "has_email", lead.Email != "", "has_phone", lead.Phone != "")
	return nil
}

// SendTest sends a configuration-check email to the given recipient.
func (s *Service) SendTest(ctx context.Context, to string) error {
	if s.email == nil {
		return fmt.Errorf("notify: email sender not configured")
	}
	if to == "" {
		to = s.to
	}
	msg := EmailMessage{
		To:      to,
		Subject: "Test email from masti-chat",
		Body:    "If you received this, email delivery is configured correctly.",
		HTML:    "<p>If you received this, email delivery is configured correctly.</p>",
	}
	if err := s.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: test email failed: %w", err)
	}
	return nil
}
