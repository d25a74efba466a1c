package notify

import (
	"context"
	"net/smtp"
	"strings"
	"testing"
)

func newTestSMTPSender() *SMTPSender {
	return NewSMTPSender(SMTPConfig{
		Host:      "smtp-relay.brevo.com",
		Port:      587,
		Username:  "user",
		Password:  "pass",
		FromEmail: "leads@musicmasti.com",
	}, nil)
}

func TestNewSMTPSenderRequiresCredentials(t *testing.T) {
	if s := NewSMTPSender(SMTPConfig{Host: "h", Port: 587}, nil); s != nil {
		t.Fatal("expected nil sender without credentials")
	}
}

func TestSMTPSenderSend(t *testing.T) {
	sender := newTestSMTPSender()

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	sender.sendFunc = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	err := sender.Send(context.Background(), EmailMessage{
		To:      "info@musicmasti.com",
		Subject: "New Chat Lead: Asha",
		Body:    "lead details",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAddr != "smtp-relay.brevo.com:587" {
		t.Errorf("unexpected relay addr %q", gotAddr)
	}
	if gotFrom != "leads@musicmasti.com" {
		t.Errorf("unexpected envelope from %q", gotFrom)
	}
	if len(gotTo) != 1 || gotTo[0] != "info@musicmasti.com" {
		t.Errorf("unexpected recipients %v", gotTo)
	}
	payload := string(gotMsg)
	for _, want := range []string{
		"From: Music Masti Magic <leads@musicmasti.com>",
		"Subject: New Chat Lead: Asha",
		"Content-Type: text/plain",
		"lead details",
	} {
		if !strings.Contains(payload, want) {
			t.Errorf("payload missing %q", want)
		}
	}
}

func TestSMTPSenderHTMLBuildsMultipart(t *testing.T) {
	sender := newTestSMTPSender()

	payload := string(sender.buildMessage(EmailMessage{
		To:      "info@musicmasti.com",
		Subject: "test",
		Body:    "plain",
		HTML:    "<p>rich</p>",
	}))

	for _, want := range []string{"multipart/alternative", "text/plain", "text/html", "plain", "<p>rich</p>"} {
		if !strings.Contains(payload, want) {
			t.Errorf("payload missing %q", want)
		}
	}
}

func TestSMTPSenderRespectsCancelledContext(t *testing.T) {
	sender := newTestSMTPSender()
	sender.sendFunc = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		t.Error("send should not be attempted with cancelled context")
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := sender.Send(ctx, EmailMessage{To: "info@musicmasti.com"}); err == nil {
		t.Fatal("expected context error")
	}
}
