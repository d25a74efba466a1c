package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/miloshomes9-hub/masti-chat/pkg/logging"
)

// TestMailer sends a configuration-check email.
type TestMailer interface {
	SendTest(ctx context.Context, to string) error
}

// TestEmailHandler serves the admin email-configuration check.
type TestEmailHandler struct {
	mailer TestMailer
	logger *logging.Logger
}

func NewTestEmailHandler(mailer TestMailer, logger *logging.Logger) *TestEmailHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &TestEmailHandler{mailer: mailer, logger: logger}
}

// SendTest handles GET /admin/test-email?to=... The recipient falls back to
// the configured lead inbox when ?to= is absent.
func (h *TestEmailHandler) SendTest(w http.ResponseWriter, r *http.Request) {
	if h.mailer == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"ok": false, "error": "Email sender not configured"})
		return
	}

	to := strings.TrimSpace(r.URL.Query().Get("to"))
	if err := h.mailer.SendTest(r.Context(), to); err != nil {
		h.logger.Error("test-email: send failed", "error", err, "to", to)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"ok": false, "error": "Test email send failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
