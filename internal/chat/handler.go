package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/miloshomes9-hub/masti-chat/internal/leads"
	"github.com/miloshomes9-hub/masti-chat/internal/llm"
	"github.com/miloshomes9-hub/masti-chat/internal/observability/metrics"
	"github.com/miloshomes9-hub/masti-chat/pkg/logging"
)

// maxMessageLen caps the user utterance before extraction and completion.
const maxMessageLen = 2000

const healthcheckMessage = "__healthcheck__"

// Handler serves the chat widget: one stateless completion per message, with
// lead extraction folded into the carried-forward lead and forwarded to the
// business inbox in the background.
type Handler struct {
	llm         llm.Client
	model       string
	maxTokens   int32
	temperature float32

	mailer leads.Mailer
	repo   leads.Repository
	dedupe *leads.Deduper

	metrics        *metrics.ChatMetrics
	logger         *logging.Logger
	forwardTimeout time.Duration
}

// Config carries the completion parameters for the chat handler.
type Config struct {
	Model       string
	MaxTokens   int32
	Temperature float32
}

// NewHandler creates a chat handler. mailer, repo, dedupe and m may be nil;
// a nil mailer disables background lead forwarding.
func NewHandler(client llm.Client, cfg Config, mailer leads.Mailer, repo leads.Repository, dedupe *leads.Deduper, m *metrics.ChatMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		llm:            client,
		model:          cfg.Model,
		maxTokens:      cfg.MaxTokens,
		temperature:    cfg.Temperature,
		mailer:         mailer,
		repo:           repo,
		dedupe:         dedupe,
		metrics:        m,
		logger:         logger,
		forwardTimeout: 15 * time.Second,
	}
}

type chatRequest struct {
	Message string     `json:"message"`
	Lead    leads.Lead `json:"lead"`
}

type capturedFields struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type chatResponse struct {
	Reply    string          `json:"reply"`
	Captured *capturedFields `json:"captured,omitempty"`
	Lead     *leads.Lead     `json:"lead,omitempty"`
	Debug    string          `json:"_debug,omitempty"`
}

// HandleChat handles POST /api/chat. A missing message is the only caller
// error; everything downstream, completion failures included, still answers
// with HTTP 200 so the widget never renders a broken state.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("chat: failed to decode request", "error", err)
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing message"})
		return
	}
	if message == healthcheckMessage {
		h.writeJSON(w, http.StatusOK, chatResponse{Reply: "ok"})
		return
	}
	if runes := []rune(message); len(runes) > maxMessageLen {
		message = string(runes[:maxMessageLen])
	}

	ext := leads.Extract(message)
	lead := req.Lead.Merge(ext)

	start := time.Now()
	resp, err := h.llm.Complete(r.Context(), llm.Request{
		Model:       h.model,
		System:      []string{PersonaPrompt, LeadInstruction(lead)},
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: message}},
		MaxTokens:   h.maxTokens,
		Temperature: h.temperature,
	})
	if err != nil {
		h.metrics.ObserveCompletion("error", time.Since(start).Seconds())
		h.metrics.ObserveFallbackReply()
		h.logger.Error("chat: completion failed", "error", err)
		h.writeJSON(w, http.StatusOK, chatResponse{Reply: FallbackReply, Debug: err.Error()})
		return
	}
	h.metrics.ObserveCompletion("success", time.Since(start).Seconds())

	reply := strings.TrimSpace(resp.Text)
	if reply == "" {
		reply = "Sorry, I had trouble responding."
	}

	out := chatResponse{Reply: reply, Lead: &lead}
	if ext.Email != "" || ext.Phone != "" {
		out.Captured = &capturedFields{Email: ext.Email, Phone: ext.Phone}
		if h.mailer != nil {
			go h.forwardLead(lead, message)
		}
	}
	h.writeJSON(w, http.StatusOK, out)
}

// forwardLead runs detached from the request: the chat reply is already on
// the wire and must never wait on, or fail because of, lead delivery.
func (h *Handler) forwardLead(lead leads.Lead, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), h.forwardTimeout)
	defer cancel()

	if !h.dedupe.FirstSeen(ctx, lead) {
		h.metrics.ObserveLeadForward("suppressed")
		h.logger.Info("chat: lead forward suppressed, contact recently delivered")
		return
	}

	if err := h.mailer.DeliverLead(ctx, lead, message, "chat-widget"); err != nil {
		h.metrics.ObserveLeadForward("failed")
		h.logger.Error("chat: lead forward failed", "error", err)
		return
	}
	h.metrics.ObserveLeadForward("sent")

	if h.repo != nil {
		if _, err := h.repo.Create(ctx, lead, message, "chat-widget"); err != nil {
			h.logger.Error("chat: failed to record forwarded lead", "error", err)
		}
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("chat: failed to encode response", "error", err)
	}
	h.metrics.ObserveRequest("/api/chat", strconv.Itoa(status))
}
