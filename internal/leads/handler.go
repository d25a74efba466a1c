package leads

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/miloshomes9-hub/masti-chat/pkg/logging"
)

// Mailer delivers a captured lead to the business inbox.
type Mailer interface {
	DeliverLead(ctx context.Context, lead Lead, message, source string) error
}

// Handler handles HTTP requests for lead delivery and listing.
type Handler struct {
	mailer Mailer
	repo   Repository
	dedupe *Deduper
	logger *logging.Logger
}

// NewHandler creates a new leads handler.
func NewHandler(mailer Mailer, repo Repository, dedupe *Deduper, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		mailer: mailer,
		repo:   repo,
		dedupe: dedupe,
		logger: logger,
	}
}

// DeliverRequest is the request body for POST /api/lead.
type DeliverRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Date     string `json:"date"`
	City     string `json:"city"`
	Guests   string `json:"guests"`
	Budget   string `json:"budget"`
	Services string `json:"services"`
	Message  string `json:"message"`
	Source   string `json:"source"`
}

// Lead converts the request body to a Lead value.
func (r *DeliverRequest) Lead() Lead {
	return Lead{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Date:     r.Date,
		City:     r.City,
		Guests:   r.Guests,
		Budget:   r.Budget,
		Services: r.Services,
	}
}

type deliverResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Deliver handles POST /api/lead: validate contact info, email the lead to
// the business, record it for the admin listing.
func (h *Handler) Deliver(w http.ResponseWriter, r *http.Request) {
	var req DeliverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("lead: failed to decode request", "error", err)
		writeJSON(w, http.StatusBadRequest, deliverResponse{OK: false, Error: "Invalid request body"})
		return
	}
	if req.Source == "" {
		req.Source = "chat-widget"
	}

	lead := req.Lead()
	if !lead.HasContact() {
		writeJSON(w, http.StatusBadRequest, deliverResponse{OK: false, Error: "Provide email or phone"})
		return
	}

	if !h.dedupe.FirstSeen(r.Context(), lead) {
		h.logger.Info("lead: duplicate contact suppressed", "source", req.Source)
		writeJSON(w, http.StatusOK, deliverResponse{OK: true})
		return
	}

	if err := h.mailer.DeliverLead(r.Context(), lead, req.Message, req.Source); err != nil {
		h.logger.Error("lead: delivery failed", "error", err, "source", req.Source)
		writeJSON(w, http.StatusInternalServerError, deliverResponse{OK: false, Error: "Email send failed"})
		return
	}

	if h.repo != nil {
		if _, err := h.repo.Create(r.Context(), lead, req.Message, req.Source); err != nil {
			h.logger.Error("lead: failed to record delivered lead", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, deliverResponse{OK: true})
}

// ListResponse is the response for listing delivered leads.
type ListResponse struct {
	Leads []*Record `json:"leads"`
	Count int       `json:"count"`
}

// List handles GET /admin/leads.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}

	records, err := h.repo.List(r.Context(), limit)
	if err != nil {
		h.logger.Error("lead: failed to list leads", "error", err)
		http.Error(w, "failed to list leads", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, ListResponse{Leads: records, Count: len(records)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
