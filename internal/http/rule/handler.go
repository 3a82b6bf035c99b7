package rule

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dompet/internal/http/request"
	"github.com/MrJamesThe3rd/dompet/internal/matching"
)

type Handler struct {
	svc *matching.Service
	val *request.Validator
}

func NewHandler(svc *matching.Service, val *request.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Delete("/{id}", h.delete)
}

type ruleResponse struct {
	ID          uuid.UUID `json:"id"`
	Pattern     string    `json:"pattern"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toResponse(r *matching.Rule) ruleResponse {
	return ruleResponse{
		ID:          r.ID,
		Pattern:     r.Pattern,
		Description: r.Description,
		Category:    r.Category,
		CreatedAt:   r.CreatedAt,
	}
}

type createRuleRequest struct {
	Pattern     string `json:"pattern" validate:"required,max=200"`
	Description string `json:"description" validate:"max=200"`
	Category    string `json:"category"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRuleRequest
	if err := request.DecodeJSON(r, h.val, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rule, err := h.svc.Create(r.Context(), matching.CreateParams{
		Pattern:     req.Pattern,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(rule)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	rules, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]ruleResponse, len(rules))
	for i, rule := range rules {
		resp[i] = toResponse(rule)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, matching.ErrNotFound):
		http.Error(w, "rule not found", http.StatusNotFound)
	case errors.Is(err, matching.ErrEmptyPattern),
		errors.Is(err, matching.ErrEmptyRule),
		errors.Is(err, matching.ErrUnknownCategory):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		slog.Error("rule request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
