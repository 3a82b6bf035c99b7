package budget

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dompet/internal/budget"
	"github.com/MrJamesThe3rd/dompet/internal/catalog"
	"github.com/MrJamesThe3rd/dompet/internal/http/identity"
	"github.com/MrJamesThe3rd/dompet/internal/http/request"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

type Handler struct {
	svc *budget.Service
	val *request.Validator
}

func NewHandler(svc *budget.Service, val *request.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type budgetResponse struct {
	ID            uuid.UUID     `json:"id"`
	Owner         string        `json:"owner"`
	Category      string        `json:"category"`
	CategoryLabel string        `json:"category_label"`
	CategoryIcon  string        `json:"category_icon"`
	Amount        float64       `json:"amount"`
	Period        budget.Period `json:"period"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     *time.Time    `json:"updated_at,omitempty"`
}

func toResponse(b *budget.Budget) budgetResponse {
	entry := catalog.Resolve(b.Category)

	return budgetResponse{
		ID:            b.ID,
		Owner:         b.Owner,
		Category:      b.Category,
		CategoryLabel: entry.Label,
		CategoryIcon:  entry.Icon,
		Amount:        b.Amount,
		Period:        b.Period,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

type createBudgetRequest struct {
	Owner    string  `json:"owner" validate:"omitempty,owner"`
	Category string  `json:"category" validate:"required"`
	Amount   float64 `json:"amount" validate:"gt=0"`
	Period   string  `json:"period" validate:"required,oneof=weekly monthly yearly"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createBudgetRequest
	if err := request.DecodeJSON(r, h.val, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !catalog.Has(transaction.TypeExpense, req.Category) {
		http.Error(w, "budgets can only track expense categories", http.StatusBadRequest)
		return
	}

	owner := req.Owner
	if owner == "" {
		owner, _ = identity.Owner(r.Context())
	}

	b, err := h.svc.Create(r.Context(), budget.CreateParams{
		Owner:    owner,
		Category: req.Category,
		Amount:   req.Amount,
		Period:   budget.Period(req.Period),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(b)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]budgetResponse, len(budgets))
	for i, b := range budgets {
		resp[i] = toResponse(b)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	b, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(b)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateBudgetRequest struct {
	Category *string  `json:"category,omitempty"`
	Amount   *float64 `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Period   *string  `json:"period,omitempty" validate:"omitempty,oneof=weekly monthly yearly"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateBudgetRequest
	if err := request.DecodeJSON(r, h.val, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	if req.Category != nil {
		if !catalog.Has(transaction.TypeExpense, *req.Category) {
			http.Error(w, "budgets can only track expense categories", http.StatusBadRequest)
			return
		}

		b.Category = *req.Category
	}

	if req.Amount != nil {
		b.Amount = *req.Amount
	}

	if req.Period != nil {
		b.Period = budget.Period(*req.Period)
	}

	if err := h.svc.Update(r.Context(), b); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(b)); err != nil {
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
	case errors.Is(err, budget.ErrNotFound):
		http.Error(w, "budget not found", http.StatusNotFound)
	case errors.Is(err, budget.ErrInvalidAmount), errors.Is(err, budget.ErrInvalidPeriod):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		slog.Error("budget request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
