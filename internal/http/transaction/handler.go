package transaction

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dompet/internal/catalog"
	"github.com/MrJamesThe3rd/dompet/internal/http/identity"
	"github.com/MrJamesThe3rd/dompet/internal/http/request"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

type Handler struct {
	svc      *transaction.Service
	val      *request.Validator
	currency string
}

func NewHandler(svc *transaction.Service, val *request.Validator, currency string) *Handler {
	return &Handler{svc: svc, val: val, currency: currency}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	r.Patch("/{id}", h.update)
}

type createTransactionRequest struct {
	Owner       string  `json:"owner" validate:"omitempty,owner"`
	Type        string  `json:"type" validate:"required,oneof=income expense"`
	Category    string  `json:"category" validate:"required"`
	Subtitle    *string `json:"subtitle"`
	Amount      float64 `json:"amount" validate:"gt=0"`
	Currency    string  `json:"currency" validate:"omitempty,iso4217"`
	Description string  `json:"description" validate:"max=200"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	ReceiptRef  *string `json:"receipt_ref"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := request.DecodeJSON(r, h.val, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	owner := req.Owner
	if owner == "" {
		owner, _ = identity.Owner(r.Context())
	}

	if owner == "" {
		http.Error(w, "owner is required", http.StatusBadRequest)
		return
	}

	txType := transaction.Type(req.Type)
	if !catalog.Has(txType, req.Category) {
		http.Error(w, "category is not in the "+req.Type+" catalog", http.StatusBadRequest)
		return
	}

	date, _ := request.Date(req.Date)

	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = h.currency
	}

	tx, err := h.svc.Create(r.Context(), transaction.CreateParams{
		Owner:       owner,
		Type:        txType,
		Category:    req.Category,
		Subtitle:    req.Subtitle,
		Amount:      req.Amount,
		Currency:    currency,
		Description: strings.TrimSpace(req.Description),
		Date:        date,
		ReceiptRef:  req.ReceiptRef,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := transaction.ListFilter{}
	q := r.URL.Query()

	if s := q.Get("owner"); s != "" {
		filter.Owner = new(s)
	}

	if s := q.Get("start_date"); s != "" {
		t, err := request.Date(s)
		if err != nil {
			http.Error(w, "start_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		filter.StartDate = new(t)
	}

	if s := q.Get("end_date"); s != "" {
		t, err := request.Date(s)
		if err != nil {
			http.Error(w, "end_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		filter.EndDate = new(t)
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(txs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
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
		writeLookupError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type updateTransactionRequest struct {
	Owner       *string  `json:"owner,omitempty" validate:"omitempty,owner"`
	Type        *string  `json:"type,omitempty" validate:"omitempty,oneof=income expense"`
	Category    *string  `json:"category,omitempty"`
	Subtitle    *string  `json:"subtitle,omitempty"`
	Ungroup     bool     `json:"ungroup,omitempty"`
	Amount      *float64 `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=200"`
	Date        *string  `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ReceiptRef  *string  `json:"receipt_ref,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateTransactionRequest
	if err := request.DecodeJSON(r, h.val, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	if req.Owner != nil {
		tx.Owner = *req.Owner
	}

	if req.Type != nil {
		tx.Type = transaction.Type(*req.Type)
	}

	if req.Category != nil {
		tx.Category = *req.Category
	}

	if req.Subtitle != nil {
		tx.Subtitle = req.Subtitle
	}

	if req.Ungroup {
		tx.Subtitle = nil
	}

	if req.Amount != nil {
		tx.Amount = *req.Amount
	}

	if req.Description != nil {
		tx.Description = strings.TrimSpace(*req.Description)
	}

	if req.Date != nil {
		tx.Date, _ = request.Date(*req.Date)
	}

	if req.ReceiptRef != nil {
		tx.ReceiptRef = req.ReceiptRef
	}

	if !catalog.Has(tx.Type, tx.Category) {
		http.Error(w, "category is not in the "+string(tx.Type)+" catalog", http.StatusBadRequest)
		return
	}

	if err := h.svc.Update(r.Context(), tx); err != nil {
		writeLookupError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeLookupError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, transaction.ErrNotFound):
		http.Error(w, "transaction not found", http.StatusNotFound)
	case errors.Is(err, transaction.ErrInvalidType), errors.Is(err, transaction.ErrInvalidAmount):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		slog.Error("transaction request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
