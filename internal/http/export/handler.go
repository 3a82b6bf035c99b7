package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/dompet/internal/export"
	"github.com/MrJamesThe3rd/dompet/internal/http/request"
)

type Handler struct {
	svc *export.Service
	now func() time.Time
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/ledger.csv", h.ledgerCSV)
	r.Get("/summary", h.summary)
	r.Get("/archive.zip", h.archive)
}

func (h *Handler) ledgerCSV(w http.ResponseWriter, r *http.Request) {
	m, err := request.Month(r, h.now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := h.svc.WriteLedgerCSV(r.Context(), &buf, m); err != nil {
		slog.Error("failed to export ledger", "month", m.String(), "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"ledger_%s.csv\"", m))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write ledger", "error", err)
	}
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	m, err := request.Month(r, h.now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	text, err := h.svc.Summary(r.Context(), m)
	if err != nil {
		slog.Error("failed to build summary", "month", m.String(), "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if _, err := w.Write([]byte(text)); err != nil {
		slog.Error("failed to write summary", "error", err)
	}
}

func (h *Handler) archive(w http.ResponseWriter, r *http.Request) {
	m, err := request.Month(r, h.now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := h.svc.WriteArchive(r.Context(), &buf, m); err != nil {
		slog.Error("failed to create zip", "month", m.String(), "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"dompet_%s.zip\"", m))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write archive", "error", err)
	}
}
