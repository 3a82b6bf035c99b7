package analytics

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/dompet/internal/analytics"
	"github.com/MrJamesThe3rd/dompet/internal/http/request"
)

type Handler struct {
	svc *analytics.Service
	now func() time.Time
}

func NewHandler(svc *analytics.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/dashboard", h.report(func(d analytics.Dashboard) any { return d }))
	r.Get("/summary", h.report(func(d analytics.Dashboard) any { return d.Totals }))
	r.Get("/pivot", h.report(func(d analytics.Dashboard) any { return d.Pivot }))
	r.Get("/budgets", h.report(func(d analytics.Dashboard) any { return d.Budgets }))
	r.Get("/ledger", h.report(func(d analytics.Dashboard) any { return d.Ledger }))
	r.Get("/comparison", h.report(func(d analytics.Dashboard) any { return d.Comparison }))
	r.Get("/recap", h.recap)
	r.Get("/trend", h.trend)
}

// report serves one view of the month's dashboard.
func (h *Handler) report(pick func(analytics.Dashboard) any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := request.Month(r, h.now())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		snap, err := h.svc.Snapshot(r.Context())
		if err != nil {
			slog.Error("failed to load snapshot", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)

			return
		}

		writeJSON(w, pick(analytics.BuildDashboard(snap, m, h.svc.Options())))
	}
}

func (h *Handler) trend(w http.ResponseWriter, r *http.Request) {
	m, err := request.Month(r, h.now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	window := h.svc.Options().TrendWindow

	if s := r.URL.Query().Get("window"); s != "" {
		window, err = strconv.Atoi(s)
		if err != nil || window < 1 || window > 36 {
			http.Error(w, "window must be between 1 and 36", http.StatusBadRequest)
			return
		}
	}

	snap, err := h.svc.Snapshot(r.Context())
	if err != nil {
		slog.Error("failed to load snapshot", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, analytics.Trend(snap.Transactions, m, window))
}

// recap groups the selected month, or every month with ?all=true.
func (h *Handler) recap(w http.ResponseWriter, r *http.Request) {
	m, err := request.Month(r, h.now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	snap, err := h.svc.Snapshot(r.Context())
	if err != nil {
		slog.Error("failed to load snapshot", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if all, _ := strconv.ParseBool(r.URL.Query().Get("all")); all {
		writeJSON(w, analytics.Recap(snap.Transactions))
		return
	}

	writeJSON(w, analytics.RecapMonth(snap.Transactions, m))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
