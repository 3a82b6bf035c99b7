package category

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/dompet/internal/catalog"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{code}", h.get)
}

type entryResponse struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Kind  string `json:"kind"`
}

type catalogResponse struct {
	Income  []entryResponse `json:"income"`
	Expense []entryResponse `json:"expense"`
}

func toResponse(e catalog.Entry) entryResponse {
	return entryResponse{Code: e.Code, Label: e.Label, Icon: e.Icon, Kind: string(e.Kind)}
}

func toResponseList(entries []catalog.Entry) []entryResponse {
	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = toResponse(e)
	}

	return resp
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(catalogResponse{
		Income:  toResponseList(catalog.Income()),
		Expense: toResponseList(catalog.Expense()),
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// get always answers; unknown codes come back with the fallback label so
// clients can render any stored category.
func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	e, ok := catalog.Lookup(code)
	if !ok {
		e = catalog.Resolve(code)
		w.Header().Set("X-Category-Fallback", "true")
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
