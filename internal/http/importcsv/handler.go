package importcsv

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/dompet/internal/http/identity"
	"github.com/MrJamesThe3rd/dompet/internal/http/request"
	"github.com/MrJamesThe3rd/dompet/internal/importer"
	"github.com/MrJamesThe3rd/dompet/internal/ingest"
)

const maxUpload = 10 << 20

type Handler struct {
	ingestSvc *ingest.Service
	importSvc *importer.Service
	val       *request.Validator
}

func NewHandler(ingestSvc *ingest.Service, importSvc *importer.Service, val *request.Validator) *Handler {
	return &Handler{
		ingestSvc: ingestSvc,
		importSvc: importSvc,
		val:       val,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.submitRows)
	r.Post("/csv", h.importCSV)
}

type submitRequest struct {
	Owner string            `json:"owner" validate:"omitempty,owner"`
	Rows  []ingest.DraftRow `json:"rows" validate:"required,min=1,max=1000"`
}

type rejectionResponse struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type importSuccessResponse struct {
	Profile    string              `json:"profile,omitempty"`
	Charset    string              `json:"charset,omitempty"`
	Rewritten  int                 `json:"rewritten,omitempty"`
	Inserted   int                 `json:"inserted"`
	Rejected   int                 `json:"rejected"`
	Rejections []rejectionResponse `json:"rejections"`
}

type batchErrorResponse struct {
	Error      string `json:"error"`
	Accepted   int    `json:"accepted"`
	Rejected   int    `json:"rejected"`
	FirstError string `json:"first_error"`
}

func (h *Handler) submitRows(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := request.DecodeJSON(r, h.val, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	owner, ok := h.owner(r, req.Owner)
	if !ok {
		http.Error(w, "owner is required", http.StatusBadRequest)
		return
	}

	out, err := h.ingestSvc.Submit(r.Context(), owner, req.Rows)
	if err != nil {
		writeSubmitError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSuccessResponse(out, nil))
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	formOwner := r.FormValue("owner")
	if formOwner != "" && h.val.Var(formOwner, "owner") != nil {
		http.Error(w, "owner is not a workspace owner", http.StatusBadRequest)
		return
	}

	owner, ok := h.owner(r, formOwner)
	if !ok {
		http.Error(w, "owner is required", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	report, err := h.importSvc.Import(r.Context(), owner, file)
	if err != nil {
		if errors.Is(err, importer.ErrUnknownFormat) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeSubmitError(w, err)

		return
	}

	writeJSON(w, http.StatusCreated, toSuccessResponse(report.Outcome, report))
}

// owner prefers an explicit owner and falls back to the caller.
func (h *Handler) owner(r *http.Request, explicit string) (string, bool) {
	if explicit != "" {
		return explicit, true
	}

	return identity.Owner(r.Context())
}

func writeSubmitError(w http.ResponseWriter, err error) {
	var batchErr *ingest.BatchError
	if errors.As(err, &batchErr) {
		writeJSON(w, http.StatusUnprocessableEntity, batchErrorResponse{
			Error:      ingest.ErrNoValidRows.Error(),
			Accepted:   batchErr.Accepted,
			Rejected:   batchErr.Rejected,
			FirstError: batchErr.FirstError,
		})

		return
	}

	slog.Error("bulk import failed", "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func toSuccessResponse(out *ingest.Outcome, report *importer.Report) importSuccessResponse {
	resp := importSuccessResponse{
		Inserted:   out.Inserted,
		Rejected:   len(out.Rejected),
		Rejections: make([]rejectionResponse, 0, len(out.Rejected)),
	}

	for _, rej := range out.Rejected {
		resp.Rejections = append(resp.Rejections, rejectionResponse{Row: rej.Row, Error: rej.Err.Error()})
	}

	if report != nil {
		resp.Profile = report.Profile
		resp.Charset = report.Charset
		resp.Rewritten = report.Rewritten
	}

	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
