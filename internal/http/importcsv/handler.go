package importcsv

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atelierhq/atelier/internal/importer"
	"github.com/atelierhq/atelier/internal/transaction"
)

// maxUploadSize caps CSV uploads at 10 MiB.
const maxUploadSize = 10 << 20

type Handler struct {
	importer *importer.Service
	svc      *transaction.Service
}

func NewHandler(imp *importer.Service, svc *transaction.Service) *Handler {
	return &Handler{importer: imp, svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importTransactions)
}

type importResponse struct {
	Imported int      `json:"imported"`
	IDs      []string `json:"ids"`
}

func (h *Handler) importTransactions(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importer.Parse(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if len(params) == 0 {
		http.Error(w, "no rows to import", http.StatusBadRequest)
		return
	}

	created, err := h.svc.CreateBatch(r.Context(), params)
	if err != nil {
		if errors.Is(err, transaction.ErrInvalidType) || errors.Is(err, transaction.ErrInvalidAmount) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	resp := importResponse{
		Imported: len(created),
		IDs:      make([]string, len(created)),
	}

	for i, tx := range created {
		resp.IDs[i] = tx.ID.String()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
