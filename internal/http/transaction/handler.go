package transaction

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/atelierhq/atelier/internal/integrity"
	"github.com/atelierhq/atelier/internal/transaction"
)

type Handler struct {
	svc       *transaction.Service
	integrity *integrity.Manager
}

func NewHandler(svc *transaction.Service, integrity *integrity.Manager) *Handler {
	return &Handler{svc: svc, integrity: integrity}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/export", h.export)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
}

// create accepts either a single transaction object or a JSON array of them.
func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "reading request body", http.StatusBadRequest)
		return
	}

	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) == 0 {
		http.Error(w, "empty request body", http.StatusBadRequest)
		return
	}

	var reqs []createTransactionRequest

	if trimmed[0] == '[' {
		if err := json.Unmarshal(body, &reqs); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		var single createTransactionRequest
		if err := json.Unmarshal(body, &single); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		reqs = []createTransactionRequest{single}
	}

	if len(reqs) == 0 {
		http.Error(w, "no transactions in request", http.StatusBadRequest)
		return
	}

	params := make([]transaction.CreateParams, len(reqs))
	for i, req := range reqs {
		params[i] = req.toParams()
	}

	var (
		created []*transaction.Transaction
		single  bool
	)

	if len(params) == 1 {
		single = trimmed[0] != '['

		tx, err := h.svc.Create(r.Context(), params[0])
		if err != nil {
			h.writeCreateError(w, err)
			return
		}

		created = []*transaction.Transaction{tx}
	} else {
		created, err = h.svc.CreateBatch(r.Context(), params)
		if err != nil {
			h.writeCreateError(w, err)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if single {
		err = json.NewEncoder(w).Encode(toResponse(created[0]))
	} else {
		resp := make([]transactionResponse, len(created))
		for i, tx := range created {
			resp[i] = toResponse(tx)
		}

		err = json.NewEncoder(w).Encode(resp)
	}

	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeCreateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, transaction.ErrInvalidType),
		errors.Is(err, transaction.ErrInvalidAmount),
		errors.Is(err, integrity.ErrInvalidReference):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (h *Handler) filterFromQuery(r *http.Request) (transaction.ListFilter, error) {
	var filter transaction.ListFilter

	if raw := r.URL.Query().Get("projectId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid projectId")
		}

		filter.ProjectID = &id
	}

	if raw := r.URL.Query().Get("employeeId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid employeeId")
		}

		filter.EmployeeID = &id
	}

	if raw := r.URL.Query().Get("type"); raw != "" {
		t := transaction.Type(raw)
		if t != transaction.TypeIncome && t != transaction.TypeExpense {
			return filter, fmt.Errorf("invalid type")
		}

		filter.Type = &t
	}

	if raw := r.URL.Query().Get("startDate"); raw != "" {
		d, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return filter, fmt.Errorf("invalid startDate")
		}

		filter.StartDate = &d
	}

	if raw := r.URL.Query().Get("endDate"); raw != "" {
		d, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return filter, fmt.Errorf("invalid endDate")
		}

		filter.EndDate = &d
	}

	return filter, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := h.filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	transactions, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]transactionResponse, len(transactions))
	for i, tx := range transactions {
		resp[i] = toResponse(tx)
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

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

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

	if err := h.integrity.Delete(r.Context(), integrity.EntityTransaction, id); err != nil {
		switch {
		case errors.Is(err, integrity.ErrUnauthorized):
			http.Error(w, "only admins can delete transactions", http.StatusForbidden)
		case errors.Is(err, integrity.ErrNotFound):
			http.Error(w, "transaction not found", http.StatusNotFound)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// export streams the (optionally filtered) ledger as CSV, mirroring the
// import format so exported files round-trip.
func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	filter, err := h.filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	transactions, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)

	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"reference", "date", "type", "amount", "category", "description"}); err != nil {
		slog.Error("failed to write export header", "error", err)
		return
	}

	for _, tx := range transactions {
		record := []string{
			tx.Reference,
			tx.Date.Format(time.DateOnly),
			string(tx.Type),
			tx.Amount.String(),
			tx.Category,
			tx.Description,
		}

		if err := cw.Write(record); err != nil {
			slog.Error("failed to write export row", "error", err)
			return
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		slog.Error("failed to flush export", "error", err)
	}
}
