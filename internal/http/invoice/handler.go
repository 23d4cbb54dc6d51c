package invoice

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/atelierhq/atelier/internal/http/request"
	"github.com/atelierhq/atelier/internal/integrity"
	"github.com/atelierhq/atelier/internal/invoice"
	"github.com/atelierhq/atelier/internal/payment"
)

type Handler struct {
	svc       *invoice.Service
	payments  *payment.Service
	integrity *integrity.Manager
}

func NewHandler(svc *invoice.Service, payments *payment.Service, integrity *integrity.Manager) *Handler {
	return &Handler{svc: svc, payments: payments, integrity: integrity}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/pay", h.pay)
}

type invoiceResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProjectID   *uuid.UUID      `json:"projectId,omitempty"`
	ClientName  string          `json:"clientName"`
	ClientEmail string          `json:"clientEmail,omitempty"`
	Items       []invoice.Item  `json:"items"`
	Total       decimal.Decimal `json:"total"`
	Status      string          `json:"status"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   *time.Time      `json:"updatedAt,omitempty"`
}

func toResponse(inv *invoice.Invoice) invoiceResponse {
	items := inv.Items
	if items == nil {
		items = []invoice.Item{}
	}

	return invoiceResponse{
		ID:          inv.ID,
		ProjectID:   inv.ProjectID,
		ClientName:  inv.ClientName,
		ClientEmail: inv.ClientEmail,
		Items:       items,
		Total:       inv.Total,
		Status:      inv.Status,
		Date:        inv.Date,
		CreatedAt:   inv.CreatedAt,
		UpdatedAt:   inv.UpdatedAt,
	}
}

type createInvoiceRequest struct {
	ProjectID   *uuid.UUID      `json:"projectId,omitempty"`
	ClientName  string          `json:"clientName"`
	ClientEmail string          `json:"clientEmail"`
	Items       []invoice.Item  `json:"items"`
	Total       decimal.Decimal `json:"total"`
	Status      string          `json:"status"`
	Date        *time.Time      `json:"date,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.ClientName == "" {
		http.Error(w, "clientName is required", http.StatusBadRequest)
		return
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	inv, err := h.svc.Create(r.Context(), invoice.CreateParams{
		ProjectID:   req.ProjectID,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		Items:       req.Items,
		Total:       req.Total,
		Status:      req.Status,
		Date:        date,
	})
	if err != nil {
		if errors.Is(err, integrity.ErrInvalidReference) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]invoiceResponse, len(invoices))
	for i, inv := range invoices {
		resp[i] = toResponse(inv)
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

	inv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			http.Error(w, "invoice not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateInvoiceRequest struct {
	ProjectID   request.OptionalUUID `json:"projectId,omitempty"`
	ClientName  *string              `json:"clientName,omitempty"`
	ClientEmail *string              `json:"clientEmail,omitempty"`
	Items       []invoice.Item       `json:"items,omitempty"`
	Total       *decimal.Decimal     `json:"total,omitempty"`
	Status      *string              `json:"status,omitempty"`
	Date        *time.Time           `json:"date,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	inv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			http.Error(w, "invoice not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.ProjectID.Set {
		inv.ProjectID = req.ProjectID.Value
	}

	if req.ClientName != nil {
		inv.ClientName = *req.ClientName
	}

	if req.ClientEmail != nil {
		inv.ClientEmail = *req.ClientEmail
	}

	if req.Items != nil {
		inv.Items = req.Items
	}

	if req.Total != nil {
		inv.Total = *req.Total
	}

	if req.Status != nil {
		inv.Status = *req.Status
	}

	if req.Date != nil {
		inv.Date = *req.Date
	}

	if err := h.svc.Update(r.Context(), inv); err != nil {
		if errors.Is(err, integrity.ErrInvalidReference) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.integrity.Delete(r.Context(), integrity.EntityInvoice, id); err != nil {
		switch {
		case errors.Is(err, integrity.ErrUnauthorized):
			http.Error(w, "only admins can delete invoices", http.StatusForbidden)
		case errors.Is(err, integrity.ErrNotFound):
			http.Error(w, "invoice not found", http.StatusNotFound)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type payResponse struct {
	Invoice       invoiceResponse `json:"invoice"`
	TransactionID uuid.UUID       `json:"transactionId"`
	Reference     string          `json:"reference"`
	Amount        decimal.Decimal `json:"amount"`
}

func (h *Handler) pay(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	tx, err := h.payments.PayInvoice(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, invoice.ErrNotFound):
			http.Error(w, "invoice not found", http.StatusNotFound)
		case errors.Is(err, payment.ErrInvalidAmount):
			http.Error(w, "invoice has no payable total", http.StatusBadRequest)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	inv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	resp := payResponse{
		Invoice:       toResponse(inv),
		TransactionID: tx.ID,
		Reference:     tx.Reference,
		Amount:        tx.Amount,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
