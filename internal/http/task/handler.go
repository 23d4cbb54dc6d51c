package task

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
	"github.com/atelierhq/atelier/internal/payment"
	"github.com/atelierhq/atelier/internal/task"
	"github.com/atelierhq/atelier/internal/transaction"
)

type Handler struct {
	svc       *task.Service
	payments  *payment.Service
	integrity *integrity.Manager
}

func NewHandler(svc *task.Service, payments *payment.Service, integrity *integrity.Manager) *Handler {
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

type taskResponse struct {
	ID            uuid.UUID          `json:"id"`
	Title         string             `json:"title"`
	ProjectID     uuid.UUID          `json:"projectId"`
	AssigneeID    *uuid.UUID         `json:"assigneeId,omitempty"`
	AssigneeName  string             `json:"assigneeName,omitempty"`
	Cost          decimal.Decimal    `json:"cost"`
	Status        task.Status        `json:"status"`
	PaymentStatus task.PaymentStatus `json:"paymentStatus"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     *time.Time         `json:"updatedAt,omitempty"`
}

func toResponse(t *task.Task) taskResponse {
	return taskResponse{
		ID:            t.ID,
		Title:         t.Title,
		ProjectID:     t.ProjectID,
		AssigneeID:    t.AssigneeID,
		AssigneeName:  t.AssigneeName,
		Cost:          t.Cost,
		Status:        t.Status,
		PaymentStatus: t.PaymentStatus,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

type createTaskRequest struct {
	Title        string          `json:"title"`
	ProjectID    uuid.UUID       `json:"projectId"`
	AssigneeID   *uuid.UUID      `json:"assigneeId,omitempty"`
	AssigneeName string          `json:"assigneeName"`
	Cost         decimal.Decimal `json:"cost"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	if req.ProjectID == uuid.Nil {
		http.Error(w, "projectId is required", http.StatusBadRequest)
		return
	}

	t, err := h.svc.Create(r.Context(), task.CreateParams{
		Title:        req.Title,
		ProjectID:    req.ProjectID,
		AssigneeID:   req.AssigneeID,
		AssigneeName: req.AssigneeName,
		Cost:         req.Cost,
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

	if err := json.NewEncoder(w).Encode(toResponse(t)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var filter task.ListFilter

	if raw := r.URL.Query().Get("projectId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid projectId", http.StatusBadRequest)
			return
		}

		filter.ProjectID = &id
	}

	if raw := r.URL.Query().Get("assigneeId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid assigneeId", http.StatusBadRequest)
			return
		}

		filter.AssigneeID = &id
	}

	tasks, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		resp[i] = toResponse(t)
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

	t, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, task.ErrNotFound) {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(t)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateTaskRequest struct {
	Title         *string              `json:"title,omitempty"`
	AssigneeID    request.OptionalUUID `json:"assigneeId,omitempty"`
	AssigneeName  *string              `json:"assigneeName,omitempty"`
	Cost          *decimal.Decimal     `json:"cost,omitempty"`
	Status        *task.Status         `json:"status,omitempty"`
	PaymentStatus *task.PaymentStatus  `json:"paymentStatus,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	t, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, task.ErrNotFound) {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.Title != nil {
		t.Title = *req.Title
	}

	if req.AssigneeID.Set {
		t.AssigneeID = req.AssigneeID.Value
	}

	if req.AssigneeName != nil {
		t.AssigneeName = *req.AssigneeName
	}

	if req.Cost != nil {
		t.Cost = *req.Cost
	}

	if req.Status != nil {
		t.Status = *req.Status
	}

	if req.PaymentStatus != nil {
		t.PaymentStatus = *req.PaymentStatus
	}

	if err := h.svc.Update(r.Context(), t); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(t)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.integrity.Delete(r.Context(), integrity.EntityTask, id); err != nil {
		if errors.Is(err, integrity.ErrNotFound) {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type payResponse struct {
	Task        taskResponse           `json:"task"`
	Transaction transactionPayResponse `json:"transaction"`
}

type transactionPayResponse struct {
	ID          uuid.UUID       `json:"id"`
	Reference   string          `json:"reference"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

func (h *Handler) pay(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	tx, err := h.payments.PayTask(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, task.ErrNotFound):
			http.Error(w, "task not found", http.StatusNotFound)
		case errors.Is(err, payment.ErrInvalidCost):
			http.Error(w, "task has no payable cost", http.StatusBadRequest)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	t, err := h.svc.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	resp := payResponse{
		Task:        toResponse(t),
		Transaction: toPayResponse(tx),
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toPayResponse(tx *transaction.Transaction) transactionPayResponse {
	return transactionPayResponse{
		ID:          tx.ID,
		Reference:   tx.Reference,
		Type:        string(tx.Type),
		Amount:      tx.Amount,
		Category:    tx.Category,
		Description: tx.Description,
	}
}
