package employee

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/atelierhq/atelier/internal/employee"
	"github.com/atelierhq/atelier/internal/integrity"
	"github.com/atelierhq/atelier/internal/sequence"
)

type Handler struct {
	svc       *employee.Service
	integrity *integrity.Manager
}

func NewHandler(svc *employee.Service, integrity *integrity.Manager) *Handler {
	return &Handler{svc: svc, integrity: integrity}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type employeeResponse struct {
	ID         uuid.UUID        `json:"id"`
	CustomID   string           `json:"customId"`
	Name       string           `json:"name"`
	Role       string           `json:"role,omitempty"`
	Department string           `json:"department"`
	Type       employee.Type    `json:"type"`
	Salary     *decimal.Decimal `json:"salary,omitempty"`
	Email      string           `json:"email,omitempty"`
	Phone      string           `json:"phone,omitempty"`
	Status     string           `json:"status"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  *time.Time       `json:"updatedAt,omitempty"`
}

func toResponse(e *employee.Employee) employeeResponse {
	return employeeResponse{
		ID:         e.ID,
		CustomID:   e.CustomID,
		Name:       e.Name,
		Role:       e.Role,
		Department: e.Department,
		Type:       e.Type,
		Salary:     e.Salary,
		Email:      e.Email,
		Phone:      e.Phone,
		Status:     e.Status,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

type createEmployeeRequest struct {
	Name       string           `json:"name"`
	Role       string           `json:"role"`
	Department string           `json:"department"`
	Type       employee.Type    `json:"type"`
	Salary     *decimal.Decimal `json:"salary,omitempty"`
	Email      string           `json:"email"`
	Phone      string           `json:"phone"`
	Status     string           `json:"status"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	e, err := h.svc.Create(r.Context(), employee.CreateParams{
		Name:       req.Name,
		Role:       req.Role,
		Department: req.Department,
		Type:       req.Type,
		Salary:     req.Salary,
		Email:      req.Email,
		Phone:      req.Phone,
		Status:     req.Status,
	})
	if err != nil {
		if errors.Is(err, sequence.ErrConflict) {
			http.Error(w, "could not allocate employee code", http.StatusConflict)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	employees, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]employeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = toResponse(e)
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

	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			http.Error(w, "employee not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateEmployeeRequest struct {
	Name       *string          `json:"name,omitempty"`
	Role       *string          `json:"role,omitempty"`
	Department *string          `json:"department,omitempty"`
	Type       *employee.Type   `json:"type,omitempty"`
	Salary     *decimal.Decimal `json:"salary,omitempty"`
	Email      *string          `json:"email,omitempty"`
	Phone      *string          `json:"phone,omitempty"`
	Status     *string          `json:"status,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			http.Error(w, "employee not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.Name != nil {
		e.Name = *req.Name
	}

	if req.Role != nil {
		e.Role = *req.Role
	}

	if req.Department != nil {
		e.Department = *req.Department
	}

	if req.Type != nil {
		e.Type = *req.Type
	}

	if req.Salary != nil {
		e.Salary = req.Salary
	}

	if req.Email != nil {
		e.Email = *req.Email
	}

	if req.Phone != nil {
		e.Phone = *req.Phone
	}

	if req.Status != nil {
		e.Status = *req.Status
	}

	if err := h.svc.Update(r.Context(), e); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.integrity.Delete(r.Context(), integrity.EntityEmployee, id); err != nil {
		switch {
		case errors.Is(err, integrity.ErrUnauthorized):
			http.Error(w, "only admins can delete employees", http.StatusForbidden)
		case errors.Is(err, integrity.ErrNotFound):
			http.Error(w, "employee not found", http.StatusNotFound)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
