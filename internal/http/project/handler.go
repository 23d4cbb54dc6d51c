package project

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/atelierhq/atelier/internal/finance"
	"github.com/atelierhq/atelier/internal/integrity"
	"github.com/atelierhq/atelier/internal/project"
	"github.com/atelierhq/atelier/internal/sequence"
)

type Handler struct {
	svc       *project.Service
	finances  *finance.Service
	integrity *integrity.Manager
}

func NewHandler(svc *project.Service, finances *finance.Service, integrity *integrity.Manager) *Handler {
	return &Handler{svc: svc, finances: finances, integrity: integrity}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createProjectRequest struct {
	Name        string          `json:"name"`
	Client      string          `json:"client"`
	ClientEmail string          `json:"clientEmail"`
	ClientPhone string          `json:"clientPhone"`
	Description string          `json:"description"`
	Income      decimal.Decimal `json:"income"`
	StartDate   *time.Time      `json:"startDate,omitempty"`
	Status      string          `json:"status"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	p, err := h.svc.Create(r.Context(), project.CreateParams{
		Name:        req.Name,
		Client:      req.Client,
		ClientEmail: req.ClientEmail,
		ClientPhone: req.ClientPhone,
		Description: req.Description,
		Income:      req.Income,
		StartDate:   req.StartDate,
		Status:      req.Status,
	})
	if err != nil {
		if errors.Is(err, sequence.ErrConflict) {
			http.Error(w, "could not allocate project code", http.StatusConflict)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	h.respond(w, r, p, http.StatusCreated)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	projects, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]projectResponse, 0, len(projects))

	for _, p := range projects {
		summary, err := h.finances.Summarize(r.Context(), p.ID, p.Income)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp = append(resp, toResponse(p, summary))
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

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	h.respond(w, r, p, http.StatusOK)
}

type updateProjectRequest struct {
	Name        *string          `json:"name,omitempty"`
	Client      *string          `json:"client,omitempty"`
	ClientEmail *string          `json:"clientEmail,omitempty"`
	ClientPhone *string          `json:"clientPhone,omitempty"`
	Description *string          `json:"description,omitempty"`
	Income      *decimal.Decimal `json:"income,omitempty"`
	StartDate   *time.Time       `json:"startDate,omitempty"`
	Status      *string          `json:"status,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.Name != nil {
		p.Name = *req.Name
	}

	if req.Client != nil {
		p.Client = *req.Client
	}

	if req.ClientEmail != nil {
		p.ClientEmail = *req.ClientEmail
	}

	if req.ClientPhone != nil {
		p.ClientPhone = *req.ClientPhone
	}

	if req.Description != nil {
		p.Description = *req.Description
	}

	if req.Income != nil {
		p.Income = *req.Income
	}

	if req.StartDate != nil {
		p.StartDate = req.StartDate
	}

	if req.Status != nil {
		p.Status = *req.Status
	}

	if err := h.svc.Update(r.Context(), p); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.respond(w, r, p, http.StatusOK)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.integrity.Delete(r.Context(), integrity.EntityProject, id); err != nil {
		if errors.Is(err, integrity.ErrNotFound) {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, p *project.Project, status int) {
	summary, err := h.finances.Summarize(r.Context(), p.ID, p.Income)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(toResponse(p, summary)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
