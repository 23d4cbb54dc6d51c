package task

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/atelierhq/atelier/internal/integrity"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=task
type Repository interface {
	CreateTask(ctx context.Context, t *Task) error
	GetTask(ctx context.Context, id uuid.UUID) (*Task, error)
	ListTasks(ctx context.Context, filter ListFilter) ([]*Task, error)
	UpdateTask(ctx context.Context, t *Task) error
}

// ReferenceResolver is satisfied by *integrity.Resolver.
type ReferenceResolver interface {
	Project(ctx context.Context, id uuid.UUID) error
	Employee(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
	refs ReferenceResolver
}

func NewService(repo Repository, refs ReferenceResolver) *Service {
	return &Service{repo: repo, refs: refs}
}

type CreateParams struct {
	Title        string
	ProjectID    uuid.UUID
	AssigneeID   *uuid.UUID
	AssigneeName string
	Cost         decimal.Decimal
}

type ListFilter struct {
	ProjectID  *uuid.UUID
	AssigneeID *uuid.UUID
}

// Create validates references before persisting. The project reference is
// mandatory; an assignee that does not resolve is dropped silently, keeping
// the free-text assignee label as an unlinked payee name.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Task, error) {
	if err := s.refs.Project(ctx, params.ProjectID); err != nil {
		return nil, err
	}

	assigneeID := params.AssigneeID
	if assigneeID != nil {
		err := s.refs.Employee(ctx, *assigneeID)
		if errors.Is(err, integrity.ErrInvalidReference) {
			assigneeID = nil
		} else if err != nil {
			return nil, err
		}
	}

	t := &Task{
		Title:         params.Title,
		ProjectID:     params.ProjectID,
		AssigneeID:    assigneeID,
		AssigneeName:  params.AssigneeName,
		Cost:          params.Cost,
		Status:        StatusPending,
		PaymentStatus: PaymentPending,
	}

	if err := s.repo.CreateTask(ctx, t); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	return t, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Task, error) {
	return s.repo.GetTask(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Task, error) {
	return s.repo.ListTasks(ctx, filter)
}

// Update persists mutable fields. The project reference is immutable; the
// assignee may be set or cleared, and a new assignee must resolve.
func (s *Service) Update(ctx context.Context, t *Task) error {
	if t.AssigneeID != nil {
		if err := s.refs.Employee(ctx, *t.AssigneeID); err != nil {
			return err
		}
	}

	return s.repo.UpdateTask(ctx, t)
}
