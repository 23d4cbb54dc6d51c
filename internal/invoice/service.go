package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	ListInvoices(ctx context.Context) ([]*Invoice, error)
	UpdateInvoice(ctx context.Context, inv *Invoice) error
}

// ReferenceResolver is satisfied by *integrity.Resolver.
type ReferenceResolver interface {
	Project(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
	refs ReferenceResolver
}

func NewService(repo Repository, refs ReferenceResolver) *Service {
	return &Service{repo: repo, refs: refs}
}

type CreateParams struct {
	ProjectID   *uuid.UUID
	ClientName  string
	ClientEmail string
	Items       []Item
	Total       decimal.Decimal
	Status      string
	Date        time.Time
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Invoice, error) {
	if params.ProjectID != nil {
		if err := s.refs.Project(ctx, *params.ProjectID); err != nil {
			return nil, err
		}
	}

	status := params.Status
	if status == "" {
		status = StatusDraft
	}

	date := params.Date
	if date.IsZero() {
		date = time.Now()
	}

	inv := &Invoice{
		ProjectID:   params.ProjectID,
		ClientName:  params.ClientName,
		ClientEmail: params.ClientEmail,
		Items:       params.Items,
		Total:       params.Total,
		Status:      status,
		Date:        date,
	}

	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		return nil, fmt.Errorf("creating invoice: %w", err)
	}

	return inv, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx)
}

func (s *Service) Update(ctx context.Context, inv *Invoice) error {
	if inv.ProjectID != nil {
		if err := s.refs.Project(ctx, *inv.ProjectID); err != nil {
			return err
		}
	}

	return s.repo.UpdateInvoice(ctx, inv)
}
