package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/atelierhq/atelier/internal/sequence"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)

	BeginBatch(ctx context.Context) (BatchTx, error)
}

// BatchTx writes a group of ledger entries as one atomic unit.
type BatchTx interface {
	CreateTransactions(ctx context.Context, txs []*Transaction) error
	Commit() error
	Rollback() error
}

// ReferenceResolver is satisfied by *integrity.Resolver.
type ReferenceResolver interface {
	Project(ctx context.Context, id uuid.UUID) error
	Employee(ctx context.Context, id uuid.UUID) error
	Invoice(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
	refs ReferenceResolver
}

func NewService(repo Repository, refs ReferenceResolver) *Service {
	return &Service{repo: repo, refs: refs}
}

type CreateParams struct {
	Type        Type
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        time.Time
	ProjectID   *uuid.UUID
	EmployeeID  *uuid.UUID
	InvoiceID   *uuid.UUID
}

type ListFilter struct {
	ProjectID  *uuid.UUID
	EmployeeID *uuid.UUID
	Type       *Type
	StartDate  *time.Time
	EndDate    *time.Time
}

func (p CreateParams) validate() error {
	if p.Type != TypeIncome && p.Type != TypeExpense {
		return fmt.Errorf("%q: %w", p.Type, ErrInvalidType)
	}

	if p.Amount.IsNegative() {
		return fmt.Errorf("%s: %w", p.Amount, ErrInvalidAmount)
	}

	return nil
}

func (s *Service) resolve(ctx context.Context, p CreateParams) error {
	if p.ProjectID != nil {
		if err := s.refs.Project(ctx, *p.ProjectID); err != nil {
			return err
		}
	}

	if p.EmployeeID != nil {
		if err := s.refs.Employee(ctx, *p.EmployeeID); err != nil {
			return err
		}
	}

	if p.InvoiceID != nil {
		if err := s.refs.Invoice(ctx, *p.InvoiceID); err != nil {
			return err
		}
	}

	return nil
}

func build(p CreateParams) *Transaction {
	date := p.Date
	if date.IsZero() {
		date = time.Now()
	}

	return &Transaction{
		Reference:   sequence.Reference(),
		Type:        p.Type,
		Amount:      p.Amount,
		Category:    p.Category,
		Description: p.Description,
		Date:        date,
		ProjectID:   p.ProjectID,
		EmployeeID:  p.EmployeeID,
		InvoiceID:   p.InvoiceID,
	}
}

// Create validates the entry, resolves its references and persists it. A
// reference collision gets a fresh code before the write is retried.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	if err := s.resolve(ctx, params); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < sequence.MaxAttempts; attempt++ {
		tx := build(params)

		err := s.repo.CreateTransaction(ctx, tx)
		if errors.Is(err, ErrDuplicateReference) {
			continue
		}

		if err != nil {
			return nil, err
		}

		return tx, nil
	}

	return nil, sequence.ErrConflict
}

// CreateBatch persists a group of entries atomically: either every entry
// lands or none do.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	for _, p := range params {
		if err := p.validate(); err != nil {
			return nil, err
		}

		if err := s.resolve(ctx, p); err != nil {
			return nil, err
		}
	}

	for attempt := 0; attempt < sequence.MaxAttempts; attempt++ {
		txs, err := s.createBatchOnce(ctx, params)
		if errors.Is(err, ErrDuplicateReference) {
			continue
		}

		if err != nil {
			return nil, err
		}

		return txs, nil
	}

	return nil, sequence.ErrConflict
}

func (s *Service) createBatchOnce(ctx context.Context, params []CreateParams) ([]*Transaction, error) {
	btx, err := s.repo.BeginBatch(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin batch: %w", err)
	}
	defer btx.Rollback()

	txs := make([]*Transaction, len(params))
	for i, p := range params {
		txs[i] = build(p)
	}

	if err := btx.CreateTransactions(ctx, txs); err != nil {
		return nil, err
	}

	if err := btx.Commit(); err != nil {
		return nil, fmt.Errorf("commit batch: %w", err)
	}

	return txs, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}
