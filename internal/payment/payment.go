package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/atelierhq/atelier/internal/invoice"
	"github.com/atelierhq/atelier/internal/sequence"
	"github.com/atelierhq/atelier/internal/task"
	"github.com/atelierhq/atelier/internal/transaction"
)

var (
	ErrInvalidCost   = errors.New("invalid task cost")
	ErrInvalidAmount = errors.New("invalid invoice amount")
)

const laborCategory = "Labor"

//go:generate mockgen -source=payment.go -destination=repository_mock.go -package=payment
type Repository interface {
	Begin(ctx context.Context) (Tx, error)
}

// Tx is one payment unit of work. The status flip and the ledger entry
// commit together or not at all.
type Tx interface {
	TaskForUpdate(ctx context.Context, id uuid.UUID) (*task.Task, error)
	SetTaskPaymentStatus(ctx context.Context, id uuid.UUID, status task.PaymentStatus) error

	InvoiceForUpdate(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error)
	SetInvoiceStatus(ctx context.Context, id uuid.UUID, status string) error
	// InvoiceTransaction returns the ledger entry already referencing the
	// invoice, or nil when there is none.
	InvoiceTransaction(ctx context.Context, invoiceID uuid.UUID) (*transaction.Transaction, error)

	// EmployeeName returns "" without error when the employee is gone.
	EmployeeName(ctx context.Context, id uuid.UUID) (string, error)

	CreateTransaction(ctx context.Context, tx *transaction.Transaction) error

	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// PayTask marks the task paid and appends the matching expense entry to the
// ledger as one atomic unit.
func (s *Service) PayTask(ctx context.Context, taskID uuid.UUID) (*transaction.Transaction, error) {
	for attempt := 0; attempt < sequence.MaxAttempts; attempt++ {
		entry, err := s.payTaskOnce(ctx, taskID)
		if errors.Is(err, transaction.ErrDuplicateReference) {
			continue
		}

		if err != nil {
			return nil, err
		}

		return entry, nil
	}

	return nil, sequence.ErrConflict
}

func (s *Service) payTaskOnce(ctx context.Context, taskID uuid.UUID) (*transaction.Transaction, error) {
	ptx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning payment: %w", err)
	}
	defer ptx.Rollback()

	t, err := ptx.TaskForUpdate(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !t.Cost.IsPositive() {
		return nil, fmt.Errorf("task %s: %w", t.ID, ErrInvalidCost)
	}

	payee, err := s.resolvePayee(ctx, ptx, t)
	if err != nil {
		return nil, err
	}

	if err := ptx.SetTaskPaymentStatus(ctx, t.ID, task.PaymentPaid); err != nil {
		return nil, fmt.Errorf("marking task paid: %w", err)
	}

	entry := &transaction.Transaction{
		Reference:   sequence.Reference(),
		Type:        transaction.TypeExpense,
		Amount:      t.Cost,
		Category:    laborCategory,
		Description: fmt.Sprintf("Task Payment: %s (%s)", t.Title, payee),
		Date:        time.Now(),
		ProjectID:   &t.ProjectID,
		EmployeeID:  t.AssigneeID,
	}

	if err := ptx.CreateTransaction(ctx, entry); err != nil {
		return nil, err
	}

	if err := ptx.Commit(); err != nil {
		return nil, fmt.Errorf("committing payment: %w", err)
	}

	return entry, nil
}

// resolvePayee prefers the linked employee's current name, then the task's
// free-text label, then "Unknown".
func (s *Service) resolvePayee(ctx context.Context, ptx Tx, t *task.Task) (string, error) {
	if t.AssigneeID != nil {
		name, err := ptx.EmployeeName(ctx, *t.AssigneeID)
		if err != nil {
			return "", fmt.Errorf("resolving payee: %w", err)
		}

		if name != "" {
			return name, nil
		}
	}

	if t.AssigneeName != "" {
		return t.AssigneeName, nil
	}

	return "Unknown", nil
}

// PayInvoice marks the invoice paid and records the matching income entry.
// It is idempotent: when a ledger entry already references the invoice, that
// entry is returned and nothing new is written.
func (s *Service) PayInvoice(ctx context.Context, invoiceID uuid.UUID) (*transaction.Transaction, error) {
	for attempt := 0; attempt < sequence.MaxAttempts; attempt++ {
		entry, err := s.payInvoiceOnce(ctx, invoiceID)
		if errors.Is(err, transaction.ErrDuplicateReference) {
			continue
		}

		if err != nil {
			return nil, err
		}

		return entry, nil
	}

	return nil, sequence.ErrConflict
}

func (s *Service) payInvoiceOnce(ctx context.Context, invoiceID uuid.UUID) (*transaction.Transaction, error) {
	ptx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning payment: %w", err)
	}
	defer ptx.Rollback()

	inv, err := ptx.InvoiceForUpdate(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if !inv.Total.IsPositive() {
		return nil, fmt.Errorf("invoice %s: %w", inv.ID, ErrInvalidAmount)
	}

	existing, err := ptx.InvoiceTransaction(ctx, inv.ID)
	if err != nil {
		return nil, fmt.Errorf("checking invoice ledger: %w", err)
	}

	if existing != nil {
		return existing, nil
	}

	if err := ptx.SetInvoiceStatus(ctx, inv.ID, invoice.StatusPaid); err != nil {
		return nil, fmt.Errorf("marking invoice paid: %w", err)
	}

	entry := &transaction.Transaction{
		Reference:   sequence.Reference(),
		Type:        transaction.TypeIncome,
		Amount:      inv.Total,
		Category:    "Invoice Payment",
		Description: fmt.Sprintf("Payment for Invoice #%s", inv.ID),
		Date:        time.Now(),
		ProjectID:   inv.ProjectID,
		InvoiceID:   &inv.ID,
	}

	if err := ptx.CreateTransaction(ctx, entry); err != nil {
		return nil, err
	}

	if err := ptx.Commit(); err != nil {
		return nil, fmt.Errorf("committing payment: %w", err)
	}

	return entry, nil
}
