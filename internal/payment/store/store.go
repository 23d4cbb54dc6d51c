package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/atelierhq/atelier/internal/invoice"
	"github.com/atelierhq/atelier/internal/payment"
	"github.com/atelierhq/atelier/internal/task"
	"github.com/atelierhq/atelier/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Begin(ctx context.Context) (payment.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning payment tx: %w", err)
	}

	return &paymentTx{tx: dbTx}, nil
}

type paymentTx struct {
	tx *sql.Tx
}

func (p *paymentTx) Commit() error   { return p.tx.Commit() }
func (p *paymentTx) Rollback() error { return p.tx.Rollback() }

func (p *paymentTx) TaskForUpdate(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	query := `
		SELECT id, title, project_id, assignee_id, assignee_name, cost, status, payment_status
		FROM tasks
		WHERE id = $1
		FOR UPDATE
	`

	var t task.Task

	var status, paymentStatus string

	err := p.tx.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Title, &t.ProjectID, &t.AssigneeID, &t.AssigneeName,
		&t.Cost, &status, &paymentStatus,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, task.ErrNotFound
		}

		return nil, fmt.Errorf("locking task: %w", err)
	}

	t.Status = task.Status(status)
	t.PaymentStatus = task.PaymentStatus(paymentStatus)

	return &t, nil
}

func (p *paymentTx) SetTaskPaymentStatus(ctx context.Context, id uuid.UUID, status task.PaymentStatus) error {
	query := `UPDATE tasks SET payment_status = $1, updated_at = NOW() WHERE id = $2`

	if _, err := p.tx.ExecContext(ctx, query, status, id); err != nil {
		return fmt.Errorf("updating task payment status: %w", err)
	}

	return nil
}

func (p *paymentTx) InvoiceForUpdate(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	query := `
		SELECT id, project_id, client_name, total, status
		FROM invoices
		WHERE id = $1
		FOR UPDATE
	`

	var inv invoice.Invoice

	err := p.tx.QueryRowContext(ctx, query, id).Scan(
		&inv.ID, &inv.ProjectID, &inv.ClientName, &inv.Total, &inv.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("locking invoice: %w", err)
	}

	return &inv, nil
}

func (p *paymentTx) SetInvoiceStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE invoices SET status = $1, updated_at = NOW() WHERE id = $2`

	if _, err := p.tx.ExecContext(ctx, query, status, id); err != nil {
		return fmt.Errorf("updating invoice status: %w", err)
	}

	return nil
}

func (p *paymentTx) InvoiceTransaction(ctx context.Context, invoiceID uuid.UUID) (*transaction.Transaction, error) {
	query := `
		SELECT id, reference, type, amount, category, description, date,
			project_id, employee_id, invoice_id, created_at
		FROM transactions
		WHERE invoice_id = $1
		ORDER BY created_at
		LIMIT 1
	`

	var tx transaction.Transaction

	var typ string

	err := p.tx.QueryRowContext(ctx, query, invoiceID).Scan(
		&tx.ID, &tx.Reference, &typ, &tx.Amount, &tx.Category, &tx.Description,
		&tx.Date, &tx.ProjectID, &tx.EmployeeID, &tx.InvoiceID, &tx.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("finding invoice transaction: %w", err)
	}

	tx.Type = transaction.Type(typ)

	return &tx, nil
}

func (p *paymentTx) EmployeeName(ctx context.Context, id uuid.UUID) (string, error) {
	query := `SELECT name FROM employees WHERE id = $1`

	var name string

	err := p.tx.QueryRowContext(ctx, query, id).Scan(&name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}

		return "", fmt.Errorf("looking up employee name: %w", err)
	}

	return name, nil
}

func (p *paymentTx) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (reference, type, amount, category, description, date, project_id, employee_id, invoice_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id, created_at
	`

	err := p.tx.QueryRowContext(ctx, query,
		tx.Reference,
		tx.Type,
		tx.Amount,
		tx.Category,
		tx.Description,
		tx.Date,
		tx.ProjectID,
		tx.EmployeeID,
		tx.InvoiceID,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "transactions_reference_key" {
			return transaction.ErrDuplicateReference
		}

		return fmt.Errorf("creating payment transaction: %w", err)
	}

	return nil
}
