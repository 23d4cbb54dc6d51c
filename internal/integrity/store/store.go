package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/atelierhq/atelier/internal/integrity"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Begin(ctx context.Context) (integrity.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning delete tx: %w", err)
	}

	return &deleteTx{tx: dbTx}, nil
}

func (s *Store) ProjectExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.exists(ctx, "projects", id)
}

func (s *Store) EmployeeExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.exists(ctx, "employees", id)
}

func (s *Store) InvoiceExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.exists(ctx, "invoices", id)
}

func (s *Store) exists(ctx context.Context, table string, id uuid.UUID) (bool, error) {
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)", table)

	var ok bool
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("checking %s existence: %w", table, err)
	}

	return ok, nil
}

type deleteTx struct {
	tx *sql.Tx
}

func (t *deleteTx) Commit() error   { return t.tx.Commit() }
func (t *deleteTx) Rollback() error { return t.tx.Rollback() }

func (t *deleteTx) DeleteWhere(ctx context.Context, table, column string, id uuid.UUID) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", table, column)

	if _, err := t.tx.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting from %s: %w", table, err)
	}

	return nil
}

func (t *deleteTx) NullifyWhere(ctx context.Context, table, column string, id uuid.UUID) error {
	query := fmt.Sprintf("UPDATE %s SET %s = NULL WHERE %s = $1", table, column, column)

	if _, err := t.tx.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("clearing %s.%s: %w", table, column, err)
	}

	return nil
}

func (t *deleteTx) DeleteByID(ctx context.Context, table string, id uuid.UUID) (int64, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", table)

	res, err := t.tx.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("deleting from %s: %w", table, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted rows: %w", err)
	}

	return n, nil
}
