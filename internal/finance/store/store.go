package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/atelierhq/atelier/internal/finance"
	"github.com/atelierhq/atelier/internal/task"
	"github.com/atelierhq/atelier/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ProjectEntries(ctx context.Context, projectID uuid.UUID) ([]finance.Entry, error) {
	query := `SELECT type, amount FROM transactions WHERE project_id = $1`

	rows, err := s.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []finance.Entry

	for rows.Next() {
		var e finance.Entry

		var typ string

		if err := rows.Scan(&typ, &e.Amount); err != nil {
			return nil, fmt.Errorf("scanning ledger entry: %w", err)
		}

		e.Type = transaction.Type(typ)

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger entries: %w", err)
	}

	return entries, nil
}

func (s *Store) ProjectTaskTally(ctx context.Context, projectID uuid.UUID) (finance.TaskTally, error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE status = $2)
		FROM tasks
		WHERE project_id = $1
	`

	var tally finance.TaskTally

	err := s.db.QueryRowContext(ctx, query, projectID, task.StatusCompleted).
		Scan(&tally.Total, &tally.Completed)
	if err != nil {
		return finance.TaskTally{}, fmt.Errorf("tallying tasks: %w", err)
	}

	return tally, nil
}
