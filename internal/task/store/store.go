package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/atelierhq/atelier/internal/task"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectTaskColumns = `
	id, title, project_id, assignee_id, assignee_name, cost, status,
	payment_status, created_at, updated_at
`

func scanTask(s scanner) (*task.Task, error) {
	var t task.Task

	var status, paymentStatus string

	if err := s.Scan(
		&t.ID, &t.Title, &t.ProjectID, &t.AssigneeID, &t.AssigneeName, &t.Cost,
		&status, &paymentStatus, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}

	t.Status = task.Status(status)
	t.PaymentStatus = task.PaymentStatus(paymentStatus)

	return &t, nil
}

func (s *Store) CreateTask(ctx context.Context, t *task.Task) error {
	query := `
		INSERT INTO tasks (title, project_id, assignee_id, assignee_name, cost, status, payment_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		t.Title,
		t.ProjectID,
		t.AssigneeID,
		t.AssigneeName,
		t.Cost,
		t.Status,
		t.PaymentStatus,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating task: %w", err)
	}

	return nil
}

func (s *Store) GetTask(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	query := `SELECT ` + selectTaskColumns + ` FROM tasks WHERE id = $1`

	t, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, task.ErrNotFound
		}

		return nil, fmt.Errorf("getting task: %w", err)
	}

	return t, nil
}

func (s *Store) ListTasks(ctx context.Context, filter task.ListFilter) ([]*task.Task, error) {
	query := `SELECT ` + selectTaskColumns + ` FROM tasks WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.ProjectID != nil {
		query += fmt.Sprintf(" AND project_id = $%d", argIdx)

		args = append(args, *filter.ProjectID)
		argIdx++
	}

	if filter.AssigneeID != nil {
		query += fmt.Sprintf(" AND assignee_id = $%d", argIdx)

		args = append(args, *filter.AssigneeID)
		argIdx++
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*task.Task

	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}

		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task rows: %w", err)
	}

	return tasks, nil
}

// UpdateTask never touches project_id; the project reference is fixed at
// creation time.
func (s *Store) UpdateTask(ctx context.Context, t *task.Task) error {
	query := `
		UPDATE tasks
		SET title = $1, assignee_id = $2, assignee_name = $3, cost = $4,
			status = $5, payment_status = $6, updated_at = NOW()
		WHERE id = $7
	`

	res, err := s.db.ExecContext(ctx, query,
		t.Title,
		t.AssigneeID,
		t.AssigneeName,
		t.Cost,
		t.Status,
		t.PaymentStatus,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return task.ErrNotFound
	}

	return nil
}
