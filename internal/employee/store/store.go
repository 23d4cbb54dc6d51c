package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/atelierhq/atelier/internal/employee"
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

const selectEmployeeColumns = `
	id, custom_id, name, role, department, type, salary, email, phone,
	status, created_at, updated_at
`

func scanEmployee(s scanner) (*employee.Employee, error) {
	var e employee.Employee

	var typ string

	if err := s.Scan(
		&e.ID, &e.CustomID, &e.Name, &e.Role, &e.Department, &typ, &e.Salary,
		&e.Email, &e.Phone, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	e.Type = employee.Type(typ)

	return &e, nil
}

func (s *Store) CreateEmployee(ctx context.Context, e *employee.Employee) error {
	query := `
		INSERT INTO employees (custom_id, name, role, department, type, salary, email, phone, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.CustomID,
		e.Name,
		e.Role,
		e.Department,
		e.Type,
		e.Salary,
		e.Email,
		e.Phone,
		e.Status,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "employees_custom_id_key" {
			return employee.ErrDuplicateCode
		}

		return fmt.Errorf("creating employee: %w", err)
	}

	return nil
}

func (s *Store) GetEmployee(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
	query := `SELECT ` + selectEmployeeColumns + ` FROM employees WHERE id = $1`

	e, err := scanEmployee(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, employee.ErrNotFound
		}

		return nil, fmt.Errorf("getting employee: %w", err)
	}

	return e, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]*employee.Employee, error) {
	query := `SELECT ` + selectEmployeeColumns + ` FROM employees ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	defer rows.Close()

	var employees []*employee.Employee

	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning employee: %w", err)
		}

		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating employee rows: %w", err)
	}

	return employees, nil
}

func (s *Store) UpdateEmployee(ctx context.Context, e *employee.Employee) error {
	query := `
		UPDATE employees
		SET name = $1, role = $2, department = $3, type = $4, salary = $5,
			email = $6, phone = $7, status = $8, updated_at = NOW()
		WHERE id = $9
	`

	res, err := s.db.ExecContext(ctx, query,
		e.Name,
		e.Role,
		e.Department,
		e.Type,
		e.Salary,
		e.Email,
		e.Phone,
		e.Status,
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating employee: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return employee.ErrNotFound
	}

	return nil
}
