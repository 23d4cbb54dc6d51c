package integrity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Entity names a record type managed by the store.
type Entity string

const (
	EntityProject     Entity = "project"
	EntityEmployee    Entity = "employee"
	EntityTask        Entity = "task"
	EntityInvoice     Entity = "invoice"
	EntityTransaction Entity = "transaction"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrInvalidReference = errors.New("invalid reference")
	ErrUnauthorized     = errors.New("unauthorized")
)

// Action says what happens to dependent rows when their parent is deleted.
type Action int

const (
	ActionCascade Action = iota
	ActionSetNull
)

// Rule binds a dependent table/column to the action applied on parent delete.
type Rule struct {
	Table  string
	Column string
	Action Action
}

// deleteRules is the single place the cross-entity deletion contract lives.
// Set-null behavior for dangling optional references is additionally enforced
// by the schema's ON DELETE SET NULL clauses as a backstop.
var deleteRules = map[Entity][]Rule{
	EntityProject: {
		{Table: "tasks", Column: "project_id", Action: ActionCascade},
		{Table: "invoices", Column: "project_id", Action: ActionCascade},
		{Table: "transactions", Column: "project_id", Action: ActionCascade},
	},
	EntityEmployee: {
		{Table: "tasks", Column: "assignee_id", Action: ActionCascade},
		{Table: "transactions", Column: "employee_id", Action: ActionCascade},
	},
	EntityInvoice: {
		{Table: "transactions", Column: "invoice_id", Action: ActionCascade},
	},
	EntityTask:        nil,
	EntityTransaction: nil,
}

var tables = map[Entity]string{
	EntityProject:     "projects",
	EntityEmployee:    "employees",
	EntityTask:        "tasks",
	EntityInvoice:     "invoices",
	EntityTransaction: "transactions",
}

// restricted lists entities whose deletion requires the administrator
// capability.
var restricted = map[Entity]bool{
	EntityEmployee:    true,
	EntityInvoice:     true,
	EntityTransaction: true,
}

// Authorizer is the access-control collaborator. It decides whether the
// caller identified by the context holds the administrator capability.
type Authorizer interface {
	RequireAdmin(ctx context.Context) error
}

//go:generate mockgen -source=integrity.go -destination=repository_mock.go -package=integrity
type Repository interface {
	Begin(ctx context.Context) (Tx, error)
}

type Tx interface {
	// DeleteWhere and NullifyWhere only ever receive table/column pairs
	// from the static rule set above.
	DeleteWhere(ctx context.Context, table, column string, id uuid.UUID) error
	NullifyWhere(ctx context.Context, table, column string, id uuid.UUID) error
	DeleteByID(ctx context.Context, table string, id uuid.UUID) (int64, error)
	Commit() error
	Rollback() error
}

// Manager applies the deletion contract: authorization first, then the
// cascade rules and the root delete as one atomic unit.
type Manager struct {
	repo Repository
	auth Authorizer
}

func NewManager(repo Repository, auth Authorizer) *Manager {
	return &Manager{repo: repo, auth: auth}
}

func (m *Manager) Delete(ctx context.Context, entity Entity, id uuid.UUID) error {
	table, ok := tables[entity]
	if !ok {
		return fmt.Errorf("unknown entity %q", entity)
	}

	if restricted[entity] {
		if err := m.auth.RequireAdmin(ctx); err != nil {
			return err
		}
	}

	tx, err := m.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning delete: %w", err)
	}
	defer tx.Rollback()

	for _, rule := range deleteRules[entity] {
		switch rule.Action {
		case ActionCascade:
			if err := tx.DeleteWhere(ctx, rule.Table, rule.Column, id); err != nil {
				return fmt.Errorf("cascading delete to %s: %w", rule.Table, err)
			}
		case ActionSetNull:
			if err := tx.NullifyWhere(ctx, rule.Table, rule.Column, id); err != nil {
				return fmt.Errorf("clearing references in %s: %w", rule.Table, err)
			}
		}
	}

	n, err := tx.DeleteByID(ctx, table, id)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", entity, err)
	}

	if n == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}

	return nil
}
