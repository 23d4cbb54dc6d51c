package task

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("task not found")

// Status tracks the work itself.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// PaymentStatus tracks whether the task's cost has been paid out. It varies
// independently of Status.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
)

type Task struct {
	ID        uuid.UUID
	Title     string
	ProjectID uuid.UUID // required, immutable after creation
	// AssigneeID links the task to an employee. AssigneeName is a free-text
	// label kept even when no employee record backs it.
	AssigneeID    *uuid.UUID
	AssigneeName  string
	Cost          decimal.Decimal
	Status        Status
	PaymentStatus PaymentStatus
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
