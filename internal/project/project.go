package project

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("project not found")
	ErrDuplicateCode = errors.New("duplicate project code")
)

const DefaultStatus = "In Progress"

// Project is a client engagement. Income is the fixed budget allocated to
// it, not a running balance; actuals are derived from the ledger on read.
type Project struct {
	ID          uuid.UUID
	CustomID    string // P-00001-2026, system-generated
	Name        string
	Client      string
	ClientEmail string
	ClientPhone string
	Description string
	Income      decimal.Decimal
	StartDate   *time.Time
	Status      string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
