package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type represents the direction of a ledger entry. The amount itself is
// always non-negative; the sign lives here.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

var (
	ErrNotFound           = errors.New("transaction not found")
	ErrInvalidType        = errors.New("invalid transaction type")
	ErrInvalidAmount      = errors.New("invalid transaction amount")
	ErrDuplicateReference = errors.New("duplicate transaction reference")
)

// Transaction is an atomic ledger entry. Reference is a 10-letter
// system-generated code, unique across the ledger.
type Transaction struct {
	ID          uuid.UUID
	Reference   string
	Type        Type
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        time.Time
	ProjectID   *uuid.UUID
	EmployeeID  *uuid.UUID
	InvoiceID   *uuid.UUID
	CreatedAt   time.Time
}
