package employee

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("employee not found")
	ErrDuplicateCode = errors.New("duplicate employee code")
)

// Type is the employment arrangement.
type Type string

const (
	TypeFixed     Type = "fixed"
	TypeFreelance Type = "freelance"
)

const (
	DefaultDepartment = "General"
	StatusActive      = "active"
)

type Employee struct {
	ID         uuid.UUID
	CustomID   string // E-001-2026, system-generated
	Name       string
	Role       string
	Department string
	Type       Type
	Salary     *decimal.Decimal
	Email      string
	Phone      string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
