package invoice

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("invoice not found")

const (
	StatusDraft = "Draft"
	StatusSent  = "Sent"
	StatusPaid  = "Paid"
)

// Item is a single invoice line. Items travel as a structured list over the
// wire but are persisted as one opaque JSON blob.
type Item struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

type Invoice struct {
	ID          uuid.UUID
	ProjectID   *uuid.UUID // optional; invoices may exist standalone
	ClientName  string
	ClientEmail string
	Items       []Item
	Total       decimal.Decimal
	Status      string
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// EncodeItems serializes line items for storage.
func EncodeItems(items []Item) (string, error) {
	if items == nil {
		items = []Item{}
	}

	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encoding invoice items: %w", err)
	}

	return string(b), nil
}

// DecodeItems restores line items from the stored blob. A blob that does not
// parse yields an empty list rather than a read failure.
func DecodeItems(blob string) []Item {
	if blob == "" {
		return []Item{}
	}

	var items []Item
	if err := json.Unmarshal([]byte(blob), &items); err != nil {
		return []Item{}
	}

	if items == nil {
		return []Item{}
	}

	return items
}
