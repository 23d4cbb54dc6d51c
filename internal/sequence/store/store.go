package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atelierhq/atelier/internal/sequence"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// NextValue bumps the (kind, year) counter in a single statement. The upsert
// takes a row lock, so concurrent allocators serialize here and each sees a
// distinct value.
func (s *Store) NextValue(ctx context.Context, kind sequence.Kind, year int) (int64, error) {
	query := `
		INSERT INTO sequences (kind, year, value)
		VALUES ($1, $2, 1)
		ON CONFLICT (kind, year) DO UPDATE SET value = sequences.value + 1
		RETURNING value
	`

	var value int64
	if err := s.db.QueryRowContext(ctx, query, kind, year).Scan(&value); err != nil {
		return 0, fmt.Errorf("incrementing sequence %s/%d: %w", kind, year, err)
	}

	return value, nil
}
