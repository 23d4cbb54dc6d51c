package sequence

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
)

// Kind identifies a code series. Each kind carries its own prefix, zero
// padding and a per-year counter.
type Kind string

const (
	KindProject  Kind = "project"
	KindEmployee Kind = "employee"
)

// ErrConflict is returned when a minted code keeps colliding with existing
// records after the retry budget is spent.
var ErrConflict = errors.New("code allocation conflict")

// MaxAttempts bounds how many fresh codes a caller requests before giving up
// with ErrConflict.
const MaxAttempts = 3

//go:generate mockgen -source=sequence.go -destination=repository_mock.go -package=sequence
type Repository interface {
	// NextValue atomically increments and returns the counter for the
	// (kind, year) pair, starting at 1. Concurrent callers never observe
	// the same value.
	NextValue(ctx context.Context, kind Kind, year int) (int64, error)
}

// Allocator mints human-readable codes like P-00001-2026. Uniqueness comes
// from the atomic counter, not from scanning existing codes.
type Allocator struct {
	repo Repository
}

func NewAllocator(repo Repository) *Allocator {
	return &Allocator{repo: repo}
}

func (a *Allocator) Next(ctx context.Context, kind Kind, year int) (string, error) {
	seq, err := a.repo.NextValue(ctx, kind, year)
	if err != nil {
		return "", fmt.Errorf("next sequence value: %w", err)
	}

	return Format(kind, seq, year), nil
}

type codeSpec struct {
	prefix string
	width  int
}

var specs = map[Kind]codeSpec{
	KindProject:  {prefix: "P", width: 5},
	KindEmployee: {prefix: "E", width: 3},
}

func Format(kind Kind, seq int64, year int) string {
	sp, ok := specs[kind]
	if !ok {
		return fmt.Sprintf("%d-%d", seq, year)
	}

	return fmt.Sprintf("%s-%0*d-%d", sp.prefix, sp.width, seq, year)
}

const referenceLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Reference returns a 10-letter uppercase ledger reference. Collisions are
// caught by the store's unique constraint and retried by the caller.
func Reference() string {
	b := make([]byte, 10)
	for i := range b {
		b[i] = referenceLetters[rand.IntN(len(referenceLetters))]
	}

	return string(b)
}
