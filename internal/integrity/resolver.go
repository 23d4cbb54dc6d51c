package integrity

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=resolver.go -destination=resolver_mock.go -package=integrity
type ResolverRepository interface {
	ProjectExists(ctx context.Context, id uuid.UUID) (bool, error)
	EmployeeExists(ctx context.Context, id uuid.UUID) (bool, error)
	InvoiceExists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Resolver validates foreign keys before a write reaches the store.
type Resolver struct {
	repo ResolverRepository
}

func NewResolver(repo ResolverRepository) *Resolver {
	return &Resolver{repo: repo}
}

func (r *Resolver) Project(ctx context.Context, id uuid.UUID) error {
	return r.check(ctx, EntityProject, id, r.repo.ProjectExists)
}

func (r *Resolver) Employee(ctx context.Context, id uuid.UUID) error {
	return r.check(ctx, EntityEmployee, id, r.repo.EmployeeExists)
}

func (r *Resolver) Invoice(ctx context.Context, id uuid.UUID) error {
	return r.check(ctx, EntityInvoice, id, r.repo.InvoiceExists)
}

func (r *Resolver) check(
	ctx context.Context,
	entity Entity,
	id uuid.UUID,
	exists func(context.Context, uuid.UUID) (bool, error),
) error {
	ok, err := exists(ctx, id)
	if err != nil {
		return fmt.Errorf("resolving %s %s: %w", entity, id, err)
	}

	if !ok {
		return fmt.Errorf("%s %s: %w", entity, id, ErrInvalidReference)
	}

	return nil
}
