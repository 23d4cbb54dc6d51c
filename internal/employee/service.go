package employee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/atelierhq/atelier/internal/sequence"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=employee
type Repository interface {
	CreateEmployee(ctx context.Context, e *Employee) error
	GetEmployee(ctx context.Context, id uuid.UUID) (*Employee, error)
	ListEmployees(ctx context.Context) ([]*Employee, error)
	UpdateEmployee(ctx context.Context, e *Employee) error
}

type Service struct {
	repo  Repository
	codes *sequence.Allocator
}

func NewService(repo Repository, codes *sequence.Allocator) *Service {
	return &Service{repo: repo, codes: codes}
}

type CreateParams struct {
	Name       string
	Role       string
	Department string
	Type       Type
	Salary     *decimal.Decimal
	Email      string
	Phone      string
	Status     string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Employee, error) {
	department := params.Department
	if department == "" {
		department = DefaultDepartment
	}

	typ := params.Type
	if typ == "" {
		typ = TypeFixed
	}

	status := params.Status
	if status == "" {
		status = StatusActive
	}

	for attempt := 0; attempt < sequence.MaxAttempts; attempt++ {
		code, err := s.codes.Next(ctx, sequence.KindEmployee, time.Now().Year())
		if err != nil {
			return nil, fmt.Errorf("allocating employee code: %w", err)
		}

		e := &Employee{
			CustomID:   code,
			Name:       params.Name,
			Role:       params.Role,
			Department: department,
			Type:       typ,
			Salary:     params.Salary,
			Email:      params.Email,
			Phone:      params.Phone,
			Status:     status,
		}

		err = s.repo.CreateEmployee(ctx, e)
		if errors.Is(err, ErrDuplicateCode) {
			continue
		}

		if err != nil {
			return nil, err
		}

		return e, nil
	}

	return nil, sequence.ErrConflict
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Employee, error) {
	return s.repo.GetEmployee(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Employee, error) {
	return s.repo.ListEmployees(ctx)
}

func (s *Service) Update(ctx context.Context, e *Employee) error {
	return s.repo.UpdateEmployee(ctx, e)
}
