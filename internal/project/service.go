package project

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/atelierhq/atelier/internal/sequence"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=project
type Repository interface {
	CreateProject(ctx context.Context, p *Project) error
	GetProject(ctx context.Context, id uuid.UUID) (*Project, error)
	ListProjects(ctx context.Context) ([]*Project, error)
	UpdateProject(ctx context.Context, p *Project) error
}

type Service struct {
	repo  Repository
	codes *sequence.Allocator
}

func NewService(repo Repository, codes *sequence.Allocator) *Service {
	return &Service{repo: repo, codes: codes}
}

type CreateParams struct {
	Name        string
	Client      string
	ClientEmail string
	ClientPhone string
	Description string
	Income      decimal.Decimal
	StartDate   *time.Time
	Status      string
}

// Create persists a new project under a freshly minted code. A code
// collision (possible when legacy rows sit ahead of the counter) is retried
// with the next counter value before giving up.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Project, error) {
	status := params.Status
	if status == "" {
		status = DefaultStatus
	}

	for attempt := 0; attempt < sequence.MaxAttempts; attempt++ {
		code, err := s.codes.Next(ctx, sequence.KindProject, time.Now().Year())
		if err != nil {
			return nil, fmt.Errorf("allocating project code: %w", err)
		}

		p := &Project{
			CustomID:    code,
			Name:        params.Name,
			Client:      params.Client,
			ClientEmail: params.ClientEmail,
			ClientPhone: params.ClientPhone,
			Description: params.Description,
			Income:      params.Income,
			StartDate:   params.StartDate,
			Status:      status,
		}

		err = s.repo.CreateProject(ctx, p)
		if errors.Is(err, ErrDuplicateCode) {
			continue
		}

		if err != nil {
			return nil, err
		}

		return p, nil
	}

	return nil, sequence.ErrConflict
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Project, error) {
	return s.repo.GetProject(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Project, error) {
	return s.repo.ListProjects(ctx)
}

func (s *Service) Update(ctx context.Context, p *Project) error {
	return s.repo.UpdateProject(ctx, p)
}
