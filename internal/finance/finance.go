package finance

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/atelierhq/atelier/internal/transaction"
)

// Entry is the slice of a ledger row the aggregator needs.
type Entry struct {
	Type   transaction.Type
	Amount decimal.Decimal
}

// TaskTally counts a project's tasks.
type TaskTally struct {
	Total     int
	Completed int
}

// Summary holds the derived financial fields of a project. It is computed
// from the current ledger on every read and never stored.
type Summary struct {
	ActualIncome       decimal.Decimal
	ActualExpenses     decimal.Decimal
	RemainingBudget    decimal.Decimal
	TaskCount          int
	CompletedTaskCount int
	Progress           int
}

//go:generate mockgen -source=finance.go -destination=repository_mock.go -package=finance
type Repository interface {
	ProjectEntries(ctx context.Context, projectID uuid.UUID) ([]Entry, error)
	ProjectTaskTally(ctx context.Context, projectID uuid.UUID) (TaskTally, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Summarize(ctx context.Context, projectID uuid.UUID, budget decimal.Decimal) (Summary, error) {
	entries, err := s.repo.ProjectEntries(ctx, projectID)
	if err != nil {
		return Summary{}, fmt.Errorf("fetching project ledger: %w", err)
	}

	tally, err := s.repo.ProjectTaskTally(ctx, projectID)
	if err != nil {
		return Summary{}, fmt.Errorf("tallying project tasks: %w", err)
	}

	return Aggregate(budget, entries, tally), nil
}

// Aggregate derives the financial summary. The budget is a fixed allocation:
// income entries do not replenish the remaining budget, only expenses draw
// it down.
func Aggregate(budget decimal.Decimal, entries []Entry, tally TaskTally) Summary {
	income := decimal.Zero
	expenses := decimal.Zero

	for _, e := range entries {
		switch e.Type {
		case transaction.TypeIncome:
			income = income.Add(e.Amount)
		case transaction.TypeExpense:
			expenses = expenses.Add(e.Amount)
		}
	}

	progress := 0
	if tally.Total > 0 {
		// Round half up.
		progress = int(math.Round(float64(tally.Completed) * 100 / float64(tally.Total)))
	}

	return Summary{
		ActualIncome:       income,
		ActualExpenses:     expenses,
		RemainingBudget:    budget.Sub(expenses),
		TaskCount:          tally.Total,
		CompletedTaskCount: tally.Completed,
		Progress:           progress,
	}
}
