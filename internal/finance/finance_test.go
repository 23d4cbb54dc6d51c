package finance_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/atelierhq/atelier/internal/finance"
	"github.com/atelierhq/atelier/internal/transaction"
)

func TestAggregate(t *testing.T) {
	type testCase struct {
		name    string
		budget  decimal.Decimal
		entries []finance.Entry
		tally   finance.TaskTally
		want    finance.Summary
	}

	tests := []testCase{
		{
			name:   "ExpensesDrawDownBudget",
			budget: decimal.NewFromInt(1000),
			entries: []finance.Entry{
				{Type: transaction.TypeExpense, Amount: decimal.NewFromInt(300)},
			},
			want: finance.Summary{
				ActualIncome:    decimal.Zero,
				ActualExpenses:  decimal.NewFromInt(300),
				RemainingBudget: decimal.NewFromInt(700),
			},
		},
		{
			name:   "IncomeDoesNotReplenishBudget",
			budget: decimal.NewFromInt(1000),
			entries: []finance.Entry{
				{Type: transaction.TypeIncome, Amount: decimal.NewFromInt(500)},
				{Type: transaction.TypeExpense, Amount: decimal.NewFromInt(300)},
			},
			want: finance.Summary{
				ActualIncome:    decimal.NewFromInt(500),
				ActualExpenses:  decimal.NewFromInt(300),
				RemainingBudget: decimal.NewFromInt(700),
			},
		},
		{
			name:   "OverspendGoesNegative",
			budget: decimal.NewFromInt(200),
			entries: []finance.Entry{
				{Type: transaction.TypeExpense, Amount: decimal.NewFromInt(350)},
			},
			want: finance.Summary{
				ActualIncome:    decimal.Zero,
				ActualExpenses:  decimal.NewFromInt(350),
				RemainingBudget: decimal.NewFromInt(-150),
			},
		},
		{
			name:   "ProgressRounds",
			budget: decimal.Zero,
			tally:  finance.TaskTally{Total: 4, Completed: 1},
			want: finance.Summary{
				ActualIncome:       decimal.Zero,
				ActualExpenses:     decimal.Zero,
				RemainingBudget:    decimal.Zero,
				TaskCount:          4,
				CompletedTaskCount: 1,
				Progress:           25,
			},
		},
		{
			name:   "ProgressRoundsHalfUp",
			budget: decimal.Zero,
			tally:  finance.TaskTally{Total: 3, Completed: 2},
			want: finance.Summary{
				ActualIncome:       decimal.Zero,
				ActualExpenses:     decimal.Zero,
				RemainingBudget:    decimal.Zero,
				TaskCount:          3,
				CompletedTaskCount: 2,
				Progress:           67,
			},
		},
		{
			name:   "NoTasksMeansZeroProgress",
			budget: decimal.Zero,
			want: finance.Summary{
				ActualIncome:    decimal.Zero,
				ActualExpenses:  decimal.Zero,
				RemainingBudget: decimal.Zero,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := finance.Aggregate(tt.budget, tt.entries, tt.tally)

			assert.True(t, tt.want.ActualIncome.Equal(got.ActualIncome), "income: want %s got %s", tt.want.ActualIncome, got.ActualIncome)
			assert.True(t, tt.want.ActualExpenses.Equal(got.ActualExpenses), "expenses: want %s got %s", tt.want.ActualExpenses, got.ActualExpenses)
			assert.True(t, tt.want.RemainingBudget.Equal(got.RemainingBudget), "remaining: want %s got %s", tt.want.RemainingBudget, got.RemainingBudget)
			assert.Equal(t, tt.want.TaskCount, got.TaskCount)
			assert.Equal(t, tt.want.CompletedTaskCount, got.CompletedTaskCount)
			assert.Equal(t, tt.want.Progress, got.Progress)
		})
	}
}

func TestService_Summarize(t *testing.T) {
	projectID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := finance.NewMockRepository(ctrl)
		repo.EXPECT().
			ProjectEntries(gomock.Any(), projectID).
			Return([]finance.Entry{
				{Type: transaction.TypeExpense, Amount: decimal.NewFromInt(100)},
			}, nil)
		repo.EXPECT().
			ProjectTaskTally(gomock.Any(), projectID).
			Return(finance.TaskTally{Total: 2, Completed: 2}, nil)

		svc := finance.NewService(repo)
		got, err := svc.Summarize(context.Background(), projectID, decimal.NewFromInt(500))

		require.NoError(t, err)
		assert.True(t, got.RemainingBudget.Equal(decimal.NewFromInt(400)))
		assert.Equal(t, 100, got.Progress)
	})

	t.Run("LedgerError", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := finance.NewMockRepository(ctrl)
		repo.EXPECT().
			ProjectEntries(gomock.Any(), projectID).
			Return(nil, errors.New("db error"))

		svc := finance.NewService(repo)
		_, err := svc.Summarize(context.Background(), projectID, decimal.Zero)

		assert.Error(t, err)
	})
}
