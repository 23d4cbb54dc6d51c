package transaction_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/atelierhq/atelier/internal/integrity"
	"github.com/atelierhq/atelier/internal/sequence"
	"github.com/atelierhq/atelier/internal/transaction"
)

func TestService_Create(t *testing.T) {
	projectID := uuid.New()

	type testCase struct {
		name      string
		params    transaction.CreateParams
		setupMock func(repo *transaction.MockRepository, refs *transaction.MockReferenceResolver)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			params: transaction.CreateParams{
				Type:     transaction.TypeExpense,
				Amount:   decimal.NewFromInt(120),
				Category: "Materials",
			},
			setupMock: func(repo *transaction.MockRepository, refs *transaction.MockReferenceResolver) {
				repo.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "InvalidType",
			params: transaction.CreateParams{
				Type:   "transfer",
				Amount: decimal.NewFromInt(10),
			},
			setupMock: func(repo *transaction.MockRepository, refs *transaction.MockReferenceResolver) {},
			wantErr:   transaction.ErrInvalidType,
		},
		{
			name: "NegativeAmount",
			params: transaction.CreateParams{
				Type:   transaction.TypeIncome,
				Amount: decimal.NewFromInt(-5),
			},
			setupMock: func(repo *transaction.MockRepository, refs *transaction.MockReferenceResolver) {},
			wantErr:   transaction.ErrInvalidAmount,
		},
		{
			name: "UnresolvableProject",
			params: transaction.CreateParams{
				Type:      transaction.TypeIncome,
				Amount:    decimal.NewFromInt(100),
				ProjectID: &projectID,
			},
			setupMock: func(repo *transaction.MockRepository, refs *transaction.MockReferenceResolver) {
				refs.EXPECT().
					Project(gomock.Any(), projectID).
					Return(integrity.ErrInvalidReference)
			},
			wantErr: integrity.ErrInvalidReference,
		},
		{
			name: "RetriesPastDuplicateReference",
			params: transaction.CreateParams{
				Type:   transaction.TypeExpense,
				Amount: decimal.NewFromInt(40),
			},
			setupMock: func(repo *transaction.MockRepository, refs *transaction.MockReferenceResolver) {
				gomock.InOrder(
					repo.EXPECT().
						CreateTransaction(gomock.Any(), gomock.Any()).
						Return(transaction.ErrDuplicateReference),
					repo.EXPECT().
						CreateTransaction(gomock.Any(), gomock.Any()).
						Return(nil),
				)
			},
		},
		{
			name: "GivesUpAfterRetryBudget",
			params: transaction.CreateParams{
				Type:   transaction.TypeExpense,
				Amount: decimal.NewFromInt(40),
			},
			setupMock: func(repo *transaction.MockRepository, refs *transaction.MockReferenceResolver) {
				repo.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(transaction.ErrDuplicateReference).
					Times(sequence.MaxAttempts)
			},
			wantErr: sequence.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			refs := transaction.NewMockReferenceResolver(ctrl)
			tt.setupMock(repo, refs)

			svc := transaction.NewService(repo, refs)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Len(t, got.Reference, 10)
		})
	}
}

func TestService_CreateSetsDistinctReferences(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	refs := transaction.NewMockReferenceResolver(ctrl)

	seen := make(map[string]bool)

	repo.EXPECT().
		CreateTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
			assert.False(t, seen[tx.Reference])
			seen[tx.Reference] = true
			return nil
		}).
		Times(20)

	svc := transaction.NewService(repo, refs)

	for i := 0; i < 20; i++ {
		_, err := svc.Create(context.Background(), transaction.CreateParams{
			Type:   transaction.TypeIncome,
			Amount: decimal.NewFromInt(1),
		})
		require.NoError(t, err)
	}
}

func TestService_CreateBatch(t *testing.T) {
	params := []transaction.CreateParams{
		{Type: transaction.TypeIncome, Amount: decimal.NewFromInt(100)},
		{Type: transaction.TypeExpense, Amount: decimal.NewFromInt(30)},
	}

	t.Run("AllOrNothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)
		refs := transaction.NewMockReferenceResolver(ctrl)
		btx := transaction.NewMockBatchTx(ctrl)

		repo.EXPECT().BeginBatch(gomock.Any()).Return(btx, nil)
		btx.EXPECT().
			CreateTransactions(gomock.Any(), gomock.Len(2)).
			Return(nil)
		btx.EXPECT().Commit().Return(nil)
		btx.EXPECT().Rollback().Return(nil)

		svc := transaction.NewService(repo, refs)
		got, err := svc.CreateBatch(context.Background(), params)

		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("RollbackOnFailure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)
		refs := transaction.NewMockReferenceResolver(ctrl)
		btx := transaction.NewMockBatchTx(ctrl)

		repo.EXPECT().BeginBatch(gomock.Any()).Return(btx, nil)
		btx.EXPECT().
			CreateTransactions(gomock.Any(), gomock.Any()).
			Return(errors.New("db error"))
		btx.EXPECT().Rollback().Return(nil)

		svc := transaction.NewService(repo, refs)
		got, err := svc.CreateBatch(context.Background(), params)

		assert.Error(t, err)
		assert.Nil(t, got)
	})

	t.Run("InvalidRowRejectsWholeBatch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)
		refs := transaction.NewMockReferenceResolver(ctrl)

		bad := append([]transaction.CreateParams{}, params...)
		bad = append(bad, transaction.CreateParams{Type: "bogus"})

		svc := transaction.NewService(repo, refs)
		got, err := svc.CreateBatch(context.Background(), bad)

		assert.ErrorIs(t, err, transaction.ErrInvalidType)
		assert.Nil(t, got)
	})

	t.Run("EmptyBatchIsNoop", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)
		refs := transaction.NewMockReferenceResolver(ctrl)

		svc := transaction.NewService(repo, refs)
		got, err := svc.CreateBatch(context.Background(), nil)

		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}
