package task_test

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
	"github.com/atelierhq/atelier/internal/task"
)

func TestService_Create(t *testing.T) {
	projectID := uuid.New()
	employeeID := uuid.New()

	type testCase struct {
		name      string
		params    task.CreateParams
		setupMock func(repo *task.MockRepository, refs *task.MockReferenceResolver)
		wantErr   error
		check     func(t *testing.T, got *task.Task)
	}

	tests := []testCase{
		{
			name: "Success",
			params: task.CreateParams{
				Title:        "Sand the floors",
				ProjectID:    projectID,
				AssigneeID:   &employeeID,
				AssigneeName: "Maria",
				Cost:         decimal.NewFromInt(250),
			},
			setupMock: func(repo *task.MockRepository, refs *task.MockReferenceResolver) {
				refs.EXPECT().Project(gomock.Any(), projectID).Return(nil)
				refs.EXPECT().Employee(gomock.Any(), employeeID).Return(nil)
				repo.EXPECT().CreateTask(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, got *task.Task) {
				require.NotNil(t, got.AssigneeID)
				assert.Equal(t, employeeID, *got.AssigneeID)
				assert.Equal(t, task.StatusPending, got.Status)
				assert.Equal(t, task.PaymentPending, got.PaymentStatus)
			},
		},
		{
			name: "MissingProjectRejected",
			params: task.CreateParams{
				Title:     "Orphan",
				ProjectID: projectID,
			},
			setupMock: func(repo *task.MockRepository, refs *task.MockReferenceResolver) {
				refs.EXPECT().
					Project(gomock.Any(), projectID).
					Return(integrity.ErrInvalidReference)
			},
			wantErr: integrity.ErrInvalidReference,
		},
		{
			name: "UnresolvableAssigneeCleared",
			params: task.CreateParams{
				Title:        "Paint the hall",
				ProjectID:    projectID,
				AssigneeID:   &employeeID,
				AssigneeName: "External Crew",
			},
			setupMock: func(repo *task.MockRepository, refs *task.MockReferenceResolver) {
				refs.EXPECT().Project(gomock.Any(), projectID).Return(nil)
				refs.EXPECT().
					Employee(gomock.Any(), employeeID).
					Return(integrity.ErrInvalidReference)
				repo.EXPECT().CreateTask(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, got *task.Task) {
				assert.Nil(t, got.AssigneeID)
				assert.Equal(t, "External Crew", got.AssigneeName)
			},
		},
		{
			name: "ResolverFailurePropagates",
			params: task.CreateParams{
				Title:      "Unlucky",
				ProjectID:  projectID,
				AssigneeID: &employeeID,
			},
			setupMock: func(repo *task.MockRepository, refs *task.MockReferenceResolver) {
				refs.EXPECT().Project(gomock.Any(), projectID).Return(nil)
				refs.EXPECT().
					Employee(gomock.Any(), employeeID).
					Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := task.NewMockRepository(ctrl)
			refs := task.NewMockReferenceResolver(ctrl)
			tt.setupMock(repo, refs)

			svc := task.NewService(repo, refs)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Nil(t, got)

				if errors.Is(tt.wantErr, integrity.ErrInvalidReference) {
					assert.ErrorIs(t, err, integrity.ErrInvalidReference)
				}

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)

			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestService_Update(t *testing.T) {
	employeeID := uuid.New()

	t.Run("NewAssigneeMustResolve", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := task.NewMockRepository(ctrl)
		refs := task.NewMockReferenceResolver(ctrl)

		refs.EXPECT().
			Employee(gomock.Any(), employeeID).
			Return(integrity.ErrInvalidReference)

		svc := task.NewService(repo, refs)
		err := svc.Update(context.Background(), &task.Task{
			ID:         uuid.New(),
			Title:      "Reassigned",
			AssigneeID: &employeeID,
		})

		assert.ErrorIs(t, err, integrity.ErrInvalidReference)
	})

	t.Run("ClearedAssigneeSkipsResolution", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := task.NewMockRepository(ctrl)
		refs := task.NewMockReferenceResolver(ctrl)

		repo.EXPECT().UpdateTask(gomock.Any(), gomock.Any()).Return(nil)

		svc := task.NewService(repo, refs)
		err := svc.Update(context.Background(), &task.Task{
			ID:    uuid.New(),
			Title: "Unassigned",
		})

		assert.NoError(t, err)
	})
}
