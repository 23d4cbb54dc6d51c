package integrity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/atelierhq/atelier/internal/integrity"
)

func TestManager_DeleteProjectCascades(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := integrity.NewMockRepository(ctrl)
	auth := integrity.NewMockAuthorizer(ctrl)
	tx := integrity.NewMockTx(ctrl)

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)

	gomock.InOrder(
		tx.EXPECT().DeleteWhere(gomock.Any(), "tasks", "project_id", id).Return(nil),
		tx.EXPECT().DeleteWhere(gomock.Any(), "invoices", "project_id", id).Return(nil),
		tx.EXPECT().DeleteWhere(gomock.Any(), "transactions", "project_id", id).Return(nil),
		tx.EXPECT().DeleteByID(gomock.Any(), "projects", id).Return(int64(1), nil),
		tx.EXPECT().Commit().Return(nil),
	)
	tx.EXPECT().Rollback().Return(nil)

	mgr := integrity.NewManager(repo, auth)

	require.NoError(t, mgr.Delete(context.Background(), integrity.EntityProject, id))
}

func TestManager_DeleteEmployeeRequiresAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := integrity.NewMockRepository(ctrl)
	auth := integrity.NewMockAuthorizer(ctrl)

	auth.EXPECT().
		RequireAdmin(gomock.Any()).
		Return(integrity.ErrUnauthorized)

	mgr := integrity.NewManager(repo, auth)
	err := mgr.Delete(context.Background(), integrity.EntityEmployee, id)

	assert.ErrorIs(t, err, integrity.ErrUnauthorized)
}

func TestManager_DeleteEmployeeCascades(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := integrity.NewMockRepository(ctrl)
	auth := integrity.NewMockAuthorizer(ctrl)
	tx := integrity.NewMockTx(ctrl)

	auth.EXPECT().RequireAdmin(gomock.Any()).Return(nil)
	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)

	gomock.InOrder(
		tx.EXPECT().DeleteWhere(gomock.Any(), "tasks", "assignee_id", id).Return(nil),
		tx.EXPECT().DeleteWhere(gomock.Any(), "transactions", "employee_id", id).Return(nil),
		tx.EXPECT().DeleteByID(gomock.Any(), "employees", id).Return(int64(1), nil),
		tx.EXPECT().Commit().Return(nil),
	)
	tx.EXPECT().Rollback().Return(nil)

	mgr := integrity.NewManager(repo, auth)

	require.NoError(t, mgr.Delete(context.Background(), integrity.EntityEmployee, id))
}

func TestManager_DeleteInvoiceCascades(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := integrity.NewMockRepository(ctrl)
	auth := integrity.NewMockAuthorizer(ctrl)
	tx := integrity.NewMockTx(ctrl)

	auth.EXPECT().RequireAdmin(gomock.Any()).Return(nil)
	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)

	gomock.InOrder(
		tx.EXPECT().DeleteWhere(gomock.Any(), "transactions", "invoice_id", id).Return(nil),
		tx.EXPECT().DeleteByID(gomock.Any(), "invoices", id).Return(int64(1), nil),
		tx.EXPECT().Commit().Return(nil),
	)
	tx.EXPECT().Rollback().Return(nil)

	mgr := integrity.NewManager(repo, auth)

	require.NoError(t, mgr.Delete(context.Background(), integrity.EntityInvoice, id))
}

func TestManager_DeleteMissingRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := integrity.NewMockRepository(ctrl)
	auth := integrity.NewMockAuthorizer(ctrl)
	tx := integrity.NewMockTx(ctrl)

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().DeleteByID(gomock.Any(), "tasks", id).Return(int64(0), nil)
	tx.EXPECT().Rollback().Return(nil)

	mgr := integrity.NewManager(repo, auth)
	err := mgr.Delete(context.Background(), integrity.EntityTask, id)

	assert.ErrorIs(t, err, integrity.ErrNotFound)
}

func TestManager_CascadeFailureRollsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := integrity.NewMockRepository(ctrl)
	auth := integrity.NewMockAuthorizer(ctrl)
	tx := integrity.NewMockTx(ctrl)

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().
		DeleteWhere(gomock.Any(), "tasks", "project_id", id).
		Return(errors.New("db error"))
	tx.EXPECT().Rollback().Return(nil)

	mgr := integrity.NewManager(repo, auth)
	err := mgr.Delete(context.Background(), integrity.EntityProject, id)

	assert.Error(t, err)
}

func TestResolver(t *testing.T) {
	id := uuid.New()

	type testCase struct {
		name      string
		setupMock func(repo *integrity.MockResolverRepository)
		call      func(r *integrity.Resolver) error
		wantErr   error
	}

	tests := []testCase{
		{
			name: "ProjectExists",
			setupMock: func(repo *integrity.MockResolverRepository) {
				repo.EXPECT().ProjectExists(gomock.Any(), id).Return(true, nil)
			},
			call: func(r *integrity.Resolver) error {
				return r.Project(context.Background(), id)
			},
		},
		{
			name: "ProjectMissing",
			setupMock: func(repo *integrity.MockResolverRepository) {
				repo.EXPECT().ProjectExists(gomock.Any(), id).Return(false, nil)
			},
			call: func(r *integrity.Resolver) error {
				return r.Project(context.Background(), id)
			},
			wantErr: integrity.ErrInvalidReference,
		},
		{
			name: "EmployeeMissing",
			setupMock: func(repo *integrity.MockResolverRepository) {
				repo.EXPECT().EmployeeExists(gomock.Any(), id).Return(false, nil)
			},
			call: func(r *integrity.Resolver) error {
				return r.Employee(context.Background(), id)
			},
			wantErr: integrity.ErrInvalidReference,
		},
		{
			name: "InvoiceExists",
			setupMock: func(repo *integrity.MockResolverRepository) {
				repo.EXPECT().InvoiceExists(gomock.Any(), id).Return(true, nil)
			},
			call: func(r *integrity.Resolver) error {
				return r.Invoice(context.Background(), id)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := integrity.NewMockResolverRepository(ctrl)
			tt.setupMock(repo)

			err := tt.call(integrity.NewResolver(repo))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}
