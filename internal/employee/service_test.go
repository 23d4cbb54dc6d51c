package employee_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/atelierhq/atelier/internal/employee"
	"github.com/atelierhq/atelier/internal/sequence"
)

func TestService_Create(t *testing.T) {
	t.Run("MintsCodeAndDefaults", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := employee.NewMockRepository(ctrl)
		seq := sequence.NewMockRepository(ctrl)

		seq.EXPECT().
			NextValue(gomock.Any(), sequence.KindEmployee, gomock.Any()).
			Return(int64(1), nil)
		repo.EXPECT().
			CreateEmployee(gomock.Any(), gomock.Any()).
			Return(nil)

		svc := employee.NewService(repo, sequence.NewAllocator(seq))
		e, err := svc.Create(context.Background(), employee.CreateParams{
			Name: "Maria Silva",
			Type: employee.TypeFreelance,
		})

		require.NoError(t, err)
		assert.Regexp(t, `^E-001-\d{4}$`, e.CustomID)
		assert.Equal(t, employee.DefaultDepartment, e.Department)
		assert.Equal(t, employee.StatusActive, e.Status)
	})

	t.Run("RetriesPastDuplicateCode", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := employee.NewMockRepository(ctrl)
		seq := sequence.NewMockRepository(ctrl)

		gomock.InOrder(
			seq.EXPECT().
				NextValue(gomock.Any(), sequence.KindEmployee, gomock.Any()).
				Return(int64(7), nil),
			repo.EXPECT().
				CreateEmployee(gomock.Any(), gomock.Any()).
				Return(employee.ErrDuplicateCode),
			seq.EXPECT().
				NextValue(gomock.Any(), sequence.KindEmployee, gomock.Any()).
				Return(int64(8), nil),
			repo.EXPECT().
				CreateEmployee(gomock.Any(), gomock.Any()).
				Return(nil),
		)

		svc := employee.NewService(repo, sequence.NewAllocator(seq))
		e, err := svc.Create(context.Background(), employee.CreateParams{Name: "João"})

		require.NoError(t, err)
		assert.Regexp(t, `^E-008-\d{4}$`, e.CustomID)
	})

	t.Run("GivesUpAfterRetryBudget", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := employee.NewMockRepository(ctrl)
		seq := sequence.NewMockRepository(ctrl)

		seq.EXPECT().
			NextValue(gomock.Any(), sequence.KindEmployee, gomock.Any()).
			Return(int64(9), nil).
			Times(sequence.MaxAttempts)
		repo.EXPECT().
			CreateEmployee(gomock.Any(), gomock.Any()).
			Return(employee.ErrDuplicateCode).
			Times(sequence.MaxAttempts)

		svc := employee.NewService(repo, sequence.NewAllocator(seq))
		_, err := svc.Create(context.Background(), employee.CreateParams{Name: "Nobody"})

		assert.ErrorIs(t, err, sequence.ErrConflict)
	})
}
