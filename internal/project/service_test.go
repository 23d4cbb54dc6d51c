package project_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/atelierhq/atelier/internal/project"
	"github.com/atelierhq/atelier/internal/sequence"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    project.CreateParams
		setupMock func(repo *project.MockRepository, seq *sequence.MockRepository)
		wantErr   error
		check     func(t *testing.T, p *project.Project)
	}

	tests := []testCase{
		{
			name: "Success",
			params: project.CreateParams{
				Name:   "Loft Renovation",
				Client: "Acme",
				Income: decimal.NewFromInt(5000),
			},
			setupMock: func(repo *project.MockRepository, seq *sequence.MockRepository) {
				seq.EXPECT().
					NextValue(gomock.Any(), sequence.KindProject, gomock.Any()).
					Return(int64(1), nil)
				repo.EXPECT().
					CreateProject(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			check: func(t *testing.T, p *project.Project) {
				assert.Regexp(t, `^P-00001-\d{4}$`, p.CustomID)
				assert.Equal(t, project.DefaultStatus, p.Status)
				assert.Equal(t, "Loft Renovation", p.Name)
			},
		},
		{
			name: "StatusPreserved",
			params: project.CreateParams{
				Name:   "Archive",
				Status: "Completed",
			},
			setupMock: func(repo *project.MockRepository, seq *sequence.MockRepository) {
				seq.EXPECT().
					NextValue(gomock.Any(), sequence.KindProject, gomock.Any()).
					Return(int64(2), nil)
				repo.EXPECT().
					CreateProject(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			check: func(t *testing.T, p *project.Project) {
				assert.Equal(t, "Completed", p.Status)
			},
		},
		{
			name:   "RetriesPastDuplicateCode",
			params: project.CreateParams{Name: "Retry"},
			setupMock: func(repo *project.MockRepository, seq *sequence.MockRepository) {
				seq.EXPECT().
					NextValue(gomock.Any(), sequence.KindProject, gomock.Any()).
					Return(int64(3), nil)
				repo.EXPECT().
					CreateProject(gomock.Any(), gomock.Any()).
					Return(project.ErrDuplicateCode)

				seq.EXPECT().
					NextValue(gomock.Any(), sequence.KindProject, gomock.Any()).
					Return(int64(4), nil)
				repo.EXPECT().
					CreateProject(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			check: func(t *testing.T, p *project.Project) {
				assert.Regexp(t, `^P-00004-\d{4}$`, p.CustomID)
			},
		},
		{
			name:   "GivesUpAfterRetryBudget",
			params: project.CreateParams{Name: "Exhausted"},
			setupMock: func(repo *project.MockRepository, seq *sequence.MockRepository) {
				seq.EXPECT().
					NextValue(gomock.Any(), sequence.KindProject, gomock.Any()).
					Return(int64(5), nil).
					Times(sequence.MaxAttempts)
				repo.EXPECT().
					CreateProject(gomock.Any(), gomock.Any()).
					Return(project.ErrDuplicateCode).
					Times(sequence.MaxAttempts)
			},
			wantErr: sequence.ErrConflict,
		},
		{
			name:   "RepoError",
			params: project.CreateParams{Name: "Broken"},
			setupMock: func(repo *project.MockRepository, seq *sequence.MockRepository) {
				seq.EXPECT().
					NextValue(gomock.Any(), sequence.KindProject, gomock.Any()).
					Return(int64(6), nil)
				repo.EXPECT().
					CreateProject(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := project.NewMockRepository(ctrl)
			seq := sequence.NewMockRepository(ctrl)
			tt.setupMock(repo, seq)

			svc := project.NewService(repo, sequence.NewAllocator(seq))
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Nil(t, got)

				if errors.Is(tt.wantErr, sequence.ErrConflict) {
					assert.ErrorIs(t, err, sequence.ErrConflict)
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
