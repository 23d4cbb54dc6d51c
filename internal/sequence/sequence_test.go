package sequence_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/atelierhq/atelier/internal/sequence"
)

func TestFormat(t *testing.T) {
	type testCase struct {
		name string
		kind sequence.Kind
		seq  int64
		year int
		want string
	}

	tests := []testCase{
		{
			name: "ProjectPadsToFive",
			kind: sequence.KindProject,
			seq:  1,
			year: 2026,
			want: "P-00001-2026",
		},
		{
			name: "EmployeePadsToThree",
			kind: sequence.KindEmployee,
			seq:  42,
			year: 2026,
			want: "E-042-2026",
		},
		{
			name: "ProjectWiderThanPadding",
			kind: sequence.KindProject,
			seq:  123456,
			year: 2025,
			want: "P-123456-2025",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sequence.Format(tt.kind, tt.seq, tt.year))
		})
	}
}

func TestReference(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		ref := sequence.Reference()

		require.Len(t, ref, 10)

		for _, r := range ref {
			assert.True(t, r >= 'A' && r <= 'Z', "unexpected rune %q in %s", r, ref)
		}

		seen[ref] = true
	}

	// 100 draws from 26^10 should never collide.
	assert.Greater(t, len(seen), 90)
}

func TestAllocator_Next(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := sequence.NewMockRepository(ctrl)
	repo.EXPECT().
		NextValue(gomock.Any(), sequence.KindProject, 2026).
		Return(int64(7), nil)

	code, err := sequence.NewAllocator(repo).Next(context.Background(), sequence.KindProject, 2026)

	require.NoError(t, err)
	assert.Equal(t, "P-00007-2026", code)
}

func TestAllocator_NextRepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := sequence.NewMockRepository(ctrl)
	repo.EXPECT().
		NextValue(gomock.Any(), sequence.KindEmployee, 2026).
		Return(int64(0), errors.New("db error"))

	_, err := sequence.NewAllocator(repo).Next(context.Background(), sequence.KindEmployee, 2026)

	assert.Error(t, err)
}

// counterRepo is a mutex-guarded in-memory counter, standing in for the
// database upsert so concurrent allocation can be exercised directly.
type counterRepo struct {
	mu     sync.Mutex
	values map[string]int64
}

func (r *counterRepo) NextValue(_ context.Context, kind sequence.Kind, year int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := fmt.Sprintf("%s-%d", kind, year)
	r.values[key]++

	return r.values[key], nil
}

func TestAllocator_ConcurrentCodesAreDistinct(t *testing.T) {
	const workers = 50

	alloc := sequence.NewAllocator(&counterRepo{values: make(map[string]int64)})

	var (
		mu    sync.Mutex
		codes = make(map[string]bool)
		wg    sync.WaitGroup
	)

	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()

			code, err := alloc.Next(context.Background(), sequence.KindProject, 2026)

			mu.Lock()
			defer mu.Unlock()

			require.NoError(t, err)
			assert.False(t, codes[code], "code %s allocated twice", code)
			codes[code] = true
		}()
	}

	wg.Wait()

	assert.Len(t, codes, workers)
}
