package history

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examprep/internal/exam"
	"github.com/abhisek/examprep/internal/store"
)

func result(n int) exam.Result {
	return exam.Result{
		ID:         fmt.Sprintf("res-%02d", n),
		VariantID:  "V1",
		Subjects:   [2]string{"math", "physics"},
		Percent:    n,
		FinishedAt: time.Date(2026, 1, 1, 0, n, 0, 0, time.UTC),
	}
}

func openRepo(t *testing.T) store.ResultRepo {
	t.Helper()
	s, err := store.Open(context.Background(), store.DriverSQLite, filepath.Join(t.TempDir(), "h.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s.ResultRepo()
}

func TestBookInMemory(t *testing.T) {
	ctx := context.Background()
	b, err := Load(ctx, nil, 3)
	require.NoError(t, err)

	for i := 1; i <= 4; i++ {
		require.NoError(t, b.Record(ctx, result(i)))
	}

	got := b.Results()
	require.Len(t, got, 3)
	assert.Equal(t, "res-04", got[0].ID)
	assert.Equal(t, "res-02", got[2].ID)
	assert.Equal(t, 3, b.Limit())
}

func TestBookPersistsAndReloads(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)

	b, err := Load(ctx, repo, exam.HistoryLimit)
	require.NoError(t, err)
	for i := 1; i <= exam.HistoryLimit+1; i++ {
		require.NoError(t, b.Record(ctx, result(i)))
	}
	assert.Equal(t, exam.HistoryLimit, b.Len())

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, exam.HistoryLimit, n)

	reloaded, err := Load(ctx, repo, exam.HistoryLimit)
	require.NoError(t, err)
	got := reloaded.Results()
	require.Len(t, got, exam.HistoryLimit)
	assert.Equal(t, "res-21", got[0].ID)
	assert.Equal(t, "res-02", got[len(got)-1].ID)
}

func TestBookForkIsIndependent(t *testing.T) {
	ctx := context.Background()
	b, err := Load(ctx, nil, 5)
	require.NoError(t, err)
	require.NoError(t, b.Record(ctx, result(1)))

	fork := b.Fork()
	fork.Add(result(2))

	assert.Equal(t, 1, b.Len())
	assert.Equal(t, 2, fork.Len())
	assert.Equal(t, 5, fork.Limit())
}

func TestBookClear(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)

	b, err := Load(ctx, repo, 5)
	require.NoError(t, err)
	require.NoError(t, b.Record(ctx, result(1)))
	require.NoError(t, b.Clear(ctx))

	assert.Equal(t, 0, b.Len())
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

type failingRepo struct{ store.ResultRepo }

func (failingRepo) Append(context.Context, exam.Result) error { return errors.New("disk full") }

func TestBookRecordKeepsEntryOnStoreFailure(t *testing.T) {
	ctx := context.Background()
	b := &Book{repo: failingRepo{}, hist: exam.NewHistory(5, nil)}

	err := b.Record(ctx, result(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 1, b.Len())
}
