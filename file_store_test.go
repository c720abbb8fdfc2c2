package classresult_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/FrenchMajesty/classresult"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_MissingFile(t *testing.T) {
	store := classresult.NewFileStore(filepath.Join(t.TempDir(), "missing.json"))

	results, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestFileStore_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	store := classresult.NewFileStore(path)
	assert.Equal(t, path, store.Path())

	ctx := context.Background()
	want := []classresult.Result{sampleResult(), trial(1, 0)}
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "result %d", i)
	}
}

func TestFileStore_SaveNil(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	store := classresult.NewFileStore(path)

	require.NoError(t, store.Save(context.Background(), nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestFileStore_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := classresult.NewFileStore(path).Load(context.Background())
	assert.ErrorContains(t, err, "failed to unmarshal results")
}

func TestFileStore_BacksEvaluator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	ctx := context.Background()

	eval, err := classresult.NewEvaluator(ctx, classresult.Config{Store: classresult.NewFileStore(path)})
	require.NoError(t, err)
	require.NoError(t, eval.Add(ctx, sampleResult()))
	require.NoError(t, eval.Close(ctx))

	reopened, err := classresult.NewEvaluator(ctx, classresult.Config{Store: classresult.NewFileStore(path)})
	require.NoError(t, err)
	require.Equal(t, 1, reopened.Len())
	assert.True(t, reopened.Results()[0].Equal(sampleResult()))
}

func TestFileStore_NonFiniteValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	store := classresult.NewFileStore(path)
	ctx := context.Background()

	want := []classresult.Result{nonFiniteResult(), sampleResult()}
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "result %d", i)
	}
}
