package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/FrenchMajesty/classresult"
	"github.com/FrenchMajesty/classresult/adapters/sqlite"
	"github.com/FrenchMajesty/classresult/pkg/testutil"
	"github.com/FrenchMajesty/classresult/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeResultsFile(t *testing.T, dir string) string {
	t.Helper()

	results := []classresult.Result{
		classresult.NewResult(classresult.Fields{TrueLabel: 1, PredictedLabel: 1, RawPredictedLabel: 1, MaximumLikelihood: 0.9, ClassLikelihoods: []float64{0.9, 0.1}}),
		classresult.NewResult(classresult.Fields{TrueLabel: 2, PredictedLabel: 2, RawPredictedLabel: 1, MaximumLikelihood: 0.6, ClassLikelihoods: []float64{0.4, 0.6}}),
		classresult.NewResult(classresult.Fields{TrueLabel: 2, PredictedLabel: 1, RawPredictedLabel: 1, MaximumLikelihood: 0.5, ClassLikelihoods: []float64{0.5, 0.5}}),
		classresult.NewResult(classresult.Fields{TrueLabel: 1, PredictedLabel: 1, RawPredictedLabel: 1, MaximumLikelihood: 0.8, ClassLikelihoods: []float64{0.8, 0.2}}),
	}

	path := filepath.Join(dir, "results.json")
	require.NoError(t, classresult.NewFileStore(path).Save(context.Background(), results))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Keep godotenv from picking up a developer's .env
	t.Chdir(t.TempDir())

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestSummary_Text(t *testing.T) {
	path := writeResultsFile(t, t.TempDir())

	out, err := execute(t, "summary", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Trials:               4")
	assert.Contains(t, out, "Accuracy:             0.7500 (3 correct)")
	assert.Contains(t, out, "Post-processing:      1 changed")
	assert.Contains(t, out, "Confusion clusters (separable classes: 1):")
}

func TestSummary_JSON(t *testing.T) {
	path := writeResultsFile(t, t.TempDir())

	out, err := execute(t, "summary", path, "--json")
	require.NoError(t, err)

	var got metricsJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 4, got.TotalTrials)
	assert.InDelta(t, 0.75, got.Accuracy, 1e-9)
	assert.InDelta(t, 0.5, got.RawAccuracy, 1e-9)
	assert.Equal(t, []uint{1, 2}, got.ConfusionLabels)
	assert.Equal(t, [][]int{{2, 0}, {1, 1}}, got.Confusion)
	assert.Equal(t, [][]uint{{1, 2}}, got.ConfusionClusters)
	assert.Equal(t, 1, got.SeparableClasses)
	assert.InDelta(t, 0.7, float64(got.Likelihood.Mean), 1e-9)
}

func TestSummary_JSONWithNonFiniteLikelihoods(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "results.csv")

	file, err := os.Create(csvPath)
	require.NoError(t, err)
	require.NoError(t, report.WriteCSV(file, []classresult.Result{
		classresult.NewResult(classresult.Fields{TrueLabel: 1, PredictedLabel: 1, MaximumLikelihood: math.NaN()}),
		classresult.NewResult(classresult.Fields{TrueLabel: 2, PredictedLabel: 2, MaximumLikelihood: 0.8, ClassDistances: []float64{math.Inf(1)}}),
	}))
	require.NoError(t, file.Close())

	out, err := execute(t, "summary", csvPath, "--json")
	require.NoError(t, err)

	var got metricsJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 2, got.TotalTrials)
	assert.True(t, math.IsNaN(float64(got.Likelihood.Mean)))
}

func TestSummary_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeResultsFile(t, dir)

	configPath := filepath.Join(dir, "eval.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("class_labels: [1, 2, 3]\ncluster_threshold: 0.9\n"), 0644))

	out, err := execute(t, "summary", path, "--json", "--config", configPath)
	require.NoError(t, err)

	var got metricsJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []uint{1, 2, 3}, got.ConfusionLabels)
	assert.Len(t, got.Classes, 3)
	assert.Empty(t, got.ConfusionClusters)
}

func TestSummary_MissingFile(t *testing.T) {
	_, err := execute(t, "summary", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestExport_CSVAndXLSX(t *testing.T) {
	dir := t.TempDir()
	path := writeResultsFile(t, dir)
	csvPath := filepath.Join(dir, "out.csv")
	xlsxPath := filepath.Join(dir, "out.xlsx")

	_, err := execute(t, "export", path, "--csv", csvPath, "--xlsx", xlsxPath)
	require.NoError(t, err)

	// The exported CSV is itself a valid input
	out, err := execute(t, "summary", csvPath, "--json")
	require.NoError(t, err)
	var got metricsJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 4, got.TotalTrials)

	f, err := excelize.OpenFile(xlsxPath)
	require.NoError(t, err)
	defer f.Close()
	assert.Len(t, f.GetSheetList(), 3)
}

func TestExport_NothingToDo(t *testing.T) {
	path := writeResultsFile(t, t.TempDir())

	_, err := execute(t, "export", path)
	assert.ErrorContains(t, err, "nothing to export")
}

func TestImport_AppendsToStore(t *testing.T) {
	dir := t.TempDir()
	path := writeResultsFile(t, dir)
	dbPath := filepath.Join(dir, "results.db")

	_, err := execute(t, "import", path, "--db", dbPath)
	require.NoError(t, err)
	out, err := execute(t, "import", path, "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 4 results (8 stored)")

	store, err := sqlite.Open(context.Background(), dbPath)
	require.NoError(t, err)
	defer store.Close()

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, n)
}

func TestImport_DBFromEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeResultsFile(t, dir)
	dbPath := filepath.Join(dir, "env.db")
	t.Setenv(dbEnvVar, dbPath)

	_, err := execute(t, "import", path)
	require.NoError(t, err)
	assert.FileExists(t, dbPath)
}

func TestImport_NoDB(t *testing.T) {
	path := writeResultsFile(t, t.TempDir())
	t.Setenv(dbEnvVar, "")

	_, err := execute(t, "import", path)
	assert.ErrorContains(t, err, dbEnvVar)
}

func TestIndex_MissingCredentials(t *testing.T) {
	path := writeResultsFile(t, t.TempDir())
	t.Setenv("PINECONE_API_KEY", "")
	t.Setenv("PINECONE_HOST", "")

	_, err := execute(t, "index", path)
	assert.ErrorContains(t, err, "PINECONE_API_KEY")
}

func useVectorIndex(t *testing.T, index classresult.VectorIndex) {
	t.Helper()

	original := newVectorIndex
	newVectorIndex = func(namespace string) (classresult.VectorIndex, error) {
		return index, nil
	}
	t.Cleanup(func() { newVectorIndex = original })
}

func TestIndex_Submits(t *testing.T) {
	path := writeResultsFile(t, t.TempDir())
	index := testutil.NewMockVectorIndex()
	useVectorIndex(t, index)

	out, err := execute(t, "index", path, "--namespace", "gestures")
	require.NoError(t, err)
	assert.Contains(t, out, `Submitted 4 results to namespace "gestures"`)
	assert.Equal(t, 4, index.UpsertCount)
}

func TestIndex_UpsertFailures(t *testing.T) {
	path := writeResultsFile(t, t.TempDir())
	index := testutil.NewMockVectorIndex()
	index.UpsertFunc = func(ctx context.Context, id string, vector []float32, metadata map[string]any) error {
		return errors.New("index unavailable")
	}
	useVectorIndex(t, index)

	out, err := execute(t, "index", path)
	assert.ErrorContains(t, err, "failed to index 4 of 4 results")
	assert.NotContains(t, out, "Submitted")
}

func TestLoadFileConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eval.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
class_labels: [1, 2]
null_rejection: true
cluster_threshold: 0.3
database: ./eval.db
pinecone:
  namespace: gestures
`), 0644))

	cfg, err := loadFileConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2}, cfg.ClassLabels)
	assert.True(t, cfg.NullRejection)
	assert.Equal(t, "./eval.db", cfg.Database)
	assert.Equal(t, "gestures", cfg.Pinecone.Namespace)

	evalCfg := cfg.evaluatorConfig()
	assert.Equal(t, 0.3, evalCfg.ClusterThreshold)
	assert.True(t, evalCfg.NullRejection)

	_, err = loadFileConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
