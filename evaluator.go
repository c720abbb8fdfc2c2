package classresult

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/FrenchMajesty/classresult/internal/logging"
	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
)

// Metadata keys written alongside every likelihood vector
const (
	MetadataTrueLabel         = "true_label"
	MetadataPredictedLabel    = "predicted_label"
	MetadataRawPredictedLabel = "raw_predicted_label"
	MetadataMaximumLikelihood = "maximum_likelihood"
)

// Evaluator accumulates classification results and scores them
type Evaluator struct {
	classLabels      []uint
	nullRejection    bool
	clusterThreshold float64
	store            ResultStore
	index            VectorIndex
	logger           *slog.Logger

	results     []Result
	resultsLock sync.RWMutex

	indexFailures atomic.Int64

	shutdownOnce sync.Once
	closing      bool
	closeErr     error
	closeLock    sync.RWMutex
}

// NewEvaluator creates a new Evaluator with the given configuration.
// When a Store is configured, previously saved results are loaded.
func NewEvaluator(ctx context.Context, cfg Config) (*Evaluator, error) {
	cfg.applyDefaults()

	logger := cfg.Logger
	if logger == nil {
		logger = logging.New("evaluator")
	}

	e := &Evaluator{
		classLabels:      slices.Clone(cfg.ClassLabels),
		nullRejection:    cfg.NullRejection,
		clusterThreshold: cfg.ClusterThreshold,
		store:            cfg.Store,
		index:            cfg.VectorIndex,
		logger:           logger,
	}

	if e.store != nil {
		loaded, err := e.store.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load results: %w", err)
		}
		e.results = loaded
		logger.Debug("loaded results", slog.Int("count", len(loaded)))
	}

	return e, nil
}

// Add records a result. When a VectorIndex is configured and the result carries class
// likelihoods, the likelihood vector is indexed too; indexing failures are logged and
// counted by IndexFailures, not returned.
func (e *Evaluator) Add(ctx context.Context, r Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Close waits for in-flight appends so its save sees them
	e.closeLock.RLock()
	if e.closing {
		e.closeLock.RUnlock()
		return ErrEvaluatorClosed
	}
	e.resultsLock.Lock()
	e.results = append(e.results, r.Clone())
	e.resultsLock.Unlock()
	e.closeLock.RUnlock()

	if e.index != nil && r.NumClasses() > 0 {
		if err := e.indexResult(ctx, r); err != nil {
			e.indexFailures.Add(1)
			e.logger.Warn("failed to index result",
				slog.Uint64("true_label", uint64(r.trueLabel)),
				slog.Any("error", err))
		}
	}

	return nil
}

// IndexFailures returns the number of results whose likelihood vector could not be indexed
func (e *Evaluator) IndexFailures() int {
	return int(e.indexFailures.Load())
}

// indexResult stores the result's likelihood vector in the vector index
func (e *Evaluator) indexResult(ctx context.Context, r Result) error {
	id := uuid.New().String()
	metadata := map[string]any{
		MetadataTrueLabel:         float64(r.trueLabel),
		MetadataPredictedLabel:    float64(r.predictedLabel),
		MetadataRawPredictedLabel: float64(r.rawPredictedLabel),
		MetadataMaximumLikelihood: r.maximumLikelihood,
	}
	return e.index.Upsert(ctx, id, toFloat32(r.classLikelihoods), metadata)
}

// Similar returns the topK indexed trials whose likelihood vectors are closest to r's
func (e *Evaluator) Similar(ctx context.Context, r Result, topK int) ([]VectorMatch, error) {
	if e.index == nil {
		return nil, ErrNoVectorIndex
	}
	if r.NumClasses() == 0 {
		return nil, ErrNoLikelihoods
	}

	matches, err := e.index.Search(ctx, toFloat32(r.classLikelihoods), topK)
	if err != nil {
		return nil, fmt.Errorf("failed to search vector index: %w", err)
	}
	return matches, nil
}

// Results returns copies of every recorded result, in insertion order
func (e *Evaluator) Results() []Result {
	e.resultsLock.RLock()
	defer e.resultsLock.RUnlock()

	out := make([]Result, len(e.results))
	for i, r := range e.results {
		out[i] = r.Clone()
	}
	return out
}

// Len returns the number of recorded results
func (e *Evaluator) Len() int {
	e.resultsLock.RLock()
	defer e.resultsLock.RUnlock()

	return len(e.results)
}

// Metrics scores every recorded result
func (e *Evaluator) Metrics() Metrics {
	e.resultsLock.RLock()
	defer e.resultsLock.RUnlock()

	return e.computeMetrics(e.results)
}

// computeMetrics scores results (caller must hold resultsLock)
func (e *Evaluator) computeMetrics(results []Result) Metrics {
	labels := slices.Clone(e.classLabels)
	if e.nullRejection {
		labels = append(labels, NullRejectionLabel)
	}

	m := Metrics{
		TotalTrials: len(results),
		Confusion:   NewConfusionMatrix(labels, results),
	}

	rawCorrect := 0
	likelihoods := make([]float64, 0, len(results))
	for _, r := range results {
		if r.IsCorrectPrediction() {
			m.Correct++
		}
		if r.IsRawCorrectPrediction() {
			rawCorrect++
		}
		if r.PostProcessingChanged() {
			m.PostProcessingChanges++
		}
		likelihoods = append(likelihoods, r.maximumLikelihood)
	}
	m.Accuracy = ratio(m.Correct, m.TotalTrials)
	m.RawAccuracy = ratio(rawCorrect, m.TotalTrials)

	var skip []uint
	if e.nullRejection {
		skip = []uint{NullRejectionLabel}
		hits := m.Confusion.Count(NullRejectionLabel, NullRejectionLabel)
		m.RejectionPrecision = ratio(hits, m.Confusion.Predicted(NullRejectionLabel))
		m.RejectionRecall = ratio(hits, m.Confusion.Support(NullRejectionLabel))
	}

	for _, label := range m.Confusion.Labels() {
		if slices.Contains(skip, label) {
			continue
		}
		tp := m.Confusion.Count(label, label)
		cls := ClassMetrics{
			Label:     label,
			Support:   m.Confusion.Support(label),
			Precision: ratio(tp, m.Confusion.Predicted(label)),
		}
		cls.Recall = ratio(tp, cls.Support)
		cls.FMeasure = fMeasure(cls.Precision, cls.Recall)
		m.Classes = append(m.Classes, cls)
	}

	if len(m.Classes) > 0 {
		for _, cls := range m.Classes {
			m.Precision += cls.Precision
			m.Recall += cls.Recall
			m.FMeasure += cls.FMeasure
		}
		n := float64(len(m.Classes))
		m.Precision /= n
		m.Recall /= n
		m.FMeasure /= n
	}

	m.Likelihood = summarise(likelihoods)
	clusters := m.Confusion.unionConfused(e.clusterThreshold, skip)
	m.ConfusionClusters = clusters.Groups(2)
	m.SeparableClasses = clusters.CountSets()

	return m
}

// Save writes every recorded result to the configured store
func (e *Evaluator) Save(ctx context.Context) error {
	if e.store == nil {
		return nil
	}

	results := e.Results()
	if err := e.store.Save(ctx, results); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}
	e.logger.Debug("saved results", slog.Int("count", len(results)))
	return nil
}

// Close stops accepting results and saves the recorded ones.
// It's safe to call Close multiple times; every call returns the error of the save.
func (e *Evaluator) Close(ctx context.Context) error {
	e.shutdownOnce.Do(func() {
		e.closeLock.Lock()
		e.closing = true
		e.closeLock.Unlock()

		e.closeErr = e.Save(ctx)
	})

	return e.closeErr
}

// fMeasure returns the harmonic mean of precision and recall
func fMeasure(precision float64, recall float64) float64 {
	if precision+recall == 0 {
		return 0
	}
	return 2 * precision * recall / (precision + recall)
}

// summarise describes the distribution of values. An empty input yields a zero summary.
func summarise(values []float64) LikelihoodSummary {
	if len(values) == 0 {
		return LikelihoodSummary{}
	}

	// stats only fails on empty input or an invalid percentile, both ruled out here
	data := stats.Float64Data(values)
	mean, _ := data.Mean()
	stdDev, _ := data.StandardDeviation()
	median, _ := data.Median()
	p25, _ := data.Percentile(25)
	p75, _ := data.Percentile(75)

	return LikelihoodSummary{
		Mean:   mean,
		StdDev: stdDev,
		Median: median,
		P25:    p25,
		P75:    p75,
	}
}

// toFloat32 narrows a likelihood vector for the vector index
func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(x)
	}
	return out
}
