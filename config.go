package classresult

import "log/slog"

const (
	// DefaultClusterThreshold is the confusion rate at which two classes are grouped together
	DefaultClusterThreshold = 0.2

	// DefaultResultsFilePath is the default location for file-based result persistence
	DefaultResultsFilePath = "./results.json"
)

// Config holds configuration for the Evaluator
type Config struct {
	// ClassLabels lists the labels the pipeline was trained on. Labels seen in results
	// but missing here are added automatically.
	ClassLabels []uint

	// NullRejection treats NullRejectionLabel as the rejection class rather than a gesture
	NullRejection bool

	// ClusterThreshold is the confusion rate used for ConfusionClusters. If 0, uses DefaultClusterThreshold.
	ClusterThreshold float64

	// Store persists results. If nil, results only live in memory.
	Store ResultStore

	// VectorIndex receives the class likelihood vector of every added result. Optional.
	VectorIndex VectorIndex

	// Logger receives evaluator logs. If nil, uses the "evaluator" component logger.
	Logger *slog.Logger
}

// applyDefaults fills in default values for unset config fields
func (c *Config) applyDefaults() {
	if c.ClusterThreshold <= 0 {
		c.ClusterThreshold = DefaultClusterThreshold
	}
}
