package classresult

// Metrics summarises a set of classification results
type Metrics struct {
	// TotalTrials is the number of results evaluated
	TotalTrials int

	// Correct is the number of results whose predicted label matched the true label
	Correct int

	// Accuracy is Correct / TotalTrials
	Accuracy float64

	// RawAccuracy is the accuracy of the classifier's own predictions, before post-processing
	RawAccuracy float64

	// PostProcessingChanges counts the results where post-processing overrode the classifier
	PostProcessingChanges int

	// RejectionPrecision and RejectionRecall score the null rejection class.
	// Both are 0 unless null rejection is enabled.
	RejectionPrecision float64
	RejectionRecall    float64

	// Precision, Recall and FMeasure are macro averages over Classes
	Precision float64
	Recall    float64
	FMeasure  float64

	// Classes holds per-class scores, ordered by label
	Classes []ClassMetrics

	// Confusion counts predictions per true label
	Confusion *ConfusionMatrix

	// Likelihood summarises the maximum likelihood of every result
	Likelihood LikelihoodSummary

	// ConfusionClusters groups classes that are frequently mistaken for one another
	ConfusionClusters [][]uint

	// SeparableClasses counts the scored classes once each confusion cluster is
	// merged into a single class
	SeparableClasses int
}

// ClassMetrics holds the scores of a single class
type ClassMetrics struct {
	Label     uint
	Support   int
	Precision float64
	Recall    float64
	FMeasure  float64
}

// LikelihoodSummary describes the distribution of maximum likelihoods
type LikelihoodSummary struct {
	Mean   float64
	StdDev float64
	Median float64
	P25    float64
	P75    float64
}

// VectorMatch represents a single match from a vector search
type VectorMatch struct {
	ID       string
	Score    float32
	Metadata map[string]any
}
