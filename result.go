package classresult

import "slices"

// NullRejectionLabel is the class label a pipeline predicts when it rejects a sample
// instead of assigning it to one of the trained gestures.
const NullRejectionLabel uint = 0

// Fields carries the values a Result is constructed from. Any field left unset
// takes its zero value, which matches the default record.
type Fields struct {
	TrueLabel         uint
	PredictedLabel    uint
	RawPredictedLabel uint
	MaximumLikelihood float64
	ClassLikelihoods  []float64
	ClassDistances    []float64
}

// Result is the outcome of a single classification trial.
//
// A Result is immutable once built: the constructor copies the two sequences in and
// the accessors copy them out, so a plain assignment (b := a) already behaves as a
// deep copy. The zero value is the default record (all labels 0, no likelihoods).
//
// No consistency checks are made on construction. Call Validate when the producer
// can't be trusted.
type Result struct {
	trueLabel         uint
	predictedLabel    uint
	rawPredictedLabel uint
	maximumLikelihood float64
	classLikelihoods  []float64
	classDistances    []float64
}

// NewResult builds a Result from the given fields
func NewResult(f Fields) Result {
	return Result{
		trueLabel:         f.TrueLabel,
		predictedLabel:    f.PredictedLabel,
		rawPredictedLabel: f.RawPredictedLabel,
		maximumLikelihood: f.MaximumLikelihood,
		classLikelihoods:  copyVector(f.ClassLikelihoods),
		classDistances:    copyVector(f.ClassDistances),
	}
}

// Clone returns a deep copy of r
func (r Result) Clone() Result {
	return Result{
		trueLabel:         r.trueLabel,
		predictedLabel:    r.predictedLabel,
		rawPredictedLabel: r.rawPredictedLabel,
		maximumLikelihood: r.maximumLikelihood,
		classLikelihoods:  copyVector(r.classLikelihoods),
		classDistances:    copyVector(r.classDistances),
	}
}

// Assign overwrites r with a deep copy of src. Assigning a result to itself is a no-op.
func (r *Result) Assign(src *Result) {
	if r == src || src == nil {
		return
	}
	*r = src.Clone()
}

// Fields returns a copy of the values r was built from
func (r Result) Fields() Fields {
	return Fields{
		TrueLabel:         r.trueLabel,
		PredictedLabel:    r.predictedLabel,
		RawPredictedLabel: r.rawPredictedLabel,
		MaximumLikelihood: r.maximumLikelihood,
		ClassLikelihoods:  copyVector(r.classLikelihoods),
		ClassDistances:    copyVector(r.classDistances),
	}
}

// IsCorrectPrediction reports whether the pipeline's prediction matches the true label
func (r Result) IsCorrectPrediction() bool {
	return r.trueLabel == r.predictedLabel
}

// IsRawCorrectPrediction reports whether the classifier's own prediction, before
// post-processing, matches the true label
func (r Result) IsRawCorrectPrediction() bool {
	return r.trueLabel == r.rawPredictedLabel
}

// IsRejected reports whether the pipeline predicted the null rejection class
func (r Result) IsRejected() bool {
	return r.predictedLabel == NullRejectionLabel
}

// PostProcessingChanged reports whether post-processing overrode the classifier's prediction
func (r Result) PostProcessingChanged() bool {
	return r.predictedLabel != r.rawPredictedLabel
}

// TrueLabel returns the ground-truth class label
func (r Result) TrueLabel() uint {
	return r.trueLabel
}

// PredictedLabel returns the label predicted by the full pipeline
func (r Result) PredictedLabel() uint {
	return r.predictedLabel
}

// RawPredictedLabel returns the label predicted by the classifier before post-processing
func (r Result) RawPredictedLabel() uint {
	return r.rawPredictedLabel
}

// MaximumLikelihood returns the likelihood of the winning class
func (r Result) MaximumLikelihood() float64 {
	return r.maximumLikelihood
}

// ClassLikelihoods returns a copy of the per-class likelihoods, indexed by class position
func (r Result) ClassLikelihoods() []float64 {
	return copyVector(r.classLikelihoods)
}

// ClassDistances returns a copy of the per-class distances, indexed by class position
func (r Result) ClassDistances() []float64 {
	return copyVector(r.classDistances)
}

// NumClasses returns the number of per-class likelihoods carried by r
func (r Result) NumClasses() int {
	return len(r.classLikelihoods)
}

// Equal reports whether r and other hold the same values, sequences compared in order.
// NaN equals NaN so that a copy always equals its source.
func (r Result) Equal(other Result) bool {
	return r.trueLabel == other.trueLabel &&
		r.predictedLabel == other.predictedLabel &&
		r.rawPredictedLabel == other.rawPredictedLabel &&
		sameFloat(r.maximumLikelihood, other.maximumLikelihood) &&
		slices.EqualFunc(r.classLikelihoods, other.classLikelihoods, sameFloat) &&
		slices.EqualFunc(r.classDistances, other.classDistances, sameFloat)
}

// copyVector returns an independent copy of v, or nil when v is empty
func copyVector(v []float64) []float64 {
	if len(v) == 0 {
		return nil
	}
	return slices.Clone(v)
}
