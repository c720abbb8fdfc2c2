package classresult

import "errors"

var (
	// ErrLikelihoodDistanceMismatch is reported when a result carries a different number
	// of class likelihoods and class distances
	ErrLikelihoodDistanceMismatch = errors.New("class likelihoods and class distances differ in length")

	// ErrLikelihoodOutOfRange is reported when the maximum likelihood is NaN or outside [0,1]
	ErrLikelihoodOutOfRange = errors.New("maximum likelihood outside [0,1]")

	// ErrMaximumLikelihoodMismatch is reported when the maximum likelihood is not the
	// largest of the class likelihoods
	ErrMaximumLikelihoodMismatch = errors.New("maximum likelihood does not match class likelihoods")

	// ErrEvaluatorClosed is returned when results are added to a closed Evaluator
	ErrEvaluatorClosed = errors.New("evaluator is closed")

	// ErrNoLikelihoods is returned when a vector lookup is made for a result without class likelihoods
	ErrNoLikelihoods = errors.New("result has no class likelihoods")

	// ErrNoVectorIndex is returned when a vector lookup is made on an Evaluator without a VectorIndex
	ErrNoVectorIndex = errors.New("no vector index configured")
)
