package classresult

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// maxLikelihoodTolerance is the slack allowed between the maximum likelihood and the
// largest class likelihood before they are considered inconsistent
const maxLikelihoodTolerance = 1e-9

// Validate checks r for internal consistency. Results are never validated on
// construction; producers and consumers decide whether to call this.
// All problems found are joined into the returned error, each wrapping one of
// ErrLikelihoodDistanceMismatch, ErrLikelihoodOutOfRange or ErrMaximumLikelihoodMismatch.
func (r Result) Validate() error {
	var errs []error

	if len(r.classLikelihoods) > 0 && len(r.classDistances) > 0 &&
		len(r.classLikelihoods) != len(r.classDistances) {
		errs = append(errs, fmt.Errorf("%w: %d likelihoods, %d distances",
			ErrLikelihoodDistanceMismatch, len(r.classLikelihoods), len(r.classDistances)))
	}

	if math.IsNaN(r.maximumLikelihood) || r.maximumLikelihood < 0 || r.maximumLikelihood > 1 {
		errs = append(errs, fmt.Errorf("%w: %v", ErrLikelihoodOutOfRange, r.maximumLikelihood))
	}

	if len(r.classLikelihoods) > 0 {
		best := slices.Max(r.classLikelihoods)
		if math.Abs(best-r.maximumLikelihood) > maxLikelihoodTolerance {
			errs = append(errs, fmt.Errorf("%w: maximum %v, largest class likelihood %v",
				ErrMaximumLikelihoodMismatch, r.maximumLikelihood, best))
		}
	}

	return errors.Join(errs...)
}
