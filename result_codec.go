package classresult

import "encoding/json"

// resultJSON is the wire form of a Result
type resultJSON struct {
	TrueLabel         uint   `json:"true_label"`
	PredictedLabel    uint   `json:"predicted_label"`
	RawPredictedLabel uint   `json:"raw_predicted_label"`
	MaximumLikelihood Float  `json:"maximum_likelihood"`
	ClassLikelihoods  Floats `json:"class_likelihoods"`
	ClassDistances    Floats `json:"class_distances"`
}

// MarshalJSON implements json.Marshaler interface.
// Non-finite values are written as strings; see Float.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{
		TrueLabel:         r.trueLabel,
		PredictedLabel:    r.predictedLabel,
		RawPredictedLabel: r.rawPredictedLabel,
		MaximumLikelihood: Float(r.maximumLikelihood),
		ClassLikelihoods:  r.classLikelihoods,
		ClassDistances:    r.classDistances,
	})
}

// UnmarshalJSON implements json.Unmarshaler interface
func (r *Result) UnmarshalJSON(data []byte) error {
	var temp resultJSON
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}

	*r = NewResult(Fields{
		TrueLabel:         temp.TrueLabel,
		PredictedLabel:    temp.PredictedLabel,
		RawPredictedLabel: temp.RawPredictedLabel,
		MaximumLikelihood: float64(temp.MaximumLikelihood),
		ClassLikelihoods:  temp.ClassLikelihoods,
		ClassDistances:    temp.ClassDistances,
	})
	return nil
}
