package classresult

// Builder assembles a Result field by field, for producers that fill in a trial
// incrementally (e.g. the raw prediction first, the post-processed label later).
type Builder struct {
	fields Fields
}

// NewBuilder creates a Builder holding the default record
func NewBuilder() *Builder {
	return &Builder{}
}

// TrueLabel sets the ground-truth class label
func (b *Builder) TrueLabel(label uint) *Builder {
	b.fields.TrueLabel = label
	return b
}

// PredictedLabel sets the label predicted by the full pipeline
func (b *Builder) PredictedLabel(label uint) *Builder {
	b.fields.PredictedLabel = label
	return b
}

// RawPredictedLabel sets the label predicted by the classifier before post-processing
func (b *Builder) RawPredictedLabel(label uint) *Builder {
	b.fields.RawPredictedLabel = label
	return b
}

// MaximumLikelihood sets the likelihood of the winning class
func (b *Builder) MaximumLikelihood(likelihood float64) *Builder {
	b.fields.MaximumLikelihood = likelihood
	return b
}

// ClassLikelihoods sets the per-class likelihoods. The slice is copied on Build.
func (b *Builder) ClassLikelihoods(likelihoods []float64) *Builder {
	b.fields.ClassLikelihoods = likelihoods
	return b
}

// ClassDistances sets the per-class distances. The slice is copied on Build.
func (b *Builder) ClassDistances(distances []float64) *Builder {
	b.fields.ClassDistances = distances
	return b
}

// Build returns a Result holding the builder's current values. The builder can
// keep being used afterwards without affecting the returned Result.
func (b *Builder) Build() Result {
	return NewResult(b.fields)
}
