package classresult

import "context"

// ResultStore handles loading and saving result sets
type ResultStore interface {
	Load(ctx context.Context) ([]Result, error)
	Save(ctx context.Context, results []Result) error
}

// VectorIndex performs vector similarity search and storage operations
type VectorIndex interface {
	Search(ctx context.Context, vector []float32, topK int) ([]VectorMatch, error)
	Upsert(ctx context.Context, id string, vector []float32, metadata map[string]any) error
}
