package pinecone

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/FrenchMajesty/classresult"
	"github.com/FrenchMajesty/classresult/internal/logging"
	"github.com/FrenchMajesty/classresult/internal/retry"
	"google.golang.org/protobuf/types/known/structpb"
)

// indexClient is the subset of index operations LikelihoodIndex relies on
type indexClient interface {
	Search(ctx context.Context, queryVector []float32, topK int, filter map[string]any, includeMetadata bool) ([]QueryMatch, error)
	Upsert(ctx context.Context, vectors []Vector) error
}

var _ classresult.VectorIndex = (*LikelihoodIndex)(nil)

// LikelihoodIndex stores class likelihood vectors in Pinecone so trials can be
// looked up by how the classifier scored them
type LikelihoodIndex struct {
	index       indexClient
	retryConfig retry.Config
	logger      *slog.Logger
}

// NewLikelihoodIndex creates a LikelihoodIndex. A nil apiKey or host is read from
// PINECONE_API_KEY or PINECONE_HOST respectively.
func NewLikelihoodIndex(apiKey *string, host *string, namespace string) (*LikelihoodIndex, error) {
	key, err := loadEnvVar(apiKey, "PINECONE_API_KEY")
	if err != nil {
		return nil, err
	}

	h, err := loadEnvVar(host, "PINECONE_HOST")
	if err != nil {
		return nil, err
	}

	service, err := NewPineconeService(*key)
	if err != nil {
		return nil, fmt.Errorf("failed to create pinecone service: %w", err)
	}

	index, err := service.ForIndex(*h, namespace)
	if err != nil {
		return nil, err
	}

	return newLikelihoodIndex(index), nil
}

// newLikelihoodIndex wraps an index client with the default retry policy
func newLikelihoodIndex(index indexClient) *LikelihoodIndex {
	return &LikelihoodIndex{
		index:       index,
		retryConfig: retry.DefaultConfig(),
		logger:      logging.New("pinecone"),
	}
}

// Search implements VectorIndex interface
func (a *LikelihoodIndex) Search(ctx context.Context, vector []float32, topK int) ([]classresult.VectorMatch, error) {
	matches, err := retry.Do(ctx, a.retryOptions("search"), func(ctx context.Context, attempt int) ([]QueryMatch, error) {
		return a.index.Search(ctx, vector, topK, nil, true)
	})
	if err != nil {
		return nil, err
	}

	results := make([]classresult.VectorMatch, 0, len(matches))
	for _, match := range matches {
		if match.Vector == nil {
			continue
		}

		metadata := make(map[string]any)
		if match.Vector.Metadata != nil {
			metadata = match.Vector.Metadata.AsMap()
		}

		results = append(results, classresult.VectorMatch{
			ID:       match.Vector.Id,
			Score:    match.Score,
			Metadata: metadata,
		})
	}

	return results, nil
}

// Upsert implements VectorIndex interface
func (a *LikelihoodIndex) Upsert(ctx context.Context, id string, vector []float32, metadata map[string]any) error {
	metadataStruct, err := structpb.NewStruct(metadata)
	if err != nil {
		return fmt.Errorf("failed to convert metadata: %w", err)
	}

	vectors := []Vector{
		{
			Id:     id,
			Values: vector,
			Metadata: &Metadata{
				Fields: metadataStruct.Fields,
			},
		},
	}

	_, err = retry.Do(ctx, a.retryOptions("upsert"), func(ctx context.Context, attempt int) (struct{}, error) {
		return struct{}{}, a.index.Upsert(ctx, vectors)
	})
	return err
}

// retryOptions returns the retry options for the named operation
func (a *LikelihoodIndex) retryOptions(operation string) retry.Options {
	return retry.Options{
		Config:    a.retryConfig,
		Logger:    a.logger,
		Operation: "pinecone " + operation,
	}
}

// loadEnvVar returns target, or the value of envKey when target is nil
func loadEnvVar(target *string, envKey string) (*string, error) {
	if target == nil {
		envVar := os.Getenv(envKey)
		if envVar == "" {
			return nil, fmt.Errorf("%s environment variable not set and no value provided", envKey)
		}
		return &envVar, nil
	}
	return target, nil
}
