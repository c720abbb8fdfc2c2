package pinecone

import (
	"context"
	"fmt"

	"github.com/pinecone-io/go-pinecone/pinecone"
	"google.golang.org/protobuf/types/known/structpb"
)

// NewPineconeService creates a new Pinecone service instance using the official SDK
func NewPineconeService(apiKey string) (*pineconeService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("pinecone API key is required")
	}

	client, err := pinecone.NewClient(pinecone.NewClientParams{
		ApiKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Pinecone client: %w", err)
	}

	return &pineconeService{
		client: client,
	}, nil
}

// ForIndex returns an index gateway for the index served at host
func (ps *pineconeService) ForIndex(host string, namespace string) (*indexOperations, error) {
	if host == "" {
		return nil, fmt.Errorf("pinecone index host is required")
	}

	indexConnection, err := ps.client.Index(pinecone.NewIndexConnParams{
		Host:      host,
		Namespace: namespace,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Pinecone index: %w", err)
	}

	return &indexOperations{
		index: indexConnection,
	}, nil
}

// Search performs a vector similarity search in the index
func (idx *indexOperations) Search(ctx context.Context, queryVector []float32, topK int, filter map[string]any, includeMetadata bool) ([]QueryMatch, error) {
	queryRequest := &pinecone.QueryByVectorValuesRequest{
		Vector:          queryVector,
		TopK:            uint32(topK),
		IncludeValues:   false,
		IncludeMetadata: includeMetadata,
	}

	if len(filter) > 0 {
		metadataFilter, err := structpb.NewStruct(filter)
		if err != nil {
			return nil, fmt.Errorf("failed to create metadata filter: %w", err)
		}
		queryRequest.MetadataFilter = metadataFilter
	}

	queryResponse, err := idx.index.QueryByVectorValues(ctx, queryRequest)
	if err != nil {
		return nil, err
	}

	matches := make([]QueryMatch, 0, len(queryResponse.Matches))
	for _, match := range queryResponse.Matches {
		if match == nil {
			continue
		}
		matches = append(matches, *match)
	}

	return matches, nil
}

// Upsert stores vectors in the index
func (idx *indexOperations) Upsert(ctx context.Context, vectors []Vector) error {
	pineconeVectors := make([]*pinecone.Vector, len(vectors))
	for i := range vectors {
		pineconeVectors[i] = &vectors[i]
	}

	_, err := idx.index.UpsertVectors(ctx, pineconeVectors)
	return err
}
