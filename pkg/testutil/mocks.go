package testutil

import (
	"context"
	"sync"

	"github.com/FrenchMajesty/classresult"
)

// StoredVector is an entry written to MockVectorIndex
type StoredVector struct {
	Vector   []float32
	Metadata map[string]any
}

// MockVectorIndex is a mock implementation of VectorIndex for testing
type MockVectorIndex struct {
	SearchFunc func(ctx context.Context, vector []float32, topK int) ([]classresult.VectorMatch, error)
	UpsertFunc func(ctx context.Context, id string, vector []float32, metadata map[string]any) error

	mu          sync.Mutex
	SearchCount int
	UpsertCount int
	Storage     map[string]StoredVector
}

func NewMockVectorIndex() *MockVectorIndex {
	return &MockVectorIndex{
		Storage: make(map[string]StoredVector),
	}
}

func (m *MockVectorIndex) Search(ctx context.Context, vector []float32, topK int) ([]classresult.VectorMatch, error) {
	m.mu.Lock()
	m.SearchCount++
	m.mu.Unlock()

	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, vector, topK)
	}

	// Default: return empty results
	return []classresult.VectorMatch{}, nil
}

func (m *MockVectorIndex) Upsert(ctx context.Context, id string, vector []float32, metadata map[string]any) error {
	m.mu.Lock()
	m.UpsertCount++
	m.Storage[id] = StoredVector{Vector: vector, Metadata: metadata}
	m.mu.Unlock()

	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, id, vector, metadata)
	}

	return nil
}

// Stored returns the entries upserted so far
func (m *MockVectorIndex) Stored() []StoredVector {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]StoredVector, 0, len(m.Storage))
	for _, v := range m.Storage {
		out = append(out, v)
	}
	return out
}

// MockResultStore is a mock implementation of ResultStore for testing
type MockResultStore struct {
	LoadFunc func(ctx context.Context) ([]classresult.Result, error)
	SaveFunc func(ctx context.Context, results []classresult.Result) error

	mu        sync.Mutex
	SaveCount int
	LastSaved []classresult.Result
}

func (m *MockResultStore) Load(ctx context.Context) ([]classresult.Result, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}

	// Default: nothing saved yet
	return []classresult.Result{}, nil
}

func (m *MockResultStore) Save(ctx context.Context, results []classresult.Result) error {
	m.mu.Lock()
	m.SaveCount++
	m.LastSaved = results
	m.mu.Unlock()

	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, results)
	}

	return nil
}
