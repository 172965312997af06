package search

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/kailas-cloud/hotelsearch/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchFn func(ctx context.Context, index string, body map[string]any) (*db.SearchResponse, error)
	calls    int
}

func (m *mockStore) Search(ctx context.Context, index string, body map[string]any) (*db.SearchResponse, error) {
	m.calls++
	if m.searchFn != nil {
		return m.searchFn(ctx, index, body)
	}
	return &db.SearchResponse{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, "hotel"), ms
}

// decodeResponse builds a response the way the engine store does.
func decodeResponse(t *testing.T, raw string) *db.SearchResponse {
	t.Helper()
	var res db.SearchResponse
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return &res
}
