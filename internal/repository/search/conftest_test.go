package search

import (
	"context"
	"testing"

	"github.com/kailas-cloud/aristotle/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchFn    func(ctx context.Context, req *db.SearchRequest) (*db.SearchResponse, error)
	getFn       func(ctx context.Context, index, id string) (*db.Hit, error)
	indexInfoFn func(ctx context.Context, name string) (*db.IndexInfo, error)
}

func (m *mockStore) Search(ctx context.Context, req *db.SearchRequest) (*db.SearchResponse, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, req)
	}
	return &db.SearchResponse{}, nil
}

func (m *mockStore) Get(ctx context.Context, index, id string) (*db.Hit, error) {
	if m.getFn != nil {
		return m.getFn(ctx, index, id)
	}
	return nil, db.ErrNotFound
}

func (m *mockStore) IndexInfo(ctx context.Context, name string) (*db.IndexInfo, error) {
	if m.indexInfoFn != nil {
		return m.indexInfoFn(ctx, name)
	}
	return &db.IndexInfo{Name: name}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, "repository", 20), ms
}
