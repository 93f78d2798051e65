package rescache

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/aristotle/internal/db"
	"github.com/kailas-cloud/aristotle/internal/domain/search/request"
	"github.com/kailas-cloud/aristotle/internal/domain/search/result"
)

type mockRepo struct {
	searchFn    func(ctx context.Context, plan request.Plan) (result.SearchResult, error)
	searchCalls int
}

func (m *mockRepo) Search(ctx context.Context, plan request.Plan) (result.SearchResult, error) {
	m.searchCalls++
	if m.searchFn != nil {
		return m.searchFn(ctx, plan)
	}
	return result.Empty(), nil
}

func (m *mockRepo) Get(_ context.Context, id string) (result.Document, error) {
	return result.NewDocument(id, nil), nil
}

func (m *mockRepo) Stats(_ context.Context) (result.IndexStats, error) {
	return result.IndexStats{Name: "repository"}, nil
}

// mockKVStore is an in-memory store recording TTLs.
type mockKVStore struct {
	data   map[string][]byte
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func (m *mockKVStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockKVStore) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func newTestCache(t *testing.T) (*CachedRepo, *mockRepo, *mockKVStore, *prometheus.CounterVec) {
	t.Helper()
	inner := &mockRepo{}
	ms := &mockKVStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_cache_total"}, []string{"result"})
	return New(inner, ms, 5*time.Minute, counter, zap.NewNop()), inner, ms, counter
}
