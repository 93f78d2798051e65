package search

import (
	"context"
	"sync"
	"testing"

	"github.com/kailas-cloud/aristotle/internal/domain"
	"github.com/kailas-cloud/aristotle/internal/domain/search/mode"
	"github.com/kailas-cloud/aristotle/internal/domain/search/request"
	"github.com/kailas-cloud/aristotle/internal/domain/search/result"
)

// mockRepo records every plan it receives. It is safe for the concurrent
// calls Browse makes.
type mockRepo struct {
	mu       sync.Mutex
	plans    []request.Plan
	searchFn func(ctx context.Context, plan request.Plan) (result.SearchResult, error)
	getFn    func(ctx context.Context, id string) (result.Document, error)
	statsFn  func(ctx context.Context) (result.IndexStats, error)
}

func (m *mockRepo) Search(ctx context.Context, plan request.Plan) (result.SearchResult, error) {
	m.mu.Lock()
	m.plans = append(m.plans, plan)
	m.mu.Unlock()
	if m.searchFn != nil {
		return m.searchFn(ctx, plan)
	}
	return result.Empty(), nil
}

func (m *mockRepo) Get(ctx context.Context, id string) (result.Document, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return result.Document{}, domain.ErrNotFound
}

func (m *mockRepo) Stats(ctx context.Context) (result.IndexStats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx)
	}
	return result.IndexStats{}, nil
}

func (m *mockRepo) recorded() []request.Plan {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]request.Plan, len(m.plans))
	copy(out, m.plans)
	return out
}

func newTestService(t *testing.T) (*Service, *mockRepo) {
	t.Helper()
	repo := &mockRepo{}
	return New(repo, Config{}), repo
}

func mustPage(t *testing.T, offset, size int) request.Page {
	t.Helper()
	p, err := request.NewPage(offset, size)
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	return p
}

func mustClause(t *testing.T, m mode.Mode, text string, op request.Operator) request.Clause {
	t.Helper()
	c, err := request.NewClause(m, text, op)
	if err != nil {
		t.Fatalf("NewClause: %v", err)
	}
	return c
}

func mustAdvanced(t *testing.T, clauses []request.Clause, opts request.AdvancedOptions) request.Advanced {
	t.Helper()
	r, err := request.NewAdvanced(clauses, opts, request.DefaultPage())
	if err != nil {
		t.Fatalf("NewAdvanced: %v", err)
	}
	return r
}

func doc(id, pid, title string) result.Document {
	return result.NewDocument(id, map[string]any{"pid": pid, "titlePrincipal": title})
}

// isLookup reports whether a plan is the collection lookup by title.
func isLookup(plan request.Plan) bool {
	q := plan.Query
	return len(plan.Facets) == 0 && q.Kind().String() == "phrase" && q.Field() == "titlePrincipal"
}
