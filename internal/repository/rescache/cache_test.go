package rescache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/aristotle/internal/domain/facet"
	"github.com/kailas-cloud/aristotle/internal/domain/search/query"
	"github.com/kailas-cloud/aristotle/internal/domain/search/request"
	"github.com/kailas-cloud/aristotle/internal/domain/search/result"
)

func browsePlan(t *testing.T, parent string, offset int) request.Plan {
	t.Helper()
	page, err := request.NewPage(offset, 25)
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	return request.Plan{
		Query:  query.Term("parent.keyword", parent),
		SortBy: "titlePrincipal.keyword",
		Page:   page,
	}
}

func TestSearch_MissThenHit(t *testing.T) {
	c, inner, ms, counter := newTestCache(t)
	ctx := context.Background()

	inner.searchFn = func(_ context.Context, _ request.Plan) (result.SearchResult, error) {
		return result.SearchResult{
			Total: 1,
			Hits:  []result.Document{result.NewDocument("es-1", map[string]any{"pid": "coccc:2"})},
			Aggregations: result.NewAggregations(map[string][]result.Bucket{
				"Genres": {{Key: "thesis", Count: 1}},
			}),
		}, nil
	}

	plan := browsePlan(t, "coccc:1", 0)
	first, err := c.Search(ctx, plan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := c.Search(ctx, plan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inner.searchCalls != 1 {
		t.Errorf("expected 1 backend call, got %d", inner.searchCalls)
	}
	if second.Total != first.Total || second.Hits[0].PID() != "coccc:2" {
		t.Errorf("cached result differs: %+v", second)
	}
	if b, ok := second.Aggregations.Get("Genres"); !ok || b[0].Key != "thesis" {
		t.Errorf("cached aggregations lost: %+v", second.Aggregations)
	}
	if ms.ttls[Key(plan)] != 5*time.Minute {
		t.Errorf("ttl = %v", ms.ttls[Key(plan)])
	}
	if v := testutil.ToFloat64(counter.WithLabelValues("hit")); v != 1 {
		t.Errorf("hits = %f, want 1", v)
	}
	if v := testutil.ToFloat64(counter.WithLabelValues("miss")); v != 1 {
		t.Errorf("misses = %f, want 1", v)
	}
}

func TestSearch_ErrorsNotCached(t *testing.T) {
	c, inner, ms, _ := newTestCache(t)

	boom := errors.New("boom")
	inner.searchFn = func(_ context.Context, _ request.Plan) (result.SearchResult, error) {
		return result.SearchResult{}, boom
	}

	_, err := c.Search(context.Background(), browsePlan(t, "coccc:1", 0))
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if len(ms.data) != 0 {
		t.Errorf("error result was cached")
	}
}

func TestSearch_StoreFailureFallsThrough(t *testing.T) {
	c, inner, ms, _ := newTestCache(t)
	ms.getErr = errors.New("redis down")
	ms.setErr = errors.New("redis down")

	if _, err := c.Search(context.Background(), browsePlan(t, "coccc:1", 0)); err != nil {
		t.Fatalf("cache failure must not fail the search: %v", err)
	}
	if inner.searchCalls != 1 {
		t.Errorf("expected backend call, got %d", inner.searchCalls)
	}
}

func TestSearch_CorruptEntryIsMiss(t *testing.T) {
	c, inner, ms, _ := newTestCache(t)
	plan := browsePlan(t, "coccc:1", 0)
	ms.data[Key(plan)] = []byte("not json")

	if _, err := c.Search(context.Background(), plan); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.searchCalls != 1 {
		t.Errorf("expected backend call, got %d", inner.searchCalls)
	}
}

func TestKey_DistinguishesPlans(t *testing.T) {
	base := browsePlan(t, "coccc:1", 0)
	nextPage := browsePlan(t, "coccc:1", 25)
	otherParent := browsePlan(t, "coccc:2", 0)
	withFacets := base
	withFacets.Facets = facet.Default.Definitions()
	aggOnly := withFacets
	aggOnly.AggregationOnly = true

	keys := map[string]string{}
	for name, p := range map[string]request.Plan{
		"base": base, "next": nextPage, "other": otherParent, "facets": withFacets, "aggs": aggOnly,
	} {
		k := Key(p)
		if prev, dup := keys[k]; dup {
			t.Errorf("plans %s and %s share key %s", prev, name, k)
		}
		keys[k] = name
	}

	if Key(base) != Key(browsePlan(t, "coccc:1", 0)) {
		t.Error("equal plans must share a key")
	}
}

func TestPassThrough(t *testing.T) {
	c, _, _, _ := newTestCache(t)

	doc, err := c.Get(context.Background(), "es-1")
	if err != nil || doc.ID() != "es-1" {
		t.Errorf("unexpected get: %+v %v", doc, err)
	}
	stats, err := c.Stats(context.Background())
	if err != nil || stats.Name != "repository" {
		t.Errorf("unexpected stats: %+v %v", stats, err)
	}
}
