// Package rescache caches search round trips in a key-value store.
package rescache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/aristotle/internal/db"
	"github.com/kailas-cloud/aristotle/internal/domain/search/request"
	"github.com/kailas-cloud/aristotle/internal/domain/search/result"
)

const cacheKeyPrefix = "aristotle:search:"

// repository is the decorated search repository.
type repository interface {
	Search(ctx context.Context, plan request.Plan) (result.SearchResult, error)
	Get(ctx context.Context, id string) (result.Document, error)
	Stats(ctx context.Context) (result.IndexStats, error)
}

// store is the consumer interface for the response cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedRepo caches search results keyed by the executed plan. Errors are
// never cached and cache failures degrade to a direct backend call.
type CachedRepo struct {
	inner      repository
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner repository,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedRepo {
	return &CachedRepo{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Search returns a cached result or runs the plan and caches its result.
func (c *CachedRepo) Search(ctx context.Context, plan request.Plan) (result.SearchResult, error) {
	key := Key(plan)

	if res, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return res, nil
	}

	c.incCache("miss")

	res, err := c.inner.Search(ctx, plan)
	if err != nil {
		return result.SearchResult{}, fmt.Errorf("cached search: %w", err)
	}

	c.putToCache(ctx, key, res)
	return res, nil
}

// Get is not cached.
func (c *CachedRepo) Get(ctx context.Context, id string) (result.Document, error) {
	return c.inner.Get(ctx, id) //nolint:wrapcheck // pass-through
}

// Stats is not cached.
func (c *CachedRepo) Stats(ctx context.Context) (result.IndexStats, error) {
	return c.inner.Stats(ctx) //nolint:wrapcheck // pass-through
}

// Key derives the cache key of a plan from its canonical form.
func Key(plan request.Plan) string {
	names := make([]string, 0, len(plan.Facets))
	for _, f := range plan.Facets {
		names = append(names, f.Name()+"="+f.KeywordField())
	}

	var sb strings.Builder
	sb.WriteString(plan.Query.String())
	sb.WriteString("|facets=")
	sb.WriteString(strings.Join(names, ","))
	sb.WriteString("|sort=")
	sb.WriteString(plan.SortBy)
	if plan.AggregationOnly {
		sb.WriteString("|aggs-only")
	} else {
		fmt.Fprintf(&sb, "|from=%d|size=%d", plan.Page.Offset(), plan.Page.Size())
	}

	h := sha256.Sum256([]byte(sb.String()))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}

func (c *CachedRepo) incCache(res string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(res).Inc()
	}
}

func (c *CachedRepo) getFromCache(ctx context.Context, key string) (result.SearchResult, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached result", zap.String("key", key), zap.Error(err))
		}
		return result.SearchResult{}, false
	}
	if len(data) == 0 {
		return result.SearchResult{}, false
	}

	var res result.SearchResult
	if err := json.Unmarshal(data, &res); err != nil {
		c.logger.Warn("Failed to parse cached result", zap.String("key", key), zap.Error(err))
		return result.SearchResult{}, false
	}
	return res, true
}

func (c *CachedRepo) putToCache(ctx context.Context, key string, res result.SearchResult) {
	data, err := json.Marshal(res)
	if err != nil {
		c.logger.Warn("Failed to encode result for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache result", zap.String("key", key), zap.Error(err))
	}
}
