package search

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/aristotle/internal/db"
	"github.com/kailas-cloud/aristotle/internal/metrics"
)

// InstrumentedStore wraps a backend with request metrics and debug logging.
type InstrumentedStore struct {
	inner  store
	driver string
	logger *zap.Logger
}

// NewInstrumentedStore wraps s. driver labels the metrics (elastic, bleve).
func NewInstrumentedStore(s store, driver string, logger *zap.Logger) *InstrumentedStore {
	return &InstrumentedStore{inner: s, driver: driver, logger: logger}
}

// Search delegates to the backend and records the round trip.
func (s *InstrumentedStore) Search(ctx context.Context, req *db.SearchRequest) (*db.SearchResponse, error) {
	start := time.Now()
	resp, err := s.inner.Search(ctx, req)
	elapsed := time.Since(start)

	metrics.ObserveBackend(s.driver, db.OpSearch, elapsed.Seconds(), err)
	if err != nil {
		s.logger.Error("Backend search failed",
			zap.String("driver", s.driver),
			zap.String("query", req.Query.String()),
			zap.Duration("duration", elapsed),
			zap.Error(err),
		)
		return nil, err //nolint:wrapcheck // decorator is transparent
	}

	metrics.BackendHitsReturned.WithLabelValues(s.driver).Observe(float64(len(resp.Hits)))
	s.logger.Debug("Backend search completed",
		zap.String("driver", s.driver),
		zap.String("query", req.Query.String()),
		zap.Int("from", req.From),
		zap.Int("size", req.Size),
		zap.Int("aggregations", len(req.Aggregations)),
		zap.Int64("total", resp.Total),
		zap.Duration("duration", elapsed),
	)
	return resp, nil
}

// Get delegates to the backend and records the round trip.
func (s *InstrumentedStore) Get(ctx context.Context, index, id string) (*db.Hit, error) {
	start := time.Now()
	hit, err := s.inner.Get(ctx, index, id)
	// missing documents are not counted as errors
	observed := err
	if errors.Is(err, db.ErrNotFound) {
		observed = nil
	}
	metrics.ObserveBackend(s.driver, db.OpGetDocument, time.Since(start).Seconds(), observed)
	return hit, err //nolint:wrapcheck // decorator is transparent
}

// IndexInfo delegates to the backend and records the round trip.
func (s *InstrumentedStore) IndexInfo(ctx context.Context, name string) (*db.IndexInfo, error) {
	start := time.Now()
	info, err := s.inner.IndexInfo(ctx, name)
	metrics.ObserveBackend(s.driver, db.OpIndexInfo, time.Since(start).Seconds(), err)
	return info, err //nolint:wrapcheck // decorator is transparent
}
