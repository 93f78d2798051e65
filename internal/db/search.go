package db

import (
	"time"

	"github.com/kailas-cloud/aristotle/internal/domain/search/query"
)

// DefaultAggregationSize is the bucket count requested when an Aggregation leaves Size unset.
const DefaultAggregationSize = 10

// Aggregation asks for the top term buckets of a field under a name.
type Aggregation struct {
	Name  string
	Field string
	Size  int
}

// SortField orders hits by a field.
type SortField struct {
	Field     string
	Ascending bool
}

// SearchRequest is the input of one backend round trip.
// Size 0 means aggregation only.
type SearchRequest struct {
	Index        string
	Query        query.Expr
	Aggregations []Aggregation
	Sort         []SortField
	From         int
	Size         int
}

// Hit is a single document returned by the backend.
type Hit struct {
	ID     string
	Source map[string]any
}

// Bucket is one term with its document count.
type Bucket struct {
	Key   string
	Count int64
}

// SearchResponse is the output of one round trip. Bucket lists keep the
// backend's order.
type SearchResponse struct {
	Total        int64
	Hits         []Hit
	Aggregations map[string][]Bucket
}

// IndexInfo describes an index.
type IndexInfo struct {
	Name      string
	CreatedAt time.Time
	DocCount  int64
}
