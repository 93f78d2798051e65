package db

import (
	"context"
	"time"
)

// Executor is the search backend facade: the execution adapter every query
// path goes through.
//
//nolint:interfacebloat // consumers depend on the narrow sub-interfaces
type Executor interface {
	Pinger
	Searcher
	Getter
	IndexManager
	Close()
}

// Pinger checks backend connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Searcher runs composed queries.
type Searcher interface {
	Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error)
}

// Getter fetches a single document by the backend's internal id.
type Getter interface {
	Get(ctx context.Context, index, id string) (*Hit, error)
}

// IndexManager provides index lifecycle and bulk loading.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	IndexInfo(ctx context.Context, name string) (*IndexInfo, error)
	Bulk(ctx context.Context, index string, docs []Hit) error
}

// KVStore provides simple key-value operations with expiry.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// CacheStore is the key-value facade backing the response cache.
type CacheStore interface {
	Pinger
	KVStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}
