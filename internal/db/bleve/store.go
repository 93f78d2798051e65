// Package bleve implements the search Executor over embedded Bleve indexes,
// either in memory or persisted under a directory.
package bleve

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search"

	"github.com/kailas-cloud/aristotle/internal/db"
)

// Compile-time check: Store implements db.Executor.
var _ db.Executor = (*Store)(nil)

var createdAtKey = []byte("aristotle_created_at")

// errClosed is returned once the store has been closed.
var errClosed = errors.New("bleve store closed")

// Config holds the location of on-disk indexes. An empty Path keeps every
// index in memory.
type Config struct {
	Path string
}

// Store is the embedded execution adapter.
type Store struct {
	path string

	mu      sync.RWMutex
	indexes map[string]bleve.Index
	closed  bool
}

// NewStore creates a Bleve store. On-disk indexes are opened lazily.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Path != "" {
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return nil, fmt.Errorf("create index dir: %w", err)
		}
	}
	return &Store{path: cfg.Path, indexes: make(map[string]bleve.Index)}, nil
}

// Ping reports whether the store is still open.
func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return &db.Error{Op: db.OpPing, Err: fmt.Errorf("%w: %w", db.ErrUnavailable, errClosed)}
	}
	return nil
}

// Close closes every open index.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, idx := range s.indexes {
		_ = idx.Close()
		delete(s.indexes, name)
	}
	s.closed = true
}

// CreateIndex creates a new index from the definition.
func (s *Store) CreateIndex(_ context.Context, def *db.IndexDefinition) error {
	if err := def.Validate(); err != nil {
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return &db.Error{Op: db.OpCreateIndex, Err: fmt.Errorf("%w: %w", db.ErrUnavailable, errClosed)}
	}
	if _, ok := s.indexes[def.Name]; ok {
		return db.ErrIndexExists
	}

	im := buildMapping(def)
	var (
		idx bleve.Index
		err error
	)
	if s.path == "" {
		idx, err = bleve.NewMemOnly(im)
	} else {
		idx, err = bleve.New(s.indexPath(def.Name), im)
	}
	if err != nil {
		if errors.Is(err, bleve.ErrorIndexPathExists) {
			return db.ErrIndexExists
		}
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}

	created := time.Now().UTC().Format(time.RFC3339Nano)
	if err := idx.SetInternal(createdAtKey, []byte(created)); err != nil {
		_ = idx.Close()
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}

	s.indexes[def.Name] = idx
	return nil
}

// IndexExists reports whether the index is open or present on disk.
func (s *Store) IndexExists(_ context.Context, name string) (bool, error) {
	_, err := s.index(name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, db.ErrIndexNotFound):
		return false, nil
	default:
		return false, &db.Error{Op: db.OpIndexInfo, Err: err}
	}
}

// IndexInfo reports the creation time and document count of an index.
func (s *Store) IndexInfo(_ context.Context, name string) (*db.IndexInfo, error) {
	idx, err := s.index(name)
	if err != nil {
		return nil, wrapLookupErr(db.OpIndexInfo, err)
	}

	info := &db.IndexInfo{Name: name}
	raw, err := idx.GetInternal(createdAtKey)
	if err != nil {
		return nil, &db.Error{Op: db.OpIndexInfo, Err: err}
	}
	if len(raw) > 0 {
		if ts, err := time.Parse(time.RFC3339Nano, string(raw)); err == nil {
			info.CreatedAt = ts
		}
	}

	count, err := idx.DocCount()
	if err != nil {
		return nil, &db.Error{Op: db.OpIndexInfo, Err: err}
	}
	info.DocCount = int64(count)
	return info, nil
}

// Bulk indexes documents in a single batch.
func (s *Store) Bulk(_ context.Context, name string, docs []db.Hit) error {
	if len(docs) == 0 {
		return nil
	}
	idx, err := s.index(name)
	if err != nil {
		return wrapLookupErr(db.OpBulk, err)
	}

	batch := idx.NewBatch()
	for _, d := range docs {
		doc, err := withSource(d.Source)
		if err != nil {
			return &db.Error{Op: db.OpBulk, Err: fmt.Errorf("encode %s: %w", d.ID, err)}
		}
		if err := batch.Index(d.ID, doc); err != nil {
			return &db.Error{Op: db.OpBulk, Err: fmt.Errorf("index %s: %w", d.ID, err)}
		}
	}
	if err := idx.Batch(batch); err != nil {
		return &db.Error{Op: db.OpBulk, Err: err}
	}
	return nil
}

// Search runs one composed query with its facets.
func (s *Store) Search(ctx context.Context, req *db.SearchRequest) (*db.SearchResponse, error) {
	idx, err := s.index(req.Index)
	if err != nil {
		return nil, wrapLookupErr(db.OpSearch, err)
	}

	sr := bleve.NewSearchRequestOptions(translate(req.Query), req.Size, req.From, false)
	sr.Fields = []string{sourceField}
	for _, agg := range req.Aggregations {
		size := agg.Size
		if size <= 0 {
			size = db.DefaultAggregationSize
		}
		sr.AddFacet(agg.Name, bleve.NewFacetRequest(agg.Field, size))
	}
	if len(req.Sort) > 0 {
		order := make([]string, 0, len(req.Sort)+1)
		for _, sf := range req.Sort {
			if sf.Ascending {
				order = append(order, sf.Field)
			} else {
				order = append(order, "-"+sf.Field)
			}
		}
		// ties fall back to relevance then id for a stable page order
		order = append(order, "-_score", "_id")
		sr.SortBy(order)
	}

	res, err := idx.SearchInContext(ctx, sr)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	out := &db.SearchResponse{Total: int64(res.Total)}
	out.Hits = make([]db.Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		src, err := decodeSource(h)
		if err != nil {
			return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("decode hit %s: %w", h.ID, err)}
		}
		out.Hits = append(out.Hits, db.Hit{ID: h.ID, Source: src})
	}

	if len(req.Aggregations) > 0 {
		out.Aggregations = make(map[string][]db.Bucket, len(req.Aggregations))
		for _, agg := range req.Aggregations {
			fr, ok := res.Facets[agg.Name]
			if !ok || fr == nil {
				continue
			}
			var terms []*search.TermFacet
			if fr.Terms != nil {
				terms = fr.Terms.Terms()
			}
			buckets := make([]db.Bucket, 0, len(terms))
			for _, t := range terms {
				buckets = append(buckets, db.Bucket{Key: t.Term, Count: int64(t.Count)})
			}
			out.Aggregations[agg.Name] = buckets
		}
	}

	return out, nil
}

// Get fetches a document by id.
func (s *Store) Get(ctx context.Context, name, id string) (*db.Hit, error) {
	idx, err := s.index(name)
	if err != nil {
		return nil, wrapLookupErr(db.OpGetDocument, err)
	}

	sr := bleve.NewSearchRequestOptions(bleve.NewDocIDQuery([]string{id}), 1, 0, false)
	sr.Fields = []string{sourceField}
	res, err := idx.SearchInContext(ctx, sr)
	if err != nil {
		return nil, &db.Error{Op: db.OpGetDocument, Err: err}
	}
	if len(res.Hits) == 0 {
		return nil, db.ErrNotFound
	}

	src, err := decodeSource(res.Hits[0])
	if err != nil {
		return nil, &db.Error{Op: db.OpGetDocument, Err: fmt.Errorf("decode %s: %w", id, err)}
	}
	return &db.Hit{ID: id, Source: src}, nil
}

// index returns an open index, opening it from disk on first use.
func (s *Store) index(name string) (bleve.Index, error) {
	s.mu.RLock()
	idx, ok := s.indexes[name]
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return nil, fmt.Errorf("%w: %w", db.ErrUnavailable, errClosed)
	}
	if ok {
		return idx, nil
	}
	if s.path == "" || !db.IsValidIndexName(name) {
		return nil, db.ErrIndexNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if idx, ok := s.indexes[name]; ok {
		return idx, nil
	}
	idx, err := bleve.Open(s.indexPath(name))
	if err != nil {
		if errors.Is(err, bleve.ErrorIndexPathDoesNotExist) {
			return nil, db.ErrIndexNotFound
		}
		return nil, err
	}
	s.indexes[name] = idx
	return idx, nil
}

func (s *Store) indexPath(name string) string {
	return filepath.Join(s.path, name+".bleve")
}

func wrapLookupErr(op string, err error) error {
	return &db.Error{Op: op, Err: err}
}

// withSource copies the document and embeds its JSON encoding.
func withSource(src map[string]any) (map[string]any, error) {
	raw, err := json.Marshal(src)
	if err != nil {
		return nil, err
	}
	doc := make(map[string]any, len(src)+1)
	for k, v := range src {
		doc[k] = v
	}
	doc[sourceField] = string(raw)
	return doc, nil
}

func decodeSource(h *search.DocumentMatch) (map[string]any, error) {
	src := map[string]any{}
	raw, ok := h.Fields[sourceField].(string)
	if !ok || raw == "" {
		return src, nil
	}
	if err := json.Unmarshal([]byte(raw), &src); err != nil {
		return nil, err
	}
	return src, nil
}
