package elastic

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/olivere/elastic/v7"

	"github.com/kailas-cloud/aristotle/internal/db"
)

// Search runs one composed query with its aggregations in a single round trip.
func (s *Store) Search(ctx context.Context, req *db.SearchRequest) (*db.SearchResponse, error) {
	svc := s.client.Search(req.Index).
		Query(translate(req.Query)).
		From(req.From).
		Size(req.Size).
		TrackTotalHits(true)

	for _, agg := range req.Aggregations {
		size := agg.Size
		if size <= 0 {
			size = db.DefaultAggregationSize
		}
		svc = svc.Aggregation(agg.Name, elastic.NewTermsAggregation().Field(agg.Field).Size(size))
	}
	for _, sf := range req.Sort {
		svc = svc.Sort(sf.Field, sf.Ascending)
	}

	res, err := svc.Do(ctx)
	if err != nil {
		if elastic.IsNotFound(err) {
			return nil, &db.Error{Op: db.OpSearch, Err: db.ErrIndexNotFound}
		}
		return nil, wrapErr(db.OpSearch, err)
	}

	out := &db.SearchResponse{Total: res.TotalHits()}

	if res.Hits != nil {
		out.Hits = make([]db.Hit, 0, len(res.Hits.Hits))
		for _, h := range res.Hits.Hits {
			src, err := decodeSource(h.Source)
			if err != nil {
				return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("decode hit %s: %w", h.Id, err)}
			}
			out.Hits = append(out.Hits, db.Hit{ID: h.Id, Source: src})
		}
	}

	if len(req.Aggregations) > 0 {
		out.Aggregations = make(map[string][]db.Bucket, len(req.Aggregations))
		for _, agg := range req.Aggregations {
			terms, ok := res.Aggregations.Terms(agg.Name)
			if !ok {
				continue
			}
			buckets := make([]db.Bucket, 0, len(terms.Buckets))
			for _, b := range terms.Buckets {
				buckets = append(buckets, db.Bucket{Key: bucketKey(b), Count: b.DocCount})
			}
			out.Aggregations[agg.Name] = buckets
		}
	}

	return out, nil
}

// Get fetches a document source by its Elasticsearch id.
func (s *Store) Get(ctx context.Context, index, id string) (*db.Hit, error) {
	res, err := s.client.Get().Index(index).Id(id).Do(ctx)
	if err != nil {
		if elastic.IsNotFound(err) {
			return nil, db.ErrNotFound
		}
		return nil, wrapErr(db.OpGetDocument, err)
	}
	if !res.Found {
		return nil, db.ErrNotFound
	}

	src, err := decodeSource(res.Source)
	if err != nil {
		return nil, &db.Error{Op: db.OpGetDocument, Err: fmt.Errorf("decode %s: %w", id, err)}
	}
	return &db.Hit{ID: res.Id, Source: src}, nil
}

func decodeSource(raw json.RawMessage) (map[string]any, error) {
	src := map[string]any{}
	if len(raw) == 0 {
		return src, nil
	}
	if err := json.Unmarshal(raw, &src); err != nil {
		return nil, err
	}
	return src, nil
}

func bucketKey(b *elastic.AggregationBucketKeyItem) string {
	if b.KeyAsString != nil {
		return *b.KeyAsString
	}
	if k, ok := b.Key.(string); ok {
		return k
	}
	return fmt.Sprint(b.Key)
}
