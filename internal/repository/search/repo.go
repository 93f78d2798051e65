package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/aristotle/internal/db"
	"github.com/kailas-cloud/aristotle/internal/domain"
	"github.com/kailas-cloud/aristotle/internal/domain/search/request"
	"github.com/kailas-cloud/aristotle/internal/domain/search/result"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	Search(ctx context.Context, req *db.SearchRequest) (*db.SearchResponse, error)
	Get(ctx context.Context, index, id string) (*db.Hit, error)
	IndexInfo(ctx context.Context, name string) (*db.IndexInfo, error)
}

// Repo implements usecase/search.Repository over one catalog index.
type Repo struct {
	store     store
	index     string
	facetSize int
}

// New creates a search repository. facetSize is the bucket count per facet;
// zero keeps the backend default.
func New(s store, index string, facetSize int) *Repo {
	return &Repo{store: s, index: index, facetSize: facetSize}
}

// Search executes a plan and converts the response into a domain result.
// Facet counts go through result.NewAggregations, which drops facets with no
// buckets and orders the rest by name. Buckets keep the backend's order.
func (r *Repo) Search(ctx context.Context, plan request.Plan) (result.SearchResult, error) {
	req := &db.SearchRequest{
		Index: r.index,
		Query: plan.Query,
	}
	if !plan.AggregationOnly {
		req.From = plan.Page.Offset()
		req.Size = plan.Page.Size()
	}
	if plan.SortBy != "" {
		req.Sort = []db.SortField{{Field: plan.SortBy, Ascending: true}}
	}
	for _, f := range plan.Facets {
		req.Aggregations = append(req.Aggregations, db.Aggregation{
			Name:  f.Name(),
			Field: f.KeywordField(),
			Size:  r.facetSize,
		})
	}

	resp, err := r.store.Search(ctx, req)
	if err != nil {
		return result.SearchResult{}, translateErr(db.OpSearch, err)
	}
	return toResult(resp), nil
}

// Get fetches a document by its backend id.
func (r *Repo) Get(ctx context.Context, id string) (result.Document, error) {
	hit, err := r.store.Get(ctx, r.index, id)
	if err != nil {
		return result.Document{}, translateErr(db.OpGetDocument, err)
	}
	return result.NewDocument(hit.ID, hit.Source), nil
}

// Stats reports index metadata.
func (r *Repo) Stats(ctx context.Context) (result.IndexStats, error) {
	info, err := r.store.IndexInfo(ctx, r.index)
	if err != nil {
		return result.IndexStats{}, translateErr(db.OpIndexInfo, err)
	}
	return result.IndexStats{Name: info.Name, CreatedAt: info.CreatedAt, Documents: info.DocCount}, nil
}

func toResult(resp *db.SearchResponse) result.SearchResult {
	if resp == nil {
		return result.Empty()
	}

	hits := make([]result.Document, 0, len(resp.Hits))
	for _, h := range resp.Hits {
		hits = append(hits, result.NewDocument(h.ID, h.Source))
	}

	var aggs result.Aggregations
	if len(resp.Aggregations) > 0 {
		raw := make(map[string][]result.Bucket, len(resp.Aggregations))
		for name, buckets := range resp.Aggregations {
			converted := make([]result.Bucket, 0, len(buckets))
			for _, b := range buckets {
				converted = append(converted, result.Bucket{Key: b.Key, Count: b.Count})
			}
			raw[name] = converted
		}
		aggs = result.NewAggregations(raw)
	}

	return result.SearchResult{Total: resp.Total, Hits: hits, Aggregations: aggs}
}

// translateErr maps adapter errors onto domain sentinels. A query the
// backend refused is an invalid request, without backend detail in its
// message. Anything else that is not a missing document is a backend failure.
func translateErr(op string, err error) error {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	case errors.Is(err, db.ErrBadQuery):
		return fmt.Errorf("%s: %w", op, domain.InvalidRequestf("query could not be parsed"))
	}
	return domain.NewBackendError(op, err)
}
