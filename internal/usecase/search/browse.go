package search

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/aristotle/internal/domain/facet"
	"github.com/kailas-cloud/aristotle/internal/domain/search/query"
	"github.com/kailas-cloud/aristotle/internal/domain/search/request"
	"github.com/kailas-cloud/aristotle/internal/domain/search/result"
)

// Browse lists the direct children of a parent in title order together with
// the facet counts of the parent's whole collection. The two lookups run
// concurrently; either failing fails the call.
func (s *Service) Browse(ctx context.Context, req request.Browse) (result.SearchResult, error) {
	parentID := req.ParentID()

	var (
		children result.SearchResult
		aggs     result.Aggregations
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := s.repo.Search(gctx, request.Plan{
			Query:  query.Term(facet.Keyword(result.FieldParent), parentID),
			SortBy: facet.Keyword(result.FieldTitle),
			Page:   req.Page(),
		})
		if err != nil {
			return fmt.Errorf("browse children of %q: %w", parentID, err)
		}
		children = res
		return nil
	})
	g.Go(func() error {
		res, err := s.Aggregate(gctx, parentID)
		if err != nil {
			return fmt.Errorf("browse: %w", err)
		}
		aggs = res
		return nil
	})
	if err := g.Wait(); err != nil {
		return result.SearchResult{}, err //nolint:wrapcheck // wrapped in the goroutines
	}

	return result.SearchResult{
		Total:        children.Total,
		Hits:         children.Hits,
		Aggregations: aggs,
	}, nil
}
