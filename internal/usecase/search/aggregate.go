package search

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/aristotle/internal/domain/facet"
	"github.com/kailas-cloud/aristotle/internal/domain/search/query"
	"github.com/kailas-cloud/aristotle/internal/domain/search/request"
	"github.com/kailas-cloud/aristotle/internal/domain/search/result"
)

// Aggregate counts every schema facet over the documents of a collection, or
// over the whole index when scope is empty. Empty facets are already pruned
// and the rest ordered by name, since result.NewAggregations is the only way
// to build non-empty counts.
func (s *Service) Aggregate(ctx context.Context, scope string) (result.Aggregations, error) {
	q := query.MatchAll()
	if scope != "" {
		q = query.Term(facet.Keyword(result.FieldInCollection), scope)
	}

	res, err := s.repo.Search(ctx, request.Plan{
		Query:           q,
		Facets:          s.schema.Definitions(),
		AggregationOnly: true,
	})
	if err != nil {
		return result.Aggregations{}, fmt.Errorf("aggregate %q: %w", scope, err)
	}
	return res.Aggregations, nil
}
