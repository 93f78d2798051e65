package search

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/aristotle/internal/domain/facet"
	"github.com/kailas-cloud/aristotle/internal/domain/search/mode"
	"github.com/kailas-cloud/aristotle/internal/domain/search/query"
	"github.com/kailas-cloud/aristotle/internal/domain/search/request"
	"github.com/kailas-cloud/aristotle/internal/domain/search/result"
)

// SimpleSearch dispatches the single search box: facet mode filters, field
// modes run a specific search, keyword runs free text. Without text the
// result is empty.
func (s *Service) SimpleSearch(ctx context.Context, req request.Simple) (result.SearchResult, error) {
	switch m := req.Mode(); {
	case m == mode.Facet:
		ff, err := request.NewFacetFilter(req.Facet(), req.Value(), req.Query(), req.Page())
		if err != nil {
			return result.SearchResult{}, err //nolint:wrapcheck // domain validation error
		}
		return s.FilterQuery(ctx, ff)
	case req.Query() == "":
		return result.Empty(), nil
	default:
		sp, err := request.NewSpecific(req.Query(), m, "", req.Page())
		if err != nil {
			return result.SearchResult{}, err //nolint:wrapcheck // domain validation error
		}
		return s.SpecificSearch(ctx, sp)
	}
}

// SpecificSearch matches the text against the mode's fields with unscoped
// facet counts attached in the same round trip. Hits keep relevance order,
// except a bare parent listing which is ordered by title. A parent next to
// query text narrows the search to that collection.
func (s *Service) SpecificSearch(ctx context.Context, req request.Specific) (result.SearchResult, error) {
	plan := request.Plan{
		Facets: s.schema.Definitions(),
		Page:   req.Page(),
	}

	if req.ParentListing() {
		plan.Query = query.Term(facet.Keyword(result.FieldParent), req.Parent())
		plan.SortBy = facet.Keyword(result.FieldTitle)
	} else {
		m := req.Mode()
		if m == "" {
			m = mode.Keyword
		}
		e, err := ModeExpr(m, req.Query())
		if err != nil {
			return result.SearchResult{}, err
		}
		if req.Parent() != "" {
			e = query.And(e, query.Term(facet.Keyword(result.FieldInCollection), req.Parent()))
		}
		plan.Query = e
	}

	res, err := s.repo.Search(ctx, plan)
	if err != nil {
		return result.SearchResult{}, fmt.Errorf("specific search: %w", err)
	}
	return res, nil
}

// FilterQuery restricts hits to an exact facet value, additionally requiring
// the free text when present.
func (s *Service) FilterQuery(ctx context.Context, req request.FacetFilter) (result.SearchResult, error) {
	e := query.Term(req.Facet().KeywordField(), req.Value())
	if req.Query() != "" {
		e = query.And(e, query.Text(req.Query()))
	}

	res, err := s.repo.Search(ctx, request.Plan{
		Query:  e,
		Facets: s.schema.Definitions(),
		Page:   req.Page(),
	})
	if err != nil {
		return result.SearchResult{}, fmt.Errorf("filter %s: %w", req.Facet().Name(), err)
	}
	return res, nil
}

// AdvancedSearch runs a composed multi-clause query with unscoped facet counts.
func (s *Service) AdvancedSearch(ctx context.Context, req request.Advanced) (result.SearchResult, error) {
	e, err := s.ComposeAdvanced(ctx, &req)
	if err != nil {
		return result.SearchResult{}, fmt.Errorf("compose advanced query: %w", err)
	}

	res, err := s.repo.Search(ctx, request.Plan{
		Query:  e,
		Facets: s.schema.Definitions(),
		Page:   req.Page(),
	})
	if err != nil {
		return result.SearchResult{}, fmt.Errorf("advanced search: %w", err)
	}
	return res, nil
}
