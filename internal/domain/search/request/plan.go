package request

import (
	"github.com/kailas-cloud/aristotle/internal/domain/facet"
	"github.com/kailas-cloud/aristotle/internal/domain/search/query"
)

// Plan is a composed query ready for one backend round trip.
type Plan struct {
	// Query selects the matching documents.
	Query query.Expr
	// Facets lists the facets to count over the whole match set.
	Facets []facet.Definition
	// SortBy is an exact-match field sorted ascending. Empty keeps relevance order.
	SortBy string
	// Page is ignored when AggregationOnly is set.
	Page Page
	// AggregationOnly requests facet counts without hits.
	AggregationOnly bool
}
