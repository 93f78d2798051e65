package search

import (
	"context"

	"github.com/kailas-cloud/aristotle/internal/domain/search/request"
	"github.com/kailas-cloud/aristotle/internal/domain/search/result"
)

// Repository defines the execution contract for search operations.
type Repository interface {
	// Search runs one plan in a single backend round trip.
	Search(ctx context.Context, plan request.Plan) (result.SearchResult, error)
	// Get fetches a document by its backend id.
	Get(ctx context.Context, id string) (result.Document, error)
	// Stats reports catalog index metadata.
	Stats(ctx context.Context) (result.IndexStats, error)
}
