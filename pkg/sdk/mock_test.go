package aristotle

import (
	"context"

	"github.com/kailas-cloud/aristotle/internal/domain/search/request"
	"github.com/kailas-cloud/aristotle/internal/domain/search/result"
	searchuc "github.com/kailas-cloud/aristotle/internal/usecase/search"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	simpleFn   func(ctx context.Context, req request.Simple) (result.SearchResult, error)
	specificFn func(ctx context.Context, req request.Specific) (result.SearchResult, error)
	filterFn   func(ctx context.Context, req request.FacetFilter) (result.SearchResult, error)
	advancedFn func(ctx context.Context, req request.Advanced) (result.SearchResult, error)
	browseFn   func(ctx context.Context, req request.Browse) (result.SearchResult, error)
	detailFn   func(ctx context.Context, pid string) (result.SearchResult, error)
	pidFn      func(ctx context.Context, esID string) (string, error)
	titleFn    func(ctx context.Context, pid string) (string, error)
	facetsFn   func(ctx context.Context, scope string) (result.Aggregations, error)
	choicesFn  func(ctx context.Context) ([]searchuc.Choice, error)
	aboutFn    func(ctx context.Context) (searchuc.About, error)
}

func (m *mockSearchUC) SimpleSearch(ctx context.Context, req request.Simple) (result.SearchResult, error) {
	return m.simpleFn(ctx, req)
}

func (m *mockSearchUC) SpecificSearch(ctx context.Context, req request.Specific) (result.SearchResult, error) {
	return m.specificFn(ctx, req)
}

func (m *mockSearchUC) FilterQuery(ctx context.Context, req request.FacetFilter) (result.SearchResult, error) {
	return m.filterFn(ctx, req)
}

func (m *mockSearchUC) AdvancedSearch(ctx context.Context, req request.Advanced) (result.SearchResult, error) {
	return m.advancedFn(ctx, req)
}

func (m *mockSearchUC) Browse(ctx context.Context, req request.Browse) (result.SearchResult, error) {
	return m.browseFn(ctx, req)
}

func (m *mockSearchUC) GetDetail(ctx context.Context, pid string) (result.SearchResult, error) {
	return m.detailFn(ctx, pid)
}

func (m *mockSearchUC) GetPID(ctx context.Context, esID string) (string, error) {
	return m.pidFn(ctx, esID)
}

func (m *mockSearchUC) GetTitle(ctx context.Context, pid string) (string, error) {
	return m.titleFn(ctx, pid)
}

func (m *mockSearchUC) Facets(ctx context.Context, scope string) (result.Aggregations, error) {
	return m.facetsFn(ctx, scope)
}

func (m *mockSearchUC) GenreChoices(ctx context.Context) ([]searchuc.Choice, error) {
	return m.choicesFn(ctx)
}

func (m *mockSearchUC) TopicChoices(ctx context.Context) ([]searchuc.Choice, error) {
	return m.choicesFn(ctx)
}

func (m *mockSearchUC) About(ctx context.Context) (searchuc.About, error) {
	return m.aboutFn(ctx)
}

func newMockClient(uc *mockSearchUC) *Client {
	return &Client{searchSvc: uc}
}

func oneHit(pid, title string) result.SearchResult {
	return result.SearchResult{
		Total: 1,
		Hits: []result.Document{
			result.NewDocument("es-"+pid, map[string]any{"pid": pid, "titlePrincipal": title}),
		},
		Aggregations: result.NewAggregations(map[string][]result.Bucket{
			"Genres": {{Key: "thesis", Count: 1}},
			"Topic":  nil,
		}),
	}
}
