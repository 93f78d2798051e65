package search

import (
	"context"
	"sort"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kailas-cloud/aristotle/internal/domain/facet"
	"github.com/kailas-cloud/aristotle/internal/domain/search/result"
	"github.com/kailas-cloud/aristotle/internal/version"
)

// NoneChoice is the leading "no narrowing" option of every choice list.
var NoneChoice = Choice{Value: "none", Label: "None"}

// Choice is one option of an advanced search select box.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// About describes the running service and its index.
type About struct {
	Version   string    `json:"version"`
	Commit    string    `json:"commit"`
	Index     string    `json:"index"`
	CreatedAt time.Time `json:"created_at"`
	Documents int64     `json:"documents"`
}

// Facets returns the facet counts for a scope.
func (s *Service) Facets(ctx context.Context, scope string) (result.Aggregations, error) {
	return s.Aggregate(ctx, scope)
}

// GenreChoices lists the genres present in the index.
func (s *Service) GenreChoices(ctx context.Context) ([]Choice, error) {
	return s.choices(ctx, facet.Genres)
}

// TopicChoices lists the topics present in the index.
func (s *Service) TopicChoices(ctx context.Context) ([]Choice, error) {
	return s.choices(ctx, facet.Topic)
}

func (s *Service) choices(ctx context.Context, facetName string) ([]Choice, error) {
	aggs, err := s.Aggregate(ctx, "")
	if err != nil {
		return nil, err
	}
	buckets, _ := aggs.Get(facetName)
	return buildChoices(buckets), nil
}

// buildChoices puts NoneChoice first, then one title-cased option per bucket
// sorted by value.
func buildChoices(buckets []result.Bucket) []Choice {
	caser := cases.Title(language.Und)
	out := make([]Choice, 0, len(buckets)+1)
	for _, b := range buckets {
		out = append(out, Choice{Value: b.Key, Label: caser.String(b.Key)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return append([]Choice{NoneChoice}, out...)
}

// About reports build metadata and catalog index statistics.
func (s *Service) About(ctx context.Context) (About, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return About{}, err //nolint:wrapcheck // repository errors carry context
	}
	return About{
		Version:   version.Version,
		Commit:    version.Commit,
		Index:     stats.Name,
		CreatedAt: stats.CreatedAt,
		Documents: stats.Documents,
	}, nil
}
