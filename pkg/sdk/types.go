package aristotle

import (
	"time"

	"github.com/kailas-cloud/aristotle/internal/domain/search/mode"
	"github.com/kailas-cloud/aristotle/internal/domain/search/result"
	searchuc "github.com/kailas-cloud/aristotle/internal/usecase/search"
)

// Mode selects which fields a query text is matched against.
type Mode string

// Search modes.
const (
	ModeKeyword Mode = Mode(mode.Keyword)
	ModeCreator Mode = Mode(mode.Creator)
	ModeTitle   Mode = Mode(mode.Title)
	ModeSubject Mode = Mode(mode.Subject)
	ModeNumber  Mode = Mode(mode.Number)
	// ModeFacet filters on Query.Facet / Query.Value instead of matching text.
	ModeFacet Mode = Mode(mode.Facet)
)

// Facet names accepted by Filter and Query.Facet.
const (
	FacetFormat          = "Format"
	FacetGeographic      = "Geographic"
	FacetGenres          = "Genres"
	FacetLanguages       = "Languages"
	FacetPublicationYear = "Publication Year"
	FacetTemporal        = "Temporal (Time)"
	FacetTopic           = "Topic"
)

// Page is an offset/size window. A zero Size means the default page size.
type Page struct {
	Offset int
	Size   int
}

// Query is a simple search. Setting Parent restricts it to the children of
// one record; with an empty Text it lists them in title order.
type Query struct {
	Text   string
	Mode   Mode
	Facet  string
	Value  string
	Parent string
	Page   Page
}

// Clause is one row of an advanced search. Operator is "and", "or" or
// "not" and combines the clause with everything before it.
type Clause struct {
	Mode     Mode
	Text     string
	Operator string
}

// Formats are the object format checkboxes of an advanced search.
type Formats struct {
	Audio         bool
	Image         bool
	MixedMaterial bool
	MovingImage   bool
	PDF           bool
}

// AdvancedQuery is a multi-clause boolean search. Collection is one of
// "none", "thesis", "special collections", "general" or "music library".
type AdvancedQuery struct {
	Clauses    []Clause
	Collection string
	Genre      string
	Topic      string
	Formats    Formats
	Page       Page
}

// Record is a catalog record as stored in the index.
type Record struct {
	ID     string         `json:"id"`
	Source map[string]any `json:"source"`
}

// PID returns the record's persistent identifier, if any.
func (r Record) PID() string {
	s, _ := r.Source[result.FieldPID].(string)
	return s
}

// Title returns the record's principal title, if any.
func (r Record) Title() string {
	s, _ := r.Source[result.FieldTitle].(string)
	return s
}

// Bucket is one facet value with its document count.
type Bucket struct {
	Key   string `json:"key"`
	Count int64  `json:"doc_count"`
}

// FacetCounts is the bucket list of one facet.
type FacetCounts struct {
	Name    string   `json:"name"`
	Buckets []Bucket `json:"buckets"`
}

// Result is one page of hits with the facet counts of the whole match set.
type Result struct {
	Total  int64         `json:"total"`
	Hits   []Record      `json:"hits"`
	Facets []FacetCounts `json:"facets"`
}

// Choice is one option of an advanced search select box.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// About describes the engine build and its index.
type About struct {
	Version   string    `json:"version"`
	Commit    string    `json:"commit"`
	Index     string    `json:"index"`
	CreatedAt time.Time `json:"created_at"`
	Documents int64     `json:"documents"`
}

func toResult(r result.SearchResult) Result {
	out := Result{Total: r.Total, Hits: make([]Record, 0, len(r.Hits))}
	for i := range r.Hits {
		out.Hits = append(out.Hits, Record{ID: r.Hits[i].ID(), Source: r.Hits[i].Source()})
	}
	out.Facets = toFacets(r.Aggregations)
	return out
}

func toFacets(a result.Aggregations) []FacetCounts {
	facets := a.Facets()
	out := make([]FacetCounts, 0, len(facets))
	for _, f := range facets {
		buckets := make([]Bucket, len(f.Buckets))
		for i, b := range f.Buckets {
			buckets[i] = Bucket{Key: b.Key, Count: b.Count}
		}
		out = append(out, FacetCounts{Name: f.Name, Buckets: buckets})
	}
	return out
}

func toChoices(cs []searchuc.Choice) []Choice {
	out := make([]Choice, len(cs))
	for i, c := range cs {
		out[i] = Choice{Value: c.Value, Label: c.Label}
	}
	return out
}
