// Package facet holds the fixed facet schema shared by every query path.
package facet

import "fmt"

// KeywordSuffix is appended to a field path to address its exact-match sub-field.
const KeywordSuffix = ".keyword"

// Facet names.
const (
	Format          = "Format"
	Geographic      = "Geographic"
	Genres          = "Genres"
	Languages       = "Languages"
	PublicationYear = "Publication Year"
	Temporal        = "Temporal (Time)"
	Topic           = "Topic"
)

// Definition maps a facet name to the index field it aggregates over.
type Definition struct {
	name  string
	field string
}

// Name returns the display name of the facet.
func (d Definition) Name() string { return d.name }

// Field returns the analyzed field path.
func (d Definition) Field() string { return d.field }

// KeywordField returns the exact-match field path used for terms, aggregations and sorting.
func (d Definition) KeywordField() string { return Keyword(d.field) }

// Keyword returns the exact-match sub-field of field.
func Keyword(field string) string { return field + KeywordSuffix }

var definitions = [...]Definition{
	{name: Format, field: "typeOfResource"},
	{name: Geographic, field: "subject.geographic"},
	{name: Genres, field: "genre"},
	{name: Languages, field: "language"},
	{name: PublicationYear, field: "publicationYear"},
	{name: Temporal, field: "subject.temporal"},
	{name: Topic, field: "subject.topic"},
}

// Schema is the immutable ordered facet table.
type Schema struct{}

// Default is the catalog facet schema.
var Default Schema

// Definitions returns a fresh copy of the definitions in insertion order.
func (Schema) Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions[:])
	return out
}

// Len returns the number of facets.
func (Schema) Len() int { return len(definitions) }

// Lookup resolves a facet by name.
func (Schema) Lookup(name string) (Definition, bool) {
	for _, d := range definitions {
		if d.name == name {
			return d, true
		}
	}
	return Definition{}, false
}

// MustLookup resolves a facet by name and panics if it is not in the schema.
func (s Schema) MustLookup(name string) Definition {
	d, ok := s.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("facet %q not in schema", name))
	}
	return d
}

// Names returns the facet names in insertion order.
func (Schema) Names() []string {
	names := make([]string, len(definitions))
	for i, d := range definitions {
		names[i] = d.name
	}
	return names
}
