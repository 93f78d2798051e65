package result

import (
	"encoding/json"
	"fmt"
	"maps"
	"time"
)

// Document fields the core reads. Everything else is forwarded untouched.
const (
	FieldPID          = "pid"
	FieldTitle        = "titlePrincipal"
	FieldCreator      = "creator"
	FieldParent       = "parent"
	FieldInCollection = "inCollection"
	FieldGenre        = "genre"
	FieldResourceType = "typeOfResource"
)

// Document is an opaque projection of an indexed record.
type Document struct {
	id     string
	source map[string]any
}

// NewDocument wraps a backend hit. id is the backend's internal identifier.
func NewDocument(id string, source map[string]any) Document {
	return Document{id: id, source: source}
}

// ID returns the backend's internal identifier.
func (d *Document) ID() string { return d.id }

// Source returns a shallow copy of the indexed fields.
func (d *Document) Source() map[string]any {
	if d.source == nil {
		return map[string]any{}
	}
	return maps.Clone(d.source)
}

// Get returns the raw value of a top-level field.
func (d *Document) Get(field string) (any, bool) {
	v, ok := d.source[field]
	return v, ok
}

// String returns a field as text. Multi-valued fields yield their first value.
func (d *Document) String(field string) string {
	v, ok := d.source[field]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case []any:
		if len(t) == 0 {
			return ""
		}
		return fmt.Sprint(t[0])
	case []string:
		if len(t) == 0 {
			return ""
		}
		return t[0]
	}
	return fmt.Sprint(v)
}

// PID returns the business identifier.
func (d *Document) PID() string { return d.String(FieldPID) }

// Title returns the principal title.
func (d *Document) Title() string { return d.String(FieldTitle) }

type documentJSON struct {
	ID     string         `json:"id"`
	Source map[string]any `json:"source"`
}

// MarshalJSON encodes the document as {"id": ..., "source": {...}}.
func (d Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(documentJSON{ID: d.id, Source: d.Source()})
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw documentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	d.id = raw.ID
	d.source = raw.Source
	return nil
}

// SearchResult is one page of hits with the facet counts of the whole match set.
type SearchResult struct {
	Total        int64        `json:"total"`
	Hits         []Document   `json:"hits"`
	Aggregations Aggregations `json:"aggregations"`
}

// IndexStats describes the catalog index.
type IndexStats struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Documents int64     `json:"documents"`
}

// Empty returns a result with no hits and no facets.
func Empty() SearchResult { return SearchResult{} }
