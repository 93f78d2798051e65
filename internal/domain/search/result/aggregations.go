package result

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"
)

// Bucket is one facet value with its document count.
type Bucket struct {
	Key   string `json:"key"`
	Count int64  `json:"doc_count"`
}

// FacetCounts is the bucket list of one facet.
type FacetCounts struct {
	Name    string
	Buckets []Bucket
}

// Aggregations holds facet counts with empty facets removed, ordered by facet
// name. The zero value is an empty set.
type Aggregations struct {
	facets []FacetCounts
}

// NewAggregations prunes facets without buckets and orders the rest by name
// (byte-wise ascending). Bucket order within a facet is preserved.
func NewAggregations(raw map[string][]Bucket) Aggregations {
	facets := make([]FacetCounts, 0, len(raw))
	for name, buckets := range raw {
		if len(buckets) == 0 {
			continue
		}
		facets = append(facets, FacetCounts{Name: name, Buckets: slices.Clone(buckets)})
	}
	slices.SortFunc(facets, func(a, b FacetCounts) int { return strings.Compare(a.Name, b.Name) })
	return Aggregations{facets: facets}
}

// Facets returns a copy of the facet list in output order.
func (a Aggregations) Facets() []FacetCounts {
	out := make([]FacetCounts, len(a.facets))
	for i, f := range a.facets {
		out[i] = FacetCounts{Name: f.Name, Buckets: slices.Clone(f.Buckets)}
	}
	return out
}

// Names returns facet names in output order.
func (a Aggregations) Names() []string {
	names := make([]string, len(a.facets))
	for i, f := range a.facets {
		names[i] = f.Name
	}
	return names
}

// Get returns the buckets of a facet.
func (a Aggregations) Get(name string) ([]Bucket, bool) {
	for _, f := range a.facets {
		if f.Name == name {
			return slices.Clone(f.Buckets), true
		}
	}
	return nil, false
}

// Len returns the number of non-empty facets.
func (a Aggregations) Len() int { return len(a.facets) }

type bucketsJSON struct {
	Buckets []Bucket `json:"buckets"`
}

// MarshalJSON renders {"<facet>": {"buckets": [...]}, ...} keeping facet order.
func (a Aggregations) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range a.facets {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		body, err := json.Marshal(bucketsJSON{Buckets: f.Buckets})
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts the MarshalJSON shape and re-normalizes it.
func (a *Aggregations) UnmarshalJSON(data []byte) error {
	var raw map[string]bucketsJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m := make(map[string][]Bucket, len(raw))
	for k, v := range raw {
		m[k] = v.Buckets
	}
	*a = NewAggregations(m)
	return nil
}
