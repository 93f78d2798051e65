package request

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/aristotle/internal/domain"
	"github.com/kailas-cloud/aristotle/internal/domain/facet"
	"github.com/kailas-cloud/aristotle/internal/domain/search/mode"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 4096
	DefaultSize    = 25
	MaxSize        = 500
)

// Page is a validated offset/size window.
type Page struct {
	offset int
	size   int
}

// NewPage validates pagination. A zero size falls back to DefaultSize and
// sizes above MaxSize are clamped.
func NewPage(offset, size int) (Page, error) {
	return NewPageWithDefault(offset, size, DefaultSize)
}

// NewPageWithDefault is NewPage with a caller-chosen default size.
func NewPageWithDefault(offset, size, defaultSize int) (Page, error) {
	if offset < 0 {
		return Page{}, domain.InvalidRequestf("offset must be non-negative, got %d", offset)
	}
	if size < 0 {
		return Page{}, domain.InvalidRequestf("size must be non-negative, got %d", size)
	}
	if defaultSize <= 0 {
		defaultSize = DefaultSize
	}
	if size == 0 {
		size = defaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	return Page{offset: offset, size: size}, nil
}

// DefaultPage returns the first page with the default size.
func DefaultPage() Page { return Page{size: DefaultSize} }

// Offset returns the index of the first hit.
func (p Page) Offset() int { return p.offset }

// Size returns the number of hits per page.
func (p Page) Size() int {
	if p.size == 0 {
		return DefaultSize
	}
	return p.size
}

func validateText(q string) (string, error) {
	q = strings.TrimSpace(q)
	if len(q) > MaxQueryLength {
		return "", domain.InvalidRequestf("query too long (max %d chars)", MaxQueryLength)
	}
	return q, nil
}

// Simple is the single search box request: query text plus a mode, and for
// facet mode the facet name and value being filtered on.
type Simple struct {
	query      string
	searchMode mode.Mode
	facet      string
	value      string
	page       Page
}

// NewSimple validates a simple search request.
func NewSimple(query string, m mode.Mode, facetName, facetValue string, page Page) (Simple, error) {
	q, err := validateText(query)
	if err != nil {
		return Simple{}, err
	}
	if m == "" {
		m = mode.Keyword
	}
	if !m.IsValid() {
		return Simple{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedMode, m)
	}
	return Simple{query: q, searchMode: m, facet: facetName, value: facetValue, page: page}, nil
}

// Query returns the search text.
func (r *Simple) Query() string { return r.query }

// Mode returns the search mode.
func (r *Simple) Mode() mode.Mode { return r.searchMode }

// Facet returns the facet name for facet mode.
func (r *Simple) Facet() string { return r.facet }

// Value returns the facet value for facet mode.
func (r *Simple) Value() string { return r.value }

// Page returns the pagination window.
func (r *Simple) Page() Page { return r.page }

// Specific is a field-specific search. An empty mode with only a parent
// identifier lists that parent's members in title order.
type Specific struct {
	query      string
	searchMode mode.Mode
	parent     string
	page       Page
}

// NewSpecific validates a field-specific search request.
func NewSpecific(query string, m mode.Mode, parent string, page Page) (Specific, error) {
	q, err := validateText(query)
	if err != nil {
		return Specific{}, err
	}
	parent = strings.TrimSpace(parent)
	if q == "" && parent == "" {
		return Specific{}, domain.InvalidRequestf("query or parent is required")
	}
	if m != "" && !m.IsFieldSpecific() && m != mode.Keyword {
		return Specific{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedMode, m)
	}
	if m != "" && q == "" {
		return Specific{}, domain.InvalidRequestf("query is required for mode %q", m)
	}
	return Specific{query: q, searchMode: m, parent: parent, page: page}, nil
}

// Query returns the search text.
func (r *Specific) Query() string { return r.query }

// Mode returns the search mode; empty means none was supplied.
func (r *Specific) Mode() mode.Mode { return r.searchMode }

// Parent returns the optional parent identifier.
func (r *Specific) Parent() string { return r.parent }

// Page returns the pagination window.
func (r *Specific) Page() Page { return r.page }

// ParentListing reports whether the request only names a parent.
func (r *Specific) ParentListing() bool {
	return r.searchMode == "" && r.query == "" && r.parent != ""
}

// FacetFilter restricts results to one facet value, optionally with free text.
type FacetFilter struct {
	definition facet.Definition
	value      string
	query      string
	page       Page
}

// NewFacetFilter validates the facet name against the schema.
func NewFacetFilter(facetName, value, query string, page Page) (FacetFilter, error) {
	def, ok := facet.Default.Lookup(facetName)
	if !ok {
		return FacetFilter{}, fmt.Errorf("%w: %q", domain.ErrUnknownFacet, facetName)
	}
	if strings.TrimSpace(value) == "" {
		return FacetFilter{}, domain.InvalidRequestf("facet value is required")
	}
	q, err := validateText(query)
	if err != nil {
		return FacetFilter{}, err
	}
	return FacetFilter{definition: def, value: value, query: q, page: page}, nil
}

// Facet returns the resolved facet definition.
func (r *FacetFilter) Facet() facet.Definition { return r.definition }

// Value returns the facet value to match exactly.
func (r *FacetFilter) Value() string { return r.value }

// Query returns the optional free text.
func (r *FacetFilter) Query() string { return r.query }

// Page returns the pagination window.
func (r *FacetFilter) Page() Page { return r.page }

// Browse lists the direct children of a parent.
type Browse struct {
	parentID string
	page     Page
}

// NewBrowse validates a browse request.
func NewBrowse(parentID string, page Page) (Browse, error) {
	parentID = strings.TrimSpace(parentID)
	if parentID == "" {
		return Browse{}, domain.InvalidRequestf("parent identifier is required")
	}
	return Browse{parentID: parentID, page: page}, nil
}

// ParentID returns the parent identifier.
func (r *Browse) ParentID() string { return r.parentID }

// Page returns the pagination window.
func (r *Browse) Page() Page { return r.page }
