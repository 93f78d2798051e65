package request

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/aristotle/internal/domain"
	"github.com/kailas-cloud/aristotle/internal/domain/search/mode"
)

// MinClauses is the number of clause slots an advanced request always carries.
const MinClauses = 2

// MaxClauses bounds the number of clauses in one advanced request.
const MaxClauses = 32

// Operator combines a clause with everything before it.
type Operator string

// Clause operators.
const (
	And Operator = "AND"
	Or  Operator = "OR"
	Not Operator = "NOT"
)

// ParseOperator accepts and/or/not in any case; empty input means AND.
func ParseOperator(s string) (Operator, error) {
	switch op := Operator(strings.ToUpper(strings.TrimSpace(s))); op {
	case "":
		return And, nil
	case And, Or, Not:
		return op, nil
	}
	return "", domain.InvalidRequestf("unknown operator %q", s)
}

// Collection is a symbolic collection narrowing choice.
type Collection string

// Collection narrowing values.
const (
	CollectionNone               Collection = "none"
	CollectionThesis             Collection = "thesis"
	CollectionSpecialCollections Collection = "special collections"
	CollectionGeneral            Collection = "general"
	CollectionMusicLibrary       Collection = "music library"
)

// ParseCollection maps form input to a Collection; empty input means none.
func ParseCollection(s string) (Collection, error) {
	switch c := Collection(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return CollectionNone, nil
	case CollectionNone, CollectionThesis, CollectionSpecialCollections, CollectionGeneral, CollectionMusicLibrary:
		return c, nil
	}
	return "", domain.InvalidRequestf("unknown collection %q", s)
}

// Format is an object format checkbox.
type Format string

// Object formats in checkbox order.
const (
	FormatAudio         Format = "audio"
	FormatImage         Format = "image"
	FormatMixedMaterial Format = "mixed_material"
	FormatMovingImage   Format = "moving_image"
	FormatPDF           Format = "pdf"
)

// ResourceType returns the typeOfResource literal the format stands for.
func (f Format) ResourceType() string {
	switch f {
	case FormatAudio:
		return "sound recording"
	case FormatImage:
		return "still image"
	case FormatMixedMaterial:
		return "mixed material"
	case FormatMovingImage:
		return "moving image"
	case FormatPDF:
		return "text"
	}
	return ""
}

// Formats is the set of checked object formats.
type Formats struct {
	Audio         bool
	Image         bool
	MixedMaterial bool
	MovingImage   bool
	PDF           bool
}

// Selected returns the checked formats in checkbox order.
func (f Formats) Selected() []Format {
	var out []Format
	if f.Audio {
		out = append(out, FormatAudio)
	}
	if f.Image {
		out = append(out, FormatImage)
	}
	if f.MixedMaterial {
		out = append(out, FormatMixedMaterial)
	}
	if f.MovingImage {
		out = append(out, FormatMovingImage)
	}
	if f.PDF {
		out = append(out, FormatPDF)
	}
	return out
}

// Clause is one row of an advanced search.
type Clause struct {
	searchMode mode.Mode
	text       string
	operator   Operator
}

// NewClause validates a clause. Empty text is allowed; such clauses are skipped.
func NewClause(m mode.Mode, text string, op Operator) (Clause, error) {
	if m == "" {
		m = mode.Keyword
	}
	if !m.IsClauseMode() {
		return Clause{}, fmt.Errorf("%w: %q not allowed in a clause", domain.ErrUnsupportedMode, m)
	}
	if op == "" {
		op = And
	}
	if op != And && op != Or && op != Not {
		return Clause{}, domain.InvalidRequestf("unknown operator %q", op)
	}
	t, err := validateText(text)
	if err != nil {
		return Clause{}, err
	}
	return Clause{searchMode: m, text: t, operator: op}, nil
}

// Mode returns the clause field mode.
func (c Clause) Mode() mode.Mode { return c.searchMode }

// Text returns the clause text.
func (c Clause) Text() string { return c.text }

// Operator returns the clause operator.
func (c Clause) Operator() Operator { return c.operator }

// IsEmpty reports whether the clause contributes nothing.
func (c Clause) IsEmpty() bool { return c.text == "" }

// Advanced is a multi-clause boolean search with narrowing options.
type Advanced struct {
	clauses    []Clause
	collection Collection
	genre      string
	topic      string
	formats    Formats
	page       Page
}

// AdvancedOptions carries the narrowing controls of an advanced search.
type AdvancedOptions struct {
	Collection Collection
	Genre      string
	Topic      string
	Formats    Formats
}

// NewAdvanced validates an advanced request. Fewer than MinClauses clauses are
// padded with empty keyword clauses.
func NewAdvanced(clauses []Clause, opts AdvancedOptions, page Page) (Advanced, error) {
	if len(clauses) > MaxClauses {
		return Advanced{}, domain.InvalidRequestf("too many clauses (max %d)", MaxClauses)
	}
	if opts.Collection == "" {
		opts.Collection = CollectionNone
	}
	if _, err := ParseCollection(string(opts.Collection)); err != nil {
		return Advanced{}, err
	}
	cs := make([]Clause, len(clauses), max(len(clauses), MinClauses))
	copy(cs, clauses)
	for len(cs) < MinClauses {
		cs = append(cs, Clause{searchMode: mode.Keyword, operator: And})
	}
	return Advanced{
		clauses:    cs,
		collection: opts.Collection,
		genre:      strings.TrimSpace(opts.Genre),
		topic:      strings.TrimSpace(opts.Topic),
		formats:    opts.Formats,
		page:       page,
	}, nil
}

// Clauses returns a copy of the clauses in entry order.
func (r *Advanced) Clauses() []Clause {
	out := make([]Clause, len(r.clauses))
	copy(out, r.clauses)
	return out
}

// Collection returns the collection narrowing choice.
func (r *Advanced) Collection() Collection { return r.collection }

// Genre returns the genre narrowing value.
func (r *Advanced) Genre() string { return r.genre }

// Topic returns the topic narrowing value.
func (r *Advanced) Topic() string { return r.topic }

// Formats returns the object format flags.
func (r *Advanced) Formats() Formats { return r.formats }

// Page returns the pagination window.
func (r *Advanced) Page() Page { return r.page }

// IsNarrowingValue reports whether a select value actually narrows.
func IsNarrowingValue(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, "none")
}
