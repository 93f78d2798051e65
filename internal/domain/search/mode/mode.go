package mode

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/aristotle/internal/domain"
)

// Mode selects which field(s) a query text is matched against.
type Mode string

// Search mode constants.
const (
	// Keyword is free-text search across all fields.
	Keyword Mode = "keyword"
	Creator Mode = "creator"
	Title   Mode = "title"
	// Subject matches any of the topic, geographic or temporal subject fields.
	Subject Mode = "subject"
	// Number is an exact identifier (pid) match.
	Number Mode = "number"
	// Facet filters on a facet value; only meaningful for simple search dispatch.
	Facet Mode = "facet"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	switch m {
	case Keyword, Creator, Title, Subject, Number, Facet:
		return true
	}
	return false
}

// IsFieldSpecific reports whether the mode targets a single field group.
func (m Mode) IsFieldSpecific() bool {
	return m == Creator || m == Title || m == Subject || m == Number
}

// IsClauseMode reports whether the mode may appear in an advanced search clause.
func (m Mode) IsClauseMode() bool {
	return m == Keyword || m == Creator || m == Title || m == Subject
}

// Parse converts user input into a Mode. Empty input and the form alias "kw"
// map to Keyword; anything else outside the closed set is rejected.
func Parse(s string) (Mode, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "", "kw":
		return Keyword, nil
	}
	m := Mode(v)
	if !m.IsValid() {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedMode, s)
	}
	return m, nil
}
