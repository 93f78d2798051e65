// Package query defines the backend-neutral query expression built by the
// composer and translated by each execution adapter.
package query

import (
	"strconv"
	"strings"
)

// Kind enumerates expression node types.
type Kind int

const (
	// KindMatchAll matches every document.
	KindMatchAll Kind = iota
	// KindText is free text parsed with a conjunctive default operator.
	KindText
	// KindPhrase is a phrase match on an analyzed field.
	KindPhrase
	// KindTerm is an exact match on a keyword field.
	KindTerm
	// KindAnd is a conjunction of its children.
	KindAnd
	// KindOr is a disjunction of its children.
	KindOr
	// KindNot negates its single child.
	KindNot
)

func (k Kind) String() string {
	switch k {
	case KindMatchAll:
		return "match_all"
	case KindText:
		return "text"
	case KindPhrase:
		return "phrase"
	case KindTerm:
		return "term"
	case KindAnd:
		return "and"
	case KindOr:
		return "or"
	case KindNot:
		return "not"
	}
	return "unknown"
}

// Expr is an immutable query expression tree.
type Expr struct {
	kind     Kind
	field    string
	value    string
	children []Expr
}

// MatchAll returns an unrestricted expression.
func MatchAll() Expr { return Expr{kind: KindMatchAll} }

// Text returns a free-text expression over all fields.
func Text(text string) Expr { return Expr{kind: KindText, value: text} }

// Phrase returns a phrase match of text on field.
func Phrase(field, text string) Expr { return Expr{kind: KindPhrase, field: field, value: text} }

// Term returns an exact match of value on field.
func Term(field, value string) Expr { return Expr{kind: KindTerm, field: field, value: value} }

// And conjoins exprs. No children yields MatchAll, a single child is returned as is.
// Nested conjunctions are kept as written; the tree records composition order.
func And(exprs ...Expr) Expr { return group(KindAnd, exprs) }

// Or disjoins exprs. No children yields MatchAll, a single child is returned as is.
func Or(exprs ...Expr) Expr { return group(KindOr, exprs) }

// Not negates e.
func Not(e Expr) Expr { return Expr{kind: KindNot, children: []Expr{e}} }

func group(kind Kind, exprs []Expr) Expr {
	switch len(exprs) {
	case 0:
		return MatchAll()
	case 1:
		return exprs[0]
	}
	children := make([]Expr, len(exprs))
	copy(children, exprs)
	return Expr{kind: kind, children: children}
}

// Kind returns the node type.
func (e Expr) Kind() Kind { return e.kind }

// Field returns the target field of phrase and term nodes.
func (e Expr) Field() string { return e.field }

// Value returns the text of text, phrase and term nodes.
func (e Expr) Value() string { return e.value }

// Children returns a copy of the child expressions.
func (e Expr) Children() []Expr {
	if len(e.children) == 0 {
		return nil
	}
	out := make([]Expr, len(e.children))
	copy(out, e.children)
	return out
}

// IsMatchAll reports whether the expression is unrestricted.
func (e Expr) IsMatchAll() bool { return e.kind == KindMatchAll }

// Equal reports structural equality.
func (e Expr) Equal(other Expr) bool { return e.String() == other.String() }

// String returns a canonical rendering, e.g. and(or(phrase(creator:"a"), text("b")), not(term(pid:"c"))).
func (e Expr) String() string {
	var sb strings.Builder
	e.write(&sb)
	return sb.String()
}

func (e Expr) write(sb *strings.Builder) {
	sb.WriteString(e.kind.String())
	switch e.kind {
	case KindMatchAll:
		return
	case KindText:
		sb.WriteByte('(')
		sb.WriteString(strconv.Quote(e.value))
		sb.WriteByte(')')
	case KindPhrase, KindTerm:
		sb.WriteByte('(')
		sb.WriteString(e.field)
		sb.WriteByte(':')
		sb.WriteString(strconv.Quote(e.value))
		sb.WriteByte(')')
	case KindAnd, KindOr, KindNot:
		sb.WriteByte('(')
		for i, c := range e.children {
			if i > 0 {
				sb.WriteString(", ")
			}
			c.write(sb)
		}
		sb.WriteByte(')')
	}
}
