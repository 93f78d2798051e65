package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/aristotle/internal/domain"
	"github.com/kailas-cloud/aristotle/internal/domain/facet"
	"github.com/kailas-cloud/aristotle/internal/domain/search/mode"
	"github.com/kailas-cloud/aristotle/internal/domain/search/query"
	"github.com/kailas-cloud/aristotle/internal/domain/search/request"
	"github.com/kailas-cloud/aristotle/internal/domain/search/result"
	"github.com/kailas-cloud/aristotle/internal/logger"
)

// subjectFields are the fields subject mode matches against, in order.
var subjectFields = []string{"subject.topic", "subject.geographic", "subject.temporal"}

// ModeExpr builds the primitive expression of a mode and its text.
func ModeExpr(m mode.Mode, text string) (query.Expr, error) {
	switch m {
	case mode.Keyword:
		return query.Text(text), nil
	case mode.Creator:
		return query.Phrase(result.FieldCreator, text), nil
	case mode.Title:
		return query.Phrase(result.FieldTitle, text), nil
	case mode.Subject:
		phrases := make([]query.Expr, 0, len(subjectFields))
		for _, f := range subjectFields {
			phrases = append(phrases, query.Phrase(f, text))
		}
		return query.Or(phrases...), nil
	case mode.Number:
		return query.Term(facet.Keyword(result.FieldPID), text), nil
	default:
		return query.Expr{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedMode, m)
	}
}

// FoldClauses combines clauses strictly left to right. Empty clauses are
// skipped, the first contributing clause seeds the accumulator and its
// operator is never read. No clauses compose to match-all.
func FoldClauses(clauses []request.Clause) (query.Expr, error) {
	var (
		acc    query.Expr
		seeded bool
	)
	for _, c := range clauses {
		if c.IsEmpty() {
			continue
		}
		e, err := ModeExpr(c.Mode(), c.Text())
		if err != nil {
			return query.Expr{}, err
		}
		if !seeded {
			acc, seeded = e, true
			continue
		}
		switch c.Operator() {
		case request.And:
			acc = query.And(acc, e)
		case request.Or:
			acc = query.Or(acc, e)
		case request.Not:
			acc = query.And(acc, query.Not(e))
		default:
			return query.Expr{}, domain.InvalidRequestf("unknown operator %q", c.Operator())
		}
	}
	if !seeded {
		return query.MatchAll(), nil
	}
	return acc, nil
}

// FormatGroup ORs a typeOfResource phrase per checked format. ok is false
// when nothing is checked.
func FormatGroup(f request.Formats) (expr query.Expr, ok bool) {
	selected := f.Selected()
	if len(selected) == 0 {
		return query.Expr{}, false
	}
	phrases := make([]query.Expr, 0, len(selected))
	for _, format := range selected {
		phrases = append(phrases, query.Phrase(result.FieldResourceType, format.ResourceType()))
	}
	return query.Or(phrases...), true
}

// ComposeAdvanced builds the full advanced query: the clause fold, then the
// format group, collection and genre narrowing, each conjoined in that order.
func (s *Service) ComposeAdvanced(ctx context.Context, req *request.Advanced) (query.Expr, error) {
	main, err := FoldClauses(req.Clauses())
	if err != nil {
		return query.Expr{}, err
	}

	var narrowing []query.Expr
	if group, ok := FormatGroup(req.Formats()); ok {
		narrowing = append(narrowing, group)
	}

	scope, ok, err := s.collectionScope(ctx, req.Collection())
	if err != nil {
		return query.Expr{}, err
	}
	if ok {
		narrowing = append(narrowing, scope)
	}

	if request.IsNarrowingValue(req.Genre()) {
		narrowing = append(narrowing, query.Phrase(result.FieldGenre, req.Genre()))
	}
	// Topic narrowing is accepted but adds no constraint.

	if len(narrowing) == 0 {
		return main, nil
	}
	if main.IsMatchAll() {
		return query.And(narrowing...), nil
	}
	return query.And(append([]query.Expr{main}, narrowing...)...), nil
}

// collectionScope resolves a collection choice into a constraint. ok is
// false when the choice does not narrow, including when the lookup record
// is missing.
func (s *Service) collectionScope(ctx context.Context, c request.Collection) (query.Expr, bool, error) {
	var label string
	switch c {
	case request.CollectionThesis:
		return query.Phrase(result.FieldGenre, "thesis"), true, nil
	case request.CollectionSpecialCollections:
		label = s.cfg.SpecialCollectionsLabel
	case request.CollectionMusicLibrary:
		label = s.cfg.MusicLibraryLabel
	case request.CollectionNone, request.CollectionGeneral, "":
		return query.Expr{}, false, nil
	default:
		return query.Expr{}, false, domain.InvalidRequestf("unknown collection %q", c)
	}

	pid, err := s.lookupPID(ctx, label)
	if err != nil {
		return query.Expr{}, false, fmt.Errorf("resolve collection %q: %w", c, err)
	}
	if pid == "" {
		logger.FromContext(ctx).Debug("Collection lookup found no record, narrowing skipped",
			zap.String("collection", string(c)),
			zap.String("label", label),
		)
		return query.Expr{}, false, nil
	}
	return query.Term(facet.Keyword(result.FieldInCollection), pid), true, nil
}

// lookupPID returns the pid of the first record whose title matches label,
// or "" when there is none.
func (s *Service) lookupPID(ctx context.Context, label string) (string, error) {
	page, err := request.NewPage(0, 1)
	if err != nil {
		return "", err
	}
	res, err := s.repo.Search(ctx, request.Plan{
		Query: query.Phrase(result.FieldTitle, label),
		Page:  page,
	})
	if err != nil {
		return "", err
	}
	if len(res.Hits) == 0 {
		return "", nil
	}
	return res.Hits[0].PID(), nil
}
