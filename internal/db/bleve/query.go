package bleve

import (
	"github.com/blevesearch/bleve/v2"
	bq "github.com/blevesearch/bleve/v2/search/query"

	"github.com/kailas-cloud/aristotle/internal/domain/search/query"
)

// translate converts a composed expression into a Bleve query. Free text is
// matched against the composite _all field with every term required.
func translate(e query.Expr) bq.Query {
	switch e.Kind() {
	case query.KindText:
		q := bleve.NewMatchQuery(e.Value())
		q.SetOperator(bq.MatchQueryOperatorAnd)
		return q
	case query.KindPhrase:
		q := bleve.NewMatchPhraseQuery(e.Value())
		q.SetField(e.Field())
		return q
	case query.KindTerm:
		q := bleve.NewTermQuery(e.Value())
		q.SetField(e.Field())
		return q
	case query.KindAnd:
		return bleve.NewConjunctionQuery(translateAll(e.Children())...)
	case query.KindOr:
		q := bleve.NewDisjunctionQuery(translateAll(e.Children())...)
		q.SetMin(1)
		return q
	case query.KindNot:
		q := bleve.NewBooleanQuery()
		q.AddMust(bleve.NewMatchAllQuery())
		q.AddMustNot(translateAll(e.Children())...)
		return q
	default:
		return bleve.NewMatchAllQuery()
	}
}

func translateAll(exprs []query.Expr) []bq.Query {
	out := make([]bq.Query, 0, len(exprs))
	for _, c := range exprs {
		out = append(out, translate(c))
	}
	return out
}
