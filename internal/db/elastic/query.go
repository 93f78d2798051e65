package elastic

import (
	"github.com/olivere/elastic/v7"

	"github.com/kailas-cloud/aristotle/internal/domain/search/query"
)

// translate converts a composed expression into the Elasticsearch query DSL.
// Free text goes through simple_query_string with a conjunctive default
// operator, so unbalanced quotes or parentheses in user input never fail to
// parse. Disjunctions require at least one matching child.
func translate(e query.Expr) elastic.Query {
	switch e.Kind() {
	case query.KindText:
		return elastic.NewSimpleQueryStringQuery(e.Value()).DefaultOperator("AND")
	case query.KindPhrase:
		return elastic.NewMatchPhraseQuery(e.Field(), e.Value())
	case query.KindTerm:
		return elastic.NewTermQuery(e.Field(), e.Value())
	case query.KindAnd:
		return elastic.NewBoolQuery().Must(translateAll(e.Children())...)
	case query.KindOr:
		return elastic.NewBoolQuery().
			Should(translateAll(e.Children())...).
			MinimumNumberShouldMatch(1)
	case query.KindNot:
		return elastic.NewBoolQuery().MustNot(translateAll(e.Children())...)
	default:
		return elastic.NewMatchAllQuery()
	}
}

func translateAll(exprs []query.Expr) []elastic.Query {
	out := make([]elastic.Query, 0, len(exprs))
	for _, c := range exprs {
		out = append(out, translate(c))
	}
	return out
}
