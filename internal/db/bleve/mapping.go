package bleve

import (
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/kailas-cloud/aristotle/internal/db"
)

const (
	// sourceField holds the original document as JSON so hits can be
	// returned with their nested structure intact.
	sourceField = "_source"
	// keywordSuffix names the exact-match sub-field of keyword fields.
	keywordSuffix = ".keyword"
)

// buildMapping turns an index definition into a Bleve mapping. Dotted field
// names become nested document mappings; keyword fields get an un-analyzed
// sibling field named <leaf>.keyword, the same path Elasticsearch exposes.
func buildMapping(def *db.IndexDefinition) mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = standard.Name
	im.StoreDynamic = false

	root := bleve.NewDocumentMapping()
	root.Dynamic = false

	src := bleve.NewTextFieldMapping()
	src.Index = false
	src.Store = true
	src.IncludeInAll = false
	src.IncludeTermVectors = false
	src.DocValues = false
	root.AddFieldMappingsAt(sourceField, src)

	for _, f := range def.Fields {
		parent, leaf := nestedParent(root, f.Name)
		parent.AddFieldMappingsAt(leaf, fieldMappings(f.Type, leaf)...)
	}

	im.DefaultMapping = root
	return im
}

func fieldMappings(t db.IndexFieldType, leaf string) []*mapping.FieldMapping {
	switch t {
	case db.IndexFieldNumeric:
		num := bleve.NewNumericFieldMapping()
		num.Store = false
		return []*mapping.FieldMapping{num}
	case db.IndexFieldKeyword:
		kw := bleve.NewTextFieldMapping()
		kw.Name = leaf + keywordSuffix
		kw.Analyzer = keyword.Name
		kw.Store = false
		kw.IncludeInAll = false
		kw.IncludeTermVectors = false
		return []*mapping.FieldMapping{textMapping(), kw}
	default:
		return []*mapping.FieldMapping{textMapping()}
	}
}

func textMapping() *mapping.FieldMapping {
	fm := bleve.NewTextFieldMapping()
	fm.Analyzer = standard.Name
	fm.Store = false
	return fm
}

// nestedParent walks (and creates) the document mappings for every segment
// of a dotted path except the last one.
func nestedParent(root *mapping.DocumentMapping, path string) (*mapping.DocumentMapping, string) {
	segments := strings.Split(path, ".")
	dm := root
	for _, seg := range segments[:len(segments)-1] {
		sub, ok := dm.Properties[seg]
		if !ok {
			sub = bleve.NewDocumentMapping()
			sub.Dynamic = false
			dm.AddSubDocumentMapping(seg, sub)
		}
		dm = sub
	}
	return dm, segments[len(segments)-1]
}
