package search

import (
	"github.com/kailas-cloud/aristotle/internal/db"
	"github.com/kailas-cloud/aristotle/internal/domain/facet"
	"github.com/kailas-cloud/aristotle/internal/domain/search/result"
)

// CatalogIndex returns the index definition for catalog records. Every field
// the engine filters, sorts or aggregates on gets an exact-match sub-field.
func CatalogIndex(name string) (*db.IndexDefinition, error) {
	fields := []string{
		result.FieldPID,
		result.FieldTitle,
		result.FieldCreator,
		result.FieldParent,
		result.FieldInCollection,
	}
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		seen[f] = true
	}
	for _, def := range facet.Default.Definitions() {
		if !seen[def.Field()] {
			fields = append(fields, def.Field())
			seen[def.Field()] = true
		}
	}
	return db.NewIndex(name).Keyword(fields...).Build()
}
