package db

import (
	"errors"
	"strconv"
)

// IndexFieldType enumerates supported index field types.
type IndexFieldType int

const (
	// IndexFieldText is an analyzed text field.
	IndexFieldText IndexFieldType = iota
	// IndexFieldKeyword is an analyzed text field with an exact-match ".keyword" sub-field.
	IndexFieldKeyword
	// IndexFieldNumeric is a numeric field.
	IndexFieldNumeric
)

func (t IndexFieldType) String() string {
	switch t {
	case IndexFieldText:
		return "TEXT"
	case IndexFieldKeyword:
		return "KEYWORD"
	case IndexFieldNumeric:
		return "NUMERIC"
	}
	return "UNKNOWN"
}

// IndexField describes a single field in an index schema. Dotted names address
// nested objects (subject.topic).
type IndexField struct {
	Name string
	Type IndexFieldType
}

// IndexDefinition is a complete index definition used to create an index.
type IndexDefinition struct {
	Name   string
	Fields []IndexField
}

// Validate checks that the index definition is well-formed.
func (idx *IndexDefinition) Validate() error {
	if idx.Name == "" {
		return errors.New("index name is required")
	}
	if !IsValidIndexName(idx.Name) {
		return errors.New("index name contains invalid characters")
	}
	if len(idx.Fields) == 0 {
		return errors.New("at least one field is required")
	}

	seen := make(map[string]bool)
	for i := range idx.Fields {
		f := &idx.Fields[i]
		if f.Name == "" {
			return errors.New("field name is required at index " + strconv.Itoa(i))
		}
		if seen[f.Name] {
			return errors.New("duplicate field name: " + f.Name)
		}
		seen[f.Name] = true
	}

	return nil
}

// IsValidIndexName returns true if s matches [a-z0-9_-]+ (Elasticsearch rules, lowercase only).
func IsValidIndexName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		isLower := r >= 'a' && r <= 'z'
		isDigit := r >= '0' && r <= '9'
		isSpecial := r == '_' || r == '-'
		if !isLower && !isDigit && !isSpecial {
			return false
		}
	}
	return s[0] != '_' && s[0] != '-'
}
