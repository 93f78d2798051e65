package db

import (
	"strings"
	"testing"
)

func TestIndexBuilder_Simple(t *testing.T) {
	idx := NewIndex("repository").
		Keyword("pid", "titlePrincipal").
		Text("abstract").
		Numeric("extent").
		MustBuild()

	if err := idx.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.Name != "repository" {
		t.Errorf("name = %q, want repository", idx.Name)
	}
	if len(idx.Fields) != 4 {
		t.Fatalf("fields count = %d, want 4", len(idx.Fields))
	}
	if idx.Fields[0].Name != "pid" || idx.Fields[0].Type != IndexFieldKeyword {
		t.Errorf("field[0] = %+v, want pid KEYWORD", idx.Fields[0])
	}
	if idx.Fields[2].Name != "abstract" || idx.Fields[2].Type != IndexFieldText {
		t.Errorf("field[2] = %+v, want abstract TEXT", idx.Fields[2])
	}
	if idx.Fields[3].Type != IndexFieldNumeric {
		t.Errorf("field[3] = %+v, want NUMERIC", idx.Fields[3])
	}
}

func TestIndexBuilder_BuildReturnsCopy(t *testing.T) {
	b := NewIndex("repository").Keyword("pid")
	first := b.MustBuild()
	b.Keyword("genre")
	if len(first.Fields) != 1 {
		t.Fatalf("built definition changed after builder reuse: %d fields", len(first.Fields))
	}
}

func TestIndexBuilder_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		builder func() (*IndexDefinition, error)
		wantErr string
	}{
		{
			name: "empty name",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("").Keyword("x").Build()
			},
			wantErr: "index name is required",
		},
		{
			name: "no fields",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx").Build()
			},
			wantErr: "at least one field",
		},
		{
			name: "invalid characters",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx with spaces").Keyword("x").Build()
			},
			wantErr: "invalid characters",
		},
		{
			name: "uppercase",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("Repository").Keyword("x").Build()
			},
			wantErr: "invalid characters",
		},
		{
			name: "empty field",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx").Keyword("").Build()
			},
			wantErr: "field name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got error %q, want containing %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestIndexDefinition_String(t *testing.T) {
	idx := NewIndex("my-idx").
		Keyword("subject.topic").
		Numeric("extent").
		MustBuild()

	want := "INDEX my-idx FIELDS subject.topic KEYWORD extent NUMERIC"
	if s := idx.String(); s != want {
		t.Errorf("String() = %q, want %q", s, want)
	}
}

func TestIndexBuilder_DuplicateFields(t *testing.T) {
	idx := &IndexDefinition{
		Name: "dup-idx",
		Fields: []IndexField{
			{Name: "field1", Type: IndexFieldKeyword},
			{Name: "field1", Type: IndexFieldNumeric},
		},
	}

	if err := idx.Validate(); err == nil {
		t.Fatal("expected error for duplicate fields")
	}
}

func TestIsValidIndexName(t *testing.T) {
	for name, want := range map[string]bool{
		"repository": true,
		"repo-2":     true,
		"_hidden":    false,
		"-dash":      false,
		"":           false,
		"a.b":        false,
	} {
		if got := IsValidIndexName(name); got != want {
			t.Errorf("IsValidIndexName(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestError_Unwrap(t *testing.T) {
	err := &Error{Op: OpSearch, Err: ErrUnavailable}
	if err.Error() != "search: db: backend unavailable" {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.Unwrap() != ErrUnavailable {
		t.Error("Unwrap should return the cause")
	}
}

func TestIndexFieldType_String(t *testing.T) {
	if IndexFieldType(42).String() != "UNKNOWN" {
		t.Error("unexpected name for unknown type")
	}
}
