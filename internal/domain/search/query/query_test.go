package query

import "testing"

func TestString_Primitives(t *testing.T) {
	tests := []struct {
		expr Expr
		want string
	}{
		{MatchAll(), "match_all"},
		{Text("jazz age"), `text("jazz age")`},
		{Phrase("creator", "Tesla"), `phrase(creator:"Tesla")`},
		{Term("pid.keyword", "coccc:1"), `term(pid.keyword:"coccc:1")`},
		{Not(Term("genre", "x")), `not(term(genre:"x"))`},
	}
	for _, tc := range tests {
		if got := tc.expr.String(); got != tc.want {
			t.Errorf("String() = %s, want %s", got, tc.want)
		}
	}
}

func TestAndOr_Degenerate(t *testing.T) {
	if !And().IsMatchAll() {
		t.Error("And() should be match_all")
	}
	if !Or().IsMatchAll() {
		t.Error("Or() should be match_all")
	}
	single := Phrase("title", "x")
	if !And(single).Equal(single) {
		t.Error("And(x) should be x")
	}
	if !Or(single).Equal(single) {
		t.Error("Or(x) should be x")
	}
}

func TestAnd_KeepsNesting(t *testing.T) {
	a, b, c := Text("a"), Text("b"), Text("c")
	left := And(And(a, b), c)
	flat := And(a, b, c)
	if left.Equal(flat) {
		t.Fatal("nested conjunction must not be flattened")
	}
	if left.String() != `and(and(text("a"), text("b")), text("c"))` {
		t.Errorf("unexpected rendering %s", left)
	}
}

func TestChildren_ReturnsCopy(t *testing.T) {
	e := Or(Text("a"), Text("b"))
	ch := e.Children()
	ch[0] = Text("mutated")
	if e.Children()[0].Value() != "a" {
		t.Fatal("expression mutated through Children()")
	}
}

func TestGroup_CopiesInput(t *testing.T) {
	parts := []Expr{Text("a"), Text("b")}
	e := And(parts...)
	parts[0] = Text("mutated")
	if e.String() != `and(text("a"), text("b"))` {
		t.Fatalf("expression mutated through input slice: %s", e)
	}
}

func TestKind_String(t *testing.T) {
	if Kind(99).String() != "unknown" {
		t.Error("unexpected kind name")
	}
}
