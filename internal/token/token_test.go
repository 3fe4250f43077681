package token

import "testing"

func TestSpanCombineTakesOuterBounds(t *testing.T) {
	a := Span{Line: 2, Offset: 10, Length: 5}
	b := Span{Line: 1, Offset: 20, Length: 3}
	got := a.Combine(b)
	want := Span{Line: 1, Offset: 10, Length: 13}
	if got != want {
		t.Fatalf("Combine() = %+v, want %+v", got, want)
	}
}

func TestSpanEqualForASTAlwaysTrue(t *testing.T) {
	a := Span{Line: 1, Offset: 0, Length: 1}
	b := Span{Line: 99, Offset: 500, Length: 12}
	if !a.EqualForAST(b) {
		t.Fatal("EqualForAST must always report true")
	}
}

func TestLookupIdentKeywordsAndPlainIdents(t *testing.T) {
	if LookupIdent("let") != LET {
		t.Fatal("'let' should lex as the LET keyword")
	}
	if LookupIdent("foo") != IDENT {
		t.Fatal("'foo' should lex as a plain identifier")
	}
	if !IsKeyword("mut") {
		t.Fatal("'mut' should be a reserved word")
	}
	if IsKeyword("foo") {
		t.Fatal("'foo' must not be a reserved word")
	}
}

func TestTokenTypeClassification(t *testing.T) {
	if !INT.IsLiteral() {
		t.Fatal("INT must be classified as a literal token type")
	}
	if LET.IsLiteral() {
		t.Fatal("LET must not be classified as a literal token type")
	}
	if !IF.IsKeyword() {
		t.Fatal("IF must be classified as a keyword token type")
	}
	if IDENT.IsKeyword() {
		t.Fatal("IDENT must not be classified as a keyword token type")
	}
}

func TestIsSyntheticIdent(t *testing.T) {
	cases := map[string]bool{
		"__soul_c_str_0__":       true,
		"__soul_mem_12__":        true,
		"__soul_format_string__": true,
		"foo":                    false,
		"__soul_c_str_":          false,
	}
	for ident, want := range cases {
		if got := IsSyntheticIdent(ident); got != want {
			t.Errorf("IsSyntheticIdent(%q) = %v, want %v", ident, got, want)
		}
	}
}
