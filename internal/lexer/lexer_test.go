package lexer

import (
	"testing"

	soulerrors "github.com/soullang/soulc/internal/errors"
	"github.com/soullang/soulc/internal/token"
)

func tokenTypes(tokens []token.Token) []token.TokenType {
	out := make([]token.TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}

func TestTokenizeSimpleDeclaration(t *testing.T) {
	errs := &soulerrors.List{}
	l := New("let x := 1\n", errs)
	tokens := l.Tokenize()

	want := []token.TokenType{token.LET, token.IDENT, token.ASSIGN_DECL, token.INT, token.NEWLINE, token.EOF}
	got := tokenTypes(tokens)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v (full: %v)", i, got[i], want[i], got)
		}
	}
	if errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs.Errors)
	}
}

func TestFieldAccessDotsAreSplit(t *testing.T) {
	errs := &soulerrors.List{}
	l := New("a.b.c", errs)
	tokens := l.Tokenize()

	want := []token.TokenType{
		token.IDENT, token.DOT, token.IDENT, token.DOT, token.IDENT, token.EOF,
	}
	got := tokenTypes(tokens)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestStringLiteralIsInternedAsSyntheticIdent(t *testing.T) {
	errs := &soulerrors.List{}
	l := New(`"hello"`, errs)
	tokens := l.Tokenize()

	if tokens[0].Type != token.IDENT {
		t.Fatalf("string literal should lex as IDENT (interned), got %v", tokens[0].Type)
	}
	if !token.IsSyntheticIdent(tokens[0].Literal) {
		t.Fatalf("expected a synthetic c-string identifier, got %q", tokens[0].Literal)
	}
	value, ok := l.CStrings().Lookup(tokens[0].Literal)
	if !ok || value != "hello" {
		t.Fatalf("CStrings().Lookup() = %q, %v, want \"hello\", true", value, ok)
	}
}

func TestUnterminatedStringReportsError(t *testing.T) {
	errs := &soulerrors.List{}
	l := New(`"unterminated`, errs)
	l.Tokenize()
	if !errs.HasErrors() {
		t.Fatal("expected an error for an unterminated string literal")
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	errs := &soulerrors.List{}
	l := New("let x", errs)

	peeked := l.Peek(1)
	if peeked.Type != token.IDENT {
		t.Fatalf("Peek(1) = %v, want IDENT", peeked.Type)
	}
	first := l.NextToken()
	if first.Type != token.LET {
		t.Fatalf("NextToken() = %v, want LET", first.Type)
	}
	second := l.NextToken()
	if second.Type != token.IDENT {
		t.Fatalf("NextToken() = %v, want IDENT", second.Type)
	}
}

func TestCompoundOperatorsPreferLongestMatch(t *testing.T) {
	errs := &soulerrors.List{}
	l := New(":= ** </ += ++", errs)
	tokens := l.Tokenize()
	want := []token.TokenType{
		token.ASSIGN_DECL, token.POWER, token.ROOT, token.PLUS_ASSIGN, token.INC, token.EOF,
	}
	got := tokenTypes(tokens)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}
