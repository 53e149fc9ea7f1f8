package token_test

import (
	"testing"

	"rash/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		word string
		kind token.Kind
		ok   bool
	}{
		{"fn", token.KwFn, true},
		{"match", token.KwMatch, true},
		{"while", token.KwWhile, true},
		{"true", token.KwTrue, true},
		{"impl", token.Reserved, true},
		{"unsafe", token.Reserved, true},
		{"Fn", token.Invalid, false},
		{"main", token.Invalid, false},
	}
	for _, tt := range tests {
		k, ok := token.LookupKeyword(tt.word)
		if k != tt.kind || ok != tt.ok {
			t.Errorf("LookupKeyword(%q) = %v,%v want %v,%v", tt.word, k, ok, tt.kind, tt.ok)
		}
	}
}

func TestTokenPredicates(t *testing.T) {
	lits := []token.Kind{token.IntLit, token.StringLit, token.KwTrue, token.KwFalse}
	for _, k := range lits {
		if !(token.Token{Kind: k}).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	if (token.Token{Kind: token.Ident}).IsLiteral() {
		t.Fatal("ident must not be literal")
	}
	if !(token.Token{Kind: token.PercentAssign}).IsCompoundAssign() {
		t.Fatal("%= should be compound assignment")
	}
	if (token.Token{Kind: token.Assign}).IsCompoundAssign() {
		t.Fatal("= is not compound")
	}
	if !(token.Token{Kind: token.KwLoop}).IsKeyword() {
		t.Fatal("loop should be keyword")
	}
}

func TestKindString(t *testing.T) {
	if token.DotDotEq.String() != "..=" || token.KwFn.String() != "fn" || token.EOF.String() != "EOF" {
		t.Fatal("unexpected kind names")
	}
}
