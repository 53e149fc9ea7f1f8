package token

import (
	"rash/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is an integer, boolean, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, StringLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a rash keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwFn, KwLet, KwMut, KwIf, KwElse, KwMatch, KwFor, KwIn, KwWhile, KwLoop,
		KwBreak, KwContinue, KwReturn, KwTrue, KwFalse, KwPub:
		return true
	default:
		return false
	}
}

// IsCompoundAssign reports whether the token is one of += -= *= /= %=.
func (t Token) IsCompoundAssign() bool {
	switch t.Kind {
	case PlusAssign, MinusAssign, StarAssign, SlashAssign, PercentAssign:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
