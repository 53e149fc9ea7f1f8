package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// Reserved is a keyword of the wider language that rash rejects.
	Reserved

	KwFn       // fn
	KwLet      // let
	KwMut      // mut
	KwIf       // if
	KwElse     // else
	KwMatch    // match
	KwFor      // for
	KwIn       // in
	KwWhile    // while
	KwLoop     // loop
	KwBreak    // break
	KwContinue // continue
	KwReturn   // return
	KwTrue     // true
	KwFalse    // false
	KwPub      // pub

	// IntLit represents an unsigned decimal integer literal.
	IntLit
	// StringLit represents a double-quoted string literal.
	StringLit

	Plus          // +
	Minus         // -
	Star          // *
	Slash         // /
	Percent       // %
	Assign        // =
	PlusAssign    // +=
	MinusAssign   // -=
	StarAssign    // *=
	SlashAssign   // /=
	PercentAssign // %=
	EqEq          // ==
	Bang          // !
	BangEq        // !=
	Lt            // <
	LtEq          // <=
	Gt            // >
	GtEq          // >=
	Amp           // &
	Pipe          // |
	AndAnd        // &&
	OrOr          // ||
	Question      // ?
	Colon         // :
	ColonColon    // ::
	Semicolon     // ;
	Comma         // ,
	Dot           // .
	DotDot        // ..
	DotDotEq      // ..=
	Arrow         // ->
	FatArrow      // =>
	LParen        // (
	RParen        // )
	LBrace        // {
	RBrace        // }
	LBracket      // [
	RBracket      // ]
	Hash          // #
	Underscore    // _
)

var kindNames = [...]string{
	Invalid:       "Invalid",
	EOF:           "EOF",
	Ident:         "Ident",
	Reserved:      "Reserved",
	KwFn:          "fn",
	KwLet:         "let",
	KwMut:         "mut",
	KwIf:          "if",
	KwElse:        "else",
	KwMatch:       "match",
	KwFor:         "for",
	KwIn:          "in",
	KwWhile:       "while",
	KwLoop:        "loop",
	KwBreak:       "break",
	KwContinue:    "continue",
	KwReturn:      "return",
	KwTrue:        "true",
	KwFalse:       "false",
	KwPub:         "pub",
	IntLit:        "IntLit",
	StringLit:     "StringLit",
	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	Slash:         "/",
	Percent:       "%",
	Assign:        "=",
	PlusAssign:    "+=",
	MinusAssign:   "-=",
	StarAssign:    "*=",
	SlashAssign:   "/=",
	PercentAssign: "%=",
	EqEq:          "==",
	Bang:          "!",
	BangEq:        "!=",
	Lt:            "<",
	LtEq:          "<=",
	Gt:            ">",
	GtEq:          ">=",
	Amp:           "&",
	Pipe:          "|",
	AndAnd:        "&&",
	OrOr:          "||",
	Question:      "?",
	Colon:         ":",
	ColonColon:    "::",
	Semicolon:     ";",
	Comma:         ",",
	Dot:           ".",
	DotDot:        "..",
	DotDotEq:      "..=",
	Arrow:         "->",
	FatArrow:      "=>",
	LParen:        "(",
	RParen:        ")",
	LBrace:        "{",
	RBrace:        "}",
	LBracket:      "[",
	RBracket:      "]",
	Hash:          "#",
	Underscore:    "_",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
