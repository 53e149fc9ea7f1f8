package lexer

import (
	"rash/internal/diag"
	"rash/internal/token"
)

// compoundOps are the multi-byte operators, longest first so "..=" wins over "..".
var compoundOps = []struct {
	text string
	kind token.Kind
}{
	{"..=", token.DotDotEq}, {"..", token.DotDot}, {"::", token.ColonColon}, {"->", token.Arrow},
	{"=>", token.FatArrow}, {"&&", token.AndAnd}, {"||", token.OrOr}, {"==", token.EqEq},
	{"!=", token.BangEq}, {"<=", token.LtEq}, {">=", token.GtEq}, {"+=", token.PlusAssign},
	{"-=", token.MinusAssign}, {"*=", token.StarAssign}, {"/=", token.SlashAssign}, {"%=", token.PercentAssign},
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{
			Kind: k,
			Span: sp,
			Text: string(lx.file.Content[sp.Start:sp.End]),
		}
	}

	for _, op := range compoundOps {
		if lx.cursor.EatString(op.text) {
			return emit(op.kind)
		}
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '+':
		return emit(token.Plus)
	case '-':
		return emit(token.Minus)
	case '*':
		return emit(token.Star)
	case '/':
		return emit(token.Slash)
	case '%':
		return emit(token.Percent)
	case '=':
		return emit(token.Assign)
	case '!':
		return emit(token.Bang)
	case '<':
		return emit(token.Lt)
	case '>':
		return emit(token.Gt)
	case '&':
		return emit(token.Amp)
	case '|':
		return emit(token.Pipe)
	case '?':
		return emit(token.Question)
	case ':':
		return emit(token.Colon)
	case ';':
		return emit(token.Semicolon)
	case ',':
		return emit(token.Comma)
	case '.':
		return emit(token.Dot)
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	case '[':
		return emit(token.LBracket)
	case ']':
		return emit(token.RBracket)
	case '#':
		return emit(token.Hash)
	case '_':
		return emit(token.Underscore)
	default:
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unknown character "+quoteByte(ch))
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
}
