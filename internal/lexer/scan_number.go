package lexer

import (
	"rash/internal/diag"
	"rash/internal/token"
)

// scanNumber сканирует десятичный литерал [0-9][0-9_]* с необязательным суффиксом u32.
// Значение (и переполнение u32) проверяет парсер; здесь только форма.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
	// float literals are outside the closed type set
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, "floating point literals are not supported")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
	if isIdentStartByte(lx.cursor.Peek()) {
		suffix := lx.cursor.Mark()
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(suffix)
		if string(lx.file.Content[sp.Start:sp.End]) != "u32" {
			full := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, full, "unsupported integer suffix "+string(lx.file.Content[sp.Start:sp.End]))
			return token.Token{Kind: token.Invalid, Span: full, Text: string(lx.file.Content[full.Start:full.End])}
		}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.IntLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
