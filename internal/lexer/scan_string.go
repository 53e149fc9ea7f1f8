package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"rash/internal/diag"
	"rash/internal/token"
)

// scanString сканирует "..." и декодирует escape-последовательности
// \n \t \r \\ \" \' \0 \u{XXXX}. Литерал может занимать несколько строк.
// Token.Text содержит декодированное значение, Span — исходные байты.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	var sb strings.Builder
	bad := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '"' {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			if bad {
				return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
			}
			return token.Token{Kind: token.StringLit, Span: sp, Text: sb.String()}
		}
		if b == '\\' {
			escStart := lx.cursor.Mark()
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			if !lx.scanEscape(&sb) {
				lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(escStart), "invalid escape sequence")
				bad = true
			}
			continue
		}
		if b >= utf8RuneSelf {
			r, sz := lx.cursor.Rune()
			if r == runeError && sz <= 1 {
				m := lx.cursor.Mark()
				lx.cursor.Bump()
				lx.errLex(diag.LexInvalidUTF8, lx.cursor.SpanFrom(m), "invalid UTF-8 byte in string literal")
				bad = true
				continue
			}
			sb.WriteRune(r)
			lx.cursor.BumpRune()
			continue
		}
		sb.WriteByte(b)
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// scanEscape декодирует escape после '\'. Курсор стоит на символе escape.
func (lx *Lexer) scanEscape(sb *strings.Builder) bool {
	switch lx.cursor.Bump() {
	case 'n':
		sb.WriteByte('\n')
	case 't':
		sb.WriteByte('\t')
	case 'r':
		sb.WriteByte('\r')
	case '\\':
		sb.WriteByte('\\')
	case '"':
		sb.WriteByte('"')
	case '\'':
		sb.WriteByte('\'')
	case '0':
		sb.WriteByte(0)
	case '\n':
		// line continuation: skip leading whitespace of the next line
		for b := lx.cursor.Peek(); b == ' ' || b == '\t'; b = lx.cursor.Peek() {
			lx.cursor.Bump()
		}
	case 'u':
		if !lx.cursor.Eat('{') {
			return false
		}
		digits := lx.cursor.Mark()
		for isHex(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(digits)
		if !lx.cursor.Eat('}') || sp.Empty() || sp.Len() > 6 {
			return false
		}
		v, err := strconv.ParseUint(string(lx.file.Content[sp.Start:sp.End]), 16, 32)
		if err != nil || v > utf8.MaxRune {
			return false
		}
		r := rune(v)
		if !utf8.ValidRune(r) {
			return false
		}
		sb.WriteRune(r)
	default:
		return false
	}
	return true
}
