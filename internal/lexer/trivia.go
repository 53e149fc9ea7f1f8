package lexer

import (
	"rash/internal/diag"
	"rash/internal/token"
)

// collectLeadingTrivia gathers the whitespace and comments before the next
// significant token into lx.hold. Runs of blanks and runs of newlines each
// become one trivia; doc comments are plain line comments here.
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		var kind token.TriviaKind
		switch b := lx.cursor.Peek(); {
		case isBlank(b):
			for isBlank(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			kind = token.TriviaSpace
		case b == '\n':
			for lx.cursor.Eat('\n') {
			}
			kind = token.TriviaNewline
		case b == '/' && lx.cursor.PeekAt(1) == '/':
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
			kind = token.TriviaLineComment
		case b == '/' && lx.cursor.PeekAt(1) == '*':
			lx.skipBlockComment()
			kind = token.TriviaBlockComment
		default:
			return
		}
		sp := lx.cursor.SpanFrom(start)
		lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])})
	}
}

func isBlank(b byte) bool { return b == ' ' || b == '\t' || b == '\r' }

// skipBlockComment consumes a /* */ comment. Comments nest as in Rust; an
// unclosed one runs to the end of input and is reported.
func (lx *Lexer) skipBlockComment() {
	start := lx.cursor.Mark()
	lx.cursor.EatString("/*")
	depth := 1
	for depth > 0 && !lx.cursor.EOF() {
		switch {
		case lx.cursor.EatString("/*"):
			depth++
		case lx.cursor.EatString("*/"):
			depth--
		default:
			lx.cursor.Bump()
		}
	}
	if depth > 0 {
		lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
	}
}
