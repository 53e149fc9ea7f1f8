package parser

import (
	"strconv"
	"strings"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"

	"rash/internal/diag"
	"rash/internal/token"
)

// parseU32 переводит IntLit в uint32; переполнение — ошибка LexBadNumber.
func (p *Parser) parseU32(tok token.Token) (uint32, bool) {
	text := strings.TrimSuffix(tok.Text, "u32")
	text = strings.ReplaceAll(text, "_", "")
	v, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		p.report(diag.LexBadNumber, diag.SevError, tok.Span, "invalid integer literal "+tok.Text)
		return 0, false
	}
	u, err := safecast.Conv[uint32](v)
	if err != nil {
		p.report(diag.LexBadNumber, diag.SevError, tok.Span, "integer literal "+tok.Text+" does not fit in u32")
		return 0, false
	}
	return u, true
}

// normalizeLiteral приводит строковые литералы к NFC, чтобы визуально
// одинаковые строки сканировались и выводились одинаково.
func normalizeLiteral(s string) string {
	return norm.NFC.String(s)
}
