package parser

import (
	"rash/internal/ast"
	"rash/internal/diag"
	"rash/internal/token"
)

// allowedMacros — единственные макросы, которые понимает rash.
var allowedMacros = map[string]struct{}{
	"println":  {},
	"print":    {},
	"eprintln": {},
	"eprint":   {},
	"format":   {},
}

// IsAllowedMacro reports whether name! is accepted by the parser.
func IsAllowedMacro(name string) bool {
	_, ok := allowedMacros[name]
	return ok
}

// parseMacro разбирает `name!("fmt", args...)`. Первый аргумент — строковый литерал.
func (p *Parser) parseMacro(nameTok token.Token) (*ast.Expr, bool) {
	p.advance() // '!'
	if !IsAllowedMacro(nameTok.Text) {
		p.report(diag.SynMacroNotAllowed, diag.SevError, nameTok.Span,
			"macro "+nameTok.Text+"! is not allowed; only println!, print!, eprintln!, eprint! and format! are supported")
		return nil, false
	}
	if !p.at(token.LParen) {
		p.err(diag.SynUnexpectedToken, "expected '(' after "+nameTok.Text+"!")
		return nil, false
	}
	p.advance()
	data := &ast.MacroData{Name: nameTok.Text}
	if p.at(token.RParen) {
		if nameTok.Text != "println" && nameTok.Text != "eprintln" {
			p.err(diag.SynExpectExpression, nameTok.Text+"! requires a format string")
			return nil, false
		}
	} else {
		fmtTok, ok := p.expect(token.StringLit, diag.SynExpectExpression, "expected format string literal")
		if !ok {
			return nil, false
		}
		data.Format = normalizeLiteral(fmtTok.Text)
		for p.at(token.Comma) && !p.failed() {
			p.advance()
			if p.at(token.RParen) {
				break
			}
			arg, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			data.Args = append(data.Args, arg)
		}
	}
	closeTok, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close macro call")
	if !ok {
		return nil, false
	}
	return &ast.Expr{Kind: ast.ExprMacro, Span: nameTok.Span.Cover(closeTok.Span), Data: data}, true
}
