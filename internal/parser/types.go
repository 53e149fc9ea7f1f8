package parser

import (
	"strings"

	"rash/internal/ast"
	"rash/internal/diag"
	"rash/internal/token"
)

// parseType разбирает аннотацию типа. Любое написание вне закрытого набора
// становится ast.TypeUnsupported; отвергает его валидатор, а не парсер.
func (p *Parser) parseType() (*ast.Type, bool) {
	if !p.enter() {
		return nil, false
	}
	defer p.leave()

	start := p.lx.Peek().Span
	if p.at(token.Amp) {
		p.advance()
		if p.at(token.KwMut) {
			p.advance()
		}
	}
	if p.at(token.LParen) {
		p.advance()
		closeTok, ok := p.expect(token.RParen, diag.SynExpectType, "tuple types are not supported; expected ')'")
		if !ok {
			return nil, false
		}
		return &ast.Type{Kind: ast.TypeVoid, Span: start.Cover(closeTok.Span)}, true
	}
	nameTok, ok := p.expect(token.Ident, diag.SynExpectType, "expected type")
	if !ok {
		return nil, false
	}
	name := nameTok.Text
	for p.at(token.ColonColon) {
		p.advance()
		seg, ok := p.expect(token.Ident, diag.SynExpectType, "expected type path segment")
		if !ok {
			return nil, false
		}
		name += "::" + seg.Text
	}
	var args []*ast.Type
	if p.at(token.Lt) {
		p.advance()
		for !p.failed() {
			arg, ok := p.parseType()
			if !ok {
				return nil, false
			}
			args = append(args, arg)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		if _, ok := p.expect(token.Gt, diag.SynUnclosedDelimiter, "expected '>' to close type arguments"); !ok {
			return nil, false
		}
	}
	sp := start.Cover(p.lastSpan)

	switch {
	case len(args) == 0 && (name == "str" || name == "String"):
		return &ast.Type{Kind: ast.TypeStr, Span: sp}, true
	case len(args) == 0 && name == "u32":
		return &ast.Type{Kind: ast.TypeU32, Span: sp}, true
	case len(args) == 0 && name == "bool":
		return &ast.Type{Kind: ast.TypeBool, Span: sp}, true
	case len(args) == 1 && name == "Option":
		return &ast.Type{Kind: ast.TypeOption, Span: sp, Inner: args[0]}, true
	case len(args) == 2 && name == "Result":
		return &ast.Type{Kind: ast.TypeResult, Span: sp, Inner: args[0], Err: args[1]}, true
	}
	spelling := name
	if len(args) > 0 {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, a.String())
		}
		spelling += "<" + strings.Join(parts, ", ") + ">"
	}
	return &ast.Type{Kind: ast.TypeUnsupported, Span: sp, Spelling: spelling}, true
}
