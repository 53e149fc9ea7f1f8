package parser

import (
	"rash/internal/ast"
	"rash/internal/diag"
	"rash/internal/token"
)

func (p *Parser) parsePattern() (*ast.Pattern, bool) {
	if !p.enter() {
		return nil, false
	}
	defer p.leave()

	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Underscore:
		p.advance()
		return &ast.Pattern{Kind: ast.PatWildcard, Span: tok.Span}, true
	case token.IntLit:
		p.advance()
		v, ok := p.parseU32(tok)
		if !ok {
			return nil, false
		}
		return &ast.Pattern{Kind: ast.PatLiteral, Span: tok.Span, Literal: &ast.LiteralData{Kind: ast.LitU32, U32: v}}, true
	case token.StringLit:
		p.advance()
		return &ast.Pattern{Kind: ast.PatLiteral, Span: tok.Span, Literal: &ast.LiteralData{Kind: ast.LitStr, Str: normalizeLiteral(tok.Text)}}, true
	case token.KwTrue, token.KwFalse:
		p.advance()
		return &ast.Pattern{Kind: ast.PatLiteral, Span: tok.Span, Literal: &ast.LiteralData{Kind: ast.LitBool, Bool: tok.Kind == token.KwTrue}}, true
	case token.LParen:
		p.advance()
		pat := &ast.Pattern{Kind: ast.PatTuple}
		for !p.at(token.RParen) && !p.failed() {
			el, ok := p.parsePattern()
			if !ok {
				return nil, false
			}
			pat.Elems = append(pat.Elems, el)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		closeTok, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close tuple pattern")
		if !ok {
			return nil, false
		}
		pat.Span = tok.Span.Cover(closeTok.Span)
		return pat, true
	case token.Ident:
		p.advance()
		if !p.at(token.LBrace) {
			return &ast.Pattern{Kind: ast.PatVariable, Span: tok.Span, Name: tok.Text}, true
		}
		return p.parseStructPattern(tok)
	default:
		p.err(diag.SynBadPattern, "expected pattern, got "+describe(tok))
		return nil, false
	}
}

// parseStructPattern разбирает `Name { field: pat, other }`.
func (p *Parser) parseStructPattern(nameTok token.Token) (*ast.Pattern, bool) {
	p.advance() // '{'
	pat := &ast.Pattern{Kind: ast.PatStruct, Name: nameTok.Text}
	for !p.at(token.RBrace) && !p.failed() {
		fieldTok, ok := p.expectIdent("expected field name in struct pattern")
		if !ok {
			return nil, false
		}
		sub := &ast.Pattern{Kind: ast.PatVariable, Span: fieldTok.Span, Name: fieldTok.Text}
		if p.at(token.Colon) {
			p.advance()
			if sub, ok = p.parsePattern(); !ok {
				return nil, false
			}
		}
		pat.Fields = append(pat.Fields, ast.FieldPattern{Name: fieldTok.Text, Pattern: sub})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	closeTok, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close struct pattern")
	if !ok {
		return nil, false
	}
	pat.Span = nameTok.Span.Cover(closeTok.Span)
	return pat, true
}
