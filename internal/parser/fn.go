package parser

import (
	"rash/internal/ast"
	"rash/internal/diag"
	"rash/internal/token"
)

// parseFn разбирает `fn name(params) -> Type { ... }`.
func (p *Parser) parseFn() (*ast.Function, bool) {
	fnTok := p.advance()
	nameTok, ok := p.expectIdent("expected function name")
	if !ok {
		return nil, false
	}
	if p.at(token.Lt) {
		p.err(diag.SynFeatureNotAllowed, "generic functions are not supported")
		return nil, false
	}
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name"); !ok {
		return nil, false
	}
	var params []ast.Param
	for !p.at(token.RParen) && !p.failed() {
		prm, ok := p.parseParam()
		if !ok {
			return nil, false
		}
		params = append(params, prm)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close parameter list"); !ok {
		return nil, false
	}
	ret := ast.VoidType
	if p.at(token.Arrow) {
		p.advance()
		if ret, ok = p.parseType(); !ok {
			return nil, false
		}
	}
	if p.at(token.Reserved) && p.lx.Peek().Text == "where" {
		p.err(diag.SynFeatureNotAllowed, "where clauses are not supported")
		return nil, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	return &ast.Function{
		Name:       nameTok.Text,
		NameSpan:   nameTok.Span,
		Params:     params,
		ReturnType: ret,
		Body:       body,
		Span:       fnTok.Span.Cover(body.Span),
	}, true
}

func (p *Parser) parseParam() (ast.Param, bool) {
	if p.at(token.KwMut) {
		p.advance()
	}
	if p.at(token.Amp) || (p.at(token.Reserved) && p.lx.Peek().Text == "self") {
		p.err(diag.SynFeatureNotAllowed, "methods and self parameters are not supported")
		return ast.Param{}, false
	}
	nameTok, ok := p.expectIdent("expected parameter name")
	if !ok {
		return ast.Param{}, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectType, "expected ':' and a type after parameter name"); !ok {
		return ast.Param{}, false
	}
	typ, ok := p.parseType()
	if !ok {
		return ast.Param{}, false
	}
	return ast.Param{Name: nameTok.Text, Type: typ, Span: nameTok.Span.Cover(typ.Span)}, true
}

// expectIdent принимает Ident; Reserved-слова дают отдельную диагностику.
func (p *Parser) expectIdent(msg string) (token.Token, bool) {
	if p.at(token.Reserved) {
		tok := p.lx.Peek()
		p.report(diag.SynExpectIdentifier, diag.SevError, tok.Span, "'"+tok.Text+"' is a reserved word")
		return tok, false
	}
	return p.expect(token.Ident, diag.SynExpectIdentifier, msg)
}
