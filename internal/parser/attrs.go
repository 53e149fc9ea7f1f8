package parser

import (
	"strings"

	"rash/internal/diag"
	"rash/internal/source"
	"rash/internal/token"
)

// attribute — `#[name]`, `#[a::b]` или `#[name(args)]`; аргументы хранятся как токены.
type attribute struct {
	Name string
	Args []token.Token
	Span source.Span
}

func (p *Parser) parseAttributes() ([]attribute, bool) {
	var attrs []attribute
	for p.at(token.Hash) && !p.failed() {
		hash := p.advance()
		if p.at(token.Bang) {
			p.err(diag.SynBadAttribute, "inner attributes are not supported")
			return nil, false
		}
		if _, ok := p.expect(token.LBracket, diag.SynBadAttribute, "expected '[' after '#'"); !ok {
			return nil, false
		}
		var path []string
		for {
			tok, ok := p.expectIdent("expected attribute name")
			if !ok {
				return nil, false
			}
			path = append(path, tok.Text)
			if !p.at(token.ColonColon) {
				break
			}
			p.advance()
		}
		attr := attribute{Name: strings.Join(path, "::")}
		if p.at(token.LParen) {
			p.advance()
			for !p.at(token.RParen) && !p.at(token.EOF) && !p.failed() {
				attr.Args = append(attr.Args, p.advance())
			}
			if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' in attribute"); !ok {
				return nil, false
			}
		}
		closeTok, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' to close attribute")
		if !ok {
			return nil, false
		}
		attr.Span = hash.Span.Cover(closeTok.Span)
		attrs = append(attrs, attr)
	}
	return attrs, !p.failed()
}

// loopBound извлекает N из #[max_iterations(N)]; другие атрибуты на циклах запрещены.
func (p *Parser) loopBound(attrs []attribute) (*uint32, bool) {
	var bound *uint32
	for _, a := range attrs {
		if a.Name != "max_iterations" {
			p.report(diag.SynBadAttribute, diag.SevError, a.Span, "attribute #["+a.Name+"] is not allowed on loops")
			return nil, false
		}
		if bound != nil {
			p.report(diag.SynBadAttribute, diag.SevError, a.Span, "duplicate #[max_iterations] attribute")
			return nil, false
		}
		if len(a.Args) != 1 || a.Args[0].Kind != token.IntLit {
			p.report(diag.SynBadAttribute, diag.SevError, a.Span, "#[max_iterations] expects one integer argument")
			return nil, false
		}
		n, ok := p.parseU32(a.Args[0])
		if !ok {
			return nil, false
		}
		bound = &n
	}
	return bound, true
}
