package parser

import (
	"rash/internal/ast"
	"rash/internal/diag"
	"rash/internal/token"
)

// parseExpr — выражение верхнего уровня, включая диапазоны `a..b` и `a..=b`.
func (p *Parser) parseExpr() (*ast.Expr, bool) {
	lhs, ok := p.parseBinaryExpr(precLogicalOr)
	if !ok {
		return nil, false
	}
	if !p.atOr(token.DotDot, token.DotDotEq) {
		return lhs, true
	}
	opTok := p.advance()
	rhs, ok := p.parseBinaryExpr(precLogicalOr)
	if !ok {
		return nil, false
	}
	return &ast.Expr{Kind: ast.ExprRange, Span: lhs.Span.Cover(rhs.Span), Data: &ast.RangeData{
		Start: lhs, End: rhs, Inclusive: opTok.Kind == token.DotDotEq,
	}}, true
}

// parseBinaryExpr — Pratt-парсер для левоассоциативных бинарных операторов.
func (p *Parser) parseBinaryExpr(minPrec int) (*ast.Expr, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return nil, false
	}
	for !p.failed() {
		prec, op, isBin := binaryPrec(p.lx.Peek().Kind)
		if !isBin || prec < minPrec {
			break
		}
		p.advance()
		right, ok := p.parseBinaryExpr(prec + 1)
		if !ok {
			return nil, false
		}
		left = &ast.Expr{Kind: ast.ExprBinary, Span: left.Span.Cover(right.Span), Data: &ast.BinaryData{
			Op: op, Left: left, Right: right,
		}}
	}
	return left, !p.failed()
}

func (p *Parser) parseUnaryExpr() (*ast.Expr, bool) {
	if !p.enter() {
		return nil, false
	}
	defer p.leave()

	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Bang, token.Minus:
		p.advance()
		operand, ok := p.parseUnaryExpr()
		if !ok {
			return nil, false
		}
		op := ast.UnaryNot
		if tok.Kind == token.Minus {
			op = ast.UnaryNeg
		}
		return &ast.Expr{Kind: ast.ExprUnary, Span: tok.Span.Cover(operand.Span), Data: &ast.UnaryData{
			Op: op, Operand: operand,
		}}, true
	case token.Amp:
		// заимствование прозрачно: строки в shell не копируются
		p.advance()
		if p.at(token.KwMut) {
			p.advance()
		}
		return p.parseUnaryExpr()
	case token.Star:
		p.err(diag.SynFeatureNotAllowed, "dereference is not supported")
		return nil, false
	case token.Pipe, token.OrOr:
		p.err(diag.SynFeatureNotAllowed, "closures are not supported")
		return nil, false
	}
	return p.parsePostfixExpr()
}

func (p *Parser) parsePostfixExpr() (*ast.Expr, bool) {
	e, ok := p.parsePrimaryExpr()
	if !ok {
		return nil, false
	}
	for !p.failed() {
		switch p.lx.Peek().Kind {
		case token.Dot:
			p.advance()
			nameTok, ok := p.expectIdent("expected method name after '.'")
			if !ok {
				return nil, false
			}
			if !p.at(token.LParen) {
				p.report(diag.SynFeatureNotAllowed, diag.SevError, nameTok.Span, "field access is not supported")
				return nil, false
			}
			args, closeTok, ok := p.parseArgs()
			if !ok {
				return nil, false
			}
			e = &ast.Expr{Kind: ast.ExprMethodCall, Span: e.Span.Cover(closeTok.Span), Data: &ast.MethodCallData{
				Receiver: e, Method: nameTok.Text, Args: args,
			}}
		case token.LBracket:
			p.advance()
			idx, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			closeTok, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' after index")
			if !ok {
				return nil, false
			}
			e = &ast.Expr{Kind: ast.ExprIndex, Span: e.Span.Cover(closeTok.Span), Data: &ast.IndexData{Object: e, Index: idx}}
		case token.Question:
			q := p.advance()
			e = &ast.Expr{Kind: ast.ExprTry, Span: e.Span.Cover(q.Span), Data: &ast.TryData{Operand: e}}
		case token.LParen:
			p.err(diag.SynFeatureNotAllowed, "only named functions can be called")
			return nil, false
		default:
			return e, true
		}
	}
	return nil, false
}

func (p *Parser) parsePrimaryExpr() (*ast.Expr, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		v, ok := p.parseU32(tok)
		if !ok {
			return nil, false
		}
		return &ast.Expr{Kind: ast.ExprLiteral, Span: tok.Span, Data: &ast.LiteralData{Kind: ast.LitU32, U32: v}}, true
	case token.StringLit:
		p.advance()
		return &ast.Expr{Kind: ast.ExprLiteral, Span: tok.Span, Data: &ast.LiteralData{Kind: ast.LitStr, Str: normalizeLiteral(tok.Text)}}, true
	case token.KwTrue, token.KwFalse:
		p.advance()
		return &ast.Expr{Kind: ast.ExprLiteral, Span: tok.Span, Data: &ast.LiteralData{Kind: ast.LitBool, Bool: tok.Kind == token.KwTrue}}, true
	case token.Ident:
		return p.parseNameExpr()
	case token.LParen:
		p.advance()
		if p.at(token.RParen) {
			p.err(diag.SynFeatureNotAllowed, "unit and tuple values are not supported")
			return nil, false
		}
		inner, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		if p.at(token.Comma) {
			p.err(diag.SynFeatureNotAllowed, "tuples are not supported")
			return nil, false
		}
		closeTok, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')'")
		if !ok {
			return nil, false
		}
		inner.Span = tok.Span.Cover(closeTok.Span)
		return inner, true
	case token.LBracket:
		p.advance()
		var elems []*ast.Expr
		for !p.at(token.RBracket) && !p.failed() {
			el, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			elems = append(elems, el)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		closeTok, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' to close array")
		if !ok {
			return nil, false
		}
		return &ast.Expr{Kind: ast.ExprArray, Span: tok.Span.Cover(closeTok.Span), Data: &ast.ArrayData{Elems: elems}}, true
	case token.LBrace:
		block, ok := p.parseBlock()
		if !ok {
			return nil, false
		}
		return &ast.Expr{Kind: ast.ExprBlock, Span: block.Span, Data: &ast.BlockData{Block: block}}, true
	case token.KwIf, token.KwMatch, token.KwLoop, token.KwWhile, token.KwFor:
		p.err(diag.SynFeatureNotAllowed, "'"+tok.Text+"' cannot be used as a value")
		return nil, false
	case token.Reserved:
		p.err(diag.SynFeatureNotAllowed, "'"+tok.Text+"' is not supported")
		return nil, false
	default:
		p.err(diag.SynExpectExpression, "expected expression, got "+describe(tok))
		return nil, false
	}
}

// parseNameExpr — переменная, путь `a::b::c(...)`, вызов `f(...)` или макрос `name!(...)`.
func (p *Parser) parseNameExpr() (*ast.Expr, bool) {
	first := p.advance()
	name := first.Text
	nameSpan := first.Span
	isPath := false
	for p.at(token.ColonColon) {
		p.advance()
		seg, ok := p.expectIdent("expected path segment after '::'")
		if !ok {
			return nil, false
		}
		name += "::" + seg.Text
		nameSpan = nameSpan.Cover(seg.Span)
		isPath = true
	}
	switch {
	case p.at(token.Bang) && !isPath:
		return p.parseMacro(first)
	case p.at(token.LParen):
		args, closeTok, ok := p.parseArgs()
		if !ok {
			return nil, false
		}
		return &ast.Expr{Kind: ast.ExprCall, Span: nameSpan.Cover(closeTok.Span), Data: &ast.CallData{
			Name: name, NameSpan: nameSpan, Args: args,
		}}, true
	case isPath:
		p.report(diag.SynFeatureNotAllowed, diag.SevError, nameSpan, "paths are only supported as call targets")
		return nil, false
	}
	return &ast.Expr{Kind: ast.ExprVariable, Span: first.Span, Data: &ast.VariableData{Name: name}}, true
}

// parseArgs разбирает `( expr, ... )`.
func (p *Parser) parseArgs() ([]*ast.Expr, token.Token, bool) {
	p.advance() // '('
	var args []*ast.Expr
	for !p.at(token.RParen) && !p.failed() {
		a, ok := p.parseExpr()
		if !ok {
			return nil, token.Token{}, false
		}
		args = append(args, a)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	closeTok, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close argument list")
	return args, closeTok, ok
}
