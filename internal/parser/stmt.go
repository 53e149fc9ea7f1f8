package parser

import (
	"rash/internal/ast"
	"rash/internal/diag"
	"rash/internal/token"
)

func (p *Parser) parseBlock() (*ast.Block, bool) {
	openTok, ok := p.expect(token.LBrace, diag.SynExpectBlock, "expected '{'")
	if !ok {
		return nil, false
	}
	if !p.enter() {
		return nil, false
	}
	defer p.leave()

	block := &ast.Block{}
	for !p.at(token.EOF) && !p.at(token.RBrace) && !p.failed() {
		if p.at(token.Semicolon) {
			p.advance()
			continue
		}
		stmt, ok := p.parseStmt()
		if !ok {
			return nil, false
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	closeTok, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close block")
	if !ok {
		return nil, false
	}
	block.Span = openTok.Span.Cover(closeTok.Span)
	return block, true
}

func (p *Parser) parseStmt() (*ast.Stmt, bool) {
	switch tok := p.lx.Peek(); tok.Kind {
	case token.KwLet:
		return p.parseLetStmt()
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwMatch:
		return p.parseMatchStmt()
	case token.Hash, token.KwFor, token.KwWhile, token.KwLoop:
		return p.parseLoopStmt()
	case token.KwBreak, token.KwContinue:
		p.advance()
		kind, data := ast.StmtBreak, ast.StmtData(&ast.BreakData{})
		if tok.Kind == token.KwContinue {
			kind, data = ast.StmtContinue, &ast.ContinueData{}
		}
		if p.atOr(token.Ident, token.Underscore) || p.at(token.IntLit) {
			p.err(diag.SynFeatureNotAllowed, "labelled or valued "+tok.Text+" is not supported")
			return nil, false
		}
		p.eatSemicolon()
		return &ast.Stmt{Kind: kind, Span: tok.Span, Data: data}, true
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwFn:
		p.err(diag.SynFeatureNotAllowed, "nested functions are not supported")
		return nil, false
	case token.Reserved:
		p.report(diag.SynFeatureNotAllowed, diag.SevError, tok.Span, "'"+tok.Text+"' is not supported")
		return nil, false
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) eatSemicolon() {
	if p.at(token.Semicolon) {
		p.advance()
	}
}

func (p *Parser) parseLetStmt() (*ast.Stmt, bool) {
	letTok := p.advance()
	data := &ast.LetData{}
	if p.at(token.KwMut) {
		p.advance()
		data.Mutable = true
	}
	if p.at(token.LParen) {
		p.err(diag.SynFeatureNotAllowed, "destructuring let is not supported")
		return nil, false
	}
	nameTok, ok := p.expectIdent("expected variable name after 'let'")
	if !ok {
		return nil, false
	}
	data.Name, data.NameSpan = nameTok.Text, nameTok.Span
	if p.at(token.Colon) {
		p.advance()
		if data.Type, ok = p.parseType(); !ok {
			return nil, false
		}
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in let statement"); !ok {
		return nil, false
	}
	if data.Value, ok = p.parseExpr(); !ok {
		return nil, false
	}
	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after let statement")
	if !ok {
		return nil, false
	}
	return &ast.Stmt{Kind: ast.StmtLet, Span: letTok.Span.Cover(semi.Span), Data: data}, true
}

func (p *Parser) parseIfStmt() (*ast.Stmt, bool) {
	ifTok := p.advance()
	if p.at(token.KwLet) {
		p.err(diag.SynFeatureNotAllowed, "'if let' is not supported; use match")
		return nil, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	then, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	data := &ast.IfData{Cond: cond, Then: then}
	end := then.Span
	if p.at(token.KwElse) {
		p.advance()
		if p.at(token.KwIf) {
			nested, ok := p.parseIfStmt()
			if !ok {
				return nil, false
			}
			data.Else = &ast.Block{Stmts: []*ast.Stmt{nested}, Span: nested.Span}
		} else if data.Else, ok = p.parseBlock(); !ok {
			return nil, false
		}
		end = data.Else.Span
	}
	return &ast.Stmt{Kind: ast.StmtIf, Span: ifTok.Span.Cover(end), Data: data}, true
}

func (p *Parser) parseMatchStmt() (*ast.Stmt, bool) {
	matchTok := p.advance()
	scrutinee, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.LBrace, diag.SynExpectBlock, "expected '{' after match scrutinee"); !ok {
		return nil, false
	}
	data := &ast.MatchData{Scrutinee: scrutinee}
	for !p.at(token.RBrace) && !p.at(token.EOF) && !p.failed() {
		pat, ok := p.parsePattern()
		if !ok {
			return nil, false
		}
		if p.at(token.KwIf) {
			p.err(diag.SynFeatureNotAllowed, "match guards are not supported")
			return nil, false
		}
		if _, ok := p.expect(token.FatArrow, diag.SynUnexpectedToken, "expected '=>' after pattern"); !ok {
			return nil, false
		}
		var body *ast.Block
		braced := p.at(token.LBrace)
		if braced {
			if body, ok = p.parseBlock(); !ok {
				return nil, false
			}
		} else {
			stmt, ok := p.parseArmExpr()
			if !ok {
				return nil, false
			}
			body = &ast.Block{Stmts: []*ast.Stmt{stmt}, Span: stmt.Span}
		}
		data.Arms = append(data.Arms, ast.MatchArm{Pattern: pat, Body: body, Span: pat.Span.Cover(body.Span)})
		if p.at(token.Comma) {
			p.advance()
		} else if !braced && !p.at(token.RBrace) {
			p.err(diag.SynUnexpectedToken, "expected ',' after match arm")
			return nil, false
		}
	}
	closeTok, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close match")
	if !ok {
		return nil, false
	}
	return &ast.Stmt{Kind: ast.StmtMatch, Span: matchTok.Span.Cover(closeTok.Span), Data: data}, true
}

// parseArmExpr — тело ветки без фигурных скобок: выражение, break, continue или return.
func (p *Parser) parseArmExpr() (*ast.Stmt, bool) {
	switch tok := p.lx.Peek(); tok.Kind {
	case token.KwBreak:
		p.advance()
		return &ast.Stmt{Kind: ast.StmtBreak, Span: tok.Span, Data: &ast.BreakData{}}, true
	case token.KwContinue:
		p.advance()
		return &ast.Stmt{Kind: ast.StmtContinue, Span: tok.Span, Data: &ast.ContinueData{}}, true
	case token.KwReturn:
		p.advance()
		data := &ast.ReturnData{}
		sp := tok.Span
		if !p.atOr(token.Comma, token.RBrace) {
			v, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			data.Value = v
			sp = sp.Cover(v.Span)
		}
		return &ast.Stmt{Kind: ast.StmtReturn, Span: sp, Data: data}, true
	}
	e, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	return &ast.Stmt{Kind: ast.StmtExpr, Span: e.Span, Data: &ast.ExprStmtData{Expr: e}}, true
}

func (p *Parser) parseLoopStmt() (*ast.Stmt, bool) {
	attrs, ok := p.parseAttributes()
	if !ok {
		return nil, false
	}
	bound, ok := p.loopBound(attrs)
	if !ok {
		return nil, false
	}
	start := p.lx.Peek().Span
	if len(attrs) > 0 {
		start = attrs[0].Span
	}
	switch tok := p.lx.Peek(); tok.Kind {
	case token.KwFor:
		p.advance()
		pat, ok := p.parsePattern()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.KwIn, diag.SynUnexpectedToken, "expected 'in' after for pattern"); !ok {
			return nil, false
		}
		iter, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		body, ok := p.parseBlock()
		if !ok {
			return nil, false
		}
		return &ast.Stmt{Kind: ast.StmtFor, Span: start.Cover(body.Span), Data: &ast.ForData{
			Pattern: pat, Iter: iter, Body: body, MaxIterations: bound,
		}}, true
	case token.KwWhile:
		p.advance()
		if p.at(token.KwLet) {
			p.err(diag.SynFeatureNotAllowed, "'while let' is not supported")
			return nil, false
		}
		cond, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		body, ok := p.parseBlock()
		if !ok {
			return nil, false
		}
		return &ast.Stmt{Kind: ast.StmtWhile, Span: start.Cover(body.Span), Data: &ast.WhileData{
			Cond: cond, Body: body, MaxIterations: bound,
		}}, true
	case token.KwLoop:
		p.advance()
		body, ok := p.parseBlock()
		if !ok {
			return nil, false
		}
		cond := &ast.Expr{Kind: ast.ExprLiteral, Span: tok.Span, Data: &ast.LiteralData{Kind: ast.LitBool, Bool: true}}
		return &ast.Stmt{Kind: ast.StmtWhile, Span: start.Cover(body.Span), Data: &ast.WhileData{
			Cond: cond, Body: body, MaxIterations: bound,
		}}, true
	default:
		p.err(diag.SynBadAttribute, "attributes inside functions are only allowed on loops")
		return nil, false
	}
}

func (p *Parser) parseReturnStmt() (*ast.Stmt, bool) {
	retTok := p.advance()
	data := &ast.ReturnData{}
	sp := retTok.Span
	if !p.atOr(token.Semicolon, token.RBrace, token.EOF) {
		v, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		data.Value = v
		sp = sp.Cover(v.Span)
	}
	if p.at(token.Semicolon) {
		sp = sp.Cover(p.advance().Span)
	}
	return &ast.Stmt{Kind: ast.StmtReturn, Span: sp, Data: data}, true
}

// parseExprStmt разбирает выражение-оператор и присваивания `x = e`, `x += e`.
// Точка с запятой обязательна, кроме хвостового выражения блока.
func (p *Parser) parseExprStmt() (*ast.Stmt, bool) {
	if p.at(token.KwIf) || p.at(token.KwMatch) {
		p.err(diag.SynFeatureNotAllowed, "if and match are statements, not expressions")
		return nil, false
	}
	e, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if p.at(token.Assign) || p.lx.Peek().IsCompoundAssign() {
		return p.parseAssignment(e)
	}
	sp := e.Span
	switch {
	case p.at(token.Semicolon):
		sp = sp.Cover(p.advance().Span)
	case p.at(token.RBrace), e.Kind == ast.ExprBlock:
	default:
		p.err(diag.SynExpectSemicolon, "expected ';' after expression")
		return nil, false
	}
	return &ast.Stmt{Kind: ast.StmtExpr, Span: sp, Data: &ast.ExprStmtData{Expr: e}}, true
}

func (p *Parser) parseAssignment(target *ast.Expr) (*ast.Stmt, bool) {
	opTok := p.advance()
	if target.Kind != ast.ExprVariable {
		p.report(diag.SynUnexpectedToken, diag.SevError, target.Span, "only variables can be assigned")
		return nil, false
	}
	value, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	name := target.Variable().Name
	if opTok.Kind != token.Assign {
		value = &ast.Expr{Kind: ast.ExprBinary, Span: target.Span.Cover(value.Span), Data: &ast.BinaryData{
			Op: compoundOp(opTok.Kind), Left: target, Right: value,
		}}
	}
	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after assignment")
	if !ok {
		return nil, false
	}
	return &ast.Stmt{Kind: ast.StmtLet, Span: target.Span.Cover(semi.Span), Data: &ast.LetData{
		Name: name, NameSpan: target.Span, Value: value, Reassign: true,
	}}, true
}
