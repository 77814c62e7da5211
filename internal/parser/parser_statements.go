package parser

import (
	"github.com/profiles/metaes/internal/ast"
	"github.com/profiles/metaes/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.VAR, token.LET, token.CONST:
		return p.parseVariableDeclaration()
	case token.FUNCTION:
		return p.parseFunctionDeclaration()
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement("")
	case token.DO:
		return p.parseDoWhileStatement("")
	case token.FOR:
		return p.parseForLikeStatement("")
	case token.BREAK:
		return p.parseBreakStatement()
	case token.CONTINUE:
		return p.parseContinueStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.THROW:
		return p.parseThrowStatement()
	case token.TRY:
		return p.parseTryStatement()
	case token.SEMICOLON:
		return nil
	case token.IDENT:
		if p.peekTokenIs(token.COLON) {
			return p.parseLabeledStatement()
		}
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLabeledStatement() ast.Statement {
	label := p.curToken
	p.nextToken() // consume ':'
	p.nextToken()
	var body ast.Statement
	switch p.curToken.Type {
	case token.WHILE:
		body = p.parseWhileStatement(label.Literal)
	case token.DO:
		body = p.parseDoWhileStatement(label.Literal)
	case token.FOR:
		body = p.parseForLikeStatement(label.Literal)
	default:
		body = p.parseStatement()
	}
	return &ast.LabeledStatement{Base: ast.Base{Loc: loc(label)}, Label: label.Literal, Body: body}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	t := p.curToken
	expr := p.parseExpression(LOWEST)
	stmt := &ast.ExpressionStatement{Base: ast.Base{Loc: loc(t)}, Expression: expr}
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseVariableDeclaration() ast.Statement {
	t := p.curToken
	decl := &ast.VariableDeclaration{Base: ast.Base{Loc: loc(t)}, DeclKind: t.Literal}
	for {
		if !p.expectPeek(token.IDENT) {
			return decl
		}
		d := ast.VariableDeclarator{ID: &ast.Identifier{Base: ast.Base{Loc: loc(p.curToken)}, Name: p.curToken.Literal}}
		if p.peekTokenIs(token.ASSIGN) {
			p.nextToken()
			p.nextToken()
			d.Init = p.parseExpression(ASSIGN)
		}
		decl.Declarations = append(decl.Declarations, d)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return decl
}

func (p *Parser) parseFunctionDeclaration() ast.Statement {
	t := p.curToken
	fn := &ast.FunctionNode{Base: ast.Base{Loc: loc(t)}, NodeKind: "FunctionDeclaration"}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	fn.Name = &ast.Identifier{Base: ast.Base{Loc: loc(p.curToken)}, Name: p.curToken.Literal}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	fn.Params = p.parseParamList()
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	fn.Body = p.parseBlockStatement()
	return fn
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	t := p.curToken // '{'
	block := &ast.BlockStatement{Base: ast.Base{Loc: loc(t)}}
	p.nextToken()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Body = append(block.Body, stmt)
		}
		p.nextToken()
	}
	return block
}

func (p *Parser) parseIfStatement() ast.Statement {
	t := p.curToken
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	test := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	p.nextToken()
	consequent := p.parseStatement()
	stmt := &ast.IfStatement{Base: ast.Base{Loc: loc(t)}, Test: test, Consequent: consequent}
	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		p.nextToken()
		stmt.Alternate = p.parseStatement()
	}
	return stmt
}

func (p *Parser) parseWhileStatement(label string) ast.Statement {
	t := p.curToken
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	test := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	p.nextToken()
	body := p.parseStatement()
	return &ast.WhileStatement{Base: ast.Base{Loc: loc(t)}, Test: test, Body: body, Label: label}
}

func (p *Parser) parseDoWhileStatement(label string) ast.Statement {
	t := p.curToken
	p.nextToken()
	body := p.parseStatement()
	if !p.expectPeek(token.WHILE) {
		return nil
	}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	test := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return &ast.DoWhileStatement{Base: ast.Base{Loc: loc(t)}, Body: body, Test: test, Label: label}
}

// parseForLikeStatement parses `for (...)`, dispatching to the
// classic C-style, for-of, or for-in form once the loop variable and
// its terminator keyword are known.
func (p *Parser) parseForLikeStatement(label string) ast.Statement {
	t := p.curToken
	if !p.expectPeek(token.LPAREN) {
		return nil
	}

	declKind := ""
	if p.peekTokenIs(token.VAR) || p.peekTokenIs(token.LET) || p.peekTokenIs(token.CONST) {
		p.nextToken()
		declKind = p.curToken.Literal
	}

	if declKind != "" && p.peekTokenIs(token.IDENT) {
		savedLexer := *p.l
		savedCur, savedPeek := p.curToken, p.peekToken
		p.nextToken()
		ident := &ast.Identifier{Base: ast.Base{Loc: loc(p.curToken)}, Name: p.curToken.Literal}
		if p.peekTokenIs(token.OF) || p.peekTokenIs(token.IN) {
			isOf := p.peekTokenIs(token.OF)
			p.nextToken()
			p.nextToken()
			right := p.parseExpression(LOWEST)
			if !p.expectPeek(token.RPAREN) {
				return nil
			}
			p.nextToken()
			body := p.parseStatement()
			if isOf {
				return &ast.ForOfStatement{Base: ast.Base{Loc: loc(t)}, DeclKind: declKind, Left: ident, Right: right, Body: body, Label: label}
			}
			return &ast.ForInStatement{Base: ast.Base{Loc: loc(t)}, DeclKind: declKind, Left: ident, Right: right, Body: body, Label: label}
		}
		// Not for-of/for-in: rewind and fall through to classic form.
		*p.l = savedLexer
		p.curToken, p.peekToken = savedCur, savedPeek
	}

	return p.parseClassicForStatement(t, label, declKind)
}

func (p *Parser) parseClassicForStatement(t token.Token, label, declKind string) ast.Statement {
	stmt := &ast.ForStatement{Base: ast.Base{Loc: loc(t)}, Label: label}

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	} else if declKind != "" {
		// curToken is already the decl keyword (var/let/const).
		stmt.Init = p.parseVariableDeclaration()
	} else {
		p.nextToken()
		stmt.Init = p.parseExpression(LOWEST)
		if !p.expectPeek(token.SEMICOLON) {
			return nil
		}
	}

	if !p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
		stmt.Test = p.parseExpression(LOWEST)
	}
	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}

	if !p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		stmt.Update = p.parseExpression(LOWEST)
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	p.nextToken()
	stmt.Body = p.parseStatement()
	return stmt
}

func (p *Parser) parseBreakStatement() ast.Statement {
	t := p.curToken
	stmt := &ast.BreakStatement{Base: ast.Base{Loc: loc(t)}}
	if p.peekTokenIs(token.IDENT) {
		p.nextToken()
		stmt.Label = p.curToken.Literal
	}
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseContinueStatement() ast.Statement {
	t := p.curToken
	stmt := &ast.ContinueStatement{Base: ast.Base{Loc: loc(t)}}
	if p.peekTokenIs(token.IDENT) {
		p.nextToken()
		stmt.Label = p.curToken.Literal
	}
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	t := p.curToken
	stmt := &ast.ReturnStatement{Base: ast.Base{Loc: loc(t)}}
	if !p.peekTokenIs(token.SEMICOLON) && !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		stmt.Argument = p.parseExpression(LOWEST)
	}
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseThrowStatement() ast.Statement {
	t := p.curToken
	p.nextToken()
	arg := p.parseExpression(LOWEST)
	stmt := &ast.ThrowStatement{Base: ast.Base{Loc: loc(t)}, Argument: arg}
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseTryStatement() ast.Statement {
	t := p.curToken
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt := &ast.TryStatement{Base: ast.Base{Loc: loc(t)}, Block: p.parseBlockStatement()}

	if p.peekTokenIs(token.CATCH) {
		p.nextToken()
		catchTok := p.curToken
		clause := &ast.CatchClause{Base: ast.Base{Loc: loc(catchTok)}}
		if p.peekTokenIs(token.LPAREN) {
			p.nextToken()
			if !p.expectPeek(token.IDENT) {
				return nil
			}
			clause.Param = &ast.Identifier{Base: ast.Base{Loc: loc(p.curToken)}, Name: p.curToken.Literal}
			if !p.expectPeek(token.RPAREN) {
				return nil
			}
		}
		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		clause.Body = p.parseBlockStatement()
		stmt.Handler = clause
	}

	if p.peekTokenIs(token.FINALLY) {
		p.nextToken()
		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		stmt.Finalizer = p.parseBlockStatement()
	}

	return stmt
}
