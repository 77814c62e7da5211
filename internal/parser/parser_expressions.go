package parser

import (
	"strconv"

	"github.com/profiles/metaes/internal/ast"
	"github.com/profiles/metaes/internal/token"
)

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Base: ast.Base{Loc: loc(p.curToken)}, Name: p.curToken.Literal}
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	v, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.errors = append(p.errors, "invalid number literal: "+p.curToken.Literal)
		return nil
	}
	return &ast.Literal{Base: ast.Base{Loc: loc(p.curToken)}, Value: v, Raw: p.curToken.Literal}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.Literal{Base: ast.Base{Loc: loc(p.curToken)}, Value: p.curToken.Literal, Raw: p.curToken.Literal}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.Literal{Base: ast.Base{Loc: loc(p.curToken)}, Value: p.curTokenIs(token.TRUE), Raw: p.curToken.Literal}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	return &ast.Literal{Base: ast.Base{Loc: loc(p.curToken)}, Value: nil, Raw: "null"}
}

func (p *Parser) parseUndefinedLiteral() ast.Expression {
	return &ast.Literal{Base: ast.Base{Loc: loc(p.curToken)}, Value: nil, Raw: "undefined"}
}

func (p *Parser) parseThisExpression() ast.Expression {
	return &ast.ThisExpression{Base: ast.Base{Loc: loc(p.curToken)}}
}

// parseGroupedOrArrow disambiguates `(expr)` from an arrow function's
// parameter list `(a, b) => expr`. It scans ahead: if the matching `)`
// is followed by `=>`, it parses an arrow function; otherwise it parses
// a parenthesized expression.
func (p *Parser) parseGroupedOrArrow() ast.Expression {
	if p.looksLikeArrowParams() {
		return p.parseArrowFunction()
	}
	p.nextToken()
	exp := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return exp
}

// looksLikeArrowParams decides whether the paren group starting at
// curToken (an LPAREN) is an arrow function's parameter list by
// scanning ahead to its matching RPAREN and checking for a following
// `=>`. The lexer is a plain value type, so its state (and the
// parser's one-token lookahead) can be saved and restored around the
// scan, leaving the parser exactly where it started.
func (p *Parser) looksLikeArrowParams() bool {
	savedLexer := *p.l
	savedCur, savedPeek := p.curToken, p.peekToken
	defer func() {
		*p.l = savedLexer
		p.curToken, p.peekToken = savedCur, savedPeek
	}()

	depth := 0
	for {
		if p.curTokenIs(token.EOF) {
			return false
		}
		if p.curTokenIs(token.LPAREN) {
			depth++
		} else if p.curTokenIs(token.RPAREN) {
			depth--
			if depth == 0 {
				return p.peekTokenIs(token.ARROW)
			}
		}
		p.nextToken()
	}
}

func (p *Parser) parseArrowFunction() ast.Expression {
	start := p.curToken
	params := p.parseParamList()
	if !p.expectPeek(token.ARROW) {
		return nil
	}
	return p.finishArrowFunction(start, params)
}

func (p *Parser) finishArrowFunction(start token.Token, params []ast.Pattern) ast.Expression {
	fn := &ast.FunctionNode{
		Base:     ast.Base{Loc: loc(start)},
		NodeKind: "ArrowFunctionExpression",
		Params:   params,
	}
	p.nextToken()
	if p.curTokenIs(token.LBRACE) {
		fn.Body = p.parseBlockStatement()
	} else {
		fn.ExprBody = p.parseExpression(ASSIGN)
	}
	return fn
}

// parseParamList parses `(a, b, ...rest)`. curToken must already be the
// opening LPAREN; it leaves curToken on the closing RPAREN.
func (p *Parser) parseParamList() []ast.Pattern {
	var params []ast.Pattern
	if !p.curTokenIs(token.LPAREN) {
		p.errors = append(p.errors, "expected '(' to start parameter list")
		return nil
	}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}
	p.nextToken()
	params = append(params, p.parseParam())
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		params = append(params, p.parseParam())
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return params
}

func (p *Parser) parseParam() ast.Pattern {
	if p.curTokenIs(token.SPREAD) {
		t := p.curToken
		p.nextToken()
		id := &ast.Identifier{Base: ast.Base{Loc: loc(p.curToken)}, Name: p.curToken.Literal}
		return &ast.RestElement{Base: ast.Base{Loc: loc(t)}, Argument: id}
	}
	return &ast.Identifier{Base: ast.Base{Loc: loc(p.curToken)}, Name: p.curToken.Literal}
}

func (p *Parser) parseArrayExpression() ast.Expression {
	start := p.curToken
	arr := &ast.ArrayExpression{Base: ast.Base{Loc: loc(start)}}
	if p.peekTokenIs(token.RBRACKET) {
		p.nextToken()
		return arr
	}
	p.nextToken()
	arr.Elements = append(arr.Elements, p.parseExpression(ASSIGN))
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		arr.Elements = append(arr.Elements, p.parseExpression(ASSIGN))
	}
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return arr
}

func (p *Parser) parseObjectExpression() ast.Expression {
	start := p.curToken
	obj := &ast.ObjectExpression{Base: ast.Base{Loc: loc(start)}}
	if p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		return obj
	}
	p.nextToken()
	obj.Properties = append(obj.Properties, p.parseObjectProperty())
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if p.peekTokenIs(token.RBRACE) {
			break
		}
		p.nextToken()
		obj.Properties = append(obj.Properties, p.parseObjectProperty())
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return obj
}

func (p *Parser) parseObjectProperty() ast.ObjectProperty {
	if p.curTokenIs(token.LBRACKET) {
		p.nextToken()
		key := p.parseExpression(LOWEST)
		if !p.expectPeek(token.RBRACKET) {
			return ast.ObjectProperty{}
		}
		if !p.expectPeek(token.COLON) {
			return ast.ObjectProperty{}
		}
		p.nextToken()
		value := p.parseExpression(ASSIGN)
		return ast.ObjectProperty{Key: key, Value: value, Computed: true}
	}

	var key ast.Expression
	switch p.curToken.Type {
	case token.STRING:
		key = &ast.Literal{Base: ast.Base{Loc: loc(p.curToken)}, Value: p.curToken.Literal, Raw: p.curToken.Literal}
	default:
		key = &ast.Identifier{Base: ast.Base{Loc: loc(p.curToken)}, Name: p.curToken.Literal}
	}
	if !p.expectPeek(token.COLON) {
		return ast.ObjectProperty{}
	}
	p.nextToken()
	value := p.parseExpression(ASSIGN)
	return ast.ObjectProperty{Key: key, Value: value}
}

func (p *Parser) parseFunctionExpression() ast.Expression {
	start := p.curToken
	fn := &ast.FunctionNode{Base: ast.Base{Loc: loc(start)}, NodeKind: "FunctionExpression"}
	if p.peekTokenIs(token.IDENT) {
		p.nextToken()
		fn.Name = &ast.Identifier{Base: ast.Base{Loc: loc(p.curToken)}, Name: p.curToken.Literal}
	}
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

func (p *Parser) parseNewExpression() ast.Expression {
	start := p.curToken
	p.nextToken()
	callee := p.parseExpression(CALL)
	n := &ast.NewExpression{Base: ast.Base{Loc: loc(start)}}
	if call, ok := callee.(*ast.CallExpression); ok {
		n.Callee = call.Callee
		n.Arguments = call.Arguments
		return n
	}
	n.Callee = callee
	return n
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	t := p.curToken
	p.nextToken()
	arg := p.parseExpression(PREFIX)
	return &ast.UnaryExpression{Base: ast.Base{Loc: loc(t)}, Operator: t.Literal, Argument: arg}
}

func (p *Parser) parseUpdatePrefix() ast.Expression {
	t := p.curToken
	p.nextToken()
	arg := p.parseExpression(PREFIX)
	return &ast.UpdateExpression{Base: ast.Base{Loc: loc(t)}, Operator: t.Literal, Argument: arg, Prefix: true}
}

func (p *Parser) parseUpdatePostfix(left ast.Expression) ast.Expression {
	t := p.curToken
	return &ast.UpdateExpression{Base: ast.Base{Loc: loc(t)}, Operator: t.Literal, Argument: left, Prefix: false}
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	t := p.curToken
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	return &ast.BinaryExpression{Base: ast.Base{Loc: loc(t)}, Operator: t.Literal, Left: left, Right: right}
}

func (p *Parser) parseLogicalExpression(left ast.Expression) ast.Expression {
	t := p.curToken
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	return &ast.LogicalExpression{Base: ast.Base{Loc: loc(t)}, Operator: t.Literal, Left: left, Right: right}
}

func (p *Parser) parseAssignmentExpression(left ast.Expression) ast.Expression {
	t := p.curToken
	p.nextToken()
	value := p.parseExpression(ASSIGN - 1)
	return &ast.AssignmentExpression{Base: ast.Base{Loc: loc(t)}, Operator: t.Literal, Target: left, Value: value}
}

func (p *Parser) parseConditionalExpression(test ast.Expression) ast.Expression {
	t := p.curToken
	p.nextToken()
	consequent := p.parseExpression(ASSIGN)
	if !p.expectPeek(token.COLON) {
		return nil
	}
	p.nextToken()
	alternate := p.parseExpression(ASSIGN)
	return &ast.ConditionalExpression{Base: ast.Base{Loc: loc(t)}, Test: test, Consequent: consequent, Alternate: alternate}
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	t := p.curToken
	call := &ast.CallExpression{Base: ast.Base{Loc: loc(t)}, Callee: callee}
	call.Arguments = p.parseExpressionList(token.RPAREN)
	return call
}

func (p *Parser) parseExpressionList(end token.Type) []ast.Expression {
	var list []ast.Expression
	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}
	p.nextToken()
	list = append(list, p.parseExpression(ASSIGN))
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(ASSIGN))
	}
	if !p.expectPeek(end) {
		return nil
	}
	return list
}

func (p *Parser) parseMemberExpression(obj ast.Expression) ast.Expression {
	t := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	prop := &ast.Identifier{Base: ast.Base{Loc: loc(p.curToken)}, Name: p.curToken.Literal}
	return &ast.MemberExpression{Base: ast.Base{Loc: loc(t)}, Object: obj, Property: prop}
}

func (p *Parser) parseComputedMemberExpression(obj ast.Expression) ast.Expression {
	t := p.curToken
	p.nextToken()
	prop := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return &ast.MemberExpression{Base: ast.Base{Loc: loc(t)}, Object: obj, Property: prop, Computed: true}
}
