// Package parser implements a recursive-descent / Pratt parser that
// turns token streams from internal/lexer into the closed ast.Node
// variant set internal/interp dispatches on, so the interpreter is
// runnable end-to-end from source strings.
package parser

import (
	"fmt"

	"github.com/profiles/metaes/internal/ast"
	"github.com/profiles/metaes/internal/lexer"
	"github.com/profiles/metaes/internal/token"
)

// Precedence levels, lowest to highest.
const (
	_ int = iota
	LOWEST
	ASSIGN      // = += -= ...
	TERNARY     // ?:
	NULLISH     // ??
	LOGIC_OR    // ||
	LOGIC_AND   // &&
	BIT_OR      // |
	BIT_XOR     // ^
	BIT_AND     // &
	EQUALS      // == != === !==
	LESSGREATER // < > <= >=
	SHIFT       // << >> >>>
	SUM         // + -
	PRODUCT     // * / %
	EXPONENT    // **
	PREFIX      // -x !x ++x
	POSTFIX     // x++ x--
	CALL        // f(x)
	MEMBER      // x.y x[y]
)

var precedences = map[token.Type]int{
	token.ASSIGN: ASSIGN, token.PLUS_EQ: ASSIGN, token.MINUS_EQ: ASSIGN,
	token.STAR_EQ: ASSIGN, token.SLASH_EQ: ASSIGN, token.PERCENT_EQ: ASSIGN,
	token.SHL_EQ: ASSIGN, token.SHR_EQ: ASSIGN, token.USHR_EQ: ASSIGN,
	token.AND_EQ: ASSIGN, token.OR_EQ: ASSIGN, token.XOR_EQ: ASSIGN,
	token.QUESTION: TERNARY,
	token.NULLISH:  NULLISH,
	token.OR_OR:    LOGIC_OR,
	token.AND_AND:  LOGIC_AND,
	token.PIPE:     BIT_OR,
	token.CARET:    BIT_XOR,
	token.AMP:      BIT_AND,
	token.EQ:       EQUALS, token.NOT_EQ: EQUALS, token.STRICT_EQ: EQUALS, token.STRICT_NOT_EQ: EQUALS,
	token.LT: LESSGREATER, token.GT: LESSGREATER, token.LT_EQ: LESSGREATER, token.GT_EQ: LESSGREATER,
	token.SHL: SHIFT, token.SHR: SHIFT, token.USHR: SHIFT,
	token.PLUS: SUM, token.MINUS: SUM,
	token.STAR: PRODUCT, token.SLASH: PRODUCT, token.PERCENT: PRODUCT,
	token.STAR_STAR: EXPONENT,
	token.INC:       POSTFIX, token.DEC: POSTFIX,
	token.LPAREN:   CALL,
	token.DOT:      MEMBER,
	token.LBRACKET: MEMBER,
}

var assignOps = map[token.Type]bool{
	token.ASSIGN: true, token.PLUS_EQ: true, token.MINUS_EQ: true,
	token.STAR_EQ: true, token.SLASH_EQ: true, token.PERCENT_EQ: true,
	token.SHL_EQ: true, token.SHR_EQ: true, token.USHR_EQ: true,
	token.AND_EQ: true, token.OR_EQ: true, token.XOR_EQ: true,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser consumes a Lexer and produces an *ast.Program.
type Parser struct {
	l      *lexer.Lexer
	errors []string

	curToken  token.Token
	peekToken token.Token

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = map[token.Type]prefixParseFn{}
	p.infixParseFns = map[token.Type]infixParseFn{}

	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.NUMBER, p.parseNumberLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.TRUE, p.parseBooleanLiteral)
	p.registerPrefix(token.FALSE, p.parseBooleanLiteral)
	p.registerPrefix(token.NULL, p.parseNullLiteral)
	p.registerPrefix(token.UNDEFINED, p.parseUndefinedLiteral)
	p.registerPrefix(token.THIS, p.parseThisExpression)
	p.registerPrefix(token.LPAREN, p.parseGroupedOrArrow)
	p.registerPrefix(token.LBRACKET, p.parseArrayExpression)
	p.registerPrefix(token.LBRACE, p.parseObjectExpression)
	p.registerPrefix(token.FUNCTION, p.parseFunctionExpression)
	p.registerPrefix(token.NEW, p.parseNewExpression)
	p.registerPrefix(token.BANG, p.parseUnaryExpression)
	p.registerPrefix(token.MINUS, p.parseUnaryExpression)
	p.registerPrefix(token.PLUS, p.parseUnaryExpression)
	p.registerPrefix(token.TILDE, p.parseUnaryExpression)
	p.registerPrefix(token.INC, p.parseUpdatePrefix)
	p.registerPrefix(token.DEC, p.parseUpdatePrefix)

	for _, t := range []token.Type{
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT, token.STAR_STAR,
		token.EQ, token.NOT_EQ, token.STRICT_EQ, token.STRICT_NOT_EQ,
		token.LT, token.GT, token.LT_EQ, token.GT_EQ,
		token.SHL, token.SHR, token.USHR, token.AMP, token.PIPE, token.CARET,
	} {
		p.registerInfix(t, p.parseBinaryExpression)
	}
	p.registerInfix(token.AND_AND, p.parseLogicalExpression)
	p.registerInfix(token.OR_OR, p.parseLogicalExpression)
	p.registerInfix(token.NULLISH, p.parseLogicalExpression)
	for t := range assignOps {
		p.registerInfix(t, p.parseAssignmentExpression)
	}
	p.registerInfix(token.LPAREN, p.parseCallExpression)
	p.registerInfix(token.DOT, p.parseMemberExpression)
	p.registerInfix(token.LBRACKET, p.parseComputedMemberExpression)
	p.registerInfix(token.QUESTION, p.parseConditionalExpression)
	p.registerInfix(token.INC, p.parseUpdatePostfix)
	p.registerInfix(token.DEC, p.parseUpdatePostfix)

	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) registerPrefix(t token.Type, fn prefixParseFn) { p.prefixParseFns[t] = fn }
func (p *Parser) registerInfix(t token.Type, fn infixParseFn)   { p.infixParseFns[t] = fn }

func (p *Parser) Errors() []string { return p.errors }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.Type) {
	p.errors = append(p.errors, fmt.Sprintf("line %d: expected next token to be %s, got %s (%q) instead",
		p.peekToken.Loc.Line, t, p.peekToken.Type, p.peekToken.Literal))
}

func (p *Parser) noPrefixParseFnError(t token.Token) {
	p.errors = append(p.errors, fmt.Sprintf("line %d: no prefix parse function for %s (%q) found",
		t.Loc.Line, t.Type, t.Literal))
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

// ParseProgram parses the full token stream into an *ast.Program.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Body = append(prog.Body, stmt)
		}
		p.nextToken()
	}
	return prog
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	left := prefix()

	for !p.peekTokenIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func loc(t token.Token) token.Location { return t.Loc }
