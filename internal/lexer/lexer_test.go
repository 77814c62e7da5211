package lexer

import (
	"testing"

	"github.com/profiles/metaes/internal/token"
)

func TestNextTokenBasics(t *testing.T) {
	input := `let x = 1 + 2; if (x >= 3) { x++ } else { x-- }`

	expected := []token.Type{
		token.LET, token.IDENT, token.ASSIGN, token.NUMBER, token.PLUS, token.NUMBER, token.SEMICOLON,
		token.IF, token.LPAREN, token.IDENT, token.GT_EQ, token.NUMBER, token.RPAREN,
		token.LBRACE, token.IDENT, token.INC, token.RBRACE,
		token.ELSE, token.LBRACE, token.IDENT, token.DEC, token.RBRACE,
		token.EOF,
	}

	l := New(input)
	for i, want := range expected {
		got := l.NextToken()
		if got.Type != want {
			t.Fatalf("token %d: got %s, want %s (literal %q)", i, got.Type, want, got.Literal)
		}
	}
}

func TestNextTokenStringsAndComments(t *testing.T) {
	input := `"hello\nworld" // a comment
	/* block */ 'single'`

	l := New(input)
	tok1 := l.NextToken()
	if tok1.Type != token.STRING || tok1.Literal != "hello\nworld" {
		t.Fatalf("unexpected token: %+v", tok1)
	}
	tok2 := l.NextToken()
	if tok2.Type != token.STRING || tok2.Literal != "single" {
		t.Fatalf("unexpected token: %+v", tok2)
	}
	if eof := l.NextToken(); eof.Type != token.EOF {
		t.Fatalf("expected EOF, got %+v", eof)
	}
}

func TestNextTokenNullish(t *testing.T) {
	l := New(`a ?? b; a?.b; a === b; a !== b; a >>> b`)
	want := []token.Type{
		token.IDENT, token.NULLISH, token.IDENT, token.SEMICOLON,
		token.IDENT, token.QUESTION, token.DOT, token.IDENT, token.SEMICOLON,
		token.IDENT, token.STRICT_EQ, token.IDENT, token.SEMICOLON,
		token.IDENT, token.STRICT_NOT_EQ, token.IDENT, token.SEMICOLON,
		token.IDENT, token.USHR, token.IDENT,
	}
	for i, w := range want {
		got := l.NextToken()
		if got.Type != w {
			t.Fatalf("token %d: got %s, want %s", i, got.Type, w)
		}
	}
}
