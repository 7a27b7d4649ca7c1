package lexer

import "testing"

func TestNextTokenFunctionSignature(t *testing.T) {
	input := `fn f() -> i32 { 1 + 2 * 3 }`

	tests := []struct {
		typ     TokenType
		literal string
	}{
		{FN, "fn"},
		{WHITESPACE, " "},
		{IDENT, "f"},
		{LPAREN, "("},
		{RPAREN, ")"},
		{WHITESPACE, " "},
		{ARROW, "->"},
		{WHITESPACE, " "},
		{IDENT, "i32"},
		{WHITESPACE, " "},
		{LBRACE, "{"},
		{WHITESPACE, " "},
		{NUMBER, "1"},
		{WHITESPACE, " "},
		{PLUS, "+"},
		{WHITESPACE, " "},
		{NUMBER, "2"},
		{WHITESPACE, " "},
		{STAR, "*"},
		{WHITESPACE, " "},
		{NUMBER, "3"},
		{WHITESPACE, " "},
		{RBRACE, "}"},
		{EOF, ""},
	}

	l := New(input)

	for i, want := range tests {
		tok := l.NextToken()
		if tok.Type != want.typ {
			t.Fatalf("token[%d] type = %s, want %s (literal %q)", i, tok.Type, want.typ, tok.Literal)
		}

		if tok.Literal != want.literal {
			t.Fatalf("token[%d] literal = %q, want %q", i, tok.Literal, want.literal)
		}
	}
}

func TestNextTokenOperators(t *testing.T) {
	input := `== != <= >= << >> && ||`

	want := []TokenType{EQ, NE, LE, GE, SHL, SHR, AND, OR, EOF}

	l := New(input)

	for i, typ := range want {
		tok := l.NextToken()
		for tok.Type == WHITESPACE {
			tok = l.NextToken()
		}

		if tok.Type != typ {
			t.Fatalf("token[%d] type = %s, want %s", i, tok.Type, typ)
		}
	}
}

func TestNextTokenComments(t *testing.T) {
	l := New("// a line comment\n/* a block\ncomment */fn")

	tok := l.NextToken()
	if tok.Type != LINE_COMMENT {
		t.Fatalf("type = %s, want LINE_COMMENT", tok.Type)
	}

	tok = l.NextToken()
	if tok.Type != WHITESPACE {
		t.Fatalf("type = %s, want WHITESPACE", tok.Type)
	}

	tok = l.NextToken()
	if tok.Type != BLOCK_COMMENT {
		t.Fatalf("type = %s, want BLOCK_COMMENT", tok.Type)
	}

	tok = l.NextToken()
	if tok.Type != FN {
		t.Fatalf("type = %s, want FN", tok.Type)
	}
}
