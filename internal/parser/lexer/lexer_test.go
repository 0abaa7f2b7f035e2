package lexer

import (
	"testing"
)

func TestNextToken(t *testing.T) {
	input := `SELECT DISTINCT u.username, o.#2 FROM users u
JOIN orders ON u.id = o.user_id WHERE o.amount = -1.5 AND u."e mail" = 'it''s'
ORDER BY o.amount desc;`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{SELECT, "SELECT"},
		{DISTINCT, "DISTINCT"},
		{IDENTIFIER, "u"},
		{DOT, "."},
		{IDENTIFIER, "username"},
		{COMMA, ","},
		{IDENTIFIER, "o"},
		{DOT, "."},
		{HASH, "#"},
		{NUMBER, "2"},
		{FROM, "FROM"},
		{IDENTIFIER, "users"},
		{IDENTIFIER, "u"},
		{JOIN, "JOIN"},
		{IDENTIFIER, "orders"},
		{ON, "ON"},
		{IDENTIFIER, "u"},
		{DOT, "."},
		{IDENTIFIER, "id"},
		{EQUALS, "="},
		{IDENTIFIER, "o"},
		{DOT, "."},
		{IDENTIFIER, "user_id"},
		{WHERE, "WHERE"},
		{IDENTIFIER, "o"},
		{DOT, "."},
		{IDENTIFIER, "amount"},
		{EQUALS, "="},
		{NUMBER, "-1.5"},
		{AND, "AND"},
		{IDENTIFIER, "u"},
		{DOT, "."},
		{IDENTIFIER, "e mail"},
		{EQUALS, "="},
		{STRING, "it's"},
		{ORDER, "ORDER"},
		{BY, "BY"},
		{IDENTIFIER, "o"},
		{DOT, "."},
		{IDENTIFIER, "amount"},
		{DESC, "desc"},
		{SEMICOLON, ";"},
		{EOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%s, got=%s",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestTokenPositions(t *testing.T) {
	l := New("SELECT *\n  FROM t")

	want := []struct{ line, col int }{{1, 1}, {1, 8}, {2, 3}, {2, 8}}
	for i, w := range want {
		tok := l.NextToken()
		if tok.Line != w.line || tok.Column != w.col {
			t.Errorf("token %d (%s): expected %d:%d, got %d:%d", i, tok.Literal, w.line, w.col, tok.Line, tok.Column)
		}
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"illegal character", "SELECT * FROM t WHERE a.x = 1 ?"},
		{"unterminated string", "SELECT * FROM t WHERE a.x = 'open"},
		{"unterminated identifier", `SELECT t."open FROM t`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Tokenize(tt.input); err == nil {
				t.Fatalf("expected error for %q", tt.input)
			}
		})
	}
}

func TestQuotedIdentifierIsNFC(t *testing.T) {
	tokens, err := Tokenize("SELECT \"cafe\u0301\" FROM t")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[1].Type != IDENTIFIER || tokens[1].Literal != "caf\u00e9" {
		t.Fatalf("expected composed identifier, got %s %q", tokens[1].Type, tokens[1].Literal)
	}
}
