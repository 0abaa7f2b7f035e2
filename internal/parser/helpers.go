package parser

import (
	"fmt"

	"github.com/leengari/gridtable/internal/parser/lexer"
)

// isIdentifierToken checks if a token starts a column reference
func isIdentifierToken(t lexer.TokenType) bool {
	return t == lexer.IDENTIFIER || t == lexer.HASH
}

// unexpected reports the current token against what the grammar expected
func (p *Parser) unexpected(expected string) error {
	if p.curTok.Type == lexer.EOF {
		return fmt.Errorf("expected %s, got end of input", expected)
	}
	return fmt.Errorf("expected %s, got %q at line %d, col %d",
		expected, p.curTok.Literal, p.curTok.Line, p.curTok.Column)
}
