package lexer

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

type TokenType int

const (
	// Special
	ILLEGAL TokenType = iota
	EOF

	// Literals
	IDENTIFIER // table_name, column_title
	STRING     // 'value'
	NUMBER     // 123, -4, 1.23

	// Keywords
	SELECT
	DISTINCT
	FROM
	INNER
	JOIN
	ON
	WHERE
	AND
	ORDER
	BY
	ASC
	DESC
	TRUE
	FALSE
	NULL
	SHOW
	TABLES
	DESCRIBE

	// Operators & Punctuation
	ASTERISK  // *
	COMMA     // ,
	DOT       // .
	HASH      // #
	EQUALS    // =
	SEMICOLON // ;
)

var keywords = map[string]TokenType{
	"SELECT":   SELECT,
	"DISTINCT": DISTINCT,
	"FROM":     FROM,
	"INNER":    INNER,
	"JOIN":     JOIN,
	"ON":       ON,
	"WHERE":    WHERE,
	"AND":      AND,
	"ORDER":    ORDER,
	"BY":       BY,
	"ASC":      ASC,
	"DESC":     DESC,
	"TRUE":     TRUE,
	"FALSE":    FALSE,
	"NULL":     NULL,
	"SHOW":     SHOW,
	"TABLES":   TABLES,
	"DESCRIBE": DESCRIBE,
}

var names = map[TokenType]string{
	ILLEGAL:    "ILLEGAL",
	EOF:        "EOF",
	IDENTIFIER: "IDENTIFIER",
	STRING:     "STRING",
	NUMBER:     "NUMBER",
	ASTERISK:   "*",
	COMMA:      ",",
	DOT:        ".",
	HASH:       "#",
	EQUALS:     "=",
	SEMICOLON:  ";",
}

func init() {
	for word, tt := range keywords {
		names[tt] = word
	}
}

func (t TokenType) String() string {
	if name, ok := names[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

func (t Token) String() string {
	return fmt.Sprintf("Token(%s, %q)", t.Type, t.Literal)
}

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int
	column       int
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition += 1
	l.column++
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) NextToken() Token {
	var tok Token

	l.skipWhitespace()

	line, col := l.line, l.column

	switch l.ch {
	case '*':
		tok = newToken(ASTERISK, l.ch, line, col)
	case ',':
		tok = newToken(COMMA, l.ch, line, col)
	case '.':
		tok = newToken(DOT, l.ch, line, col)
	case '#':
		tok = newToken(HASH, l.ch, line, col)
	case '=':
		tok = newToken(EQUALS, l.ch, line, col)
	case ';':
		tok = newToken(SEMICOLON, l.ch, line, col)
	case '\'':
		lit, ok := l.readString()
		if !ok {
			return Token{Type: ILLEGAL, Literal: "'" + lit, Line: line, Column: col}
		}
		return Token{Type: STRING, Literal: lit, Line: line, Column: col}
	case '"':
		lit, ok := l.readQuotedIdentifier()
		if !ok {
			return Token{Type: ILLEGAL, Literal: `"` + lit, Line: line, Column: col}
		}
		// titles read from files are NFC too
		return Token{Type: IDENTIFIER, Literal: norm.NFC.String(lit), Line: line, Column: col}
	case 0:
		return Token{Type: EOF, Line: line, Column: col}
	default:
		if isLetter(l.ch) {
			lit := l.readIdentifier()
			return Token{Type: LookupIdent(lit), Literal: lit, Line: line, Column: col}
		} else if isDigit(l.ch) || (l.ch == '-' && isDigit(l.peekChar())) {
			return Token{Type: NUMBER, Literal: l.readNumber(), Line: line, Column: col}
		}
		tok = newToken(ILLEGAL, l.ch, line, col)
	}

	l.readChar()
	return tok
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		if l.ch == '\n' {
			l.line++
			l.column = 0
		}
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) readNumber() string {
	position := l.position
	if l.ch == '-' {
		l.readChar()
	}
	for isDigit(l.ch) {
		l.readChar()
	}
	// Support simple floats
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[position:l.position]
}

// readString reads a single quoted literal. Two consecutive quotes stand for
// one quote character.
func (l *Lexer) readString() (string, bool) {
	return l.readDelimited('\'')
}

func (l *Lexer) readQuotedIdentifier() (string, bool) {
	return l.readDelimited('"')
}

func (l *Lexer) readDelimited(quote byte) (string, bool) {
	var b strings.Builder
	for {
		l.readChar()
		switch l.ch {
		case 0:
			return b.String(), false
		case quote:
			if l.peekChar() == quote {
				l.readChar()
				b.WriteByte(quote)
				continue
			}
			// Consume the closing quote
			l.readChar()
			return b.String(), true
		case '\n':
			l.line++
			l.column = 0
		}
		b.WriteByte(l.ch)
	}
}

func newToken(tokenType TokenType, ch byte, line, col int) Token {
	return Token{Type: tokenType, Literal: string(ch), Line: line, Column: col}
}

func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[strings.ToUpper(ident)]; ok {
		return tok
	}
	return IDENTIFIER
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// Tokenize splits the entire input at once. The trailing EOF token is not
// included.
func Tokenize(input string) ([]Token, error) {
	l := New(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Type == EOF {
			break
		}
		if tok.Type == ILLEGAL {
			return nil, fmt.Errorf("illegal token at line %d, col %d: %s", tok.Line, tok.Column, tok.Literal)
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}
