package parser

import (
	"fmt"
	"strconv"

	"github.com/leengari/gridtable/internal/parser/ast"
	"github.com/leengari/gridtable/internal/parser/lexer"
)

type Parser struct {
	tokens  []lexer.Token
	curPos  int
	curTok  lexer.Token
	peekTok lexer.Token
}

func New(tokens []lexer.Token) *Parser {
	p := &Parser{tokens: tokens, curPos: 0}
	// Read two tokens to set curTok and peekTok
	p.nextToken()
	p.nextToken()
	return p
}

// ParseString tokenizes and parses a single statement.
func ParseString(input string) (ast.Statement, error) {
	tokens, err := lexer.Tokenize(input)
	if err != nil {
		return nil, err
	}
	return New(tokens).Parse()
}

func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	if p.curPos < len(p.tokens) {
		p.peekTok = p.tokens[p.curPos]
		p.curPos++
	} else {
		p.peekTok = lexer.Token{Type: lexer.EOF}
	}
}

func (p *Parser) Parse() (ast.Statement, error) {
	var (
		stmt ast.Statement
		err  error
	)
	switch p.curTok.Type {
	case lexer.SELECT:
		stmt, err = p.parseSelect()
	case lexer.SHOW:
		stmt, err = p.parseShow()
	case lexer.DESCRIBE:
		stmt, err = p.parseDescribe()
	default:
		return nil, p.unexpected("SELECT, SHOW or DESCRIBE")
	}
	if err != nil {
		return nil, err
	}

	// Semicolon (Optional)
	if p.curTok.Type == lexer.SEMICOLON {
		p.nextToken()
	}
	if p.curTok.Type != lexer.EOF {
		return nil, p.unexpected("end of statement")
	}
	return stmt, nil
}

func (p *Parser) parseSelect() (*ast.SelectStatement, error) {
	stmt := &ast.SelectStatement{}

	// SELECT
	p.nextToken()

	if p.curTok.Type == lexer.DISTINCT {
		stmt.Distinct = true
		p.nextToken()
	}

	// Fields
	if p.curTok.Type == lexer.ASTERISK {
		stmt.Wildcard = true
		p.nextToken()
	} else {
		fields, err := p.parseColumnList()
		if err != nil {
			return nil, err
		}
		stmt.Fields = fields
	}

	// FROM
	if err := p.expect(lexer.FROM); err != nil {
		return nil, err
	}
	for {
		ref, err := p.parseTableRef()
		if err != nil {
			return nil, err
		}
		stmt.From = append(stmt.From, ref)
		if p.curTok.Type != lexer.COMMA {
			break
		}
		p.nextToken()
	}

	// [INNER] JOIN (Optional, repeatable)
	for p.curTok.Type == lexer.JOIN || p.curTok.Type == lexer.INNER {
		join, err := p.parseJoin()
		if err != nil {
			return nil, err
		}
		stmt.Joins = append(stmt.Joins, join)
	}

	// WHERE (Optional)
	if p.curTok.Type == lexer.WHERE {
		p.nextToken()
		conds, err := p.parseConditions()
		if err != nil {
			return nil, err
		}
		stmt.Where = conds
	}

	// ORDER BY (Optional)
	if p.curTok.Type == lexer.ORDER {
		p.nextToken()
		if err := p.expect(lexer.BY); err != nil {
			return nil, err
		}
		terms, err := p.parseOrderTerms()
		if err != nil {
			return nil, err
		}
		stmt.OrderBy = terms
	}

	return stmt, nil
}

func (p *Parser) parseShow() (*ast.ShowTablesStatement, error) {
	// SHOW
	p.nextToken()
	if err := p.expect(lexer.TABLES); err != nil {
		return nil, err
	}
	return &ast.ShowTablesStatement{}, nil
}

func (p *Parser) parseDescribe() (*ast.DescribeStatement, error) {
	// DESCRIBE
	p.nextToken()
	if p.curTok.Type != lexer.IDENTIFIER {
		return nil, p.unexpected("table name")
	}
	stmt := &ast.DescribeStatement{Table: p.identifier()}
	p.nextToken()
	return stmt, nil
}

func (p *Parser) parseTableRef() (*ast.TableRef, error) {
	if p.curTok.Type != lexer.IDENTIFIER {
		return nil, p.unexpected("table name")
	}
	ref := &ast.TableRef{Name: p.identifier()}
	p.nextToken()

	// Alias (Optional)
	if p.curTok.Type == lexer.IDENTIFIER {
		ref.Alias = p.curTok.Literal
		p.nextToken()
	}
	return ref, nil
}

func (p *Parser) parseJoin() (*ast.JoinClause, error) {
	if p.curTok.Type == lexer.INNER {
		p.nextToken()
	}
	if err := p.expect(lexer.JOIN); err != nil {
		return nil, err
	}

	ref, err := p.parseTableRef()
	if err != nil {
		return nil, err
	}
	join := &ast.JoinClause{Table: ref}

	// ON (Optional): a join without ON is a cartesian product
	if p.curTok.Type == lexer.ON {
		p.nextToken()
		conds, err := p.parseConditions()
		if err != nil {
			return nil, err
		}
		for _, c := range conds {
			if _, ok := c.Right.(*ast.ColumnRef); !ok {
				return nil, fmt.Errorf("join condition %s must compare two columns", c)
			}
		}
		join.On = conds
	}
	return join, nil
}

// parseConditions parses cond [AND cond]*
func (p *Parser) parseConditions() ([]*ast.BinaryExpression, error) {
	var conds []*ast.BinaryExpression
	for {
		cond, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		conds = append(conds, cond)
		if p.curTok.Type != lexer.AND {
			return conds, nil
		}
		p.nextToken()
	}
}

// parseCondition parses column = (column | literal)
func (p *Parser) parseCondition() (*ast.BinaryExpression, error) {
	left, err := p.parseColumnRef()
	if err != nil {
		return nil, err
	}
	if p.curTok.Type != lexer.EQUALS {
		return nil, p.unexpected("=")
	}
	op := p.curTok.Literal
	p.nextToken()

	var right ast.Expression
	if isIdentifierToken(p.curTok.Type) {
		right, err = p.parseColumnRef()
	} else {
		right, err = p.parseLiteral()
	}
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpression{Left: left, Operator: op, Right: right}, nil
}

func (p *Parser) parseOrderTerms() ([]*ast.OrderTerm, error) {
	var terms []*ast.OrderTerm
	for {
		col, err := p.parseColumnRef()
		if err != nil {
			return nil, err
		}
		term := &ast.OrderTerm{Column: col}
		switch p.curTok.Type {
		case lexer.ASC:
			p.nextToken()
		case lexer.DESC:
			term.Descending = true
			p.nextToken()
		}
		terms = append(terms, term)
		if p.curTok.Type != lexer.COMMA {
			return terms, nil
		}
		p.nextToken()
	}
}

func (p *Parser) parseColumnList() ([]*ast.ColumnRef, error) {
	var cols []*ast.ColumnRef
	for {
		col, err := p.parseColumnRef()
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
		if p.curTok.Type != lexer.COMMA {
			return cols, nil
		}
		p.nextToken()
	}
}

// parseColumnRef parses name, #n, table.name or table.#n
func (p *Parser) parseColumnRef() (*ast.ColumnRef, error) {
	ref := &ast.ColumnRef{}

	if p.curTok.Type == lexer.IDENTIFIER && p.peekTok.Type == lexer.DOT {
		ref.Table = p.curTok.Literal
		p.nextToken()
		p.nextToken()
	}

	switch p.curTok.Type {
	case lexer.IDENTIFIER:
		ref.Title = p.curTok.Literal
		p.nextToken()
	case lexer.HASH:
		p.nextToken()
		if p.curTok.Type != lexer.NUMBER {
			return nil, p.unexpected("column position")
		}
		idx, err := strconv.Atoi(p.curTok.Literal)
		if err != nil || idx < 0 {
			return nil, fmt.Errorf("invalid column position: %s", p.curTok.Literal)
		}
		ref.Index = idx
		ref.Positional = true
		p.nextToken()
	default:
		return nil, p.unexpected("column")
	}
	return ref, nil
}

func (p *Parser) parseLiteral() (*ast.Literal, error) {
	switch p.curTok.Type {
	case lexer.STRING:
		val := p.curTok.Literal
		p.nextToken()
		return &ast.Literal{TokenLiteralValue: val, Value: val, Kind: ast.LiteralString}, nil
	case lexer.NUMBER:
		valStr := p.curTok.Literal
		p.nextToken()
		// Try int
		if i, err := strconv.ParseInt(valStr, 10, 64); err == nil {
			return &ast.Literal{TokenLiteralValue: valStr, Value: i, Kind: ast.LiteralInt}, nil
		}
		// Try float
		if f, err := strconv.ParseFloat(valStr, 64); err == nil {
			return &ast.Literal{TokenLiteralValue: valStr, Value: f, Kind: ast.LiteralFloat}, nil
		}
		return nil, fmt.Errorf("invalid number: %s", valStr)
	case lexer.TRUE:
		p.nextToken()
		return &ast.Literal{TokenLiteralValue: "TRUE", Value: true, Kind: ast.LiteralBool}, nil
	case lexer.FALSE:
		p.nextToken()
		return &ast.Literal{TokenLiteralValue: "FALSE", Value: false, Kind: ast.LiteralBool}, nil
	case lexer.NULL:
		p.nextToken()
		return &ast.Literal{TokenLiteralValue: "NULL", Value: nil, Kind: ast.LiteralNull}, nil
	default:
		return nil, p.unexpected("literal")
	}
}

func (p *Parser) identifier() *ast.Identifier {
	return &ast.Identifier{TokenLiteralValue: p.curTok.Literal, Value: p.curTok.Literal}
}

func (p *Parser) expect(t lexer.TokenType) error {
	if p.curTok.Type != t {
		return p.unexpected(t.String())
	}
	p.nextToken()
	return nil
}
