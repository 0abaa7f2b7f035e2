package ast

import (
	"bytes"
	"fmt"
	"strings"
)

// Node is the base interface for all AST nodes
type Node interface {
	TokenLiteral() string
	String() string
}

// Statement represents a standalone statement (SELECT, SHOW, DESCRIBE)
type Statement interface {
	Node
	statementNode()
}

// Expression represents a value or operation
type Expression interface {
	Node
	expressionNode()
}

// Identifier represents a table name
type Identifier struct {
	TokenLiteralValue string // The token literal (e.g. "users")
	Value             string // The value (e.g. "users")
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.TokenLiteralValue }
func (i *Identifier) String() string       { return i.Value }

// ColumnRef names a column either by title (users.email) or by zero-based
// position (users.#2). Table is empty when the reference is unqualified.
type ColumnRef struct {
	Table      string
	Title      string
	Index      int
	Positional bool
}

func (c *ColumnRef) expressionNode()      {}
func (c *ColumnRef) TokenLiteral() string { return c.String() }
func (c *ColumnRef) String() string {
	col := c.Title
	if c.Positional {
		col = fmt.Sprintf("#%d", c.Index)
	} else if strings.ContainsAny(col, " .#") {
		col = fmt.Sprintf("%q", col)
	}
	if c.Table == "" {
		return col
	}
	return c.Table + "." + col
}

// LiteralKind classifies literal values
type LiteralKind int

const (
	LiteralString LiteralKind = iota
	LiteralInt
	LiteralFloat
	LiteralBool
	LiteralNull
)

// Literal represents a fixed value (string, number, boolean, NULL)
type Literal struct {
	TokenLiteralValue string
	Value             any // string, int64, float64, bool or nil
	Kind              LiteralKind
}

func (l *Literal) expressionNode()      {}
func (l *Literal) TokenLiteral() string { return l.TokenLiteralValue }
func (l *Literal) String() string {
	if l.Kind == LiteralString {
		return "'" + strings.ReplaceAll(l.TokenLiteralValue, "'", "''") + "'"
	}
	return l.TokenLiteralValue
}

// BinaryExpression: Left Operator Right (e.g. users.id = orders.user_id)
type BinaryExpression struct {
	Left     Expression
	Operator string
	Right    Expression
}

func (e *BinaryExpression) expressionNode()      {}
func (e *BinaryExpression) TokenLiteral() string { return e.Operator }
func (e *BinaryExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left.String(), e.Operator, e.Right.String())
}

// TableRef is a table in FROM or JOIN with an optional alias
type TableRef struct {
	Name  *Identifier
	Alias string
}

// Ref returns the name the rest of the statement uses for the table.
func (t *TableRef) Ref() string {
	if t.Alias != "" {
		return t.Alias
	}
	return t.Name.Value
}

func (t *TableRef) String() string {
	if t.Alias != "" {
		return t.Name.Value + " " + t.Alias
	}
	return t.Name.Value
}

// JoinClause: JOIN table [ON a = b AND ...]
type JoinClause struct {
	Table *TableRef
	On    []*BinaryExpression
}

// OrderTerm: column [ASC|DESC]
type OrderTerm struct {
	Column     *ColumnRef
	Descending bool
}

// SelectStatement: SELECT [DISTINCT] cols FROM t [JOIN u ON ...] [WHERE ...] [ORDER BY ...]
type SelectStatement struct {
	Distinct bool
	Wildcard bool
	Fields   []*ColumnRef
	From     []*TableRef
	Joins    []*JoinClause
	Where    []*BinaryExpression
	OrderBy  []*OrderTerm
}

func (s *SelectStatement) statementNode()       {}
func (s *SelectStatement) TokenLiteral() string { return "SELECT" }
func (s *SelectStatement) String() string {
	var out bytes.Buffer
	out.WriteString("SELECT ")
	if s.Distinct {
		out.WriteString("DISTINCT ")
	}
	if s.Wildcard {
		out.WriteString("*")
	}
	for i, f := range s.Fields {
		out.WriteString(f.String())
		if i < len(s.Fields)-1 {
			out.WriteString(", ")
		}
	}
	out.WriteString(" FROM ")
	for i, t := range s.From {
		out.WriteString(t.String())
		if i < len(s.From)-1 {
			out.WriteString(", ")
		}
	}
	for _, j := range s.Joins {
		out.WriteString(" JOIN ")
		out.WriteString(j.Table.String())
		writeConditions(&out, " ON ", j.On)
	}
	writeConditions(&out, " WHERE ", s.Where)
	for i, o := range s.OrderBy {
		if i == 0 {
			out.WriteString(" ORDER BY ")
		} else {
			out.WriteString(", ")
		}
		out.WriteString(o.Column.String())
		if o.Descending {
			out.WriteString(" DESC")
		}
	}
	return out.String()
}

func writeConditions(out *bytes.Buffer, keyword string, conds []*BinaryExpression) {
	for i, c := range conds {
		if i == 0 {
			out.WriteString(keyword)
		} else {
			out.WriteString(" AND ")
		}
		out.WriteString(c.String())
	}
}

// ShowTablesStatement: SHOW TABLES
type ShowTablesStatement struct{}

func (s *ShowTablesStatement) statementNode()       {}
func (s *ShowTablesStatement) TokenLiteral() string { return "SHOW" }
func (s *ShowTablesStatement) String() string       { return "SHOW TABLES" }

// DescribeStatement: DESCRIBE table
type DescribeStatement struct {
	Table *Identifier
}

func (s *DescribeStatement) statementNode()       {}
func (s *DescribeStatement) TokenLiteral() string { return "DESCRIBE" }
func (s *DescribeStatement) String() string       { return "DESCRIBE " + s.Table.String() }
