package engine

import (
	"log/slog"

	"github.com/leengari/gridtable/internal/catalog"
	"github.com/leengari/gridtable/internal/grid"
	"github.com/leengari/gridtable/internal/parser/ast"
	"github.com/leengari/gridtable/internal/query/selection"
)

// participant is a table of a statement under the name the statement uses.
type participant struct {
	ref   *ast.TableRef
	table *grid.Table
}

// compiler turns a parsed SELECT into a selection over catalog tables.
type compiler struct {
	snap  *catalog.Snapshot
	parts []participant
}

func compileSelect(stmt *ast.SelectStatement, snap *catalog.Snapshot, name string) (selection.Descriptor, error) {
	c := &compiler{snap: snap}
	sel := selection.New().Named(name)

	for _, ref := range stmt.From {
		t, err := c.add(ref)
		if err != nil {
			return selection.Descriptor{}, err
		}
		sel.From(t)
	}

	for _, join := range stmt.Joins {
		t, err := c.add(join.Table)
		if err != nil {
			return selection.Descriptor{}, err
		}
		sel.InnerJoin(t)
		for _, cond := range join.On {
			pred, err := c.condition(cond)
			if err != nil {
				return selection.Descriptor{}, err
			}
			sel.On(pred)
		}
	}

	if stmt.Wildcard {
		sel.AllColumns()
	} else {
		cols := make([]*grid.Stripe, 0, len(stmt.Fields))
		for _, f := range stmt.Fields {
			col, err := c.column(f)
			if err != nil {
				return selection.Descriptor{}, err
			}
			cols = append(cols, col)
		}
		sel.Columns(cols...)
	}

	for _, cond := range stmt.Where {
		pred, err := c.condition(cond)
		if err != nil {
			return selection.Descriptor{}, err
		}
		sel.Where(pred)
	}

	for _, term := range stmt.OrderBy {
		col, err := c.column(term.Column)
		if err != nil {
			return selection.Descriptor{}, err
		}
		dir := selection.Ascending
		if term.Descending {
			dir = selection.Descending
		}
		sel.OrderBy(col, dir)
	}

	if stmt.Distinct {
		sel.Distinct()
	}
	return sel.Descriptor(), nil
}

func (c *compiler) add(ref *ast.TableRef) (*grid.Table, error) {
	t := c.snap.Table(ref.Name.Value)
	if t == nil {
		return nil, newUnknownTable(ref.Name.Value)
	}
	for _, p := range c.parts {
		if p.table == t {
			// the same stripes can not tell both sides apart
			slog.Debug("Table joined with itself; its columns resolve to the first occurrence",
				slog.String("table", t.Name()),
			)
			break
		}
	}
	c.parts = append(c.parts, participant{ref: ref, table: t})
	return t, nil
}

// condition compiles column = column into an Equality and column = literal
// into a ValueEquals.
func (c *compiler) condition(cond *ast.BinaryExpression) (selection.Predicate, error) {
	left, err := c.column(cond.Left.(*ast.ColumnRef))
	if err != nil {
		return nil, err
	}
	switch right := cond.Right.(type) {
	case *ast.ColumnRef:
		col, err := c.column(right)
		if err != nil {
			return nil, err
		}
		return selection.Eq(left, col), nil
	case *ast.Literal:
		return selection.Is(left, right.Value), nil
	}
	return nil, newUnknownColumn("", cond.Right.String(), "unsupported operand")
}

// column resolves a qualified or bare reference. A bare title matches the first
// participant carrying it; a bare position refers to the first participant.
func (c *compiler) column(ref *ast.ColumnRef) (*grid.Stripe, error) {
	if ref.Table != "" {
		p, ok := c.lookup(ref.Table)
		if !ok {
			return nil, newUnknownColumn(ref.Table, ref.String(), "table not part of the statement")
		}
		if col := pick(p.table, ref); col != nil {
			return col, nil
		}
		return nil, newUnknownColumn(ref.Table, ref.String(), "no such column")
	}

	if ref.Positional {
		if len(c.parts) > 0 {
			if col := pick(c.parts[0].table, ref); col != nil {
				return col, nil
			}
		}
		return nil, newUnknownColumn("", ref.String(), "no such column")
	}

	for _, p := range c.parts {
		if col := pick(p.table, ref); col != nil {
			return col, nil
		}
	}
	return nil, newUnknownColumn("", ref.String(), "no such column")
}

// lookup finds a participant by alias, then by table name.
func (c *compiler) lookup(name string) (participant, bool) {
	for _, p := range c.parts {
		if p.ref.Alias == name {
			return p, true
		}
	}
	for _, p := range c.parts {
		if p.ref.Name.Value == name {
			return p, true
		}
	}
	return participant{}, false
}

func pick(t *grid.Table, ref *ast.ColumnRef) *grid.Stripe {
	if ref.Positional {
		return t.Column(ref.Index)
	}
	return t.ColumnByTitle(ref.Title)
}
