package grid

import (
	"fmt"
	"strings"
)

// Table is a row index and a column index sharing one cell arena.
//
// A Table performs no locking. Callers sharing a table across goroutines must
// serialize access to the whole table themselves.
type Table struct {
	name  string
	arena *arena
	rows  *StripeIndex
	cols  *StripeIndex
}

// New creates an empty table.
func New(name string) *Table {
	t := &Table{name: name}
	t.reset()
	return t
}

// FromMatrix creates a table holding values row by row.
func FromMatrix(name string, values [][]any) *Table {
	t := New(name)
	for _, row := range values {
		t.AppendRow(row...)
	}
	return t
}

func (t *Table) reset() {
	t.arena = newArena()
	t.rows = newStripeIndex(t)
	t.cols = newStripeIndex(t)
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// SetName replaces the table name.
func (t *Table) SetName(name string) { t.name = name }

// Rows returns the row index.
func (t *Table) Rows() *StripeIndex { return t.rows }

// Columns returns the column index.
func (t *Table) Columns() *StripeIndex { return t.cols }

// RowCount returns the number of rows.
func (t *Table) RowCount() int { return t.rows.Len() }

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int { return t.cols.Len() }

// CellCount returns the number of live cells.
func (t *Table) CellCount() int { return t.arena.live }

// Row returns the row at i, or nil when out of range.
func (t *Table) Row(i int) *Stripe { return t.rows.At(i) }

// Column returns the column at i, or nil when out of range.
func (t *Table) Column(i int) *Stripe { return t.cols.At(i) }

// RowByTitle returns the first row titled v, or nil.
func (t *Table) RowByTitle(v any) *Stripe { return t.rows.ByTitle(v) }

// ColumnByTitle returns the first column titled v, or nil.
func (t *Table) ColumnByTitle(v any) *Stripe { return t.cols.ByTitle(v) }

// IsColumn reports whether s is currently a column of t.
func (t *Table) IsColumn(s *Stripe) bool { return s != nil && s.index == t.cols }

// IsRow reports whether s is currently a row of t.
func (t *Table) IsRow(s *Stripe) bool { return s != nil && s.index == t.rows }

// CellAt returns the cell at (row, col), creating rows, columns and the cell on
// demand. Both indices are validated before anything is created.
func (t *Table) CellAt(row, col int) (Cell, error) {
	if row < 0 {
		return Cell{}, &IndexError{Op: "cell", Kind: "row", Index: row, Size: t.rows.Len()}
	}
	if col < 0 {
		return Cell{}, &IndexError{Op: "cell", Kind: "column", Index: col, Size: t.cols.Len()}
	}
	t.rows.ensure(row + 1)
	return t.rows.stripes[row].CellAt(col)
}

// Value returns the element at (row, col) without creating anything.
func (t *Table) Value(row, col int) (any, bool) {
	r := t.rows.At(row)
	if r == nil {
		return nil, false
	}
	c, ok := r.Peek(col)
	if !ok {
		return nil, false
	}
	return c.Get(), true
}

// SetValue writes v at (row, col), growing the table as needed.
func (t *Table) SetValue(row, col int, v any) error {
	c, err := t.CellAt(row, col)
	if err != nil {
		return err
	}
	return c.Set(v)
}

// AppendRow adds a row holding values.
func (t *Table) AppendRow(values ...any) *Stripe {
	s := t.rows.Append()
	// cannot fail: s is attached and positions are non-negative
	_ = s.SetElements(values...)
	return s
}

// AppendColumn adds a column holding values.
func (t *Table) AppendColumn(values ...any) *Stripe {
	s := t.cols.Append()
	_ = s.SetElements(values...)
	return s
}

// InsertRow creates an empty row at i.
func (t *Table) InsertRow(i int) (*Stripe, error) { return t.rows.InsertAt(i) }

// InsertColumn creates an empty column at i.
func (t *Table) InsertColumn(i int) (*Stripe, error) { return t.cols.InsertAt(i) }

// RemoveRow removes row i and returns its elements, or nil when out of range.
func (t *Table) RemoveRow(i int) []any {
	return removeStripe(t.rows, i)
}

// RemoveColumn removes column i and returns its elements, or nil when out of range.
func (t *Table) RemoveColumn(i int) []any {
	return removeStripe(t.cols, i)
}

func removeStripe(x *StripeIndex, i int) []any {
	s := x.At(i)
	if s == nil {
		return nil
	}
	values := s.ElementSlice()
	x.RemoveAt(i)
	return values
}

// Transpose swaps the roles of the row and column indices. No cell is copied.
func (t *Table) Transpose() {
	t.rows, t.cols = t.cols, t.rows
}

// Clear removes every row, column, title and cell, and the table name.
// Cells obtained before the call become stale.
func (t *Table) Clear() {
	for _, x := range []*StripeIndex{t.rows, t.cols} {
		for _, s := range x.stripes {
			s.index = nil
			s.pos = -1
		}
	}
	t.arena.discard()
	t.reset()
	t.name = ""
}

// ElementMatrix returns every element row by row; each row has ColumnCount entries.
func (t *Table) ElementMatrix() [][]any {
	n := t.cols.Len()
	out := make([][]any, t.rows.Len())
	for i, r := range t.rows.stripes {
		out[i] = r.ValuesTo(n)
	}
	return out
}

// ElementList returns every element flattened in row-major order.
func (t *Table) ElementList() []any {
	n := t.cols.Len()
	out := make([]any, 0, n*t.rows.Len())
	for _, r := range t.rows.stripes {
		out = append(out, r.ValuesTo(n)...)
	}
	return out
}

// Locate resolves a cell from any combination of positional and titled
// coordinates. Positional refs grow the table like CellAt; titled refs must
// match an existing stripe.
func (t *Table) Locate(row, col Ref) (Cell, error) {
	r, err := row.resolve(t.rows)
	if err != nil {
		return Cell{}, err
	}
	c, err := col.resolve(t.cols)
	if err != nil {
		return Cell{}, err
	}
	return t.CellAt(r, c)
}

func (t *Table) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Table(%s %dx%d)", t.name, t.rows.Len(), t.cols.Len())
	for _, r := range t.rows.stripes {
		b.WriteString("\n  ")
		b.WriteString(r.String())
	}
	return b.String()
}

func (t *Table) cell(id cellID) Cell {
	return Cell{arena: t.arena, id: id}
}

// detach removes id from every stripe of both indices and frees it.
func (t *Table) detach(id cellID) {
	for _, x := range []*StripeIndex{t.rows, t.cols} {
		for s := range x.owners[id] {
			delete(s.cells, id)
		}
		delete(x.owners, id)
	}
	t.arena.release(id)
}

// Ref addresses a row or column either by position or by title.
type Ref struct {
	pos     int
	title   any
	byTitle bool
}

// At refers to the stripe at position i.
func At(i int) Ref { return Ref{pos: i} }

// Titled refers to the first stripe whose title equals v.
func Titled(v any) Ref { return Ref{title: v, byTitle: true} }

func (r Ref) resolve(x *StripeIndex) (int, error) {
	if !r.byTitle {
		return r.pos, nil
	}
	s := x.ByTitle(r.title)
	if s == nil {
		return -1, fmt.Errorf("%s %v: %w", x.kind(), r.title, ErrNotFound)
	}
	return s.pos, nil
}

func (r Ref) String() string {
	if r.byTitle {
		return fmt.Sprintf("%v", r.title)
	}
	return fmt.Sprintf("#%d", r.pos)
}
