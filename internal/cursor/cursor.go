// Package cursor walks the rows of a table one at a time, the way a relational
// result set does.
package cursor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/leengari/gridtable/internal/grid"
)

var (
	ErrClosed        = errors.New("cursor closed")
	ErrNoRow         = errors.New("cursor not positioned on a row")
	ErrUnknownColumn = errors.New("unknown column")
)

// Cursor is a movable row position over a table. Position 0 is before the first
// row and Len()+1 is after the last one.
//
// A Cursor is stateful and must not be shared between goroutines.
type Cursor struct {
	table  *grid.Table
	pos    int
	closed bool
}

// New returns a cursor positioned before the first row of t.
func New(t *grid.Table) *Cursor {
	return &Cursor{table: t}
}

// Len returns the number of rows.
func (c *Cursor) Len() int { return c.table.RowCount() }

// Table returns the table the cursor walks.
func (c *Cursor) Table() *grid.Table { return c.table }

// Next moves one row forward and reports whether a row is now positioned.
// It returns false once the cursor is closed.
func (c *Cursor) Next() bool {
	if c.closed {
		return false
	}
	if c.pos <= c.Len() {
		c.pos++
	}
	return c.onRow()
}

// Previous moves one row back and reports whether a row is now positioned.
func (c *Cursor) Previous() bool {
	if c.closed {
		return false
	}
	if c.pos > 0 {
		c.pos--
	}
	return c.onRow()
}

// Absolute jumps to row i, counted from 1. Negative values count from the end,
// -1 being the last row. Zero moves before the first row; values past either
// end park the cursor on the matching sentinel.
func (c *Cursor) Absolute(i int) bool {
	if c.closed {
		return false
	}
	n := c.Len()
	switch {
	case i < 0:
		i = n + 1 + i
		if i < 0 {
			i = 0
		}
	case i > n:
		i = n + 1
	}
	c.pos = i
	return c.onRow()
}

// Relative moves n rows from the current position.
func (c *Cursor) Relative(n int) bool {
	if c.closed {
		return false
	}
	target := c.pos + n
	if target < 0 {
		target = 0
	}
	return c.Absolute(target)
}

// First jumps to the first row.
func (c *Cursor) First() bool { return c.Absolute(1) }

// Last jumps to the last row.
func (c *Cursor) Last() bool { return c.Absolute(-1) }

// BeforeFirst parks the cursor before the first row.
func (c *Cursor) BeforeFirst() {
	if !c.closed {
		c.pos = 0
	}
}

// AfterLast parks the cursor after the last row.
func (c *Cursor) AfterLast() {
	if !c.closed {
		c.pos = c.Len() + 1
	}
}

// IsBeforeFirst reports whether the cursor sits before the first row of a
// non-empty table.
func (c *Cursor) IsBeforeFirst() bool { return c.Len() > 0 && c.pos == 0 }

// IsAfterLast reports whether the cursor sits after the last row of a non-empty
// table.
func (c *Cursor) IsAfterLast() bool { return c.Len() > 0 && c.pos > c.Len() }

// IsFirst reports whether the cursor is on the first row.
func (c *Cursor) IsFirst() bool { return c.onRow() && c.pos == 1 }

// IsLast reports whether the cursor is on the last row. On a single-row table
// IsFirst and IsLast are both true.
func (c *Cursor) IsLast() bool { return c.onRow() && c.pos == c.Len() }

// Row returns the current row number counted from 1, or 0 when no row is
// positioned.
func (c *Cursor) Row() int {
	if !c.onRow() {
		return 0
	}
	return c.pos
}

// Columns returns the column count.
func (c *Cursor) Columns() int { return c.table.ColumnCount() }

// Value returns the element of the current row at the 1-based column ordinal.
func (c *Cursor) Value(ordinal int) (any, error) {
	if c.closed {
		return nil, ErrClosed
	}
	if !c.onRow() {
		return nil, ErrNoRow
	}
	if ordinal < 1 || ordinal > c.Columns() {
		return nil, fmt.Errorf("ordinal %d: %w", ordinal, ErrUnknownColumn)
	}
	v, _ := c.table.Value(c.pos-1, ordinal-1)
	return v, nil
}

// ValueByLabel returns the element of the current row in the column named label.
func (c *Cursor) ValueByLabel(label string) (any, error) {
	ordinal, err := c.FindColumn(label)
	if err != nil {
		return nil, err
	}
	return c.Value(ordinal)
}

// Values returns every element of the current row.
func (c *Cursor) Values() ([]any, error) {
	if c.closed {
		return nil, ErrClosed
	}
	if !c.onRow() {
		return nil, ErrNoRow
	}
	return c.table.Row(c.pos - 1).ValuesTo(c.Columns()), nil
}

// FindColumn maps a label to a 1-based ordinal. A column title printing as
// label wins; otherwise "c" followed by the zero-based column index is accepted.
func (c *Cursor) FindColumn(label string) (int, error) {
	for i, title := range c.table.Columns().Titles() {
		if title != nil && fmt.Sprint(title) == label {
			return i + 1, nil
		}
	}
	if rest, ok := strings.CutPrefix(label, "c"); ok {
		if idx, err := strconv.Atoi(rest); err == nil && idx >= 0 && idx < c.Columns() {
			return idx + 1, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", label, ErrUnknownColumn)
}

// Label returns the label of the column at the 1-based ordinal: its title when
// set, "c" plus the zero-based index otherwise.
func (c *Cursor) Label(ordinal int) string {
	if col := c.table.Column(ordinal - 1); col != nil && col.Title() != nil {
		return fmt.Sprint(col.Title())
	}
	return "c" + strconv.Itoa(ordinal-1)
}

// Close disables further movement. Later calls to Next return false.
func (c *Cursor) Close() error {
	c.closed = true
	return nil
}

// Closed reports whether Close was called.
func (c *Cursor) Closed() bool { return c.closed }

func (c *Cursor) onRow() bool {
	return c.pos >= 1 && c.pos <= c.Len()
}
