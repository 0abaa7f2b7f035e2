package grid_test

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/leengari/gridtable/internal/grid"
)

func TestSetElements_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		values []any
	}{
		{"empty", []any{}},
		{"single", []any{"a"}},
		{"mixed", []any{1, "two", 3.0, true}},
		{"with nil", []any{"x", nil, "z"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := grid.New("rt")
			row := table.Rows().Append()

			assert.NilError(t, row.SetElements(tt.values...))
			assert.DeepEqual(t, row.ElementSlice(), tt.values)
		})
	}
}

func TestSetElements_ReplacesPreviousContent(t *testing.T) {
	table := grid.FromMatrix("t", [][]any{
		{"a", "b", "c", "d"},
		{"e", "f", "g", "h"},
	})

	assert.NilError(t, table.Row(0).SetElements("x", "y"))

	assert.DeepEqual(t, table.Row(0).ElementSlice(), []any{"x", "y"})
	assert.DeepEqual(t, table.Row(1).ElementSlice(), []any{"e", "f", "g", "h"})
	assert.DeepEqual(t, table.Column(3).ElementSlice(), []any{nil, "h"})
	assert.Equal(t, table.CellCount(), 6)
}

func TestElements_IsLiveView(t *testing.T) {
	table := grid.FromMatrix("live", [][]any{{"a", "b"}})
	view := table.Row(0).Elements()

	first := collect(view)
	assert.NilError(t, table.SetValue(0, 2, "c"))
	second := collect(view)

	assert.DeepEqual(t, first, []any{"a", "b"})
	assert.DeepEqual(t, second, []any{"a", "b", "c"})
}

func TestElements_StopsEarly(t *testing.T) {
	table := grid.FromMatrix("stop", [][]any{{1, 2, 3, 4}})

	var seen []any
	for v := range table.Row(0).Elements() {
		seen = append(seen, v)
		if len(seen) == 2 {
			break
		}
	}
	assert.DeepEqual(t, seen, []any{1, 2})
}

func TestStripeCellAt_Negative(t *testing.T) {
	table := grid.New("neg")
	row := table.Rows().Append()

	_, err := row.CellAt(-1)
	var idxErr *grid.IndexError
	assert.Assert(t, errors.As(err, &idxErr))
	assert.Equal(t, table.ColumnCount(), 0)
}

func TestStripeCellAt_GrowsOppositeIndex(t *testing.T) {
	table := grid.New("grow")
	col := table.Columns().Append()

	c, err := col.CellAt(3)
	assert.NilError(t, err)
	assert.NilError(t, c.Set("deep"))

	assert.Equal(t, table.RowCount(), 4)
	assert.Equal(t, col.Len(), 4)
	assert.DeepEqual(t, col.ElementSlice(), []any{nil, nil, nil, "deep"})
}

func TestUnregister_Idempotent(t *testing.T) {
	table := grid.FromMatrix("idem", [][]any{{"a", "b"}, {"c", "d"}})
	cell, err := table.CellAt(0, 1)
	assert.NilError(t, err)
	row := table.Row(0)

	row.Unregister(cell)
	cellsAfterFirst := table.CellCount()
	row.Unregister(cell)

	assert.Equal(t, table.CellCount(), cellsAfterFirst)
	assert.Equal(t, cellsAfterFirst, 3)
	assert.Assert(t, !row.Contains(cell))
	assert.Assert(t, !cell.Valid())
	assert.Assert(t, is.Len(table.Rows().StripesContaining(cell), 0))
	assert.Assert(t, is.Len(table.Columns().StripesContaining(cell), 0))
	assert.DeepEqual(t, table.Column(1).ElementSlice(), []any{nil, "d"})
}

func TestRegister_MovesCellBetweenRows(t *testing.T) {
	table := grid.FromMatrix("reg", [][]any{{"a", "b"}, {"c"}})
	cell, err := table.CellAt(0, 1)
	assert.NilError(t, err)

	// A second row owner keeps the cell alive when the first one lets go.
	assert.NilError(t, table.Row(1).Register(cell))
	table.Row(0).Unregister(cell)

	assert.Assert(t, cell.Valid())
	assert.DeepEqual(t, table.Row(1).ElementSlice(), []any{"c", "b"})
	assert.DeepEqual(t, table.Row(0).ElementSlice(), []any{"a"})
}

func TestRegister_Rejections(t *testing.T) {
	table := grid.FromMatrix("a", [][]any{{"a", "b"}, {"c", "d"}})
	other := grid.FromMatrix("b", [][]any{{"z"}})

	foreign, err := other.CellAt(0, 0)
	assert.NilError(t, err)
	assert.ErrorIs(t, table.Row(0).Register(foreign), grid.ErrForeignCell)

	occupied, err := table.CellAt(1, 0)
	assert.NilError(t, err)
	assert.ErrorIs(t, table.Row(0).Register(occupied), grid.ErrOccupied)

	removed := table.Row(1)
	removed.Remove()
	assert.ErrorIs(t, removed.Register(occupied), grid.ErrDetachedStripe)
	assert.ErrorIs(t, removed.SetElements(1), grid.ErrDetachedStripe)
}

func TestRemove_ViaStripe(t *testing.T) {
	table := grid.FromMatrix("rm", [][]any{{1}, {2}, {3}})
	middle := table.Row(1)

	middle.Remove()
	middle.Remove()

	assert.Equal(t, table.RowCount(), 2)
	assert.Assert(t, !table.Rows().Remove(middle))
	assert.DeepEqual(t, table.Column(0).ElementSlice(), []any{1, 3})
}

func TestCells_InPositionOrder(t *testing.T) {
	table := grid.FromMatrix("cells", [][]any{{"a", nil, "c"}})

	cells := table.Row(0).Cells()
	assert.Assert(t, is.Len(cells, 3))
	assert.Equal(t, cells[0].Get(), "a")
	assert.Assert(t, cells[1].HasElement(nil))
	assert.Assert(t, cells[2].HasElement("c"))
}

func TestStripeStack_ReordersWithoutTouchingCells(t *testing.T) {
	table := grid.FromMatrix("stack", [][]any{{"a"}, {"b"}, {"c"}})
	first := table.Row(0)
	st := table.Rows().Stack()

	// swap rows 0 and 2 through the holding area
	st.PushIndex(0)
	st.PushIndex(2)
	st.PopIndex(0)
	st.PopIndex(2)

	assert.Equal(t, st.Held(), 0)
	assert.Equal(t, table.Row(2), first)
	assert.Equal(t, first.Position(), 2)
	assert.DeepEqual(t, table.Column(0).ElementSlice(), []any{"c", "b", "a"})
}

func collect(seq func(func(any) bool)) []any {
	var out []any
	for v := range seq {
		out = append(out, v)
	}
	return out
}
