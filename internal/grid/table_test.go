package grid_test

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/leengari/gridtable/internal/grid"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// newTestTable builds a rows x cols table whose elements are "r:c" strings.
func newTestTable(t *testing.T, rows, cols int) *grid.Table {
	t.Helper()
	table := grid.New("test")
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if err := table.SetValue(r, c, cellName(r, c)); err != nil {
				t.Fatalf("failed to set (%d,%d): %v", r, c, err)
			}
		}
	}
	return table
}

func cellName(r, c int) string {
	return string(rune('0'+r)) + ":" + string(rune('0'+c))
}

// =============================================================================
// COORDINATE ACCESS
// =============================================================================

func TestCellAt_CreatesStripesOnDemand(t *testing.T) {
	table := grid.New("grow")

	c, err := table.CellAt(2, 3)
	assert.NilError(t, err)
	assert.NilError(t, c.Set("x"))

	assert.Equal(t, table.RowCount(), 3)
	assert.Equal(t, table.ColumnCount(), 4)
	assert.Equal(t, table.CellCount(), 1)

	v, ok := table.Value(2, 3)
	assert.Assert(t, ok)
	assert.Equal(t, v, "x")

	_, ok = table.Value(0, 0)
	assert.Assert(t, !ok, "no cell should exist at (0,0)")
}

func TestCellAt_SameCoordinateSameCell(t *testing.T) {
	table := grid.New("same")

	a, err := table.CellAt(1, 1)
	assert.NilError(t, err)
	b, err := table.CellAt(1, 1)
	assert.NilError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, table.CellCount(), 1)
}

func TestCellAt_NegativeIndexRejectedWithoutMutation(t *testing.T) {
	table := grid.New("neg")

	_, err := table.CellAt(-1, 4)
	var idxErr *grid.IndexError
	assert.Assert(t, errors.As(err, &idxErr))
	assert.Equal(t, idxErr.Kind, "row")
	assert.Equal(t, idxErr.Index, -1)

	_, err = table.CellAt(4, -2)
	assert.Assert(t, errors.As(err, &idxErr))
	assert.Equal(t, idxErr.Kind, "column")

	assert.Equal(t, table.RowCount(), 0)
	assert.Equal(t, table.ColumnCount(), 0)
}

func TestCellAt_OwnedByExactlyOneRowAndColumn(t *testing.T) {
	table := newTestTable(t, 4, 3)

	for r := 0; r < 4; r++ {
		for c := 0; c < 3; c++ {
			cell, err := table.CellAt(r, c)
			assert.NilError(t, err)

			rows := table.Rows().StripesContaining(cell)
			cols := table.Columns().StripesContaining(cell)
			assert.Assert(t, is.Len(rows, 1))
			assert.Assert(t, is.Len(cols, 1))
			assert.Equal(t, rows[0], table.Row(r))
			assert.Equal(t, cols[0], table.Column(c))
		}
	}
}

func TestLocate_AllCoordinateCombinations(t *testing.T) {
	table := newTestTable(t, 3, 3)
	table.Row(1).SetTitle("second")
	table.Column(2).SetTitle("third")

	tests := []struct {
		name     string
		row, col grid.Ref
	}{
		{"int/int", grid.At(1), grid.At(2)},
		{"int/title", grid.At(1), grid.Titled("third")},
		{"title/int", grid.Titled("second"), grid.At(2)},
		{"title/title", grid.Titled("second"), grid.Titled("third")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := table.Locate(tt.row, tt.col)
			assert.NilError(t, err)
			assert.Equal(t, c.Get(), "1:2")
		})
	}
}

func TestLocate_UnknownTitle(t *testing.T) {
	table := newTestTable(t, 2, 2)

	_, err := table.Locate(grid.Titled("missing"), grid.At(0))
	assert.Assert(t, errors.Is(err, grid.ErrNotFound))
	assert.Equal(t, table.RowCount(), 2)
}

// =============================================================================
// STRUCTURAL MUTATION
// =============================================================================

func TestRemoveRow_ShiftsLaterRows(t *testing.T) {
	table := newTestTable(t, 5, 2)
	before := make([]*grid.Stripe, 5)
	for i := range before {
		before[i] = table.Row(i)
	}

	removed := table.RemoveRow(2)

	assert.DeepEqual(t, removed, []any{"2:0", "2:1"})
	assert.Equal(t, table.RowCount(), 4)
	for p := 3; p < 5; p++ {
		assert.Equal(t, table.Row(p-1), before[p])
		assert.Equal(t, before[p].Position(), p-1)
	}
	assert.Equal(t, before[2].Position(), -1)
	assert.Assert(t, !before[2].Attached())
}

func TestRemoveRow_CascadesCellsFromColumns(t *testing.T) {
	table := newTestTable(t, 3, 3)
	doomed, err := table.CellAt(1, 1)
	assert.NilError(t, err)

	table.RemoveRow(1)

	assert.Equal(t, table.CellCount(), 6)
	assert.Assert(t, !doomed.Valid())
	assert.Assert(t, doomed.Get() == nil)
	assert.Assert(t, is.Len(table.Columns().StripesContaining(doomed), 0))
	assert.DeepEqual(t, table.Column(1).ElementSlice(), []any{"0:1", "2:1"})
}

func TestRemoveColumn_ReturnsElements(t *testing.T) {
	table := newTestTable(t, 3, 3)

	removed := table.RemoveColumn(0)

	assert.DeepEqual(t, removed, []any{"0:0", "1:0", "2:0"})
	assert.Equal(t, table.ColumnCount(), 2)
	assert.DeepEqual(t, table.Row(0).ElementSlice(), []any{"0:1", "0:2"})
}

func TestRemove_OutOfRangeIsNil(t *testing.T) {
	table := newTestTable(t, 2, 2)

	assert.Assert(t, table.RemoveRow(7) == nil)
	assert.Assert(t, table.RemoveColumn(-1) == nil)
	assert.Assert(t, table.Row(9) == nil)
	assert.Assert(t, table.Columns().At(-3) == nil)
	assert.Equal(t, table.RowCount(), 2)
}

func TestInsertRow_PadsGap(t *testing.T) {
	table := newTestTable(t, 2, 1)

	s, err := table.InsertRow(5)
	assert.NilError(t, err)
	assert.Equal(t, s.Position(), 5)
	assert.Equal(t, table.RowCount(), 6)
	for i := 2; i < 5; i++ {
		assert.Assert(t, table.Row(i) != nil)
		assert.Equal(t, table.Row(i).CellCount(), 0)
	}

	_, err = table.InsertRow(-1)
	var idxErr *grid.IndexError
	assert.Assert(t, errors.As(err, &idxErr))
}

func TestInsertColumn_ShiftsRowPositions(t *testing.T) {
	table := newTestTable(t, 2, 2)

	_, err := table.InsertColumn(0)
	assert.NilError(t, err)

	assert.DeepEqual(t, table.Row(0).ElementSlice(), []any{nil, "0:0", "0:1"})
	v, ok := table.Value(1, 2)
	assert.Assert(t, ok)
	assert.Equal(t, v, "1:1")
}

func TestTranspose_SwapsRolesWithoutCopy(t *testing.T) {
	table := newTestTable(t, 2, 3)
	cell, err := table.CellAt(0, 2)
	assert.NilError(t, err)
	cells := table.CellCount()

	table.Transpose()

	assert.Equal(t, table.RowCount(), 3)
	assert.Equal(t, table.ColumnCount(), 2)
	assert.Equal(t, table.CellCount(), cells)
	moved, err := table.CellAt(2, 0)
	assert.NilError(t, err)
	assert.Equal(t, moved, cell)
	assert.DeepEqual(t, table.Row(2).ElementSlice(), []any{"0:2", "1:2"})
}

func TestClear_DiscardsEverything(t *testing.T) {
	table := newTestTable(t, 2, 2)
	table.SetName("named")
	table.Row(0).SetTitle("r0")
	cell, err := table.CellAt(0, 0)
	assert.NilError(t, err)
	row := table.Row(0)

	table.Clear()

	assert.Equal(t, table.Name(), "")
	assert.Equal(t, table.RowCount(), 0)
	assert.Equal(t, table.ColumnCount(), 0)
	assert.Equal(t, table.CellCount(), 0)
	assert.Assert(t, !cell.Valid())
	assert.ErrorIs(t, cell.Set("again"), grid.ErrStaleCell)
	assert.Assert(t, !row.Attached())

	fresh, err := table.CellAt(0, 0)
	assert.NilError(t, err)
	assert.Assert(t, fresh != cell)
	assert.Assert(t, !cell.Valid())
}

// =============================================================================
// BULK ACCESS
// =============================================================================

func TestElementMatrixAndList(t *testing.T) {
	table := grid.FromMatrix("m", [][]any{
		{1, 2, 3},
		{4},
	})

	assert.DeepEqual(t, table.ElementMatrix(), [][]any{{1, 2, 3}, {4, nil, nil}})
	assert.DeepEqual(t, table.ElementList(), []any{1, 2, 3, 4, nil, nil})
}

func TestTitles(t *testing.T) {
	table := newTestTable(t, 2, 2)
	table.Column(0).SetTitle("id")
	table.Column(1).SetTitle("id")

	assert.Equal(t, table.ColumnByTitle("id"), table.Column(0))
	assert.Assert(t, table.RowByTitle("id") == nil)
	assert.DeepEqual(t, table.Columns().Titles(), []any{"id", "id"})
}
