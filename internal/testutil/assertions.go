package testutil

import (
	"testing"

	"github.com/leengari/gridtable/internal/grid"
)

// AssertRowCount checks if the result has the expected number of rows
func AssertRowCount(t *testing.T, table *grid.Table, expected int, context string) {
	t.Helper()
	if actual := table.RowCount(); actual != expected {
		t.Errorf("%s: expected %d rows, got %d", context, expected, actual)
	}
}

// AssertColumnCount checks if the result has the expected number of columns
func AssertColumnCount(t *testing.T, table *grid.Table, expected int, context string) {
	t.Helper()
	if actual := table.ColumnCount(); actual != expected {
		t.Errorf("%s: expected %d columns, got %d", context, expected, actual)
	}
}

// AssertColumnExists checks if a column titled title exists
func AssertColumnExists(t *testing.T, table *grid.Table, title any, context string) {
	t.Helper()
	if table.ColumnByTitle(title) == nil {
		t.Errorf("%s: expected column '%v' to exist", context, title)
	}
}

// AssertValue checks the element at (row, col)
func AssertValue(t *testing.T, table *grid.Table, row, col int, expected any, context string) {
	t.Helper()
	actual, _ := table.Value(row, col)
	if !grid.Equal(actual, expected) {
		t.Errorf("%s: expected %v at (%d,%d), got %v", context, expected, row, col, actual)
	}
}

// AssertNoSharedCells checks that no cell of derived is reachable from source
func AssertNoSharedCells(t *testing.T, source, derived *grid.Table, context string) {
	t.Helper()
	for _, row := range derived.Rows().All() {
		for _, cell := range row.Cells() {
			if len(source.Rows().StripesContaining(cell)) > 0 || len(source.Columns().StripesContaining(cell)) > 0 {
				t.Errorf("%s: cell %v is shared with %s", context, cell, source.Name())
			}
		}
	}
}

// AssertNoError checks that an error is nil
func AssertNoError(t *testing.T, err error, context string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: expected no error, got: %v", context, err)
	}
}

// AssertError checks that an error is not nil
func AssertError(t *testing.T, err error, context string) {
	t.Helper()
	if err == nil {
		t.Errorf("%s: expected an error, got nil", context)
	}
}
