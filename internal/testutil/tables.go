package testutil

import (
	"fmt"

	"github.com/leengari/gridtable/internal/grid"
)

// CreateTable builds a table with titled columns and the given rows.
func CreateTable(name string, titles []any, rows ...[]any) *grid.Table {
	table := grid.New(name)
	for _, title := range titles {
		table.AppendColumn().SetTitle(title)
	}
	for _, row := range rows {
		table.AppendRow(row...)
	}
	return table
}

// CreateUsersTable creates a users table with sample data for testing
func CreateUsersTable() *grid.Table {
	return CreateTable("users",
		[]any{"id", "username", "email"},
		[]any{int64(1), "alice", "alice@example.com"},
		[]any{int64(2), "bob", "bob@example.com"},
		[]any{int64(3), "charlie", "charlie@example.com"},
	)
}

// CreateOrdersTable creates an orders table with sample data for testing
func CreateOrdersTable() *grid.Table {
	return CreateTable("orders",
		[]any{"id", "user_id", "product", "amount"},
		[]any{int64(1), int64(1), "Laptop", 999.99},
		[]any{int64(2), int64(1), "Mouse", 25.50},
		[]any{int64(3), int64(2), "Keyboard", 75.00},
		// Note: user_id 3 (charlie) has no orders
	)
}

// CreateKeyedTable creates a table of n rows whose column 0 holds the row
// number and whose remaining columns hold "row:col" labels prefixed by name.
func CreateKeyedTable(name string, n, cols int) *grid.Table {
	table := grid.New(name)
	for c := 0; c < cols; c++ {
		table.AppendColumn().SetTitle(fmt.Sprintf("c%d", c))
	}
	for r := 0; r < n; r++ {
		row := make([]any, cols)
		row[0] = r
		for c := 1; c < cols; c++ {
			row[c] = fmt.Sprintf("%s%d:%d", name, r, c)
		}
		table.AppendRow(row...)
	}
	return table
}
