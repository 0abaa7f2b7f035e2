package engine

import (
	"fmt"
	"strings"
)

// ResolveError reports a name in a statement that matches no table or column
// of the catalog.
type ResolveError struct {
	Table  string // table name or alias as written
	Column string // column reference as written (empty if table-level)
	Reason string // human-readable explanation
}

func (e *ResolveError) Error() string {
	var parts []string

	if e.Column != "" {
		parts = append(parts, fmt.Sprintf("cannot resolve column %s", e.Column))
	} else {
		parts = append(parts, fmt.Sprintf("cannot resolve table %s", e.Table))
	}

	if e.Column != "" && e.Table != "" {
		parts = append(parts, fmt.Sprintf("table=%s", e.Table))
	}

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	return strings.Join(parts, " - ")
}

func newUnknownTable(name string) *ResolveError {
	return &ResolveError{
		Table:  name,
		Reason: "no such table",
	}
}

func newUnknownColumn(table, column, reason string) *ResolveError {
	return &ResolveError{
		Table:  table,
		Column: column,
		Reason: reason,
	}
}
