package selection

import (
	"fmt"
	"strings"

	"github.com/leengari/gridtable/internal/grid"
)

// QueryError reports a descriptor the executor can not run.
type QueryError struct {
	Op     string // "select", "join", "where", "order"
	Column string // column label, empty when not column related
	Reason string
}

func (e *QueryError) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("invalid %s", e.Op))

	if e.Column != "" {
		parts = append(parts, fmt.Sprintf("column=%s", e.Column))
	}

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	return strings.Join(parts, " - ")
}

func newColumnError(op, reason string, col *grid.Stripe) *QueryError {
	return &QueryError{Op: op, Column: columnLabel(col), Reason: reason}
}
