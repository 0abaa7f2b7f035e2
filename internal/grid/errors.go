package grid

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrStaleCell is returned when writing through a handle whose cell was freed.
	ErrStaleCell = errors.New("cell is no longer registered in any stripe")

	// ErrForeignCell is returned when a cell of one table is registered into another.
	ErrForeignCell = errors.New("cell belongs to a different table")

	// ErrDetachedStripe is returned by write operations on a removed stripe.
	ErrDetachedStripe = errors.New("stripe has been removed from its index")

	// ErrOccupied is returned when registering a cell would put two cells at one coordinate.
	ErrOccupied = errors.New("coordinate already holds a different cell")

	// ErrNotFound is returned when a title lookup resolves no stripe.
	ErrNotFound = errors.New("no stripe with that title")
)

// IndexError reports an index that can not be used for the requested operation.
type IndexError struct {
	Op    string // operation that rejected the index ("cell", "insert", ...)
	Kind  string // "row", "column" or empty when unknown
	Index int    // offending index
	Size  int    // size of the index at the time of the call (-1 if unknown)
}

func (e *IndexError) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("index out of bounds in %s", e.Op))

	if e.Kind != "" {
		parts = append(parts, fmt.Sprintf("(%s)", e.Kind))
	}

	parts = append(parts, fmt.Sprintf("index=%d", e.Index))

	if e.Size >= 0 {
		parts = append(parts, fmt.Sprintf("size=%d", e.Size))
	}

	return strings.Join(parts, " - ")
}
