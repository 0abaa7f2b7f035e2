package grid

import "fmt"

// Cell is a handle to one element slot of a table.
// The zero Cell refers to nothing; Get returns nil and Set fails.
type Cell struct {
	arena *arena
	id    cellID
}

// Get returns the element held by the cell, or nil for a stale handle.
func (c Cell) Get() any {
	v, _ := c.arena.get(c.id)
	return v
}

// Set replaces the element held by the cell.
func (c Cell) Set(v any) error {
	if !c.arena.set(c.id, v) {
		return ErrStaleCell
	}
	return nil
}

// HasElement reports whether the cell currently holds an element equal to v.
func (c Cell) HasElement(v any) bool {
	cur, ok := c.arena.get(c.id)
	return ok && Equal(cur, v)
}

// Valid reports whether the cell is still registered in its table.
func (c Cell) Valid() bool {
	return c.arena.valid(c.id)
}

// IsZero reports whether c is the zero Cell.
func (c Cell) IsZero() bool {
	return c.arena == nil
}

func (c Cell) String() string {
	if !c.Valid() {
		return "Cell(<stale>)"
	}
	return fmt.Sprintf("Cell(%v)", c.Get())
}
