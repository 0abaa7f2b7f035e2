package grid

import (
	"fmt"
	"iter"
	"strings"
)

// Stripe is one row or one column of a table: an ordered, titled set of cells.
// Whether a stripe is a row or a column depends only on which index owns it.
type Stripe struct {
	index *StripeIndex // nil once removed
	pos   int
	title any
	cells map[cellID]struct{}
}

func newStripe(index *StripeIndex, pos int) *Stripe {
	return &Stripe{
		index: index,
		pos:   pos,
		cells: make(map[cellID]struct{}),
	}
}

// Title returns the stripe's title (nil by default).
func (s *Stripe) Title() any { return s.title }

// SetTitle replaces the stripe's title.
func (s *Stripe) SetTitle(title any) { s.title = title }

// Position returns the stripe's current position in its index, or -1 once removed.
func (s *Stripe) Position() int {
	if s.index == nil {
		return -1
	}
	return s.pos
}

// Index returns the index owning the stripe, or nil once removed.
func (s *Stripe) Index() *StripeIndex { return s.index }

// Table returns the table owning the stripe, or nil once removed.
func (s *Stripe) Table() *Table {
	if s.index == nil {
		return nil
	}
	return s.index.table
}

// Attached reports whether the stripe still belongs to an index.
func (s *Stripe) Attached() bool { return s.index != nil }

// CellCount returns the number of cells registered on the stripe.
func (s *Stripe) CellCount() int { return len(s.cells) }

// Len returns one past the highest position, along the opposite index, holding a
// cell of this stripe. Positions below Len without a cell read as nil.
func (s *Stripe) Len() int {
	n := 0
	s.eachPositioned(func(p int, _ cellID) {
		if p+1 > n {
			n = p + 1
		}
	})
	return n
}

// CellAt returns the cell at position i along the stripe, creating it (and any
// missing opposite stripes) when absent.
func (s *Stripe) CellAt(i int) (Cell, error) {
	if s.index == nil {
		return Cell{}, ErrDetachedStripe
	}
	if i < 0 {
		return Cell{}, &IndexError{Op: "cell", Kind: s.index.kind(), Index: i, Size: s.Len()}
	}
	opp := s.index.opposite()
	opp.ensure(i + 1)
	other := opp.stripes[i]
	if id, ok := s.intersect(other); ok {
		return s.index.table.cell(id), nil
	}
	a := s.index.table.arena
	id := a.alloc()
	s.register(id)
	other.register(id)
	return s.index.table.cell(id), nil
}

// Peek returns the cell at position i without creating anything.
func (s *Stripe) Peek(i int) (Cell, bool) {
	if s.index == nil || i < 0 {
		return Cell{}, false
	}
	other := s.index.opposite().At(i)
	if other == nil {
		return Cell{}, false
	}
	id, ok := s.intersect(other)
	if !ok {
		return Cell{}, false
	}
	return s.index.table.cell(id), true
}

// Register adds c to the stripe. Registering a cell twice is a no-op.
func (s *Stripe) Register(c Cell) error {
	if s.index == nil {
		return ErrDetachedStripe
	}
	if c.arena != s.index.table.arena {
		return ErrForeignCell
	}
	if !c.Valid() {
		return ErrStaleCell
	}
	if _, ok := s.cells[c.id]; ok {
		return nil
	}
	for other := range s.index.opposite().owners[c.id] {
		if id, ok := s.intersect(other); ok && id != c.id {
			return ErrOccupied
		}
	}
	s.register(c.id)
	return nil
}

// Unregister removes c from the stripe. A cell left without any stripe on this
// side is dropped from the opposite index as well and freed. Unregistering a cell
// the stripe does not hold is a no-op.
func (s *Stripe) Unregister(c Cell) {
	if s.index == nil || c.arena != s.index.table.arena {
		return
	}
	s.unregister(c.id)
}

// Contains reports whether c is registered on the stripe.
func (s *Stripe) Contains(c Cell) bool {
	if s.index == nil || c.arena != s.index.table.arena {
		return false
	}
	_, ok := s.cells[c.id]
	return ok
}

// Cells returns the stripe's cells ordered by position.
func (s *Stripe) Cells() []Cell {
	if s.index == nil {
		return nil
	}
	ids := s.positioned()
	out := make([]Cell, 0, len(s.cells))
	for _, id := range ids {
		if id != nil {
			out = append(out, s.index.table.cell(*id))
		}
	}
	return out
}

// Elements returns a lazy view of the stripe's elements in position order.
// The view reflects the stripe at iteration time and can be ranged over repeatedly.
func (s *Stripe) Elements() iter.Seq[any] {
	return func(yield func(any) bool) {
		if s.index == nil {
			return
		}
		a := s.index.table.arena
		for _, id := range s.positioned() {
			var v any
			if id != nil {
				v, _ = a.get(*id)
			}
			if !yield(v) {
				return
			}
		}
	}
}

// ElementSlice collects Elements into a slice.
func (s *Stripe) ElementSlice() []any {
	out := make([]any, 0, len(s.cells))
	for v := range s.Elements() {
		out = append(out, v)
	}
	return out
}

// ValuesTo returns the stripe's elements padded with nils to length n.
func (s *Stripe) ValuesTo(n int) []any {
	out := make([]any, n)
	if s.index == nil {
		return out
	}
	a := s.index.table.arena
	s.eachPositioned(func(p int, id cellID) {
		if p < n {
			out[p], _ = a.get(id)
		}
	})
	return out
}

// SetElements clears the stripe then writes values positionally, extending the
// opposite index as needed.
func (s *Stripe) SetElements(values ...any) error {
	if s.index == nil {
		return ErrDetachedStripe
	}
	s.clear()
	for i, v := range values {
		c, err := s.CellAt(i)
		if err != nil {
			return err
		}
		if err := c.Set(v); err != nil {
			return err
		}
	}
	return nil
}

// Remove detaches the stripe from its index, cascading cell unregistration.
func (s *Stripe) Remove() {
	if s.index == nil {
		return
	}
	s.index.RemoveAt(s.pos)
}

func (s *Stripe) String() string {
	var b strings.Builder
	if s.title != nil {
		fmt.Fprintf(&b, "%v", s.title)
	}
	b.WriteString("[")
	first := true
	for v := range s.Elements() {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%v", v)
	}
	b.WriteString("]")
	return b.String()
}

func (s *Stripe) register(id cellID) {
	if _, ok := s.cells[id]; ok {
		return
	}
	s.cells[id] = struct{}{}
	s.index.addOwner(id, s)
}

func (s *Stripe) unregister(id cellID) {
	if _, ok := s.cells[id]; !ok {
		return
	}
	delete(s.cells, id)
	if orphaned := s.index.dropOwner(id, s); orphaned {
		s.index.table.detach(id)
	}
}

func (s *Stripe) clear() {
	ids := make([]cellID, 0, len(s.cells))
	for id := range s.cells {
		ids = append(ids, id)
	}
	for _, id := range ids {
		s.unregister(id)
	}
}

// intersect finds the cell shared by s and other, scanning the smaller set.
func (s *Stripe) intersect(other *Stripe) (cellID, bool) {
	small, large := s.cells, other.cells
	if len(large) < len(small) {
		small, large = large, small
	}
	for id := range small {
		if _, ok := large[id]; ok {
			return id, true
		}
	}
	return cellID{}, false
}

// eachPositioned calls fn with the opposite position of every cell on the stripe.
func (s *Stripe) eachPositioned(fn func(pos int, id cellID)) {
	if s.index == nil {
		return
	}
	opp := s.index.opposite()
	for id := range s.cells {
		for other := range opp.owners[id] {
			fn(other.pos, id)
		}
	}
}

// positioned returns the stripe's cells laid out by opposite position, trimmed
// after the last occupied position.
func (s *Stripe) positioned() []*cellID {
	out := make([]*cellID, s.Len())
	s.eachPositioned(func(p int, id cellID) {
		held := id
		out[p] = &held
	})
	return out
}
