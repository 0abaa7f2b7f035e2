package grid

import (
	"iter"
	"sort"
)

// StripeIndex is the ordered collection of all rows, or all columns, of a table.
// It keeps a reverse map from each cell to the stripes of this index holding it.
type StripeIndex struct {
	table   *Table
	stripes []*Stripe
	owners  map[cellID]map[*Stripe]struct{}
}

func newStripeIndex(t *Table) *StripeIndex {
	return &StripeIndex{
		table:  t,
		owners: make(map[cellID]map[*Stripe]struct{}),
	}
}

// Len returns the number of stripes.
func (x *StripeIndex) Len() int { return len(x.stripes) }

// At returns the stripe at pos, or nil when pos is out of range.
func (x *StripeIndex) At(pos int) *Stripe {
	if pos < 0 || pos >= len(x.stripes) {
		return nil
	}
	return x.stripes[pos]
}

// ByTitle returns the first stripe whose title equals v, or nil.
// Titles need not be unique; this is a linear scan.
func (x *StripeIndex) ByTitle(v any) *Stripe {
	for _, s := range x.stripes {
		if Equal(s.title, v) {
			return s
		}
	}
	return nil
}

// All iterates over the stripes in position order.
func (x *StripeIndex) All() iter.Seq2[int, *Stripe] {
	return func(yield func(int, *Stripe) bool) {
		for i, s := range x.stripes {
			if !yield(i, s) {
				return
			}
		}
	}
}

// Titles returns the title of every stripe in position order.
func (x *StripeIndex) Titles() []any {
	out := make([]any, len(x.stripes))
	for i, s := range x.stripes {
		out[i] = s.title
	}
	return out
}

// Append creates an empty stripe at the end of the index.
func (x *StripeIndex) Append() *Stripe {
	s := newStripe(x, len(x.stripes))
	x.stripes = append(x.stripes, s)
	return s
}

// InsertAt creates an empty stripe at pos, shifting later stripes up by one.
// A pos beyond the end pads the index with empty stripes so no gap is left.
func (x *StripeIndex) InsertAt(pos int) (*Stripe, error) {
	if pos < 0 {
		return nil, &IndexError{Op: "insert", Kind: x.kind(), Index: pos, Size: len(x.stripes)}
	}
	if pos >= len(x.stripes) {
		x.ensure(pos)
		return x.Append(), nil
	}
	s := newStripe(x, pos)
	x.stripes = append(x.stripes, nil)
	copy(x.stripes[pos+1:], x.stripes[pos:])
	x.stripes[pos] = s
	x.renumber(pos + 1)
	return s, nil
}

// RemoveAt removes the stripe at pos and returns it, or nil when pos is out of
// range. Cells left without a stripe on this side are unregistered from the
// opposite index and freed. Later stripes shift down by one.
func (x *StripeIndex) RemoveAt(pos int) *Stripe {
	s := x.At(pos)
	if s == nil {
		return nil
	}
	s.clear()
	x.stripes = append(x.stripes[:pos], x.stripes[pos+1:]...)
	x.renumber(pos)
	s.index = nil
	s.pos = -1
	return s
}

// Remove removes s from the index. It reports false when s is not a member.
func (x *StripeIndex) Remove(s *Stripe) bool {
	if s == nil || s.index != x {
		return false
	}
	x.RemoveAt(s.pos)
	return true
}

// StripesContaining returns the stripes of this index holding c, ordered by position.
func (x *StripeIndex) StripesContaining(c Cell) []*Stripe {
	if c.arena != x.table.arena {
		return nil
	}
	set := x.owners[c.id]
	if len(set) == 0 {
		return nil
	}
	out := make([]*Stripe, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].pos < out[j].pos })
	return out
}

// Stack returns a holding area that moves whole stripes between positions.
// It satisfies indexsort.Stack so an index can be reordered in place without
// touching any cell.
func (x *StripeIndex) Stack() *StripeStack {
	return &StripeStack{index: x}
}

// StripeStack is a LIFO holding area for stripes of one index.
type StripeStack struct {
	index *StripeIndex
	held  []*Stripe
}

// PushIndex remembers the stripe currently at position i.
func (st *StripeStack) PushIndex(i int) {
	st.held = append(st.held, st.index.stripes[i])
}

// PopIndex places the most recently pushed stripe at position i.
func (st *StripeStack) PopIndex(i int) {
	n := len(st.held) - 1
	s := st.held[n]
	st.held = st.held[:n]
	st.index.stripes[i] = s
	s.pos = i
}

// Held returns the number of stripes waiting to be popped.
func (st *StripeStack) Held() int { return len(st.held) }

func (x *StripeIndex) kind() string {
	if x.table.rows == x {
		return "row"
	}
	return "column"
}

func (x *StripeIndex) opposite() *StripeIndex {
	if x.table.rows == x {
		return x.table.cols
	}
	return x.table.rows
}

// ensure grows the index to at least n stripes.
func (x *StripeIndex) ensure(n int) {
	for len(x.stripes) < n {
		x.Append()
	}
}

func (x *StripeIndex) renumber(from int) {
	for i := from; i < len(x.stripes); i++ {
		x.stripes[i].pos = i
	}
}

func (x *StripeIndex) addOwner(id cellID, s *Stripe) {
	set, ok := x.owners[id]
	if !ok {
		set = make(map[*Stripe]struct{}, 1)
		x.owners[id] = set
	}
	set[s] = struct{}{}
}

// dropOwner removes s from the owners of id and reports whether id has no
// stripe left in this index.
func (x *StripeIndex) dropOwner(id cellID, s *Stripe) bool {
	set, ok := x.owners[id]
	if !ok {
		return true
	}
	delete(set, s)
	if len(set) == 0 {
		delete(x.owners, id)
		return true
	}
	return false
}
