// Package indexsort implements a stable merge sort over any index-addressable
// structure that can move elements through a LIFO holding area.
//
// The sort never swaps two positions directly. It only asks the structure to
// push the element at a position onto a stack and later pop the most recently
// pushed element into a position, so structures whose elements carry identity
// beyond their contents (table rows, for instance) can be reordered in place.
package indexsort

// Stack is the holding area used by Sort.
type Stack interface {
	// PushIndex remembers the element currently at position i.
	PushIndex(i int)
	// PopIndex writes the most recently pushed, not yet popped, element into position i.
	PopIndex(i int)
}

// Direction selects ascending or descending order.
type Direction int

const (
	Ascending  Direction = 1
	Descending Direction = -1
)

func (d Direction) String() string {
	if d == Descending {
		return "DESC"
	}
	return "ASC"
}

// smallRange is the largest range sorted by direct compare-and-swap.
const smallRange = 3

// Sort orders the inclusive range [start, end]. cmp compares the elements
// currently at two positions and returns a negative number, zero or a positive
// number. Equal elements keep their relative order. An empty or inverted range
// is a no-op.
func Sort(start, end int, cmp func(i, j int) int, st Stack, dir Direction) {
	if end <= start {
		return
	}
	factor := 1
	if dir == Descending {
		factor = -1
	}
	s := sorter{
		cmp: func(i, j int) int { return factor * cmp(i, j) },
		st:  st,
	}
	s.sortRange(start, end)
}

type sorter struct {
	cmp func(i, j int) int
	st  Stack
}

func (s *sorter) sortRange(lo, hi int) {
	n := hi - lo + 1
	if n <= 1 {
		return
	}
	if n <= smallRange {
		s.insertion(lo, hi)
		return
	}
	mid := lo + (hi-lo)/2
	s.sortRange(lo, mid)
	s.sortRange(mid+1, hi)
	s.merge(lo, mid, hi)
}

// insertion sorts a tiny range by adjacent swaps; a swap only happens on a
// strict inversion, which keeps it stable.
func (s *sorter) insertion(lo, hi int) {
	for a := lo + 1; a <= hi; a++ {
		for b := a; b > lo && s.cmp(b-1, b) > 0; b-- {
			s.swap(b-1, b)
		}
	}
}

func (s *sorter) swap(i, j int) {
	s.st.PushIndex(i)
	s.st.PushIndex(j)
	s.st.PopIndex(i)
	s.st.PopIndex(j)
}

// merge pushes the smaller front of [lo, mid] and [mid+1, hi] until both runs
// are exhausted, then pops everything back from the tail toward the head since
// the stack returns elements in reverse.
func (s *sorter) merge(lo, mid, hi int) {
	i, j := lo, mid+1
	if s.cmp(mid, j) <= 0 {
		return // already in order
	}
	for i <= mid && j <= hi {
		if s.cmp(i, j) <= 0 {
			s.st.PushIndex(i)
			i++
		} else {
			s.st.PushIndex(j)
			j++
		}
	}
	for ; i <= mid; i++ {
		s.st.PushIndex(i)
	}
	for ; j <= hi; j++ {
		s.st.PushIndex(j)
	}
	for k := hi; k >= lo; k-- {
		s.st.PopIndex(k)
	}
}

// SliceStack adapts a slice to Stack.
type SliceStack[T any] struct {
	Items []T
	held  []T
}

// NewSliceStack wraps items; Sort reorders items in place.
func NewSliceStack[T any](items []T) *SliceStack[T] {
	return &SliceStack[T]{Items: items}
}

func (s *SliceStack[T]) PushIndex(i int) {
	s.held = append(s.held, s.Items[i])
}

func (s *SliceStack[T]) PopIndex(i int) {
	n := len(s.held) - 1
	s.Items[i] = s.held[n]
	s.held = s.held[:n]
}

// Slice sorts items with a three-way comparator over the elements themselves.
func Slice[T any](items []T, cmp func(a, b T) int, dir Direction) {
	st := NewSliceStack(items)
	Sort(0, len(items)-1, func(i, j int) int { return cmp(items[i], items[j]) }, st, dir)
}
