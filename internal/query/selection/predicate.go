package selection

import (
	"fmt"

	"github.com/leengari/gridtable/internal/grid"
)

// Predicate is a condition over a combined row. The executor understands the
// kinds declared in this file; any other implementation is dropped from the
// where list.
type Predicate interface {
	String() string
}

// Equality holds when the elements of two columns are equal. A nil element
// never matches anything, including another nil.
type Equality struct {
	Left  *grid.Stripe
	Right *grid.Stripe
}

// Eq builds an Equality between two columns.
func Eq(left, right *grid.Stripe) Equality {
	return Equality{Left: left, Right: right}
}

func (e Equality) String() string {
	return fmt.Sprintf("%s = %s", columnLabel(e.Left), columnLabel(e.Right))
}

// ValueEquals holds when a column's element equals a fixed value. A nil element
// never matches.
type ValueEquals struct {
	Column *grid.Stripe
	Value  any
}

// Is builds a ValueEquals predicate.
func Is(col *grid.Stripe, v any) ValueEquals {
	return ValueEquals{Column: col, Value: v}
}

func (p ValueEquals) String() string {
	return fmt.Sprintf("%s = %v", columnLabel(p.Column), p.Value)
}

// Match holds when Test returns true for a column's element.
type Match struct {
	Column *grid.Stripe
	Test   func(any) bool
	Label  string
}

func (m Match) String() string {
	label := m.Label
	if label == "" {
		label = "<func>"
	}
	return fmt.Sprintf("%s ~ %s", columnLabel(m.Column), label)
}

// matches is the element test shared by joins and filters.
func matches(a, b any) bool {
	return a != nil && b != nil && grid.Equal(a, b)
}

func columnLabel(s *grid.Stripe) string {
	if s == nil {
		return "<nil>"
	}
	table := "?"
	if t := s.Table(); t != nil {
		table = t.Name()
	}
	if s.Title() != nil {
		return fmt.Sprintf("%s.%v", table, s.Title())
	}
	return fmt.Sprintf("%s.#%d", table, s.Position())
}
