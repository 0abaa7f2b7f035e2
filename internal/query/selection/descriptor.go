package selection

import (
	"slices"

	"github.com/leengari/gridtable/internal/grid"
	"github.com/leengari/gridtable/internal/indexsort"
)

// Direction is the sort direction of an ordering key.
type Direction = indexsort.Direction

const (
	Ascending  = indexsort.Ascending
	Descending = indexsort.Descending
)

// JoinStep joins one more table onto the accumulated rows. A step without
// predicates is a cartesian product.
type JoinStep struct {
	Table *grid.Table
	On    []Predicate
}

// Cartesian reports whether the step carries no predicate.
func (j JoinStep) Cartesian() bool { return len(j.On) == 0 }

// SortKey orders result rows by one column.
type SortKey struct {
	Column    *grid.Stripe
	Direction Direction
}

// Descriptor is the captured intent of a query. It is a plain value: Execute
// never modifies it.
type Descriptor struct {
	Name     string        // name of the result table
	Sources  []*grid.Table // FROM tables; the first seeds the rows, the rest join as cartesian steps
	Columns  []*grid.Stripe
	Wildcard bool
	Joins    []JoinStep
	Where    []Predicate
	Order    []SortKey
	Distinct bool
}

// Clone returns a copy sharing no slice with d.
func (d Descriptor) Clone() Descriptor {
	out := d
	out.Sources = slices.Clone(d.Sources)
	out.Columns = slices.Clone(d.Columns)
	out.Where = slices.Clone(d.Where)
	out.Order = slices.Clone(d.Order)
	out.Joins = make([]JoinStep, len(d.Joins))
	for i, j := range d.Joins {
		out.Joins[i] = JoinStep{Table: j.Table, On: slices.Clone(j.On)}
	}
	return out
}

// Tables returns every participating table in declaration order: sources first,
// then join targets.
func (d Descriptor) Tables() []*grid.Table {
	out := make([]*grid.Table, 0, len(d.Sources)+len(d.Joins))
	out = append(out, d.Sources...)
	for _, j := range d.Joins {
		out = append(out, j.Table)
	}
	return out
}
