package selection

import (
	"log/slog"

	"github.com/leengari/gridtable/internal/grid"
)

// Selection accumulates query intent. Nothing runs until AsTable or AsView.
//
//	rows, err := selection.From(users).
//		InnerJoin(orders).OnEqual(users.Column(0), orders.Column(1)).
//		AllColumns().
//		OrderBy(orders.Column(3), selection.Descending).
//		AsTable()
type Selection struct {
	desc Descriptor
}

// New starts an empty selection.
func New() *Selection {
	return &Selection{}
}

// From starts a selection over the given source tables.
func From(tables ...*grid.Table) *Selection {
	return New().From(tables...)
}

// From adds source tables.
func (s *Selection) From(tables ...*grid.Table) *Selection {
	s.desc.Sources = append(s.desc.Sources, tables...)
	return s
}

// Named sets the name of the result table.
func (s *Selection) Named(name string) *Selection {
	s.desc.Name = name
	return s
}

// Columns switches off wildcard mode and appends explicit columns. Duplicates
// are kept in caller order.
func (s *Selection) Columns(cols ...*grid.Stripe) *Selection {
	s.desc.Wildcard = false
	s.desc.Columns = append(s.desc.Columns, cols...)
	return s
}

// AllColumns selects every column of every participating table, resolved at
// execution time.
func (s *Selection) AllColumns() *Selection {
	s.desc.Wildcard = true
	return s
}

// InnerJoin starts a join step against t. Until On or OnEqual is called the
// step is a cartesian product.
func (s *Selection) InnerJoin(t *grid.Table) *Selection {
	s.desc.Joins = append(s.desc.Joins, JoinStep{Table: t})
	return s
}

// On attaches predicates to the most recent join step.
func (s *Selection) On(preds ...Predicate) *Selection {
	n := len(s.desc.Joins)
	if n == 0 {
		slog.Debug("ON without a join step ignored", slog.Int("predicates", len(preds)))
		return s
	}
	s.desc.Joins[n-1].On = append(s.desc.Joins[n-1].On, preds...)
	return s
}

// OnEqual attaches an equality between two columns to the most recent join step.
func (s *Selection) OnEqual(left, right *grid.Stripe) *Selection {
	return s.On(Eq(left, right))
}

// Where adds row filters evaluated against the fully joined row.
func (s *Selection) Where(preds ...Predicate) *Selection {
	s.desc.Where = append(s.desc.Where, preds...)
	return s
}

// OrderBy appends a sort key. Later keys break ties left by earlier ones.
func (s *Selection) OrderBy(col *grid.Stripe, dir Direction) *Selection {
	s.desc.Order = append(s.desc.Order, SortKey{Column: col, Direction: dir})
	return s
}

// Distinct drops result rows whose elements equal an earlier row's.
func (s *Selection) Distinct() *Selection {
	s.desc.Distinct = true
	return s
}

// Descriptor returns a copy of the accumulated intent.
func (s *Selection) Descriptor() Descriptor {
	return s.desc.Clone()
}

// AsTable executes the selection into a new table.
func (s *Selection) AsTable() (*grid.Table, error) {
	return Execute(s.desc.Clone())
}

// AsView executes the selection into a view that can be refreshed later.
func (s *Selection) AsView() (*View, error) {
	return NewView(s.desc.Clone())
}
