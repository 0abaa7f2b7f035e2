package selection

import (
	"fmt"
	"log/slog"

	"github.com/leengari/gridtable/internal/grid"
)

type boundColumn struct {
	part   int // participant position in the combined row
	stripe *grid.Stripe
}

type boundEquality struct {
	outer, inner boundColumn
}

type filterKind int

const (
	filterEquality filterKind = iota
	filterValue
	filterMatch
)

type boundFilter struct {
	kind        filterKind
	left, right boundColumn
	value       any
	test        func(any) bool
}

type boundStep struct {
	part  int
	preds []boundEquality
}

type boundKey struct {
	col boundColumn
	dir Direction
}

// plan is a descriptor resolved against its participating tables.
type plan struct {
	tables  []*grid.Table
	columns []boundColumn
	steps   []boundStep
	filters []boundFilter
	order   []boundKey
	cache   map[*grid.Stripe][]any
}

// outRow is one result row before it is written to the result table.
type outRow struct {
	values []any
	keys   []any
}

// Execute runs d and returns a new table. Result cells are copies of the source
// elements; the result shares no cell with any source table.
func Execute(d Descriptor) (*grid.Table, error) {
	result := grid.New(d.Name)
	if len(d.Tables()) == 0 {
		slog.Debug("Selection without source table")
		return result, nil
	}

	p, err := bind(d)
	if err != nil {
		return nil, err
	}

	for _, c := range p.columns {
		result.AppendColumn().SetTitle(c.stripe.Title())
	}

	slog.Debug("Starting selection",
		slog.Int("tables", len(p.tables)),
		slog.Int("columns", len(p.columns)),
		slog.Int("join_steps", len(p.steps)),
		slog.Bool("distinct", d.Distinct),
	)

	combos := p.seed()
	for _, step := range p.steps {
		combos = p.join(combos, step)
	}

	kept, skippedByPredicate := p.filter(combos)
	rows := p.project(kept)
	if d.Distinct {
		rows = distinct(rows)
	}
	for _, r := range rows {
		result.AppendRow(r.values...)
	}
	if len(p.order) > 0 {
		p.sort(result, rows)
	}

	slog.Info("Selection completed",
		slog.String("result", d.Name),
		slog.Int("result_rows", result.RowCount()),
		slog.Int("filtered_by_predicate", skippedByPredicate),
		slog.Int("duplicates_removed", len(kept)-len(rows)),
	)

	return result, nil
}

func bind(d Descriptor) (*plan, error) {
	p := &plan{
		tables: d.Tables(),
		cache:  make(map[*grid.Stripe][]any),
	}
	for _, t := range p.tables {
		if t == nil {
			return nil, &QueryError{Op: "select", Reason: "nil source table"}
		}
	}
	all := len(p.tables)

	if d.Wildcard {
		for part, t := range p.tables {
			for _, col := range t.Columns().All() {
				p.columns = append(p.columns, boundColumn{part: part, stripe: col})
			}
		}
	} else {
		for _, col := range d.Columns {
			bc, err := p.bindColumn("select", col, all)
			if err != nil {
				return nil, err
			}
			p.columns = append(p.columns, bc)
		}
	}

	for part := 1; part < len(d.Sources); part++ {
		p.steps = append(p.steps, boundStep{part: part})
	}
	for j, join := range d.Joins {
		part := len(d.Sources) + j
		if part == 0 {
			if len(join.On) > 0 {
				slog.Debug("Join predicates on the seed table ignored", slog.Int("predicates", len(join.On)))
			}
			continue
		}
		step := boundStep{part: part}
		for _, pred := range join.On {
			eq, ok := pred.(Equality)
			if !ok {
				slog.Debug("Dropping unsupported join predicate", slog.String("kind", fmt.Sprintf("%T", pred)))
				continue
			}
			be, err := p.bindJoinEquality(eq, part)
			if err != nil {
				return nil, err
			}
			step.preds = append(step.preds, be)
		}
		p.steps = append(p.steps, step)
	}

	for _, pred := range d.Where {
		f, ok, err := p.bindFilter(pred, all)
		if err != nil {
			return nil, err
		}
		if ok {
			p.filters = append(p.filters, f)
		}
	}

	for _, key := range d.Order {
		bc, err := p.bindColumn("order", key.Column, all)
		if err != nil {
			return nil, err
		}
		dir := Ascending
		if key.Direction == Descending {
			dir = Descending
		}
		p.order = append(p.order, boundKey{col: bc, dir: dir})
	}

	return p, nil
}

// bindColumn finds the first participant before upto owning col.
func (p *plan) bindColumn(op string, col *grid.Stripe, upto int) (boundColumn, error) {
	if col == nil {
		return boundColumn{}, &QueryError{Op: op, Reason: "nil column"}
	}
	t := col.Table()
	if t == nil || !t.IsColumn(col) {
		return boundColumn{}, newColumnError(op, "not a column of any table", col)
	}
	for part := 0; part < upto; part++ {
		if p.tables[part] == t {
			return boundColumn{part: part, stripe: col}, nil
		}
	}
	return boundColumn{}, newColumnError(op, "table does not participate in the selection", col)
}

// bindJoinEquality orients eq so its inner side belongs to the joined table and
// its outer side to an earlier participant.
func (p *plan) bindJoinEquality(eq Equality, part int) (boundEquality, error) {
	joined := p.tables[part]
	if eq.Right != nil && eq.Right.Table() == joined && joined.IsColumn(eq.Right) {
		if outer, err := p.bindColumn("join", eq.Left, part); err == nil {
			return boundEquality{outer: outer, inner: boundColumn{part: part, stripe: eq.Right}}, nil
		}
	}
	if eq.Left != nil && eq.Left.Table() == joined && joined.IsColumn(eq.Left) {
		if outer, err := p.bindColumn("join", eq.Right, part); err == nil {
			return boundEquality{outer: outer, inner: boundColumn{part: part, stripe: eq.Left}}, nil
		}
	}
	return boundEquality{}, &QueryError{
		Op:     "join",
		Column: eq.String(),
		Reason: "predicate must compare the joined table with an earlier table",
	}
}

// bindFilter resolves a where predicate. Unsupported kinds report ok=false.
func (p *plan) bindFilter(pred Predicate, all int) (boundFilter, bool, error) {
	switch pr := pred.(type) {
	case Equality:
		left, err := p.bindColumn("where", pr.Left, all)
		if err != nil {
			return boundFilter{}, false, err
		}
		right, err := p.bindColumn("where", pr.Right, all)
		if err != nil {
			return boundFilter{}, false, err
		}
		return boundFilter{kind: filterEquality, left: left, right: right}, true, nil
	case ValueEquals:
		col, err := p.bindColumn("where", pr.Column, all)
		if err != nil {
			return boundFilter{}, false, err
		}
		return boundFilter{kind: filterValue, left: col, value: pr.Value}, true, nil
	case Match:
		if pr.Test == nil {
			slog.Debug("Dropping match predicate without test", slog.String("predicate", pr.String()))
			return boundFilter{}, false, nil
		}
		col, err := p.bindColumn("where", pr.Column, all)
		if err != nil {
			return boundFilter{}, false, err
		}
		return boundFilter{kind: filterMatch, left: col, test: pr.Test}, true, nil
	}
	slog.Debug("Dropping unsupported predicate", slog.String("kind", fmt.Sprintf("%T", pred)))
	return boundFilter{}, false, nil
}

// values returns the elements of a column indexed by row position.
func (p *plan) values(c boundColumn) []any {
	if v, ok := p.cache[c.stripe]; ok {
		return v
	}
	v := c.stripe.ValuesTo(p.tables[c.part].RowCount())
	p.cache[c.stripe] = v
	return v
}

func (p *plan) value(c boundColumn, combo []int) any {
	return p.values(c)[combo[c.part]]
}

func (p *plan) seed() [][]int {
	n := p.tables[0].RowCount()
	combos := make([][]int, n)
	for r := 0; r < n; r++ {
		combo := make([]int, 1, len(p.tables))
		combo[0] = r
		combos[r] = combo
	}
	return combos
}

func (p *plan) filter(combos [][]int) ([][]int, int) {
	if len(p.filters) == 0 {
		return combos, 0
	}
	kept := make([][]int, 0, len(combos))
	skipped := 0
	for _, combo := range combos {
		if p.accept(combo) {
			kept = append(kept, combo)
		} else {
			skipped++
		}
	}
	return kept, skipped
}

func (p *plan) accept(combo []int) bool {
	for _, f := range p.filters {
		v := p.value(f.left, combo)
		switch f.kind {
		case filterEquality:
			if !matches(v, p.value(f.right, combo)) {
				return false
			}
		case filterValue:
			if !matches(v, f.value) {
				return false
			}
		case filterMatch:
			if !f.test(v) {
				return false
			}
		}
	}
	return true
}

func (p *plan) project(combos [][]int) []outRow {
	rows := make([]outRow, len(combos))
	for i, combo := range combos {
		r := outRow{values: make([]any, len(p.columns))}
		for c, col := range p.columns {
			r.values[c] = p.value(col, combo)
		}
		if len(p.order) > 0 {
			r.keys = make([]any, len(p.order))
			for k, key := range p.order {
				r.keys[k] = p.value(key.col, combo)
			}
		}
		rows[i] = r
	}
	return rows
}

// distinct keeps the first of every group of rows with equal elements.
// Unlike join predicates, two nils count as equal here. Rows made of hashable
// elements are bucketed by their rendering; a row holding any other element is
// compared against every kept row.
func distinct(rows []outRow) []outRow {
	out := make([]outRow, 0, len(rows))
	seen := make(map[string][]int)
	var loose []int // kept rows holding an element that can not be hashed

	isDup := func(r outRow, candidates []int) bool {
		for _, i := range candidates {
			if equalValues(out[i].values, r.values) {
				return true
			}
		}
		return false
	}

	for _, r := range rows {
		if !hashableValues(r.values) {
			if isDup(r, indices(len(out))) {
				continue
			}
			loose = append(loose, len(out))
			out = append(out, r)
			continue
		}

		key := fmt.Sprintf("%#v", r.values)
		if isDup(r, seen[key]) || isDup(r, loose) {
			continue
		}
		seen[key] = append(seen[key], len(out))
		out = append(out, r)
	}
	return out
}

func hashableValues(values []any) bool {
	for _, v := range values {
		if v != nil && !grid.Hashable(v) {
			return false
		}
	}
	return true
}

func indices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func equalValues(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !grid.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
