package selection

import (
	"log/slog"

	"github.com/leengari/gridtable/internal/grid"
)

// join extends every combined row with the rows of the step's table that satisfy
// its predicates. Output order is nested-loop order: outer rows in order, and for
// each outer row the matching inner rows in order.
func (p *plan) join(combos [][]int, step boundStep) [][]int {
	inner := p.tables[step.part]
	n := inner.RowCount()
	out := make([][]int, 0, len(combos))

	extend := func(outer []int, r int) {
		combo := make([]int, len(outer)+1, len(p.tables))
		copy(combo, outer)
		combo[len(outer)] = r
		out = append(out, combo)
	}

	if len(step.preds) == 0 {
		for _, outer := range combos {
			for r := 0; r < n; r++ {
				extend(outer, r)
			}
		}
		slog.Debug("Join step completed",
			slog.String("table", inner.Name()),
			slog.String("strategy", "cartesian"),
			slog.Int("result_rows", len(out)),
		)
		return out
	}

	first := step.preds[0]
	rest := step.preds[1:]
	innerVals := p.values(first.inner)
	outerVals := p.values(first.outer)

	// Build hash index on the inner table's first predicate column
	buckets, hashed := buildBuckets(innerVals)

	for _, outer := range combos {
		ov := outerVals[outer[first.outer.part]]
		if ov == nil {
			continue // NULL never matches
		}
		if hashed && grid.Hashable(ov) {
			for _, r := range buckets[ov] {
				if p.matchRest(rest, outer, r) {
					extend(outer, r)
				}
			}
			continue
		}
		for r := 0; r < n; r++ {
			if matches(ov, innerVals[r]) && p.matchRest(rest, outer, r) {
				extend(outer, r)
			}
		}
	}

	strategy := "nested_loop"
	if hashed {
		strategy = "hash"
	}
	slog.Debug("Join step completed",
		slog.String("table", inner.Name()),
		slog.String("strategy", strategy),
		slog.Int("predicates", len(step.preds)),
		slog.Int("result_rows", len(out)),
	)
	return out
}

func (p *plan) matchRest(preds []boundEquality, outer []int, r int) bool {
	for _, pred := range preds {
		if !matches(p.value(pred.outer, outer), p.values(pred.inner)[r]) {
			return false
		}
	}
	return true
}

// buildBuckets maps each non-nil inner value to its row positions in ascending
// order. It reports false when some value can not be hashed, in which case the
// caller falls back to a nested loop.
func buildBuckets(values []any) (map[any][]int, bool) {
	buckets := make(map[any][]int)
	for r, v := range values {
		if v == nil {
			continue
		}
		if !grid.Hashable(v) {
			return nil, false
		}
		buckets[v] = append(buckets[v], r)
	}
	return buckets, true
}
