package selection

import (
	"github.com/leengari/gridtable/internal/grid"
	"github.com/leengari/gridtable/internal/indexsort"
)

// rowStack moves result rows and their sort keys together.
type rowStack struct {
	stripes *grid.StripeStack
	keys    [][]any
	held    [][]any
}

func (s *rowStack) PushIndex(i int) {
	s.stripes.PushIndex(i)
	s.held = append(s.held, s.keys[i])
}

func (s *rowStack) PopIndex(i int) {
	s.stripes.PopIndex(i)
	n := len(s.held) - 1
	s.keys[i] = s.held[n]
	s.held = s.held[:n]
}

// sort reorders the rows of result in place. The first key's direction drives
// the sort; later keys only break ties and carry their own direction.
func (p *plan) sort(result *grid.Table, rows []outRow) {
	keys := make([][]any, len(rows))
	for i, r := range rows {
		keys[i] = r.keys
	}
	st := &rowStack{stripes: result.Rows().Stack(), keys: keys}

	lead := p.order[0].dir
	rel := make([]int, len(p.order))
	for k, key := range p.order {
		rel[k] = int(key.dir) * int(lead)
	}

	cmp := func(i, j int) int {
		for k := range p.order {
			if c := grid.Compare(keys[i][k], keys[j][k]); c != 0 {
				return c * rel[k]
			}
		}
		return 0
	}
	indexsort.Sort(0, result.RowCount()-1, cmp, st, lead)
}
