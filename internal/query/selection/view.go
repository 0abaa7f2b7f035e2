package selection

import (
	"time"

	"github.com/leengari/gridtable/internal/grid"
)

// View is a selection result that can be recomputed from its descriptor.
type View struct {
	desc      Descriptor
	table     *grid.Table
	refreshed time.Time
}

// NewView executes d and keeps it for later refreshes.
func NewView(d Descriptor) (*View, error) {
	v := &View{desc: d}
	if err := v.Refresh(); err != nil {
		return nil, err
	}
	return v, nil
}

// Table returns the most recent result.
func (v *View) Table() *grid.Table { return v.table }

// Descriptor returns a copy of the view's query.
func (v *View) Descriptor() Descriptor { return v.desc.Clone() }

// RefreshedAt returns when the view was last computed.
func (v *View) RefreshedAt() time.Time { return v.refreshed }

// Refresh re-executes the query against the current state of its sources.
// On error the previous result is kept.
func (v *View) Refresh() error {
	t, err := Execute(v.desc.Clone())
	if err != nil {
		return err
	}
	v.table = t
	v.refreshed = time.Now()
	return nil
}
