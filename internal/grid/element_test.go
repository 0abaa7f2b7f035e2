package grid_test

import (
	"strings"
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/leengari/gridtable/internal/grid"
)

type caseless string

func (c caseless) Equal(other any) bool {
	switch o := other.(type) {
	case caseless:
		return strings.EqualFold(string(c), string(o))
	case string:
		return strings.EqualFold(string(c), o)
	}
	return false
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"nil nil", nil, nil, true},
		{"nil value", nil, 0, false},
		{"strings", "a", "a", true},
		{"different widths", int64(1), 1, false},
		{"slices", []int{1, 2}, []int{1, 2}, true},
		{"custom", caseless("Go"), caseless("GO"), true},
		{"custom left", caseless("Go"), "go", true},
		{"custom right", "go", caseless("Go"), true},
		{"custom right mismatch", "gopher", caseless("Go"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, grid.Equal(tt.a, tt.b), tt.want)
		})
	}
}

func TestHashable(t *testing.T) {
	assert.Assert(t, grid.Hashable("x"))
	assert.Assert(t, grid.Hashable(42))
	assert.Assert(t, !grid.Hashable(nil))
	assert.Assert(t, !grid.Hashable([]int{1}))
	assert.Assert(t, !grid.Hashable(caseless("x")))
}

func TestCompare(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		a, b any
		want int
	}{
		{"nil first", nil, 1, -1},
		{"nil last", "a", nil, 1},
		{"numbers across widths", int64(2), 3.5, -1},
		{"equal numbers", 2, int64(2), 0},
		{"strings", "b", "a", 1},
		{"bools", false, true, -1},
		{"times", now, now.Add(time.Second), -1},
		{"mixed falls back to text", "10", 9, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, grid.Compare(tt.a, tt.b), tt.want)
		})
	}
}
