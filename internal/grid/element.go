package grid

import (
	"cmp"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Equaler is implemented by elements that define their own equality.
type Equaler interface {
	Equal(other any) bool
}

// Comparer is implemented by elements that define their own ordering.
// Compare returns a negative number, zero or a positive number.
type Comparer interface {
	Compare(other any) int
}

// Equal reports whether two elements are equal. An element implementing
// Equaler decides for itself, on either side; comparable values use ==;
// everything else falls back to reflect.DeepEqual. Two nils are equal.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if eq, ok := a.(Equaler); ok {
		return eq.Equal(b)
	}
	if eq, ok := b.(Equaler); ok {
		return eq.Equal(a)
	}
	if Hashable(a) && Hashable(b) {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// Hashable reports whether v can be used as a map key and compared with ==
// without delegating to a custom Equal method.
func Hashable(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.(Equaler); ok {
		return false
	}
	return comparableType(reflect.TypeOf(v))
}

func comparableType(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface:
		// the dynamic value decides; we can not know it from the type
		return false
	case reflect.Array:
		return comparableType(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !comparableType(t.Field(i).Type) {
				return false
			}
		}
		return true
	}
	return t.Comparable()
}

// Compare orders two elements. nil sorts first, numbers compare numerically
// across widths, strings lexically, false before true, times chronologically.
// Elements implementing Comparer decide for themselves. Mixed or unknown types
// fall back to comparing their fmt renderings.
func Compare(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if c, ok := a.(Comparer); ok {
		return c.Compare(b)
	}
	if x, ok := toFloat(a); ok {
		if y, ok := toFloat(b); ok {
			return cmp.Compare(x, y)
		}
	}
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y)
		}
	case bool:
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0
			case !x:
				return -1
			default:
				return 1
			}
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// toFloat converts various numeric types to float64.
// Returns the float64 value and true if successful, 0 and false otherwise
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
