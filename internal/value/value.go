package value

import (
	"database/sql/driver"
	"fmt"
	"reflect"
)

// Normalize converts v into an internally owned driver value.
//
// Supported inputs are whatever database/sql accepts as a query argument:
// nil, bool, string, []byte, time.Time, any integer or float kind (named
// types included), pointers to those, and driver.Valuer implementations.
// Slices other than []byte are rejected; use NormalizeList for IN lists.
func Normalize(v any) (any, error) {
	if isList(v) {
		return nil, fmt.Errorf("unsupported value type %T: lists are only valid for IN operators", v)
	}

	dv, err := driver.DefaultParameterConverter.ConvertValue(v)
	if err != nil {
		return nil, fmt.Errorf("unsupported value type %T: %w", v, err)
	}

	// ConvertValue hands []byte back untouched; own a copy.
	if b, ok := dv.([]byte); ok {
		owned := make([]byte, len(b))
		copy(owned, b)
		return owned, nil
	}
	return dv, nil
}

// NormalizeList normalizes every element of a slice or array.
// The result is a fresh []any; the input is never retained.
func NormalizeList(v any) ([]any, error) {
	if !isList(v) {
		return nil, fmt.Errorf("expected a list, got %T", v)
	}

	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elem, err := Normalize(rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("list[%d]: %w", i, err)
		}
		out[i] = elem
	}
	return out, nil
}

// Clone returns a copy of a normalized argument list that shares nothing
// mutable with vals.
func Clone(vals []any) []any {
	if vals == nil {
		return nil
	}
	out := make([]any, len(vals))
	for i, v := range vals {
		if b, ok := v.([]byte); ok {
			owned := make([]byte, len(b))
			copy(owned, b)
			out[i] = owned
			continue
		}
		out[i] = v
	}
	return out
}

// isList reports whether v is a slice or array that is not a byte string.
func isList(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.(driver.Valuer); ok {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Type().Elem().Kind() != reflect.Uint8
	default:
		return false
	}
}
