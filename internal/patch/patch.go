// Package patch implements "null means unchanged" partial updates.
//
// Update requests decode into structs whose fields are pointers. A nil pointer
// (an absent key or an explicit JSON null) leaves the stored value alone; a
// non-nil pointer replaces it, including with the zero value. Entity-specific
// patch types build their Apply method from Field so the rule lives here once.
package patch

import "reflect"

// Field overwrites *dst with *src when src is non-nil and reports whether the
// stored value changed.
func Field[T any](dst *T, src *T) bool {
	if src == nil {
		return false
	}
	if reflect.DeepEqual(*dst, *src) {
		return false
	}
	*dst = *src
	return true
}

// Slice is Field for list-valued attributes stored in a named slice type such
// as datatypes.JSONSlice. A supplied empty list clears the attribute.
func Slice[S ~[]E, E any](dst *S, src *[]E) bool {
	if src == nil {
		return false
	}
	next := S(append([]E{}, (*src)...))
	if reflect.DeepEqual(*dst, next) {
		return false
	}
	*dst = next
	return true
}

// Nullable is Field for optional columns stored as pointers. A supplied empty
// string clears the column.
func Nullable(dst **string, src *string) bool {
	if src == nil {
		return false
	}
	if *src == "" {
		changed := *dst != nil
		*dst = nil
		return changed
	}
	if *dst != nil && **dst == *src {
		return false
	}
	v := *src
	*dst = &v
	return true
}

// Changes accumulates the results of several Field calls.
type Changes bool

// Track records one field result and returns the receiver for chaining.
func (c *Changes) Track(changed bool) *Changes {
	if changed {
		*c = true
	}
	return c
}

// Any reports whether at least one tracked field changed.
func (c Changes) Any() bool { return bool(c) }
