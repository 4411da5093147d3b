package scope

import (
	"reflect"
	"unsafe"
	"weak"
)

// weakRef is a type-erased weak reference to a pointer-kind instance. The
// runtime's weak pointer tracks the allocation; the dynamic pointer type is
// kept alongside so the original typed pointer can be rebuilt on access.
type weakRef struct {
	base weak.Pointer[byte]
	typ  reflect.Type
}

// makeWeakRef builds a weak reference to v. It reports false when v is not a
// non-nil pointer; such values cannot be weakly observed.
func makeWeakRef(v any) (weakRef, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return weakRef{}, false
	}
	return weakRef{
		base: weak.Make((*byte)(rv.UnsafePointer())),
		typ:  rv.Type(),
	}, true
}

// Value returns the referenced instance as its original pointer type, or
// false once the collector has reclaimed the object.
func (r weakRef) Value() (any, bool) {
	p := r.base.Value()
	if p == nil {
		return nil, false
	}
	return reflect.NewAt(r.typ.Elem(), unsafe.Pointer(p)).Interface(), true
}
