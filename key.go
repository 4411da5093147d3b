package resolver

import (
	"fmt"
	"reflect"
)

// ServiceKey identifies a registered service by its abstract type and an
// optional registration name. reflect.Type values are canonical per type, so
// key equality and hashing follow type identity exactly; two structurally
// identical but distinct types never collide. The zero Name is the default,
// unnamed registration.
type ServiceKey struct {
	Type reflect.Type
	Name string
}

// keyFor derives the ServiceKey for the service type T.
func keyFor[T any](name string) ServiceKey {
	return ServiceKey{Type: reflect.TypeFor[T](), Name: name}
}

// String renders the key as the fully qualified type spelling, with the
// registration name appended when present. The result doubles as the scope
// cache key for the registration, so it must be deterministic and stable
// across re-registration of the same key.
func (k ServiceKey) String() string {
	s := typeName(k.Type)
	if k.Name != "" {
		s += ":" + k.Name
	}
	return s
}

// typeName spells a type with full package qualification, recursing through
// pointer, slice, array, and map compositions so that same-named types from
// different packages stay distinct. Other composite kinds fall back to the
// reflect spelling.
func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.Name() != "" {
		if pkg := t.PkgPath(); pkg != "" {
			return pkg + "." + t.Name()
		}
		return t.Name()
	}
	switch t.Kind() {
	case reflect.Pointer:
		return "*" + typeName(t.Elem())
	case reflect.Slice:
		return "[]" + typeName(t.Elem())
	case reflect.Array:
		return fmt.Sprintf("[%d]%s", t.Len(), typeName(t.Elem()))
	case reflect.Map:
		return "map[" + typeName(t.Key()) + "]" + typeName(t.Elem())
	default:
		return t.String()
	}
}
