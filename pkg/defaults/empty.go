package defaults

import (
	"reflect"

	"github.com/goliatone/go-fieldconfig/pkg/entity"
)

// emptyStateTypes are the property types rendered with the "empty" template
// when their value holds nothing.
var emptyStateTypes = map[string]struct{}{
	entity.TypeImage:       {},
	entity.TypeFile:        {},
	entity.TypeArray:       {},
	entity.TypeSimpleArray: {},
}

// IsNull reports whether v is nil or a nil pointer/interface.
func IsNull(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// IsEmpty reports whether v holds nothing: nil, a zero-length string, slice,
// array or map, or a pointer to one of those. Numbers and booleans are never
// empty, so a zero count still renders as a value.
func IsEmpty(v any) bool {
	if IsNull(v) {
		return true
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return true
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	default:
		return false
	}
}
