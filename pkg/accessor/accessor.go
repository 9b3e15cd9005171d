// Package accessor reads named properties from arbitrary values. Paths use
// dots to walk nested values ("author.email"). Each segment resolves, in
// order, against string-keyed maps, zero-argument getter methods (GetX, IsX,
// HasX, X) and exported struct fields matched by Go name, json tag or
// lower-camel name.
package accessor

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"
)

// ErrNotReadable reports that a property path cannot be read from a value.
var ErrNotReadable = errors.New("accessor: property is not readable")

// Accessor is the contract property configurators use to read entity values.
type Accessor interface {
	IsReadable(instance any, path string) bool
	Value(instance any, path string) (any, error)
}

// Reflect implements Accessor using reflection. Field lookups are cached per
// struct type; a single Reflect is safe for concurrent use.
type Reflect struct {
	fields sync.Map // reflect.Type -> map[string][]int
}

var _ Accessor = (*Reflect)(nil)

// New constructs a reflection based accessor.
func New() *Reflect {
	return &Reflect{}
}

// IsReadable reports whether every segment of path resolves. A getter that
// returns an error still counts as readable; the error surfaces from Value.
func (r *Reflect) IsReadable(instance any, path string) bool {
	_, err := r.walk(instance, path, false)
	return err == nil
}

// Value returns the value stored at path.
func (r *Reflect) Value(instance any, path string) (any, error) {
	return r.walk(instance, path, true)
}

func (r *Reflect) walk(instance any, path string, invoke bool) (any, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrNotReadable)
	}

	current := reflect.ValueOf(instance)
	segments := strings.Split(path, ".")
	for i, segment := range segments {
		if segment == "" {
			return nil, fmt.Errorf("%w: %q has an empty segment", ErrNotReadable, path)
		}
		next, err := r.segment(current, segment, invoke || i < len(segments)-1)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrNotReadable, path, err)
		}
		current = next
	}

	if !current.IsValid() {
		return nil, nil
	}
	if !invoke {
		return nil, nil
	}
	return current.Interface(), nil
}

// segment resolves one path segment. When invoke is false the getter is
// located but not called, since the last segment only needs to exist.
func (r *Reflect) segment(value reflect.Value, name string, invoke bool) (reflect.Value, error) {
	if !value.IsValid() || (value.Kind() == reflect.Pointer && value.IsNil()) {
		return reflect.Value{}, errors.New("nil value")
	}

	if method, ok := findGetter(value, name); ok {
		if !invoke {
			return reflect.Value{}, nil
		}
		return callGetter(method)
	}

	value = indirect(value)
	if !value.IsValid() {
		return reflect.Value{}, errors.New("nil value")
	}

	switch value.Kind() {
	case reflect.Map:
		if value.Type().Key().Kind() != reflect.String {
			return reflect.Value{}, fmt.Errorf("map key type %s is not a string", value.Type().Key())
		}
		entry := value.MapIndex(reflect.ValueOf(name).Convert(value.Type().Key()))
		if !entry.IsValid() {
			return reflect.Value{}, fmt.Errorf("key %q not found", name)
		}
		return unwrapInterface(entry), nil
	case reflect.Struct:
		index, ok := r.fieldIndex(value.Type(), name)
		if !ok {
			return reflect.Value{}, fmt.Errorf("field %q not found on %s", name, value.Type())
		}
		field, err := value.FieldByIndexErr(index)
		if err != nil {
			return reflect.Value{}, err
		}
		return unwrapInterface(field), nil
	default:
		return reflect.Value{}, fmt.Errorf("cannot read %q from %s", name, value.Kind())
	}
}

func indirect(value reflect.Value) reflect.Value {
	for value.IsValid() && (value.Kind() == reflect.Pointer || value.Kind() == reflect.Interface) {
		if value.IsNil() {
			return reflect.Value{}
		}
		value = value.Elem()
	}
	return value
}

// unwrapInterface keeps nil entries addressable as invalid values so that
// walking past them fails while reading them yields nil.
func unwrapInterface(value reflect.Value) reflect.Value {
	if value.Kind() == reflect.Interface {
		if value.IsNil() {
			return reflect.Value{}
		}
		return value.Elem()
	}
	return value
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func findGetter(value reflect.Value, name string) (reflect.Value, bool) {
	exported := upperFirst(name)
	for _, candidate := range []string{"Get" + exported, "Is" + exported, "Has" + exported, exported} {
		method := value.MethodByName(candidate)
		if !method.IsValid() {
			continue
		}
		if isGetter(method.Type()) {
			return method, true
		}
	}
	return reflect.Value{}, false
}

func isGetter(t reflect.Type) bool {
	if t.NumIn() != 0 {
		return false
	}
	switch t.NumOut() {
	case 1:
		return true
	case 2:
		return t.Out(1) == errorType
	default:
		return false
	}
}

func callGetter(method reflect.Value) (reflect.Value, error) {
	out := method.Call(nil)
	if len(out) == 2 && !out[1].IsNil() {
		return reflect.Value{}, out[1].Interface().(error)
	}
	return unwrapInterface(out[0]), nil
}

func (r *Reflect) fieldIndex(t reflect.Type, name string) ([]int, bool) {
	cached, ok := r.fields.Load(t)
	if !ok {
		cached, _ = r.fields.LoadOrStore(t, indexFields(t))
	}
	index, ok := cached.(map[string][]int)[name]
	return index, ok
}

// indexFields maps every accepted spelling of each exported field (promoted
// fields included) to its index path.
func indexFields(t reflect.Type) map[string][]int {
	out := make(map[string][]int)
	for _, field := range reflect.VisibleFields(t) {
		if !field.IsExported() || field.Anonymous {
			continue
		}
		names := []string{field.Name, lowerFirst(field.Name)}
		if tag, ok := field.Tag.Lookup("json"); ok {
			if jsonName, _, _ := strings.Cut(tag, ","); jsonName != "" && jsonName != "-" {
				names = append(names, jsonName)
			}
		}
		for _, n := range names {
			existing, exists := out[n]
			if exists && len(existing) <= len(field.Index) {
				continue
			}
			out[n] = field.Index
		}
	}
	return out
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
