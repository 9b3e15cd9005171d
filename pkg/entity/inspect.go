package entity

import (
	"reflect"
	"strings"
	"time"
	"unicode"
)

const adminTag = "admin"

var timeType = reflect.TypeOf(time.Time{})

// Inspect derives entity metadata from a struct instance (or pointer to one).
// Exported fields become properties named after their json tag or, failing
// that, the lower-camel field name. Embedded structs are flattened.
//
// The `admin` tag tunes the result: "-" skips the field, "nullable" and
// "notnull" force nullability, and "type=<tag>" overrides the inferred type.
// Without a tag, pointers, slices, maps and interfaces are nullable.
func Inspect(instance any) *Dto {
	t := reflect.TypeOf(instance)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	name := ""
	if t != nil {
		name = t.Name()
	}
	dto := New(name, instance)
	if t == nil || t.Kind() != reflect.Struct {
		return dto
	}
	inspectStruct(t, dto)
	return dto
}

func inspectStruct(t reflect.Type, dto *Dto) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous {
			embedded := field.Type
			if embedded.Kind() == reflect.Pointer {
				embedded = embedded.Elem()
			}
			if embedded.Kind() == reflect.Struct {
				inspectStruct(embedded, dto)
				continue
			}
		}
		if !field.IsExported() {
			continue
		}

		opts := parseAdminTag(field.Tag.Get(adminTag))
		if opts.skip {
			continue
		}
		propName := fieldName(field)
		if propName == "-" {
			continue
		}

		prop := PropertyMetadata{
			Name:     propName,
			Type:     inferType(field.Type),
			Nullable: nullableKind(field.Type),
		}
		if opts.typ != "" {
			prop.Type = opts.typ
		}
		if opts.nullable != nil {
			prop.Nullable = *opts.nullable
		}
		dto.add(prop)
	}
}

type adminOptions struct {
	skip     bool
	nullable *bool
	typ      string
}

func parseAdminTag(tag string) adminOptions {
	var opts adminOptions
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		switch {
		case part == "":
		case part == "-":
			opts.skip = true
		case part == "nullable":
			v := true
			opts.nullable = &v
		case part == "notnull":
			v := false
			opts.nullable = &v
		case strings.HasPrefix(part, "type="):
			opts.typ = strings.TrimSpace(strings.TrimPrefix(part, "type="))
		}
	}
	return opts
}

func fieldName(field reflect.StructField) string {
	if tag, ok := field.Tag.Lookup("json"); ok {
		if name, _, _ := strings.Cut(tag, ","); name != "" {
			return name
		}
	}
	return lowerFirst(field.Name)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

func nullableKind(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return true
	default:
		return false
	}
}

func inferType(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == timeType {
		return TypeDateTime
	}

	switch t.Kind() {
	case reflect.String:
		return TypeText
	case reflect.Bool:
		return TypeBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return TypeInteger
	case reflect.Float32, reflect.Float64:
		return TypeNumber
	case reflect.Slice, reflect.Array, reflect.Map:
		if t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8 {
			return TypeFile
		}
		return TypeArray
	case reflect.Struct:
		return TypeAssociation
	default:
		return TypeText
	}
}
