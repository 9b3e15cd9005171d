package entity

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

const schemaTypeNull = "null"

// TypeExtensionKey lets a schema property pin its admin type tag.
const TypeExtensionKey = "x-admin-type"

// Document wraps a parsed OpenAPI document whose component schemas describe
// admin entities.
type Document struct {
	spec *openapi3.T
}

// LoadOpenAPI parses an OpenAPI 3 document (JSON or YAML).
func LoadOpenAPI(ctx context.Context, data []byte) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("entity: openapi document is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("entity: load openapi document: %w", err)
	}
	return &Document{spec: spec}, nil
}

// SchemaNames returns the component schema names sorted alphabetically.
func (d *Document) SchemaNames() []string {
	if d == nil || d.spec == nil || d.spec.Components == nil {
		return nil
	}
	names := make([]string, 0, len(d.spec.Components.Schemas))
	for name := range d.spec.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entity builds a Dto for the named component schema bound to instance.
// Properties are ordered alphabetically since schema maps carry no order.
func (d *Document) Entity(schemaName string, instance any) (*Dto, error) {
	if d == nil || d.spec == nil || d.spec.Components == nil {
		return nil, fmt.Errorf("entity: schema %q not found", schemaName)
	}
	ref, ok := d.spec.Components.Schemas[schemaName]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("entity: schema %q not found", schemaName)
	}

	schema := ref.Value
	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	props := make([]PropertyMetadata, 0, len(names))
	for _, name := range names {
		propRef := schema.Properties[name]
		if propRef == nil {
			continue
		}
		_, isRequired := required[name]
		props = append(props, convertProperty(name, propRef, isRequired))
	}
	return New(schemaName, instance, props...), nil
}

func convertProperty(name string, ref *openapi3.SchemaRef, required bool) PropertyMetadata {
	prop := PropertyMetadata{
		Name:     name,
		Nullable: !required,
	}
	if ref.Value == nil {
		prop.Type = TypeAssociation
		return prop
	}

	src := ref.Value
	if src.Nullable || includesNull(src.Type) {
		prop.Nullable = true
	}
	prop.Type = schemaType(ref)
	if len(src.Extensions) > 0 {
		prop.Extensions = make(map[string]any, len(src.Extensions))
		for key, value := range src.Extensions {
			prop.Extensions[key] = value
		}
		if override, ok := src.Extensions[TypeExtensionKey].(string); ok && strings.TrimSpace(override) != "" {
			prop.Type = strings.TrimSpace(override)
		}
	}
	return prop
}

func schemaType(ref *openapi3.SchemaRef) string {
	if ref.Ref != "" {
		return TypeAssociation
	}
	src := ref.Value
	switch primaryType(src.Type) {
	case openapi3.TypeInteger:
		return TypeInteger
	case openapi3.TypeNumber:
		return TypeNumber
	case openapi3.TypeBoolean:
		return TypeBoolean
	case openapi3.TypeArray:
		return TypeArray
	case openapi3.TypeObject:
		return TypeAssociation
	}

	switch strings.ToLower(src.Format) {
	case "binary", "byte":
		return TypeFile
	case "date-time":
		return TypeDateTime
	case "date":
		return TypeDate
	case "email":
		return TypeEmail
	case "uri", "url":
		return TypeURL
	case "uuid":
		return TypeID
	}
	return TypeText
}

func primaryType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, value := range types.Slice() {
		if value != schemaTypeNull {
			return value
		}
	}
	return ""
}

func includesNull(types *openapi3.Types) bool {
	if types == nil {
		return false
	}
	for _, value := range types.Slice() {
		if value == schemaTypeNull {
			return true
		}
	}
	return false
}
