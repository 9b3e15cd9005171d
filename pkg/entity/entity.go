package entity

import (
	"sort"
	"strings"
)

// Metadata is the read-only view over one entity instance that property
// configurators consult. Implementations must be safe to call repeatedly
// within a single request.
type Metadata interface {
	Name() string
	HasProperty(name string) bool
	PropertyMetadata(name string) (PropertyMetadata, bool)
	Properties() []PropertyMetadata
	Instance() any
}

// PropertyMetadata describes one physical property of an entity.
type PropertyMetadata struct {
	Name       string         `json:"name" yaml:"name"`
	Type       string         `json:"type,omitempty" yaml:"type,omitempty"`
	Nullable   bool           `json:"nullable" yaml:"nullable"`
	Extensions map[string]any `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// Dto is the default Metadata implementation. The zero value describes an
// anonymous entity without properties.
type Dto struct {
	name       string
	instance   any
	properties map[string]PropertyMetadata
	order      []string
}

var _ Metadata = (*Dto)(nil)

// New builds a Dto from explicit property metadata. Later duplicates replace
// earlier entries but keep the original position.
func New(name string, instance any, properties ...PropertyMetadata) *Dto {
	dto := &Dto{
		name:       strings.TrimSpace(name),
		instance:   instance,
		properties: make(map[string]PropertyMetadata, len(properties)),
	}
	for _, prop := range properties {
		dto.add(prop)
	}
	return dto
}

func (d *Dto) add(prop PropertyMetadata) {
	prop.Name = strings.TrimSpace(prop.Name)
	if prop.Name == "" {
		return
	}
	if _, exists := d.properties[prop.Name]; !exists {
		d.order = append(d.order, prop.Name)
	}
	d.properties[prop.Name] = prop
}

// WithInstance returns a copy of the Dto bound to another instance. Property
// metadata is shared since it is never mutated after construction.
func (d *Dto) WithInstance(instance any) *Dto {
	if d == nil {
		return New("", instance)
	}
	clone := *d
	clone.instance = instance
	return &clone
}

// Name returns the entity name.
func (d *Dto) Name() string {
	if d == nil {
		return ""
	}
	return d.name
}

// HasProperty reports whether name is a physical property of the entity.
func (d *Dto) HasProperty(name string) bool {
	if d == nil {
		return false
	}
	_, ok := d.properties[name]
	return ok
}

// PropertyMetadata returns the metadata for name.
func (d *Dto) PropertyMetadata(name string) (PropertyMetadata, bool) {
	if d == nil {
		return PropertyMetadata{}, false
	}
	prop, ok := d.properties[name]
	return prop, ok
}

// Properties returns the metadata in declaration order.
func (d *Dto) Properties() []PropertyMetadata {
	if d == nil || len(d.order) == 0 {
		return nil
	}
	out := make([]PropertyMetadata, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.properties[name])
	}
	return out
}

// Instance returns the live entity instance (possibly nil).
func (d *Dto) Instance() any {
	if d == nil {
		return nil
	}
	return d.instance
}

// Names returns the property names sorted alphabetically.
func (d *Dto) Names() []string {
	if d == nil {
		return nil
	}
	names := append([]string(nil), d.order...)
	sort.Strings(names)
	return names
}
