package property

import (
	"strings"

	"github.com/goliatone/go-fieldconfig/pkg/entity"
)

// Actions a property can be configured for.
const (
	ActionIndex  = "index"
	ActionDetail = "detail"
	ActionEdit   = "edit"
	ActionNew    = "new"
)

// Type tags re-exported from the entity package.
const (
	TypeText        = entity.TypeText
	TypeTextarea    = entity.TypeTextarea
	TypeInteger     = entity.TypeInteger
	TypeNumber      = entity.TypeNumber
	TypeBoolean     = entity.TypeBoolean
	TypeDateTime    = entity.TypeDateTime
	TypeDate        = entity.TypeDate
	TypeEmail       = entity.TypeEmail
	TypeURL         = entity.TypeURL
	TypeID          = entity.TypeID
	TypeAssociation = entity.TypeAssociation
	TypeImage       = entity.TypeImage
	TypeFile        = entity.TypeFile
	TypeArray       = entity.TypeArray
	TypeSimpleArray = entity.TypeSimpleArray
)

// Config describes one field rendered by an admin view. Pointer fields are
// tri-state: nil means "not set" and lets configurators pick a default.
// TemplatePath and TemplateName use the empty string for "not set".
type Config struct {
	Name              string         `json:"name" yaml:"name"`
	Type              string         `json:"type,omitempty" yaml:"type,omitempty"`
	Label             *string        `json:"label,omitempty" yaml:"label,omitempty"`
	Value             any            `json:"value,omitempty" yaml:"value,omitempty"`
	FormattedValue    any            `json:"formattedValue,omitempty" yaml:"formattedValue,omitempty"`
	Sortable          *bool          `json:"sortable,omitempty" yaml:"sortable,omitempty"`
	Virtual           bool           `json:"virtual" yaml:"virtual"`
	TemplatePath      string         `json:"templatePath,omitempty" yaml:"templatePath,omitempty"`
	TemplateName      string         `json:"templateName,omitempty" yaml:"templateName,omitempty"`
	Required          *bool          `json:"required,omitempty" yaml:"required,omitempty"`
	Help              *string        `json:"help,omitempty" yaml:"help,omitempty"`
	TranslationParams map[string]any `json:"translationParams,omitempty" yaml:"translationParams,omitempty"`
	CSSClass          string         `json:"cssClass,omitempty" yaml:"cssClass,omitempty"`
	Permission        string         `json:"permission,omitempty" yaml:"permission,omitempty"`
}

// New returns a Config for name with its type and template name set to the
// conventional "property/<type>" key.
func New(name, propertyType string) Config {
	cfg := Config{
		Name: strings.TrimSpace(name),
		Type: strings.TrimSpace(propertyType),
	}
	if cfg.Type != "" {
		cfg.TemplateName = "property/" + cfg.Type
	}
	return cfg
}

// FromEntity builds one Config per physical property of md.
func FromEntity(md entity.Metadata) []Config {
	if md == nil {
		return nil
	}
	props := md.Properties()
	out := make([]Config, 0, len(props))
	for _, prop := range props {
		typ := prop.Type
		if typ == "" {
			typ = TypeText
		}
		out = append(out, New(prop.Name, typ))
	}
	return out
}

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

// LabelText returns the label or "" when unset.
func (c Config) LabelText() string {
	if c.Label == nil {
		return ""
	}
	return *c.Label
}

// HelpText returns the help text or "" when unset.
func (c Config) HelpText() string {
	if c.Help == nil {
		return ""
	}
	return *c.Help
}

// IsSortable reports the sortable flag, treating unset as false.
func (c Config) IsSortable() bool { return c.Sortable != nil && *c.Sortable }

// IsRequired reports the required flag, treating unset as false.
func (c Config) IsRequired() bool { return c.Required != nil && *c.Required }

// Clone returns a copy that shares no pointers or maps with c. Value and
// FormattedValue are copied shallowly.
func (c Config) Clone() Config {
	out := c
	if c.Label != nil {
		out.Label = String(*c.Label)
	}
	if c.Help != nil {
		out.Help = String(*c.Help)
	}
	if c.Sortable != nil {
		out.Sortable = Bool(*c.Sortable)
	}
	if c.Required != nil {
		out.Required = Bool(*c.Required)
	}
	if c.TranslationParams != nil {
		out.TranslationParams = make(map[string]any, len(c.TranslationParams))
		for key, value := range c.TranslationParams {
			out.TranslationParams[key] = value
		}
	}
	return out
}
