package property

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Override is a partial Config decoded from configuration files. Only the
// fields that are present are applied.
type Override struct {
	Label             *string        `json:"label" yaml:"label"`
	Help              *string        `json:"help" yaml:"help"`
	Sortable          *bool          `json:"sortable" yaml:"sortable"`
	Required          *bool          `json:"required" yaml:"required"`
	TemplatePath      *string        `json:"template_path" yaml:"template_path"`
	TemplateName      *string        `json:"template_name" yaml:"template_name"`
	Type              *string        `json:"type" yaml:"type"`
	CSSClass          *string        `json:"css_class" yaml:"css_class"`
	Permission        *string        `json:"permission" yaml:"permission"`
	TranslationParams map[string]any `json:"translation_params" yaml:"translation_params"`
}

// Apply copies every set field of o onto cfg. Translation params are merged.
// A type override also moves a conventional "property/<type>" template name
// to the new type unless the template name is overridden too.
func (o Override) Apply(cfg *Config) {
	if cfg == nil {
		return
	}
	if o.Label != nil {
		cfg.Label = String(*o.Label)
	}
	if o.Help != nil {
		cfg.Help = String(*o.Help)
	}
	if o.Sortable != nil {
		cfg.Sortable = Bool(*o.Sortable)
	}
	if o.Required != nil {
		cfg.Required = Bool(*o.Required)
	}
	if o.TemplatePath != nil {
		cfg.TemplatePath = strings.TrimSpace(*o.TemplatePath)
	}
	if o.Type != nil {
		previous := cfg.Type
		cfg.Type = strings.TrimSpace(*o.Type)
		if cfg.TemplateName == "" || cfg.TemplateName == "property/"+previous {
			cfg.TemplateName = ""
			if cfg.Type != "" {
				cfg.TemplateName = "property/" + cfg.Type
			}
		}
	}
	if o.TemplateName != nil {
		cfg.TemplateName = strings.TrimSpace(*o.TemplateName)
	}
	if o.CSSClass != nil {
		cfg.CSSClass = *o.CSSClass
	}
	if o.Permission != nil {
		cfg.Permission = *o.Permission
	}
	if len(o.TranslationParams) > 0 {
		if cfg.TranslationParams == nil {
			cfg.TranslationParams = make(map[string]any, len(o.TranslationParams))
		}
		for key, value := range o.TranslationParams {
			cfg.TranslationParams[key] = value
		}
	}
}

// Overrides maps property names to their overrides.
type Overrides map[string]Override

// LoadOverrides parses a JSON or YAML document shaped as
// {"properties": {"<name>": {...}}}.
func LoadOverrides(data []byte) (Overrides, error) {
	var doc struct {
		Properties Overrides `json:"properties" yaml:"properties"`
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.New("property: overrides document is empty")
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		doc.Properties = nil
		if yamlErr := yaml.Unmarshal(data, &doc); yamlErr != nil {
			return nil, fmt.Errorf("property: parse overrides: %w", yamlErr)
		}
	}
	return doc.Properties, nil
}

// ApplyAll applies the matching override to each config by name.
func (o Overrides) ApplyAll(configs []Config) {
	if len(o) == 0 {
		return
	}
	for i := range configs {
		if override, ok := o[configs[i].Name]; ok {
			override.Apply(&configs[i])
		}
	}
}
