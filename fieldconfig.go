// Package fieldconfig resolves the display defaults of admin entity
// properties: value, label, sortability, template path, required flag and
// help text. The heavy lifting lives in pkg/defaults; this package exposes
// aliases and one-call entry points.
package fieldconfig

import (
	"context"
	"fmt"

	"github.com/goliatone/go-fieldconfig/pkg/defaults"
	"github.com/goliatone/go-fieldconfig/pkg/entity"
	"github.com/goliatone/go-fieldconfig/pkg/property"
)

// Config aliases property.Config, the per-property render configuration.
type Config = property.Config

// Configurator aliases property.Configurator.
type Configurator = property.Configurator

// Pipeline aliases property.Pipeline.
type Pipeline = property.Pipeline

// Overrides aliases property.Overrides, keyed by property name.
type Overrides = property.Overrides

// Metadata aliases entity.Metadata.
type Metadata = entity.Metadata

// DefaultsPriority is the pipeline priority of the defaults resolver. Type
// specific configurators registered below it see fully resolved configs.
const DefaultsPriority = 100

// NewPipeline returns a pipeline with the defaults resolver registered at
// DefaultsPriority. Additional configurators can be registered afterwards.
func NewPipeline(options ...defaults.Option) *property.Pipeline {
	p := property.NewPipeline()
	p.Register(defaults.New(options...), DefaultsPriority)
	return p
}

// ConfigureEntity builds one Config per property of md, applies overrides and
// runs the defaults pipeline for action.
func ConfigureEntity(ctx context.Context, action string, md entity.Metadata, overrides property.Overrides, options ...defaults.Option) ([]property.Config, error) {
	if md == nil {
		return nil, fmt.Errorf("fieldconfig: entity metadata is required")
	}
	configs := property.FromEntity(md)
	overrides.ApplyAll(configs)

	if err := NewPipeline(options...).ConfigureAll(ctx, action, configs, md); err != nil {
		return nil, fmt.Errorf("fieldconfig: configure %s: %w", md.Name(), err)
	}
	return configs, nil
}
