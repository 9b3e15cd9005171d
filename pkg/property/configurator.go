package property

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-fieldconfig/pkg/entity"
)

// Configurator fills in attributes of a property Config. Configure receives
// the action being rendered ("index", "edit", ...) and may only mutate cfg.
type Configurator interface {
	Supports(cfg Config, md entity.Metadata) bool
	Configure(ctx context.Context, action string, cfg *Config, md entity.Metadata) error
}

// ConfiguratorFunc adapts a function into a Configurator that supports every
// property.
type ConfiguratorFunc func(ctx context.Context, action string, cfg *Config, md entity.Metadata) error

// Supports always returns true.
func (fn ConfiguratorFunc) Supports(Config, entity.Metadata) bool { return true }

// Configure calls the underlying function.
func (fn ConfiguratorFunc) Configure(ctx context.Context, action string, cfg *Config, md entity.Metadata) error {
	return fn(ctx, action, cfg, md)
}

type entry struct {
	configurator Configurator
	priority     int
	order        int
}

// Pipeline runs configurators in priority order (higher first, ties broken
// by registration order). The zero value is ready to use.
type Pipeline struct {
	mu      sync.RWMutex
	entries []entry
}

// NewPipeline constructs a pipeline with the given configurators registered
// at priority 0.
func NewPipeline(configurators ...Configurator) *Pipeline {
	p := &Pipeline{}
	for _, c := range configurators {
		p.Register(c, 0)
	}
	return p
}

// Register adds a configurator. Nil configurators are ignored.
func (p *Pipeline) Register(c Configurator, priority int) {
	if p == nil || c == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.entries = append(p.entries, entry{
		configurator: c,
		priority:     priority,
		order:        len(p.entries),
	})
	sort.SliceStable(p.entries, func(i, j int) bool {
		if p.entries[i].priority == p.entries[j].priority {
			return p.entries[i].order < p.entries[j].order
		}
		return p.entries[i].priority > p.entries[j].priority
	})
}

// Len returns the number of registered configurators.
func (p *Pipeline) Len() int {
	if p == nil {
		return 0
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.entries)
}

// Configure runs every supporting configurator against cfg, stopping at the
// first error.
func (p *Pipeline) Configure(ctx context.Context, action string, cfg *Config, md entity.Metadata) error {
	if cfg == nil {
		return fmt.Errorf("property: config is required")
	}
	if p == nil {
		return nil
	}

	p.mu.RLock()
	entries := append([]entry(nil), p.entries...)
	p.mu.RUnlock()

	for _, e := range entries {
		if !e.configurator.Supports(*cfg, md) {
			continue
		}
		if err := e.configurator.Configure(ctx, action, cfg, md); err != nil {
			return err
		}
	}
	return nil
}

// ConfigureAll configures each config in place, stopping at the first error.
func (p *Pipeline) ConfigureAll(ctx context.Context, action string, configs []Config, md entity.Metadata) error {
	for i := range configs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.Configure(ctx, action, &configs[i], md); err != nil {
			return err
		}
	}
	return nil
}
