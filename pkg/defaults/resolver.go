package defaults

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-fieldconfig/pkg/accessor"
	"github.com/goliatone/go-fieldconfig/pkg/appcontext"
	"github.com/goliatone/go-fieldconfig/pkg/entity"
	"github.com/goliatone/go-fieldconfig/pkg/i18n"
	"github.com/goliatone/go-fieldconfig/pkg/property"
)

// Option customises a Resolver.
type Option func(*Resolver)

// WithAccessor sets the accessor used to read property values.
func WithAccessor(acc accessor.Accessor) Option {
	return func(r *Resolver) {
		if acc != nil {
			r.accessor = acc
		}
	}
}

// WithTranslator sets the translator for labels and help texts.
func WithTranslator(t i18n.Translator) Option {
	return func(r *Resolver) {
		r.translator = t
	}
}

// WithAppContext sets the application context used when the request context
// does not carry one (see appcontext.WithContext).
func WithAppContext(app appcontext.Context) Option {
	return func(r *Resolver) {
		if app != nil {
			r.app = app
		}
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMissingTranslationHandler overrides what is rendered for keys the
// translator cannot resolve.
func WithMissingTranslationHandler(handler MissingTranslationHandler) Option {
	return func(r *Resolver) {
		if handler != nil {
			r.onMissing = handler
		}
	}
}

// WithHelpSanitizer post-processes translated help texts, e.g. with
// HTMLHelpSanitizer.
func WithHelpSanitizer(fn func(string) string) Option {
	return func(r *Resolver) {
		r.sanitizeHelp = fn
	}
}

// Resolver fills in the attributes every property needs regardless of its
// type: value, formatted value, label, sortable, virtual, template path,
// required and help. It supports every property and is safe for concurrent
// use; each call only touches the Config it is given.
type Resolver struct {
	accessor     accessor.Accessor
	translator   i18n.Translator
	app          appcontext.Context
	logger       *zap.Logger
	onMissing    MissingTranslationHandler
	sanitizeHelp func(string) string
}

var _ property.Configurator = (*Resolver)(nil)

// New constructs a Resolver. Without options it reads values by reflection,
// echoes labels untranslated and resolves the built-in template paths.
func New(options ...Option) *Resolver {
	r := &Resolver{
		accessor:   accessor.New(),
		translator: i18n.Identity(),
		logger:     zap.NewNop(),
		onMissing:  missingTranslationDefault,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.app == nil {
		r.app = appcontext.MustNew()
	}
	return r
}

// Supports returns true: these defaults apply to every kind of property.
func (r *Resolver) Supports(property.Config, entity.Metadata) bool {
	return true
}

// Configure resolves cfg in place. On error cfg is left untouched.
func (r *Resolver) Configure(ctx context.Context, action string, cfg *property.Config, md entity.Metadata) error {
	if cfg == nil {
		return fmt.Errorf("defaults: config is required")
	}
	resolved, err := r.Resolve(ctx, action, *cfg, md)
	if err != nil {
		return err
	}
	*cfg = resolved
	return nil
}

// Resolve returns a fully configured copy of cfg. The input is not modified.
// The only failure is a property without template path or template name that
// needs one, reported as a *TemplateError wrapping ErrMissingTemplate, or a
// template key the application context cannot resolve.
func (r *Resolver) Resolve(ctx context.Context, action string, cfg property.Config, md entity.Metadata) (property.Config, error) {
	if md == nil {
		md = entity.New("", nil)
	}
	app := r.appContext(ctx)
	domain := app.TranslationDomain()
	logger := r.logger.With(
		zap.String("entity", md.Name()),
		zap.String("property", cfg.Name),
		zap.String("action", action),
	)

	out := cfg.Clone()
	readable, value := r.readValue(md.Instance(), cfg.Name, logger)
	exists := md.HasProperty(cfg.Name)

	out.Value = value
	out.FormattedValue = value
	out.Label = property.String(r.label(cfg, domain))
	out.Sortable = property.Bool(sortable(cfg, exists))
	out.Virtual = !exists

	templatePath, err := r.templatePath(app, cfg, readable, value, logger)
	if err != nil {
		return cfg, err
	}
	out.TemplatePath = templatePath
	out.Required = property.Bool(required(cfg, md, exists))

	if cfg.Help != nil {
		out.Help = property.String(r.help(cfg, domain))
	}
	return out, nil
}

func (r *Resolver) appContext(ctx context.Context) appcontext.Context {
	if app, ok := appcontext.FromContext(ctx); ok {
		return app
	}
	return r.app
}

func (r *Resolver) readValue(instance any, name string, logger *zap.Logger) (bool, any) {
	if !r.accessor.IsReadable(instance, name) {
		return false, nil
	}
	value, err := r.accessor.Value(instance, name)
	if err != nil {
		logger.Warn("property read failed; rendering as inaccessible", zap.Error(err))
		return false, nil
	}
	return true, value
}

func (r *Resolver) label(cfg property.Config, domain string) string {
	var label string
	if cfg.Label != nil {
		label = *cfg.Label
	} else {
		label = Humanize(cfg.Name)
	}
	if label == "" {
		return label
	}
	return r.translate(label, cfg.TranslationParams, domain)
}

func sortable(cfg property.Config, exists bool) bool {
	if cfg.Sortable != nil {
		return *cfg.Sortable
	}
	return exists
}

func (r *Resolver) templatePath(app appcontext.Context, cfg property.Config, readable bool, value any, logger *zap.Logger) (string, error) {
	if cfg.TemplatePath != "" {
		return cfg.TemplatePath, nil
	}

	key := cfg.TemplateName
	switch {
	case !readable:
		key = appcontext.TemplateLabelInaccessible
	case IsNull(value):
		key = appcontext.TemplateLabelNull
	case isEmptyState(cfg.Type, value):
		key = appcontext.TemplateLabelEmpty
	case key == "":
		return "", &TemplateError{Property: cfg.Name, Err: ErrMissingTemplate}
	}

	path, err := app.TemplatePath(key)
	if err != nil {
		return "", &TemplateError{Property: cfg.Name, Key: key, Err: err}
	}
	if key != cfg.TemplateName {
		logger.Debug("using state template", zap.String("template", key))
	}
	return path, nil
}

func isEmptyState(propertyType string, value any) bool {
	if _, ok := emptyStateTypes[propertyType]; !ok {
		return false
	}
	return IsEmpty(value)
}

func required(cfg property.Config, md entity.Metadata, exists bool) bool {
	if cfg.Required != nil {
		return *cfg.Required
	}
	if !exists {
		return false
	}
	meta, ok := md.PropertyMetadata(cfg.Name)
	if !ok {
		return true
	}
	return !meta.Nullable
}

func (r *Resolver) help(cfg property.Config, domain string) string {
	help := *cfg.Help
	if help == "" {
		return help
	}
	translated := r.translate(help, cfg.TranslationParams, domain)
	if r.sanitizeHelp != nil {
		translated = r.sanitizeHelp(translated)
	}
	return translated
}
