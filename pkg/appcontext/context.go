package appcontext

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-fieldconfig/pkg/entity"
	"github.com/goliatone/go-fieldconfig/pkg/i18n"
)

// Template keys for the display states every property can end up in.
const (
	TemplateLabelNull         = "label/null"
	TemplateLabelEmpty        = "label/empty"
	TemplateLabelInaccessible = "label/inaccessible"
)

const (
	defaultLocale       = "en"
	defaultTemplateRoot = "admin"
	defaultTemplateExt  = ".html"
)

// ErrTemplateNotFound reports a template key without a registered path.
var ErrTemplateNotFound = errors.New("appcontext: template not found")

// Context is the read-only application state configurators consult while a
// request is being handled.
type Context interface {
	TranslationDomain() string
	Locale() string
	TemplatePath(key string) (string, error)
}

// PropertyTemplateKey returns the template key used for a property type.
func PropertyTemplateKey(propertyType string) string {
	return "property/" + strings.TrimSpace(propertyType)
}

// DefaultTemplates returns the built-in key to path mapping. The returned map
// is a fresh copy callers may mutate.
func DefaultTemplates() map[string]string {
	keys := []string{
		TemplateLabelNull,
		TemplateLabelEmpty,
		TemplateLabelInaccessible,
	}
	for _, typ := range entity.KnownTypes {
		keys = append(keys, PropertyTemplateKey(typ))
	}

	out := make(map[string]string, len(keys))
	for _, key := range keys {
		out[key] = defaultTemplateRoot + "/" + key + defaultTemplateExt
	}
	return out
}

// Option customises an App.
type Option func(*App)

// WithTranslationDomain sets the domain labels and help texts translate in.
func WithTranslationDomain(domain string) Option {
	return func(a *App) {
		if trimmed := strings.TrimSpace(domain); trimmed != "" {
			a.domain = trimmed
		}
	}
}

// WithLocale sets the active locale.
func WithLocale(locale string) Option {
	return func(a *App) {
		if trimmed := strings.TrimSpace(locale); trimmed != "" {
			a.locale = trimmed
		}
	}
}

// WithTemplates overrides or extends template paths. Empty paths remove the
// key.
func WithTemplates(templates map[string]string) Option {
	return func(a *App) {
		a.mergeTemplates(templates)
	}
}

// WithTheme applies template overrides from a go-theme selection. Manifest
// templates override the defaults and the selected variant overrides the
// manifest.
func WithTheme(selector theme.ThemeSelector, name, variant string) Option {
	return func(a *App) {
		if selector == nil {
			return
		}
		selection, err := selector.Select(name, variant)
		if err != nil {
			a.initErr = fmt.Errorf("appcontext: select theme %q: %w", name, err)
			return
		}
		if selection == nil || selection.Manifest == nil {
			return
		}
		a.theme = selection.Theme
		a.mergeTemplates(selection.Manifest.Templates)
		if v, ok := selection.Manifest.Variants[selection.Variant]; ok {
			a.mergeTemplates(v.Templates)
		}
	}
}

// App is the default Context implementation.
type App struct {
	domain    string
	locale    string
	theme     string
	templates map[string]string
	initErr   error
}

var _ Context = (*App)(nil)

// New builds an App with the default template map and the "messages"
// translation domain, then applies options in order.
func New(options ...Option) (*App, error) {
	app := &App{
		domain:    i18n.DefaultDomain,
		locale:    defaultLocale,
		templates: DefaultTemplates(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(app)
	}
	if app.initErr != nil {
		return nil, app.initErr
	}
	return app, nil
}

// MustNew panics when New fails. Useful for init-time wiring.
func MustNew(options ...Option) *App {
	app, err := New(options...)
	if err != nil {
		panic(err)
	}
	return app
}

func (a *App) mergeTemplates(templates map[string]string) {
	for key, value := range templates {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if strings.TrimSpace(value) == "" {
			delete(a.templates, key)
			continue
		}
		a.templates[key] = strings.TrimSpace(value)
	}
}

// TranslationDomain returns the active translation domain.
func (a *App) TranslationDomain() string { return a.domain }

// Locale returns the active locale.
func (a *App) Locale() string { return a.locale }

// Theme returns the selected theme name, if any.
func (a *App) Theme() string { return a.theme }

// TemplatePath resolves a logical template key to a concrete path.
func (a *App) TemplatePath(key string) (string, error) {
	path, ok := a.templates[strings.TrimSpace(key)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, key)
	}
	return path, nil
}

// TemplateKeys lists every registered template key, sorted.
func (a *App) TemplateKeys() []string {
	keys := make([]string, 0, len(a.templates))
	for key := range a.templates {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

type contextKey struct{}

// WithContext stores app in ctx for the duration of a request.
func WithContext(ctx context.Context, app Context) context.Context {
	return context.WithValue(ctx, contextKey{}, app)
}

// FromContext returns the Context stored in ctx.
func FromContext(ctx context.Context) (Context, bool) {
	if ctx == nil {
		return nil, false
	}
	app, ok := ctx.Value(contextKey{}).(Context)
	return app, ok && app != nil
}
