package appcontext

import (
	"context"
	"errors"
	"sort"
	"testing"

	theme "github.com/goliatone/go-theme"
)

func TestNew_Defaults(t *testing.T) {
	app, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if app.TranslationDomain() != "messages" {
		t.Fatalf("expected messages domain, got %q", app.TranslationDomain())
	}
	if app.Locale() != "en" {
		t.Fatalf("expected en locale, got %q", app.Locale())
	}

	path, err := app.TemplatePath(TemplateLabelNull)
	if err != nil || path != "admin/label/null.html" {
		t.Fatalf("unexpected null template %q (%v)", path, err)
	}
	path, err = app.TemplatePath(PropertyTemplateKey("simple_array"))
	if err != nil || path != "admin/property/simple_array.html" {
		t.Fatalf("unexpected simple_array template %q (%v)", path, err)
	}
}

func TestTemplatePath_UnknownKey(t *testing.T) {
	app := MustNew()
	if _, err := app.TemplatePath("property/unknown"); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestWithTemplates_OverridesAndRemoves(t *testing.T) {
	app := MustNew(
		WithTranslationDomain("admin"),
		WithLocale(" fr "),
		WithTemplates(map[string]string{
			TemplateLabelNull:  "custom/null.html",
			TemplateLabelEmpty: "",
			"property/rating":  "custom/rating.html",
		}),
	)

	if app.TranslationDomain() != "admin" || app.Locale() != "fr" {
		t.Fatalf("options not applied: domain=%q locale=%q", app.TranslationDomain(), app.Locale())
	}
	if path, _ := app.TemplatePath(TemplateLabelNull); path != "custom/null.html" {
		t.Fatalf("expected override, got %q", path)
	}
	if _, err := app.TemplatePath(TemplateLabelEmpty); err == nil {
		t.Fatalf("expected empty path to remove key")
	}
	if path, _ := app.TemplatePath("property/rating"); path != "custom/rating.html" {
		t.Fatalf("expected new key, got %q", path)
	}
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     int
}

func (s *stubThemeSelector) Select(_, _ string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls++
	return s.selection, s.err
}

func TestWithTheme_VariantOverridesManifest(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Templates: map[string]string{
			TemplateLabelNull: "themes/acme/null.html",
			"property/text":   "themes/acme/text.html",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Templates: map[string]string{
					"property/text": "themes/acme/dark/text.html",
				},
			},
		},
	}
	selector := &stubThemeSelector{selection: &theme.Selection{
		Theme:    "acme",
		Variant:  "dark",
		Manifest: manifest,
	}}

	app, err := New(WithTheme(selector, "acme", "dark"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if selector.calls != 1 {
		t.Fatalf("expected selector called once, got %d", selector.calls)
	}
	if app.Theme() != "acme" {
		t.Fatalf("expected acme theme, got %q", app.Theme())
	}

	cases := map[string]string{
		TemplateLabelNull:  "themes/acme/null.html",
		"property/text":    "themes/acme/dark/text.html",
		TemplateLabelEmpty: "admin/label/empty.html",
	}
	for key, want := range cases {
		if got, _ := app.TemplatePath(key); got != want {
			t.Fatalf("%s: expected %q, got %q", key, want, got)
		}
	}
}

func TestWithTheme_SelectorError(t *testing.T) {
	selector := &stubThemeSelector{err: errors.New("boom")}
	if _, err := New(WithTheme(selector, "acme", "")); err == nil {
		t.Fatalf("expected selector error to surface")
	}
}

func TestContextPropagation(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Fatalf("expected no app in empty context")
	}
	app := MustNew(WithTranslationDomain("admin"))
	ctx := WithContext(context.Background(), app)
	got, ok := FromContext(ctx)
	if !ok || got.TranslationDomain() != "admin" {
		t.Fatalf("expected app from context")
	}
}

func TestLoadConfig_YAMLAndJSON(t *testing.T) {
	yamlCfg, err := LoadConfig([]byte("translation_domain: admin\nlocale: de\ntemplates:\n  label/null: custom/null.html\n"))
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	jsonCfg, err := LoadConfig([]byte(`{"translation_domain":"admin","locale":"de","templates":{"label/null":"custom/null.html"}}`))
	if err != nil {
		t.Fatalf("json: %v", err)
	}

	for _, cfg := range []Config{yamlCfg, jsonCfg} {
		app, err := FromConfig(cfg)
		if err != nil {
			t.Fatalf("from config: %v", err)
		}
		if app.TranslationDomain() != "admin" || app.Locale() != "de" {
			t.Fatalf("unexpected app %+v", app)
		}
		if path, _ := app.TemplatePath(TemplateLabelNull); path != "custom/null.html" {
			t.Fatalf("expected template override, got %q", path)
		}
	}

	if _, err := LoadConfig(nil); err == nil {
		t.Fatalf("expected error for empty config")
	}
}

func TestTemplateKeys_SortedAndReflectOverrides(t *testing.T) {
	app := MustNew(WithTemplates(map[string]string{
		TemplateLabelEmpty: "",
		"property/rating":  "custom/rating.html",
	}))

	keys := app.TemplateKeys()
	if !sort.StringsAreSorted(keys) {
		t.Fatalf("expected sorted keys, got %v", keys)
	}
	if len(keys) != len(DefaultTemplates()) {
		t.Fatalf("expected one key removed and one added, got %d keys", len(keys))
	}
	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		seen[key] = true
	}
	if seen[TemplateLabelEmpty] || !seen["property/rating"] || !seen[TemplateLabelNull] {
		t.Fatalf("unexpected keys: %v", keys)
	}
}
