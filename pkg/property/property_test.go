package property

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fieldconfig/pkg/entity"
)

type recordingConfigurator struct {
	name     string
	supports bool
	err      error
	calls    *[]string
}

func (r recordingConfigurator) Supports(Config, entity.Metadata) bool { return r.supports }

func (r recordingConfigurator) Configure(_ context.Context, _ string, cfg *Config, _ entity.Metadata) error {
	*r.calls = append(*r.calls, r.name)
	cfg.CSSClass += r.name
	return r.err
}

func TestPipeline_PriorityAndSupport(t *testing.T) {
	var calls []string
	p := &Pipeline{}
	p.Register(recordingConfigurator{name: "a", supports: true, calls: &calls}, 0)
	p.Register(recordingConfigurator{name: "b", supports: true, calls: &calls}, 10)
	p.Register(recordingConfigurator{name: "c", supports: false, calls: &calls}, 5)
	p.Register(recordingConfigurator{name: "d", supports: true, calls: &calls}, 0)
	p.Register(nil, 100)

	if p.Len() != 4 {
		t.Fatalf("expected 4 configurators, got %d", p.Len())
	}

	cfg := New("title", TypeText)
	if err := p.Configure(context.Background(), ActionIndex, &cfg, nil); err != nil {
		t.Fatalf("configure: %v", err)
	}
	if diff := cmp.Diff([]string{"b", "a", "d"}, calls); diff != "" {
		t.Fatalf("call order mismatch (-want +got):\n%s", diff)
	}
	if cfg.CSSClass != "bad" {
		t.Fatalf("expected configurators to mutate cfg in order, got %q", cfg.CSSClass)
	}
}

func TestPipeline_StopsOnFirstError(t *testing.T) {
	var calls []string
	boom := errors.New("boom")
	p := NewPipeline(
		recordingConfigurator{name: "a", supports: true, calls: &calls, err: boom},
		recordingConfigurator{name: "b", supports: true, calls: &calls},
	)

	configs := []Config{New("one", TypeText), New("two", TypeText)}
	err := p.ConfigureAll(context.Background(), ActionEdit, configs, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if diff := cmp.Diff([]string{"a"}, calls); diff != "" {
		t.Fatalf("call mismatch (-want +got):\n%s", diff)
	}
}

func TestPipeline_ConfigureAllHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := NewPipeline(ConfiguratorFunc(func(context.Context, string, *Config, entity.Metadata) error {
		t.Fatalf("configurator must not run after cancellation")
		return nil
	}))
	if err := p.ConfigureAll(ctx, ActionIndex, []Config{New("x", "")}, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPipeline_NilConfig(t *testing.T) {
	if err := NewPipeline().Configure(context.Background(), ActionIndex, nil, nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}

func TestFromEntity_UsesTypeTemplates(t *testing.T) {
	md := entity.New("post", nil,
		entity.PropertyMetadata{Name: "title", Type: entity.TypeText},
		entity.PropertyMetadata{Name: "cover", Type: entity.TypeImage},
		entity.PropertyMetadata{Name: "misc"},
	)

	want := []Config{
		{Name: "title", Type: TypeText, TemplateName: "property/text"},
		{Name: "cover", Type: TypeImage, TemplateName: "property/image"},
		{Name: "misc", Type: TypeText, TemplateName: "property/text"},
	}
	if diff := cmp.Diff(want, FromEntity(md)); diff != "" {
		t.Fatalf("configs mismatch (-want +got):\n%s", diff)
	}
	if FromEntity(nil) != nil {
		t.Fatalf("expected nil for nil metadata")
	}
}

func TestConfig_CloneIsIndependent(t *testing.T) {
	cfg := New("title", TypeText)
	cfg.Label = String("Title")
	cfg.Help = String("help")
	cfg.Sortable = Bool(true)
	cfg.Required = Bool(false)
	cfg.TranslationParams = map[string]any{"x": 1}

	clone := cfg.Clone()
	*clone.Label = "Other"
	*clone.Sortable = false
	clone.TranslationParams["x"] = 2

	if cfg.LabelText() != "Title" || !cfg.IsSortable() || cfg.TranslationParams["x"] != 1 {
		t.Fatalf("clone shares state with original: %+v", cfg)
	}
	if diff := cmp.Diff(cfg, cfg.Clone()); diff != "" {
		t.Fatalf("clone differs (-want +got):\n%s", diff)
	}
}

func TestOverrides_LoadAndApply(t *testing.T) {
	doc := []byte(`
properties:
  title:
    label: Headline
    sortable: false
    translation_params:
      "%count%": 3
  cover:
    help: ""
    template_path: custom/cover.html
    required: true
`)
	overrides, err := LoadOverrides(doc)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	configs := []Config{New("title", TypeText), New("cover", TypeImage), New("body", TypeTextarea)}
	configs[0].TranslationParams = map[string]any{"%name%": "x"}
	overrides.ApplyAll(configs)

	title := configs[0]
	if title.LabelText() != "Headline" || title.Sortable == nil || *title.Sortable {
		t.Fatalf("title override not applied: %+v", title)
	}
	if diff := cmp.Diff(map[string]any{"%name%": "x", "%count%": 3}, title.TranslationParams); diff != "" {
		t.Fatalf("params mismatch (-want +got):\n%s", diff)
	}

	cover := configs[1]
	if cover.Help == nil || *cover.Help != "" {
		t.Fatalf("expected explicit empty help, got %v", cover.Help)
	}
	if cover.TemplatePath != "custom/cover.html" || !cover.IsRequired() {
		t.Fatalf("cover override not applied: %+v", cover)
	}

	if diff := cmp.Diff(New("body", TypeTextarea), configs[2]); diff != "" {
		t.Fatalf("body should be untouched (-want +got):\n%s", diff)
	}

	if _, err := LoadOverrides([]byte(" ")); err == nil {
		t.Fatalf("expected error for empty overrides")
	}
}

func TestOverride_TypeMovesConventionalTemplateName(t *testing.T) {
	cover := New("cover", TypeText)
	Override{Type: String(TypeImage)}.Apply(&cover)
	if cover.Type != TypeImage || cover.TemplateName != "property/image" {
		t.Fatalf("expected image template name, got type=%q template=%q", cover.Type, cover.TemplateName)
	}

	custom := New("avatar", TypeText)
	custom.TemplateName = "custom/avatar"
	Override{Type: String(TypeImage)}.Apply(&custom)
	if custom.TemplateName != "custom/avatar" {
		t.Fatalf("custom template name should survive a type change, got %q", custom.TemplateName)
	}

	both := New("logo", TypeText)
	Override{Type: String(TypeFile), TemplateName: String("custom/logo")}.Apply(&both)
	if both.Type != TypeFile || both.TemplateName != "custom/logo" {
		t.Fatalf("explicit template name should win, got type=%q template=%q", both.Type, both.TemplateName)
	}
}
