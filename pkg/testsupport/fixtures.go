package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fieldconfig/pkg/entity"
	"github.com/goliatone/go-fieldconfig/pkg/i18n"
)

// LoadEntity reads an OpenAPI fixture and binds the named schema to the
// record decoded from recordPath. An empty recordPath binds a nil instance.
func LoadEntity(t *testing.T, openapiPath, schema, recordPath string) *entity.Dto {
	t.Helper()

	dto, err := LoadEntityFromPath(context.Background(), openapiPath, schema, recordPath)
	if err != nil {
		t.Fatalf("load entity: %v", err)
	}
	return dto
}

// LoadEntityFromPath is LoadEntity without testing.T, for callers wiring
// fixtures outside of a test body.
func LoadEntityFromPath(ctx context.Context, openapiPath, schema, recordPath string) (*entity.Dto, error) {
	if openapiPath == "" {
		return nil, errors.New("testsupport: openapi path is required")
	}
	data, err := os.ReadFile(openapiPath)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read openapi: %w", err)
	}
	doc, err := entity.LoadOpenAPI(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("testsupport: load openapi: %w", err)
	}

	var record map[string]any
	if recordPath != "" {
		raw, err := os.ReadFile(recordPath)
		if err != nil {
			return nil, fmt.Errorf("testsupport: read record: %w", err)
		}
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, fmt.Errorf("testsupport: unmarshal record: %w", err)
		}
	}

	var instance any
	if record != nil {
		instance = record
	}
	return doc.Entity(schema, instance)
}

// Translator is a recording translator stub. Keys found in Messages are
// interpolated with i18n.Interpolate; everything else is reported missing.
type Translator struct {
	Messages map[string]string

	mu    sync.Mutex
	calls []TranslateCall
}

// TranslateCall records one Translate invocation.
type TranslateCall struct {
	Key    string
	Params map[string]any
	Domain string
}

var _ i18n.Translator = (*Translator)(nil)

// Translate implements i18n.Translator.
func (t *Translator) Translate(key string, params map[string]any, domain string) (string, error) {
	t.mu.Lock()
	t.calls = append(t.calls, TranslateCall{Key: key, Params: params, Domain: domain})
	t.mu.Unlock()

	msg, ok := t.Messages[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", i18n.ErrMissingTranslation, key)
	}
	return i18n.Interpolate(msg, params), nil
}

// Calls returns a copy of the recorded calls.
func (t *Translator) Calls() []TranslateCall {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]TranslateCall(nil), t.calls...)
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
// Returns true if the golden was written (test should exit early).
func WriteGolden(t *testing.T, path string, value any) bool {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// CompareJSON diffs the JSON encoding of got against the want document.
// Both sides are decoded into generic values first, so key order and
// number formatting do not matter.
func CompareJSON(t *testing.T, want []byte, got any) string {
	t.Helper()

	var wantValue any
	if err := json.Unmarshal(want, &wantValue); err != nil {
		t.Fatalf("unmarshal want: %v", err)
	}
	payload, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal got: %v", err)
	}
	var gotValue any
	if err := json.Unmarshal(payload, &gotValue); err != nil {
		t.Fatalf("unmarshal got: %v", err)
	}
	return cmp.Diff(wantValue, gotValue)
}
