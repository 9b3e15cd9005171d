// Package i18n provides the translation contract used by property
// configurators and a small message catalog implementation. Catalogs hold
// messages for a single locale grouped by translation domain, mirroring the
// "<domain>.<locale>.yaml" layout common to admin bundles.
package i18n

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// DefaultDomain is used when callers pass an empty domain.
const DefaultDomain = "messages"

// ErrMissingTranslation reports that a key has no message in the domain.
var ErrMissingTranslation = errors.New("i18n: missing translation")

// Translator resolves a message key within a translation domain, applying
// the supplied parameters.
type Translator interface {
	Translate(key string, params map[string]any, domain string) (string, error)
}

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(key string, params map[string]any, domain string) (string, error)

// Translate calls the underlying function.
func (fn TranslatorFunc) Translate(key string, params map[string]any, domain string) (string, error) {
	return fn(key, params, domain)
}

// Identity returns a Translator that echoes the key with parameters applied.
// Useful when an application ships without catalogs.
func Identity() Translator {
	return TranslatorFunc(func(key string, params map[string]any, _ string) (string, error) {
		return Interpolate(key, params), nil
	})
}

// Catalog is an in-memory Translator for one locale. It is safe for
// concurrent use.
type Catalog struct {
	mu       sync.RWMutex
	locale   string
	messages map[string]map[string]string
}

var _ Translator = (*Catalog)(nil)

// NewCatalog creates an empty catalog for locale.
func NewCatalog(locale string) *Catalog {
	return &Catalog{
		locale:   strings.TrimSpace(locale),
		messages: make(map[string]map[string]string),
	}
}

// Locale returns the catalog locale.
func (c *Catalog) Locale() string {
	return c.locale
}

// Add merges messages into domain; existing keys are overwritten.
func (c *Catalog) Add(domain string, messages map[string]string) {
	domain = normaliseDomain(domain)
	c.mu.Lock()
	defer c.mu.Unlock()

	target, ok := c.messages[domain]
	if !ok {
		target = make(map[string]string, len(messages))
		c.messages[domain] = target
	}
	for key, msg := range messages {
		target[key] = msg
	}
}

// Domains lists the domains holding at least one message.
func (c *Catalog) Domains() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, 0, len(c.messages))
	for domain, msgs := range c.messages {
		if len(msgs) > 0 {
			out = append(out, domain)
		}
	}
	sort.Strings(out)
	return out
}

// Translate implements Translator.
func (c *Catalog) Translate(key string, params map[string]any, domain string) (string, error) {
	domain = normaliseDomain(domain)

	c.mu.RLock()
	msg, ok := c.messages[domain][key]
	c.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("%w: %q in domain %q (locale %q)", ErrMissingTranslation, key, domain, c.locale)
	}
	return Interpolate(msg, params), nil
}

func normaliseDomain(domain string) string {
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return DefaultDomain
	}
	return domain
}

// Interpolate replaces parameter placeholders in msg. Keys are applied
// literally when already wrapped ("%name%", "{name}"); bare keys match both
// wrapped forms. Longer placeholders win over shorter ones.
func Interpolate(msg string, params map[string]any) string {
	if len(params) == 0 || msg == "" {
		return msg
	}

	replacements := make(map[string]string, len(params)*3)
	for key, value := range params {
		if key == "" {
			continue
		}
		text := fmt.Sprint(value)
		if isWrapped(key) {
			replacements[key] = text
			continue
		}
		replacements["%"+key+"%"] = text
		replacements["{"+key+"}"] = text
	}

	placeholders := make([]string, 0, len(replacements))
	for placeholder := range replacements {
		placeholders = append(placeholders, placeholder)
	}
	sort.Slice(placeholders, func(i, j int) bool {
		if len(placeholders[i]) == len(placeholders[j]) {
			return placeholders[i] < placeholders[j]
		}
		return len(placeholders[i]) > len(placeholders[j])
	})

	pairs := make([]string, 0, len(placeholders)*2)
	for _, placeholder := range placeholders {
		pairs = append(pairs, placeholder, replacements[placeholder])
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

func isWrapped(key string) bool {
	if len(key) < 2 {
		return false
	}
	first, last := key[0], key[len(key)-1]
	return (first == '%' && last == '%') || (first == '{' && last == '}')
}
