package appcontext

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the file representation of an App.
type Config struct {
	TranslationDomain string            `json:"translation_domain" yaml:"translation_domain"`
	Locale            string            `json:"locale" yaml:"locale"`
	Templates         map[string]string `json:"templates" yaml:"templates"`
}

// LoadConfig parses a JSON or YAML config document.
func LoadConfig(data []byte) (Config, error) {
	var cfg Config
	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, errors.New("appcontext: config is empty")
	}
	if err := json.Unmarshal(data, &cfg); err == nil {
		return cfg, nil
	}
	cfg = Config{}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("appcontext: parse config: %w", err)
	}
	return cfg, nil
}

// Options converts the config into App options. Callers can append more
// options (a theme, for example) before calling New.
func (c Config) Options() []Option {
	return []Option{
		WithTranslationDomain(c.TranslationDomain),
		WithLocale(c.Locale),
		WithTemplates(c.Templates),
	}
}

// FromConfig builds an App from cfg followed by extra options.
func FromConfig(cfg Config, extra ...Option) (*App, error) {
	return New(append(cfg.Options(), extra...)...)
}
