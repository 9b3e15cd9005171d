package defaults

import (
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-fieldconfig/pkg/i18n"
)

// MissingTranslationHandler decides the string used when the translator
// fails or returns nothing for key. The default returns key unchanged.
type MissingTranslationHandler func(key string, params map[string]any, domain string, err error) string

func missingTranslationDefault(key string, _ map[string]any, _ string, _ error) string {
	return key
}

func (r *Resolver) translate(key string, params map[string]any, domain string) string {
	if r.translator == nil {
		return r.onMissing(key, params, domain, errMissingTranslator)
	}

	msg, err := r.translator.Translate(key, params, domain)
	if err == nil && strings.TrimSpace(msg) != "" {
		return msg
	}
	if err == nil {
		err = i18n.ErrMissingTranslation
	}
	r.logger.Debug("translation missing",
		zap.String("key", key),
		zap.String("domain", domain),
		zap.Error(err),
	)
	return r.onMissing(key, params, domain, err)
}
