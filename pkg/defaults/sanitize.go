package defaults

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	helpPolicyOnce sync.Once
	helpPolicy     *bluemonday.Policy
)

// HTMLHelpSanitizer returns a sanitizer for translated help texts. Help may
// carry inline markup (links, emphasis, code), so it keeps the user generated
// content policy and drops everything else.
func HTMLHelpSanitizer() func(string) string {
	return sanitizeHelp
}

func sanitizeHelp(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return raw
	}
	return strings.TrimSpace(helpSanitizer().Sanitize(raw))
}

func helpSanitizer() *bluemonday.Policy {
	helpPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		helpPolicy = policy
	})
	return helpPolicy
}
