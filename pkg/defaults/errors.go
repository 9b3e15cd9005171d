package defaults

import (
	"errors"
	"fmt"
)

// ErrMissingTemplate marks a property that reached template resolution with
// neither a template path nor a template name. It is a configuration defect.
var ErrMissingTemplate = errors.New("defaults: property must define either a template name or a template path")

var errMissingTranslator = errors.New("defaults: translator is not configured")

// TemplateError reports a template resolution failure for one property.
type TemplateError struct {
	Property string
	Key      string
	Err      error
}

func (e *TemplateError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("defaults: property %q: %v", e.Property, e.Err)
	}
	return fmt.Sprintf("defaults: property %q: template %q: %v", e.Property, e.Key, e.Err)
}

func (e *TemplateError) Unwrap() error { return e.Err }
