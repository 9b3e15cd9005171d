// Package appcontext exposes the request scoped application state that
// property configurators read: the active translation domain, the locale and
// the mapping from logical template keys ("label/null", "property/text") to
// concrete template paths. Template paths can be tuned per application via
// options, a YAML/JSON config file, or a go-theme manifest.
package appcontext
