// Package property defines the configuration record describing one field of
// an admin entity view, the Configurator contract that fills in its derived
// attributes, and the Pipeline that chains configurators. Optional booleans
// and strings are pointers so "not set" stays distinguishable from an
// explicit false or empty value. Overrides decoded from YAML/JSON let
// applications pin labels, help texts, templates and flags per property.
package property
