// Package validation provides input validation for resolver settings and
// consumer-defined configuration.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection.
//
// # Struct Tag Validation
//
//	type Settings struct {
//	    DefaultScope string `mapstructure:"default_scope" validate:"omitempty,oneof=graph application cached shared unique container"`
//	}
//	err := validation.Validate(settings)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("name", name)
//	v.OneOf("scope", scopeName, []string{"graph", "cached"})
//	err := v.Validate()
package validation
