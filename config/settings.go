package config

import (
	apperrors "github.com/kbukum/resolver/errors"
	"github.com/kbukum/resolver/logger"
	"github.com/kbukum/resolver/validation"
)

// Settings configures a resolver registry. Projects that keep their own
// configuration struct can embed Settings under a `resolver` key.
type Settings struct {
	// DefaultScope selects the caching scope applied to registrations that
	// do not choose one explicitly.
	DefaultScope string `yaml:"default_scope" mapstructure:"default_scope" validate:"omitempty,oneof=graph application cached shared unique container"`
	// Logging configures the registry logger.
	Logging logger.Config `yaml:"logging" mapstructure:"logging"`
	// Metrics enables OpenTelemetry instrument recording for registry activity.
	Metrics MetricsSettings `yaml:"metrics" mapstructure:"metrics"`
	// Tracing enables a span around every top-level resolution.
	Tracing TracingSettings `yaml:"tracing" mapstructure:"tracing"`
}

// MetricsSettings controls metric recording.
type MetricsSettings struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// TracingSettings controls resolution tracing.
type TracingSettings struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// ApplyDefaults applies default values to the settings.
func (s *Settings) ApplyDefaults() {
	if s.DefaultScope == "" {
		s.DefaultScope = "graph"
	}
	s.Logging.ApplyDefaults()
}

// Validate validates the settings.
func (s *Settings) Validate() error {
	if err := validation.Validate(s); err != nil {
		return apperrors.InvalidConfig("invalid registry settings").WithCause(err)
	}
	if err := s.Logging.Validate(); err != nil {
		return apperrors.InvalidConfig("invalid logging settings").WithCause(err)
	}
	return nil
}
