package bootstrap

import (
	"time"

	"github.com/kbukum/resolver"
	"github.com/kbukum/resolver/config"
	"github.com/kbukum/resolver/logger"
	"github.com/kbukum/resolver/observability"
)

// Option configures the App during assembly.
type Option func(*appOptions)

// appOptions collects all option values before applying them to the App.
type appOptions struct {
	serviceName     string
	settings        *config.Settings
	loadOptions     []config.LoaderOption
	logger          *logger.Logger
	registry        *resolver.Registry
	modules         []resolver.Module
	meterConfig     *observability.MeterConfig
	tracerConfig    *observability.TracerConfig
	gracefulTimeout time.Duration
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{serviceName: "resolver"}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithServiceName sets the name reported in logs, telemetry resources, and
// the startup summary.
func WithServiceName(name string) Option {
	return func(o *appOptions) {
		if name != "" {
			o.serviceName = name
		}
	}
}

// WithSettings supplies settings directly instead of loading them from files
// and the environment.
func WithSettings(s config.Settings) Option {
	return func(o *appOptions) {
		o.settings = &s
	}
}

// WithConfigLoading forwards loader options to config.Load, for example an
// explicit config file path or a test filesystem.
func WithConfigLoading(opts ...config.LoaderOption) Option {
	return func(o *appOptions) {
		o.loadOptions = append(o.loadOptions, opts...)
	}
}

// WithLogger sets a custom logger. When not set, the global logger is
// initialized from the loaded settings.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithRegistry supplies a pre-built registry. The loaded settings then only
// drive logging and telemetry.
func WithRegistry(r *resolver.Registry) Option {
	return func(o *appOptions) {
		o.registry = r
	}
}

// WithModules queues registration modules to add during assembly.
func WithModules(modules ...resolver.Module) Option {
	return func(o *appOptions) {
		o.modules = append(o.modules, modules...)
	}
}

// WithMeterConfig overrides the OTLP exporter settings used when metrics are
// enabled.
func WithMeterConfig(cfg observability.MeterConfig) Option {
	return func(o *appOptions) {
		o.meterConfig = &cfg
	}
}

// WithTracerConfig overrides the OTLP exporter settings used when tracing is
// enabled.
func WithTracerConfig(cfg observability.TracerConfig) Option {
	return func(o *appOptions) {
		o.tracerConfig = &cfg
	}
}

// WithGracefulTimeout sets the maximum duration for graceful shutdown.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) {
		o.gracefulTimeout = d
	}
}
