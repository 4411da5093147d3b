package resolver

import (
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/resolver/config"
	"github.com/kbukum/resolver/logger"
	"github.com/kbukum/resolver/observability"
	"github.com/kbukum/resolver/scope"
	"github.com/kbukum/resolver/version"
)

// instrumentationName identifies this module to OpenTelemetry providers.
const instrumentationName = "github.com/kbukum/resolver"

// ScopeSet holds the shared scope instances of one registry. Application and
// Cached behave identically; Application is the conventional home for
// process-lifetime services while Cached is for services an application may
// want to reset independently.
type ScopeSet struct {
	Application *scope.Cache
	Cached      *scope.Cache
	Graph       *scope.Graph
	Shared      *scope.Shared
	Unique      *scope.Unique
	Container   *scope.Proxy
}

// ByName maps a configuration name to the corresponding scope instance.
func (s *ScopeSet) ByName(name string) (scope.Scope, bool) {
	switch name {
	case "graph":
		return s.Graph, true
	case "application":
		return s.Application, true
	case "cached":
		return s.Cached, true
	case "shared":
		return s.Shared, true
	case "unique":
		return s.Unique, true
	case "container":
		return s.Container, true
	}
	return nil, false
}

// Registry is one independent resolution domain: a container tree, the scope
// instances its registrations share, and the lock that serializes every
// operation inside the domain. Factories run while the lock is held, so they
// may re-enter the registry from the same goroutine; a second goroutine
// blocks until the full top-level resolution finishes.
type Registry struct {
	lock              recursiveMutex
	root              *Container
	scopes            *ScopeSet
	defaultScope      scope.Scope
	modules           []Module
	moduleNames       map[string]struct{}
	needsRegistration bool
	closed            bool

	log     *logger.Logger
	metrics *observability.Metrics
	tracer  trace.Tracer
}

// Option configures a Registry during construction.
type Option func(*Registry)

// WithLogger replaces the registry's logger.
func WithLogger(log *logger.Logger) Option {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// WithDefaultScope sets the scope applied to registrations that do not pick
// one explicitly. The default is the registry's graph scope.
func WithDefaultScope(s scope.Scope) Option {
	return func(r *Registry) {
		if s != nil {
			r.defaultScope = s
		}
	}
}

// WithMetrics enables instrument recording for registrations, resolutions
// and factory calls.
func WithMetrics(m *observability.Metrics) Option {
	return func(r *Registry) { r.metrics = m }
}

// WithTracer enables a span around every top-level resolution.
func WithTracer(t trace.Tracer) Option {
	return func(r *Registry) { r.tracer = t }
}

// New creates an empty registry with its own root container, scope instances
// and lock domain.
func New(opts ...Option) *Registry {
	scopes := &ScopeSet{
		Application: scope.NewCache("application"),
		Cached:      scope.NewCache("cached"),
		Graph:       scope.NewGraph(),
		Shared:      scope.NewShared(),
		Unique:      scope.NewUnique(),
		Container:   scope.NewProxy(),
	}
	r := &Registry{
		scopes:            scopes,
		defaultScope:      scopes.Graph,
		moduleNames:       make(map[string]struct{}),
		needsRegistration: true,
		log:               logger.GetGlobalLogger().WithComponent("resolver"),
	}
	r.root = newContainer(r)
	for _, opt := range opts {
		opt(r)
	}
	r.log.Debug("registry created", logger.Fields(
		logger.FieldContainerID, r.root.id,
		"version", version.GetShortVersion(),
	))
	return r
}

// NewFromSettings creates a registry configured from validated settings,
// wiring the logger, default scope, metrics and tracing they describe.
func NewFromSettings(settings config.Settings) (*Registry, error) {
	settings.ApplyDefaults()
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	log := logger.New(&settings.Logging, "resolver")
	r := New(WithLogger(log.WithComponent("resolver")))

	if s, ok := r.scopes.ByName(settings.DefaultScope); ok {
		r.defaultScope = s
	}
	if settings.Metrics.Enabled {
		m, err := observability.NewMetrics(otel.Meter(instrumentationName))
		if err != nil {
			return nil, err
		}
		r.metrics = m
	}
	if settings.Tracing.Enabled {
		r.tracer = observability.Tracer(instrumentationName)
	}
	return r, nil
}

// Root returns the registry's current root container. Reset replaces the
// root, so callers should not hold the returned pointer across resets.
func (r *Registry) Root() *Container {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.root
}

// NewContainer creates a detached container in this registry. It joins the
// lookup chain once attached with AddChild.
func (r *Registry) NewContainer() *Container {
	return newContainer(r)
}

// Scopes returns the registry's shared scope instances.
func (r *Registry) Scopes() *ScopeSet { return r.scopes }

// DefaultScope returns the scope applied when a registration does not choose
// one.
func (r *Registry) DefaultScope() scope.Scope {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.defaultScope
}

// SetDefaultScope changes the scope applied to future registrations.
// Existing registrations keep the scope they were created with.
func (r *Registry) SetDefaultScope(s scope.Scope) {
	if s == nil {
		return
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.defaultScope = s
}

// Reset discards the container tree and every cached instance, then re-arms
// the module hook so registered modules populate the fresh root on the next
// resolution. The registry is usable again afterwards even if it had been
// closed. Instances only reachable through the old tree are dropped without
// being closed; use Close for orderly shutdown.
func (r *Registry) Reset() {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.root = newContainer(r)
	r.scopes.Application.Reset()
	r.scopes.Cached.Reset()
	r.scopes.Shared.Reset()
	r.needsRegistration = true
	r.closed = false
	r.log.Debug("registry reset", logger.Fields(
		logger.FieldContainerID, r.root.id,
	))
}

// Close releases every cached instance, calling Close on those that
// implement io.Closer, and marks the registry closed. Further registrations
// and resolutions fail until Reset. Close is idempotent.
func (r *Registry) Close() error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.closed {
		return nil
	}
	errs := []error{
		r.scopes.Application.Close(),
		r.scopes.Cached.Close(),
		r.root.closeOwnCaches(),
	}
	r.scopes.Shared.Reset()
	r.closed = true
	r.log.Debug("registry closed")
	return errors.Join(errs...)
}
