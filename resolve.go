package resolver

import (
	"context"
	stderrors "errors"
	"fmt"
	"reflect"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/kbukum/resolver/errors"
	"github.com/kbukum/resolver/logger"
	"github.com/kbukum/resolver/observability"
	"github.com/kbukum/resolver/scope"
)

type registerConfig struct {
	name  string
	scope scope.Scope
}

type resolveConfig struct {
	name string
	args any
}

// RegisterOption configures a registration.
type RegisterOption interface {
	applyRegister(*registerConfig)
}

// ResolveOption configures a resolution request.
type ResolveOption interface {
	applyResolve(*resolveConfig)
}

// NameOption distinguishes multiple registrations of the same type. It works
// on both sides: pass it to Register to store a named registration and to
// Resolve to request one.
type NameOption string

// Name returns an option selecting the named registration for a type.
func Name(name string) NameOption { return NameOption(name) }

func (n NameOption) applyRegister(c *registerConfig) { c.name = string(n) }
func (n NameOption) applyResolve(c *resolveConfig)   { c.name = string(n) }

type scopeOption struct{ s scope.Scope }

// InScope assigns a caching scope at registration time instead of the
// registry default.
func InScope(s scope.Scope) RegisterOption { return scopeOption{s: s} }

func (o scopeOption) applyRegister(c *registerConfig) { c.scope = o.s }

type argsOption struct{ args any }

// WithArgs passes an argument value through to the factory.
func WithArgs(args any) ResolveOption { return argsOption{args: args} }

func (o argsOption) applyResolve(c *resolveConfig) { c.args = o.args }

// Register stores a factory for T in the container. Registering the same key
// again replaces the previous registration. The factory receives the
// container the resolution started from and the arguments passed with
// WithArgs; returning a nil instance with a nil error declines the request.
// Register panics if the registry is closed.
func Register[T any](c *Container, factory func(c *Container, args any) (T, error), opts ...RegisterOption) *Registration {
	cfg := registerConfig{}
	for _, o := range opts {
		o.applyRegister(&cfg)
	}
	return c.registerErased(keyFor[T](cfg.name), eraseFactory(factory), cfg.scope)
}

// RegisterInstance stores an existing instance for T. The registration uses
// the application scope unless an explicit InScope option overrides it.
func RegisterInstance[T any](c *Container, instance T, opts ...RegisterOption) *Registration {
	opts = append([]RegisterOption{InScope(c.registry.scopes.Application)}, opts...)
	return Register(c, func(*Container, any) (T, error) {
		return instance, nil
	}, opts...)
}

// Resolve returns an instance of T, constructing it through the registered
// factory and scope if no cached instance applies.
func Resolve[T any](c *Container, opts ...ResolveOption) (T, error) {
	var zero T
	cfg := resolveConfig{}
	for _, o := range opts {
		o.applyResolve(&cfg)
	}
	key := keyFor[T](cfg.name)
	v, err := c.resolveErased(key, cfg.args)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, apperrors.TypeMismatch(key.String(), fmt.Sprintf("%T", v))
	}
	return t, nil
}

// MustResolve returns an instance of T and panics if resolution fails.
// Failing here means a wiring mistake, so surfacing it loudly during
// development is the point.
func MustResolve[T any](c *Container, opts ...ResolveOption) T {
	v, err := Resolve[T](c, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

// TryResolve returns an instance of T and false when the service is not
// registered, the factory declined or failed, or the registry is closed.
func TryResolve[T any](c *Container, opts ...ResolveOption) (T, bool) {
	v, err := Resolve[T](c, opts...)
	return v, err == nil
}

// Implements additionally registers interface I as an alias of h, resolved
// by looking up h's key and asserting the result to I. A result that does
// not satisfy I declines the alias request. Returns h so further aliases can
// chain off the same registration.
func Implements[I any](h *Registration, opts ...RegisterOption) *Registration {
	cfg := registerConfig{}
	for _, o := range opts {
		o.applyRegister(&cfg)
	}
	target := h.key
	h.owner.registerErased(keyFor[I](cfg.name), func(c *Container, args any) (any, error) {
		v, err := c.resolveErased(target, args)
		if err != nil {
			return nil, err
		}
		i, ok := v.(I)
		if !ok {
			return nil, nil
		}
		return i, nil
	}, cfg.scope)
	return h
}

// PostProcess appends a mutation step that runs each time h's factory
// produces an instance, before the scope caches it. Layered calls run in the
// order they were added. Instances the scope already cached are not touched.
func PostProcess[T any](h *Registration, mutate func(c *Container, instance T)) *Registration {
	h.updateFactory(func(next factoryFunc) factoryFunc {
		return func(c *Container, args any) (any, error) {
			v, err := next(c, args)
			if err != nil || v == nil {
				return v, err
			}
			if t, ok := v.(T); ok {
				mutate(c, t)
			}
			return v, nil
		}
	})
	return h
}

// registerErased stores a type-erased registration under key. A nil scope
// selects the registry default. Panics when the registry is closed, matching
// the fluent Register API that has no error channel.
func (c *Container) registerErased(key ServiceKey, factory factoryFunc, s scope.Scope) *Registration {
	reg := c.registry
	reg.lock.Lock()
	defer reg.lock.Unlock()
	if reg.closed {
		panic(apperrors.RegistryClosed("register"))
	}
	if s == nil {
		s = reg.defaultScope
	}
	r := &Registration{
		key:      key,
		cacheKey: key.String(),
		factory:  factory,
		scope:    s,
		owner:    c,
	}
	c.registrations[key] = r
	if reg.metrics != nil {
		reg.metrics.RecordRegistration(context.Background(), r.cacheKey, s.Name())
	}
	reg.log.Debug("service registered", logger.Fields(
		logger.FieldService, r.cacheKey,
		logger.FieldScope, s.Name(),
		logger.FieldContainerID, c.id,
	))
	return r
}

// resolveErased is the single resolution path. It holds the registry lock
// for the whole resolution, including nested factory calls, so one object
// graph is always built by one goroutine at a time.
func (c *Container) resolveErased(key ServiceKey, args any) (v any, err error) {
	reg := c.registry
	reg.lock.Lock()
	defer reg.lock.Unlock()

	if reg.closed {
		return nil, apperrors.RegistryClosed("resolve")
	}

	reg.runModulesLocked()

	service := key.String()
	if reg.lock.holdDepth() == 1 && (reg.tracer != nil || reg.metrics != nil) {
		ctx := context.Background()
		if reg.tracer != nil {
			var span trace.Span
			ctx, span = reg.tracer.Start(ctx, observability.SpanResolve,
				trace.WithAttributes(attribute.String(observability.AttrServiceKey, service)))
			defer func() {
				if err != nil {
					span.RecordError(err)
				}
				span.End()
			}()
		}
		if reg.metrics != nil {
			start := time.Now()
			reg.metrics.RecordResolutionStart(ctx)
			defer func() {
				reg.metrics.RecordResolutionEnd(ctx, service, outcomeOf(err), time.Since(start))
			}()
		}
	}

	registration := c.lookup(key)
	if registration == nil {
		err = apperrors.NotRegistered(service)
	} else if v, err = registration.resolve(c, args); err != nil {
		var appErr *apperrors.Error
		if !stderrors.As(err, &appErr) {
			err = apperrors.FactoryFailed(service, err)
		}
		v = nil
	} else if v == nil {
		err = apperrors.NoInstance(service)
	}

	if err != nil {
		reg.log.Debug("resolution failed", logger.Fields(
			logger.FieldService, service,
			logger.FieldError, err.Error(),
			logger.FieldContainerID, c.id,
		))
		return nil, err
	}
	return v, nil
}

// eraseFactory adapts a typed factory to the erased shape registrations
// store, normalizing typed nils so every layer sees one canonical empty
// result.
func eraseFactory[T any](factory func(*Container, any) (T, error)) factoryFunc {
	return func(c *Container, args any) (any, error) {
		v, err := factory(c, args)
		if err != nil {
			return nil, err
		}
		return normalizeNil(v), nil
	}
}

// normalizeNil maps a nil pointer, map, slice, func or channel to an untyped
// nil. Value types pass through unchanged; their zero value is a real
// instance, so a value-typed factory cannot decline.
func normalizeNil(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return nil
		}
	}
	return v
}

func outcomeOf(err error) string {
	if err == nil {
		return "resolved"
	}
	switch apperrors.CodeOf(err) {
	case apperrors.ErrCodeNotRegistered:
		return "not_registered"
	case apperrors.ErrCodeNoInstance:
		return "declined"
	default:
		return "failed"
	}
}
