package resolver

import (
	"context"

	"github.com/kbukum/resolver/logger"
	"github.com/kbukum/resolver/scope"
)

// factoryFunc is the type-erased factory shape stored in a registration. A
// nil instance with a nil error means the factory declined to produce a
// value.
type factoryFunc func(c *Container, args any) (any, error)

// Registration binds a service key to its factory and caching scope. Handles
// are returned by Register and stay valid for further configuration until the
// owning container is discarded.
type Registration struct {
	key      ServiceKey
	cacheKey string
	factory  factoryFunc
	scope    scope.Scope
	owner    *Container
}

// Key returns the service key this registration is stored under.
func (r *Registration) Key() ServiceKey { return r.key }

// CacheKey returns the deterministic scope cache key for this registration.
func (r *Registration) CacheKey() string { return r.cacheKey }

// Scope returns the currently assigned caching strategy.
func (r *Registration) Scope() scope.Scope {
	r.owner.registry.lock.Lock()
	defer r.owner.registry.lock.Unlock()
	return r.scope
}

// WithScope reassigns the caching strategy for subsequent resolutions. It
// never evicts entries a previously assigned scope instance already holds;
// each scope instance owns its cache storage outright. Returns the receiver
// for chaining.
func (r *Registration) WithScope(s scope.Scope) *Registration {
	reg := r.owner.registry
	reg.lock.Lock()
	defer reg.lock.Unlock()
	r.scope = s
	reg.log.Debug("registration scope changed", logger.Fields(
		logger.FieldService, r.cacheKey,
		logger.FieldScope, s.Name(),
	))
	return r
}

// Instantiate invokes the current factory against the resolving container.
// It satisfies scope.Registration and is only called while the registry lock
// is held.
func (r *Registration) Instantiate(res scope.Resolver, args any) (any, error) {
	c, _ := res.(*Container)
	reg := r.owner.registry
	if reg.metrics != nil {
		reg.metrics.RecordFactoryCall(context.Background(), r.cacheKey)
	}
	return r.factory(c, args)
}

// resolve routes the resolution through the assigned scope, which decides
// whether Instantiate runs at all.
func (r *Registration) resolve(c *Container, args any) (any, error) {
	return r.scope.Resolve(r, c, args)
}

// updateFactory wraps the existing factory with the one produced by modifier.
// The original factory stays reachable through the composition, so layered
// post-processing never loses the construction step. Instances already cached
// under the registration's scope are unaffected.
func (r *Registration) updateFactory(modifier func(factoryFunc) factoryFunc) {
	reg := r.owner.registry
	reg.lock.Lock()
	defer reg.lock.Unlock()
	r.factory = modifier(r.factory)
}
