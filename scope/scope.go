package scope

import "reflect"

// Registration is the slice of a service registration the scope layer needs:
// a stable cache key and the ability to produce a new instance.
type Registration interface {
	// CacheKey returns a deterministic, collision-free key for the
	// registered service. Two distinct service keys never share a cache key.
	CacheKey() string

	// Instantiate invokes the registration's current factory against the
	// resolving container. A nil instance with a nil error means the factory
	// declined to produce a value; declined results are never cached.
	Instantiate(res Resolver, args any) (any, error)
}

// Resolver is the container surface a scope may call back into during
// resolution. The Proxy strategy uses it to reach the resolving container's
// own permanent cache.
type Resolver interface {
	// OwnCache returns the container's permanent cache scope instance.
	OwnCache() *Cache
}

// Scope decides whether resolving a registration reuses a cached instance or
// instantiates a fresh one. Implementations are only ever called while the
// owning registry's lock is held and must remain correct when re-entered by
// nested resolutions on the same call chain.
type Scope interface {
	// Resolve returns an instance for the registration, consulting and
	// populating the strategy's cache as its policy dictates.
	Resolve(reg Registration, res Resolver, args any) (any, error)

	// Reset clears all cached state held by this scope instance. Strategies
	// that cache nothing, or whose cache manages its own lifetime, treat
	// this as a no-op.
	Reset()

	// Name identifies the strategy in logs and diagnostics.
	Name() string
}

// isReference reports whether an instance carries pointer identity. Only
// identity-bearing values are worth sharing across resolutions within a
// cycle or behind a weak slot; copying a value type would be meaningless.
func isReference(v any) bool {
	return reflect.ValueOf(v).Kind() == reflect.Pointer
}
