package resolver

import "sync/atomic"

var defaultRegistry atomic.Pointer[Registry]

// Default returns the process-wide registry, creating an empty one on first
// use. Applications that want configured logging or observability should
// build a registry with New or NewFromSettings and install it with
// SetDefault before anything resolves.
func Default() *Registry {
	if r := defaultRegistry.Load(); r != nil {
		return r
	}
	r := New()
	if defaultRegistry.CompareAndSwap(nil, r) {
		return r
	}
	return defaultRegistry.Load()
}

// SetDefault installs r as the process-wide registry. Passing nil is a no-op.
func SetDefault(r *Registry) {
	if r != nil {
		defaultRegistry.Store(r)
	}
}

// Root returns the root container of the process-wide registry.
func Root() *Container {
	return Default().Root()
}

// Reset resets the process-wide registry, discarding its container tree and
// cached instances and re-arming its module hook.
func Reset() {
	Default().Reset()
}
