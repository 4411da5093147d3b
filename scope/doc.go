// Package scope implements the caching strategies that control how resolved
// service instances are reused across resolution calls.
//
// Every strategy satisfies the Scope interface: Resolve either returns a
// cached instance or asks the registration to instantiate one, and Reset
// clears whatever state the strategy holds. Five strategies ship with the
// package:
//
//   - Unique: instantiates on every resolution, caches nothing.
//   - Cache: permanent strong references until Reset (application singletons).
//   - Graph: deduplicates instances within one resolution cycle; the cache
//     empties itself when the outermost resolution returns.
//   - Shared: weak references; an instance is reused only while some caller
//     still holds it strongly.
//   - Proxy: delegates to the resolving container's own permanent cache,
//     yielding per-container singletons.
//
// Scope instances are driven under their registry's lock and keep no locks of
// their own. A scope instance owns its cache storage outright, so the same
// instance must not be attached to registrations from different registries.
package scope
