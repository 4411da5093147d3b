// Package resolver provides a hierarchical dependency injection registry
// with pluggable caching scopes.
//
// Services register type-safe factories in containers; containers form an
// ordered tree searched depth first, so an application can layer overrides
// in front of library defaults. Each registration carries a scope deciding
// whether resolved instances are cached and for how long: graph (default,
// deduplicates within one resolution cycle), application and cached (strong
// permanent caches), shared (weak references), container (per resolving
// container) or unique (never cached).
//
// # Registration
//
//	reg := resolver.New()
//	c := reg.Root()
//	resolver.Register(c, func(c *resolver.Container, _ any) (*Database, error) {
//	    return OpenDatabase()
//	}, resolver.InScope(reg.Scopes().Application))
//
// # Resolution
//
//	db := resolver.MustResolve[*Database](c)
//
// All operations on one registry share a reentrant lock, so factories can
// resolve their own dependencies while the requesting goroutine holds it.
package resolver
