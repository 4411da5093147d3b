package scope

// Proxy delegates resolution to the resolving container's own permanent
// cache. A registration under Proxy behaves like Cache scope, except each
// container caches its own instance instead of all containers sharing one
// slot, so resolving through two containers yields two independent singletons.
type Proxy struct{}

// NewProxy returns the container-delegated strategy.
func NewProxy() *Proxy {
	return &Proxy{}
}

// Resolve forwards to the resolving container's own cache.
func (s *Proxy) Resolve(reg Registration, res Resolver, args any) (any, error) {
	return res.OwnCache().Resolve(reg, res, args)
}

// Reset is a no-op on the proxy itself; the per-container caches it delegates
// to are reset through their owning containers.
func (s *Proxy) Reset() {}

// Name returns "container".
func (s *Proxy) Name() string { return "container" }
