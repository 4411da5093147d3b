package scope

// Unique instantiates a fresh instance on every resolution and never caches.
type Unique struct{}

// NewUnique returns the strategy that always instantiates.
func NewUnique() *Unique {
	return &Unique{}
}

// Resolve always asks the registration for a new instance.
func (s *Unique) Resolve(reg Registration, res Resolver, args any) (any, error) {
	return reg.Instantiate(res, args)
}

// Reset is a no-op; Unique holds no state.
func (s *Unique) Reset() {}

// Name returns "unique".
func (s *Unique) Name() string { return "unique" }
