package scope

// Graph deduplicates instances within a single resolution cycle: while one
// outward resolution call is in flight, every nested request for the same
// service receives the identical instance. The cycle cache exists only to
// serve that one call graph; it is discarded entirely when the outermost
// resolution returns, so separate top-level resolutions always start fresh.
//
// Only reference (pointer-kind) instances enter the cycle cache. Sharing the
// identity of a value type across a graph has no meaning, so value results
// are deliberately skipped; the asymmetry is part of the strategy's contract.
type Graph struct {
	entries map[string]any
	depth   int
}

// NewGraph returns a per-resolution-cycle strategy. This is the process
// default scope.
func NewGraph() *Graph {
	return &Graph{
		entries: make(map[string]any),
	}
}

// Resolve returns the in-cycle instance if one exists, otherwise instantiates
// while tracking resolution depth. When depth returns to zero the whole cycle
// cache is cleared, including the instance just produced.
func (s *Graph) Resolve(reg Registration, res Resolver, args any) (v any, err error) {
	key := reg.CacheKey()
	if cached, ok := s.entries[key]; ok {
		return cached, nil
	}
	s.depth++
	defer func() {
		s.depth--
		if s.depth == 0 {
			clear(s.entries)
		} else if err == nil && v != nil && isReference(v) {
			s.entries[key] = v
		}
	}()
	v, err = reg.Instantiate(res, args)
	return v, err
}

// Reset is deliberately a no-op: the cycle cache manages its own lifetime
// through the depth counter, and clearing it mid-cycle would break in-flight
// deduplication.
func (s *Graph) Reset() {}

// Name returns "graph".
func (s *Graph) Name() string { return "graph" }
