package scope

// Shared keeps weak references to resolved instances: a resolution reuses the
// cached instance only while some caller outside the registry still holds it
// strongly. Once the last external holder releases the instance, the garbage
// collector may reclaim it at any time; the slot then reads as empty and the
// next resolution instantiates anew. An empty slot is never an error.
//
// Like Graph, Shared stores only reference (pointer-kind) results; a weak
// reference to a copied value has nothing to observe.
type Shared struct {
	entries map[string]weakRef
}

// NewShared returns a weak-reference strategy.
func NewShared() *Shared {
	return &Shared{
		entries: make(map[string]weakRef),
	}
}

// Resolve returns the weakly-held instance if it is still alive, otherwise
// instantiates and stores a weak reference to pointer-kind results.
func (s *Shared) Resolve(reg Registration, res Resolver, args any) (any, error) {
	key := reg.CacheKey()
	if ref, ok := s.entries[key]; ok {
		if v, alive := ref.Value(); alive {
			return v, nil
		}
		delete(s.entries, key)
	}
	v, err := reg.Instantiate(res, args)
	if err != nil || v == nil {
		return nil, err
	}
	if ref, ok := makeWeakRef(v); ok {
		s.entries[key] = ref
	}
	return v, nil
}

// Reset drops every weak slot.
func (s *Shared) Reset() {
	clear(s.entries)
}

// Name returns "shared".
func (s *Shared) Name() string { return "shared" }
