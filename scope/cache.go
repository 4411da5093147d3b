package scope

import (
	"errors"
	"fmt"
	"io"
)

// Cache holds resolved instances under strong references until Reset or
// Close. It backs application-wide singletons and, through the Proxy
// strategy, per-container singletons.
type Cache struct {
	name    string
	entries map[string]any
}

// NewCache returns a permanent-cache strategy. The name appears in logs and
// diagnostics; an empty name defaults to "cached". Independent Cache
// instances never share entries, so callers can create dedicated instances
// for custom lifetimes (a session cache, a request cache) and Reset them
// individually.
func NewCache(name string) *Cache {
	if name == "" {
		name = "cached"
	}
	return &Cache{
		name:    name,
		entries: make(map[string]any),
	}
}

// Resolve returns the cached instance for the registration's cache key if
// present, otherwise instantiates and stores the result permanently. Declined
// and failed instantiations are not stored.
func (s *Cache) Resolve(reg Registration, res Resolver, args any) (any, error) {
	key := reg.CacheKey()
	if v, ok := s.entries[key]; ok {
		return v, nil
	}
	v, err := reg.Instantiate(res, args)
	if err != nil || v == nil {
		return nil, err
	}
	s.entries[key] = v
	return v, nil
}

// Reset discards every cached instance. Subsequent resolutions instantiate
// anew.
func (s *Cache) Reset() {
	clear(s.entries)
}

// Name returns the name given at construction.
func (s *Cache) Name() string { return s.name }

// Len reports the number of cached instances.
func (s *Cache) Len() int { return len(s.entries) }

// Close calls Close on every cached instance implementing io.Closer, then
// clears the cache. All close errors are joined and returned; iteration does
// not stop at the first failure.
func (s *Cache) Close() error {
	var errs []error
	for key, v := range s.entries {
		closer, ok := v.(io.Closer)
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing %s: %w", key, err))
		}
	}
	clear(s.entries)
	return errors.Join(errs...)
}
