package resolver

import (
	"errors"
	"sort"

	"github.com/google/uuid"

	apperrors "github.com/kbukum/resolver/errors"
	"github.com/kbukum/resolver/logger"
	"github.com/kbukum/resolver/scope"
)

// Container holds service registrations and an instance cache of its own.
// Containers belong to exactly one registry and form an ordered tree under
// its root. Lookup consults a container's own registrations first, then its
// children depth first in attachment order.
type Container struct {
	id            string
	registry      *Registry
	registrations map[ServiceKey]*Registration
	children      []*Container
	ownCache      *scope.Cache
}

func newContainer(reg *Registry) *Container {
	id := uuid.NewString()[:8]
	return &Container{
		id:            id,
		registry:      reg,
		registrations: make(map[ServiceKey]*Registration),
		ownCache:      scope.NewCache("container:" + id),
	}
}

// ID returns the container's short identifier, used in logs and diagnostics.
func (c *Container) ID() string { return c.id }

// Registry returns the registry this container belongs to.
func (c *Container) Registry() *Registry { return c.registry }

// OwnCache exposes the container's private instance cache. The container
// scope stores per-container instances here.
func (c *Container) OwnCache() *scope.Cache { return c.ownCache }

// AddChild attaches child to this container's lookup chain. Children are
// searched after the container's own registrations, in the order they were
// attached. The child must belong to the same registry.
func (c *Container) AddChild(child *Container) error {
	reg := c.registry
	reg.lock.Lock()
	defer reg.lock.Unlock()
	if reg.closed {
		return apperrors.RegistryClosed("add child")
	}
	if child == nil || child.registry != reg {
		return apperrors.ContainerMismatch()
	}
	c.children = append(c.children, child)
	reg.log.Debug("child container attached", logger.Fields(
		logger.FieldContainerID, c.id,
		"child_id", child.id,
	))
	return nil
}

// lookup walks the container tree for the registration stored under key.
// The registry lock must be held.
func (c *Container) lookup(key ServiceKey) *Registration {
	if r, ok := c.registrations[key]; ok {
		return r
	}
	for _, child := range c.children {
		if r := child.lookup(key); r != nil {
			return r
		}
	}
	return nil
}

// closeOwnCaches closes the instance caches of this container and every
// descendant. The registry lock must be held.
func (c *Container) closeOwnCaches() error {
	errs := []error{c.ownCache.Close()}
	for _, child := range c.children {
		errs = append(errs, child.closeOwnCaches())
	}
	return errors.Join(errs...)
}

// RegistrationInfo describes one registration for diagnostics.
type RegistrationInfo struct {
	Key       ServiceKey
	Type      string
	Name      string
	Scope     string
	Container string
}

// Registrations reports every registration reachable from this container,
// in lookup order between containers and sorted by type and name within
// each container.
func (c *Container) Registrations() []RegistrationInfo {
	reg := c.registry
	reg.lock.Lock()
	defer reg.lock.Unlock()
	return c.collectInfo(nil)
}

func (c *Container) collectInfo(out []RegistrationInfo) []RegistrationInfo {
	own := make([]RegistrationInfo, 0, len(c.registrations))
	for key, r := range c.registrations {
		own = append(own, RegistrationInfo{
			Key:       key,
			Type:      typeName(key.Type),
			Name:      key.Name,
			Scope:     r.scope.Name(),
			Container: c.id,
		})
	}
	sort.Slice(own, func(i, j int) bool {
		if own[i].Type != own[j].Type {
			return own[i].Type < own[j].Type
		}
		return own[i].Name < own[j].Name
	})
	out = append(out, own...)
	for _, child := range c.children {
		out = child.collectInfo(out)
	}
	return out
}
