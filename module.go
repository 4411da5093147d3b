package resolver

import (
	apperrors "github.com/kbukum/resolver/errors"
	"github.com/kbukum/resolver/logger"
)

// Module groups related registrations under a name so an application can
// assemble its registry from independently developed pieces. Register runs
// lazily, just before the first resolution after the registry was created or
// reset, against the registry's root container.
type Module interface {
	Name() string
	Register(c *Container) error
}

type moduleFunc struct {
	name string
	fn   func(c *Container) error
}

func (m moduleFunc) Name() string { return m.name }

func (m moduleFunc) Register(c *Container) error { return m.fn(c) }

// NewModule wraps a registration function as a named Module.
func NewModule(name string, fn func(c *Container) error) Module {
	return moduleFunc{name: name, fn: fn}
}

// AddModule records a module for the current and future registration cycles.
// Module names are unique within a registry. If this cycle's registration
// pass already ran, the module registers immediately so its services resolve
// without waiting for a reset.
func (r *Registry) AddModule(m Module) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.closed {
		return apperrors.RegistryClosed("add module")
	}
	if _, dup := r.moduleNames[m.Name()]; dup {
		return apperrors.DuplicateModule(m.Name())
	}
	r.moduleNames[m.Name()] = struct{}{}
	r.modules = append(r.modules, m)
	if !r.needsRegistration {
		r.runModule(m)
	}
	return nil
}

// RunModules runs any modules that have not yet run in the current
// registration cycle. The first resolution triggers this automatically;
// calling it eagerly lets an application register everything at startup and
// inspect the full registration table before serving. It does nothing on a
// closed registry.
func (r *Registry) RunModules() {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.closed {
		return
	}
	r.runModulesLocked()
}

// runModulesLocked runs every module exactly once per registration cycle.
// The armed flag clears before any module runs, so a module that resolves
// services while registering does not re-enter the hook.
func (r *Registry) runModulesLocked() {
	if !r.needsRegistration {
		return
	}
	r.needsRegistration = false
	for _, m := range r.modules {
		r.runModule(m)
	}
}

// runModule registers one module against the root container. A failing
// module is reported and skipped; the remaining modules still run, and the
// services the failed module did manage to register stay available.
func (r *Registry) runModule(m Module) {
	if err := m.Register(r.root); err != nil {
		r.log.Error("module registration failed",
			logger.ErrorFields("register module", err),
			logger.Fields(logger.FieldModule, m.Name()),
		)
	}
}
