package testutil

import (
	"runtime"
	"testing"

	"github.com/kbukum/resolver"
	apperrors "github.com/kbukum/resolver/errors"
	"github.com/kbukum/resolver/logger"
)

// NewRegistry creates a registry wired for tests: logging is reduced to
// errors and the registry is closed automatically when the test ends.
// Options are applied after the quiet logger, so tests may still override it.
func NewRegistry(t *testing.T, opts ...resolver.Option) *resolver.Registry {
	t.Helper()
	base := []resolver.Option{resolver.WithLogger(QuietLogger())}
	r := resolver.New(append(base, opts...)...)
	t.Cleanup(func() {
		if err := r.Close(); err != nil {
			t.Errorf("failed to close registry: %v", err)
		}
	})
	return r
}

// QuietLogger returns a logger that only reports errors, keeping test output
// readable.
func QuietLogger() *logger.Logger {
	return logger.New(&logger.Config{Level: "error", Format: "console", Output: "stderr"}, "test")
}

// RequireResolve resolves T from c and fails the test when resolution fails.
func RequireResolve[T any](t *testing.T, c *resolver.Container, opts ...resolver.ResolveOption) T {
	t.Helper()
	v, err := resolver.Resolve[T](c, opts...)
	if err != nil {
		t.Fatalf("failed to resolve %T: %v", v, err)
	}
	return v
}

// RequireNotResolved asserts that resolving T from c fails and returns the
// error for further inspection, typically with RequireCode.
func RequireNotResolved[T any](t *testing.T, c *resolver.Container, opts ...resolver.ResolveOption) error {
	t.Helper()
	v, err := resolver.Resolve[T](c, opts...)
	if err == nil {
		t.Fatalf("expected resolution of %T to fail", v)
	}
	return err
}

// RequireCode asserts that err carries the given registry error code.
func RequireCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()
	if !apperrors.IsCode(err, code) {
		t.Fatalf("error = %v, want code %s", err, code)
	}
}

// RequireModule adds m to r and fails the test when the module is rejected.
func RequireModule(t *testing.T, r *resolver.Registry, m resolver.Module) {
	t.Helper()
	if err := r.AddModule(m); err != nil {
		t.Fatalf("failed to add module %s: %v", m.Name(), err)
	}
}

// RequireChild attaches child to parent and fails the test when the
// containers do not belong together.
func RequireChild(t *testing.T, parent, child *resolver.Container) {
	t.Helper()
	if err := parent.AddChild(child); err != nil {
		t.Fatalf("failed to attach container %s: %v", child.ID(), err)
	}
}

// GC forces garbage collection so that weakly held instances of the shared
// scope are reclaimed. Two cycles are needed: the first clears the weak
// pointers, the second collects the objects they referenced.
func GC() {
	runtime.GC()
	runtime.GC()
}
