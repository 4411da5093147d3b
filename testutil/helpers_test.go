package testutil_test

import (
	"testing"

	"github.com/kbukum/resolver"
	apperrors "github.com/kbukum/resolver/errors"
	"github.com/kbukum/resolver/testutil"
)

type widget struct {
	label string
}

func TestNewRegistryClosesWhenTestEnds(t *testing.T) {
	var reg *resolver.Registry
	t.Run("scoped", func(t *testing.T) {
		reg = testutil.NewRegistry(t)
		resolver.Register(reg.Root(), func(*resolver.Container, any) (*widget, error) {
			return &widget{}, nil
		})
		testutil.RequireResolve[*widget](t, reg.Root())
	})

	_, err := resolver.Resolve[*widget](reg.Root())
	testutil.RequireCode(t, err, apperrors.ErrCodeRegistryClosed)
}

func TestRequireResolve(t *testing.T) {
	reg := testutil.NewRegistry(t)
	root := reg.Root()

	resolver.Register(root, func(*resolver.Container, any) (*widget, error) {
		return &widget{label: "gear"}, nil
	})

	if w := testutil.RequireResolve[*widget](t, root); w.label != "gear" {
		t.Errorf("label = %q, want gear", w.label)
	}
}

func TestRequireNotResolved(t *testing.T) {
	reg := testutil.NewRegistry(t)

	err := testutil.RequireNotResolved[*widget](t, reg.Root())
	testutil.RequireCode(t, err, apperrors.ErrCodeNotRegistered)
}

func TestRequireModule(t *testing.T) {
	reg := testutil.NewRegistry(t)

	testutil.RequireModule(t, reg, resolver.NewModule("widgets", func(c *resolver.Container) error {
		resolver.Register(c, func(*resolver.Container, any) (*widget, error) {
			return &widget{label: "stamped"}, nil
		})
		return nil
	}))

	if w := testutil.RequireResolve[*widget](t, reg.Root()); w.label != "stamped" {
		t.Errorf("label = %q, want stamped", w.label)
	}
}

func TestRequireChild(t *testing.T) {
	reg := testutil.NewRegistry(t)
	session := reg.NewContainer()

	testutil.RequireChild(t, session, reg.Root())

	resolver.Register(reg.Root(), func(*resolver.Container, any) (*widget, error) {
		return &widget{}, nil
	}, resolver.InScope(reg.Scopes().Container))

	a := testutil.RequireResolve[*widget](t, session)
	if a != testutil.RequireResolve[*widget](t, session) {
		t.Error("container scope should cache per attached session")
	}
}

func TestQuietLoggerOnlyErrors(t *testing.T) {
	log := testutil.QuietLogger()
	if log == nil {
		t.Fatal("QuietLogger returned nil")
	}
	// Debug output must stay silent at the error level.
	log.Debug("should not appear")
}

func TestGCReclaimsSharedInstances(t *testing.T) {
	reg := testutil.NewRegistry(t)
	root := reg.Root()

	calls := 0
	resolver.Register(root, func(*resolver.Container, any) (*widget, error) {
		calls++
		return &widget{label: "transient"}, nil
	}, resolver.InScope(reg.Scopes().Shared))

	// Resolve without keeping a reference so the weak pointer is the only
	// thing left holding the instance.
	func() {
		testutil.RequireResolve[*widget](t, root)
	}()

	testutil.GC()

	testutil.RequireResolve[*widget](t, root)
	if calls != 2 {
		t.Errorf("factory calls = %d, want a rebuild after collection", calls)
	}
}
