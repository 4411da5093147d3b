package resolver

import (
	"context"
	"errors"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/resolver/config"
	apperrors "github.com/kbukum/resolver/errors"
	"github.com/kbukum/resolver/logger"
	"github.com/kbukum/resolver/observability"
	"github.com/kbukum/resolver/scope"
)

func quietLogger() *logger.Logger {
	return logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"}, "test")
}

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r := New(WithLogger(quietLogger()))
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestNewDefaults(t *testing.T) {
	reg := newTestRegistry(t)

	if reg.Root() == nil {
		t.Fatal("registry should create a root container")
	}
	if reg.DefaultScope() != reg.Scopes().Graph {
		t.Errorf("default scope = %s, want graph", reg.DefaultScope().Name())
	}
}

func TestWithDefaultScopeOption(t *testing.T) {
	custom := scope.NewCache("custom")
	reg := New(WithLogger(quietLogger()), WithDefaultScope(custom))
	t.Cleanup(func() { _ = reg.Close() })

	if reg.DefaultScope() != scope.Scope(custom) {
		t.Errorf("default scope = %s, want the option value", reg.DefaultScope().Name())
	}
	h := Register(reg.Root(), func(*Container, any) (*database, error) {
		return &database{}, nil
	})
	if h.Scope() != scope.Scope(custom) {
		t.Errorf("registration scope = %s, want the registry default", h.Scope().Name())
	}
}

func TestSetDefaultScope(t *testing.T) {
	reg := newTestRegistry(t)
	root := reg.Root()

	before := Register(root, func(*Container, any) (*database, error) {
		return &database{}, nil
	})
	reg.SetDefaultScope(reg.Scopes().Cached)
	after := Register(root, func(*Container, any) (*repository, error) {
		return &repository{}, nil
	})

	if before.Scope() != scope.Scope(reg.Scopes().Graph) {
		t.Errorf("existing registration scope = %s, want graph", before.Scope().Name())
	}
	if after.Scope() != scope.Scope(reg.Scopes().Cached) {
		t.Errorf("new registration scope = %s, want cached", after.Scope().Name())
	}

	reg.SetDefaultScope(nil)
	if reg.DefaultScope() != scope.Scope(reg.Scopes().Cached) {
		t.Error("a nil default scope should be ignored")
	}
}

func TestScopeSetByName(t *testing.T) {
	scopes := newTestRegistry(t).Scopes()

	cases := []struct {
		name string
		want scope.Scope
	}{
		{"graph", scopes.Graph},
		{"application", scopes.Application},
		{"cached", scopes.Cached},
		{"shared", scopes.Shared},
		{"unique", scopes.Unique},
		{"container", scopes.Container},
	}
	for _, tc := range cases {
		got, ok := scopes.ByName(tc.name)
		if !ok {
			t.Errorf("ByName(%q) reported false", tc.name)
			continue
		}
		if got != tc.want {
			t.Errorf("ByName(%q) = %v, want the registry's %s scope", tc.name, got, tc.name)
		}
	}
	if _, ok := scopes.ByName("session"); ok {
		t.Error("unknown scope names should report false")
	}
}

func TestResetDiscardsTreeAndCaches(t *testing.T) {
	reg := newTestRegistry(t)
	root := reg.Root()

	calls := 0
	Register(root, func(*Container, any) (*database, error) {
		calls++
		return &database{}, nil
	}, InScope(reg.Scopes().Application))
	MustResolve[*database](root)

	reg.Reset()

	fresh := reg.Root()
	if fresh == root {
		t.Error("reset should replace the root container")
	}
	if _, err := Resolve[*database](fresh); !apperrors.IsCode(err, apperrors.ErrCodeNotRegistered) {
		t.Fatalf("error = %v; registrations do not survive a reset", err)
	}
	if calls != 1 {
		t.Errorf("factory calls = %d, want 1", calls)
	}
}

func TestCloseReleasesCachedInstances(t *testing.T) {
	reg := newTestRegistry(t)
	root := reg.Root()

	spy := &closerSpy{}
	RegisterInstance(root, spy)
	MustResolve[*closerSpy](root)

	if err := reg.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if spy.closed != 1 {
		t.Errorf("Close calls = %d, want cached io.Closer instances closed once", spy.closed)
	}
	if err := reg.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}
	if spy.closed != 1 {
		t.Errorf("Close calls after idempotent close = %d, want 1", spy.closed)
	}
}

func TestCloseReachesContainerCaches(t *testing.T) {
	reg := newTestRegistry(t)
	root := reg.Root()

	spy := &closerSpy{}
	Register(root, func(*Container, any) (*closerSpy, error) {
		return spy, nil
	}, InScope(reg.Scopes().Container))
	MustResolve[*closerSpy](root)

	if err := reg.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if spy.closed != 1 {
		t.Errorf("Close calls = %d, want container-cached instances closed", spy.closed)
	}
}

func TestCloseReportsCloserErrors(t *testing.T) {
	reg := newTestRegistry(t)
	root := reg.Root()

	Register(root, func(*Container, any) (*failingCloser, error) {
		return &failingCloser{}, nil
	}, InScope(reg.Scopes().Application))
	MustResolve[*failingCloser](root)

	if err := reg.Close(); err == nil {
		t.Fatal("Close should surface closer failures")
	}
}

func TestClosedRegistryRejectsOperations(t *testing.T) {
	reg := newTestRegistry(t)
	root := reg.Root()
	if err := reg.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, err := Resolve[*database](root); !apperrors.IsCode(err, apperrors.ErrCodeRegistryClosed) {
		t.Errorf("resolve after close: %v, want code %s", err, apperrors.ErrCodeRegistryClosed)
	}
	err := reg.AddModule(NewModule("late", func(*Container) error { return nil }))
	if !apperrors.IsCode(err, apperrors.ErrCodeRegistryClosed) {
		t.Errorf("AddModule after close: %v, want code %s", err, apperrors.ErrCodeRegistryClosed)
	}

	defer func() {
		rec := recover()
		if rec == nil {
			t.Fatal("Register after close should panic")
		}
		err, ok := rec.(error)
		if !ok || !apperrors.IsCode(err, apperrors.ErrCodeRegistryClosed) {
			t.Fatalf("panic value = %v, want a REGISTRY_CLOSED error", rec)
		}
	}()
	Register(root, func(*Container, any) (*database, error) {
		return &database{}, nil
	})
}

func TestResetReopensClosedRegistry(t *testing.T) {
	reg := newTestRegistry(t)
	if err := reg.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reg.Reset()
	Register(reg.Root(), func(*Container, any) (*database, error) {
		return &database{}, nil
	})
	if _, err := Resolve[*database](reg.Root()); err != nil {
		t.Fatalf("resolve after reset: %v", err)
	}
}

func TestNewFromSettings(t *testing.T) {
	settings := config.Settings{
		DefaultScope: "cached",
		Logging:      logger.Config{Level: "error", Format: "json"},
	}
	reg, err := NewFromSettings(settings)
	if err != nil {
		t.Fatalf("NewFromSettings: %v", err)
	}
	t.Cleanup(func() { _ = reg.Close() })

	if reg.DefaultScope() != scope.Scope(reg.Scopes().Cached) {
		t.Errorf("default scope = %s, want cached", reg.DefaultScope().Name())
	}
}

func TestNewFromSettingsObservability(t *testing.T) {
	settings := config.Settings{
		Logging: logger.Config{Level: "error", Format: "json"},
		Metrics: config.MetricsSettings{Enabled: true},
		Tracing: config.TracingSettings{Enabled: true},
	}
	reg, err := NewFromSettings(settings)
	if err != nil {
		t.Fatalf("NewFromSettings: %v", err)
	}
	t.Cleanup(func() { _ = reg.Close() })

	if reg.metrics == nil {
		t.Error("metrics should be wired when enabled")
	}
	if reg.tracer == nil {
		t.Error("tracer should be wired when enabled")
	}
}

func TestNewFromSettingsRejectsBadScope(t *testing.T) {
	settings := config.Settings{
		DefaultScope: "galactic",
		Logging:      logger.Config{Level: "error", Format: "json"},
	}
	if _, err := NewFromSettings(settings); !apperrors.IsCode(err, apperrors.ErrCodeInvalidConfig) {
		t.Fatalf("error = %v, want code %s", err, apperrors.ErrCodeInvalidConfig)
	}
}

func TestTracerRecordsOneSpanPerTopLevelResolution(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	reg := New(WithLogger(quietLogger()), WithTracer(tp.Tracer("test")))
	t.Cleanup(func() { _ = reg.Close() })
	root := reg.Root()

	Register(root, func(*Container, any) (*database, error) {
		return &database{}, nil
	})
	Register(root, func(c *Container, _ any) (*repository, error) {
		return &repository{db: MustResolve[*database](c)}, nil
	})

	MustResolve[*repository](root)

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want one span covering the nested resolution", len(spans))
	}
	if spans[0].Name != observability.SpanResolve {
		t.Errorf("span name = %q, want %q", spans[0].Name, observability.SpanResolve)
	}
}

func TestTracerRecordsResolutionErrors(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	reg := New(WithLogger(quietLogger()), WithTracer(tp.Tracer("test")))
	t.Cleanup(func() { _ = reg.Close() })

	if _, err := Resolve[*database](reg.Root()); err == nil {
		t.Fatal("expected a resolution failure")
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	if len(spans[0].Events) == 0 {
		t.Error("the failure should be recorded on the span")
	}
}

func TestMetricsCountTopLevelResolutions(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	m, err := observability.NewMetrics(provider.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	reg := New(WithLogger(quietLogger()), WithMetrics(m))
	t.Cleanup(func() { _ = reg.Close() })
	root := reg.Root()

	Register(root, func(*Container, any) (*database, error) {
		return &database{}, nil
	})
	Register(root, func(c *Container, _ any) (*repository, error) {
		return &repository{db: MustResolve[*database](c)}, nil
	})
	MustResolve[*repository](root)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if got := counterValue(t, rm, "resolver.registrations"); got != 2 {
		t.Errorf("resolver.registrations = %d, want 2", got)
	}
	if got := counterValue(t, rm, "resolver.resolutions"); got != 1 {
		t.Errorf("resolver.resolutions = %d, want only the top-level call counted", got)
	}
	if got := counterValue(t, rm, "resolver.factory.calls"); got != 2 {
		t.Errorf("resolver.factory.calls = %d, want 2", got)
	}
}

func counterValue(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("%s is not an int64 sum", name)
			}
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

type failingCloser struct{}

func (f *failingCloser) Close() error { return errors.New("flush failed") }
