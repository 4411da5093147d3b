package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/resolver"
	"github.com/kbukum/resolver/config"
	"github.com/kbukum/resolver/logger"
	"github.com/kbukum/resolver/observability"
	"github.com/kbukum/resolver/util"
	"github.com/kbukum/resolver/version"
)

// App bundles a settings-driven registry with the telemetry providers its
// configuration started, so both shut down together.
type App struct {
	Settings config.Settings
	Registry *resolver.Registry
	Logger   *logger.Logger
	Summary  *Summary

	gracefulTimeout time.Duration
	onReady         []Hook
	onStop          []Hook
	telemetry       []func(ctx context.Context) error
}

// New assembles an application: settings are loaded and validated, the
// global logger is initialized from them, OTLP meter and tracer providers
// start when the settings enable them, the registry is built, and every
// configured module is added.
func New(ctx context.Context, opts ...Option) (*App, error) {
	o := resolveOptions(opts)

	var settings config.Settings
	if o.settings != nil {
		settings = *o.settings
	} else {
		loaded, err := config.Load(o.loadOptions...)
		if err != nil {
			return nil, fmt.Errorf("loading settings: %w", err)
		}
		settings = loaded
	}
	settings.ApplyDefaults()
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	app := &App{
		Settings:        settings,
		gracefulTimeout: util.Coalesce(o.gracefulTimeout, 15*time.Second),
	}

	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(settings.Logging)
		app.Logger = logger.GetGlobalLogger()
	}

	if settings.Metrics.Enabled {
		cfg := o.meterConfig
		if cfg == nil {
			cfg = util.Ptr(observability.DefaultMeterConfig(o.serviceName))
		}
		mp, err := observability.InitMeter(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("initializing meter provider: %w", err)
		}
		app.telemetry = append(app.telemetry, mp.Shutdown)
	}
	if settings.Tracing.Enabled {
		cfg := o.tracerConfig
		if cfg == nil {
			cfg = util.Ptr(observability.DefaultTracerConfig(o.serviceName))
		}
		tp, err := observability.InitTracer(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("initializing tracer provider: %w", err)
		}
		app.telemetry = append(app.telemetry, tp.Shutdown)
	}

	if o.registry != nil {
		app.Registry = o.registry
	} else {
		reg, err := resolver.NewFromSettings(settings)
		if err != nil {
			return nil, err
		}
		app.Registry = reg
	}

	for _, m := range o.modules {
		if err := app.Registry.AddModule(m); err != nil {
			return nil, err
		}
	}

	app.Summary = NewSummary(o.serviceName, version.GetShortVersion())
	return app, nil
}

// Start registers every pending module eagerly, runs the ready hooks, and
// logs the startup summary. Run and RunTask call it; call it directly when
// managing your own lifecycle.
func (a *App) Start(ctx context.Context) error {
	start := time.Now()

	a.Logger.Info("starting application", logger.Fields(
		"default_scope", a.Registry.DefaultScope().Name(),
	))

	a.Registry.RunModules()

	if err := runHooks(ctx, a.onReady); err != nil {
		return fmt.Errorf("onReady hook failed: %w", err)
	}

	a.Summary.SetStartupDuration(time.Since(start))
	a.DisplaySummary()
	return nil
}

// Run starts the application and blocks until an interrupt or termination
// signal arrives or the context is canceled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	if err := a.Start(ctx); err != nil {
		return err
	}

	a.Logger.Info("application ready, waiting for shutdown signal")
	a.waitForSignal(ctx)

	return a.stop()
}

// RunTask starts the application, executes one finite task, and shuts down
// when the task returns. An interrupt or termination signal cancels the
// task's context; the task error wins over shutdown errors.
func (a *App) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.Start(ctx); err != nil {
		return err
	}

	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			a.Logger.Info("received signal, canceling task", logger.Fields(
				"signal", sig.String(),
			))
			cancel()
		case <-taskCtx.Done():
		}
	}()

	taskErr := task(taskCtx)

	if stopErr := a.stop(); stopErr != nil && taskErr == nil {
		return stopErr
	}
	return taskErr
}

// Shutdown performs graceful shutdown. Use it when managing your own
// lifecycle instead of Run.
func (a *App) Shutdown(ctx context.Context) error {
	return a.stop()
}

// DisplaySummary prints the startup summary from the registry's current
// registration table.
func (a *App) DisplaySummary() {
	a.Summary.DisplaySummary(a.Registry.Root())
}

// waitForSignal blocks until an interrupt/termination signal or context
// cancellation.
func (a *App) waitForSignal(ctx context.Context) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("received shutdown signal", logger.Fields(
			"signal", sig.String(),
		))
	case <-ctx.Done():
		a.Logger.Info("context canceled, shutting down")
	}
}

// stop runs the stop hooks, closes the registry, and shuts the telemetry
// providers down in reverse start order, all within the graceful timeout.
func (a *App) stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var shutdownErr error

	if err := runHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("onStop hook error", logger.Fields(
			logger.FieldError, err.Error(),
		))
		shutdownErr = err
	}

	if err := a.Registry.Close(); err != nil {
		a.Logger.Error("registry close error", logger.Fields(
			logger.FieldError, err.Error(),
		))
		if shutdownErr == nil {
			shutdownErr = err
		}
	}

	for i := len(a.telemetry) - 1; i >= 0; i-- {
		if err := a.telemetry[i](ctx); err != nil {
			a.Logger.Error("telemetry shutdown error", logger.Fields(
				logger.FieldError, err.Error(),
			))
			if shutdownErr == nil {
				shutdownErr = err
			}
		}
	}

	a.Logger.Info("application shutdown complete")
	return shutdownErr
}
