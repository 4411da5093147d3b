// Package bootstrap assembles a fully configured registry from settings
// files, the environment, and registration modules, together with the
// logging and telemetry those settings enable, and manages the shutdown of
// all of it as one unit.
//
// # Quick Start
//
//	app, err := bootstrap.New(ctx,
//	    bootstrap.WithServiceName("orders"),
//	    bootstrap.WithModules(storage.Module(), api.Module()),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	app.OnReady(func(ctx context.Context) error {
//	    _, err := resolver.Resolve[*orders.Service](app.Registry.Root())
//	    return err
//	})
//	if err := app.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Run blocks until an interrupt or termination signal and then shuts the
// registry and telemetry providers down gracefully. Finite workloads use
// RunTask instead:
//
//	err := app.RunTask(ctx, func(ctx context.Context) error {
//	    return migrate(ctx, app.Registry.Root())
//	})
package bootstrap
