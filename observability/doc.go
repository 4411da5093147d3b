// Package observability provides OpenTelemetry tracing and metrics
// integration for the resolver registry.
//
// Tracing:
//
//	tc := observability.DefaultTracerConfig("my-service")
//	tp, err := observability.InitTracer(ctx, &tc)
//	defer tp.Shutdown(ctx)
//
//	reg := resolver.New(resolver.WithTracer(observability.Tracer("my-service")))
//
// Metrics:
//
//	mc := observability.DefaultMeterConfig("my-service")
//	mp, err := observability.InitMeter(ctx, &mc)
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("my-service"))
//	reg := resolver.New(resolver.WithMetrics(metrics))
package observability
