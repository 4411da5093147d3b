package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/resolver/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds OpenTelemetry metric instruments for registry activity.
type Metrics struct {
	registrationTotal  metric.Int64Counter
	resolutionTotal    metric.Int64Counter
	resolutionDuration metric.Float64Histogram
	resolutionActive   metric.Int64UpDownCounter
	factoryCalls       metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	registrationTotal, err := meter.Int64Counter("resolver.registrations",
		metric.WithDescription("Total number of service registrations"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resolver.registrations counter: %w", err)
	}

	resolutionTotal, err := meter.Int64Counter("resolver.resolutions",
		metric.WithDescription("Total number of top-level resolutions by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resolver.resolutions counter: %w", err)
	}

	resolutionDuration, err := meter.Float64Histogram("resolver.resolution.duration",
		metric.WithDescription("Duration of top-level resolutions in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resolver.resolution.duration histogram: %w", err)
	}

	resolutionActive, err := meter.Int64UpDownCounter("resolver.resolutions.active",
		metric.WithDescription("Number of currently running top-level resolutions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resolver.resolutions.active gauge: %w", err)
	}

	factoryCalls, err := meter.Int64Counter("resolver.factory.calls",
		metric.WithDescription("Total factory invocations, including nested dependency construction"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resolver.factory.calls counter: %w", err)
	}

	return &Metrics{
		registrationTotal:  registrationTotal,
		resolutionTotal:    resolutionTotal,
		resolutionDuration: resolutionDuration,
		resolutionActive:   resolutionActive,
		factoryCalls:       factoryCalls,
	}, nil
}

// RecordRegistration records one service registration.
func (m *Metrics) RecordRegistration(ctx context.Context, service, scope string) {
	m.registrationTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("service", service),
		attribute.String("scope", scope),
	))
}

// RecordResolutionStart increments the active resolution count.
func (m *Metrics) RecordResolutionStart(ctx context.Context) {
	m.resolutionActive.Add(ctx, 1)
}

// RecordResolutionEnd decrements active resolutions and records the completed
// resolution with its outcome.
func (m *Metrics) RecordResolutionEnd(ctx context.Context, service, outcome string, duration time.Duration) {
	m.resolutionActive.Add(ctx, -1)
	m.resolutionTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("service", service),
		attribute.String("outcome", outcome),
	))
	m.resolutionDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("service", service),
	))
}

// RecordFactoryCall records one factory invocation.
func (m *Metrics) RecordFactoryCall(ctx context.Context, service string) {
	m.factoryCalls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("service", service),
	))
}
