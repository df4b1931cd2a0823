// Package telemetry provides OpenTelemetry metrics for todoscan.
//
// Telemetry is disabled by default (zero runtime overhead when off).
//
// # Configuration
//
//	TODOSCAN_OTEL_ENABLED=true        enable telemetry (default: off)
//	TODOSCAN_OTEL_STDOUT=true         write metrics to stderr (dev mode)
//	OTEL_EXPORTER_OTLP_ENDPOINT=...   OTLP/HTTP endpoint
//	OTEL_SERVICE_NAME=todoscan        override service name
package telemetry

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const instrumentationScope = "github.com/steveyegge/todoscan"

var (
	shutdownFn func(context.Context) error

	scanItems   metric.Int64Counter
	diffRuns    metric.Int64Counter
	watchEvents metric.Int64Counter
	watchItems  metric.Int64Counter
)

// Enabled reports whether telemetry is active.
func Enabled() bool {
	return os.Getenv("TODOSCAN_OTEL_ENABLED") == "true"
}

// Init configures the meter provider. When TODOSCAN_OTEL_ENABLED is not
// "true" this installs a no-op provider and returns immediately.
func Init(ctx context.Context, serviceName, version string) error {
	if !Enabled() {
		otel.SetMeterProvider(metricnoop.NewMeterProvider())
		initInstruments()
		return nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(version),
		),
		resource.WithHost(),
		resource.WithProcess(),
	)
	if err != nil {
		return fmt.Errorf("telemetry: resource: %w", err)
	}

	exporter, err := buildExporter(ctx)
	if err != nil {
		return fmt.Errorf("telemetry: exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(10*time.Second))),
	)
	otel.SetMeterProvider(mp)
	shutdownFn = mp.Shutdown

	initInstruments()
	return nil
}

func buildExporter(ctx context.Context) (sdkmetric.Exporter, error) {
	if os.Getenv("TODOSCAN_OTEL_STDOUT") == "true" {
		return stdoutmetric.New(stdoutmetric.WithWriter(os.Stderr))
	}
	return otlpmetrichttp.New(ctx)
}

func initInstruments() {
	meter := otel.Meter(instrumentationScope)
	scanItems, _ = meter.Int64Counter("todoscan.scan.items",
		metric.WithDescription("Annotations found by full directory scans"))
	diffRuns, _ = meter.Int64Counter("todoscan.diff.runs",
		metric.WithDescription("Git-scoped diff computations"))
	watchEvents, _ = meter.Int64Counter("todoscan.watch.events",
		metric.WithDescription("Watch events emitted"))
	watchItems, _ = meter.Int64Counter("todoscan.watch.items",
		metric.WithDescription("Annotations added/removed during watch"))
}

// Shutdown flushes pending metrics. Safe to call when disabled.
func Shutdown(ctx context.Context) error {
	if shutdownFn == nil {
		return nil
	}
	return shutdownFn(ctx)
}

// CountScan records the item total of a full scan.
func CountScan(ctx context.Context, items int) {
	if scanItems != nil {
		scanItems.Add(ctx, int64(items))
	}
}

// CountDiff records one diff computation.
func CountDiff(ctx context.Context, added, removed int) {
	if diffRuns != nil {
		diffRuns.Add(ctx, 1,
			metric.WithAttributes(
				attribute.Int("added", added),
				attribute.Int("removed", removed)))
	}
}

// CountWatchEvent records one emitted watch event and its item churn.
func CountWatchEvent(ctx context.Context, added, removed int) {
	if watchEvents == nil {
		return
	}
	watchEvents.Add(ctx, 1)
	watchItems.Add(ctx, int64(added),
		metric.WithAttributes(attribute.String("direction", "added")))
	watchItems.Add(ctx, int64(removed),
		metric.WithAttributes(attribute.String("direction", "removed")))
}
