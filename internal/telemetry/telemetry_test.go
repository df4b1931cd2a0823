package telemetry

import (
	"context"
	"testing"
)

func TestDisabledByDefault(t *testing.T) {
	t.Setenv("TODOSCAN_OTEL_ENABLED", "")
	if Enabled() {
		t.Fatal("telemetry should be disabled without opt-in")
	}

	ctx := context.Background()
	if err := Init(ctx, "todoscan", "test"); err != nil {
		t.Fatalf("Init: %v", err)
	}

	// Counters must be safe no-ops when disabled.
	CountScan(ctx, 10)
	CountDiff(ctx, 2, 1)
	CountWatchEvent(ctx, 1, 0)

	if err := Shutdown(ctx); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}

func TestStdoutExporterInit(t *testing.T) {
	t.Setenv("TODOSCAN_OTEL_ENABLED", "true")
	t.Setenv("TODOSCAN_OTEL_STDOUT", "true")

	ctx := context.Background()
	if err := Init(ctx, "todoscan", "test"); err != nil {
		t.Fatalf("Init: %v", err)
	}
	CountScan(ctx, 1)
	if err := Shutdown(ctx); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
	shutdownFn = nil
}
