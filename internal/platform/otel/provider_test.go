package otel_test

import (
	"context"
	"testing"

	"github.com/louisbranch/actionhud/internal/platform/otel"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	t.Setenv("ACTIONHUD_OTEL_ENDPOINT", "")
	t.Setenv("ACTIONHUD_OTEL_ENABLED", "")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_NoopWhenExplicitlyDisabled(t *testing.T) {
	t.Setenv("ACTIONHUD_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("ACTIONHUD_OTEL_ENABLED", "false")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_CreatesProviderWhenEndpointSet(t *testing.T) {
	// Use a non-routable address so no actual export happens.
	t.Setenv("ACTIONHUD_OTEL_ENDPOINT", "http://192.0.2.1:4318")
	t.Setenv("ACTIONHUD_OTEL_ENABLED", "")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Shutdown should flush cleanly even though the endpoint is unreachable.
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_ShutdownFlushesCleanly(t *testing.T) {
	t.Setenv("ACTIONHUD_OTEL_ENDPOINT", "http://192.0.2.1:4318")
	t.Setenv("ACTIONHUD_OTEL_ENABLED", "")

	shutdown, err := otel.Setup(context.Background(), "flush-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_NoopShutdownIgnoresCancelledContext(t *testing.T) {
	t.Setenv("ACTIONHUD_OTEL_ENDPOINT", "")
	t.Setenv("ACTIONHUD_OTEL_ENABLED", "")

	shutdown, err := otel.Setup(context.Background(), "noop-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("noop shutdown should not error: %v", err)
	}
}

func TestConfigActive(t *testing.T) {
	tests := []struct {
		cfg  otel.Config
		want bool
	}{
		{cfg: otel.Config{}, want: false},
		{cfg: otel.Config{Endpoint: "http://localhost:4318"}, want: true},
		{cfg: otel.Config{Endpoint: "http://localhost:4318", Enabled: "FALSE"}, want: false},
		{cfg: otel.Config{Endpoint: "  "}, want: false},
	}
	for _, tc := range tests {
		if got := tc.cfg.Active(); got != tc.want {
			t.Fatalf("Active(%+v) = %v, want %v", tc.cfg, got, tc.want)
		}
	}
}

func TestTracerStartsSpanWithoutProvider(t *testing.T) {
	_, span := otel.Tracer().Start(context.Background(), "test")
	defer span.End()
	if span == nil {
		t.Fatal("expected span")
	}
}
