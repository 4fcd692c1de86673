package telemetry

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"

	"geminus.dev/internal/config"
)

func TestSetupDisabledIsNoop(t *testing.T) {
	before := otel.GetTracerProvider()

	tests := []config.Telemetry{
		{},
		{Enabled: true},
		{Endpoint: "http://collector:4318"},
	}
	for _, cfg := range tests {
		shutdown, err := Setup(context.Background(), cfg, "test")
		if err != nil {
			t.Fatalf("Setup(%+v): %v", cfg, err)
		}
		if err := shutdown(context.Background()); err != nil {
			t.Fatalf("shutdown: %v", err)
		}
		if otel.GetTracerProvider() != before {
			t.Fatalf("Setup(%+v) registered a provider", cfg)
		}
	}
}

func TestSetupEnabled(t *testing.T) {
	before := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(before) })

	shutdown, err := Setup(context.Background(), config.Telemetry{Enabled: true, Endpoint: "http://127.0.0.1:4318"}, "test")
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if otel.GetTracerProvider() == before {
		t.Fatal("provider not registered")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}
