package telemetry

import (
	"context"
	"testing"
)

func TestSetup_DisabledWithoutEndpoint(t *testing.T) {
	shutdown := Setup(context.Background(), "blog", "", false)
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("noop shutdown returned %v", err)
	}
}

func TestSetup_WithEndpoint(t *testing.T) {
	// The gRPC exporter connects lazily, so setup succeeds without a collector.
	shutdown := Setup(context.Background(), "blog", "127.0.0.1:4317", true)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}
