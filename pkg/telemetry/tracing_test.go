package telemetry_test

import (
	"context"
	"testing"

	"github.com/Gunvolt24/cartsync/pkg/telemetry"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestClampRatio(t *testing.T) {
	require.Equal(t, 0.0, telemetry.ClampRatio(-1))
	require.Equal(t, 1.0, telemetry.ClampRatio(3))
	require.Equal(t, 0.25, telemetry.ClampRatio(0.25))
}

func TestSetupTracing_InstallsProvider(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := telemetry.SetupTracing(context.Background(), telemetry.Config{
		ServiceName: "cartd-test",
		Endpoint:    "127.0.0.1:1",
		SampleRatio: 0,
	})
	require.NoError(t, err)
	t.Cleanup(func() { otel.SetTracerProvider(before) })

	_, isSDK := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	require.True(t, isSDK)
	// nothing sampled, nothing exported
	require.NoError(t, shutdown(context.Background()))
}
