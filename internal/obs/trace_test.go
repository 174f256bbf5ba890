package obs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithTrace(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core)

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1, 2, 3},
		SpanID:     trace.SpanID{4, 5, 6},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	WithTrace(ctx, log).Info("traced")
	WithTrace(context.Background(), log).Info("plain")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, sc.TraceID().String(), entries[0].ContextMap()["trace_id"])
	assert.Equal(t, sc.SpanID().String(), entries[0].ContextMap()["span_id"])
	assert.NotContains(t, entries[1].ContextMap(), "trace_id")
}

func TestWithTrace_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() { WithTrace(context.Background(), nil).Info("dropped") })
}

func TestSetupOTel_Disabled(t *testing.T) {
	o, err := SetupOTel(context.Background(), &OTELConfig{Enable: false})
	require.NoError(t, err)
	assert.Nil(t, o.TracerProvider)
	assert.NoError(t, o.Shutdown(context.Background()))

	var none *OTel
	assert.NoError(t, none.Shutdown(context.Background()))
}

func TestRatioSampler(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), ratioSampler(1).Description())
	assert.Equal(t, sdktrace.NeverSample().Description(), ratioSampler(0).Description())
	assert.Equal(t, sdktrace.TraceIDRatioBased(0.25).Description(), ratioSampler(0.25).Description())
}

func TestResourceAttrs(t *testing.T) {
	attrs := resourceAttrs(&OTELConfig{ServiceName: "reminder", Env: "prod"})
	require.Len(t, attrs, 2)
	assert.Equal(t, "reminder", attrs[0].Value.AsString())
	assert.Equal(t, "prod", attrs[1].Value.AsString())
}
