package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// setupTestTracer installs an in-memory span recorder as the global provider
func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(original)
		_ = tp.Shutdown(context.Background())
	})
	return sr
}

func attrValue(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, a := range attrs {
		if string(a.Key) == key {
			return a.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestStartSpan(t *testing.T) {
	sr := setupTestTracer(t)

	ctx, span := telemetry.StartSpan(context.Background(), "test.operation")
	require.NotNil(t, span)
	assert.True(t, trace.SpanFromContext(ctx).SpanContext().IsValid())
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "test.operation", spans[0].Name())
	assert.Equal(t, trace.SpanKindInternal, spans[0].SpanKind())
}

func TestStartSpan_WithOptions(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartSpan(context.Background(), "remote.call",
		telemetry.WithSpanKind(trace.SpanKindClient),
		telemetry.WithAttribute("product.id", int64(42)),
		telemetry.WithAttribute("service", "Discount Service"),
	)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, trace.SpanKindClient, spans[0].SpanKind())

	v, ok := attrValue(spans[0].Attributes(), "product.id")
	require.True(t, ok)
	assert.Equal(t, int64(42), v.AsInt64())
	v, ok = attrValue(spans[0].Attributes(), "service")
	require.True(t, ok)
	assert.Equal(t, "Discount Service", v.AsString())
}

func TestSetAttribute_ConvertsValues(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartSpan(context.Background(), "attrs")
	telemetry.SetAttribute(span, "s", "x")
	telemetry.SetAttribute(span, "i", 3)
	telemetry.SetAttribute(span, "f", 1.5)
	telemetry.SetAttribute(span, "b", true)
	telemetry.SetAttribute(span, "list", []string{"a", "b"})
	telemetry.SetAttribute(span, "other", struct{ N int }{7})
	span.End()

	attrs := sr.Ended()[0].Attributes()
	v, _ := attrValue(attrs, "s")
	assert.Equal(t, "x", v.AsString())
	v, _ = attrValue(attrs, "i")
	assert.Equal(t, int64(3), v.AsInt64())
	v, _ = attrValue(attrs, "f")
	assert.Equal(t, 1.5, v.AsFloat64())
	v, _ = attrValue(attrs, "b")
	assert.True(t, v.AsBool())
	v, _ = attrValue(attrs, "list")
	assert.Equal(t, []string{"a", "b"}, v.AsStringSlice())
	v, _ = attrValue(attrs, "other")
	assert.Equal(t, "{7}", v.AsString())
}

func TestRecordError(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartSpan(context.Background(), "failing")
	telemetry.RecordError(span, errors.New("boom"))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "boom", spans[0].Status().Description)
	require.Len(t, spans[0].Events(), 1)
}

func TestRecordError_NilIsIgnored(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartSpan(context.Background(), "ok")
	telemetry.RecordError(span, nil)
	telemetry.SetOK(span)
	span.End()

	assert.Equal(t, codes.Ok, sr.Ended()[0].Status().Code)
}

func TestHelpers_NilSpan(t *testing.T) {
	assert.NotPanics(t, func() {
		telemetry.SetAttribute(nil, "k", "v")
		telemetry.RecordError(nil, errors.New("x"))
		telemetry.SetOK(nil)
	})
}
