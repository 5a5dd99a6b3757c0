package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext_Nop(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}

func TestWithTicket(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	ctx, l := WithTicket(context.Background(), zap.New(core), "3f1c")
	l.Info("executing")
	L(ctx).Info("through context")

	assert.Equal(t, "3f1c", GetTicket(ctx))
	for _, entry := range recorded.All() {
		assert.Equal(t, "3f1c", entry.ContextMap()["ticket"])
	}
	assert.Equal(t, 2, recorded.Len())
}

func TestWithRequestID(t *testing.T) {
	ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-1")
	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "", GetRequestID(context.Background()))
}

func TestWithTraceContext(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	WithTraceContext(context.Background(), base).Info("no span")

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})
	ctx := trace.ContextWithSpanContext(context.Background(), spanCtx)

	WithTraceContext(ctx, base).Info("with span")

	entries := recorded.All()
	assert.NotContains(t, entries[0].ContextMap(), "trace_id")
	assert.Equal(t, traceID.String(), entries[1].ContextMap()["trace_id"])
	assert.Equal(t, traceID.String(), GetTraceID(ctx))
}
