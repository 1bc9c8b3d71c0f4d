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

func TestFromContext_DefaultsToNop(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}

func TestWithTenantID(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	ctx, l := WithTenantID(context.Background(), zap.New(core), "tenant-1")

	assert.Equal(t, "tenant-1", GetTenantID(ctx))
	assert.Same(t, l, FromContext(ctx))

	l.Info("hello")
	assert.Equal(t, "tenant-1", recorded.All()[0].ContextMap()["tenant_id"])
}

func TestContextWithTenantID_KeepsLogger(t *testing.T) {
	base := zap.NewExample()
	ctx := WithContext(context.Background(), base)
	ctx = ContextWithTenantID(ctx, "tenant-2")

	assert.Equal(t, "tenant-2", GetTenantID(ctx))
	assert.Same(t, base, FromContext(ctx))
}

func TestGetters_Empty(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetTenantID(ctx))
	assert.Empty(t, GetUserID(ctx))
	assert.Empty(t, GetTraceID(ctx))
}

func TestContextLogger_EnrichesWithContextFields(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	ctx := WithContext(context.Background(), zap.New(core))
	ctx = context.WithValue(ctx, RequestIDKey, "req-1")
	ctx = ContextWithTenantID(ctx, "tenant-1")
	ctx = context.WithValue(ctx, UserIDKey, "user-1")

	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	ctx = trace.ContextWithSpanContext(ctx, trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))

	L(ctx).With(zap.String("extra", "x")).Warn("enriched")

	fields := recorded.All()[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "tenant-1", fields["tenant_id"])
	assert.Equal(t, "user-1", fields["user_id"])
	assert.Equal(t, "x", fields["extra"])
	assert.Equal(t, traceID.String(), fields["trace_id"])
	assert.Equal(t, traceID.String(), GetTraceID(ctx))
}

func TestContextLogger_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		WithLogger(context.Background(), nil).Info("nothing")
	})
}
