package telemetry

import (
	"context"
	"sync"
	"testing"

	"github.com/hrapi/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

type recordingProcessor struct {
	mu     sync.Mutex
	bodies []string
}

func (p *recordingProcessor) OnEmit(_ context.Context, record *sdklog.Record) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bodies = append(p.bodies, record.Body().AsString())
	return nil
}

func (p *recordingProcessor) Enabled(context.Context, sdklog.EnabledParameters) bool { return true }
func (p *recordingProcessor) Shutdown(context.Context) error                         { return nil }
func (p *recordingProcessor) ForceFlush(context.Context) error                       { return nil }

func TestNewLoggerProvider_Disabled(t *testing.T) {
	ctx := context.Background()
	lp, err := NewLoggerProvider(ctx, LogsConfig{ServiceName: "hrapi-test"}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, lp.IsEnabled())
	assert.NoError(t, lp.Shutdown(ctx))

	core := NewZapOTELCore(ZapBridgeConfig{ServiceName: "hrapi", LoggerProvider: lp})
	assert.False(t, core.Enabled(zapcore.ErrorLevel))
	assert.False(t, NewZapOTELCore(ZapBridgeConfig{}).Enabled(zapcore.ErrorLevel))
}

func TestLogsConfigFrom(t *testing.T) {
	assert.False(t, LogsConfigFrom(config.TelemetryConfig{Enabled: true}).Enabled)
	assert.False(t, LogsConfigFrom(config.TelemetryConfig{LogsEnabled: true}).Enabled)
	assert.True(t, LogsConfigFrom(config.TelemetryConfig{Enabled: true, LogsEnabled: true}).Enabled)
}

func TestNewZapOTELCore_ExportsAboveLevel(t *testing.T) {
	processor := &recordingProcessor{}
	lp := &LoggerProvider{
		provider: sdklog.NewLoggerProvider(sdklog.WithProcessor(processor)),
		logger:   zap.NewNop(),
		config:   LogsConfig{Enabled: true},
	}
	t.Cleanup(func() { _ = lp.Shutdown(context.Background()) })

	logger := zap.New(NewZapOTELCore(ZapBridgeConfig{
		ServiceName:    "hrapi",
		LoggerProvider: lp,
		Level:          zapcore.InfoLevel,
	}))
	logger.Debug("dropped")
	logger.Info("Leave request event", zap.String("status", "Approved"))

	processor.mu.Lock()
	defer processor.mu.Unlock()
	assert.Equal(t, []string{"Leave request event"}, processor.bodies)
}

func TestLevelFilterCore(t *testing.T) {
	inner, logs := observer.New(zapcore.DebugLevel)
	core := &levelFilterCore{Core: inner, minLevel: zapcore.WarnLevel}

	assert.False(t, core.Enabled(zapcore.InfoLevel))
	assert.True(t, core.Enabled(zapcore.ErrorLevel))

	logger := zap.New(core.With([]zapcore.Field{zap.String("tenant_id", "t-1")}))
	logger.Info("ignored")
	logger.Warn("kept")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "kept", entry.Message)
	assert.Equal(t, "t-1", entry.ContextMap()["tenant_id"])
}
