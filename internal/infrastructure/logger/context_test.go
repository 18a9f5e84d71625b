package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newCapturingLogger returns a JSON logger writing into the returned buffer.
func newCapturingLogger(t *testing.T) (*zap.Logger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	encoderConfig := zapcore.EncoderConfig{
		MessageKey: "msg",
		LevelKey:   "level",
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(buf),
		zapcore.DebugLevel,
	)
	return zap.New(core), buf
}

func TestWithContext(t *testing.T) {
	logger, err := NewForEnvironment("development")
	require.NoError(t, err)

	ctx := context.Background()
	ctxWithLogger := WithContext(ctx, logger)

	retrievedLogger := FromContext(ctxWithLogger)
	assert.NotNil(t, retrievedLogger)
}

func TestFromContext_NotFound(t *testing.T) {
	ctx := context.Background()
	logger := FromContext(ctx)

	// Should return a no-op logger
	assert.NotNil(t, logger)
}

func TestWithRequestID(t *testing.T) {
	logger, err := NewForEnvironment("development")
	require.NoError(t, err)

	ctx := context.Background()
	requestID := "req-123"

	newCtx, newLogger := WithRequestID(ctx, logger, requestID)

	assert.NotNil(t, newLogger)
	assert.Equal(t, requestID, GetRequestID(newCtx))
}

func TestWithUserID(t *testing.T) {
	logger, err := NewForEnvironment("development")
	require.NoError(t, err)

	ctx := context.Background()
	userID := "user-789"

	newCtx, newLogger := WithUserID(ctx, logger, userID)

	assert.NotNil(t, newLogger)
	assert.Equal(t, userID, GetUserID(newCtx))
}

func TestGetRequestID_NotFound(t *testing.T) {
	ctx := context.Background()
	requestID := GetRequestID(ctx)
	assert.Empty(t, requestID)
}

func TestGetUserID_NotFound(t *testing.T) {
	ctx := context.Background()
	userID := GetUserID(ctx)
	assert.Empty(t, userID)
}

func TestL_InjectsContextFields(t *testing.T) {
	logger, buf := newCapturingLogger(t)

	ctx := WithContext(context.Background(), logger)
	ctx, _ = WithRequestID(ctx, FromContext(ctx), "req-42")
	ctx, _ = WithUserID(ctx, FromContext(ctx), "user-7")

	L(ctx).Info("fitting booked")

	out := buf.String()
	assert.Contains(t, out, "fitting booked")
	assert.Contains(t, out, "req-42")
	assert.Contains(t, out, "user-7")
}

func TestL_NoLoggerInContext(t *testing.T) {
	// Must not panic with an empty context.
	assert.NotPanics(t, func() {
		L(context.Background()).Info("noop message")
	})
}

func TestContextLogger_With(t *testing.T) {
	logger, buf := newCapturingLogger(t)

	cl := WithLogger(context.Background(), logger).With(zap.String("component", "export"))
	cl.Info("job claimed")

	out := buf.String()
	assert.Contains(t, out, "job claimed")
	assert.Contains(t, out, "export")
}

func TestContextLogger_Zap(t *testing.T) {
	logger, _ := newCapturingLogger(t)

	cl := WithLogger(context.Background(), logger)
	assert.NotNil(t, cl.Zap())
	assert.NotNil(t, cl.Sugar())
}
