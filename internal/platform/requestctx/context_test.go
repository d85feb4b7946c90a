package requestctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoggerDefaultsToNoop(t *testing.T) {
	t.Parallel()

	require.Same(t, NoopLogger(), Logger(context.Background()))
	require.Same(t, NoopLogger(), Logger(WithLogger(context.Background(), nil)))

	logger := zap.NewExample()
	require.Same(t, logger, Logger(WithLogger(context.Background(), logger)))
}

func TestTraceAndLang(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, ok := Trace(ctx)
	require.False(t, ok)
	require.Empty(t, TraceID(ctx))
	require.Empty(t, Lang(ctx))

	ctx = WithTrace(ctx, TraceInfo{TraceID: "abc", SpanID: "def"})
	ctx = WithLang(ctx, "it")
	require.Equal(t, "abc", TraceID(ctx))
	require.Equal(t, "it", Lang(ctx))
}
