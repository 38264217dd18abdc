package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/courier/pkg/logger"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	return rec
}

func TestNewWithWriter_MessageID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, logger.Config{Level: slog.LevelDebug})

	ctx := logger.WithMessageID(context.Background(), "abc@example.com")
	log.DebugContext(ctx, "email sent")

	rec := decode(t, &buf)
	require.Equal(t, "email sent", rec["msg"])
	require.Equal(t, "abc@example.com", rec["message_id"])
}

func TestNewWithWriter_NoMessageID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, logger.Config{})

	log.InfoContext(context.Background(), "hello")

	rec := decode(t, &buf)
	require.NotContains(t, rec, "message_id")
}

func TestNewWithWriter_Level(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, logger.Config{Level: slog.LevelWarn})

	log.Info("dropped")
	require.Zero(t, buf.Len())

	log.Warn("kept")
	require.NotZero(t, buf.Len())
}

func TestNewWithWriter_TextFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, logger.Config{Format: "text"})

	log.Info("plain")
	require.Contains(t, buf.String(), "msg=plain")
}

func TestCustomExtractor(t *testing.T) {
	t.Parallel()

	type tenantKey struct{}
	extractor := func(ctx context.Context) (slog.Attr, bool) {
		if v, ok := ctx.Value(tenantKey{}).(string); ok {
			return slog.String("tenant", v), true
		}
		return slog.Attr{}, false
	}

	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, logger.Config{}, extractor, nil)

	ctx := context.WithValue(context.Background(), tenantKey{}, "acme")
	log.With(slog.String("component", "mailer")).InfoContext(ctx, "queued")

	rec := decode(t, &buf)
	require.Equal(t, "acme", rec["tenant"])
	require.Equal(t, "mailer", rec["component"])
}

func TestMessageID(t *testing.T) {
	t.Parallel()

	_, ok := logger.MessageID(context.Background())
	require.False(t, ok)

	ctx := logger.WithMessageID(context.Background(), "")
	_, ok = logger.MessageID(ctx)
	require.False(t, ok)

	id, ok := logger.MessageID(logger.WithMessageID(context.Background(), "x@y"))
	require.True(t, ok)
	require.Equal(t, "x@y", id)
}

func TestNewWithSentry_FallsBackWithoutDSN(t *testing.T) {
	t.Parallel()

	log := logger.NewWithSentry(logger.Config{}, logger.SentryConfig{})
	require.NotNil(t, log)
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := logger.NewNope()
	require.False(t, log.Enabled(context.Background(), slog.LevelError))
}
