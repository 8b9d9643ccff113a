package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jwtaudit/core/logger"
)

type traceKey struct{}

func decodeRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	return record
}

func TestWithContextValue(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithJSONFormatter(),
		logger.WithOutput(&buf),
		logger.WithContextValue("trace_id", traceKey{}),
	)

	t.Run("adds value present in context", func(t *testing.T) {
		buf.Reset()
		ctx := context.WithValue(context.Background(), traceKey{}, "abc")
		log.InfoContext(ctx, "with trace")

		assert.Equal(t, "abc", decodeRecord(t, &buf)["trace_id"])
	})

	t.Run("skips missing value", func(t *testing.T) {
		buf.Reset()
		log.InfoContext(context.Background(), "no trace")

		assert.NotContains(t, decodeRecord(t, &buf), "trace_id")
	})

	t.Run("plain methods log without context attrs", func(t *testing.T) {
		buf.Reset()
		log.Info("plain")

		record := decodeRecord(t, &buf)
		assert.Equal(t, "plain", record["msg"])
		assert.NotContains(t, record, "trace_id")
	})
}

func TestWithContextExtractors(t *testing.T) {
	t.Parallel()

	extractor := func(ctx context.Context) (slog.Attr, bool) {
		id, ok := ctx.Value(traceKey{}).(string)
		if !ok || id == "" {
			return slog.Attr{}, false
		}
		return slog.String("request_id", id), true
	}

	var buf bytes.Buffer
	log := logger.New(
		logger.WithJSONFormatter(),
		logger.WithOutput(&buf),
		logger.WithContextExtractors(extractor, nil),
	).With(logger.Component("analyzer"))

	ctx := context.WithValue(context.Background(), traceKey{}, "req-7")
	log.DebugContext(ctx, "below level")
	assert.Zero(t, buf.Len())

	log.WarnContext(ctx, "token rejected")
	record := decodeRecord(t, &buf)
	assert.Equal(t, "req-7", record["request_id"])
	assert.Equal(t, "analyzer", record["component"])
}

func TestWithContextExtractorsInsideGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithJSONFormatter(),
		logger.WithOutput(&buf),
		logger.WithContextValue("trace_id", traceKey{}),
	).WithGroup("http")

	log.InfoContext(context.WithValue(context.Background(), traceKey{}, "t-1"), "grouped")

	group, ok := decodeRecord(t, &buf)["http"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "t-1", group["trace_id"])
}
