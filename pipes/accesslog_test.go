package pipes

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/strada/dispatch"
)

func TestAccessLog(t *testing.T) {
	t.Run("logs one record per dispatch", func(t *testing.T) {
		var buf bytes.Buffer
		set := AccessLog(AccessLogConfig{
			Logger: slog.New(slog.NewJSONHandler(&buf, nil)),
		})

		_, err := dispatchWith([]dispatch.PipeSet{set}, nil, nil)
		require.NoError(t, err)

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "request", record["msg"])
		assert.Equal(t, "Ping::Check", record["action"])
		assert.Equal(t, "GET", record["method"])
		assert.Equal(t, "/ping", record["path"])
		assert.Equal(t, float64(200), record["status"])
		assert.Contains(t, record, "duration")
	})

	t.Run("includes request id when present", func(t *testing.T) {
		var buf bytes.Buffer
		rid := RequestID(RequestIDConfig{Generator: func() string { return "rid-1" }})
		logSet := AccessLog(AccessLogConfig{
			Logger: slog.New(slog.NewJSONHandler(&buf, nil)),
		})

		_, err := dispatchWith([]dispatch.PipeSet{rid, logSet}, nil, nil)
		require.NoError(t, err)

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "rid-1", record["request_id"])
	})

	t.Run("excluded actions are silent", func(t *testing.T) {
		var buf bytes.Buffer
		set := AccessLog(AccessLogConfig{
			Logger:         slog.New(slog.NewJSONHandler(&buf, nil)),
			ExcludeActions: []string{"Ping::Check"},
		})

		_, err := dispatchWith([]dispatch.PipeSet{set}, nil, nil)
		require.NoError(t, err)
		assert.Zero(t, buf.Len())
	})

	t.Run("slow requests log at warn", func(t *testing.T) {
		var buf bytes.Buffer
		set := AccessLog(AccessLogConfig{
			Logger:        slog.New(slog.NewJSONHandler(&buf, nil)),
			SlowThreshold: time.Nanosecond,
		})

		_, err := dispatchWith([]dispatch.PipeSet{set}, nil, nil)
		require.NoError(t, err)

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "WARN", record["level"])
		assert.Equal(t, "slow request", record["msg"])
	})
}
