package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "debug", "json")

	logger.Debug("tables loaded", "daily_rows", 731)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "tables loaded", entry["msg"])
	assert.Equal(t, float64(731), entry["daily_rows"])
}

func TestNewLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "warn", "text")

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("bogus"))
}

func TestRecordRender(t *testing.T) {
	m := NewMetricsForTesting()

	m.RecordRender("home", OutcomeRendered)
	m.RecordRender("home", OutcomeRendered)
	m.RecordRender("weather", OutcomeHalted)

	assert.InDelta(t, 2, testutil.ToFloat64(m.Renders.WithLabelValues("home", OutcomeRendered)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Renders.WithLabelValues("weather", OutcomeHalted)), 0)
}
