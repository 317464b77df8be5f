package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, SourceCSV, cfg.DataSource)
	assert.Equal(t, "./data/day_df.csv", cfg.DailyCSV)
	assert.Equal(t, "./data/hour_df.csv", cfg.HourlyCSV)
	assert.Equal(t, "day_df", cfg.DailyTable)
	assert.Equal(t, "hour_df", cfg.HourlyTable)
	assert.Equal(t, 960, cfg.ChartWidth)
	assert.Equal(t, 420, cfg.ChartHeight)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("PORT", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("DATA_SOURCE", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/bikes.db")
	t.Setenv("DAILY_TABLE", "days")
	t.Setenv("HOURLY_TABLE", "hours")
	t.Setenv("CHART_WIDTH", "640")
	t.Setenv("CHART_HEIGHT", "320")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, SourceSQLite, cfg.DataSource)
	assert.Equal(t, "/tmp/bikes.db", cfg.SQLitePath)
	assert.Equal(t, "days", cfg.DailyTable)
	assert.Equal(t, "hours", cfg.HourlyTable)
	assert.Equal(t, 640, cfg.ChartWidth)
	assert.Equal(t, 320, cfg.ChartHeight)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown data source", "DATA_SOURCE", "parquet"},
		{"empty daily csv", "DAILY_CSV", ""},
		{"bad shutdown timeout", "SHUTDOWN_TIMEOUT", "soon"},
		{"negative shutdown timeout", "SHUTDOWN_TIMEOUT", "-1s"},
		{"bad chart width", "CHART_WIDTH", "wide"},
		{"zero chart height", "CHART_HEIGHT", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_SQLiteRequiresPath(t *testing.T) {
	t.Setenv("DATA_SOURCE", "sqlite")
	t.Setenv("SQLITE_PATH", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SQLITE_PATH")
}
