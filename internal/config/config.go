package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Data source kinds
const (
	SourceCSV    = "csv"
	SourceSQLite = "sqlite"
)

// Config 应用配置
type Config struct {
	Port            string
	GinMode         string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Tables
	DataSource  string // csv or sqlite
	DailyCSV    string
	HourlyCSV   string
	SQLitePath  string
	DailyTable  string
	HourlyTable string

	// Chart size in pixels
	ChartWidth  int
	ChartHeight int
}

// Load 加载配置
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	shutdownTimeout, err := time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil || shutdownTimeout <= 0 {
		return nil, errors.New("invalid SHUTDOWN_TIMEOUT")
	}

	chartWidth, err := parsePositiveInt("CHART_WIDTH", 960)
	if err != nil {
		return nil, err
	}
	chartHeight, err := parsePositiveInt("CHART_HEIGHT", 420)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:            getEnv("PORT", ":8080"),
		GinMode:         getEnv("GIN_MODE", "release"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		ShutdownTimeout: shutdownTimeout,
		DataSource:      getEnv("DATA_SOURCE", SourceCSV),
		DailyCSV:        getEnv("DAILY_CSV", "./data/day_df.csv"),
		HourlyCSV:       getEnv("HOURLY_CSV", "./data/hour_df.csv"),
		SQLitePath:      getEnv("SQLITE_PATH", "./data/bikeshare.db"),
		DailyTable:      getEnv("DAILY_TABLE", "day_df"),
		HourlyTable:     getEnv("HOURLY_TABLE", "hour_df"),
		ChartWidth:      chartWidth,
		ChartHeight:     chartHeight,
	}

	switch cfg.DataSource {
	case SourceCSV:
		if cfg.DailyCSV == "" || cfg.HourlyCSV == "" {
			return nil, errors.New("DAILY_CSV and HOURLY_CSV are required when DATA_SOURCE=csv")
		}
	case SourceSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLITE_PATH is required when DATA_SOURCE=sqlite")
		}
	default:
		return nil, fmt.Errorf("unknown DATA_SOURCE %q (want csv or sqlite)", cfg.DataSource)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func parsePositiveInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}
