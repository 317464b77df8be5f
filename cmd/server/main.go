package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"

	"github.com/jengzang/bikeshare-dashboard/internal/api"
	"github.com/jengzang/bikeshare-dashboard/internal/chart"
	"github.com/jengzang/bikeshare-dashboard/internal/config"
	"github.com/jengzang/bikeshare-dashboard/internal/database"
	"github.com/jengzang/bikeshare-dashboard/internal/models"
	"github.com/jengzang/bikeshare-dashboard/internal/observability"
	"github.com/jengzang/bikeshare-dashboard/internal/repository"
	"github.com/jengzang/bikeshare-dashboard/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	slog.SetDefault(logger)
	metrics := observability.NewMetrics()
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 加载数据
	repo, err := loadTables(ctx, cfg)
	if err != nil {
		logger.Error("failed to load tables", "source", cfg.DataSource, "error", err)
		os.Exit(1)
	}
	metrics.RowsLoaded.WithLabelValues(models.TableDaily).Set(float64(repo.DailyRows()))
	metrics.RowsLoaded.WithLabelValues(models.TableHourly).Set(float64(repo.HourlyRows()))

	bounds := repo.DateBounds()
	logger.Info("tables loaded",
		"source", cfg.DataSource,
		"daily_rows", repo.DailyRows(),
		"hourly_rows", repo.HourlyRows(),
		"min_date", bounds.Min,
		"max_date", bounds.Max,
	)

	// 初始化路由
	router, err := api.SetupRouter(api.Deps{
		Service:  service.NewDashboardService(repo, clockwork.NewRealClock()),
		Renderer: chart.NewRenderer(cfg.ChartWidth, cfg.ChartHeight),
		Metrics:  metrics,
		Logger:   logger,
	})
	if err != nil {
		logger.Error("failed to set up router", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:    cfg.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func loadTables(ctx context.Context, cfg *config.Config) (*repository.RideRepository, error) {
	if cfg.DataSource != config.SourceSQLite {
		return repository.LoadCSV(cfg.DailyCSV, cfg.HourlyCSV)
	}

	db, err := database.Open(ctx, database.Config{Path: cfg.SQLitePath})
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return repository.LoadSQLite(ctx, db, cfg.DailyTable, cfg.HourlyTable)
}
