package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/bikeshare-dashboard/internal/chart"
	"github.com/jengzang/bikeshare-dashboard/internal/handler"
	"github.com/jengzang/bikeshare-dashboard/internal/middleware"
	"github.com/jengzang/bikeshare-dashboard/internal/observability"
	"github.com/jengzang/bikeshare-dashboard/internal/service"
	"github.com/jengzang/bikeshare-dashboard/internal/web"
)

// Deps 路由依赖
type Deps struct {
	Service  *service.DashboardService
	Renderer *chart.Renderer
	Metrics  *observability.Metrics
	Logger   *slog.Logger
}

// SetupRouter 设置路由
func SetupRouter(deps Deps) (*gin.Engine, error) {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(deps.Logger), middleware.Metrics(deps.Metrics), gin.Recovery())

	// CORS 中间件, read-only API
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+middleware.RequestIDHeader)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(web.Static()))

	dashboardHandler := handler.NewDashboardHandler(deps.Service, deps.Renderer, deps.Metrics, deps.Logger)
	apiHandler := handler.NewAPIHandler(deps.Service, deps.Metrics, deps.Logger)

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		bounds := deps.Service.DateBounds()
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Bike sharing dashboard is running",
			"bounds":  bounds,
		})
	})
	r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	// 页面
	r.GET("/", dashboardHandler.Page)
	r.GET("/charts/:file", dashboardHandler.Chart)

	// API 路由组
	v1 := r.Group("/api/v1")
	{
		v1.GET("/bounds", apiHandler.GetBounds)
		v1.GET("/options", apiHandler.GetOptions)
		v1.GET("/home", apiHandler.GetHome)
		v1.GET("/weather", apiHandler.GetWeather)
		v1.GET("/seasonal", apiHandler.GetSeasonal)
	}

	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "not_found.html", gin.H{"Message": "Page not found."})
	})

	return r, nil
}
