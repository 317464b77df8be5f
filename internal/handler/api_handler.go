package handler

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/bikeshare-dashboard/internal/models"
	"github.com/jengzang/bikeshare-dashboard/internal/observability"
	"github.com/jengzang/bikeshare-dashboard/internal/service"
	"github.com/jengzang/bikeshare-dashboard/pkg/response"
)

// HaltedView is returned by the weather endpoint when no condition is selected
type HaltedView struct {
	Halted      bool             `json:"halted"`
	Range       models.DateRange `json:"range"`
	GeneratedAt string           `json:"generated_at"`
}

// APIHandler handles the JSON views
type APIHandler struct {
	service *service.DashboardService
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(svc *service.DashboardService, metrics *observability.Metrics, logger *slog.Logger) *APIHandler {
	return &APIHandler{
		service: svc,
		metrics: metrics,
		logger:  logger,
	}
}

// GetBounds handles GET /api/v1/bounds
func (h *APIHandler) GetBounds(c *gin.Context) {
	response.Success(c, h.service.DateBounds())
}

// GetOptions handles GET /api/v1/options
func (h *APIHandler) GetOptions(c *gin.Context) {
	response.Success(c, h.service.Options())
}

// GetHome handles GET /api/v1/home
func (h *APIHandler) GetHome(c *gin.Context) {
	var filter models.ViewFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	r, err := h.service.ResolveDateRange(filter.Start, filter.End)
	if err != nil {
		h.metrics.RecordRender("home", observability.OutcomeInvalid)
		response.BadRequest(c, service.InvalidDateRangeMessage, err)
		return
	}

	view, err := h.service.GetHomeView(r)
	if err != nil {
		h.internalError(c, "home", err)
		return
	}

	h.metrics.RecordRender("home", outcomeFor(len(view.Points)))
	response.Success(c, view)
}

// GetWeather handles GET /api/v1/weather
func (h *APIHandler) GetWeather(c *gin.Context) {
	var filter models.ViewFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	r, err := h.service.ResolveDateRange(filter.Start, filter.End)
	if err != nil {
		h.metrics.RecordRender("weather", observability.OutcomeInvalid)
		response.BadRequest(c, service.InvalidDateRangeMessage, err)
		return
	}

	view, err := h.service.GetWeatherView(filter.Weather, r)
	switch {
	case errors.Is(err, service.ErrNoSelection):
		h.metrics.RecordRender("weather", observability.OutcomeHalted)
		response.Success(c, HaltedView{Halted: true, Range: r, GeneratedAt: formatTime(h.service.Now())})
		return
	case errors.Is(err, service.ErrInvalidSelection):
		h.metrics.RecordRender("weather", observability.OutcomeInvalid)
		response.BadRequest(c, invalidSelectionMessage, err)
		return
	case err != nil:
		h.internalError(c, "weather", err)
		return
	}

	h.metrics.RecordRender("weather", outcomeFor(len(view.Totals)))
	response.Success(c, view)
}

// GetSeasonal handles GET /api/v1/seasonal
func (h *APIHandler) GetSeasonal(c *gin.Context) {
	var filter models.ViewFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	view, err := h.service.GetSeasonalView(filter.Year, filter.Season)
	if errors.Is(err, service.ErrInvalidSelection) {
		h.metrics.RecordRender("seasonal", observability.OutcomeInvalid)
		response.BadRequest(c, invalidSelectionMessage, err)
		return
	}
	if err != nil {
		h.internalError(c, "seasonal", err)
		return
	}

	h.metrics.RecordRender("seasonal", outcomeFor(len(view.Points)))
	response.Success(c, view)
}

func (h *APIHandler) internalError(c *gin.Context, view string, err error) {
	h.logger.Error("view failed", "view", view, "error", err)
	h.metrics.RecordRender(view, observability.OutcomeFailed)
	response.InternalError(c, "Failed to build view", err)
}

func outcomeFor(n int) string {
	if n == 0 {
		return observability.OutcomeEmpty
	}
	return observability.OutcomeRendered
}
