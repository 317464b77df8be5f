package handler

import (
	"errors"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/bikeshare-dashboard/internal/chart"
	"github.com/jengzang/bikeshare-dashboard/internal/models"
	"github.com/jengzang/bikeshare-dashboard/internal/observability"
	"github.com/jengzang/bikeshare-dashboard/internal/service"
	"github.com/jengzang/bikeshare-dashboard/pkg/response"
)

// Chart handles GET /charts/:file, e.g. /charts/weather.png?weathersit=1.
// The query parameters are the same as for the dashboard page.
func (h *DashboardHandler) Chart(c *gin.Context) {
	file := c.Param("file")
	ext := path.Ext(file)

	format, err := chart.ParseFormat(ext)
	if err != nil {
		response.NotFound(c, "Chart not found")
		return
	}
	view, ok := models.NormalizePage(strings.TrimSuffix(file, ext))
	if !ok {
		response.NotFound(c, "Chart not found")
		return
	}

	var filter models.ViewFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	out, err := h.renderChart(view, filter, format)
	name := strings.ToLower(view)
	switch {
	case errors.Is(err, service.ErrNoSelection):
		h.metrics.RecordRender(name, observability.OutcomeHalted)
		c.Status(http.StatusNoContent)
	case errors.Is(err, service.ErrInvalidDateRange):
		h.metrics.RecordRender(name, observability.OutcomeInvalid)
		response.BadRequest(c, service.InvalidDateRangeMessage, err)
	case errors.Is(err, service.ErrInvalidSelection):
		h.metrics.RecordRender(name, observability.OutcomeInvalid)
		response.BadRequest(c, invalidSelectionMessage, err)
	case errors.Is(err, chart.ErrNoData):
		h.metrics.RecordRender(name, observability.OutcomeEmpty)
		response.NotFound(c, "No data for the selected filters")
	case err != nil:
		h.logger.Error("chart failed", "view", view, "format", format, "error", err)
		h.metrics.RecordRender(name, observability.OutcomeFailed)
		response.InternalError(c, "Failed to render chart", err)
	default:
		h.metrics.RecordRender(name, observability.OutcomeRendered)
		c.Data(http.StatusOK, format.ContentType(), out)
	}
}

func (h *DashboardHandler) renderChart(view string, f models.ViewFilter, format chart.Format) ([]byte, error) {
	switch view {
	case models.ViewSeasonal:
		sv, err := h.service.GetSeasonalView(f.Year, f.Season)
		if err != nil {
			return nil, err
		}
		return h.renderer.Line(fmtHeading(sv), sv.Points, format)

	case models.ViewWeather:
		r, err := h.service.ResolveDateRange(f.Start, f.End)
		if err != nil {
			return nil, err
		}
		wv, err := h.service.GetWeatherView(f.Weather, r)
		if err != nil {
			return nil, err
		}
		return h.renderer.Bar(weatherChartTitle, wv.Totals, format)

	default:
		r, err := h.service.ResolveDateRange(f.Start, f.End)
		if err != nil {
			return nil, err
		}
		hv, err := h.service.GetHomeView(r)
		if err != nil {
			return nil, err
		}
		return h.renderer.Line(homeSubheader(r), hv.Points, format)
	}
}
