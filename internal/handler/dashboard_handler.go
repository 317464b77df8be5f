package handler

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/bikeshare-dashboard/internal/chart"
	"github.com/jengzang/bikeshare-dashboard/internal/models"
	"github.com/jengzang/bikeshare-dashboard/internal/observability"
	"github.com/jengzang/bikeshare-dashboard/internal/service"
)

// Page copy
const (
	homeTitle           = "Bicycle Sharing Dashboard"
	homeDescription     = "This dashboard shows the bike sharing data."
	weatherTitle        = "Bike Sharing Based on Weather"
	weatherDescription  = "This page shows the bike sharing based on weather conditions."
	weatherChartTitle   = "Bike Sharing Based on Weather Conditions"
	weatherChartCaption = "x: Weather Condition, y: Total Bike Sharing"
	seasonalTitle       = "Bike Sharing Based on Seasonal Conditions"
	seasonalDescription = "This page shows the bike sharing based on seasonal conditions."

	invalidSelectionMessage = "Please choose from the listed options."
	renderFailedMessage     = "Something went wrong while rendering this page."
)

type option struct {
	Value    int
	Label    string
	Selected bool
}

// pageData is everything dashboard.html needs for one render cycle
type pageData struct {
	View  string
	Views []string

	Title       string
	Description string
	Subheader   string
	Heading     string

	ShowDateRange bool
	Bounds        models.DateBounds
	Start         string
	End           string

	WeatherOptions []option
	YearOptions    []option
	SeasonOptions  []option

	Error   string
	Halted  bool
	NoData  bool
	Summary *models.TrendSummary

	Chart        template.HTML
	ChartCaption string
	ChartURL     string

	GeneratedAt string
}

// DashboardHandler renders the dashboard pages and their chart images
type DashboardHandler struct {
	service  *service.DashboardService
	renderer *chart.Renderer
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(svc *service.DashboardService, renderer *chart.Renderer, metrics *observability.Metrics, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service:  svc,
		renderer: renderer,
		metrics:  metrics,
		logger:   logger,
	}
}

// Page handles GET /
// Every request is one full render cycle of the selected view.
func (h *DashboardHandler) Page(c *gin.Context) {
	var filter models.ViewFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.HTML(http.StatusBadRequest, "not_found.html", gin.H{"Message": "Invalid query parameters."})
		return
	}

	view, ok := models.NormalizePage(filter.Page)
	if !ok {
		h.metrics.RecordRender("unknown", observability.OutcomeInvalid)
		c.HTML(http.StatusNotFound, "not_found.html", gin.H{"Message": fmt.Sprintf("There is no %q page.", filter.Page)})
		return
	}

	p := &pageData{
		View:   view,
		Views:  models.Views,
		Bounds: h.service.DateBounds(),
		Start:  filter.Start,
		End:    filter.End,
	}

	var status int
	var outcome string
	switch view {
	case models.ViewWeather:
		status, outcome = h.renderWeather(c, p, filter)
	case models.ViewSeasonal:
		status, outcome = h.renderSeasonal(c, p, filter)
	default:
		status, outcome = h.renderHome(c, p, filter)
	}

	h.metrics.RecordRender(strings.ToLower(view), outcome)
	if p.GeneratedAt == "" {
		p.GeneratedAt = formatTime(h.service.Now())
	}
	c.HTML(status, "dashboard.html", p)
}

func (h *DashboardHandler) renderHome(c *gin.Context, p *pageData, f models.ViewFilter) (int, string) {
	p.ShowDateRange = true
	p.Title = homeTitle
	p.Description = homeDescription

	r, err := h.service.ResolveDateRange(f.Start, f.End)
	if err != nil {
		p.Error = service.InvalidDateRangeMessage
		return http.StatusBadRequest, observability.OutcomeInvalid
	}
	p.Start, p.End = r.Start, r.End
	p.Subheader = homeSubheader(r)

	view, err := h.service.GetHomeView(r)
	if err != nil {
		return h.fail(c, p, err)
	}
	p.Summary = &view.Summary
	p.GeneratedAt = formatTime(view.GeneratedAt)

	svg, err := h.renderer.Line("", view.Points, chart.FormatSVG)
	return h.attachChart(c, p, svg, err, "home")
}

func (h *DashboardHandler) renderWeather(c *gin.Context, p *pageData, f models.ViewFilter) (int, string) {
	p.ShowDateRange = true
	p.Title = weatherTitle
	p.Description = weatherDescription

	r, err := h.service.ResolveDateRange(f.Start, f.End)
	if err != nil {
		p.Error = service.InvalidDateRangeMessage
		return http.StatusBadRequest, observability.OutcomeInvalid
	}
	p.Start, p.End = r.Start, r.End
	p.WeatherOptions = weatherOptions(h.service.Options().Weather, f.Weather)

	view, err := h.service.GetWeatherView(f.Weather, r)
	switch {
	case errors.Is(err, service.ErrNoSelection):
		// Nothing chosen yet: the page stops after the selector
		p.Halted = true
		return http.StatusOK, observability.OutcomeHalted
	case errors.Is(err, service.ErrInvalidSelection):
		p.Error = invalidSelectionMessage
		return http.StatusBadRequest, observability.OutcomeInvalid
	case err != nil:
		return h.fail(c, p, err)
	}
	p.GeneratedAt = formatTime(view.GeneratedAt)

	p.Subheader = fmt.Sprintf("Bike Sharing Based on Weather Conditions From %s to %s", r.Start, r.End)
	p.ChartCaption = weatherChartCaption

	svg, err := h.renderer.Bar(weatherChartTitle, view.Totals, chart.FormatSVG)
	return h.attachChart(c, p, svg, err, "weather")
}

func (h *DashboardHandler) renderSeasonal(c *gin.Context, p *pageData, f models.ViewFilter) (int, string) {
	p.Title = seasonalTitle
	p.Description = seasonalDescription

	opts := h.service.Options()
	view, err := h.service.GetSeasonalView(f.Year, f.Season)
	switch {
	case errors.Is(err, service.ErrInvalidSelection):
		p.YearOptions = yearOptions(opts.Years, -1)
		p.SeasonOptions = seasonOptions(opts.Seasons, -1)
		p.Error = invalidSelectionMessage
		return http.StatusBadRequest, observability.OutcomeInvalid
	case err != nil:
		return h.fail(c, p, err)
	}
	p.GeneratedAt = formatTime(view.GeneratedAt)

	p.YearOptions = yearOptions(opts.Years, view.Year)
	p.SeasonOptions = seasonOptions(opts.Seasons, view.Season)
	p.Heading = fmtHeading(view)

	svg, err := h.renderer.Line("", view.Points, chart.FormatSVG)
	return h.attachChart(c, p, svg, err, "seasonal")
}

func (h *DashboardHandler) attachChart(c *gin.Context, p *pageData, svg []byte, err error, name string) (int, string) {
	if errors.Is(err, chart.ErrNoData) {
		p.NoData = true
		return http.StatusOK, observability.OutcomeEmpty
	}
	if err != nil {
		return h.fail(c, p, err)
	}

	// go-chart output, not user input
	p.Chart = template.HTML(svg)
	p.ChartURL = "/charts/" + name + ".png"
	if q := c.Request.URL.RawQuery; q != "" {
		p.ChartURL += "?" + q
	}
	return http.StatusOK, observability.OutcomeRendered
}

func (h *DashboardHandler) fail(c *gin.Context, p *pageData, err error) (int, string) {
	h.logger.Error("render failed", "view", p.View, "error", err)
	_ = c.Error(err)
	p.Error = renderFailedMessage
	return http.StatusInternalServerError, observability.OutcomeFailed
}

func weatherOptions(codes []int, selected []string) []option {
	chosen := make(map[string]bool)
	for _, s := range selected {
		chosen[strings.TrimSpace(s)] = true
	}

	out := make([]option, len(codes))
	for i, code := range codes {
		out[i] = option{
			Value:    code,
			Label:    fmt.Sprintf("%d · %s", code, models.WeatherLabel(code)),
			Selected: chosen[strconv.Itoa(code)],
		}
	}
	return out
}

func yearOptions(years []int, selected int) []option {
	out := make([]option, len(years))
	for i, y := range years {
		out[i] = option{Value: y, Label: fmt.Sprintf("%d (%d)", y, models.YearLabel(y)), Selected: y == selected}
	}
	return out
}

func seasonOptions(seasons []int, selected int) []option {
	out := make([]option, len(seasons))
	for i, s := range seasons {
		out[i] = option{Value: s, Label: fmt.Sprintf("%d (%s)", s, models.SeasonLabel(s)), Selected: s == selected}
	}
	return out
}

func homeSubheader(r models.DateRange) string {
	return fmt.Sprintf("Trend of Bike Sharing Over Time From %s to %s", r.Start, r.End)
}

// fmtHeading is "{season} {year}" using the raw codes
func fmtHeading(v *models.SeasonalView) string {
	return fmt.Sprintf("%d %d", v.Season, v.Year)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
