package chart

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/jengzang/bikeshare-dashboard/internal/models"
)

// Format is an output image format
type Format string

// Supported formats
const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ErrNoData is returned when there is nothing to plot
var ErrNoData = errors.New("no data to chart")

const dateLayout = "2006-01-02"

var (
	lineColor = drawing.ColorFromHex("1f77b4")
	barColor  = drawing.ColorFromHex("4c72b0")
)

// ParseFormat maps a file extension to a Format
func ParseFormat(ext string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimPrefix(ext, "."))) {
	case FormatSVG:
		return FormatSVG, nil
	case FormatPNG:
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("unsupported chart format %q", ext)
	}
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

func (f Format) provider() gochart.RendererProvider {
	if f == FormatPNG {
		return gochart.PNG
	}
	return gochart.SVG
}

// Renderer draws dashboard charts at a fixed size
type Renderer struct {
	Width  int
	Height int
}

// NewRenderer creates a renderer for charts of the given pixel size
func NewRenderer(width, height int) *Renderer {
	return &Renderer{Width: width, Height: height}
}

// Line renders ride count against date.
// Explicit axis ranges keep single-point series renderable.
func (r *Renderer) Line(title string, points []models.TrendPoint, format Format) ([]byte, error) {
	if len(points) == 0 {
		return nil, ErrNoData
	}

	xs := make([]time.Time, len(points))
	ys := make([]float64, len(points))
	var maxY float64
	for i, p := range points {
		d, err := time.Parse(dateLayout, p.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", p.Date, err)
		}
		xs[i] = d
		ys[i] = float64(p.Count)
		if ys[i] > maxY {
			maxY = ys[i]
		}
	}

	minX, maxX := xs[0], xs[0]
	for _, x := range xs[1:] {
		if x.Before(minX) {
			minX = x
		}
		if x.After(maxX) {
			maxX = x
		}
	}
	if minX.Equal(maxX) {
		minX = minX.Add(-12 * time.Hour)
		maxX = maxX.Add(12 * time.Hour)
	}

	ch := gochart.Chart{
		Title:      title,
		Width:      r.Width,
		Height:     r.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 24, Bottom: 16}},
		XAxis: gochart.XAxis{
			Name:           "dteday",
			ValueFormatter: dateValueFormatter,
			Range: &gochart.ContinuousRange{
				Min: gochart.TimeToFloat64(minX),
				Max: gochart.TimeToFloat64(maxX),
			},
		},
		YAxis: gochart.YAxis{
			Name:           "cnt",
			ValueFormatter: gochart.IntValueFormatter,
			Range:          &gochart.ContinuousRange{Min: 0, Max: yMax(maxY)},
		},
		Series: []gochart.Series{
			gochart.TimeSeries{
				Name:    "cnt",
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeWidth: 2,
					StrokeColor: lineColor,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := ch.Render(format.provider(), &buf); err != nil {
		return nil, fmt.Errorf("failed to render line chart: %w", err)
	}
	return buf.Bytes(), nil
}

// Bar renders one bar per weather situation in the given order
func (r *Renderer) Bar(title string, totals []models.WeatherTotal, format Format) ([]byte, error) {
	if len(totals) == 0 {
		return nil, ErrNoData
	}

	bars := make([]gochart.Value, len(totals))
	var maxY float64
	for i, t := range totals {
		bars[i] = gochart.Value{
			Label: strconv.Itoa(t.Weather),
			Value: float64(t.Total),
			Style: gochart.Style{FillColor: barColor, StrokeColor: barColor},
		}
		if bars[i].Value > maxY {
			maxY = bars[i].Value
		}
	}

	bc := gochart.BarChart{
		Title:      title,
		Width:      r.Width,
		Height:     r.Height,
		BarWidth:   barWidth(r.Width, len(bars)),
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 24, Bottom: 16}},
		YAxis: gochart.YAxis{
			Name:           "Total Bike Sharing",
			ValueFormatter: gochart.IntValueFormatter,
			Range:          &gochart.ContinuousRange{Min: 0, Max: yMax(maxY)},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(format.provider(), &buf); err != nil {
		return nil, fmt.Errorf("failed to render bar chart: %w", err)
	}
	return buf.Bytes(), nil
}

func dateValueFormatter(v interface{}) string {
	switch t := v.(type) {
	case time.Time:
		return t.Format(dateLayout)
	case float64:
		return gochart.TimeFromFloat64(t).Format(dateLayout)
	default:
		return ""
	}
}

// yMax leaves headroom above the tallest value; an all-zero series still gets a range
func yMax(max float64) float64 {
	if max <= 0 {
		return 1
	}
	return max * 1.1
}

func barWidth(width, n int) int {
	w := width / (2 * (n + 1))
	if w > 120 {
		return 120
	}
	if w < 8 {
		return 8
	}
	return w
}
