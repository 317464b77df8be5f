package service

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jengzang/bikeshare-dashboard/internal/models"
	"github.com/jengzang/bikeshare-dashboard/internal/repository"
	"github.com/jengzang/bikeshare-dashboard/internal/stats"
)

// InvalidDateRangeMessage is shown when the date range picker holds an
// incomplete or out-of-bounds selection
const InvalidDateRangeMessage = "Please select a valid date range."

var (
	// ErrInvalidDateRange halts a Home or Weather render
	ErrInvalidDateRange = errors.New("invalid date range")
	// ErrNoSelection halts a Weather render without a message
	ErrNoSelection = errors.New("no weather condition selected")
	// ErrInvalidSelection is returned for codes not offered by a widget
	ErrInvalidSelection = errors.New("invalid selection")
)

const dateLayout = "2006-01-02"

// DashboardService handles the filtering behind the three dashboard views
type DashboardService struct {
	repo  *repository.RideRepository
	clock clockwork.Clock
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(repo *repository.RideRepository, clock clockwork.Clock) *DashboardService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &DashboardService{
		repo:  repo,
		clock: clock,
	}
}

// Now returns the service clock's current time
func (s *DashboardService) Now() time.Time {
	return s.clock.Now()
}

// DateBounds returns the range offered by the date picker
func (s *DashboardService) DateBounds() models.DateBounds {
	return s.repo.DateBounds()
}

// Options returns the values offered by the selection widgets
func (s *DashboardService) Options() models.Options {
	return s.repo.Options()
}

// ResolveDateRange validates a date picker selection.
// Both values empty selects the full bounds. A single value, an unparsable
// date, start after end, or a date outside the bounds is ErrInvalidDateRange.
func (s *DashboardService) ResolveDateRange(start, end string) (models.DateRange, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	bounds := s.repo.DateBounds()

	if start == "" && end == "" {
		return models.DateRange{Start: bounds.Min, End: bounds.Max}, nil
	}
	if start == "" || end == "" {
		return models.DateRange{}, fmt.Errorf("%w: incomplete selection", ErrInvalidDateRange)
	}

	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		return models.DateRange{}, fmt.Errorf("%w: start %q", ErrInvalidDateRange, start)
	}
	endDate, err := time.Parse(dateLayout, end)
	if err != nil {
		return models.DateRange{}, fmt.Errorf("%w: end %q", ErrInvalidDateRange, end)
	}
	if startDate.After(endDate) {
		return models.DateRange{}, fmt.Errorf("%w: start %s after end %s", ErrInvalidDateRange, start, end)
	}

	// Bounds are ISO dates, so string order is date order
	r := models.DateRange{Start: startDate.Format(dateLayout), End: endDate.Format(dateLayout)}
	if r.Start < bounds.Min || r.End > bounds.Max {
		return models.DateRange{}, fmt.Errorf("%w: outside %s..%s", ErrInvalidDateRange, bounds.Min, bounds.Max)
	}
	return r, nil
}

// GetHomeView retrieves the daily trend within the range
func (s *DashboardService) GetHomeView(r models.DateRange) (*models.HomeView, error) {
	points, err := s.repo.GetDailyTrend(r)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily trend: %w", err)
	}

	return &models.HomeView{
		Range:       r,
		Points:      points,
		Summary:     summarize(points),
		GeneratedAt: s.clock.Now(),
	}, nil
}

// GetWeatherView sums hourly counts per selected weather code within the
// range, largest total first (ties by code).
func (s *DashboardService) GetWeatherView(selected []string, r models.DateRange) (*models.WeatherView, error) {
	codes, err := s.parseWeatherCodes(selected)
	if err != nil {
		return nil, err
	}

	totals, err := s.repo.GetWeatherTotals(codes, &r)
	if err != nil {
		return nil, fmt.Errorf("failed to get weather totals: %w", err)
	}
	sortTotals(totals)

	return &models.WeatherView{
		Range:       r,
		Selected:    codes,
		Totals:      totals,
		GeneratedAt: s.clock.Now(),
	}, nil
}

// GetSeasonalView retrieves the daily trend of one season in one year.
// Empty selections fall back to the first offered value.
func (s *DashboardService) GetSeasonalView(year, season string) (*models.SeasonalView, error) {
	opts := s.repo.Options()

	y, err := pickOption("yr", year, opts.Years)
	if err != nil {
		return nil, err
	}
	se, err := pickOption("season", season, opts.Seasons)
	if err != nil {
		return nil, err
	}

	points, err := s.repo.GetSeasonalTrend(y, se)
	if err != nil {
		return nil, fmt.Errorf("failed to get seasonal trend: %w", err)
	}

	return &models.SeasonalView{
		Year:        y,
		Season:      se,
		Points:      points,
		GeneratedAt: s.clock.Now(),
	}, nil
}

func (s *DashboardService) parseWeatherCodes(selected []string) ([]int, error) {
	offered := make(map[int]bool)
	for _, c := range s.repo.Options().Weather {
		offered[c] = true
	}

	seen := make(map[int]bool)
	var codes []int
	for _, raw := range selected {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		code, err := strconv.Atoi(raw)
		if err != nil || !offered[code] {
			return nil, fmt.Errorf("%w: weathersit %q", ErrInvalidSelection, raw)
		}
		if !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}

	if len(codes) == 0 {
		return nil, ErrNoSelection
	}
	return codes, nil
}

func pickOption(name, raw string, offered []int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if len(offered) == 0 {
			return 0, fmt.Errorf("%w: no %s values", ErrInvalidSelection, name)
		}
		return offered[0], nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrInvalidSelection, name, raw)
	}
	for _, o := range offered {
		if o == v {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: %s %d not present", ErrInvalidSelection, name, v)
}

func sortTotals(totals []models.WeatherTotal) {
	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].Total != totals[j].Total {
			return totals[i].Total > totals[j].Total
		}
		return totals[i].Weather < totals[j].Weather
	})
}

func summarize(points []models.TrendPoint) models.TrendSummary {
	counts := make([]int, len(points))
	for i, p := range points {
		counts[i] = p.Count
	}

	min, max := stats.MinMax(counts)
	return models.TrendSummary{
		Days:   len(counts),
		Total:  stats.Sum(counts),
		Mean:   stats.Mean(counts),
		Median: stats.Median(counts),
		Min:    min,
		Max:    max,
	}
}
