package repository

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/hashicorp/go-multierror"

	"github.com/jengzang/bikeshare-dashboard/internal/models"
)

const dateLayout = "2006-01-02"

var dailyTypes = map[string]series.Type{
	models.ColDate:   series.String,
	models.ColSeason: series.Int,
	models.ColYear:   series.Int,
	models.ColCount:  series.Int,
}

var hourlyTypes = map[string]series.Type{
	models.ColDate:    series.String,
	models.ColWeather: series.Int,
	models.ColCount:   series.Int,
}

// RideRepository holds the daily and hourly tables in memory.
// Both frames are read-only after construction; every query returns a new view.
type RideRepository struct {
	daily   dataframe.DataFrame
	hourly  dataframe.DataFrame
	bounds  models.DateBounds
	options models.Options
}

// NewRideRepository validates both tables and keeps only the columns the
// dashboard reads. Errors from both tables are reported together.
func NewRideRepository(daily, hourly dataframe.DataFrame) (*RideRepository, error) {
	var result *multierror.Error

	daily, err := prepareTable(models.TableDaily, daily, models.DailyColumns, validateDaily)
	result = multierror.Append(result, err)

	hourly, err = prepareTable(models.TableHourly, hourly, models.HourlyColumns, validateHourly)
	result = multierror.Append(result, err)

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	r := &RideRepository{daily: daily, hourly: hourly}

	r.bounds, err = dateBounds(hourly)
	if err != nil {
		return nil, err
	}

	r.options.Weather, err = uniqueInts(hourly.Col(models.ColWeather))
	if err != nil {
		return nil, err
	}
	r.options.Years, err = uniqueInts(daily.Col(models.ColYear))
	if err != nil {
		return nil, err
	}
	r.options.Seasons, err = uniqueInts(daily.Col(models.ColSeason))
	if err != nil {
		return nil, err
	}

	return r, nil
}

// DailyRows returns the number of daily records
func (r *RideRepository) DailyRows() int { return r.daily.Nrow() }

// HourlyRows returns the number of hourly records
func (r *RideRepository) HourlyRows() int { return r.hourly.Nrow() }

// DateBounds returns the min/max date of the hourly table
func (r *RideRepository) DateBounds() models.DateBounds { return r.bounds }

// Options returns the selectable codes in first-appearance order
func (r *RideRepository) Options() models.Options {
	return models.Options{
		Weather: append([]int(nil), r.options.Weather...),
		Years:   append([]int(nil), r.options.Years...),
		Seasons: append([]int(nil), r.options.Seasons...),
	}
}

// GetDailyTrend retrieves daily counts with start <= dteday <= end.
// Dates are compared as strings, which orders ISO dates chronologically.
func (r *RideRepository) GetDailyTrend(dr models.DateRange) ([]models.TrendPoint, error) {
	filtered := filterDateRange(r.daily, dr)
	if filtered.Err != nil {
		return nil, fmt.Errorf("failed to filter daily table: %w", filtered.Err)
	}
	return trendPoints(filtered)
}

// GetSeasonalTrend retrieves daily counts where yr and season both match
func (r *RideRepository) GetSeasonalTrend(year, season int) ([]models.TrendPoint, error) {
	filtered := r.daily.
		Filter(dataframe.F{Colname: models.ColYear, Comparator: series.Eq, Comparando: year}).
		Filter(dataframe.F{Colname: models.ColSeason, Comparator: series.Eq, Comparando: season})
	if filtered.Err != nil {
		return nil, fmt.Errorf("failed to filter daily table: %w", filtered.Err)
	}
	return trendPoints(filtered)
}

// GetWeatherTotals sums hourly counts per weather code for the given codes.
// A nil range means the whole table. Results are in no particular order.
func (r *RideRepository) GetWeatherTotals(codes []int, dr *models.DateRange) ([]models.WeatherTotal, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	filtered := r.hourly
	if dr != nil {
		filtered = filterDateRange(filtered, *dr)
	}
	filtered = filtered.Filter(dataframe.F{Colname: models.ColWeather, Comparator: series.In, Comparando: codes})
	if filtered.Err != nil {
		return nil, fmt.Errorf("failed to filter hourly table: %w", filtered.Err)
	}
	if filtered.Nrow() == 0 {
		return nil, nil
	}

	grouped := filtered.GroupBy(models.ColWeather).
		Aggregation([]dataframe.AggregationType{dataframe.Aggregation_SUM}, []string{models.ColCount})
	if grouped.Err != nil {
		return nil, fmt.Errorf("failed to group hourly table: %w", grouped.Err)
	}

	sumCol := ""
	for _, name := range grouped.Names() {
		if name != models.ColWeather {
			sumCol = name
		}
	}
	if sumCol == "" {
		return nil, fmt.Errorf("grouped hourly table has no sum column")
	}

	codesCol := grouped.Col(models.ColWeather).Records()
	sums := grouped.Col(sumCol).Float()

	totals := make([]models.WeatherTotal, 0, len(codesCol))
	for i, rec := range codesCol {
		code, err := parseIntRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("invalid weather code %q: %w", rec, err)
		}
		totals = append(totals, models.WeatherTotal{Weather: code, Total: int(math.Round(sums[i]))})
	}

	return totals, nil
}

func filterDateRange(df dataframe.DataFrame, dr models.DateRange) dataframe.DataFrame {
	return df.
		Filter(dataframe.F{Colname: models.ColDate, Comparator: series.GreaterEq, Comparando: dr.Start}).
		Filter(dataframe.F{Colname: models.ColDate, Comparator: series.LessEq, Comparando: dr.End})
}

func trendPoints(df dataframe.DataFrame) ([]models.TrendPoint, error) {
	if df.Nrow() == 0 {
		return []models.TrendPoint{}, nil
	}

	dates := df.Col(models.ColDate).Records()
	counts, err := df.Col(models.ColCount).Int()
	if err != nil {
		return nil, fmt.Errorf("failed to read counts: %w", err)
	}

	points := make([]models.TrendPoint, len(dates))
	for i := range dates {
		points[i] = models.TrendPoint{Date: dates[i], Count: counts[i]}
	}
	return points, nil
}

func dateBounds(df dataframe.DataFrame) (models.DateBounds, error) {
	var min, max time.Time
	for i, rec := range df.Col(models.ColDate).Records() {
		d, err := time.Parse(dateLayout, rec)
		if err != nil {
			return models.DateBounds{}, fmt.Errorf("invalid date %q: %w", rec, err)
		}
		if i == 0 || d.Before(min) {
			min = d
		}
		if i == 0 || d.After(max) {
			max = d
		}
	}
	return models.DateBounds{Min: min.Format(dateLayout), Max: max.Format(dateLayout)}, nil
}

func uniqueInts(s series.Series) ([]int, error) {
	vals, err := s.Int()
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", s.Name, err)
	}

	seen := make(map[int]bool)
	var out []int
	for _, v := range vals {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out, nil
}

func parseIntRecord(rec string) (int, error) {
	if n, err := strconv.Atoi(rec); err == nil {
		return n, nil
	}
	// Grouped keys may come back as floats
	f, err := strconv.ParseFloat(rec, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
