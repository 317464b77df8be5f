package service

import (
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/bikeshare-dashboard/internal/models"
	"github.com/jengzang/bikeshare-dashboard/internal/repository"
)

const dailyCSV = `dteday,season,yr,cnt
2011-01-01,1,0,985
2011-01-02,1,0,801
2011-01-03,1,0,1349
2011-04-10,2,0,1500
2011-07-01,3,0,6043
2011-07-02,3,0,5900
2012-04-02,2,1,5000
2012-04-03,2,1,5100
`

const hourlyCSV = `dteday,hr,weathersit,cnt
2011-01-01,0,1,100
2011-01-01,1,2,200
2011-01-02,0,1,400
2011-01-03,0,2,700
2011-01-03,1,3,100
2011-01-04,0,1,0
`

var testNow = time.Date(2026, time.October, 19, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) *DashboardService {
	t.Helper()
	repo, err := repository.LoadCSVReaders(strings.NewReader(dailyCSV), strings.NewReader(hourlyCSV))
	require.NoError(t, err)
	return NewDashboardService(repo, clockwork.NewFakeClockAt(testNow))
}

func TestResolveDateRange(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name    string
		start   string
		end     string
		want    models.DateRange
		wantErr bool
	}{
		{"defaults to bounds", "", "", models.DateRange{Start: "2011-01-01", End: "2011-01-04"}, false},
		{"explicit range", "2011-01-02", "2011-01-03", models.DateRange{Start: "2011-01-02", End: "2011-01-03"}, false},
		{"single day", "2011-01-02", "2011-01-02", models.DateRange{Start: "2011-01-02", End: "2011-01-02"}, false},
		{"unterminated", "2011-01-02", "", models.DateRange{}, true},
		{"missing start", "", "2011-01-03", models.DateRange{}, true},
		{"unparsable", "2011-13-40", "2011-01-03", models.DateRange{}, true},
		{"reversed", "2011-01-03", "2011-01-02", models.DateRange{}, true},
		{"before min", "2010-12-31", "2011-01-03", models.DateRange{}, true},
		{"after max", "2011-01-02", "2011-01-05", models.DateRange{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ResolveDateRange(tt.start, tt.end)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidDateRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetHomeView_InclusiveRange(t *testing.T) {
	svc := newTestService(t)

	view, err := svc.GetHomeView(models.DateRange{Start: "2011-01-01", End: "2011-01-03"})
	require.NoError(t, err)

	assert.Equal(t, []models.TrendPoint{
		{Date: "2011-01-01", Count: 985},
		{Date: "2011-01-02", Count: 801},
		{Date: "2011-01-03", Count: 1349},
	}, view.Points)
	assert.Equal(t, testNow, view.GeneratedAt)
}

func TestGetHomeView_EveryRowInsideRange(t *testing.T) {
	svc := newTestService(t)
	r := models.DateRange{Start: "2011-01-02", End: "2011-07-01"}

	view, err := svc.GetHomeView(r)
	require.NoError(t, err)

	var want []string
	for _, line := range strings.Split(strings.TrimSpace(dailyCSV), "\n")[1:] {
		date := strings.Split(line, ",")[0]
		if date >= r.Start && date <= r.End {
			want = append(want, date)
		}
	}

	var got []string
	for _, p := range view.Points {
		got = append(got, p.Date)
	}
	assert.Equal(t, want, got)
}

func TestGetHomeView_Summary(t *testing.T) {
	svc := newTestService(t)

	view, err := svc.GetHomeView(models.DateRange{Start: "2011-01-01", End: "2011-01-03"})
	require.NoError(t, err)

	assert.Equal(t, models.TrendSummary{
		Days:   3,
		Total:  3135,
		Mean:   1045,
		Median: 985,
		Min:    801,
		Max:    1349,
	}, view.Summary)
}

func TestGetWeatherView_SortedByDescendingTotal(t *testing.T) {
	svc := newTestService(t)
	r, err := svc.ResolveDateRange("", "")
	require.NoError(t, err)

	view, err := svc.GetWeatherView([]string{"1", "2", "3"}, r)
	require.NoError(t, err)

	assert.Equal(t, []models.WeatherTotal{
		{Weather: 2, Total: 900},
		{Weather: 1, Total: 500},
		{Weather: 3, Total: 100},
	}, view.Totals)
	assert.Equal(t, []int{1, 2, 3}, view.Selected)
}

func TestGetWeatherView_AppliesDateRange(t *testing.T) {
	svc := newTestService(t)

	view, err := svc.GetWeatherView([]string{"1", "2"}, models.DateRange{Start: "2011-01-02", End: "2011-01-04"})
	require.NoError(t, err)

	assert.Equal(t, []models.WeatherTotal{
		{Weather: 2, Total: 700},
		{Weather: 1, Total: 400},
	}, view.Totals)
}

func TestGetWeatherView_NoSelectionHalts(t *testing.T) {
	svc := newTestService(t)
	r, err := svc.ResolveDateRange("", "")
	require.NoError(t, err)

	_, err = svc.GetWeatherView(nil, r)
	assert.ErrorIs(t, err, ErrNoSelection)

	_, err = svc.GetWeatherView([]string{"", " "}, r)
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestGetWeatherView_UnknownCode(t *testing.T) {
	svc := newTestService(t)
	r, err := svc.ResolveDateRange("", "")
	require.NoError(t, err)

	_, err = svc.GetWeatherView([]string{"1", "9"}, r)
	assert.ErrorIs(t, err, ErrInvalidSelection)

	_, err = svc.GetWeatherView([]string{"rain"}, r)
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestGetWeatherView_DuplicateCodesCountOnce(t *testing.T) {
	svc := newTestService(t)
	r, err := svc.ResolveDateRange("", "")
	require.NoError(t, err)

	view, err := svc.GetWeatherView([]string{"3", "3"}, r)
	require.NoError(t, err)
	assert.Equal(t, []models.WeatherTotal{{Weather: 3, Total: 100}}, view.Totals)
}

func TestSortTotals_TiesByCode(t *testing.T) {
	totals := []models.WeatherTotal{
		{Weather: 3, Total: 100},
		{Weather: 1, Total: 500},
		{Weather: 2, Total: 100},
	}
	sortTotals(totals)

	assert.Equal(t, []models.WeatherTotal{
		{Weather: 1, Total: 500},
		{Weather: 2, Total: 100},
		{Weather: 3, Total: 100},
	}, totals)
}

func TestGetSeasonalView_MatchesYearAndSeason(t *testing.T) {
	svc := newTestService(t)

	view, err := svc.GetSeasonalView("0", "2")
	require.NoError(t, err)

	assert.Equal(t, 0, view.Year)
	assert.Equal(t, 2, view.Season)
	assert.Equal(t, []models.TrendPoint{{Date: "2011-04-10", Count: 1500}}, view.Points)
}

func TestGetSeasonalView_ExcludesOtherSeasons(t *testing.T) {
	svc := newTestService(t)

	view, err := svc.GetSeasonalView("0", "3")
	require.NoError(t, err)

	for _, p := range view.Points {
		assert.True(t, strings.HasPrefix(p.Date, "2011-07"), p.Date)
	}
	assert.Len(t, view.Points, 2)
}

func TestGetSeasonalView_DefaultsToFirstOption(t *testing.T) {
	svc := newTestService(t)

	view, err := svc.GetSeasonalView("", "")
	require.NoError(t, err)

	assert.Equal(t, 0, view.Year)
	assert.Equal(t, 1, view.Season)
	assert.Len(t, view.Points, 3)
}

func TestGetSeasonalView_InvalidSelection(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetSeasonalView("2", "1")
	assert.ErrorIs(t, err, ErrInvalidSelection)

	_, err = svc.GetSeasonalView("0", "winter")
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestGetSeasonalView_EmptyCombination(t *testing.T) {
	svc := newTestService(t)

	// season 3 never appears in year 1
	view, err := svc.GetSeasonalView("1", "3")
	require.NoError(t, err)
	assert.Empty(t, view.Points)
}
