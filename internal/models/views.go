package models

import "time"

// DateBounds is the min/max date of the hourly table
type DateBounds struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

// DateRange is an inclusive, validated date range
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// TrendPoint is one point of a ride-count line chart
type TrendPoint struct {
	Date  string `json:"dteday"`
	Count int    `json:"cnt"`
}

// WeatherTotal is the summed ride count of one weather situation
type WeatherTotal struct {
	Weather int `json:"weathersit"`
	Total   int `json:"cnt"`
}

// Options holds the values offered by the selection widgets
type Options struct {
	Weather []int `json:"weathersit"`
	Years   []int `json:"yr"`
	Seasons []int `json:"season"`
}

// HomeView is the Home page result: the daily trend within a date range
type HomeView struct {
	Range       DateRange    `json:"range"`
	Points      []TrendPoint `json:"points"`
	Summary     TrendSummary `json:"summary"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// WeatherView is the Weather page result: summed counts per selected
// weather situation, largest first
type WeatherView struct {
	Range       DateRange      `json:"range"`
	Selected    []int          `json:"selected"`
	Totals      []WeatherTotal `json:"totals"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// SeasonalView is the Seasonal page result: the daily trend of one season in one year
type SeasonalView struct {
	Year        int          `json:"yr"`
	Season      int          `json:"season"`
	Points      []TrendPoint `json:"points"`
	GeneratedAt time.Time    `json:"generated_at"`
}
