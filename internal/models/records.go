package models

// Column names shared by the daily and hourly tables
const (
	ColDate    = "dteday"
	ColSeason  = "season"
	ColYear    = "yr"
	ColWeather = "weathersit"
	ColCount   = "cnt"
)

// Table names used in logs, errors and metrics
const (
	TableDaily  = "daily"
	TableHourly = "hourly"
)

// DailyColumns lists the columns kept from the daily table
var DailyColumns = []string{ColDate, ColSeason, ColYear, ColCount}

// HourlyColumns lists the columns kept from the hourly table
var HourlyColumns = []string{ColDate, ColWeather, ColCount}

// DailyRecord represents one calendar day of rentals
type DailyRecord struct {
	Date   string `json:"dteday"` // YYYY-MM-DD
	Season int    `json:"season"` // 1-4
	Year   int    `json:"yr"`     // 0 = 2011, 1 = 2012
	Count  int    `json:"cnt"`
}

// HourlyRecord represents one hour of rentals
type HourlyRecord struct {
	Date    string `json:"dteday"`
	Weather int    `json:"weathersit"`
	Count   int    `json:"cnt"`
}

var seasonLabels = map[int]string{
	1: "Spring",
	2: "Summer",
	3: "Fall",
	4: "Winter",
}

var weatherLabels = map[int]string{
	1: "Clear, Few clouds",
	2: "Mist, Cloudy",
	3: "Light Snow, Light Rain",
	4: "Heavy Rain, Snow, Fog",
}

// SeasonLabel returns a display name for a season code
func SeasonLabel(code int) string {
	if l, ok := seasonLabels[code]; ok {
		return l
	}
	return "Unknown"
}

// WeatherLabel returns a display name for a weather situation code
func WeatherLabel(code int) string {
	if l, ok := weatherLabels[code]; ok {
		return l
	}
	return "Unknown"
}

// YearLabel maps the binary year code to the calendar year it stands for
func YearLabel(code int) int {
	return 2011 + code
}
