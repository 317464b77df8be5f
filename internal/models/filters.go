package models

import "strings"

// View names
const (
	ViewHome     = "Home"
	ViewWeather  = "Weather"
	ViewSeasonal = "Seasonal"
)

// Views lists the navigation entries in display order
var Views = []string{ViewHome, ViewWeather, ViewSeasonal}

// ViewFilter represents the sidebar selections of one render cycle
type ViewFilter struct {
	Page    string   `form:"page"`       // Home, Weather, Seasonal
	Start   string   `form:"start"`      // YYYY-MM-DD
	End     string   `form:"end"`        // YYYY-MM-DD
	Weather []string `form:"weathersit"` // repeated, zero or more codes
	Year    string   `form:"yr"`
	Season  string   `form:"season"`
}

// NormalizePage maps a page parameter to a view name; empty means Home.
// ok is false for unknown pages.
func NormalizePage(page string) (view string, ok bool) {
	if strings.TrimSpace(page) == "" {
		return ViewHome, true
	}
	for _, v := range Views {
		if strings.EqualFold(v, strings.TrimSpace(page)) {
			return v, true
		}
	}
	return "", false
}
