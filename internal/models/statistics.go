package models

// TrendSummary represents aggregated ride counts of a filtered trend
type TrendSummary struct {
	Days   int     `json:"days"`
	Total  int     `json:"total"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    int     `json:"min"`
	Max    int     `json:"max"`
}
