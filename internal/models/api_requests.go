package models

// Query-parameter request shapes. Handlers populate these from the URL
// and run them through the validator before touching the services.

type PredictionsRequest struct {
	Category string `json:"category" validate:"required,oneof=skaters goalies"`
	Player   string `json:"player" validate:"required"`
	Date     string `json:"date" validate:"required"` // MM/DD/YYYY
}

type GameLogRequest struct {
	Category string `json:"category" validate:"required,oneof=skaters goalies"`
	Player   string `json:"player" validate:"required"`
	Stat     string `json:"stat" validate:"required"`
	From     string `json:"from,omitempty"` // MM/DD/YYYY, optional
	To       string `json:"to,omitempty"`   // MM/DD/YYYY, optional
}

type DistributionRequest struct {
	Category  string  `json:"category" validate:"required,oneof=skaters goalies"`
	Player    string  `json:"player" validate:"required"`
	Stat      string  `json:"stat" validate:"required"`
	From      string  `json:"from,omitempty"`
	To        string  `json:"to,omitempty"`
	Threshold float64 `json:"threshold"`
}

// GameLogPoint is one per-game observation in a filtered series.
type GameLogPoint struct {
	Date     string  `json:"date"`
	Opponent string  `json:"opponent"`
	Value    float64 `json:"value"`
}

// HistogramBin is one bucket of a stat distribution.
type HistogramBin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// DistributionSummary describes the distribution of one player's stat
// over a date range, classified against a user threshold.
type DistributionSummary struct {
	Player    string         `json:"player"`
	Stat      string         `json:"stat"`
	Count     int            `json:"count"`
	Mean      float64        `json:"mean"`
	StdDev    float64        `json:"std_dev"`
	Median    float64        `json:"median"`
	Threshold float64        `json:"threshold"`
	Over      int            `json:"over"`  // observations >= threshold
	Under     int            `json:"under"` // observations < threshold
	Bins      []HistogramBin `json:"bins"`
}
