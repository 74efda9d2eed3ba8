package models

// PredictionResult is one predicted row for a (date, player, team,
// opponent) schedule match: one value per tracked stat, plus the
// derived save percentage for goalies.
type PredictionResult struct {
	Date     string             `json:"date"`
	Player   string             `json:"player"`
	Team     string             `json:"team"`
	Opponent string             `json:"opponent"`
	Stats    map[string]float64 `json:"stats"`
}

// PredictionsResponse wraps the result rows for the API. Reason is set
// only when Results is empty and explains the soft no-match outcome.
type PredictionsResponse struct {
	Date     string             `json:"date"`
	Player   string             `json:"player"`
	Category Category           `json:"category"`
	Results  []PredictionResult `json:"results"`
	Reason   string             `json:"reason,omitempty"`
}
