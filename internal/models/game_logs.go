package models

import "time"

// Category identifies which game-log dataset a player belongs to.
// Skaters and goalies carry different tracked stats and are encoded
// and modeled separately.
type Category string

const (
	CategorySkaters Category = "skaters"
	CategoryGoalies Category = "goalies"
)

// ParseCategory maps a request string to a Category.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategorySkaters:
		return CategorySkaters, true
	case CategoryGoalies:
		return CategoryGoalies, true
	}
	return "", false
}

// Categorical feature field names shared by the encoder and the
// prediction orchestrator. They match the game-log column names.
const (
	FieldOpponent = "Opp"
	FieldPlayer   = "Player"
)

// StatDef describes one tracked per-game statistic.
type StatDef struct {
	Column string `json:"column"` // CSV column / result key
	Name   string `json:"name"`   // display name
}

// ColumnSavePct is the derived goalie save-percentage result key.
// It is never fitted; the orchestrator computes it from SV and SA.
const ColumnSavePct = "SV%"

var skaterStats = []StatDef{
	{Column: "G", Name: "Goals"},
	{Column: "A", Name: "Assists"},
	{Column: "PTS", Name: "Points"},
	{Column: "SOG", Name: "Shots on Goal"},
	{Column: "HIT", Name: "Hits"},
	{Column: "BLK", Name: "Blocks"},
}

var goalieStats = []StatDef{
	{Column: "SV", Name: "Saves"},
	{Column: "GA", Name: "Goals Against"},
	{Column: "SA", Name: "Shots Against"},
	{Column: "SO", Name: "Shutouts"},
}

// TrackedStats returns the stat catalog for a category. The returned
// slice is a copy; the catalog itself is fixed at compile time.
func TrackedStats(c Category) []StatDef {
	var src []StatDef
	switch c {
	case CategoryGoalies:
		src = goalieStats
	default:
		src = skaterStats
	}
	out := make([]StatDef, len(src))
	copy(out, src)
	return out
}

// GameRecord is one historical per-game row for one player. Records are
// immutable once loaded; the Stats map only contains columns that held
// a parseable numeric value in that row.
type GameRecord struct {
	Player   string             `json:"player"`
	Team     string             `json:"team"`
	Opponent string             `json:"opponent"`
	Date     time.Time          `json:"date"`
	Stats    map[string]float64 `json:"stats"`
}

// Stat looks up one stat value, reporting whether the row carried it.
func (r GameRecord) Stat(column string) (float64, bool) {
	v, ok := r.Stats[column]
	return v, ok
}

// ScheduledGame is one schedule row, date-normalized at load time.
type ScheduledGame struct {
	Date time.Time `json:"date"`
	Home string    `json:"home"`
	Away string    `json:"away"`
}

// Matchup is one (team, opponent) pair produced by the schedule matcher.
// Home/away role only decides which side lands in Team.
type Matchup struct {
	Team     string `json:"team"`
	Opponent string `json:"opponent"`
}

// FeatureRow is the categorical input to the encoder: field name to
// category value.
type FeatureRow map[string]string

// FeatureVector is one encoded row. Its length and column order are
// defined by the encoder schema it was produced against.
type FeatureVector []float64
