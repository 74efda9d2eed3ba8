package logic

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/puckline/stats-api/internal/models"
)

// RequestDateLayout is the textual date format prediction requests use.
const RequestDateLayout = "01/02/2006"

type predictionService struct {
	sessions *SessionHolder
	logger   *zap.SugaredLogger
}

func NewPredictionService(sessions *SessionHolder, logger *zap.Logger) PredictionService {
	return &predictionService{sessions: sessions, logger: logger.Sugar()}
}

// Predict matches the date's schedule for the player's team(s) and
// evaluates every tracked stat model of the category once per (team,
// opponent) pair. The fitted session is read-only throughout.
func (s *predictionService) Predict(ctx context.Context, dateStr, playerName string, category models.Category) ([]models.PredictionResult, string, error) {
	date, err := time.Parse(RequestDateLayout, dateStr)
	if err != nil {
		return nil, "", inputErrorf("unparseable date %q, want MM/DD/YYYY", dateStr)
	}

	sess := s.sessions.Current()
	cs := sess.Category(category)

	matchups := cs.Matcher.MatchesFor(date, playerName)
	if len(matchups) == 0 {
		if !cs.Matcher.HasGamesOn(date) {
			return nil, "no games scheduled on " + dateStr, nil
		}
		return nil, "no scheduled game found for " + playerName + " on " + dateStr, nil
	}

	schema := cs.Encoder.Schema()
	results := make([]models.PredictionResult, 0, len(matchups))
	for _, mu := range matchups {
		if mu.Opponent == "" {
			// Malformed match: report and keep going with the rest.
			s.logger.Warnw("Skipping matchup with empty opponent",
				"player", playerName, "date", dateStr, "team", mu.Team)
			continue
		}
		row := models.FeatureRow{
			models.FieldOpponent: mu.Opponent,
			models.FieldPlayer:   playerName,
		}
		vec := cs.Encoder.Transform([]models.FeatureRow{row})[0]

		res := models.PredictionResult{
			Date:     dateStr,
			Player:   playerName,
			Team:     mu.Team,
			Opponent: mu.Opponent,
			Stats:    make(map[string]float64),
		}
		for _, def := range cs.Bank.Stats() {
			model, ok := cs.Bank.Model(def.Column)
			if !ok {
				continue
			}
			aligned := model.Reindex(vec, schema)
			res.Stats[def.Column] = round4(model.Predict(aligned))
		}
		if category == models.CategoryGoalies {
			res.Stats[models.ColumnSavePct] = savePct(res.Stats["SV"], res.Stats["SA"])
		}
		results = append(results, res)
	}
	return results, "", nil
}

// savePct derives save percentage from predicted saves and shots
// against; zero predicted shots yields zero, not a division error.
func savePct(saves, shotsAgainst float64) float64 {
	if shotsAgainst == 0 {
		return 0
	}
	return round4(saves / shotsAgainst)
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
