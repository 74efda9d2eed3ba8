package logic

import (
	"context"
	"time"

	"github.com/puckline/stats-api/internal/models"
)

// PredictionService produces per-opponent predicted stat lines for a
// player's scheduled game on a date. An empty result with a non-empty
// reason is the soft no-match outcome, not an error.
type PredictionService interface {
	Predict(ctx context.Context, dateStr, playerName string, category models.Category) ([]models.PredictionResult, string, error)
}

// GameLogService serves the filtered game-log views behind the
// interactive charts: player lists, stat catalogs, per-game series and
// threshold-classified distributions.
type GameLogService interface {
	Players(ctx context.Context, category models.Category) []string
	Series(ctx context.Context, category models.Category, player, statColumn string, from, to time.Time) ([]models.GameLogPoint, error)
	Distribution(ctx context.Context, category models.Category, player, statColumn string, from, to time.Time, threshold float64) (*models.DistributionSummary, error)
}
