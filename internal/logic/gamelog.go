package logic

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/puckline/stats-api/internal/models"
)

const histogramBins = 10

type gameLogService struct {
	sessions *SessionHolder
	logger   *zap.SugaredLogger
}

func NewGameLogService(sessions *SessionHolder, logger *zap.Logger) GameLogService {
	return &gameLogService{sessions: sessions, logger: logger.Sugar()}
}

// Players returns the sorted distinct player names of a category.
func (s *gameLogService) Players(ctx context.Context, category models.Category) []string {
	cs := s.sessions.Current().Category(category)
	seen := make(map[string]bool)
	var names []string
	for _, rec := range cs.Logs {
		if !seen[rec.Player] {
			seen[rec.Player] = true
			names = append(names, rec.Player)
		}
	}
	sort.Strings(names)
	return names
}

// Series returns the player's per-game values for one stat, date-filtered
// and sorted ascending. Player selection here is exact (the UI picks from
// the Players list); substring matching belongs to the schedule path only.
func (s *gameLogService) Series(ctx context.Context, category models.Category, player, statColumn string, from, to time.Time) ([]models.GameLogPoint, error) {
	cs := s.sessions.Current().Category(category)
	if !trackedColumn(category, statColumn) {
		return nil, inputErrorf("unknown stat %q for %s", statColumn, category)
	}

	var matched []models.GameRecord
	for _, rec := range cs.Logs {
		if !strings.EqualFold(rec.Player, player) {
			continue
		}
		if !from.IsZero() && rec.Date.Before(from) {
			continue
		}
		if !to.IsZero() && rec.Date.After(to) {
			continue
		}
		if _, ok := rec.Stat(statColumn); ok {
			matched = append(matched, rec)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Date.Before(matched[j].Date) })

	points := make([]models.GameLogPoint, 0, len(matched))
	for _, rec := range matched {
		points = append(points, models.GameLogPoint{
			Date:     rec.Date.Format(RequestDateLayout),
			Opponent: rec.Opponent,
			Value:    rec.Stats[statColumn],
		})
	}
	return points, nil
}

// Distribution summarizes the filtered series against a threshold:
// histogram bins, over/under counts and basic moments. An empty series
// yields a zero-count summary, not an error.
func (s *gameLogService) Distribution(ctx context.Context, category models.Category, player, statColumn string, from, to time.Time, threshold float64) (*models.DistributionSummary, error) {
	points, err := s.Series(ctx, category, player, statColumn, from, to)
	if err != nil {
		return nil, err
	}

	summary := &models.DistributionSummary{
		Player:    player,
		Stat:      statColumn,
		Count:     len(points),
		Threshold: threshold,
	}
	if len(points) == 0 {
		return summary, nil
	}

	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value
		if p.Value >= threshold {
			summary.Over++
		} else {
			summary.Under++
		}
	}

	summary.Mean = stat.Mean(values, nil)
	if len(values) > 1 {
		summary.StdDev = stat.StdDev(values, nil)
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	summary.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	summary.Bins = histogram(sorted)

	return summary, nil
}

func histogram(sorted []float64) []models.HistogramBin {
	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		return []models.HistogramBin{{Low: lo, High: hi, Count: len(sorted)}}
	}
	width := (hi - lo) / histogramBins
	bins := make([]models.HistogramBin, histogramBins)
	for i := range bins {
		bins[i].Low = lo + float64(i)*width
		bins[i].High = bins[i].Low + width
	}
	for _, v := range sorted {
		idx := int((v - lo) / width)
		if idx >= histogramBins {
			idx = histogramBins - 1
		}
		bins[idx].Count++
	}
	return bins
}

func trackedColumn(category models.Category, column string) bool {
	for _, def := range models.TrackedStats(category) {
		if def.Column == column {
			return true
		}
	}
	return false
}
