package logic

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/puckline/stats-api/internal/models"
)

// ModelBank holds one fitted StatModel per tracked stat of a player
// category. The stat set is fixed by the category catalog at
// construction, so a missing model is impossible after a successful fit.
// Banks are immutable once fitted and safe for concurrent Predict use.
type ModelBank struct {
	category models.Category
	stats    []models.StatDef
	fitted   []*StatModel // parallel to stats
	byColumn map[string]*StatModel
}

// FitModelBank encodes the full history through the shared encoder and
// fits every tracked stat of the category. Rows missing a particular
// stat value are excluded from that stat's fit only. The per-stat fits
// are independent, so they run concurrently.
func FitModelBank(category models.Category, enc *Encoder, logs []models.GameRecord) (*ModelBank, error) {
	stats := models.TrackedStats(category)
	schema := enc.Schema()

	featureRows := make([]models.FeatureRow, len(logs))
	for i, rec := range logs {
		featureRows[i] = models.FeatureRow{
			models.FieldOpponent: rec.Opponent,
			models.FieldPlayer:   rec.Player,
		}
	}
	encoded := enc.Transform(featureRows)

	bank := &ModelBank{
		category: category,
		stats:    stats,
		fitted:   make([]*StatModel, len(stats)),
		byColumn: make(map[string]*StatModel, len(stats)),
	}

	var g errgroup.Group
	for i, def := range stats {
		i, def := i, def
		g.Go(func() error {
			var xs []models.FeatureVector
			var ys []float64
			for j, rec := range logs {
				if v, ok := rec.Stat(def.Column); ok {
					xs = append(xs, encoded[j])
					ys = append(ys, v)
				}
			}
			m, err := FitStatModel(def, schema, xs, ys)
			if err != nil {
				return fmt.Errorf("%s: %w", category, err)
			}
			bank.fitted[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, def := range stats {
		bank.byColumn[def.Column] = bank.fitted[i]
	}
	return bank, nil
}

// Category returns the player category the bank was fitted for.
func (b *ModelBank) Category() models.Category { return b.category }

// Stats returns the tracked stat catalog in fit order.
func (b *ModelBank) Stats() []models.StatDef {
	out := make([]models.StatDef, len(b.stats))
	copy(out, b.stats)
	return out
}

// Model returns the fitted model for a stat column.
func (b *ModelBank) Model(column string) (*StatModel, bool) {
	m, ok := b.byColumn[column]
	return m, ok
}
