package logic

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/puckline/stats-api/internal/dataset"
	"github.com/puckline/stats-api/internal/models"
)

// CategorySet is everything fitted for one player category: the shared
// encoder, the per-stat model bank, the roster index and the schedule
// matcher built over it. The encoder is shared by reference across all
// of the category's stat models — the feature space is category-wide.
type CategorySet struct {
	Category models.Category
	Logs     []models.GameRecord
	Encoder  *Encoder
	Bank     *ModelBank
	Roster   *RosterIndex
	Matcher  *ScheduleMatcher
}

// Session owns one fitted generation of the system: the three datasets
// and the two (encoder, model bank) pairs. It is built once per dataset
// load, never mutated afterwards, and freely shared across predict calls.
type Session struct {
	ID       string
	BuiltAt  time.Time
	Schedule []models.ScheduledGame

	skaters *CategorySet
	goalies *CategorySet
}

// BuildSession runs the full training path: encoder fit then model bank
// fit, per category. It blocks until every stat model is fitted and is
// not cancelable mid-fit; ctx only gates the category fan-out.
func BuildSession(ctx context.Context, bundle *dataset.Bundle, logger *zap.Logger) (*Session, error) {
	log := logger.Sugar()
	start := time.Now()

	sess := &Session{
		ID:       uuid.NewString(),
		BuiltAt:  start,
		Schedule: bundle.Schedule,
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		cs, err := fitCategory(models.CategorySkaters, bundle.Skaters, bundle.Schedule)
		if err != nil {
			return err
		}
		sess.skaters = cs
		return nil
	})
	g.Go(func() error {
		cs, err := fitCategory(models.CategoryGoalies, bundle.Goalies, bundle.Schedule)
		if err != nil {
			return err
		}
		sess.goalies = cs
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Infow("Session fitted",
		"session_id", sess.ID,
		"skater_columns", len(sess.skaters.Encoder.Schema()),
		"goalie_columns", len(sess.goalies.Encoder.Schema()),
		"duration", time.Since(start),
	)
	return sess, nil
}

func fitCategory(category models.Category, logs []models.GameRecord, schedule []models.ScheduledGame) (*CategorySet, error) {
	if len(logs) == 0 {
		return nil, fmt.Errorf("%s: empty game log", category)
	}

	rows := make([]models.FeatureRow, len(logs))
	for i, rec := range logs {
		rows[i] = models.FeatureRow{
			models.FieldOpponent: rec.Opponent,
			models.FieldPlayer:   rec.Player,
		}
	}

	enc := NewEncoder()
	enc.Fit(rows, []string{models.FieldOpponent, models.FieldPlayer})

	bank, err := FitModelBank(category, enc, logs)
	if err != nil {
		return nil, err
	}

	roster := BuildRosterIndex(logs)
	return &CategorySet{
		Category: category,
		Logs:     logs,
		Encoder:  enc,
		Bank:     bank,
		Roster:   roster,
		Matcher:  NewScheduleMatcher(schedule, roster),
	}, nil
}

// Category returns the fitted set for a player category.
func (s *Session) Category(c models.Category) *CategorySet {
	if c == models.CategoryGoalies {
		return s.goalies
	}
	return s.skaters
}

// SessionHolder publishes the current session to readers while the
// background refresher swaps in refitted generations. Swapping is the
// only coordination point; sessions themselves are immutable.
type SessionHolder struct {
	current atomic.Pointer[Session]
}

func NewSessionHolder(s *Session) *SessionHolder {
	h := &SessionHolder{}
	h.current.Store(s)
	return h
}

func (h *SessionHolder) Current() *Session { return h.current.Load() }

func (h *SessionHolder) Swap(s *Session) { h.current.Store(s) }
