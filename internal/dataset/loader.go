// Package dataset loads the three CSV exports the service runs on:
// skater game logs, goalie game logs, and the league schedule.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/puckline/stats-api/internal/models"
)

// Paths names the three input files.
type Paths struct {
	Skaters  string
	Goalies  string
	Schedule string
}

// Bundle is one loaded dataset generation. Immutable after Load.
type Bundle struct {
	Skaters  []models.GameRecord
	Goalies  []models.GameRecord
	Schedule []models.ScheduledGame
}

// Logs returns the game logs for a category.
func (b *Bundle) Logs(c models.Category) []models.GameRecord {
	if c == models.CategoryGoalies {
		return b.Goalies
	}
	return b.Skaters
}

type Loader struct {
	paths      Paths
	dateLayout string
	logger     *zap.SugaredLogger
}

func NewLoader(paths Paths, dateLayout string, logger *zap.Logger) *Loader {
	if dateLayout == "" {
		dateLayout = "01/02/06"
	}
	return &Loader{paths: paths, dateLayout: dateLayout, logger: logger.Sugar()}
}

// Load reads all three files concurrently and returns the bundle.
func (l *Loader) Load(ctx context.Context) (*Bundle, error) {
	bundle := &Bundle{}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := l.loadGameLog(l.paths.Skaters, models.TrackedStats(models.CategorySkaters))
		if err != nil {
			return fmt.Errorf("skater logs: %w", err)
		}
		bundle.Skaters = rows
		return nil
	})
	g.Go(func() error {
		rows, err := l.loadGameLog(l.paths.Goalies, models.TrackedStats(models.CategoryGoalies))
		if err != nil {
			return fmt.Errorf("goalie logs: %w", err)
		}
		bundle.Goalies = rows
		return nil
	})
	g.Go(func() error {
		games, err := l.loadSchedule(l.paths.Schedule)
		if err != nil {
			return fmt.Errorf("schedule: %w", err)
		}
		bundle.Schedule = games
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	l.logger.Infow("Datasets loaded",
		"skaters", len(bundle.Skaters),
		"goalies", len(bundle.Goalies),
		"schedule", len(bundle.Schedule),
	)
	return bundle, nil
}

func (l *Loader) loadGameLog(path string, stats []models.StatDef) ([]models.GameRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := indexHeader(header)

	playerIdx, ok := cols["player"]
	if !ok {
		return nil, fmt.Errorf("missing Player column in %s", path)
	}
	dateIdx, ok := cols["date"]
	if !ok {
		return nil, fmt.Errorf("missing Date column in %s", path)
	}
	teamIdx, ok := firstIndex(cols, "tm", "team")
	if !ok {
		return nil, fmt.Errorf("missing Tm/Team column in %s", path)
	}
	oppIdx, ok := firstIndex(cols, "opp", "opponent")
	if !ok {
		return nil, fmt.Errorf("missing Opp/Opponent column in %s", path)
	}

	var records []models.GameRecord
	var skipped int
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Ragged or otherwise unparseable line; the rest of the file
			// is still good.
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				skipped++
				continue
			}
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		date, err := time.Parse(l.dateLayout, field(row, dateIdx))
		if err != nil {
			skipped++
			continue
		}
		rec := models.GameRecord{
			Player:   field(row, playerIdx),
			Team:     field(row, teamIdx),
			Opponent: field(row, oppIdx),
			Date:     date,
			Stats:    make(map[string]float64, len(stats)),
		}
		if rec.Player == "" || rec.Team == "" || rec.Opponent == "" {
			skipped++
			continue
		}
		// A blank or non-numeric stat cell leaves that stat absent from
		// the row; the model bank excludes such rows per-stat at fit time.
		for _, s := range stats {
			idx, ok := cols[strings.ToLower(s.Column)]
			if !ok {
				continue
			}
			if v, err := strconv.ParseFloat(field(row, idx), 64); err == nil {
				rec.Stats[s.Column] = v
			}
		}
		records = append(records, rec)
	}
	if skipped > 0 {
		l.logger.Warnw("Skipped malformed game-log rows", "path", path, "skipped", skipped)
	}
	return records, nil
}

func (l *Loader) loadSchedule(path string) ([]models.ScheduledGame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := indexHeader(header)

	dateIdx, ok := cols["date"]
	if !ok {
		return nil, fmt.Errorf("missing DATE column in %s", path)
	}
	homeIdx, ok := cols["home"]
	if !ok {
		return nil, fmt.Errorf("missing HOME column in %s", path)
	}
	awayIdx, ok := cols["away"]
	if !ok {
		return nil, fmt.Errorf("missing AWAY column in %s", path)
	}

	var games []models.ScheduledGame
	var skipped int
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				skipped++
				continue
			}
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		date, err := time.Parse(l.dateLayout, field(row, dateIdx))
		if err != nil {
			skipped++
			continue
		}
		g := models.ScheduledGame{
			Date: date,
			Home: field(row, homeIdx),
			Away: field(row, awayIdx),
		}
		if g.Home == "" || g.Away == "" {
			skipped++
			continue
		}
		games = append(games, g)
	}
	if skipped > 0 {
		l.logger.Warnw("Skipped malformed schedule rows", "path", path, "skipped", skipped)
	}
	return games, nil
}

// LatestModTime reports the newest mtime across the three files. Used by
// the background refresher to detect new exports.
func (p Paths) LatestModTime() (time.Time, error) {
	var latest time.Time
	for _, path := range []string{p.Skaters, p.Goalies, p.Schedule} {
		info, err := os.Stat(path)
		if err != nil {
			return time.Time{}, err
		}
		if info.ModTime().After(latest) {
			latest = info.ModTime()
		}
	}
	return latest, nil
}

func indexHeader(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return cols
}

func firstIndex(cols map[string]int, names ...string) (int, bool) {
	for _, n := range names {
		if idx, ok := cols[n]; ok {
			return idx, true
		}
	}
	return 0, false
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
