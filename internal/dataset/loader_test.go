package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func testPaths(t *testing.T, skaters, goalies, schedule string) Paths {
	t.Helper()
	dir := t.TempDir()
	return Paths{
		Skaters:  writeFile(t, dir, "skaters.csv", skaters),
		Goalies:  writeFile(t, dir, "goalies.csv", goalies),
		Schedule: writeFile(t, dir, "schedule.csv", schedule),
	}
}

const (
	skatersCSV = `Player,Date,Tm,Opp,G,A,PTS,SOG,HIT,BLK
David Pastrnak,11/01/24,BOS,TOR,1,2,3,5,1,0
David Pastrnak,11/03/24,BOS,MTL,0,,0,4,2,1
bad row,not-a-date,BOS,TOR,1,1,2,3,0,0
`
	goaliesCSV = `Player,Date,Team,Opponent,SV,GA,SA,SO
Jeremy Swayman,11/01/24,BOS,TOR,28,2,30,0
`
	scheduleCSV = `DATE,HOME,AWAY
11/05/24,BOS,TOR
11/06/24,MTL,BOS
`
)

func TestLoad(t *testing.T) {
	paths := testPaths(t, skatersCSV, goaliesCSV, scheduleCSV)
	loader := NewLoader(paths, "01/02/06", zap.NewNop())

	bundle, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(bundle.Skaters) != 2 {
		t.Fatalf("skaters = %d rows, want 2 (malformed row skipped)", len(bundle.Skaters))
	}
	first := bundle.Skaters[0]
	if first.Player != "David Pastrnak" || first.Team != "BOS" || first.Opponent != "TOR" {
		t.Errorf("unexpected first skater row: %+v", first)
	}
	wantDate := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	if !first.Date.Equal(wantDate) {
		t.Errorf("date = %v, want %v", first.Date, wantDate)
	}
	if v, ok := first.Stat("G"); !ok || v != 1 {
		t.Errorf("G = %v (%v), want 1", v, ok)
	}

	// Blank stat cell: A is absent from the second row, not zero.
	second := bundle.Skaters[1]
	if _, ok := second.Stat("A"); ok {
		t.Error("blank A cell should be absent from the stat map")
	}
	if v, ok := second.Stat("PTS"); !ok || v != 0 {
		t.Errorf("PTS = %v (%v), want 0", v, ok)
	}

	// Team/Opponent header aliases accepted for goalies.
	if len(bundle.Goalies) != 1 {
		t.Fatalf("goalies = %d rows, want 1", len(bundle.Goalies))
	}
	g := bundle.Goalies[0]
	if g.Team != "BOS" || g.Opponent != "TOR" {
		t.Errorf("goalie team/opp = %s/%s, want BOS/TOR", g.Team, g.Opponent)
	}
	if v, ok := g.Stat("SV"); !ok || v != 28 {
		t.Errorf("SV = %v (%v), want 28", v, ok)
	}

	if len(bundle.Schedule) != 2 {
		t.Fatalf("schedule = %d rows, want 2", len(bundle.Schedule))
	}
	if bundle.Schedule[0].Home != "BOS" || bundle.Schedule[0].Away != "TOR" {
		t.Errorf("unexpected schedule row: %+v", bundle.Schedule[0])
	}
}

func TestLoad_RaggedRowMidFile(t *testing.T) {
	// A row with the wrong field count must not stop the read; every
	// well-formed row after it still loads.
	ragged := `Player,Date,Tm,Opp,G,A,PTS,SOG,HIT,BLK
David Pastrnak,11/01/24,BOS,TOR,1,2,3,5,1,0
Brad Marchand,11/01/24,BOS,TOR
David Pastrnak,11/03/24,BOS,MTL,0,1,1,4,2,1
Brad Marchand,11/03/24,BOS,MTL,2,0,2,6,3,0
`
	paths := testPaths(t, ragged, goaliesCSV, scheduleCSV)
	loader := NewLoader(paths, "01/02/06", zap.NewNop())

	bundle, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(bundle.Skaters) != 3 {
		t.Fatalf("skaters = %d rows, want 3 (only the ragged row skipped)", len(bundle.Skaters))
	}
	last := bundle.Skaters[2]
	if last.Player != "Brad Marchand" || !last.Date.Equal(time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected last row: %+v", last)
	}
}

func TestLoad_MissingColumns(t *testing.T) {
	tests := []struct {
		name     string
		skaters  string
		goalies  string
		schedule string
	}{
		{
			name:     "game log missing Opp",
			skaters:  "Player,Date,Tm,G\nA,11/01/24,BOS,1\n",
			goalies:  goaliesCSV,
			schedule: scheduleCSV,
		},
		{
			name:     "schedule missing HOME",
			skaters:  skatersCSV,
			goalies:  goaliesCSV,
			schedule: "DATE,AWAY\n11/05/24,TOR\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths := testPaths(t, tt.skaters, tt.goalies, tt.schedule)
			loader := NewLoader(paths, "01/02/06", zap.NewNop())
			if _, err := loader.Load(context.Background()); err == nil {
				t.Fatal("expected error for missing required column")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	paths := testPaths(t, skatersCSV, goaliesCSV, scheduleCSV)
	paths.Schedule = filepath.Join(t.TempDir(), "nope.csv")
	loader := NewLoader(paths, "01/02/06", zap.NewNop())
	if _, err := loader.Load(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLatestModTime(t *testing.T) {
	paths := testPaths(t, skatersCSV, goaliesCSV, scheduleCSV)

	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(paths.Goalies, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	mod, err := paths.LatestModTime()
	if err != nil {
		t.Fatalf("latest mod time: %v", err)
	}
	if !mod.After(time.Now().Add(30 * time.Minute)) {
		t.Errorf("latest mod time %v should reflect the touched file", mod)
	}
}
