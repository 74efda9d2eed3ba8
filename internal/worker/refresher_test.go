package worker

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/puckline/stats-api/internal/dataset"
	"github.com/puckline/stats-api/internal/logic"
)

const (
	testSkaters = `Player,Date,Tm,Opp,G,A,PTS,SOG,HIT,BLK
A,11/01/24,ATM,X,1,0,1,2,1,0
A,11/03/24,ATM,Y,3,1,4,5,0,1
`
	testGoalies = `Player,Date,Tm,Opp,SV,GA,SA,SO
G One,11/01/24,ATM,X,25,3,28,0
`
	testSchedule = `DATE,HOME,AWAY
12/01/24,ATM,X
`
)

func setupRefresher(t *testing.T) (*Refresher, *logic.SessionHolder, dataset.Paths) {
	t.Helper()
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
		return path
	}
	paths := dataset.Paths{
		Skaters:  write("skaters.csv", testSkaters),
		Goalies:  write("goalies.csv", testGoalies),
		Schedule: write("schedule.csv", testSchedule),
	}

	loader := dataset.NewLoader(paths, "01/02/06", zap.NewNop())
	bundle, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	sess, err := logic.BuildSession(context.Background(), bundle, zap.NewNop())
	if err != nil {
		t.Fatalf("build session: %v", err)
	}
	holder := logic.NewSessionHolder(sess)

	r := NewRefresher(RefresherConfig{
		Interval: time.Minute,
		Paths:    paths,
		Loader:   loader,
		Sessions: holder,
		Logger:   zap.NewNop(),
	})
	return r, holder, paths
}

func TestRunOnce_NoChangeKeepsSession(t *testing.T) {
	r, holder, _ := setupRefresher(t)

	before := holder.Current().ID
	r.runOnce(context.Background())
	if holder.Current().ID != before {
		t.Error("session swapped without a file change")
	}
}

func TestRunOnce_SwapsOnNewerFiles(t *testing.T) {
	r, holder, paths := setupRefresher(t)

	before := holder.Current().ID

	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(paths.Skaters, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	r.runOnce(context.Background())

	after := holder.Current().ID
	if after == before {
		t.Fatal("expected a refitted session after file change")
	}

	// A second pass without further changes is a no-op.
	r.runOnce(context.Background())
	if holder.Current().ID != after {
		t.Error("session swapped again without a file change")
	}
}

func TestRunOnce_LoadFailureKeepsOldSession(t *testing.T) {
	r, holder, paths := setupRefresher(t)

	before := holder.Current().ID

	// Corrupt the schedule and bump its mtime: reload fails, the old
	// session keeps serving.
	if err := os.WriteFile(paths.Schedule, []byte("BROKEN\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(paths.Schedule, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	r.runOnce(context.Background())

	if holder.Current().ID != before {
		t.Error("session swapped despite load failure")
	}
}
