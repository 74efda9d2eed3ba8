package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

// Config
const (
	OUT_DIR     = "data"
	SEASON_DAYS = 60
	DATE_LAYOUT = "01/02/06"
)

var teams = []string{"BOS", "TOR", "MTL", "NYR", "DET", "CHI"}

type roster struct {
	name string
	team string
}

var skaters = []roster{
	{"David Pastrnak", "BOS"},
	{"Brad Marchand", "BOS"},
	{"Auston Matthews", "TOR"},
	{"Mitch Marner", "TOR"},
	{"Nick Suzuki", "MTL"},
	{"Cole Caufield", "MTL"},
	{"Artemi Panarin", "NYR"},
	{"Dylan Larkin", "DET"},
	{"Connor Bedard", "CHI"},
}

var goalies = []roster{
	{"Jeremy Swayman", "BOS"},
	{"Joseph Woll", "TOR"},
	{"Sam Montembeault", "MTL"},
	{"Igor Shesterkin", "NYR"},
	{"Ville Husso", "DET"},
	{"Petr Mrazek", "CHI"},
}

func main() {
	// Deterministic output so repeated seeds produce identical fits
	rng := rand.New(rand.NewSource(42))
	start := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)

	if err := os.MkdirAll(OUT_DIR, 0755); err != nil {
		log.Fatalf("mkdir: %v", err)
	}

	schedule := buildSchedule(rng, start)
	writeCSV("schedule.csv", [][]string{{"DATE", "HOME", "AWAY"}}, scheduleRows(schedule))
	writeCSV("skaters.csv",
		[][]string{{"Player", "Date", "Tm", "Opp", "G", "A", "PTS", "SOG", "HIT", "BLK"}},
		skaterRows(rng, schedule))
	writeCSV("goalies.csv",
		[][]string{{"Player", "Date", "Tm", "Opp", "SV", "GA", "SA", "SO"}},
		goalieRows(rng, schedule))

	fmt.Println("Seeded", OUT_DIR+"/{schedule,skaters,goalies}.csv")
}

type game struct {
	date time.Time
	home string
	away string
}

func buildSchedule(rng *rand.Rand, start time.Time) []game {
	var games []game
	for day := 0; day < SEASON_DAYS; day++ {
		date := start.AddDate(0, 0, day)
		// Two games most nights, shuffled pairings
		order := rng.Perm(len(teams))
		for i := 0; i+1 < len(order) && i < 4; i += 2 {
			games = append(games, game{date: date, home: teams[order[i]], away: teams[order[i+1]]})
		}
	}
	return games
}

func scheduleRows(games []game) [][]string {
	rows := make([][]string, 0, len(games))
	for _, g := range games {
		rows = append(rows, []string{g.date.Format(DATE_LAYOUT), g.home, g.away})
	}
	return rows
}

func skaterRows(rng *rand.Rand, games []game) [][]string {
	var rows [][]string
	for _, g := range games {
		for _, sk := range skaters {
			player, team := sk.name, sk.team
			var opp string
			switch team {
			case g.home:
				opp = g.away
			case g.away:
				opp = g.home
			default:
				continue
			}
			goals := rng.Intn(3)
			assists := rng.Intn(3)
			rows = append(rows, []string{
				player, g.date.Format(DATE_LAYOUT), team, opp,
				itoa(goals), itoa(assists), itoa(goals + assists),
				itoa(1 + rng.Intn(7)), itoa(rng.Intn(5)), itoa(rng.Intn(4)),
			})
		}
	}
	return rows
}

func goalieRows(rng *rand.Rand, games []game) [][]string {
	var rows [][]string
	for _, g := range games {
		for _, gl := range goalies {
			player, team := gl.name, gl.team
			var opp string
			switch team {
			case g.home:
				opp = g.away
			case g.away:
				opp = g.home
			default:
				continue
			}
			shots := 20 + rng.Intn(20)
			ga := rng.Intn(5)
			if ga > shots {
				ga = shots
			}
			shutout := 0
			if ga == 0 {
				shutout = 1
			}
			rows = append(rows, []string{
				player, g.date.Format(DATE_LAYOUT), team, opp,
				itoa(shots - ga), itoa(ga), itoa(shots), itoa(shutout),
			})
		}
	}
	return rows
}

func writeCSV(name string, header, rows [][]string) {
	path := filepath.Join(OUT_DIR, name)
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()
	for _, rec := range append(header, rows...) {
		if err := w.Write(rec); err != nil {
			log.Fatalf("write %s: %v", path, err)
		}
	}
	fmt.Printf("  %s: %d rows\n", path, len(rows))
}

func itoa(v int) string { return fmt.Sprintf("%d", v) }
