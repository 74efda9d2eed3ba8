package logic

import (
	"sort"
	"strings"
	"time"

	"github.com/puckline/stats-api/internal/models"
)

// RosterIndex maps lowercased player names to the teams they have
// appeared for in the game logs. Name matching is case-insensitive
// substring containment; that policy is deliberately permissive (variant
// casing and punctuation across sources) and lives only here, so a
// stricter matcher can replace it without touching the orchestrator.
type RosterIndex struct {
	entries []rosterEntry
}

type rosterEntry struct {
	name string // lowercased display name
	team string
}

// BuildRosterIndex collects the distinct (player, team) pairs from a
// category's game logs.
func BuildRosterIndex(logs []models.GameRecord) *RosterIndex {
	seen := make(map[string]bool)
	idx := &RosterIndex{}
	for _, rec := range logs {
		key := rec.Player + "\x00" + rec.Team
		if seen[key] {
			continue
		}
		seen[key] = true
		idx.entries = append(idx.entries, rosterEntry{
			name: strings.ToLower(rec.Player),
			team: rec.Team,
		})
	}
	return idx
}

// TeamsFor returns the set of teams whose roster contains the name.
func (ri *RosterIndex) TeamsFor(name string) map[string]bool {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil
	}
	teams := make(map[string]bool)
	for _, e := range ri.entries {
		if strings.Contains(e.name, needle) {
			teams[e.team] = true
		}
	}
	return teams
}

// ScheduleMatcher resolves which scheduled games on a date involve a
// player's team, in either the home or away role.
type ScheduleMatcher struct {
	games  []models.ScheduledGame
	roster *RosterIndex
}

func NewScheduleMatcher(games []models.ScheduledGame, roster *RosterIndex) *ScheduleMatcher {
	return &ScheduleMatcher{games: games, roster: roster}
}

// HasGamesOn reports whether any game is scheduled on the date.
func (m *ScheduleMatcher) HasGamesOn(date time.Time) bool {
	for _, g := range m.games {
		if sameDay(g.Date, date) {
			return true
		}
	}
	return false
}

// MatchesFor returns one (team, opponent) pair per side the player's
// team plays on the date. Time-of-day on either side is ignored. An
// empty result means no game or no roster hit; it is never an error.
func (m *ScheduleMatcher) MatchesFor(date time.Time, playerName string) []models.Matchup {
	teams := m.roster.TeamsFor(playerName)
	if len(teams) == 0 {
		return nil
	}
	var matchups []models.Matchup
	for _, g := range m.games {
		if !sameDay(g.Date, date) {
			continue
		}
		if teams[g.Home] {
			matchups = append(matchups, models.Matchup{Team: g.Home, Opponent: g.Away})
		}
		if teams[g.Away] {
			matchups = append(matchups, models.Matchup{Team: g.Away, Opponent: g.Home})
		}
	}
	sort.Slice(matchups, func(i, j int) bool {
		if matchups[i].Team != matchups[j].Team {
			return matchups[i].Team < matchups[j].Team
		}
		return matchups[i].Opponent < matchups[j].Opponent
	})
	return matchups
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
