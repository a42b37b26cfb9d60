package rotation

import (
	"fmt"
	"testing"

	"github.com/opencourt/courtplay/models"
)

func testTeams(n int) []*models.Team {
	teams := make([]*models.Team, n)
	for i := range teams {
		teams[i] = &models.Team{ID: i + 1, SessionID: 1, Name: fmt.Sprintf("Team %d", i+1)}
	}
	return teams
}

// playedGame builds a completed game; the higher score wins.
func playedGame(round, court, aID, bID, scoreA, scoreB int) *models.Game {
	winner := aID
	if scoreB > scoreA {
		winner = bID
	}
	return &models.Game{
		SessionID: 1,
		TeamAID:   aID,
		TeamBID:   bID,
		Court:     court,
		Round:     round,
		Status:    models.GameStatusCompleted,
		ScoreA:    &scoreA,
		ScoreB:    &scoreB,
		WinnerID:  &winner,
	}
}

func pendingGame(round, court, aID, bID int) *models.Game {
	return &models.Game{
		SessionID: 1,
		TeamAID:   aID,
		TeamBID:   bID,
		Court:     court,
		Round:     round,
		Status:    models.GameStatusPending,
	}
}

// checkRoundInvariants verifies the structural guarantees every policy must
// hold: matched and benched teams partition the team set, no team is
// double-booked, and courts run 1..K without gaps.
func checkRoundInvariants(t *testing.T, teams []*models.Team, res *RoundResult) {
	t.Helper()

	seen := make(map[int]int)
	for _, m := range res.Matchups {
		seen[m.TeamA.ID]++
		seen[m.TeamB.ID]++
	}
	for _, b := range res.Benched {
		seen[b.ID]++
	}

	for _, team := range teams {
		if seen[team.ID] != 1 {
			t.Errorf("team %d appears %d times across matchups and bench, want exactly 1", team.ID, seen[team.ID])
		}
	}
	if len(seen) != len(teams) {
		t.Errorf("output references %d distinct teams, want %d", len(seen), len(teams))
	}

	for i, m := range res.Matchups {
		if m.Court != i+1 {
			t.Errorf("matchup %d has court %d, want contiguous court %d", i, m.Court, i+1)
		}
	}
}

func matchupIDs(res *RoundResult) [][2]int {
	out := make([][2]int, len(res.Matchups))
	for i, m := range res.Matchups {
		out[i] = [2]int{m.TeamA.ID, m.TeamB.ID}
	}
	return out
}

func benchedIDs(res *RoundResult) []int {
	out := make([]int, len(res.Benched))
	for i, b := range res.Benched {
		out[i] = b.ID
	}
	return out
}

func TestNextRoundValidation(t *testing.T) {
	tests := []struct {
		name   string
		params NextRoundParams
	}{
		{
			name:   "fewer than two teams",
			params: NextRoundParams{Teams: testTeams(1), Policy: models.PolicyManual, CourtCount: 1, Round: 1},
		},
		{
			name:   "non-positive court count",
			params: NextRoundParams{Teams: testTeams(4), Policy: models.PolicyManual, CourtCount: 0, Round: 1},
		},
		{
			name:   "round below one",
			params: NextRoundParams{Teams: testTeams(4), Policy: models.PolicyManual, CourtCount: 1, Round: 0},
		},
		{
			name:   "unknown policy",
			params: NextRoundParams{Teams: testTeams(4), Policy: "ladder", CourtCount: 1, Round: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NextRound(tt.params); err == nil {
				t.Fatal("expected an error, got nil")
			}
		})
	}
}

func TestRoundOneBootstrapAllPolicies(t *testing.T) {
	policies := []models.RotationPolicy{
		models.PolicyKingOfCourt,
		models.PolicyRoundRobin,
		models.PolicySwiss,
		models.PolicyManual,
		models.PolicySpeed,
	}

	teams := testTeams(7)
	for _, policy := range policies {
		t.Run(string(policy), func(t *testing.T) {
			res, err := NextRound(NextRoundParams{
				Teams:      teams,
				Policy:     policy,
				CourtCount: 2,
				Round:      1,
			})
			if err != nil {
				t.Fatalf("NextRound: %v", err)
			}
			checkRoundInvariants(t, teams, res)

			want := [][2]int{{1, 2}, {3, 4}}
			got := matchupIDs(res)
			if len(got) != len(want) {
				t.Fatalf("matchups = %v, want %v", got, want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("matchup %d = %v, want %v", i, got[i], want[i])
				}
			}

			wantBench := []int{5, 6, 7}
			gotBench := benchedIDs(res)
			if len(gotBench) != len(wantBench) {
				t.Fatalf("benched = %v, want %v", gotBench, wantBench)
			}
			for i := range wantBench {
				if gotBench[i] != wantBench[i] {
					t.Errorf("benched[%d] = %d, want %d", i, gotBench[i], wantBench[i])
				}
			}
		})
	}
}

func TestNextRoundIsDeterministic(t *testing.T) {
	teams := testTeams(6)
	games := []*models.Game{
		playedGame(1, 1, 1, 2, 11, 7),
		playedGame(1, 2, 3, 4, 9, 11),
	}

	for _, policy := range []models.RotationPolicy{
		models.PolicyKingOfCourt, models.PolicyRoundRobin, models.PolicySwiss, models.PolicySpeed,
	} {
		t.Run(string(policy), func(t *testing.T) {
			params := NextRoundParams{Teams: teams, Games: games, Policy: policy, CourtCount: 2, Round: 2}
			first, err := NextRound(params)
			if err != nil {
				t.Fatalf("NextRound: %v", err)
			}
			second, err := NextRound(params)
			if err != nil {
				t.Fatalf("NextRound (repeat): %v", err)
			}

			a, b := matchupIDs(first), matchupIDs(second)
			if len(a) != len(b) {
				t.Fatalf("repeat call returned %d matchups, first returned %d", len(b), len(a))
			}
			for i := range a {
				if a[i] != b[i] {
					t.Errorf("matchup %d differs between identical calls: %v vs %v", i, a[i], b[i])
				}
			}
		})
	}
}

func TestManualIgnoresHistory(t *testing.T) {
	teams := testTeams(5)
	games := []*models.Game{
		playedGame(1, 1, 1, 2, 11, 0),
		playedGame(1, 2, 3, 4, 0, 11),
	}

	res, err := NextRound(NextRoundParams{
		Teams:      teams,
		Games:      games,
		Policy:     models.PolicyManual,
		CourtCount: 2,
		Round:      2,
	})
	if err != nil {
		t.Fatalf("NextRound: %v", err)
	}
	checkRoundInvariants(t, teams, res)

	want := [][2]int{{1, 2}, {3, 4}}
	got := matchupIDs(res)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("matchup %d = %v, want positional suggestion %v", i, got[i], want[i])
		}
	}
	if bench := benchedIDs(res); len(bench) != 1 || bench[0] != 5 {
		t.Errorf("benched = %v, want [5]", bench)
	}
}
