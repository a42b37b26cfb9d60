package rotation

import (
	"testing"

	"github.com/opencourt/courtplay/models"
)

// playRound completes every matchup in a result with team A winning 11-9 and
// returns the new games appended to the history.
func playRound(games []*models.Game, res *RoundResult, round int) []*models.Game {
	for _, m := range res.Matchups {
		games = append(games, playedGame(round, m.Court, m.TeamA.ID, m.TeamB.ID, 11, 9))
	}
	return games
}

func TestRoundRobinNeverRepeatsAPairing(t *testing.T) {
	teams := testTeams(5)
	var games []*models.Game
	seen := make(map[pairKey]int)

	for round := 1; round <= 12; round++ {
		res, err := NextRound(NextRoundParams{
			Teams:      teams,
			Games:      games,
			Policy:     models.PolicyRoundRobin,
			CourtCount: 2,
			Round:      round,
		})
		if err != nil {
			t.Fatalf("round %d: %v", round, err)
		}
		checkRoundInvariants(t, teams, res)

		for _, m := range res.Matchups {
			seen[newPairKey(m.TeamA.ID, m.TeamB.ID)]++
		}
		games = playRound(games, res, round)

		if IsRoundRobinComplete(teams, games) {
			break
		}
	}

	if !IsRoundRobinComplete(teams, games) {
		t.Fatal("round robin never completed")
	}
	// 5 teams: C(5,2) = 10 distinct pairs, each exactly once.
	if len(seen) != 10 {
		t.Errorf("generated %d distinct pairs, want 10", len(seen))
	}
	for pair, count := range seen {
		if count != 1 {
			t.Errorf("pair %v scheduled %d times, want 1", pair, count)
		}
	}
}

func TestRoundRobinStableGenerationOrder(t *testing.T) {
	teams := testTeams(4)
	games := []*models.Game{
		playedGame(1, 1, 1, 2, 11, 7),
		playedGame(1, 2, 3, 4, 11, 3),
	}

	res, err := NextRound(NextRoundParams{
		Teams:      teams,
		Games:      games,
		Policy:     models.PolicyRoundRobin,
		CourtCount: 2,
		Round:      2,
	})
	if err != nil {
		t.Fatalf("NextRound: %v", err)
	}

	// i-ascending then j-ascending: 1 pairs with 3 first, leaving 2 with 4.
	want := [][2]int{{1, 3}, {2, 4}}
	got := matchupIDs(res)
	if len(got) != len(want) {
		t.Fatalf("matchups = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("matchup %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRoundRobinExhaustedReturnsEmpty(t *testing.T) {
	teams := testTeams(2)
	games := []*models.Game{playedGame(1, 1, 1, 2, 11, 5)}

	res, err := NextRound(NextRoundParams{
		Teams:      teams,
		Games:      games,
		Policy:     models.PolicyRoundRobin,
		CourtCount: 1,
		Round:      2,
	})
	if err != nil {
		t.Fatalf("NextRound: %v", err)
	}

	// No fresh pairing left: empty matchups is a valid output, and the
	// completion check is how callers tell "done" from "stuck".
	if len(res.Matchups) != 0 {
		t.Errorf("matchups = %v, want none", matchupIDs(res))
	}
	if bench := benchedIDs(res); len(bench) != 2 {
		t.Errorf("benched = %v, want both teams", bench)
	}
	if !IsRoundRobinComplete(teams, games) {
		t.Error("IsRoundRobinComplete = false, want true")
	}
}

func TestRoundRobinSkipsScheduledTeams(t *testing.T) {
	teams := testTeams(6)
	// Only pair 1-2 has played.
	games := []*models.Game{playedGame(1, 1, 1, 2, 11, 2)}

	res, err := NextRound(NextRoundParams{
		Teams:      teams,
		Games:      games,
		Policy:     models.PolicyRoundRobin,
		CourtCount: 3,
		Round:      2,
	})
	if err != nil {
		t.Fatalf("NextRound: %v", err)
	}
	checkRoundInvariants(t, teams, res)

	// 1 skips 2 (already played) and takes 3, then 2 takes 4, then 5 takes 6.
	want := [][2]int{{1, 3}, {2, 4}, {5, 6}}
	got := matchupIDs(res)
	if len(got) != len(want) {
		t.Fatalf("matchups = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("matchup %d = %v, want %v", i, got[i], want[i])
		}
	}
}
