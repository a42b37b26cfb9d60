package rotation

import (
	"testing"

	"github.com/opencourt/courtplay/models"
)

func TestComputeStandings(t *testing.T) {
	teams := testTeams(4)
	games := []*models.Game{
		playedGame(1, 1, 1, 2, 11, 5),  // 1 beats 2 by 6
		playedGame(1, 2, 3, 4, 8, 11),  // 4 beats 3 by 3
		playedGame(2, 1, 1, 4, 11, 9),  // 1 beats 4 by 2
		playedGame(2, 2, 2, 3, 11, 10), // 2 beats 3 by 1
		pendingGame(3, 1, 1, 3),        // ignored
	}

	standings := ComputeStandings(teams, games)

	want := []struct {
		teamID, wins, losses, diff, played int
	}{
		{1, 2, 0, 8, 2},
		{4, 1, 1, 1, 2},
		{2, 1, 1, -5, 2},
		{3, 0, 2, -4, 2},
	}

	if len(standings) != len(want) {
		t.Fatalf("got %d standings, want %d", len(standings), len(want))
	}
	for i, w := range want {
		s := standings[i]
		if s.Team.ID != w.teamID {
			t.Errorf("rank %d team = %d, want %d", i, s.Team.ID, w.teamID)
		}
		if s.Wins != w.wins || s.Losses != w.losses || s.PointDiff != w.diff || s.GamesPlayed != w.played {
			t.Errorf("team %d record = %dW/%dL diff %d over %d games, want %dW/%dL diff %d over %d",
				s.Team.ID, s.Wins, s.Losses, s.PointDiff, s.GamesPlayed, w.wins, w.losses, w.diff, w.played)
		}
	}
}

func TestComputeStandingsTieKeepsInputOrder(t *testing.T) {
	teams := testTeams(3)
	// Identical records for teams 2 and 3.
	games := []*models.Game{
		playedGame(1, 1, 1, 2, 11, 8),
		playedGame(2, 1, 1, 3, 11, 8),
	}

	standings := ComputeStandings(teams, games)
	if standings[0].Team.ID != 1 {
		t.Fatalf("rank 0 = team %d, want 1", standings[0].Team.ID)
	}
	if standings[1].Team.ID != 2 || standings[2].Team.ID != 3 {
		t.Errorf("tied teams ordered [%d %d], want input order [2 3]",
			standings[1].Team.ID, standings[2].Team.ID)
	}
}

func TestComputeStandingsIsIdempotent(t *testing.T) {
	teams := testTeams(4)
	games := []*models.Game{
		playedGame(1, 1, 1, 2, 11, 5),
		playedGame(1, 2, 3, 4, 11, 5),
	}

	first := ComputeStandings(teams, games)
	second := ComputeStandings(teams, games)
	for i := range first {
		if first[i].Team.ID != second[i].Team.ID || first[i].Wins != second[i].Wins ||
			first[i].PointDiff != second[i].PointDiff {
			t.Errorf("standings differ between identical calls at rank %d", i)
		}
	}
}

func TestIsRoundRobinComplete(t *testing.T) {
	teams := testTeams(3)

	var games []*models.Game
	if IsRoundRobinComplete(teams, games) {
		t.Error("complete with no games, want false")
	}

	games = append(games, playedGame(1, 1, 1, 2, 11, 5))
	games = append(games, playedGame(2, 1, 1, 3, 11, 5))
	if IsRoundRobinComplete(teams, games) {
		t.Error("complete with 2 of 3 pairs, want false")
	}

	// A pending game between the missing pair does not count.
	games = append(games, pendingGame(3, 1, 2, 3))
	if IsRoundRobinComplete(teams, games) {
		t.Error("complete with pending final pair, want false")
	}

	games = append(games, playedGame(3, 1, 2, 3, 11, 5))
	if !IsRoundRobinComplete(teams, games) {
		t.Error("incomplete with all 3 pairs played, want true")
	}

	// Repeat games between an existing pair do not inflate the pair count.
	games = append(games, playedGame(4, 1, 3, 2, 11, 5))
	if !IsRoundRobinComplete(teams, games) {
		t.Error("repeat pairing broke completion, want true")
	}
}
