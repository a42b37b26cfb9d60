package rotation

import (
	"testing"

	"github.com/opencourt/courtplay/models"
)

func TestSpeedChallengerRotation(t *testing.T) {
	teams := testTeams(6)

	res, err := NextRound(NextRoundParams{
		Teams:      teams,
		Policy:     models.PolicySpeed,
		CourtCount: 2,
		Round:      1,
	})
	if err != nil {
		t.Fatalf("round 1: %v", err)
	}
	checkRoundInvariants(t, teams, res)
	if got := matchupIDs(res); len(got) != 2 || got[0] != [2]int{1, 2} || got[1] != [2]int{3, 4} {
		t.Fatalf("round 1 matchups = %v, want [[1 2] [3 4]]", got)
	}
	if bench := benchedIDs(res); len(bench) != 2 || bench[0] != 5 || bench[1] != 6 {
		t.Fatalf("round 1 benched = %v, want [5 6]", bench)
	}

	// Teams 1 and 3 win their courts.
	games := []*models.Game{
		playedGame(1, 1, 1, 2, 15, 10),
		playedGame(1, 2, 3, 4, 15, 12),
	}

	res, err = NextRound(NextRoundParams{
		Teams:      teams,
		Games:      games,
		Policy:     models.PolicySpeed,
		CourtCount: 2,
		Round:      2,
	})
	if err != nil {
		t.Fatalf("round 2: %v", err)
	}
	checkRoundInvariants(t, teams, res)

	// Winners defend their courts against the two waiting teams, consumed
	// from the front of the queue.
	if got := matchupIDs(res); len(got) != 2 || got[0] != [2]int{1, 5} || got[1] != [2]int{3, 6} {
		t.Fatalf("round 2 matchups = %v, want [[1 5] [3 6]]", got)
	}
	// Losers join the back of the waiting list, in court order.
	if bench := benchedIDs(res); len(bench) != 2 || bench[0] != 2 || bench[1] != 4 {
		t.Fatalf("round 2 benched = %v, want losers at the back [2 4]", bench)
	}
}

func TestSpeedSurplusWinnersPairOff(t *testing.T) {
	teams := testTeams(4)
	games := []*models.Game{
		playedGame(1, 1, 1, 2, 15, 8),
		playedGame(1, 2, 3, 4, 15, 13),
	}

	res, err := NextRound(NextRoundParams{
		Teams:      teams,
		Games:      games,
		Policy:     models.PolicySpeed,
		CourtCount: 2,
		Round:      2,
	})
	if err != nil {
		t.Fatalf("NextRound: %v", err)
	}
	checkRoundInvariants(t, teams, res)

	// Nobody was waiting, so the two winners play each other.
	if got := matchupIDs(res); len(got) != 1 || got[0] != [2]int{1, 3} {
		t.Fatalf("matchups = %v, want surplus winners paired [[1 3]]", got)
	}
	if bench := benchedIDs(res); len(bench) != 2 || bench[0] != 2 || bench[1] != 4 {
		t.Fatalf("benched = %v, want [2 4]", bench)
	}
}

func TestSpeedOddSurplusWinnerJumpsQueue(t *testing.T) {
	teams := testTeams(6)
	games := []*models.Game{
		playedGame(1, 1, 1, 2, 15, 5),
		playedGame(1, 2, 3, 4, 15, 7),
		playedGame(1, 3, 5, 6, 15, 9),
	}

	res, err := NextRound(NextRoundParams{
		Teams:      teams,
		Games:      games,
		Policy:     models.PolicySpeed,
		CourtCount: 3,
		Round:      2,
	})
	if err != nil {
		t.Fatalf("NextRound: %v", err)
	}
	checkRoundInvariants(t, teams, res)

	// Three winners, empty queue: two pair off, the odd one out goes to the
	// front of the waiting list ahead of the losers.
	if got := matchupIDs(res); len(got) != 1 || got[0] != [2]int{1, 3} {
		t.Fatalf("matchups = %v, want [[1 3]]", got)
	}
	want := []int{5, 2, 4, 6}
	bench := benchedIDs(res)
	if len(bench) != len(want) {
		t.Fatalf("benched = %v, want %v", bench, want)
	}
	for i := range want {
		if bench[i] != want[i] {
			t.Errorf("benched[%d] = %d, want %d", i, bench[i], want[i])
		}
	}
}

func TestSpeedExtraWaitingTeamsStayQueued(t *testing.T) {
	teams := testTeams(8)
	// One court: 1 beat 2, six teams waiting.
	games := []*models.Game{playedGame(1, 1, 1, 2, 15, 11)}

	res, err := NextRound(NextRoundParams{
		Teams:      teams,
		Games:      games,
		Policy:     models.PolicySpeed,
		CourtCount: 1,
		Round:      2,
	})
	if err != nil {
		t.Fatalf("NextRound: %v", err)
	}
	checkRoundInvariants(t, teams, res)

	if got := matchupIDs(res); len(got) != 1 || got[0] != [2]int{1, 3} {
		t.Fatalf("matchups = %v, want [[1 3]]", got)
	}
	// Unused waiting teams keep their relative order; the loser is appended
	// behind them.
	want := []int{4, 5, 6, 7, 8, 2}
	bench := benchedIDs(res)
	if len(bench) != len(want) {
		t.Fatalf("benched = %v, want %v", bench, want)
	}
	for i := range want {
		if bench[i] != want[i] {
			t.Errorf("benched[%d] = %d, want %d", i, bench[i], want[i])
		}
	}
}

func TestSpeedBenchesTeamsFromUnfinishedGames(t *testing.T) {
	teams := testTeams(6)
	games := []*models.Game{
		playedGame(1, 1, 1, 2, 11, 5),
		pendingGame(1, 2, 3, 4),
	}

	res, err := NextRound(NextRoundParams{
		Teams:      teams,
		Games:      games,
		Policy:     models.PolicySpeed,
		CourtCount: 2,
		Round:      2,
	})
	if err != nil {
		t.Fatalf("NextRound: %v", err)
	}
	checkRoundInvariants(t, teams, res)

	if got := matchupIDs(res); len(got) != 1 || got[0] != [2]int{1, 5} {
		t.Fatalf("matchups = %v, want [[1 5]]", got)
	}
	// Remaining queue, then the loser, then the teams whose game never
	// finished.
	want := []int{6, 2, 3, 4}
	bench := benchedIDs(res)
	if len(bench) != len(want) {
		t.Fatalf("benched = %v, want %v", bench, want)
	}
	for i := range want {
		if bench[i] != want[i] {
			t.Fatalf("benched = %v, want %v", bench, want)
		}
	}
}
