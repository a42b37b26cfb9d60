package rotation

import (
	"sort"

	"github.com/opencourt/courtplay/models"
)

// nextSpeed is a fast-turnaround challenger rotation: winners defend their
// court, a FIFO waiting queue supplies one challenger per winner, and losers
// rejoin the back of the queue so they sit out a full rotation. Ratings are
// never applied under this policy (see ShouldApplyRatings).
//
// When winners outnumber challengers the surplus winners play each other,
// and a single odd winner out is pushed to the front of the queue so it
// re-enters soonest. Both asymmetries reward winning on purpose.
func nextSpeed(params NextRoundParams) *RoundResult {
	prior := gamesInRound(params.Games, params.Round-1)
	if params.Round == 1 || len(prior) == 0 {
		return bootstrapRound(params.Teams, params.CourtCount)
	}

	// Winners keep their court, so prior games are walked court-ascending.
	sort.SliceStable(prior, func(i, j int) bool { return prior[i].Court < prior[j].Court })

	byID := teamIndex(params.Teams)
	played := make(map[int]bool, len(prior)*2)

	type courtWinner struct {
		team  *models.Team
		court int
	}
	var winners []courtWinner
	var losers, stalled []*models.Team

	for _, g := range prior {
		played[g.TeamAID] = true
		played[g.TeamBID] = true
		if !g.Completed() || g.WinnerID == nil {
			// Still mid-game; both teams go to the bench rather than
			// disappearing from the round.
			for _, id := range []int{g.TeamAID, g.TeamBID} {
				if t, ok := byID[id]; ok {
					stalled = append(stalled, t)
				}
			}
			continue
		}
		loserID := g.TeamAID
		if *g.WinnerID == g.TeamAID {
			loserID = g.TeamBID
		}
		if w, ok := byID[*g.WinnerID]; ok {
			winners = append(winners, courtWinner{team: w, court: g.Court})
		}
		if l, ok := byID[loserID]; ok {
			losers = append(losers, l)
		}
	}

	// Teams that sat out the prior round form the queue, in team-list order.
	var queue []*models.Team
	for _, t := range params.Teams {
		if !played[t.ID] {
			queue = append(queue, t)
		}
	}

	result := &RoundResult{Matchups: make([]Matchup, 0, params.CourtCount)}

	var surplus []courtWinner
	for _, w := range winners {
		if len(queue) == 0 {
			surplus = append(surplus, w)
			continue
		}
		challenger := queue[0]
		queue = queue[1:]
		result.Matchups = append(result.Matchups, Matchup{TeamA: w.team, TeamB: challenger})
	}

	// Challengers ran out: surplus winners face each other to keep courts full.
	for i := 0; i+1 < len(surplus); i += 2 {
		result.Matchups = append(result.Matchups, Matchup{TeamA: surplus[i].team, TeamB: surplus[i+1].team})
	}
	if len(surplus)%2 == 1 {
		leftover := surplus[len(surplus)-1].team
		queue = append([]*models.Team{leftover}, queue...)
	}

	if len(result.Matchups) > params.CourtCount {
		for _, m := range result.Matchups[params.CourtCount:] {
			queue = append(queue, m.TeamA, m.TeamB)
		}
		result.Matchups = result.Matchups[:params.CourtCount]
	}
	for i := range result.Matchups {
		result.Matchups[i].Court = i + 1
	}

	result.Benched = append(result.Benched, queue...)
	result.Benched = append(result.Benched, losers...)
	result.Benched = append(result.Benched, stalled...)
	return result
}
