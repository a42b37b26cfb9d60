package rotation

import "github.com/opencourt/courtplay/models"

// nextKingOfCourt keeps winners in the active pool and rotates losers through
// the bench. The active pool for round R is the round R-1 winners followed by
// the teams that were benched in R-1; winners going first is a deliberate
// tie-break that keeps incumbents on court. The new bench is the round's
// losers first, then any active-pool overflow beyond the court capacity.
func nextKingOfCourt(params NextRoundParams) *RoundResult {
	if params.Round == 1 {
		return bootstrapRound(params.Teams, params.CourtCount)
	}

	byID := teamIndex(params.Teams)
	prior := gamesInRound(params.Games, params.Round-1)

	var winners, losers, stalled []*models.Team
	played := make(map[int]bool, len(prior)*2)
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
			winners = append(winners, w)
		}
		if l, ok := byID[loserID]; ok {
			losers = append(losers, l)
		}
	}

	// Previously benched teams rejoin behind the winners, in team-list order.
	active := winners
	for _, t := range params.Teams {
		if !played[t.ID] {
			active = append(active, t)
		}
	}

	result := &RoundResult{Matchups: make([]Matchup, 0, params.CourtCount)}
	i := 0
	for court := 1; court <= params.CourtCount && i+1 < len(active); court++ {
		result.Matchups = append(result.Matchups, Matchup{
			TeamA: active[i],
			TeamB: active[i+1],
			Court: court,
		})
		i += 2
	}

	result.Benched = append(result.Benched, losers...)
	result.Benched = append(result.Benched, active[i:]...)
	result.Benched = append(result.Benched, stalled...)
	return result
}
