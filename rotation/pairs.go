package rotation

import "github.com/opencourt/courtplay/models"

// pairKey identifies an unordered team pair. Matchup history is symmetric:
// A vs B and B vs A are the same pairing.
type pairKey struct {
	low, high int
}

func newPairKey(a, b int) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{low: a, high: b}
}

// completedPairs collects every unordered pair with at least one completed
// game between them, across all rounds.
func completedPairs(games []*models.Game) map[pairKey]bool {
	pairs := make(map[pairKey]bool, len(games))
	for _, g := range games {
		if !g.Completed() {
			continue
		}
		pairs[newPairKey(g.TeamAID, g.TeamBID)] = true
	}
	return pairs
}

// gamesInRound filters the log down to one round, preserving input order.
func gamesInRound(games []*models.Game, round int) []*models.Game {
	var out []*models.Game
	for _, g := range games {
		if g.Round == round {
			out = append(out, g)
		}
	}
	return out
}

// teamIndex builds a lookup from team ID to the team entity, constructed once
// per call instead of re-scanning the list.
func teamIndex(teams []*models.Team) map[int]*models.Team {
	byID := make(map[int]*models.Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}
	return byID
}
