package rotation

import "github.com/opencourt/courtplay/models"

// nextSwiss pairs teams with similar records. Teams are sorted by wins, then
// point differential (ties keep input order); each unscheduled team then
// scans forward for the nearest unscheduled opponent it has not yet played.
// The forward scan can skip past an adjacent-rank team that was already
// faced, producing non-adjacent pairings; that fallback is intended.
func nextSwiss(params NextRoundParams) *RoundResult {
	if params.Round == 1 {
		return bootstrapRound(params.Teams, params.CourtCount)
	}

	standings := ComputeStandings(params.Teams, params.Games)
	ranked := make([]*models.Team, len(standings))
	for i, s := range standings {
		ranked[i] = s.Team
	}

	played := completedPairs(params.Games)
	scheduled := make(map[int]bool, len(ranked))

	result := &RoundResult{Matchups: make([]Matchup, 0, params.CourtCount)}

	for i := 0; i < len(ranked) && len(result.Matchups) < params.CourtCount; i++ {
		a := ranked[i]
		if scheduled[a.ID] {
			continue
		}
		for j := i + 1; j < len(ranked); j++ {
			b := ranked[j]
			if scheduled[b.ID] || played[newPairKey(a.ID, b.ID)] {
				continue
			}
			result.Matchups = append(result.Matchups, Matchup{
				TeamA: a,
				TeamB: b,
				Court: len(result.Matchups) + 1,
			})
			scheduled[a.ID] = true
			scheduled[b.ID] = true
			break
		}
	}

	for _, t := range ranked {
		if !scheduled[t.ID] {
			result.Benched = append(result.Benched, t)
		}
	}
	return result
}
