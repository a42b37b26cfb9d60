package rotation

// nextRoundRobin schedules pairs that have never met in a completed game.
// Pair generation order is stable (i ascending, then j > i over the input
// list) and each team plays at most once per round. Whether the round robin
// is finished is a separate question answered by IsRoundRobinComplete; an
// empty matchup list here only means no fresh pairing fit this round.
func nextRoundRobin(params NextRoundParams) *RoundResult {
	if params.Round == 1 {
		return bootstrapRound(params.Teams, params.CourtCount)
	}

	played := completedPairs(params.Games)
	scheduled := make(map[int]bool, len(params.Teams))

	result := &RoundResult{Matchups: make([]Matchup, 0, params.CourtCount)}

	for i := 0; i < len(params.Teams) && len(result.Matchups) < params.CourtCount; i++ {
		a := params.Teams[i]
		if scheduled[a.ID] {
			continue
		}
		for j := i + 1; j < len(params.Teams); j++ {
			b := params.Teams[j]
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

	for _, t := range params.Teams {
		if !scheduled[t.ID] {
			result.Benched = append(result.Benched, t)
		}
	}
	return result
}
