package rotation

import (
	"sort"

	"github.com/opencourt/courtplay/models"
)

// Standing is one team's derived record. It is recomputed from the game log
// on every call rather than incrementally updated, so repeated calls against
// a growing log stay consistent.
type Standing struct {
	Team        *models.Team `json:"team"`
	Wins        int          `json:"wins"`
	Losses      int          `json:"losses"`
	PointDiff   int          `json:"point_diff"`
	GamesPlayed int          `json:"games_played"`
}

// ComputeStandings derives win/loss/point-differential per team from the
// completed games and sorts descending by wins, then point differential.
// Beyond that, ties keep the input team order.
func ComputeStandings(teams []*models.Team, games []*models.Game) []Standing {
	byID := make(map[int]*Standing, len(teams))
	standings := make([]Standing, len(teams))
	for i, t := range teams {
		standings[i] = Standing{Team: t}
		byID[t.ID] = &standings[i]
	}

	for _, g := range games {
		if !g.Completed() || g.WinnerID == nil || g.ScoreA == nil || g.ScoreB == nil {
			continue
		}
		diff := *g.ScoreA - *g.ScoreB
		if a, ok := byID[g.TeamAID]; ok {
			a.GamesPlayed++
			a.PointDiff += diff
			if *g.WinnerID == g.TeamAID {
				a.Wins++
			} else {
				a.Losses++
			}
		}
		if b, ok := byID[g.TeamBID]; ok {
			b.GamesPlayed++
			b.PointDiff -= diff
			if *g.WinnerID == g.TeamBID {
				b.Wins++
			} else {
				b.Losses++
			}
		}
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Wins != standings[j].Wins {
			return standings[i].Wins > standings[j].Wins
		}
		return standings[i].PointDiff > standings[j].PointDiff
	})
	return standings
}

// IsRoundRobinComplete reports whether every unordered team pair has at least
// one completed game. At-least-once is deliberate: the scheduler never
// re-pairs, but manually recorded extra games must not break termination.
func IsRoundRobinComplete(teams []*models.Team, games []*models.Game) bool {
	n := len(teams)
	return len(completedPairs(games)) == n*(n-1)/2
}
