package rotation

import (
	"sort"

	"github.com/opencourt/courtplay/models"
)

// CourtRosters is the balancer output for one court: two opposing rosters.
// Output order is stable ascending court index so downstream name and color
// assignment is deterministic for a given player ordering.
type CourtRosters struct {
	Court   int              `json:"court"`
	RosterA []*models.Player `json:"roster_a"`
	RosterB []*models.Player `json:"roster_b"`
}

// BalanceTeams partitions a checked-in player pool into one roster pair per
// court using a serpentine draft: players are taken in rating-descending
// order and dealt across all 2K rosters in snake order, which keeps the
// cumulative rating sums close.
//
// With useGroups set, a drafted player's kept-together groupmates are drafted
// onto the same roster as a block when the roster has capacity left; a group
// too large for the remaining capacity is split rather than rejected. Rosters
// are left partially filled when players run out; the caller decides whether
// uneven rosters are acceptable. Callers must guarantee at least two players
// per court before invoking.
func BalanceTeams(players []*models.Player, courtsNeeded, teamSize int, useGroups bool, groups []*models.Group) []CourtRosters {
	pool := make([]*models.Player, len(players))
	copy(pool, players)
	sort.SliceStable(pool, func(i, j int) bool { return pool[i].Rating > pool[j].Rating })

	groupOf := make(map[int]*models.Group)
	if useGroups {
		for _, g := range groups {
			for _, id := range g.PlayerIDs {
				if _, taken := groupOf[id]; !taken {
					groupOf[id] = g
				}
			}
		}
	}

	// 2K rosters in one snake pass: court 1..K side A, then court K..1 side B.
	rosters := make([][]*models.Player, courtsNeeded*2)
	type slot struct{ court, side int }
	order := make([]slot, 0, courtsNeeded*2)
	for c := 0; c < courtsNeeded; c++ {
		order = append(order, slot{court: c, side: 0})
	}
	for c := courtsNeeded - 1; c >= 0; c-- {
		order = append(order, slot{court: c, side: 1})
	}
	rosterAt := func(s slot) int { return s.court*2 + s.side }

	drafted := make(map[int]bool, len(pool))
	remaining := len(pool)
	if capacity := courtsNeeded * teamSize * 2; remaining > capacity {
		remaining = capacity
	}

	takeNext := func() *models.Player {
		for _, p := range pool {
			if !drafted[p.ID] {
				return p
			}
		}
		return nil
	}

	for pass := 0; remaining > 0; pass++ {
		progressed := false
		for i := range order {
			s := order[i]
			if pass%2 == 1 {
				s = order[len(order)-1-i]
			}
			idx := rosterAt(s)
			if len(rosters[idx]) >= teamSize || remaining == 0 {
				continue
			}

			p := takeNext()
			if p == nil {
				break
			}
			rosters[idx] = append(rosters[idx], p)
			drafted[p.ID] = true
			remaining--
			progressed = true

			g := groupOf[p.ID]
			if g == nil {
				continue
			}
			// Draft the rest of the group as a block onto the same roster,
			// but only if the whole remainder fits; otherwise the group splits.
			var mates []*models.Player
			for _, q := range pool {
				if !drafted[q.ID] && q.ID != p.ID && g.Contains(q.ID) {
					mates = append(mates, q)
				}
			}
			if len(mates) == 0 || len(rosters[idx])+len(mates) > teamSize {
				continue
			}
			for _, q := range mates {
				rosters[idx] = append(rosters[idx], q)
				drafted[q.ID] = true
				remaining--
			}
		}
		if !progressed {
			break
		}
	}

	out := make([]CourtRosters, courtsNeeded)
	for c := 0; c < courtsNeeded; c++ {
		out[c] = CourtRosters{
			Court:   c + 1,
			RosterA: rosters[c*2],
			RosterB: rosters[c*2+1],
		}
	}
	return out
}
