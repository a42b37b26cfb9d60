// Package rotation is the round generation and standings engine. Every
// function here is pure: callers hand in the team list and the full game log,
// and get freshly built output back. No state survives between calls, so all
// "memory" of prior rounds (bench queues, play history) is reconstructed from
// the completed games on every invocation.
package rotation

import (
	"fmt"

	"github.com/opencourt/courtplay/models"
)

// NextRoundParams carries everything a policy needs to schedule one round.
// Team list order matters: every policy breaks ties by input position, so two
// calls with identical inputs produce identical matchups.
type NextRoundParams struct {
	Teams      []*models.Team
	Games      []*models.Game
	Policy     models.RotationPolicy
	CourtCount int
	Round      int // 1-based round being generated
}

// Matchup pairs two teams on a court for one round.
type Matchup struct {
	TeamA *models.Team `json:"team_a"`
	TeamB *models.Team `json:"team_b"`
	Court int          `json:"court"`
}

// RoundResult is the engine output for one round: the court assignments plus
// the ordered bench. Matched and benched teams always partition the full
// team set, and courts are numbered 1..K with no gaps.
type RoundResult struct {
	Matchups []Matchup      `json:"matchups"`
	Benched  []*models.Team `json:"benched"`
}

// NextRound dispatches to the strategy selected by params.Policy.
//
// Callers are responsible for not generating a new round while games from the
// current round are still pending; the engine simply computes against
// whatever game list it is given. An empty matchup list is a valid result
// (for example, an exhausted round robin), not an error.
func NextRound(params NextRoundParams) (*RoundResult, error) {
	if len(params.Teams) < 2 {
		return nil, fmt.Errorf("rotation: not enough teams to schedule (found %d, min 2 required)", len(params.Teams))
	}
	if params.CourtCount < 1 {
		return nil, fmt.Errorf("rotation: court count must be positive, got %d", params.CourtCount)
	}
	if params.Round < 1 {
		return nil, fmt.Errorf("rotation: rounds are 1-based, got round %d", params.Round)
	}

	switch params.Policy {
	case models.PolicyKingOfCourt:
		return nextKingOfCourt(params), nil
	case models.PolicyRoundRobin:
		return nextRoundRobin(params), nil
	case models.PolicySwiss:
		return nextSwiss(params), nil
	case models.PolicyManual:
		return nextManual(params), nil
	case models.PolicySpeed:
		return nextSpeed(params), nil
	default:
		return nil, fmt.Errorf("rotation: unknown policy %q", params.Policy)
	}
}

// bootstrapRound lines teams up in input order: one pair per court until the
// courts run out, remainder benched. Every policy uses this for round 1.
func bootstrapRound(teams []*models.Team, courtCount int) *RoundResult {
	result := &RoundResult{Matchups: make([]Matchup, 0, courtCount)}

	i := 0
	for court := 1; court <= courtCount && i+1 < len(teams); court++ {
		result.Matchups = append(result.Matchups, Matchup{
			TeamA: teams[i],
			TeamB: teams[i+1],
			Court: court,
		})
		i += 2
	}
	result.Benched = append(result.Benched, teams[i:]...)
	return result
}
