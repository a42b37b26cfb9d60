package rotation

import (
	"testing"

	"github.com/opencourt/courtplay/models"
)

func TestRatingDelta(t *testing.T) {
	tests := []struct {
		name        string
		teamAvg     float64
		opponentAvg float64
		won         bool
		want        int
	}{
		{"equal ratings win", 1500, 1500, true, 16},
		{"equal ratings loss", 1500, 1500, false, -16},
		{"upset win over stronger side", 1500, 1900, true, 29},
		{"expected win over weaker side", 1500, 1100, true, 3},
		{"expected loss to stronger side", 1500, 1900, false, -3},
		{"upset loss to weaker side", 1500, 1100, false, -29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RatingDelta(tt.teamAvg, tt.opponentAvg, tt.won); got != tt.want {
				t.Errorf("RatingDelta(%.0f, %.0f, %v) = %d, want %d",
					tt.teamAvg, tt.opponentAvg, tt.won, got, tt.want)
			}
		})
	}
}

func TestRatingDeltaRewardsUpsets(t *testing.T) {
	if RatingDelta(1500, 1900, true) <= RatingDelta(1500, 1100, true) {
		t.Error("beating a stronger opponent should gain more than beating a weaker one")
	}
}

func TestRatingDeltaIsZeroSum(t *testing.T) {
	pairs := [][2]float64{
		{1500, 1500},
		{1500, 1900},
		{1234, 1687},
		{2000, 1300},
	}
	for _, p := range pairs {
		winner := RatingDelta(p[0], p[1], true)
		loser := RatingDelta(p[1], p[0], false)
		if winner != -loser {
			t.Errorf("deltas for %v not zero-sum: winner %+d, loser %+d", p, winner, loser)
		}
	}
}

func TestShouldApplyRatings(t *testing.T) {
	apply := map[models.RotationPolicy]bool{
		models.PolicyKingOfCourt: true,
		models.PolicyRoundRobin:  true,
		models.PolicySwiss:       true,
		models.PolicyManual:      true,
		models.PolicySpeed:       false,
	}
	for policy, want := range apply {
		if got := ShouldApplyRatings(policy); got != want {
			t.Errorf("ShouldApplyRatings(%s) = %v, want %v", policy, got, want)
		}
	}
}
