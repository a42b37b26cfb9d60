package rotation

import (
	"math"

	"github.com/opencourt/courtplay/models"
)

const (
	// ratingK is the fixed ELO K-factor.
	ratingK = 32
	// ratingSpread is the rating gap giving one side 10-to-1 expected odds.
	ratingSpread = 400
)

// RatingDelta computes the post-game rating adjustment for one side, anchored
// on the two opposing roster averages rather than per-player pairs. The same
// delta is applied to every player on that side: added for the winners,
// subtracted (as the returned negative) for the losers. Equal-rated sides
// move by half of K.
func RatingDelta(teamAvg, opponentAvg float64, won bool) int {
	expected := 1 / (1 + math.Pow(10, (opponentAvg-teamAvg)/ratingSpread))
	actual := 0.0
	if won {
		actual = 1.0
	}
	return int(math.Round(ratingK * (actual - expected)))
}

// ShouldApplyRatings reports whether completed games under the given policy
// move player ratings. Speed rounds are too short and too uneven to count.
func ShouldApplyRatings(policy models.RotationPolicy) bool {
	return policy != models.PolicySpeed
}
