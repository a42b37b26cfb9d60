package models

import "time"

// Team is a session-scoped roster. Win/loss/point-differential numbers are
// never stored on the team row; they are recomputed from the game log by the
// rotation package so they cannot drift.
type Team struct {
	ID        int       `json:"id" db:"id"`
	SessionID int       `json:"session_id" db:"session_id"`
	Name      string    `json:"name" db:"name"`
	Color     string    `json:"color" db:"color"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Players []Player `json:"players,omitempty" db:"-"`
}

// AverageRating anchors rating math for the whole roster.
func (t *Team) AverageRating() float64 {
	if len(t.Players) == 0 {
		return DefaultRating
	}
	sum := 0
	for _, p := range t.Players {
		sum += p.Rating
	}
	return float64(sum) / float64(len(t.Players))
}
