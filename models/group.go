package models

import "time"

// Group is a kept-together affinity set: the balancer places its members on
// the same roster on a best-effort basis.
type Group struct {
	ID        int       `json:"id" db:"id"`
	SessionID int       `json:"session_id" db:"session_id"`
	Name      string    `json:"name" db:"name"`
	PlayerIDs []int     `json:"player_ids" db:"-"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Contains reports whether the group includes the given player.
func (g *Group) Contains(playerID int) bool {
	for _, id := range g.PlayerIDs {
		if id == playerID {
			return true
		}
	}
	return false
}
