package models

import "time"

// SessionStatus mirrors the session lifecycle ENUM in the database.
type SessionStatus string

const (
	SessionStatusOpen      SessionStatus = "open"      // check-in running
	SessionStatusActive    SessionStatus = "active"    // teams formed, rounds in play
	SessionStatusCompleted SessionStatus = "completed"
)

// RotationPolicy selects the algorithm used to re-pair teams between rounds.
type RotationPolicy string

const (
	PolicyKingOfCourt RotationPolicy = "king_of_court"
	PolicyRoundRobin  RotationPolicy = "round_robin"
	PolicySwiss       RotationPolicy = "swiss"
	PolicyManual      RotationPolicy = "manual"
	PolicySpeed       RotationPolicy = "speed"
)

// Valid reports whether p names a known rotation policy.
func (p RotationPolicy) Valid() bool {
	switch p {
	case PolicyKingOfCourt, PolicyRoundRobin, PolicySwiss, PolicyManual, PolicySpeed:
		return true
	}
	return false
}

// Session is a single real-world event: check-ins, a fixed set of courts, and
// rounds of play governed by one rotation policy.
type Session struct {
	ID           int            `json:"id" db:"id"`
	Name         string         `json:"name" db:"name"`
	Date         time.Time      `json:"date" db:"date"`
	CourtCount   int            `json:"court_count" db:"court_count"`
	TeamSize     int            `json:"team_size" db:"team_size"`
	Policy       RotationPolicy `json:"policy" db:"policy"`
	Status       SessionStatus  `json:"status" db:"status"`
	CurrentRound int            `json:"current_round" db:"current_round"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`

	Teams []Team `json:"teams,omitempty" db:"-"`
	Games []Game `json:"games,omitempty" db:"-"`
}
