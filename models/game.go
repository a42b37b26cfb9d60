package models

import "time"

type GameStatus string

const (
	GameStatusPending    GameStatus = "pending"
	GameStatusInProgress GameStatus = "in_progress"
	GameStatusCompleted  GameStatus = "completed"
)

// Game references exactly two teams on one court in one round. Scores and the
// winner are only present once the game is completed; a completed game is
// immutable.
type Game struct {
	ID        int        `json:"id" db:"id"`
	SessionID int        `json:"session_id" db:"session_id"`
	TeamAID   int        `json:"team_a_id" db:"team_a_id"`
	TeamBID   int        `json:"team_b_id" db:"team_b_id"`
	Court     int        `json:"court" db:"court"`
	Round     int        `json:"round" db:"round"`
	Status    GameStatus `json:"status" db:"status"`
	ScoreA    *int       `json:"score_a,omitempty" db:"score_a"`
	ScoreB    *int       `json:"score_b,omitempty" db:"score_b"`
	WinnerID  *int       `json:"winner_id,omitempty" db:"winner_id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// Completed reports whether the game carries a final result.
func (g *Game) Completed() bool {
	return g.Status == GameStatusCompleted
}
