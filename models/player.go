package models

import "time"

// DefaultRating is assigned to new and guest players until results move it.
const DefaultRating = 1500

type Player struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Rating      int       `json:"rating" db:"rating"`
	GamesPlayed int       `json:"games_played" db:"games_played"`
	Wins        int       `json:"wins" db:"wins"`
	WinStreak   int       `json:"win_streak" db:"win_streak"`
	Guest       bool      `json:"guest" db:"guest"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
