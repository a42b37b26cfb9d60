package services

import "errors"

// Shared sentinel errors, mapped to HTTP statuses in the handlers package.
var (
	ErrNotFound         = errors.New("requested resource not found")
	ErrValidationFailed = errors.New("validation failed")

	// Session lifecycle
	ErrSessionNameRequired      = errors.New("session name is required")
	ErrSessionInvalidCourts     = errors.New("session court count must be positive")
	ErrSessionInvalidTeamSize   = errors.New("session team size must be positive")
	ErrSessionInvalidPolicy     = errors.New("unknown rotation policy")
	ErrSessionNotOpen           = errors.New("session check-in is not open")
	ErrSessionNotActive         = errors.New("session is not active")
	ErrSessionAlreadyStarted    = errors.New("session has already started")
	ErrSessionTeamsAlreadyBuilt = errors.New("teams have already been formed for this session")
	ErrSessionHasRounds         = errors.New("cannot reset teams after rounds have been generated")

	// Check-in and team formation
	ErrNotEnoughPlayers   = errors.New("not enough checked-in players for the requested courts")
	ErrAlreadyCheckedIn   = errors.New("player is already checked in to this session")
	ErrPlayerNameRequired = errors.New("player name is required")
	ErrPlayerNameConflict = errors.New("player name is already in use")
	ErrGroupNameRequired  = errors.New("group name is required")
	ErrGroupEmpty         = errors.New("group must contain at least one player")

	// Round generation and results
	ErrRoundInProgress     = errors.New("cannot generate a round while games are unfinished")
	ErrNoTeamsFormed       = errors.New("session has no teams yet")
	ErrGameAlreadyDone     = errors.New("game result has already been recorded")
	ErrGameInvalidScore    = errors.New("game scores must be non-negative and not tied")
	ErrGameSessionMismatch = errors.New("game does not belong to the given session")

	// Entity-specific not-found variants for clearer responses
	ErrSessionNotFound = errors.New("session not found")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrTeamNotFound    = errors.New("team not found")
	ErrGameNotFound    = errors.New("game not found")
)
