package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/opencourt/courtplay/models"
	"github.com/opencourt/courtplay/repositories"
	"github.com/opencourt/courtplay/rotation"
)

// RoundOutput is the API-facing shape of one generated (or previewed) round.
type RoundOutput struct {
	Round    int                `json:"round"`
	Matchups []rotation.Matchup `json:"matchups"`
	Benched  []*models.Team     `json:"benched"`
	Games    []*models.Game     `json:"games,omitempty"`
}

type RecordResultInput struct {
	ScoreA int `json:"score_a"`
	ScoreB int `json:"score_b"`
}

type RoundService interface {
	GenerateNextRound(ctx context.Context, sessionID int) (*RoundOutput, error)
	PreviewNextRound(ctx context.Context, sessionID int) (*RoundOutput, error)
	RecordResult(ctx context.Context, sessionID, gameID int, input RecordResultInput) (*models.Game, error)
	Standings(ctx context.Context, sessionID int) ([]rotation.Standing, error)
	RoundRobinComplete(ctx context.Context, sessionID int) (bool, error)
}

type roundService struct {
	db          *sql.DB
	sessionRepo repositories.SessionRepository
	playerRepo  repositories.PlayerRepository
	teamRepo    repositories.TeamRepository
	gameRepo    repositories.GameRepository
	hub         *rotation.Hub
	logger      *slog.Logger
}

func NewRoundService(
	db *sql.DB,
	sessionRepo repositories.SessionRepository,
	playerRepo repositories.PlayerRepository,
	teamRepo repositories.TeamRepository,
	gameRepo repositories.GameRepository,
	hub *rotation.Hub,
	logger *slog.Logger,
) RoundService {
	return &roundService{
		db:          db,
		sessionRepo: sessionRepo,
		playerRepo:  playerRepo,
		teamRepo:    teamRepo,
		gameRepo:    gameRepo,
		hub:         hub,
		logger:      logger,
	}
}

// sessionState bundles everything the rotation engine needs for one call.
type sessionState struct {
	session *models.Session
	teams   []*models.Team
	games   []*models.Game
}

func (s *roundService) loadState(ctx context.Context, sessionID int) (*sessionState, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	state := &sessionState{session: session}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		teams, err := s.teamRepo.ListBySession(gCtx, sessionID)
		if err != nil {
			return fmt.Errorf("failed to list teams for session %d: %w", sessionID, err)
		}
		state.teams = teams
		return nil
	})

	g.Go(func() error {
		games, err := s.gameRepo.ListBySession(gCtx, sessionID, nil, nil)
		if err != nil {
			return fmt.Errorf("failed to list games for session %d: %w", sessionID, err)
		}
		state.games = games
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return state, nil
}

// computeNextRound runs the engine against the current game log. Preview and
// generation both go through here, so a preview always shows exactly what
// generation would persist.
func (s *roundService) computeNextRound(ctx context.Context, sessionID int) (*sessionState, *rotation.RoundResult, int, error) {
	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return nil, nil, 0, err
	}
	if state.session.Status != models.SessionStatusActive {
		return nil, nil, 0, ErrSessionNotActive
	}
	if len(state.teams) == 0 {
		return nil, nil, 0, ErrNoTeamsFormed
	}

	round := state.session.CurrentRound + 1
	result, err := rotation.NextRound(rotation.NextRoundParams{
		Teams:      state.teams,
		Games:      state.games,
		Policy:     state.session.Policy,
		CourtCount: state.session.CourtCount,
		Round:      round,
	})
	if err != nil {
		return nil, nil, 0, fmt.Errorf("rotation failed for session %d: %w", sessionID, err)
	}
	return state, result, round, nil
}

func (s *roundService) GenerateNextRound(ctx context.Context, sessionID int) (*RoundOutput, error) {
	unfinished, err := s.gameRepo.CountUnfinishedBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if unfinished > 0 {
		return nil, ErrRoundInProgress
	}

	_, result, round, err := s.computeNextRound(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin round transaction: %w", err)
	}
	defer tx.Rollback()

	games := make([]*models.Game, 0, len(result.Matchups))
	for _, m := range result.Matchups {
		game := &models.Game{
			SessionID: sessionID,
			TeamAID:   m.TeamA.ID,
			TeamBID:   m.TeamB.ID,
			Court:     m.Court,
			Round:     round,
			Status:    models.GameStatusPending,
		}
		if err := s.gameRepo.Create(ctx, tx, game); err != nil {
			return nil, err
		}
		games = append(games, game)
	}

	if err := s.sessionRepo.UpdateCurrentRound(ctx, tx, sessionID, round); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit round %d: %w", round, err)
	}

	output := &RoundOutput{
		Round:    round,
		Matchups: result.Matchups,
		Benched:  result.Benched,
		Games:    games,
	}
	s.logger.Info("round generated",
		slog.Int("session_id", sessionID),
		slog.Int("round", round),
		slog.Int("games", len(games)),
		slog.Int("benched", len(result.Benched)))
	s.hub.BroadcastToRoom(sessionRoom(sessionID), rotation.EventRoundGenerated, output)
	return output, nil
}

func (s *roundService) PreviewNextRound(ctx context.Context, sessionID int) (*RoundOutput, error) {
	_, result, round, err := s.computeNextRound(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &RoundOutput{
		Round:    round,
		Matchups: result.Matchups,
		Benched:  result.Benched,
	}, nil
}

// RecordResult finalizes one game and, for rated policies, shifts every
// participant's rating by the team-average delta. All writes share one
// transaction so a crash can never leave a completed game with half-applied
// ratings.
func (s *roundService) RecordResult(ctx context.Context, sessionID, gameID int, input RecordResultInput) (*models.Game, error) {
	if input.ScoreA < 0 || input.ScoreB < 0 || input.ScoreA == input.ScoreB {
		return nil, ErrGameInvalidScore
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	if game.SessionID != sessionID {
		return nil, ErrGameSessionMismatch
	}
	if game.Completed() {
		return nil, ErrGameAlreadyDone
	}

	winnerID := game.TeamAID
	if input.ScoreB > input.ScoreA {
		winnerID = game.TeamBID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin result transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.gameRepo.CompleteGame(ctx, tx, gameID, input.ScoreA, input.ScoreB, winnerID); err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameAlreadyDone
		}
		return nil, err
	}

	if rotation.ShouldApplyRatings(session.Policy) {
		if err := s.applyRatings(ctx, tx, game, winnerID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit result for game %d: %w", gameID, err)
	}

	game.Status = models.GameStatusCompleted
	game.ScoreA = &input.ScoreA
	game.ScoreB = &input.ScoreB
	game.WinnerID = &winnerID

	s.logger.Info("game completed",
		slog.Int("session_id", sessionID),
		slog.Int("game_id", gameID),
		slog.Int("winner_team_id", winnerID))
	s.hub.BroadcastToRoom(sessionRoom(sessionID), rotation.EventGameCompleted, game)
	return game, nil
}

func (s *roundService) applyRatings(ctx context.Context, tx *sql.Tx, game *models.Game, winnerID int) error {
	teamA, err := s.teamRepo.GetByID(ctx, game.TeamAID)
	if err != nil {
		return err
	}
	teamB, err := s.teamRepo.GetByID(ctx, game.TeamBID)
	if err != nil {
		return err
	}

	avgA := teamA.AverageRating()
	avgB := teamB.AverageRating()

	for _, pair := range []struct {
		team *models.Team
		avg  float64
		opp  float64
	}{
		{teamA, avgA, avgB},
		{teamB, avgB, avgA},
	} {
		won := pair.team.ID == winnerID
		delta := rotation.RatingDelta(pair.avg, pair.opp, won)
		for i := range pair.team.Players {
			p := &pair.team.Players[i]
			p.Rating += delta
			p.GamesPlayed++
			if won {
				p.Wins++
				p.WinStreak++
			} else {
				p.WinStreak = 0
			}
			if err := s.playerRepo.UpdateResultStats(ctx, tx, p); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *roundService) Standings(ctx context.Context, sessionID int) ([]rotation.Standing, error) {
	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return rotation.ComputeStandings(state.teams, state.games), nil
}

func (s *roundService) RoundRobinComplete(ctx context.Context, sessionID int) (bool, error) {
	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return rotation.IsRoundRobinComplete(state.teams, state.games), nil
}
