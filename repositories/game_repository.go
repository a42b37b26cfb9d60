package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/opencourt/courtplay/models"
)

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrGameTeamInvalid = errors.New("game references an unknown team or session")
)

type GameRepository interface {
	Create(ctx context.Context, exec SQLExecutor, game *models.Game) error
	GetByID(ctx context.Context, id int) (*models.Game, error)
	ListBySession(ctx context.Context, sessionID int, round *int, status *models.GameStatus) ([]*models.Game, error)
	CountUnfinishedBySession(ctx context.Context, sessionID int) (int, error)
	CompleteGame(ctx context.Context, exec SQLExecutor, id, scoreA, scoreB, winnerID int) error
}

type postgresGameRepository struct {
	db *sql.DB
}

func NewPostgresGameRepository(db *sql.DB) GameRepository {
	return &postgresGameRepository{db: db}
}

func (r *postgresGameRepository) Create(ctx context.Context, exec SQLExecutor, game *models.Game) error {
	executor := SQLExecutor(r.db)
	if exec != nil {
		executor = exec
	}
	query := `
		INSERT INTO games (session_id, team_a_id, team_b_id, court, round, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		game.SessionID,
		game.TeamAID,
		game.TeamBID,
		game.Court,
		game.Round,
		game.Status,
	).Scan(&game.ID, &game.CreatedAt)
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
		return ErrGameTeamInvalid
	}
	return err
}

func (r *postgresGameRepository) scanGame(rowScanner interface{ Scan(...interface{}) error }) (*models.Game, error) {
	var g models.Game
	err := rowScanner.Scan(
		&g.ID, &g.SessionID, &g.TeamAID, &g.TeamBID, &g.Court, &g.Round,
		&g.Status, &g.ScoreA, &g.ScoreB, &g.WinnerID, &g.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *postgresGameRepository) GetByID(ctx context.Context, id int) (*models.Game, error) {
	query := `
		SELECT id, session_id, team_a_id, team_b_id, court, round, status, score_a, score_b, winner_id, created_at
		FROM games
		WHERE id = $1`
	return r.scanGame(r.db.QueryRowContext(ctx, query, id))
}

// ListBySession returns games ordered by round then court, the order the
// rotation engine expects when reconstructing per-round history.
func (r *postgresGameRepository) ListBySession(ctx context.Context, sessionID int, round *int, status *models.GameStatus) ([]*models.Game, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, session_id, team_a_id, team_b_id, court, round, status, score_a, score_b, winner_id, created_at
		FROM games
		WHERE session_id = $1`)

	args := []interface{}{sessionID}
	placeholderIndex := 2

	if round != nil {
		queryBuilder.WriteString(" AND round = $")
		queryBuilder.WriteString(strconv.Itoa(placeholderIndex))
		args = append(args, *round)
		placeholderIndex++
	}
	if status != nil {
		queryBuilder.WriteString(" AND status = $")
		queryBuilder.WriteString(strconv.Itoa(placeholderIndex))
		args = append(args, *status)
		placeholderIndex++
	}
	queryBuilder.WriteString(" ORDER BY round ASC, court ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := make([]*models.Game, 0)
	for rows.Next() {
		g, errScan := r.scanGame(rows)
		if errScan != nil {
			return nil, errScan
		}
		games = append(games, g)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return games, nil
}

func (r *postgresGameRepository) CountUnfinishedBySession(ctx context.Context, sessionID int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM games
		WHERE session_id = $1 AND status IN ($2, $3)`

	var count int
	err := r.db.QueryRowContext(ctx, query, sessionID,
		models.GameStatusPending, models.GameStatusInProgress).Scan(&count)
	return count, err
}

// CompleteGame finalizes a game exactly once: the status guard keeps a
// completed game immutable even under concurrent result submissions.
func (r *postgresGameRepository) CompleteGame(ctx context.Context, exec SQLExecutor, id, scoreA, scoreB, winnerID int) error {
	executor := SQLExecutor(r.db)
	if exec != nil {
		executor = exec
	}
	query := `
		UPDATE games SET
			score_a = $1, score_b = $2, winner_id = $3, status = $4
		WHERE id = $5 AND status <> $4`

	result, err := executor.ExecContext(ctx, query,
		scoreA, scoreB, winnerID, models.GameStatusCompleted, id,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGameNotFound)
}
