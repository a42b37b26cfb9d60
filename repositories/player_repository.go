package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/opencourt/courtplay/models"
)

var (
	ErrPlayerNotFound     = errors.New("player not found")
	ErrPlayerNameConflict = errors.New("player name is already in use")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	List(ctx context.Context) ([]*models.Player, error)
	ListByIDs(ctx context.Context, ids []int) ([]*models.Player, error)
	UpdateResultStats(ctx context.Context, exec SQLExecutor, player *models.Player) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	if player.Rating == 0 {
		player.Rating = models.DefaultRating
	}
	query := `
		INSERT INTO players (name, rating, games_played, wins, win_streak, guest)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		player.Name,
		player.Rating,
		player.GamesPlayed,
		player.Wins,
		player.WinStreak,
		player.Guest,
	).Scan(&player.ID, &player.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return ErrPlayerNameConflict
	}
	return err
}

func (r *postgresPlayerRepository) scanPlayer(rowScanner interface{ Scan(...interface{}) error }) (*models.Player, error) {
	var p models.Player
	err := rowScanner.Scan(
		&p.ID, &p.Name, &p.Rating, &p.GamesPlayed, &p.Wins, &p.WinStreak, &p.Guest, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `
		SELECT id, name, rating, games_played, wins, win_streak, guest, created_at
		FROM players
		WHERE id = $1`
	return r.scanPlayer(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresPlayerRepository) List(ctx context.Context) ([]*models.Player, error) {
	query := `
		SELECT id, name, rating, games_played, wins, win_streak, guest, created_at
		FROM players
		ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collectPlayers(rows)
}

func (r *postgresPlayerRepository) ListByIDs(ctx context.Context, ids []int) ([]*models.Player, error) {
	if len(ids) == 0 {
		return []*models.Player{}, nil
	}
	query := `
		SELECT id, name, rating, games_played, wins, win_streak, guest, created_at
		FROM players
		WHERE id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collectPlayers(rows)
}

func (r *postgresPlayerRepository) collectPlayers(rows *sql.Rows) ([]*models.Player, error) {
	players := make([]*models.Player, 0)
	for rows.Next() {
		p, err := r.scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

// UpdateResultStats persists the rating and streak fields moved by a game
// result. It participates in the result-recording transaction via exec.
func (r *postgresPlayerRepository) UpdateResultStats(ctx context.Context, exec SQLExecutor, player *models.Player) error {
	executor := SQLExecutor(r.db)
	if exec != nil {
		executor = exec
	}
	query := `
		UPDATE players SET
			rating = $1, games_played = $2, wins = $3, win_streak = $4
		WHERE id = $5`
	result, err := executor.ExecContext(ctx, query,
		player.Rating, player.GamesPlayed, player.Wins, player.WinStreak, player.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}
