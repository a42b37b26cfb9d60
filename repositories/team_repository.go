package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/opencourt/courtplay/models"
)

var ErrTeamNotFound = errors.New("team not found")

type TeamRepository interface {
	CreateWithPlayers(ctx context.Context, exec SQLExecutor, team *models.Team, playerIDs []int) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	ListBySession(ctx context.Context, sessionID int) ([]*models.Team, error)
	DeleteBySession(ctx context.Context, exec SQLExecutor, sessionID int) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) CreateWithPlayers(ctx context.Context, exec SQLExecutor, team *models.Team, playerIDs []int) error {
	executor := SQLExecutor(r.db)
	if exec != nil {
		executor = exec
	}

	query := `
		INSERT INTO teams (session_id, name, color)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	if err := executor.QueryRowContext(ctx, query,
		team.SessionID, team.Name, team.Color,
	).Scan(&team.ID, &team.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert team %q: %w", team.Name, err)
	}

	for _, playerID := range playerIDs {
		if _, err := executor.ExecContext(ctx,
			`INSERT INTO team_players (team_id, player_id) VALUES ($1, $2)`,
			team.ID, playerID,
		); err != nil {
			return fmt.Errorf("failed to add player %d to team %d: %w", playerID, team.ID, err)
		}
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `
		SELECT id, session_id, name, color, created_at
		FROM teams
		WHERE id = $1`

	var t models.Team
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.SessionID, &t.Name, &t.Color, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	if err := r.loadPlayers(ctx, map[int]*models.Team{t.ID: &t}); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListBySession returns the session's teams with rosters loaded, in creation
// order. Creation order matters downstream: the rotation engine breaks ties
// by team list position.
func (r *postgresTeamRepository) ListBySession(ctx context.Context, sessionID int) ([]*models.Team, error) {
	query := `
		SELECT id, session_id, name, color, created_at
		FROM teams
		WHERE session_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	byID := make(map[int]*models.Team)
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.SessionID, &t.Name, &t.Color, &t.CreatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, &t)
		byID[t.ID] = &t
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadPlayers(ctx, byID); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *postgresTeamRepository) loadPlayers(ctx context.Context, teams map[int]*models.Team) error {
	if len(teams) == 0 {
		return nil
	}
	ids := make([]int, 0, len(teams))
	for id := range teams {
		ids = append(ids, id)
	}

	query := `
		SELECT tp.team_id, p.id, p.name, p.rating, p.games_played, p.wins, p.win_streak, p.guest, p.created_at
		FROM team_players tp
		JOIN players p ON p.id = tp.player_id
		WHERE tp.team_id = ANY($1)
		ORDER BY tp.team_id ASC, p.id ASC`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var teamID int
		var p models.Player
		if err := rows.Scan(&teamID, &p.ID, &p.Name, &p.Rating, &p.GamesPlayed,
			&p.Wins, &p.WinStreak, &p.Guest, &p.CreatedAt); err != nil {
			return err
		}
		if t, ok := teams[teamID]; ok {
			t.Players = append(t.Players, p)
		}
	}
	return rows.Err()
}

func (r *postgresTeamRepository) DeleteBySession(ctx context.Context, exec SQLExecutor, sessionID int) error {
	executor := SQLExecutor(r.db)
	if exec != nil {
		executor = exec
	}
	_, err := executor.ExecContext(ctx, `DELETE FROM teams WHERE session_id = $1`, sessionID)
	return err
}
