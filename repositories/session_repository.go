package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/opencourt/courtplay/models"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrCheckInConflict      = errors.New("player is already checked in to this session")
	ErrCheckInPlayerInvalid = errors.New("check-in references an unknown player or session")
)

type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id int) (*models.Session, error)
	List(ctx context.Context) ([]*models.Session, error)
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.SessionStatus) error
	UpdateCurrentRound(ctx context.Context, exec SQLExecutor, id, round int) error
	CheckInPlayer(ctx context.Context, sessionID, playerID int) error
	ListCheckedInPlayerIDs(ctx context.Context, sessionID int) ([]int, error)
}

type postgresSessionRepository struct {
	db *sql.DB
}

func NewPostgresSessionRepository(db *sql.DB) SessionRepository {
	return &postgresSessionRepository{db: db}
}

func (r *postgresSessionRepository) Create(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (name, date, court_count, team_size, policy, status, current_round)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		session.Name,
		session.Date,
		session.CourtCount,
		session.TeamSize,
		session.Policy,
		session.Status,
		session.CurrentRound,
	).Scan(&session.ID, &session.CreatedAt)
}

func (r *postgresSessionRepository) scanSession(rowScanner interface{ Scan(...interface{}) error }) (*models.Session, error) {
	var s models.Session
	err := rowScanner.Scan(
		&s.ID, &s.Name, &s.Date, &s.CourtCount, &s.TeamSize,
		&s.Policy, &s.Status, &s.CurrentRound, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresSessionRepository) GetByID(ctx context.Context, id int) (*models.Session, error) {
	query := `
		SELECT id, name, date, court_count, team_size, policy, status, current_round, created_at
		FROM sessions
		WHERE id = $1`
	return r.scanSession(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresSessionRepository) List(ctx context.Context) ([]*models.Session, error) {
	query := `
		SELECT id, name, date, court_count, team_size, policy, status, current_round, created_at
		FROM sessions
		ORDER BY date DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]*models.Session, 0)
	for rows.Next() {
		s, errScan := r.scanSession(rows)
		if errScan != nil {
			return nil, errScan
		}
		sessions = append(sessions, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *postgresSessionRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.SessionStatus) error {
	executor := SQLExecutor(r.db)
	if exec != nil {
		executor = exec
	}
	query := `UPDATE sessions SET status = $1 WHERE id = $2`
	result, err := executor.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSessionNotFound)
}

func (r *postgresSessionRepository) UpdateCurrentRound(ctx context.Context, exec SQLExecutor, id, round int) error {
	executor := SQLExecutor(r.db)
	if exec != nil {
		executor = exec
	}
	query := `UPDATE sessions SET current_round = $1 WHERE id = $2`
	result, err := executor.ExecContext(ctx, query, round, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSessionNotFound)
}

func (r *postgresSessionRepository) CheckInPlayer(ctx context.Context, sessionID, playerID int) error {
	query := `INSERT INTO session_players (session_id, player_id) VALUES ($1, $2)`
	_, err := r.db.ExecContext(ctx, query, sessionID, playerID)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			return ErrCheckInConflict
		case "foreign_key_violation":
			return ErrCheckInPlayerInvalid
		}
	}
	return err
}

func (r *postgresSessionRepository) ListCheckedInPlayerIDs(ctx context.Context, sessionID int) ([]int, error) {
	query := `
		SELECT player_id
		FROM session_players
		WHERE session_id = $1
		ORDER BY checked_in_at ASC, player_id ASC`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
