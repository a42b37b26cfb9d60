package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/opencourt/courtplay/models"
)

var ErrGroupNotFound = errors.New("group not found")

type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	ListBySession(ctx context.Context, sessionID int) ([]*models.Group, error)
}

type postgresGroupRepository struct {
	db *sql.DB
}

func NewPostgresGroupRepository(db *sql.DB) GroupRepository {
	return &postgresGroupRepository{db: db}
}

func (r *postgresGroupRepository) Create(ctx context.Context, group *models.Group) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin group transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO groups (session_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at`
	if err := tx.QueryRowContext(ctx, query,
		group.SessionID, group.Name,
	).Scan(&group.ID, &group.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert group %q: %w", group.Name, err)
	}

	for _, playerID := range group.PlayerIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO group_players (group_id, player_id) VALUES ($1, $2)`,
			group.ID, playerID,
		); err != nil {
			return fmt.Errorf("failed to add player %d to group %d: %w", playerID, group.ID, err)
		}
	}
	return tx.Commit()
}

func (r *postgresGroupRepository) ListBySession(ctx context.Context, sessionID int) ([]*models.Group, error) {
	query := `
		SELECT g.id, g.session_id, g.name, g.created_at,
		       COALESCE(array_agg(gp.player_id ORDER BY gp.player_id) FILTER (WHERE gp.player_id IS NOT NULL), '{}')
		FROM groups g
		LEFT JOIN group_players gp ON gp.group_id = g.id
		WHERE g.session_id = $1
		GROUP BY g.id
		ORDER BY g.id ASC`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := make([]*models.Group, 0)
	for rows.Next() {
		var g models.Group
		var memberIDs pq.Int64Array
		if err := rows.Scan(&g.ID, &g.SessionID, &g.Name, &g.CreatedAt, &memberIDs); err != nil {
			return nil, err
		}
		g.PlayerIDs = make([]int, len(memberIDs))
		for i, id := range memberIDs {
			g.PlayerIDs[i] = int(id)
		}
		groups = append(groups, &g)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return groups, nil
}
