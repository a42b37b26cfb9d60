package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/opencourt/courtplay/models"
	"github.com/opencourt/courtplay/repositories"
	"github.com/opencourt/courtplay/rotation"
)

// teamPalette supplies deterministic names and colors for formed teams, two
// per court in ascending court order. The balancer's stable output ordering
// makes the whole naming pass reproducible for a given check-in list.
var teamPalette = []struct {
	name  string
	color string
}{
	{"Red", "#e53935"},
	{"Blue", "#1e88e5"},
	{"Green", "#43a047"},
	{"Yellow", "#fdd835"},
	{"Orange", "#fb8c00"},
	{"Purple", "#8e24aa"},
	{"Teal", "#00897b"},
	{"Pink", "#d81b60"},
	{"Lime", "#c0ca33"},
	{"Indigo", "#3949ab"},
	{"Cyan", "#00acc1"},
	{"Brown", "#6d4c41"},
}

type CreateSessionInput struct {
	Name       string                `json:"name"`
	Date       time.Time             `json:"date"`
	CourtCount int                   `json:"court_count"`
	TeamSize   int                   `json:"team_size"`
	Policy     models.RotationPolicy `json:"policy"`
}

type CreateGroupInput struct {
	Name      string `json:"name"`
	PlayerIDs []int  `json:"player_ids"`
}

type SessionService interface {
	CreateSession(ctx context.Context, input CreateSessionInput) (*models.Session, error)
	GetSession(ctx context.Context, id int) (*models.Session, error)
	ListSessions(ctx context.Context) ([]*models.Session, error)
	CheckInPlayer(ctx context.Context, sessionID, playerID int) error
	ListCheckedInPlayers(ctx context.Context, sessionID int) ([]*models.Player, error)
	CreateGroup(ctx context.Context, sessionID int, input CreateGroupInput) (*models.Group, error)
	ListGroups(ctx context.Context, sessionID int) ([]*models.Group, error)
	FormTeams(ctx context.Context, sessionID int, useGroups bool) ([]*models.Team, error)
	ResetTeams(ctx context.Context, sessionID int) error
	CompleteSession(ctx context.Context, sessionID int) (*models.Session, error)
}

type sessionService struct {
	db          *sql.DB
	sessionRepo repositories.SessionRepository
	playerRepo  repositories.PlayerRepository
	teamRepo    repositories.TeamRepository
	gameRepo    repositories.GameRepository
	groupRepo   repositories.GroupRepository
	hub         *rotation.Hub
}

func NewSessionService(
	db *sql.DB,
	sessionRepo repositories.SessionRepository,
	playerRepo repositories.PlayerRepository,
	teamRepo repositories.TeamRepository,
	gameRepo repositories.GameRepository,
	groupRepo repositories.GroupRepository,
	hub *rotation.Hub,
) SessionService {
	return &sessionService{
		db:          db,
		sessionRepo: sessionRepo,
		playerRepo:  playerRepo,
		teamRepo:    teamRepo,
		gameRepo:    gameRepo,
		groupRepo:   groupRepo,
		hub:         hub,
	}
}

func sessionRoom(sessionID int) string {
	return fmt.Sprintf("session_%d", sessionID)
}

func (s *sessionService) CreateSession(ctx context.Context, input CreateSessionInput) (*models.Session, error) {
	name := strings.TrimSpace(input.Name)
	switch {
	case name == "":
		return nil, ErrSessionNameRequired
	case input.CourtCount < 1:
		return nil, ErrSessionInvalidCourts
	case input.TeamSize < 1:
		return nil, ErrSessionInvalidTeamSize
	case !input.Policy.Valid():
		return nil, ErrSessionInvalidPolicy
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	session := &models.Session{
		Name:       name,
		Date:       date,
		CourtCount: input.CourtCount,
		TeamSize:   input.TeamSize,
		Policy:     input.Policy,
		Status:     models.SessionStatusOpen,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// GetSession loads the session with its teams and game log. Teams and games
// are fetched concurrently; both lists are exactly what the rotation engine
// consumes.
func (s *sessionService) GetSession(ctx context.Context, id int) (*models.Session, error) {
	session, err := s.getSession(ctx, id)
	if err != nil {
		return nil, err
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		teams, err := s.teamRepo.ListBySession(gCtx, id)
		if err != nil {
			return fmt.Errorf("failed to list teams for session %d: %w", id, err)
		}
		session.Teams = make([]models.Team, len(teams))
		for i, t := range teams {
			session.Teams[i] = *t
		}
		return nil
	})

	g.Go(func() error {
		games, err := s.gameRepo.ListBySession(gCtx, id, nil, nil)
		if err != nil {
			return fmt.Errorf("failed to list games for session %d: %w", id, err)
		}
		session.Games = make([]models.Game, len(games))
		for i, game := range games {
			session.Games[i] = *game
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *sessionService) ListSessions(ctx context.Context) ([]*models.Session, error) {
	return s.sessionRepo.List(ctx)
}

func (s *sessionService) CheckInPlayer(ctx context.Context, sessionID, playerID int) error {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.Status != models.SessionStatusOpen {
		return ErrSessionNotOpen
	}

	if _, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return err
	}
	if err := s.sessionRepo.CheckInPlayer(ctx, sessionID, playerID); err != nil {
		if errors.Is(err, repositories.ErrCheckInConflict) {
			return ErrAlreadyCheckedIn
		}
		return err
	}
	return nil
}

func (s *sessionService) ListCheckedInPlayers(ctx context.Context, sessionID int) ([]*models.Player, error) {
	if _, err := s.getSession(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.checkedInPlayers(ctx, sessionID)
}

// checkedInPlayers returns the pool in check-in order; that order is the
// balancer's tie-break for equal ratings.
func (s *sessionService) checkedInPlayers(ctx context.Context, sessionID int) ([]*models.Player, error) {
	ids, err := s.sessionRepo.ListCheckedInPlayerIDs(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	players, err := s.playerRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]*models.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	ordered := make([]*models.Player, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

func (s *sessionService) CreateGroup(ctx context.Context, sessionID int, input CreateGroupInput) (*models.Group, error) {
	if _, err := s.getSession(ctx, sessionID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrGroupNameRequired
	}
	if len(input.PlayerIDs) == 0 {
		return nil, ErrGroupEmpty
	}

	group := &models.Group{
		SessionID: sessionID,
		Name:      name,
		PlayerIDs: input.PlayerIDs,
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return group, nil
}

func (s *sessionService) ListGroups(ctx context.Context, sessionID int) ([]*models.Group, error) {
	if _, err := s.getSession(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.groupRepo.ListBySession(ctx, sessionID)
}

// FormTeams partitions the checked-in pool into balanced rosters and
// persists two teams per court, then moves the session to active. The
// serpentine draft and the palette assignment are both deterministic, so
// re-running against the same check-in list would rebuild identical teams.
func (s *sessionService) FormTeams(ctx context.Context, sessionID int, useGroups bool) ([]*models.Team, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.SessionStatusOpen {
		return nil, ErrSessionAlreadyStarted
	}

	existing, err := s.teamRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, ErrSessionTeamsAlreadyBuilt
	}

	pool, err := s.checkedInPlayers(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(pool) < session.CourtCount*2 {
		return nil, ErrNotEnoughPlayers
	}

	var groups []*models.Group
	if useGroups {
		groups, err = s.groupRepo.ListBySession(ctx, sessionID)
		if err != nil {
			return nil, err
		}
	}

	courts := rotation.BalanceTeams(pool, session.CourtCount, session.TeamSize, useGroups, groups)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin team formation transaction: %w", err)
	}
	defer tx.Rollback()

	teams := make([]*models.Team, 0, len(courts)*2)
	for _, court := range courts {
		for side, roster := range [][]*models.Player{court.RosterA, court.RosterB} {
			entry := teamPalette[((court.Court-1)*2+side)%len(teamPalette)]
			team := &models.Team{
				SessionID: sessionID,
				Name:      entry.name,
				Color:     entry.color,
			}
			playerIDs := make([]int, len(roster))
			for i, p := range roster {
				playerIDs[i] = p.ID
				team.Players = append(team.Players, *p)
			}
			if err := s.teamRepo.CreateWithPlayers(ctx, tx, team, playerIDs); err != nil {
				return nil, err
			}
			teams = append(teams, team)
		}
	}

	if err := s.sessionRepo.UpdateStatus(ctx, tx, sessionID, models.SessionStatusActive); err != nil {
		return nil, fmt.Errorf("failed to activate session %d: %w", sessionID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit team formation: %w", err)
	}

	s.hub.BroadcastToRoom(sessionRoom(sessionID), rotation.EventTeamsFormed, teams)
	return teams, nil
}

// ResetTeams tears the formed teams down and reopens check-in so the draft
// can be rerun, for example after a late arrival. Only allowed before any
// round has been generated; after that the game log references the teams.
func (s *sessionService) ResetTeams(ctx context.Context, sessionID int) error {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.Status != models.SessionStatusActive {
		return ErrSessionNotActive
	}
	if session.CurrentRound > 0 {
		return ErrSessionHasRounds
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin team reset transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.teamRepo.DeleteBySession(ctx, tx, sessionID); err != nil {
		return fmt.Errorf("failed to delete teams for session %d: %w", sessionID, err)
	}
	if err := s.sessionRepo.UpdateStatus(ctx, tx, sessionID, models.SessionStatusOpen); err != nil {
		return fmt.Errorf("failed to reopen session %d: %w", sessionID, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit team reset: %w", err)
	}
	return nil
}

// CompleteSession closes out an active session. Pending games stay as they
// are; standings and ratings only ever count completed results.
func (s *sessionService) CompleteSession(ctx context.Context, sessionID int) (*models.Session, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.SessionStatusActive {
		return nil, ErrSessionNotActive
	}

	if err := s.sessionRepo.UpdateStatus(ctx, nil, sessionID, models.SessionStatusCompleted); err != nil {
		return nil, fmt.Errorf("failed to complete session %d: %w", sessionID, err)
	}
	session.Status = models.SessionStatusCompleted
	return session, nil
}

func (s *sessionService) getSession(ctx context.Context, id int) (*models.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}
