package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/opencourt/courtplay/models"
	"github.com/opencourt/courtplay/repositories"
)

type CreatePlayerInput struct {
	Name   string `json:"name"`
	Guest  bool   `json:"guest"`
	Rating int    `json:"rating"`
}

type PlayerService interface {
	CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	GetPlayer(ctx context.Context, id int) (*models.Player, error)
	ListPlayers(ctx context.Context) ([]*models.Player, error)
}

type playerService struct {
	playerRepo repositories.PlayerRepository
}

func NewPlayerService(playerRepo repositories.PlayerRepository) PlayerService {
	return &playerService{playerRepo: playerRepo}
}

func (s *playerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}

	rating := input.Rating
	if rating <= 0 {
		rating = models.DefaultRating
	}

	player := &models.Player{
		Name:   name,
		Rating: rating,
		Guest:  input.Guest,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerNameConflict) {
			return nil, ErrPlayerNameConflict
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

func (s *playerService) GetPlayer(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}

func (s *playerService) ListPlayers(ctx context.Context) ([]*models.Player, error) {
	return s.playerRepo.List(ctx)
}
