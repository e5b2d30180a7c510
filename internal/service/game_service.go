package service

import (
	"context"

	"github.com/fardhanrasya/gamify-api/internal/dto"
	"github.com/fardhanrasya/gamify-api/internal/model"
	"github.com/fardhanrasya/gamify-api/internal/repository"
)

type GameService interface {
	CreateGame(ctx context.Context, req dto.CreateGameRequest) (*model.Game, error)
	ListGames(ctx context.Context, filter dto.PageFilter) ([]model.Game, int64, error)
	GetGame(ctx context.Context, id uint) (*model.Game, error)
	UpdateGame(ctx context.Context, id uint, req dto.UpdateGameRequest) (*model.Game, error)
	DeleteGame(ctx context.Context, id uint) error
}

type gameService struct {
	games repository.GameRepository
}

func NewGameService(games repository.GameRepository) GameService {
	return &gameService{games: games}
}

func (s *gameService) CreateGame(ctx context.Context, req dto.CreateGameRequest) (*model.Game, error) {
	game := &model.Game{
		Name:          req.Name,
		Description:   req.Description,
		Active:        true,
		TargetType:    model.TargetAll,
		TargetPlayers: req.TargetPlayers,
	}
	if req.Active != nil {
		game.Active = *req.Active
	}
	if req.TargetType != "" {
		game.TargetType = req.TargetType
	}

	if err := s.games.Create(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

func (s *gameService) ListGames(ctx context.Context, filter dto.PageFilter) ([]model.Game, int64, error) {
	return s.games.FindAll(ctx, filter.Offset(), filter.Limit)
}

func (s *gameService) GetGame(ctx context.Context, id uint) (*model.Game, error) {
	return s.games.FindByID(ctx, id)
}

func (s *gameService) UpdateGame(ctx context.Context, id uint, req dto.UpdateGameRequest) (*model.Game, error) {
	game, err := s.games.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		game.Name = *req.Name
	}
	if req.Description != nil {
		game.Description = *req.Description
	}
	if req.Active != nil {
		game.Active = *req.Active
	}
	if req.TargetType != nil {
		game.TargetType = *req.TargetType
	}
	if req.TargetPlayers != nil {
		game.TargetPlayers = *req.TargetPlayers
	}

	if err := s.games.Update(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

func (s *gameService) DeleteGame(ctx context.Context, id uint) error {
	if _, err := s.games.FindByID(ctx, id); err != nil {
		return err
	}
	return s.games.Delete(ctx, id)
}
