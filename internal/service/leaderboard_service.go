package service

import (
	"context"
	"log"

	"github.com/fardhanrasya/gamify-api/internal/dto"
	"github.com/fardhanrasya/gamify-api/internal/model"
	"github.com/fardhanrasya/gamify-api/internal/repository"
)

type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, filter dto.LeaderboardFilter) ([]dto.LeaderboardEntryResponse, int64, error)
	RecalculateRankings(ctx context.Context) (int, error)
}

type leaderboardService struct {
	boards  repository.LeaderboardRepository
	players repository.PlayerRepository
}

func NewLeaderboardService(boards repository.LeaderboardRepository, players repository.PlayerRepository) LeaderboardService {
	return &leaderboardService{boards: boards, players: players}
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context, filter dto.LeaderboardFilter) ([]dto.LeaderboardEntryResponse, int64, error) {
	if filter.Around != "" {
		return s.aroundPlayer(ctx, filter.Around)
	}

	entries, total, err := s.boards.FindAllOrdered(ctx, filter.Offset(), filter.Limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]dto.LeaderboardEntryResponse, 0, len(entries))
	for i, entry := range entries {
		responses = append(responses, toLeaderboardResponse(&entry, filter.Offset()+i+1))
	}
	return responses, total, nil
}

// aroundPlayer returns the player plus neighbours picked by point-value
// comparisons, which stay correct even when the rank column is stale.
func (s *leaderboardService) aroundPlayer(ctx context.Context, externalID string) ([]dto.LeaderboardEntryResponse, int64, error) {
	player, err := s.players.FindByExternalID(ctx, externalID)
	if err != nil {
		return nil, 0, err
	}

	entry, err := s.boards.FindByPlayer(ctx, player.ID)
	if err != nil {
		return nil, 0, err
	}

	neighbours, err := s.boards.FindAround(ctx, entry.TotalPoints, 3, 3)
	if err != nil {
		return nil, 0, err
	}

	above, err := s.boards.CountWithMorePoints(ctx, entry.TotalPoints)
	if err != nil {
		return nil, 0, err
	}

	// Splice the player into the neighbour list, which came back ordered by
	// points descending, and hand out sequential positions anchored on the
	// player's own count-derived position.
	ordered := make([]model.LeaderboardEntry, 0, len(neighbours)+1)
	selfAdded := false
	for _, n := range neighbours {
		if !selfAdded && n.TotalPoints < entry.TotalPoints {
			ordered = append(ordered, *entry)
			selfAdded = true
		}
		ordered = append(ordered, n)
	}
	if !selfAdded {
		ordered = append(ordered, *entry)
	}

	selfPosition := int(above) + 1
	selfIndex := 0
	for i := range ordered {
		if ordered[i].PlayerID == entry.PlayerID {
			selfIndex = i
			break
		}
	}

	responses := make([]dto.LeaderboardEntryResponse, 0, len(ordered))
	for i, n := range ordered {
		responses = append(responses, toLeaderboardResponse(&n, selfPosition-selfIndex+i))
	}

	return responses, int64(len(responses)), nil
}

// RecalculateRankings reads every entry ordered by points and writes back a
// sequential rank. Rank is stale between passes.
func (s *leaderboardService) RecalculateRankings(ctx context.Context) (int, error) {
	entries, _, err := s.boards.FindAllOrdered(ctx, 0, 0)
	if err != nil {
		return 0, err
	}

	for i, entry := range entries {
		if err := s.boards.UpdateRank(ctx, entry.ID, i+1); err != nil {
			return i, err
		}
	}

	log.Printf("leaderboard: recalculated ranks for %d entries", len(entries))
	return len(entries), nil
}

func toLeaderboardResponse(entry *model.LeaderboardEntry, position int) dto.LeaderboardEntryResponse {
	return dto.LeaderboardEntryResponse{
		PlayerID:          entry.Player.ExternalID,
		Name:              entry.Player.Name,
		TotalPoints:       entry.TotalPoints,
		CompletedMissions: entry.CompletedMissions,
		CompletedTasks:    entry.CompletedTasks,
		Rank:              entry.Rank,
		Position:          position,
	}
}
