package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/fardhanrasya/gamify-api/internal/dto"
	"github.com/fardhanrasya/gamify-api/internal/model"
	"github.com/fardhanrasya/gamify-api/internal/repository"
	"gorm.io/gorm"
)

type MissionService interface {
	ListMissions(ctx context.Context, filter dto.MissionFilter) ([]dto.MissionResponse, int64, error)
	GetMission(ctx context.Context, id uint, playerExternalID string) (*dto.MissionResponse, error)
	CreateMission(ctx context.Context, req dto.CreateMissionRequest) (*model.Mission, error)
	UpdateMission(ctx context.Context, id uint, req dto.UpdateMissionRequest) (*model.Mission, error)
	DeleteMission(ctx context.Context, id uint) error
}

type missionService struct {
	missions repository.MissionRepository
	progress repository.ProgressRepository
	players  repository.PlayerRepository
}

func NewMissionService(missions repository.MissionRepository, progress repository.ProgressRepository, players repository.PlayerRepository) MissionService {
	return &missionService{missions: missions, progress: progress, players: players}
}

func (s *missionService) ListMissions(ctx context.Context, filter dto.MissionFilter) ([]dto.MissionResponse, int64, error) {
	// Status is derived per player, so it cannot be pushed into the SQL
	// page. With a status filter the full candidate set is loaded, filtered,
	// and paged in memory; total is the filtered count.
	offset, limit := filter.Offset(), filter.Limit
	if filter.Status != "" {
		offset, limit = 0, 0
	}

	missions, total, err := s.missions.FindAll(ctx, filter.GameID, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	var player *model.Player
	var progressByMission map[uint]model.MissionProgress
	if filter.PlayerID != "" {
		player, err = s.players.FindByExternalID(ctx, filter.PlayerID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, err
			}
			// Unknown player: everything reads as not started.
			player = nil
		} else {
			ids := make([]uint, 0, len(missions))
			for _, m := range missions {
				ids = append(ids, m.ID)
			}
			progressByMission, err = s.progress.FindMissionProgressMap(ctx, player.ID, ids)
			if err != nil {
				return nil, 0, err
			}
		}
	}

	responses := make([]dto.MissionResponse, 0, len(missions))
	for _, mission := range missions {
		resp, err := s.buildResponse(ctx, &mission, player, progressByMission)
		if err != nil {
			return nil, 0, err
		}
		if filter.Status != "" && resp.Status != filter.Status {
			continue
		}
		responses = append(responses, *resp)
	}

	if filter.Status != "" {
		total = int64(len(responses))
		start := filter.Offset()
		if start > len(responses) {
			start = len(responses)
		}
		end := start + filter.Limit
		if end > len(responses) {
			end = len(responses)
		}
		responses = responses[start:end]
	}

	return responses, total, nil
}

func (s *missionService) GetMission(ctx context.Context, id uint, playerExternalID string) (*dto.MissionResponse, error) {
	mission, err := s.missions.FindByIDWithTasks(ctx, id)
	if err != nil {
		return nil, err
	}

	var player *model.Player
	var progressByMission map[uint]model.MissionProgress
	if playerExternalID != "" {
		player, err = s.players.FindByExternalID(ctx, playerExternalID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			player = nil
		} else {
			progressByMission, err = s.progress.FindMissionProgressMap(ctx, player.ID, []uint{mission.ID})
			if err != nil {
				return nil, err
			}
		}
	}

	return s.buildResponse(ctx, mission, player, progressByMission)
}

func (s *missionService) buildResponse(ctx context.Context, mission *model.Mission, player *model.Player, progressByMission map[uint]model.MissionProgress) (*dto.MissionResponse, error) {
	resp := &dto.MissionResponse{
		ID:                    mission.ID,
		GameID:                mission.GameID,
		Name:                  mission.Name,
		Description:           mission.Description,
		Active:                mission.Active,
		RequiredPoints:        mission.RequiredPoints,
		StartDate:             mission.StartDate,
		EndDate:               mission.EndDate,
		PrerequisiteMissionID: mission.PrerequisiteMissionID,
		Status:                model.StatusNotStarted,
	}

	if row, ok := progressByMission[mission.ID]; ok {
		resp.Status = row.Status
		resp.PointsEarned = row.PointsEarned
		resp.ProgressPercentage = row.ProgressPercentage
	}

	available, err := s.isAvailable(ctx, mission, player)
	if err != nil {
		return nil, err
	}
	resp.Available = available

	if len(mission.Tasks) > 0 {
		var taskProgress map[uint]model.TaskProgress
		if player != nil {
			ids := make([]uint, 0, len(mission.Tasks))
			for _, task := range mission.Tasks {
				ids = append(ids, task.ID)
			}
			taskProgress, err = s.progress.FindTaskProgressMap(ctx, player.ID, ids)
			if err != nil {
				return nil, err
			}
		}

		for _, task := range mission.Tasks {
			tr := dto.TaskResponse{
				ID:         task.ID,
				MissionID:  task.MissionID,
				EventID:    task.EventID,
				Name:       task.Name,
				Points:     task.Points,
				IsOptional: task.IsOptional,
				OrderIndex: task.OrderIndex,
				Active:     task.Active,
				Status:     model.StatusNotStarted,
			}
			if row, ok := taskProgress[task.ID]; ok {
				tr.Status = row.Status
				tr.CompletedAt = row.CompletedAt
			}
			resp.Tasks = append(resp.Tasks, tr)
		}
	}

	return resp, nil
}

// isAvailable applies the active flag, the time window, the targeting rule
// and the prerequisite gate.
func (s *missionService) isAvailable(ctx context.Context, mission *model.Mission, player *model.Player) (bool, error) {
	if !mission.Active {
		return false, nil
	}

	now := time.Now()
	if mission.StartDate != nil && now.Before(*mission.StartDate) {
		return false, nil
	}
	if mission.EndDate != nil && now.After(*mission.EndDate) {
		return false, nil
	}

	if !matchesTarget(mission.TargetType, mission.TargetPlayers, player) {
		return false, nil
	}

	if mission.PrerequisiteMissionID != nil {
		if player == nil {
			return false, nil
		}
		prereq, err := s.progress.FindMissionProgress(ctx, player.ID, *mission.PrerequisiteMissionID)
		if err != nil {
			return false, err
		}
		if prereq == nil || prereq.Status != model.StatusCompleted {
			return false, nil
		}
	}

	return true, nil
}

func matchesTarget(targetType, targetPlayers string, player *model.Player) bool {
	switch targetType {
	case model.TargetSpecific:
		if player == nil || targetPlayers == "" {
			return false
		}
		var ids []string
		if err := json.Unmarshal([]byte(targetPlayers), &ids); err != nil {
			// Tolerate numeric id lists, e.g. [5,9].
			var numeric []json.Number
			if err := json.Unmarshal([]byte(targetPlayers), &numeric); err != nil {
				return false
			}
			for _, n := range numeric {
				ids = append(ids, n.String())
			}
		}
		for _, id := range ids {
			if id == player.ExternalID {
				return true
			}
		}
		return false
	case model.TargetFiltered:
		// Filter targeting is not supported yet; everyone passes.
		return true
	default:
		// "all" and anything unset.
		return true
	}
}

func (s *missionService) CreateMission(ctx context.Context, req dto.CreateMissionRequest) (*model.Mission, error) {
	mission := &model.Mission{
		GameID:                req.GameID,
		Name:                  req.Name,
		Description:           req.Description,
		RequiredPoints:        req.RequiredPoints,
		Active:                true,
		StartDate:             req.StartDate,
		EndDate:               req.EndDate,
		Recurrence:            req.Recurrence,
		PrerequisiteMissionID: req.PrerequisiteMissionID,
		TargetType:            model.TargetAll,
		TargetPlayers:         req.TargetPlayers,

		OptionalTasksCountAsComplete: true,
		AffectsLeaderboard:           req.AffectsLeaderboard,
		BonusPoints:                  req.BonusPoints,
	}
	if req.Active != nil {
		mission.Active = *req.Active
	}
	if req.TargetType != "" {
		mission.TargetType = req.TargetType
	}
	if req.OptionalTasksCountAsComplete != nil {
		mission.OptionalTasksCountAsComplete = *req.OptionalTasksCountAsComplete
	}

	if err := s.missions.Create(ctx, mission); err != nil {
		return nil, err
	}
	return mission, nil
}

func (s *missionService) UpdateMission(ctx context.Context, id uint, req dto.UpdateMissionRequest) (*model.Mission, error) {
	mission, err := s.missions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		mission.Name = *req.Name
	}
	if req.Description != nil {
		mission.Description = *req.Description
	}
	if req.RequiredPoints != nil {
		mission.RequiredPoints = *req.RequiredPoints
	}
	if req.Active != nil {
		mission.Active = *req.Active
	}
	if req.StartDate != nil {
		mission.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		mission.EndDate = req.EndDate
	}
	if req.PrerequisiteMissionID != nil {
		mission.PrerequisiteMissionID = req.PrerequisiteMissionID
	}
	if req.TargetType != nil {
		mission.TargetType = *req.TargetType
	}
	if req.TargetPlayers != nil {
		mission.TargetPlayers = *req.TargetPlayers
	}
	if req.OptionalTasksCountAsComplete != nil {
		mission.OptionalTasksCountAsComplete = *req.OptionalTasksCountAsComplete
	}
	if req.AffectsLeaderboard != nil {
		mission.AffectsLeaderboard = *req.AffectsLeaderboard
	}
	if req.BonusPoints != nil {
		mission.BonusPoints = *req.BonusPoints
	}

	if err := s.missions.Update(ctx, mission); err != nil {
		return nil, err
	}
	return mission, nil
}

func (s *missionService) DeleteMission(ctx context.Context, id uint) error {
	if _, err := s.missions.FindByID(ctx, id); err != nil {
		return err
	}
	return s.missions.Delete(ctx, id)
}
