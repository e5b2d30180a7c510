package service

import (
	"context"
	"log"
	"time"

	"github.com/fardhanrasya/gamify-api/internal/dto"
	"github.com/fardhanrasya/gamify-api/internal/model"
	"github.com/fardhanrasya/gamify-api/internal/repository"
	"gorm.io/gorm"
)

// ClaimResult is the structured outcome of a claim attempt.
type ClaimResult struct {
	Success bool                      `json:"success"`
	Message string                    `json:"message,omitempty"`
	Reward  *dto.PlayerRewardResponse `json:"reward,omitempty"`
}

// GrantResult is the structured outcome of a standalone granting pass.
type GrantResult struct {
	Success bool               `json:"success"`
	Message string             `json:"message,omitempty"`
	Rewards []dto.RewardUpdate `json:"rewards,omitempty"`
}

type RewardService interface {
	ListPlayerRewards(ctx context.Context, filter dto.RewardFilter) ([]dto.PlayerRewardResponse, int64, error)
	ClaimReward(ctx context.Context, grantID uint, playerExternalID string) (*ClaimResult, error)
	GrantRewardsForMission(ctx context.Context, missionID uint, playerExternalID string) (*GrantResult, error)
	CreateReward(ctx context.Context, req dto.CreateRewardRequest) (*model.Reward, error)
	UpdateReward(ctx context.Context, id uint, req dto.UpdateRewardRequest) (*model.Reward, error)
	DeleteReward(ctx context.Context, id uint) error
	ExpireDueRewards(ctx context.Context) (int64, error)
}

type rewardService struct {
	db       *gorm.DB
	rewards  repository.RewardRepository
	missions repository.MissionRepository
	players  repository.PlayerRepository
}

func NewRewardService(db *gorm.DB, rewards repository.RewardRepository, missions repository.MissionRepository, players repository.PlayerRepository) RewardService {
	return &rewardService{db: db, rewards: rewards, missions: missions, players: players}
}

func (s *rewardService) ListPlayerRewards(ctx context.Context, filter dto.RewardFilter) ([]dto.PlayerRewardResponse, int64, error) {
	player, err := s.players.FindByExternalID(ctx, filter.PlayerID)
	if err != nil {
		return nil, 0, err
	}

	grants, total, err := s.rewards.FindGrantsByPlayer(ctx, player.ID, filter.Status, filter.MissionID, filter.Offset(), filter.Limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]dto.PlayerRewardResponse, 0, len(grants))
	for _, grant := range grants {
		responses = append(responses, toPlayerRewardResponse(&grant))
	}
	return responses, total, nil
}

// ClaimReward transitions earned -> claimed. Expiry is checked against both
// the stored status and the live timestamp; whichever triggers first wins.
func (s *rewardService) ClaimReward(ctx context.Context, grantID uint, playerExternalID string) (*ClaimResult, error) {
	player, err := s.players.FindByExternalID(ctx, playerExternalID)
	if err != nil {
		return nil, err
	}

	grant, err := s.rewards.FindGrantByID(ctx, grantID)
	if err != nil {
		return nil, err
	}
	if grant.PlayerID != player.ID {
		return &ClaimResult{Success: false, Message: "reward does not belong to this player"}, nil
	}

	if grant.Status == model.RewardStatusClaimed {
		return &ClaimResult{Success: false, Message: "reward already claimed"}, nil
	}

	now := time.Now()
	if grant.Expired(now) {
		if grant.Status != model.RewardStatusExpired {
			grant.Status = model.RewardStatusExpired
			if err := s.rewards.UpdateGrant(ctx, grant); err != nil {
				return nil, err
			}
		}
		return &ClaimResult{Success: false, Message: "reward has expired"}, nil
	}

	grant.Status = model.RewardStatusClaimed
	grant.ClaimedAt = &now
	if err := s.rewards.UpdateGrant(ctx, grant); err != nil {
		return nil, err
	}

	resp := toPlayerRewardResponse(grant)
	return &ClaimResult{Success: true, Reward: &resp}, nil
}

// GrantRewardsForMission is the standalone granting entry point; the
// processor performs the same pass inside its rollup transaction, where a
// replay skips held rewards silently. Here holding everything already is a
// structured failure.
func (s *rewardService) GrantRewardsForMission(ctx context.Context, missionID uint, playerExternalID string) (*GrantResult, error) {
	mission, err := s.missions.FindByID(ctx, missionID)
	if err != nil {
		return nil, err
	}
	player, err := s.players.FindByExternalID(ctx, playerExternalID)
	if err != nil {
		return nil, err
	}

	attached, err := s.rewards.FindByMissionID(ctx, mission.ID)
	if err != nil {
		return nil, err
	}

	var updates []dto.RewardUpdate
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates, err = grantMissionRewards(ctx, tx, player, mission, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}

	if len(updates) == 0 && len(attached) > 0 {
		return &GrantResult{Success: false, Message: "already has this reward"}, nil
	}
	return &GrantResult{Success: true, Rewards: updates}, nil
}

func (s *rewardService) CreateReward(ctx context.Context, req dto.CreateRewardRequest) (*model.Reward, error) {
	if _, err := s.missions.FindByID(ctx, req.MissionID); err != nil {
		return nil, err
	}

	reward := &model.Reward{
		MissionID:  req.MissionID,
		GameID:     req.GameID,
		Name:       req.Name,
		RewardType: req.RewardType,
		Value:      req.Value,
	}
	if err := s.rewards.Create(ctx, reward); err != nil {
		return nil, err
	}
	return reward, nil
}

func (s *rewardService) UpdateReward(ctx context.Context, id uint, req dto.UpdateRewardRequest) (*model.Reward, error) {
	reward, err := s.rewards.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		reward.Name = *req.Name
	}
	if req.RewardType != nil {
		reward.RewardType = *req.RewardType
	}
	if req.Value != nil {
		reward.Value = *req.Value
	}

	if err := s.rewards.Update(ctx, reward); err != nil {
		return nil, err
	}
	return reward, nil
}

func (s *rewardService) DeleteReward(ctx context.Context, id uint) error {
	if _, err := s.rewards.FindByID(ctx, id); err != nil {
		return err
	}
	return s.rewards.Delete(ctx, id)
}

// ExpireDueRewards is the sweep invoked by the scheduler.
func (s *rewardService) ExpireDueRewards(ctx context.Context) (int64, error) {
	expired, err := s.rewards.ExpireDueGrants(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	if expired > 0 {
		log.Printf("reward sweep: expired %d grant(s)", expired)
	}
	return expired, nil
}

func toPlayerRewardResponse(grant *model.PlayerReward) dto.PlayerRewardResponse {
	return dto.PlayerRewardResponse{
		ID:        grant.ID,
		RewardID:  grant.RewardID,
		MissionID: grant.Reward.MissionID,
		Name:      grant.Reward.Name,
		Type:      grant.Reward.RewardType,
		Status:    grant.Status,
		ExpiresAt: grant.ExpiresAt,
		ClaimedAt: grant.ClaimedAt,
	}
}
