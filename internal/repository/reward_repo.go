package repository

import (
	"context"
	"time"

	"github.com/fardhanrasya/gamify-api/internal/model"
	"gorm.io/gorm"
)

type RewardRepository interface {
	Create(ctx context.Context, reward *model.Reward) error
	FindByID(ctx context.Context, id uint) (*model.Reward, error)
	FindByMissionID(ctx context.Context, missionID uint) ([]model.Reward, error)
	Update(ctx context.Context, reward *model.Reward) error
	Delete(ctx context.Context, id uint) error

	HasGrant(ctx context.Context, playerID, rewardID uint) (bool, error)
	CreateGrant(ctx context.Context, grant *model.PlayerReward) error
	FindGrantByID(ctx context.Context, id uint) (*model.PlayerReward, error)
	FindGrantsByPlayer(ctx context.Context, playerID uint, status string, missionID *uint, offset, limit int) ([]model.PlayerReward, int64, error)
	UpdateGrant(ctx context.Context, grant *model.PlayerReward) error
	ExpireDueGrants(ctx context.Context, now time.Time) (int64, error)
}

type rewardRepository struct {
	db *gorm.DB
}

func NewRewardRepository(db *gorm.DB) RewardRepository {
	return &rewardRepository{db: db}
}

func (r *rewardRepository) Create(ctx context.Context, reward *model.Reward) error {
	return r.db.WithContext(ctx).Create(reward).Error
}

func (r *rewardRepository) FindByID(ctx context.Context, id uint) (*model.Reward, error) {
	var reward model.Reward
	if err := r.db.WithContext(ctx).First(&reward, id).Error; err != nil {
		return nil, err
	}
	return &reward, nil
}

func (r *rewardRepository) FindByMissionID(ctx context.Context, missionID uint) ([]model.Reward, error) {
	var rewards []model.Reward
	err := r.db.WithContext(ctx).
		Where("mission_id = ?", missionID).
		Order("id ASC").
		Find(&rewards).Error
	return rewards, err
}

func (r *rewardRepository) Update(ctx context.Context, reward *model.Reward) error {
	return r.db.WithContext(ctx).Save(reward).Error
}

func (r *rewardRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Reward{}, id).Error
}

func (r *rewardRepository) HasGrant(ctx context.Context, playerID, rewardID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PlayerReward{}).
		Where("player_id = ? AND reward_id = ?", playerID, rewardID).
		Count(&count).Error
	return count > 0, err
}

func (r *rewardRepository) CreateGrant(ctx context.Context, grant *model.PlayerReward) error {
	return r.db.WithContext(ctx).Create(grant).Error
}

func (r *rewardRepository) FindGrantByID(ctx context.Context, id uint) (*model.PlayerReward, error) {
	var grant model.PlayerReward
	if err := r.db.WithContext(ctx).Preload("Reward").First(&grant, id).Error; err != nil {
		return nil, err
	}
	return &grant, nil
}

func (r *rewardRepository) FindGrantsByPlayer(ctx context.Context, playerID uint, status string, missionID *uint, offset, limit int) ([]model.PlayerReward, int64, error) {
	var grants []model.PlayerReward
	var total int64

	query := r.db.WithContext(ctx).Model(&model.PlayerReward{}).Where("player_id = ?", playerID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if missionID != nil {
		query = query.Where("reward_id IN (?)",
			r.db.Model(&model.Reward{}).Select("id").Where("mission_id = ?", *missionID))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Reward").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&grants).Error; err != nil {
		return nil, 0, err
	}

	return grants, total, nil
}

func (r *rewardRepository) UpdateGrant(ctx context.Context, grant *model.PlayerReward) error {
	return r.db.WithContext(ctx).Save(grant).Error
}

// ExpireDueGrants flips earned grants whose expiry timestamp has passed.
// The claim path also checks the live timestamp, so lag here only affects
// reporting, not claims.
func (r *rewardRepository) ExpireDueGrants(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.PlayerReward{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", model.RewardStatusEarned, now).
		Update("status", model.RewardStatusExpired)
	return result.RowsAffected, result.Error
}
