package repository

import (
	"context"

	"github.com/fardhanrasya/gamify-api/internal/model"
	"gorm.io/gorm"
)

type MissionRepository interface {
	Create(ctx context.Context, mission *model.Mission) error
	FindByID(ctx context.Context, id uint) (*model.Mission, error)
	FindByIDWithTasks(ctx context.Context, id uint) (*model.Mission, error)
	FindAll(ctx context.Context, gameID *uint, offset, limit int) ([]model.Mission, int64, error)
	Update(ctx context.Context, mission *model.Mission) error
	Delete(ctx context.Context, id uint) error
}

type missionRepository struct {
	db *gorm.DB
}

func NewMissionRepository(db *gorm.DB) MissionRepository {
	return &missionRepository{db: db}
}

func (r *missionRepository) Create(ctx context.Context, mission *model.Mission) error {
	return r.db.WithContext(ctx).Create(mission).Error
}

func (r *missionRepository) FindByID(ctx context.Context, id uint) (*model.Mission, error) {
	var mission model.Mission
	if err := r.db.WithContext(ctx).First(&mission, id).Error; err != nil {
		return nil, err
	}
	return &mission, nil
}

func (r *missionRepository) FindByIDWithTasks(ctx context.Context, id uint) (*model.Mission, error) {
	var mission model.Mission
	err := r.db.WithContext(ctx).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC, id ASC")
		}).
		First(&mission, id).Error
	if err != nil {
		return nil, err
	}
	return &mission, nil
}

func (r *missionRepository) FindAll(ctx context.Context, gameID *uint, offset, limit int) ([]model.Mission, int64, error) {
	var missions []model.Mission
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Mission{})
	if gameID != nil {
		query = query.Where("game_id = ?", *gameID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC, id ASC")
		}).
		Order("id ASC")
	if limit > 0 {
		query = query.Offset(offset).Limit(limit)
	}

	if err := query.Find(&missions).Error; err != nil {
		return nil, 0, err
	}

	return missions, total, nil
}

func (r *missionRepository) Update(ctx context.Context, mission *model.Mission) error {
	return r.db.WithContext(ctx).Save(mission).Error
}

func (r *missionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Mission{}, id).Error
}
