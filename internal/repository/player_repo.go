package repository

import (
	"context"
	"errors"

	"github.com/fardhanrasya/gamify-api/internal/model"
	"gorm.io/gorm"
)

type PlayerRepository interface {
	GetOrCreate(ctx context.Context, externalID string) (*model.Player, error)
	FindByExternalID(ctx context.Context, externalID string) (*model.Player, error)
	FindByID(ctx context.Context, id uint) (*model.Player, error)
	AddPoints(ctx context.Context, playerID uint, points int) error
	IncrementCounters(ctx context.Context, playerID uint, tasks, missions int) error
}

type playerRepository struct {
	db *gorm.DB
}

func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepository{db: db}
}

func (r *playerRepository) GetOrCreate(ctx context.Context, externalID string) (*model.Player, error) {
	var player model.Player
	err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&player).Error
	if err == nil {
		return &player, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	player = model.Player{ExternalID: externalID, Name: externalID}
	if err := r.db.WithContext(ctx).Create(&player).Error; err != nil {
		// Lost a race against a concurrent first event for the same id.
		var existing model.Player
		if lookupErr := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&existing).Error; lookupErr == nil {
			return &existing, nil
		}
		return nil, err
	}
	return &player, nil
}

func (r *playerRepository) FindByExternalID(ctx context.Context, externalID string) (*model.Player, error) {
	var player model.Player
	if err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&player).Error; err != nil {
		return nil, err
	}
	return &player, nil
}

func (r *playerRepository) FindByID(ctx context.Context, id uint) (*model.Player, error) {
	var player model.Player
	if err := r.db.WithContext(ctx).First(&player, id).Error; err != nil {
		return nil, err
	}
	return &player, nil
}

func (r *playerRepository) AddPoints(ctx context.Context, playerID uint, points int) error {
	return r.db.WithContext(ctx).Model(&model.Player{}).
		Where("id = ?", playerID).
		Updates(map[string]interface{}{
			"points":       gorm.Expr("points + ?", points),
			"total_points": gorm.Expr("total_points + ?", points),
		}).Error
}

func (r *playerRepository) IncrementCounters(ctx context.Context, playerID uint, tasks, missions int) error {
	return r.db.WithContext(ctx).Model(&model.Player{}).
		Where("id = ?", playerID).
		Updates(map[string]interface{}{
			"completed_tasks":    gorm.Expr("completed_tasks + ?", tasks),
			"completed_missions": gorm.Expr("completed_missions + ?", missions),
		}).Error
}
