package repository

import (
	"context"

	"github.com/fardhanrasya/gamify-api/internal/model"
	"gorm.io/gorm"
)

type GameRepository interface {
	Create(ctx context.Context, game *model.Game) error
	FindByID(ctx context.Context, id uint) (*model.Game, error)
	FindAll(ctx context.Context, offset, limit int) ([]model.Game, int64, error)
	Update(ctx context.Context, game *model.Game) error
	Delete(ctx context.Context, id uint) error
}

type gameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) Create(ctx context.Context, game *model.Game) error {
	return r.db.WithContext(ctx).Create(game).Error
}

func (r *gameRepository) FindByID(ctx context.Context, id uint) (*model.Game, error) {
	var game model.Game
	if err := r.db.WithContext(ctx).First(&game, id).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) FindAll(ctx context.Context, offset, limit int) ([]model.Game, int64, error) {
	var games []model.Game
	var total int64

	if err := r.db.WithContext(ctx).Model(&model.Game{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&games).Error; err != nil {
		return nil, 0, err
	}

	return games, total, nil
}

func (r *gameRepository) Update(ctx context.Context, game *model.Game) error {
	return r.db.WithContext(ctx).Save(game).Error
}

func (r *gameRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Game{}, id).Error
}
