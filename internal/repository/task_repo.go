package repository

import (
	"context"

	"github.com/fardhanrasya/gamify-api/internal/model"
	"gorm.io/gorm"
)

type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id uint) (*model.Task, error)
	FindActiveByEventID(ctx context.Context, eventID uint) ([]model.Task, error)
	FindByMissionID(ctx context.Context, missionID uint) ([]model.Task, error)
	FindAll(ctx context.Context, missionID *uint, offset, limit int) ([]model.Task, int64, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id uint) error
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) FindActiveByEventID(ctx context.Context, eventID uint) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND active = ?", eventID, true).
		Order("order_index ASC, id ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) FindByMissionID(ctx context.Context, missionID uint) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("mission_id = ?", missionID).
		Order("order_index ASC, id ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) FindAll(ctx context.Context, missionID *uint, offset, limit int) ([]model.Task, int64, error) {
	var tasks []model.Task
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Task{})
	if missionID != nil {
		query = query.Where("mission_id = ?", *missionID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("mission_id ASC, order_index ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

func (r *taskRepository) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *taskRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Task{}, id).Error
}
