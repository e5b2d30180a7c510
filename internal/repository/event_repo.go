package repository

import (
	"context"

	"github.com/fardhanrasya/gamify-api/internal/model"
	"gorm.io/gorm"
)

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	FindByName(ctx context.Context, name string) (*model.Event, error)
	FindByID(ctx context.Context, id uint) (*model.Event, error)
	FindAll(ctx context.Context, offset, limit int) ([]model.Event, int64, error)
	CreateLog(ctx context.Context, entry *model.EventLog) error
	MarkLogProcessed(ctx context.Context, logID uint) error
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) FindByName(ctx context.Context, name string) (*model.Event, error) {
	var event model.Event
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindByID(ctx context.Context, id uint) (*model.Event, error) {
	var event model.Event
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindAll(ctx context.Context, offset, limit int) ([]model.Event, int64, error) {
	var events []model.Event
	var total int64

	if err := r.db.WithContext(ctx).Model(&model.Event{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

func (r *eventRepository) CreateLog(ctx context.Context, entry *model.EventLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *eventRepository) MarkLogProcessed(ctx context.Context, logID uint) error {
	return r.db.WithContext(ctx).Model(&model.EventLog{}).
		Where("id = ?", logID).
		Update("processed", true).Error
}
