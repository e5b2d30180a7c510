package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fardhanrasya/gamify-api/internal/dto"
	"github.com/fardhanrasya/gamify-api/internal/model"
	"github.com/fardhanrasya/gamify-api/internal/repository"
	"github.com/fardhanrasya/gamify-api/pkg/apperror"
	"gorm.io/gorm"
)

type EventService interface {
	RegisterEvent(ctx context.Context, req dto.RegisterEventRequest) (*model.Event, error)
	ListEvents(ctx context.Context, filter dto.PageFilter) ([]model.Event, int64, error)
	GetEvent(ctx context.Context, id uint) (*model.Event, error)
}

type eventService struct {
	events repository.EventRepository
}

func NewEventService(events repository.EventRepository) EventService {
	return &eventService{events: events}
}

func (s *eventService) RegisterEvent(ctx context.Context, req dto.RegisterEventRequest) (*model.Event, error) {
	existing, err := s.events.FindByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("event '%s' is already registered: %w", req.Name, apperror.ErrConflict)
	}

	event := &model.Event{Name: req.Name, Description: req.Description}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, filter dto.PageFilter) ([]model.Event, int64, error) {
	return s.events.FindAll(ctx, filter.Offset(), filter.Limit)
}

func (s *eventService) GetEvent(ctx context.Context, id uint) (*model.Event, error) {
	return s.events.FindByID(ctx, id)
}
