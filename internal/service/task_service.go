package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fardhanrasya/gamify-api/internal/dto"
	"github.com/fardhanrasya/gamify-api/internal/model"
	"github.com/fardhanrasya/gamify-api/internal/repository"
	"gorm.io/gorm"
)

type TaskService interface {
	ListTasks(ctx context.Context, filter dto.TaskFilter) ([]dto.TaskResponse, int64, error)
	SkipTask(ctx context.Context, taskID uint, playerExternalID string) (*dto.TaskActionResult, error)
	CompleteTask(ctx context.Context, taskID uint, playerExternalID string) (*dto.TaskActionResult, error)
	CreateTask(ctx context.Context, req dto.CreateTaskRequest) (*model.Task, error)
	UpdateTask(ctx context.Context, id uint, req dto.UpdateTaskRequest) (*model.Task, error)
	DeleteTask(ctx context.Context, id uint) error
}

type taskService struct {
	db       *gorm.DB
	tasks    repository.TaskRepository
	missions repository.MissionRepository
	players  repository.PlayerRepository
	progress repository.ProgressRepository
}

func NewTaskService(db *gorm.DB, tasks repository.TaskRepository, missions repository.MissionRepository, players repository.PlayerRepository, progress repository.ProgressRepository) TaskService {
	return &taskService{db: db, tasks: tasks, missions: missions, players: players, progress: progress}
}

func (s *taskService) ListTasks(ctx context.Context, filter dto.TaskFilter) ([]dto.TaskResponse, int64, error) {
	tasks, total, err := s.tasks.FindAll(ctx, filter.MissionID, filter.Offset(), filter.Limit)
	if err != nil {
		return nil, 0, err
	}

	var progressByTask map[uint]model.TaskProgress
	if filter.PlayerID != "" {
		player, err := s.players.FindByExternalID(ctx, filter.PlayerID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, err
		}
		if err == nil {
			ids := make([]uint, 0, len(tasks))
			for _, task := range tasks {
				ids = append(ids, task.ID)
			}
			progressByTask, err = s.progress.FindTaskProgressMap(ctx, player.ID, ids)
			if err != nil {
				return nil, 0, err
			}
		}
	}

	responses := make([]dto.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		resp := dto.TaskResponse{
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
		if row, ok := progressByTask[task.ID]; ok {
			resp.Status = row.Status
			resp.CompletedAt = row.CompletedAt
		}
		responses = append(responses, resp)
	}

	return responses, total, nil
}

// SkipTask marks an optional task skipped. Rule violations come back as
// structured failures, not errors.
func (s *taskService) SkipTask(ctx context.Context, taskID uint, playerExternalID string) (*dto.TaskActionResult, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	player, err := s.players.GetOrCreate(ctx, playerExternalID)
	if err != nil {
		return nil, err
	}

	current, err := s.progress.FindTaskProgress(ctx, player.ID, task.ID)
	if err != nil {
		return nil, err
	}

	if current != nil && current.Status == model.StatusCompleted {
		return &dto.TaskActionResult{Success: false, Message: "task already completed"}, nil
	}
	if current != nil && current.Status == model.StatusSkipped {
		return &dto.TaskActionResult{Success: false, Message: "task already skipped"}, nil
	}
	if !task.IsOptional {
		return &dto.TaskActionResult{
			Success: false,
			Message: fmt.Sprintf("task '%s' is required and cannot be skipped", task.Name),
		}, nil
	}

	now := time.Now()
	var update *dto.MissionUpdate
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		progress := repository.NewProgressRepository(tx)
		if err := progress.SkipTask(ctx, player.ID, task.ID, now); err != nil {
			return err
		}

		update, _, err = recomputeMission(ctx, tx, player, task.MissionID, now, map[uint]bool{})
		return err
	})
	if err != nil {
		return nil, err
	}

	return &dto.TaskActionResult{
		Success: true,
		Task: &dto.TaskResponse{
			ID:         task.ID,
			MissionID:  task.MissionID,
			EventID:    task.EventID,
			Name:       task.Name,
			Points:     task.Points,
			IsOptional: task.IsOptional,
			Status:     model.StatusSkipped,
		},
		Mission: update,
	}, nil
}

// CompleteTask is the explicit, non-event completion path. It follows the
// processor's idempotency rule and triggers the same mission recompute.
func (s *taskService) CompleteTask(ctx context.Context, taskID uint, playerExternalID string) (*dto.TaskActionResult, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	player, err := s.players.GetOrCreate(ctx, playerExternalID)
	if err != nil {
		return nil, err
	}

	current, err := s.progress.FindTaskProgress(ctx, player.ID, task.ID)
	if err != nil {
		return nil, err
	}
	if current != nil && current.Status == model.StatusCompleted {
		return &dto.TaskActionResult{Success: false, Message: "task already completed"}, nil
	}

	now := time.Now()
	var update *dto.MissionUpdate
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		players := repository.NewPlayerRepository(tx)
		progress := repository.NewProgressRepository(tx)
		boards := repository.NewLeaderboardRepository(tx)

		if err := progress.CompleteTask(ctx, player.ID, task.ID, task.Points, now); err != nil {
			return err
		}
		if err := players.AddPoints(ctx, player.ID, task.Points); err != nil {
			return err
		}
		if err := players.IncrementCounters(ctx, player.ID, 1, 0); err != nil {
			return err
		}
		if err := boards.AddScore(ctx, player.ID, task.Points, 1, 0); err != nil {
			return err
		}

		update, _, err = recomputeMission(ctx, tx, player, task.MissionID, now, map[uint]bool{})
		return err
	})
	if err != nil {
		return nil, err
	}

	return &dto.TaskActionResult{
		Success: true,
		Task: &dto.TaskResponse{
			ID:          task.ID,
			MissionID:   task.MissionID,
			EventID:     task.EventID,
			Name:        task.Name,
			Points:      task.Points,
			IsOptional:  task.IsOptional,
			Status:      model.StatusCompleted,
			CompletedAt: &now,
		},
		Mission: update,
	}, nil
}

func (s *taskService) CreateTask(ctx context.Context, req dto.CreateTaskRequest) (*model.Task, error) {
	if _, err := s.missions.FindByID(ctx, req.MissionID); err != nil {
		return nil, err
	}

	task := &model.Task{
		MissionID:  req.MissionID,
		EventID:    req.EventID,
		Name:       req.Name,
		Points:     req.Points,
		IsOptional: req.IsOptional,
		OrderIndex: req.OrderIndex,
		Active:     true,
	}
	if req.Active != nil {
		task.Active = *req.Active
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) UpdateTask(ctx context.Context, id uint, req dto.UpdateTaskRequest) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.EventID != nil {
		task.EventID = *req.EventID
	}
	if req.Name != nil {
		task.Name = *req.Name
	}
	if req.Points != nil {
		task.Points = *req.Points
	}
	if req.IsOptional != nil {
		task.IsOptional = *req.IsOptional
	}
	if req.OrderIndex != nil {
		task.OrderIndex = *req.OrderIndex
	}
	if req.Active != nil {
		task.Active = *req.Active
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) DeleteTask(ctx context.Context, id uint) error {
	if _, err := s.tasks.FindByID(ctx, id); err != nil {
		return err
	}
	return s.tasks.Delete(ctx, id)
}
