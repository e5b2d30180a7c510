package repository

import (
	"context"
	"errors"
	"time"

	"github.com/fardhanrasya/gamify-api/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository interface {
	FindTaskProgress(ctx context.Context, playerID, taskID uint) (*model.TaskProgress, error)
	FindTaskProgressMap(ctx context.Context, playerID uint, taskIDs []uint) (map[uint]model.TaskProgress, error)
	CompleteTask(ctx context.Context, playerID, taskID uint, points int, at time.Time) error
	SkipTask(ctx context.Context, playerID, taskID uint, at time.Time) error

	FindMissionProgress(ctx context.Context, playerID, missionID uint) (*model.MissionProgress, error)
	FindMissionProgressMap(ctx context.Context, playerID uint, missionIDs []uint) (map[uint]model.MissionProgress, error)
	UpsertMissionProgress(ctx context.Context, progress *model.MissionProgress) error
}

type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) FindTaskProgress(ctx context.Context, playerID, taskID uint) (*model.TaskProgress, error) {
	var progress model.TaskProgress
	err := r.db.WithContext(ctx).
		Where("player_id = ? AND task_id = ?", playerID, taskID).
		First(&progress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &progress, nil
}

func (r *progressRepository) FindTaskProgressMap(ctx context.Context, playerID uint, taskIDs []uint) (map[uint]model.TaskProgress, error) {
	result := make(map[uint]model.TaskProgress, len(taskIDs))
	if len(taskIDs) == 0 {
		return result, nil
	}

	var rows []model.TaskProgress
	err := r.db.WithContext(ctx).
		Where("player_id = ? AND task_id IN ?", playerID, taskIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.TaskID] = row
	}
	return result, nil
}

// CompleteTask writes the completed state as a single atomic upsert keyed by
// the (player_id, task_id) unique index.
func (r *progressRepository) CompleteTask(ctx context.Context, playerID, taskID uint, points int, at time.Time) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "player_id"}, {Name: "task_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"status":        model.StatusCompleted,
			"points_earned": points,
			"completed_at":  at,
		}),
	}).Create(&model.TaskProgress{
		PlayerID:     playerID,
		TaskID:       taskID,
		Status:       model.StatusCompleted,
		PointsEarned: points,
		StartedAt:    &at,
		CompletedAt:  &at,
	}).Error
}

func (r *progressRepository) SkipTask(ctx context.Context, playerID, taskID uint, at time.Time) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "player_id"}, {Name: "task_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"status":     model.StatusSkipped,
			"skipped_at": at,
		}),
	}).Create(&model.TaskProgress{
		PlayerID:  playerID,
		TaskID:    taskID,
		Status:    model.StatusSkipped,
		StartedAt: &at,
		SkippedAt: &at,
	}).Error
}

func (r *progressRepository) FindMissionProgress(ctx context.Context, playerID, missionID uint) (*model.MissionProgress, error) {
	var progress model.MissionProgress
	err := r.db.WithContext(ctx).
		Where("player_id = ? AND mission_id = ?", playerID, missionID).
		First(&progress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &progress, nil
}

func (r *progressRepository) FindMissionProgressMap(ctx context.Context, playerID uint, missionIDs []uint) (map[uint]model.MissionProgress, error) {
	result := make(map[uint]model.MissionProgress, len(missionIDs))
	if len(missionIDs) == 0 {
		return result, nil
	}

	var rows []model.MissionProgress
	err := r.db.WithContext(ctx).
		Where("player_id = ? AND mission_id IN ?", playerID, missionIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.MissionID] = row
	}
	return result, nil
}

func (r *progressRepository) UpsertMissionProgress(ctx context.Context, progress *model.MissionProgress) error {
	assignments := map[string]interface{}{
		"status":              progress.Status,
		"points_earned":       progress.PointsEarned,
		"progress_percentage": progress.ProgressPercentage,
	}
	if progress.CompletedAt != nil {
		assignments["completed_at"] = *progress.CompletedAt
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "player_id"}, {Name: "mission_id"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(progress).Error
}
