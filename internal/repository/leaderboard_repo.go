package repository

import (
	"context"

	"github.com/fardhanrasya/gamify-api/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LeaderboardRepository interface {
	AddScore(ctx context.Context, playerID uint, points, tasksCompleted, missionsCompleted int) error
	FindByPlayer(ctx context.Context, playerID uint) (*model.LeaderboardEntry, error)
	FindAllOrdered(ctx context.Context, offset, limit int) ([]model.LeaderboardEntry, int64, error)
	FindAround(ctx context.Context, points int, above, below int) ([]model.LeaderboardEntry, error)
	CountWithMorePoints(ctx context.Context, points int) (int64, error)
	UpdateRank(ctx context.Context, entryID uint, rank int) error
}

type leaderboardRepository struct {
	db *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

// AddScore upserts the player's aggregate row, incrementing totals. Rank is
// left untouched; it is only rewritten by the recalculation pass.
func (r *leaderboardRepository) AddScore(ctx context.Context, playerID uint, points, tasksCompleted, missionsCompleted int) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "player_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_points":       gorm.Expr("leaderboard_entries.total_points + ?", points),
			"completed_tasks":    gorm.Expr("leaderboard_entries.completed_tasks + ?", tasksCompleted),
			"completed_missions": gorm.Expr("leaderboard_entries.completed_missions + ?", missionsCompleted),
		}),
	}).Create(&model.LeaderboardEntry{
		PlayerID:          playerID,
		TotalPoints:       points,
		CompletedTasks:    tasksCompleted,
		CompletedMissions: missionsCompleted,
	}).Error
}

func (r *leaderboardRepository) FindByPlayer(ctx context.Context, playerID uint) (*model.LeaderboardEntry, error) {
	var entry model.LeaderboardEntry
	err := r.db.WithContext(ctx).
		Preload("Player").
		Where("player_id = ?", playerID).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *leaderboardRepository) FindAllOrdered(ctx context.Context, offset, limit int) ([]model.LeaderboardEntry, int64, error) {
	var entries []model.LeaderboardEntry
	var total int64

	if err := r.db.WithContext(ctx).Model(&model.LeaderboardEntry{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).
		Preload("Player").
		Order("total_points DESC, player_id ASC")
	if limit > 0 {
		query = query.Offset(offset).Limit(limit)
	}

	if err := query.Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// FindAround returns neighbours of a point value using point comparisons,
// not the rank column, so it stays correct between recalculation passes.
func (r *leaderboardRepository) FindAround(ctx context.Context, points int, above, below int) ([]model.LeaderboardEntry, error) {
	var higher []model.LeaderboardEntry
	err := r.db.WithContext(ctx).
		Preload("Player").
		Where("total_points > ?", points).
		Order("total_points ASC").
		Limit(above).
		Find(&higher).Error
	if err != nil {
		return nil, err
	}

	var lower []model.LeaderboardEntry
	err = r.db.WithContext(ctx).
		Preload("Player").
		Where("total_points < ?", points).
		Order("total_points DESC").
		Limit(below).
		Find(&lower).Error
	if err != nil {
		return nil, err
	}

	// higher came back ascending; reverse into points-descending order.
	entries := make([]model.LeaderboardEntry, 0, len(higher)+len(lower))
	for i := len(higher) - 1; i >= 0; i-- {
		entries = append(entries, higher[i])
	}
	entries = append(entries, lower...)
	return entries, nil
}

func (r *leaderboardRepository) CountWithMorePoints(ctx context.Context, points int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.LeaderboardEntry{}).
		Where("total_points > ?", points).
		Count(&count).Error
	return count, err
}

func (r *leaderboardRepository) UpdateRank(ctx context.Context, entryID uint, rank int) error {
	return r.db.WithContext(ctx).Model(&model.LeaderboardEntry{}).
		Where("id = ?", entryID).
		Update("rank", rank).Error
}
