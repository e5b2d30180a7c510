package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/fardhanrasya/gamify-api/internal/dto"
	"github.com/fardhanrasya/gamify-api/internal/model"
	"github.com/fardhanrasya/gamify-api/internal/repository"
	"github.com/fardhanrasya/gamify-api/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventProcessor is the rollup engine. One incoming event completes every
// active task subscribed to its type, recomputes the affected missions and
// cascades into reward grants and leaderboard score updates.
type EventProcessor interface {
	ProcessEvent(ctx context.Context, req dto.SubmitEventRequest) (*dto.EventResult, error)
}

type eventProcessor struct {
	db     *gorm.DB
	toggle *ProcessorSwitch
}

func NewEventProcessor(db *gorm.DB, toggle *ProcessorSwitch) EventProcessor {
	return &eventProcessor{db: db, toggle: toggle}
}

func (p *eventProcessor) ProcessEvent(ctx context.Context, req dto.SubmitEventRequest) (*dto.EventResult, error) {
	enabled, err := p.toggle.Enabled(ctx)
	if err != nil {
		return nil, err
	}
	if !enabled {
		return nil, apperror.ErrProcessingPaused
	}

	now := time.Now()
	if req.Timestamp != nil {
		now = *req.Timestamp
	}

	result := &dto.EventResult{
		TraceID:        uuid.NewString(),
		PlayerID:       req.PlayerID,
		TaskUpdates:    []dto.TaskUpdate{},
		MissionUpdates: []dto.MissionUpdate{},
		RewardUpdates:  []dto.RewardUpdate{},
	}

	// The whole rollup runs in one transaction so a mid-rollup failure never
	// leaves a task completed with its mission unrecomputed.
	err = p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		players := repository.NewPlayerRepository(tx)
		events := repository.NewEventRepository(tx)
		tasks := repository.NewTaskRepository(tx)
		progress := repository.NewProgressRepository(tx)
		boards := repository.NewLeaderboardRepository(tx)

		player, err := players.GetOrCreate(ctx, req.PlayerID)
		if err != nil {
			return err
		}

		event, err := events.FindByName(ctx, req.Event)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.ErrEventNotRegistered
			}
			return err
		}

		logEntry := &model.EventLog{
			TraceID:    uuid.MustParse(result.TraceID),
			EventID:    event.ID,
			PlayerID:   player.ID,
			GameID:     req.GameID,
			OccurredAt: now,
		}
		if len(req.Properties) > 0 {
			payload, err := json.Marshal(req.Properties)
			if err != nil {
				return err
			}
			logEntry.Payload = string(payload)
		}
		if err := events.CreateLog(ctx, logEntry); err != nil {
			return err
		}

		matching, err := tasks.FindActiveByEventID(ctx, event.ID)
		if err != nil {
			return err
		}

		// Tracks which missions completed during this call so the reward and
		// leaderboard cascade fires exactly once per mission.
		completedMissions := make(map[uint]bool)
		missionUpdateIdx := make(map[uint]int)

		for _, task := range matching {
			current, err := progress.FindTaskProgress(ctx, player.ID, task.ID)
			if err != nil {
				return err
			}
			if current != nil && current.Status == model.StatusCompleted {
				// Idempotent: re-sending the event never re-awards points.
				continue
			}

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

			result.TaskUpdates = append(result.TaskUpdates, dto.TaskUpdate{
				TaskID:    task.ID,
				MissionID: task.MissionID,
				Name:      task.Name,
				Status:    model.StatusCompleted,
				Points:    task.Points,
			})

			update, rewards, err := recomputeMission(ctx, tx, player, task.MissionID, now, completedMissions)
			if err != nil {
				return err
			}

			if idx, seen := missionUpdateIdx[task.MissionID]; seen {
				result.MissionUpdates[idx] = *update
			} else {
				missionUpdateIdx[task.MissionID] = len(result.MissionUpdates)
				result.MissionUpdates = append(result.MissionUpdates, *update)
			}
			result.RewardUpdates = append(result.RewardUpdates, rewards...)
		}

		return events.MarkLogProcessed(ctx, logEntry.ID)
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// recomputeMission reloads the mission's full task list and the player's
// per-task progress, derives completion state and upserts the mission
// progress row. When the mission transitions to completed in this call it
// grants the mission's rewards and applies the leaderboard cascade.
func recomputeMission(ctx context.Context, tx *gorm.DB, player *model.Player, missionID uint, now time.Time, completedThisCall map[uint]bool) (*dto.MissionUpdate, []dto.RewardUpdate, error) {
	missions := repository.NewMissionRepository(tx)
	progress := repository.NewProgressRepository(tx)
	players := repository.NewPlayerRepository(tx)
	boards := repository.NewLeaderboardRepository(tx)

	mission, err := missions.FindByIDWithTasks(ctx, missionID)
	if err != nil {
		return nil, nil, err
	}

	taskIDs := make([]uint, 0, len(mission.Tasks))
	for _, task := range mission.Tasks {
		taskIDs = append(taskIDs, task.ID)
	}

	progressByTask, err := progress.FindTaskProgressMap(ctx, player.ID, taskIDs)
	if err != nil {
		return nil, nil, err
	}

	completedTasks := 0
	pointsEarned := 0
	totalTaskPoints := 0
	for _, task := range mission.Tasks {
		totalTaskPoints += task.Points

		row, has := progressByTask[task.ID]
		done := has && row.Status == model.StatusCompleted
		skipped := has && row.Status == model.StatusSkipped
		if done {
			// Only a literally completed task earns its points.
			pointsEarned += task.Points
		}

		// Skipped tasks are settled either way; unfinished optional tasks
		// count only when the mission's bypass policy says so.
		if done || skipped || (task.IsOptional && mission.OptionalTasksCountAsComplete) {
			completedTasks++
		}
	}

	status := model.StatusInProgress
	if completedTasks == len(mission.Tasks) && len(mission.Tasks) > 0 {
		status = model.StatusCompleted
	}

	percentage := 0
	if totalTaskPoints > 0 {
		percentage = pointsEarned * 100 / totalTaskPoints
	}

	previous, err := progress.FindMissionProgress(ctx, player.ID, missionID)
	if err != nil {
		return nil, nil, err
	}
	wasCompleted := previous != nil && previous.Status == model.StatusCompleted

	row := &model.MissionProgress{
		PlayerID:           player.ID,
		MissionID:          missionID,
		Status:             status,
		PointsEarned:       pointsEarned,
		ProgressPercentage: percentage,
		StartedAt:          &now,
	}
	if status == model.StatusCompleted {
		row.CompletedAt = &now
	}
	if err := progress.UpsertMissionProgress(ctx, row); err != nil {
		return nil, nil, err
	}

	update := &dto.MissionUpdate{
		MissionID:          missionID,
		Name:               mission.Name,
		Status:             status,
		PointsEarned:       pointsEarned,
		ProgressPercentage: percentage,
	}

	var rewardUpdates []dto.RewardUpdate
	justCompleted := status == model.StatusCompleted && !wasCompleted && !completedThisCall[missionID]
	if justCompleted {
		completedThisCall[missionID] = true
		update.JustCompleted = true

		if err := players.IncrementCounters(ctx, player.ID, 0, 1); err != nil {
			return nil, nil, err
		}

		bonus := 0
		if mission.AffectsLeaderboard {
			bonus = mission.BonusPoints
		}
		if err := boards.AddScore(ctx, player.ID, bonus, 0, 1); err != nil {
			return nil, nil, err
		}
		if bonus > 0 {
			if err := players.AddPoints(ctx, player.ID, bonus); err != nil {
				return nil, nil, err
			}
		}

		rewardUpdates, err = grantMissionRewards(ctx, tx, player, mission, now)
		if err != nil {
			return nil, nil, err
		}
	}

	return update, rewardUpdates, nil
}

// grantMissionRewards inserts an earned grant for every reward attached to
// the mission that the player does not already hold.
func grantMissionRewards(ctx context.Context, tx *gorm.DB, player *model.Player, mission *model.Mission, now time.Time) ([]dto.RewardUpdate, error) {
	rewards := repository.NewRewardRepository(tx)

	attached, err := rewards.FindByMissionID(ctx, mission.ID)
	if err != nil {
		return nil, err
	}

	var updates []dto.RewardUpdate
	for _, reward := range attached {
		held, err := rewards.HasGrant(ctx, player.ID, reward.ID)
		if err != nil {
			return nil, err
		}
		if held {
			continue
		}

		grant := &model.PlayerReward{
			PlayerID: player.ID,
			RewardID: reward.ID,
			Status:   model.RewardStatusEarned,
		}
		if days := rewardExpirationDays(reward.Value); days > 0 {
			expiry := now.AddDate(0, 0, days)
			grant.ExpiresAt = &expiry
		}

		if err := rewards.CreateGrant(ctx, grant); err != nil {
			return nil, err
		}

		updates = append(updates, dto.RewardUpdate{
			RewardID:  reward.ID,
			MissionID: mission.ID,
			Name:      reward.Name,
			Status:    model.RewardStatusEarned,
			ExpiresAt: grant.ExpiresAt,
		})
	}

	return updates, nil
}

// rewardExpirationDays reads "expirationDays" out of the reward's opaque
// value blob. Anything unparseable means no expiry.
func rewardExpirationDays(value string) int {
	if value == "" {
		return 0
	}
	var parsed struct {
		ExpirationDays int `json:"expirationDays"`
	}
	if err := json.Unmarshal([]byte(value), &parsed); err != nil {
		return 0
	}
	return parsed.ExpirationDays
}
