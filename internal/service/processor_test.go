package service

import (
	"context"
	"errors"
	"testing"

	"github.com/fardhanrasya/gamify-api/internal/dto"
	"github.com/fardhanrasya/gamify-api/internal/model"
	"github.com/fardhanrasya/gamify-api/pkg/apperror"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProcessor(db *gorm.DB) EventProcessor {
	return NewEventProcessor(db, NewProcessorSwitch(nil))
}

func TestProcessEventCompletesMissionAndGrantsReward(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	event := seedEvent(t, db, "order_create")
	mission := seedMission(t, db, &model.Mission{
		Name:                         "First Orders",
		Active:                       true,
		OptionalTasksCountAsComplete: true,
		AffectsLeaderboard:           true,
		BonusPoints:                  50,
	})
	seedTask(t, db, &model.Task{MissionID: mission.ID, EventID: event.ID, Name: "Place an order", Points: 10, Active: true})
	seedTask(t, db, &model.Task{MissionID: mission.ID, EventID: event.ID, Name: "Bonus order", Points: 15, IsOptional: true, Active: true})
	seedReward(t, db, &model.Reward{MissionID: mission.ID, Name: "Free shipping", Value: `{"expirationDays": 30}`})

	result, err := newProcessor(db).ProcessEvent(ctx, dto.SubmitEventRequest{
		Event:    "order_create",
		PlayerID: "42",
	})
	require.NoError(t, err)

	require.Len(t, result.TaskUpdates, 2)
	for _, tu := range result.TaskUpdates {
		require.Equal(t, model.StatusCompleted, tu.Status)
	}

	require.Len(t, result.MissionUpdates, 1)
	mu := result.MissionUpdates[0]
	require.Equal(t, model.StatusCompleted, mu.Status)
	require.Equal(t, 25, mu.PointsEarned)
	require.Equal(t, 100, mu.ProgressPercentage)

	require.Len(t, result.RewardUpdates, 1)
	require.Equal(t, model.RewardStatusEarned, result.RewardUpdates[0].Status)
	require.NotNil(t, result.RewardUpdates[0].ExpiresAt)

	// Actor was auto-created with the rolled up counters.
	var player model.Player
	require.NoError(t, db.Where("external_id = ?", "42").First(&player).Error)
	require.Equal(t, 75, player.TotalPoints) // 25 task points + 50 mission bonus
	require.Equal(t, 2, player.CompletedTasks)
	require.Equal(t, 1, player.CompletedMissions)

	var entry model.LeaderboardEntry
	require.NoError(t, db.Where("player_id = ?", player.ID).First(&entry).Error)
	require.Equal(t, 75, entry.TotalPoints)
	require.Equal(t, 2, entry.CompletedTasks)
	require.Equal(t, 1, entry.CompletedMissions)

	var logEntry model.EventLog
	require.NoError(t, db.Where("player_id = ?", player.ID).First(&logEntry).Error)
	require.True(t, logEntry.Processed)
}

func TestProcessEventIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	event := seedEvent(t, db, "order_create")
	mission := seedMission(t, db, &model.Mission{Name: "Orders", Active: true, OptionalTasksCountAsComplete: true})
	seedTask(t, db, &model.Task{MissionID: mission.ID, EventID: event.ID, Name: "Order", Points: 10, Active: true})
	seedReward(t, db, &model.Reward{MissionID: mission.ID, Name: "Badge"})

	processor := newProcessor(db)
	req := dto.SubmitEventRequest{Event: "order_create", PlayerID: "42"}

	first, err := processor.ProcessEvent(ctx, req)
	require.NoError(t, err)
	require.Len(t, first.TaskUpdates, 1)
	require.Len(t, first.RewardUpdates, 1)

	// Same event again: success, but nothing is re-awarded.
	second, err := processor.ProcessEvent(ctx, req)
	require.NoError(t, err)
	require.Empty(t, second.TaskUpdates)
	require.Empty(t, second.MissionUpdates)
	require.Empty(t, second.RewardUpdates)

	var player model.Player
	require.NoError(t, db.Where("external_id = ?", "42").First(&player).Error)
	require.Equal(t, 10, player.TotalPoints)

	var grants int64
	require.NoError(t, db.Model(&model.PlayerReward{}).Count(&grants).Error)
	require.EqualValues(t, 1, grants)
}

func TestProcessEventUnregistered(t *testing.T) {
	db := newTestDB(t)

	_, err := newProcessor(db).ProcessEvent(context.Background(), dto.SubmitEventRequest{
		Event:    "no_such_event",
		PlayerID: "42",
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestProcessEventNoMatchingTasks(t *testing.T) {
	db := newTestDB(t)
	seedEvent(t, db, "product_viewed")

	result, err := newProcessor(db).ProcessEvent(context.Background(), dto.SubmitEventRequest{
		Event:    "product_viewed",
		PlayerID: "7",
	})
	require.NoError(t, err)
	require.Empty(t, result.TaskUpdates)
	require.Empty(t, result.MissionUpdates)

	// The no-op is still logged as processed.
	var logEntry model.EventLog
	require.NoError(t, db.First(&logEntry).Error)
	require.True(t, logEntry.Processed)
}

func TestOptionalTaskStrictPolicy(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	orderEvent := seedEvent(t, db, "order_create")
	reviewEvent := seedEvent(t, db, "review_create")
	mission := seedMission(t, db, &model.Mission{
		Name:   "Strict",
		Active: true,
		// Unfinished optional tasks do not count here.
		OptionalTasksCountAsComplete: false,
	})
	seedTask(t, db, &model.Task{MissionID: mission.ID, EventID: orderEvent.ID, Name: "Order", Points: 10, Active: true})
	seedTask(t, db, &model.Task{MissionID: mission.ID, EventID: reviewEvent.ID, Name: "Review", Points: 5, IsOptional: true, Active: true})

	processor := newProcessor(db)

	result, err := processor.ProcessEvent(ctx, dto.SubmitEventRequest{Event: "order_create", PlayerID: "9"})
	require.NoError(t, err)
	require.Equal(t, model.StatusInProgress, result.MissionUpdates[0].Status)
	require.Equal(t, 66, result.MissionUpdates[0].ProgressPercentage) // floor(10/15*100)

	result, err = processor.ProcessEvent(ctx, dto.SubmitEventRequest{Event: "review_create", PlayerID: "9"})
	require.NoError(t, err)
	require.Equal(t, model.StatusCompleted, result.MissionUpdates[0].Status)
	require.Equal(t, 100, result.MissionUpdates[0].ProgressPercentage)
}

func TestOptionalTaskBypassPolicy(t *testing.T) {
	db := newTestDB(t)

	event := seedEvent(t, db, "order_create")
	mission := seedMission(t, db, &model.Mission{Name: "Lenient", Active: true, OptionalTasksCountAsComplete: true})
	seedTask(t, db, &model.Task{MissionID: mission.ID, EventID: event.ID, Name: "Order", Points: 10, Active: true})
	seedTask(t, db, &model.Task{MissionID: mission.ID, EventID: 9999, Name: "Untriggered optional", Points: 90, IsOptional: true, Active: true})

	result, err := newProcessor(db).ProcessEvent(context.Background(), dto.SubmitEventRequest{Event: "order_create", PlayerID: "9"})
	require.NoError(t, err)

	// The optional task never fired, but the mission still completes; only
	// literally completed tasks earn points.
	mu := result.MissionUpdates[0]
	require.Equal(t, model.StatusCompleted, mu.Status)
	require.Equal(t, 10, mu.PointsEarned)
	require.Equal(t, 10, mu.ProgressPercentage) // floor(10/100*100)
}

func TestOneEventCompletesTasksAcrossMissions(t *testing.T) {
	db := newTestDB(t)

	event := seedEvent(t, db, "order_create")
	first := seedMission(t, db, &model.Mission{Name: "A", Active: true, OptionalTasksCountAsComplete: true})
	second := seedMission(t, db, &model.Mission{Name: "B", Active: true, OptionalTasksCountAsComplete: true})
	seedTask(t, db, &model.Task{MissionID: first.ID, EventID: event.ID, Name: "A1", Points: 5, Active: true})
	seedTask(t, db, &model.Task{MissionID: second.ID, EventID: event.ID, Name: "B1", Points: 8, Active: true})

	result, err := newProcessor(db).ProcessEvent(context.Background(), dto.SubmitEventRequest{Event: "order_create", PlayerID: "11"})
	require.NoError(t, err)
	require.Len(t, result.TaskUpdates, 2)
	require.Len(t, result.MissionUpdates, 2)
	for _, mu := range result.MissionUpdates {
		require.Equal(t, model.StatusCompleted, mu.Status)
	}
}

func TestInactiveTasksIgnored(t *testing.T) {
	db := newTestDB(t)

	event := seedEvent(t, db, "order_create")
	mission := seedMission(t, db, &model.Mission{Name: "M", Active: true, OptionalTasksCountAsComplete: true})
	seedTask(t, db, &model.Task{MissionID: mission.ID, EventID: event.ID, Name: "Inactive", Points: 10, Active: false})

	result, err := newProcessor(db).ProcessEvent(context.Background(), dto.SubmitEventRequest{Event: "order_create", PlayerID: "3"})
	require.NoError(t, err)
	require.Empty(t, result.TaskUpdates)
}

func TestProcessorSwitchDefaultsEnabled(t *testing.T) {
	enabled, err := NewProcessorSwitch(nil).Enabled(context.Background())
	require.NoError(t, err)
	require.True(t, enabled)
}

func TestPausedProcessorRejectsEvents(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seedEvent(t, db, "order_create")

	toggle := NewProcessorSwitch(nil)
	require.NoError(t, toggle.Pause(ctx))

	processor := NewEventProcessor(db, toggle)
	_, err := processor.ProcessEvent(ctx, dto.SubmitEventRequest{Event: "order_create", PlayerID: "42"})
	require.ErrorIs(t, err, apperror.ErrProcessingPaused)

	// Rejection happens before any write: no actor, no log row.
	var players, logs int64
	require.NoError(t, db.Model(&model.Player{}).Count(&players).Error)
	require.NoError(t, db.Model(&model.EventLog{}).Count(&logs).Error)
	require.Zero(t, players)
	require.Zero(t, logs)

	require.NoError(t, toggle.Resume(ctx))
	result, err := processor.ProcessEvent(ctx, dto.SubmitEventRequest{Event: "order_create", PlayerID: "42"})
	require.NoError(t, err)
	require.Empty(t, result.TaskUpdates)
}
