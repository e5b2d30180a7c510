package service

import (
	"fmt"
	"testing"

	"github.com/fardhanrasya/gamify-api/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a per-test in-memory database to avoid cross-test
// interference.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Player{},
		&model.Game{},
		&model.Mission{},
		&model.Task{},
		&model.Event{},
		&model.EventLog{},
		&model.TaskProgress{},
		&model.MissionProgress{},
		&model.Reward{},
		&model.PlayerReward{},
		&model.LeaderboardEntry{},
	))
	return db
}

func seedEvent(t *testing.T, db *gorm.DB, name string) *model.Event {
	t.Helper()
	event := &model.Event{Name: name}
	require.NoError(t, db.Create(event).Error)
	return event
}

func seedMission(t *testing.T, db *gorm.DB, mission *model.Mission) *model.Mission {
	t.Helper()
	if mission.TargetType == "" {
		mission.TargetType = model.TargetAll
	}
	require.NoError(t, db.Create(mission).Error)
	return mission
}

func seedTask(t *testing.T, db *gorm.DB, task *model.Task) *model.Task {
	t.Helper()
	require.NoError(t, db.Create(task).Error)
	return task
}

func seedReward(t *testing.T, db *gorm.DB, reward *model.Reward) *model.Reward {
	t.Helper()
	require.NoError(t, db.Create(reward).Error)
	return reward
}

func seedPlayer(t *testing.T, db *gorm.DB, externalID string) *model.Player {
	t.Helper()
	player := &model.Player{ExternalID: externalID, Name: externalID}
	require.NoError(t, db.Create(player).Error)
	return player
}
