package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fardhanrasya/gamify-api/internal/config"
	"github.com/fardhanrasya/gamify-api/internal/dto"
	"github.com/fardhanrasya/gamify-api/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
		Total int64 `json:"total"`
		Pages int   `json:"pages"`
	} `json:"pagination"`
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

func setupServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)
	return NewServer(db, nil, &config.Config{}), db
}

func httpDo(srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		b, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestRegisterEventAndDuplicate(t *testing.T) {
	srv, _ := setupServer(t)

	w := httpDo(srv, "POST", "/api/events/register", dto.RegisterEventRequest{Name: "order_create"})
	require.Equal(t, http.StatusCreated, w.Code)
	require.True(t, decode(t, w).Success)

	w = httpDo(srv, "POST", "/api/events/register", dto.RegisterEventRequest{Name: "order_create"})
	require.Equal(t, http.StatusConflict, w.Code)
	require.False(t, decode(t, w).Success)
}

func TestSubmitUnknownEvent(t *testing.T) {
	srv, _ := setupServer(t)

	w := httpDo(srv, "POST", "/api/events", dto.SubmitEventRequest{Event: "nope", PlayerID: "1"})
	require.Equal(t, http.StatusNotFound, w.Code)
	require.False(t, decode(t, w).Success)
}

func TestSubmitEventValidation(t *testing.T) {
	srv, _ := setupServer(t)

	w := httpDo(srv, "POST", "/api/events", map[string]string{"event": "order_create"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.False(t, decode(t, w).Success)
}

func TestEventRolloutEndToEnd(t *testing.T) {
	srv, db := setupServer(t)

	// Register the event type and set up one mission with two subscribed
	// tasks and an attached reward.
	w := httpDo(srv, "POST", "/api/events/register", dto.RegisterEventRequest{Name: "order_create"})
	require.Equal(t, http.StatusCreated, w.Code)
	var event model.Event
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &event))

	w = httpDo(srv, "POST", "/api/admin/missions", dto.CreateMissionRequest{Name: "First Orders"})
	require.Equal(t, http.StatusCreated, w.Code)
	var mission model.Mission
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &mission))

	w = httpDo(srv, "POST", "/api/admin/tasks", dto.CreateTaskRequest{
		MissionID: mission.ID, EventID: event.ID, Name: "Place an order", Points: 10,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = httpDo(srv, "POST", "/api/admin/tasks", dto.CreateTaskRequest{
		MissionID: mission.ID, EventID: event.ID, Name: "Bonus order", Points: 15, IsOptional: true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = httpDo(srv, "POST", "/api/admin/rewards", dto.CreateRewardRequest{
		MissionID: mission.ID, Name: "Free shipping", Value: `{"expirationDays": 30}`,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// One event completes both tasks, the mission, and grants the reward.
	w = httpDo(srv, "POST", "/api/events", dto.SubmitEventRequest{Event: "order_create", PlayerID: "42"})
	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	require.True(t, env.Success)

	var result dto.EventResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.Len(t, result.TaskUpdates, 2)
	require.Len(t, result.MissionUpdates, 1)
	require.Equal(t, model.StatusCompleted, result.MissionUpdates[0].Status)
	require.Equal(t, 25, result.MissionUpdates[0].PointsEarned)
	require.Equal(t, 100, result.MissionUpdates[0].ProgressPercentage)
	require.Len(t, result.RewardUpdates, 1)

	// Mission detail reflects the player's progress.
	w = httpDo(srv, "GET", fmt.Sprintf("/api/missions/%d?playerId=42", mission.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail dto.MissionResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &detail))
	require.Equal(t, model.StatusCompleted, detail.Status)
	require.Len(t, detail.Tasks, 2)

	// Re-sending the same event is a successful no-op.
	w = httpDo(srv, "POST", "/api/events", dto.SubmitEventRequest{Event: "order_create", PlayerID: "42"})
	require.Equal(t, http.StatusOK, w.Code)
	env = decode(t, w)
	require.True(t, env.Success)
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.Empty(t, result.TaskUpdates)
	require.Empty(t, result.MissionUpdates)
	require.Empty(t, result.RewardUpdates)

	// The reward shows up once and can be claimed once.
	w = httpDo(srv, "GET", "/api/rewards?playerId=42", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rewards []dto.PlayerRewardResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &rewards))
	require.Len(t, rewards, 1)
	require.Equal(t, model.RewardStatusEarned, rewards[0].Status)

	w = httpDo(srv, "POST", fmt.Sprintf("/api/rewards/%d/claim", rewards[0].ID), dto.ClaimRewardRequest{PlayerID: "42"})
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, decode(t, w).Success)

	w = httpDo(srv, "POST", fmt.Sprintf("/api/rewards/%d/claim", rewards[0].ID), dto.ClaimRewardRequest{PlayerID: "42"})
	require.Equal(t, http.StatusOK, w.Code)
	env = decode(t, w)
	require.False(t, env.Success)
	require.Equal(t, "reward already claimed", env.Message)

	// Leaderboard sees the points; recalculation assigns rank 1.
	w = httpDo(srv, "POST", "/api/leaderboard/recalculate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = httpDo(srv, "GET", "/api/leaderboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var entries []dto.LeaderboardEntryResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &entries))
	require.Len(t, entries, 1)
	require.Equal(t, "42", entries[0].PlayerID)
	require.Equal(t, 25, entries[0].TotalPoints)
	require.Equal(t, 1, entries[0].Rank)

	// Sanity check the stored log row.
	var logs int64
	require.NoError(t, db.Model(&model.EventLog{}).Count(&logs).Error)
	require.EqualValues(t, 2, logs)
}

func TestSkipRequiredTaskOverHTTP(t *testing.T) {
	srv, _ := setupServer(t)

	w := httpDo(srv, "POST", "/api/events/register", dto.RegisterEventRequest{Name: "order_create"})
	var event model.Event
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &event))

	w = httpDo(srv, "POST", "/api/admin/missions", dto.CreateMissionRequest{Name: "M"})
	var mission model.Mission
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &mission))

	w = httpDo(srv, "POST", "/api/admin/tasks", dto.CreateTaskRequest{
		MissionID: mission.ID, EventID: event.ID, Name: "Place an order", Points: 10,
	})
	var task model.Task
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &task))

	w = httpDo(srv, "PATCH", fmt.Sprintf("/api/tasks/%d/skip", task.ID), dto.TaskActionRequest{PlayerID: "42"})
	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	require.False(t, env.Success)
	require.Equal(t, "task 'Place an order' is required and cannot be skipped", env.Message)
}

func TestProcessorPauseOverHTTP(t *testing.T) {
	srv, _ := setupServer(t)

	w := httpDo(srv, "POST", "/api/events/register", dto.RegisterEventRequest{Name: "order_create"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = httpDo(srv, "POST", "/api/admin/processor/pause", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = httpDo(srv, "POST", "/api/events", dto.SubmitEventRequest{Event: "order_create", PlayerID: "1"})
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.False(t, decode(t, w).Success)

	w = httpDo(srv, "POST", "/api/admin/processor/resume", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = httpDo(srv, "POST", "/api/events", dto.SubmitEventRequest{Event: "order_create", PlayerID: "1"})
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, decode(t, w).Success)
}

func TestRateLimitReleasedOnFailedSubmission(t *testing.T) {
	db := openTestDB(t)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	srv := NewServer(db, client, &config.Config{EventRateLimit: time.Minute})

	w := httpDo(srv, "POST", "/api/events/register", dto.RegisterEventRequest{Name: "order_create"})
	require.Equal(t, http.StatusCreated, w.Code)

	// A rejected submission consumes the window but gives it back.
	w = httpDo(srv, "POST", "/api/events", dto.SubmitEventRequest{Event: "nope", PlayerID: "1"})
	require.Equal(t, http.StatusNotFound, w.Code)

	w = httpDo(srv, "POST", "/api/events", dto.SubmitEventRequest{Event: "order_create", PlayerID: "1"})
	require.Equal(t, http.StatusOK, w.Code)

	// A successful submission holds the window for the full duration.
	w = httpDo(srv, "POST", "/api/events", dto.SubmitEventRequest{Event: "order_create", PlayerID: "1"})
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.False(t, decode(t, w).Success)

	// Windows are per player.
	w = httpDo(srv, "POST", "/api/events", dto.SubmitEventRequest{Event: "order_create", PlayerID: "2"})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAdminAPIKeyGuard(t *testing.T) {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Player{}, &model.Game{}, &model.Mission{}, &model.Task{}, &model.Event{}))

	srv := NewServer(db, nil, &config.Config{AdminAPIKey: "secret"})

	w := httpDo(srv, "POST", "/api/admin/missions", dto.CreateMissionRequest{Name: "M"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest("POST", "/api/admin/missions", bytes.NewReader([]byte(`{"name":"M"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", "secret")
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
}
