package handler

import (
	"strconv"

	"github.com/fardhanrasya/gamify-api/internal/dto"
	"github.com/fardhanrasya/gamify-api/internal/repository"
	"github.com/fardhanrasya/gamify-api/internal/service"
	"github.com/fardhanrasya/gamify-api/pkg/response"
	"github.com/fardhanrasya/gamify-api/pkg/validator"
	"github.com/gin-gonic/gin"
)

// AdminHandler hosts the content-management surface: games, missions, tasks,
// rewards and the processor pause toggle.
type AdminHandler struct {
	games    service.GameService
	missions service.MissionService
	tasks    service.TaskService
	rewards  service.RewardService
	players  repository.PlayerRepository
	toggle   *service.ProcessorSwitch
}

func NewAdminHandler(games service.GameService, missions service.MissionService, tasks service.TaskService, rewards service.RewardService, players repository.PlayerRepository, toggle *service.ProcessorSwitch) *AdminHandler {
	return &AdminHandler{
		games:    games,
		missions: missions,
		tasks:    tasks,
		rewards:  rewards,
		players:  players,
		toggle:   toggle,
	}
}

func (h *AdminHandler) CreateGame(c *gin.Context) {
	var req dto.CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.FormatValidationError(err))
		return
	}

	game, err := h.games.CreateGame(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, game)
}

func (h *AdminHandler) ListGames(c *gin.Context) {
	var filter dto.PageFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, validator.FormatValidationError(err))
		return
	}
	filter.Normalize()

	games, total, err := h.games.ListGames(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, games, response.NewPagination(filter.Page, filter.Limit, total))
}

func (h *AdminHandler) UpdateGame(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid game id")
		return
	}

	var req dto.UpdateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.FormatValidationError(err))
		return
	}

	game, err := h.games.UpdateGame(c.Request.Context(), uint(id), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, game)
}

func (h *AdminHandler) DeleteGame(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid game id")
		return
	}

	if err := h.games.DeleteGame(c.Request.Context(), uint(id)); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "game deleted")
}

func (h *AdminHandler) CreateMission(c *gin.Context) {
	var req dto.CreateMissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.FormatValidationError(err))
		return
	}

	mission, err := h.missions.CreateMission(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, mission)
}

func (h *AdminHandler) UpdateMission(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid mission id")
		return
	}

	var req dto.UpdateMissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.FormatValidationError(err))
		return
	}

	mission, err := h.missions.UpdateMission(c.Request.Context(), uint(id), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, mission)
}

func (h *AdminHandler) DeleteMission(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid mission id")
		return
	}

	if err := h.missions.DeleteMission(c.Request.Context(), uint(id)); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "mission deleted")
}

func (h *AdminHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.FormatValidationError(err))
		return
	}

	task, err := h.tasks.CreateTask(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, task)
}

func (h *AdminHandler) UpdateTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid task id")
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.FormatValidationError(err))
		return
	}

	task, err := h.tasks.UpdateTask(c.Request.Context(), uint(id), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, task)
}

func (h *AdminHandler) DeleteTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid task id")
		return
	}

	if err := h.tasks.DeleteTask(c.Request.Context(), uint(id)); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "task deleted")
}

func (h *AdminHandler) CreateReward(c *gin.Context) {
	var req dto.CreateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.FormatValidationError(err))
		return
	}

	reward, err := h.rewards.CreateReward(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, reward)
}

func (h *AdminHandler) GrantMissionRewards(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid mission id")
		return
	}

	var req dto.GrantRewardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.FormatValidationError(err))
		return
	}

	result, err := h.rewards.GrantRewardsForMission(c.Request.Context(), uint(id), req.PlayerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !result.Success {
		response.Fail(c, result.Message)
		return
	}
	response.OK(c, result)
}

func (h *AdminHandler) UpdateReward(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid reward id")
		return
	}

	var req dto.UpdateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.FormatValidationError(err))
		return
	}

	reward, err := h.rewards.UpdateReward(c.Request.Context(), uint(id), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, reward)
}

func (h *AdminHandler) DeleteReward(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid reward id")
		return
	}

	if err := h.rewards.DeleteReward(c.Request.Context(), uint(id)); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "reward deleted")
}

func (h *AdminHandler) GetPlayer(c *gin.Context) {
	player, err := h.players.FindByExternalID(c.Request.Context(), c.Param("externalId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, player)
}

func (h *AdminHandler) PauseProcessor(c *gin.Context) {
	if err := h.toggle.Pause(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "event processing paused")
}

func (h *AdminHandler) ResumeProcessor(c *gin.Context) {
	if err := h.toggle.Resume(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "event processing resumed")
}
