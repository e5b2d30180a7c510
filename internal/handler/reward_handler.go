package handler

import (
	"strconv"

	"github.com/fardhanrasya/gamify-api/internal/dto"
	"github.com/fardhanrasya/gamify-api/internal/service"
	"github.com/fardhanrasya/gamify-api/pkg/response"
	"github.com/fardhanrasya/gamify-api/pkg/validator"
	"github.com/gin-gonic/gin"
)

type RewardHandler struct {
	rewards service.RewardService
}

func NewRewardHandler(rewards service.RewardService) *RewardHandler {
	return &RewardHandler{rewards: rewards}
}

func (h *RewardHandler) ListRewards(c *gin.Context) {
	var filter dto.RewardFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, validator.FormatValidationError(err))
		return
	}
	if filter.PlayerID == "" {
		response.BadRequest(c, "playerId is required")
		return
	}
	filter.Normalize()

	rewards, total, err := h.rewards.ListPlayerRewards(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, rewards, response.NewPagination(filter.Page, filter.Limit, total))
}

func (h *RewardHandler) ClaimReward(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid reward id")
		return
	}

	var req dto.ClaimRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.FormatValidationError(err))
		return
	}

	result, err := h.rewards.ClaimReward(c.Request.Context(), uint(id), req.PlayerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !result.Success {
		response.Fail(c, result.Message)
		return
	}
	response.OK(c, result.Reward)
}
