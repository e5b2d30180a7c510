package handler

import (
	"fmt"

	"github.com/fardhanrasya/gamify-api/internal/dto"
	"github.com/fardhanrasya/gamify-api/internal/service"
	"github.com/fardhanrasya/gamify-api/pkg/response"
	"github.com/fardhanrasya/gamify-api/pkg/validator"
	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	boards service.LeaderboardService
}

func NewLeaderboardHandler(boards service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{boards: boards}
}

func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	var filter dto.LeaderboardFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, validator.FormatValidationError(err))
		return
	}
	filter.Normalize()

	entries, total, err := h.boards.GetLeaderboard(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, entries, response.NewPagination(filter.Page, filter.Limit, total))
}

func (h *LeaderboardHandler) Recalculate(c *gin.Context) {
	updated, err := h.boards.RecalculateRankings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, fmt.Sprintf("recalculated ranks for %d entries", updated))
}
