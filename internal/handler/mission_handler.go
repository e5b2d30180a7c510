package handler

import (
	"strconv"

	"github.com/fardhanrasya/gamify-api/internal/dto"
	"github.com/fardhanrasya/gamify-api/internal/service"
	"github.com/fardhanrasya/gamify-api/pkg/response"
	"github.com/fardhanrasya/gamify-api/pkg/validator"
	"github.com/gin-gonic/gin"
)

type MissionHandler struct {
	missions service.MissionService
}

func NewMissionHandler(missions service.MissionService) *MissionHandler {
	return &MissionHandler{missions: missions}
}

func (h *MissionHandler) ListMissions(c *gin.Context) {
	var filter dto.MissionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, validator.FormatValidationError(err))
		return
	}
	filter.Normalize()

	missions, total, err := h.missions.ListMissions(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, missions, response.NewPagination(filter.Page, filter.Limit, total))
}

func (h *MissionHandler) GetMission(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid mission id")
		return
	}

	mission, err := h.missions.GetMission(c.Request.Context(), uint(id), c.Query("playerId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, mission)
}
