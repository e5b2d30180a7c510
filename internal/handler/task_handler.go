package handler

import (
	"strconv"

	"github.com/fardhanrasya/gamify-api/internal/dto"
	"github.com/fardhanrasya/gamify-api/internal/service"
	"github.com/fardhanrasya/gamify-api/pkg/response"
	"github.com/fardhanrasya/gamify-api/pkg/validator"
	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	tasks service.TaskService
}

func NewTaskHandler(tasks service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	var filter dto.TaskFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, validator.FormatValidationError(err))
		return
	}
	filter.Normalize()

	tasks, total, err := h.tasks.ListTasks(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, tasks, response.NewPagination(filter.Page, filter.Limit, total))
}

func (h *TaskHandler) SkipTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid task id")
		return
	}

	var req dto.TaskActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.FormatValidationError(err))
		return
	}

	result, err := h.tasks.SkipTask(c.Request.Context(), uint(id), req.PlayerID)
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

func (h *TaskHandler) CompleteTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid task id")
		return
	}

	var req dto.TaskActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.FormatValidationError(err))
		return
	}

	result, err := h.tasks.CompleteTask(c.Request.Context(), uint(id), req.PlayerID)
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
