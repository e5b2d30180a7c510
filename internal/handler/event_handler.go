package handler

import (
	"log"
	"strconv"
	"time"

	"github.com/fardhanrasya/gamify-api/internal/dto"
	"github.com/fardhanrasya/gamify-api/internal/service"
	"github.com/fardhanrasya/gamify-api/pkg/apperror"
	"github.com/fardhanrasya/gamify-api/pkg/response"
	"github.com/fardhanrasya/gamify-api/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type EventHandler struct {
	events    service.EventService
	processor service.EventProcessor

	redisClient *redis.Client
	rateLimit   time.Duration
}

func NewEventHandler(events service.EventService, processor service.EventProcessor, redisClient *redis.Client, rateLimit time.Duration) *EventHandler {
	return &EventHandler{
		events:      events,
		processor:   processor,
		redisClient: redisClient,
		rateLimit:   rateLimit,
	}
}

func (h *EventHandler) SubmitEvent(c *gin.Context) {
	var req dto.SubmitEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.FormatValidationError(err))
		return
	}

	allowed, err := service.CheckAndSetRateLimit(c.Request.Context(), h.redisClient, req.PlayerID, h.rateLimit)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !allowed {
		response.Error(c, apperror.ErrRateLimitExceeded)
		return
	}

	result, err := h.processor.ProcessEvent(c.Request.Context(), req)
	if err != nil {
		// A rejected submission gives its window back so the player isn't
		// locked out by a failure.
		if clearErr := service.ClearRateLimit(c.Request.Context(), h.redisClient, req.PlayerID); clearErr != nil {
			log.Printf("failed to clear rate limit for player %s: %v", req.PlayerID, clearErr)
		}
		response.Error(c, err)
		return
	}

	response.OK(c, result)
}

func (h *EventHandler) RegisterEvent(c *gin.Context) {
	var req dto.RegisterEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, validator.FormatValidationError(err))
		return
	}

	event, err := h.events.RegisterEvent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, event)
}

func (h *EventHandler) ListEvents(c *gin.Context) {
	var filter dto.PageFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, validator.FormatValidationError(err))
		return
	}
	filter.Normalize()

	events, total, err := h.events.ListEvents(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, events, response.NewPagination(filter.Page, filter.Limit, total))
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}

	event, err := h.events.GetEvent(c.Request.Context(), uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, event)
}
