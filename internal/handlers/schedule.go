package handlers

import (
	"net/http"

	"github.com/cognisync/cognisync-api/internal/dto"
	apierrors "github.com/cognisync/cognisync-api/internal/errors"
	"github.com/cognisync/cognisync-api/internal/services"
	"github.com/cognisync/cognisync-api/internal/utils"
	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	scheduleService *services.ScheduleService
}

func NewScheduleHandler(scheduleService *services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	var req dto.CreateScheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	schedule, err := h.scheduleService.CreateSchedule(c.Request.Context(), claims, services.CreateScheduleInput{
		Name:    req.Name,
		Time:    req.Time,
		StartAt: req.StartAt,
		EndAt:   req.EndAt,
		Color:   req.Color,
		Members: req.Members,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewScheduleDTO(schedule))
}

// ListSchedules lists every schedule for privileged callers and the caller's
// schedules otherwise
func (h *ScheduleHandler) ListSchedules(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	schedules, total, err := h.scheduleService.ListSchedules(c.Request.Context(), claims, params.Page, params.Limit)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewScheduleListResponse(schedules, params, total))
}

func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}
	scheduleID, ok := parseIDParam(c, "id", "schedule")
	if !ok {
		return
	}

	schedule, err := h.scheduleService.GetSchedule(c.Request.Context(), claims, scheduleID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewScheduleDTO(schedule))
}

func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}
	scheduleID, ok := parseIDParam(c, "id", "schedule")
	if !ok {
		return
	}

	if err := h.scheduleService.DeleteSchedule(c.Request.Context(), claims, scheduleID); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted successfully"})
}
