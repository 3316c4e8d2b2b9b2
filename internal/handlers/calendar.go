package handlers

import (
	"net/http"

	"github.com/cognisync/cognisync-api/internal/dto"
	apierrors "github.com/cognisync/cognisync-api/internal/errors"
	"github.com/cognisync/cognisync-api/internal/services"
	"github.com/gin-gonic/gin"
)

type CalendarHandler struct {
	calendarService *services.CalendarService
}

func NewCalendarHandler(calendarService *services.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

// Sync upserts the caller's events from one external source
func (h *CalendarHandler) Sync(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	var req dto.CalendarSyncRequest
	if !bindJSON(c, &req) {
		return
	}

	events := make([]services.SyncEvent, len(req.Events))
	for i, event := range req.Events {
		events[i] = services.SyncEvent{
			ExternalID: event.ExternalID,
			Title:      event.Title,
			StartAt:    event.StartAt,
			EndAt:      event.EndAt,
		}
	}

	count, err := h.calendarService.Sync(c.Request.Context(), claims, req.Source, events)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CalendarSyncResponse{Synced: true, Count: count})
}

func (h *CalendarHandler) ListEvents(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "user_id", "user")
	if !ok {
		return
	}
	from, ok := optionalTimeQuery(c, "from")
	if !ok {
		return
	}
	to, ok := optionalTimeQuery(c, "to")
	if !ok {
		return
	}

	events, err := h.calendarService.ListEvents(c.Request.Context(), claims, userID, from, to)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CalendarEventsResponse{Events: events})
}

func (h *CalendarHandler) DeleteEvent(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(c, "event_id", "event")
	if !ok {
		return
	}

	if err := h.calendarService.DeleteEvent(c.Request.Context(), claims, eventID); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}
