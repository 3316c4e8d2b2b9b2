package handlers

import (
	"net/http"

	"github.com/cognisync/cognisync-api/internal/dto"
	apierrors "github.com/cognisync/cognisync-api/internal/errors"
	"github.com/cognisync/cognisync-api/internal/services"
	"github.com/gin-gonic/gin"
)

type AIHandler struct {
	insightService *services.InsightService
}

func NewAIHandler(insightService *services.InsightService) *AIHandler {
	return &AIHandler{insightService: insightService}
}

// SuggestTaskOrder orders the given tasks from lightest to heaviest load
func (h *AIHandler) SuggestTaskOrder(c *gin.Context) {
	var req dto.SuggestTaskOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	ordered, err := h.insightService.SuggestTaskOrder(req.Tasks, req.CognitiveLoads)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggested_order": ordered})
}

// SensoryAlert reports the highest sensitivity reading
func (h *AIHandler) SensoryAlert(c *gin.Context) {
	var req dto.SensoryAlertRequest
	if !bindJSON(c, &req) {
		return
	}

	level, err := h.insightService.SensoryAlert(req.SensorySensitivity)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"alert_level": level})
}
