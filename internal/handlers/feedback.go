package handlers

import (
	"net/http"

	"github.com/cognisync/cognisync-api/internal/dto"
	apierrors "github.com/cognisync/cognisync-api/internal/errors"
	"github.com/cognisync/cognisync-api/internal/services"
	"github.com/cognisync/cognisync-api/internal/utils"
	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	feedbackService *services.FeedbackService
}

func NewFeedbackHandler(feedbackService *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

func (h *FeedbackHandler) CreateFeedback(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	var req dto.CreateFeedbackRequest
	if !bindJSON(c, &req) {
		return
	}

	log, err := h.feedbackService.CreateFeedback(c.Request.Context(), claims, services.CreateFeedbackInput{
		MoodScore:            *req.MoodScore,
		SensoryOverloadEvent: req.SensoryOverloadEvent,
		CognitiveLoad:        req.CognitiveLoad,
		Notes:                req.Notes,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, log)
}

// ListFeedback honours user_id only for privileged callers
func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}
	userID, ok := optionalUintQuery(c, "user_id")
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	logs, total, err := h.feedbackService.ListFeedback(c.Request.Context(), claims, services.ListFeedbackInput{
		UserID:   userID,
		Page:     params.Page,
		PageSize: params.Limit,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FeedbackListResponse{
		Feedback:   logs,
		Pagination: utils.NewPaginationResponse(params, total),
	})
}

func (h *FeedbackHandler) GetFeedback(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}
	feedbackID, ok := parseIDParam(c, "id", "feedback")
	if !ok {
		return
	}

	log, err := h.feedbackService.GetFeedback(c.Request.Context(), claims, feedbackID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, log)
}
