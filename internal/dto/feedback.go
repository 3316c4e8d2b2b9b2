package dto

import (
	"time"

	"github.com/cognisync/cognisync-api/internal/models"
	"github.com/cognisync/cognisync-api/internal/utils"
)

type CreateFeedbackRequest struct {
	MoodScore            *int   `json:"mood_score" binding:"required"`
	SensoryOverloadEvent bool   `json:"sensory_overload_event"`
	CognitiveLoad        *int   `json:"cognitive_load"`
	Notes                string `json:"notes"`
}

type FeedbackListResponse struct {
	Feedback   []models.FeedbackLog     `json:"feedback"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

type CalendarEventRequest struct {
	ExternalID string     `json:"external_id" binding:"required"`
	Title      string     `json:"title" binding:"required"`
	StartAt    time.Time  `json:"start_at" binding:"required"`
	EndAt      *time.Time `json:"end_at"`
}

type CalendarSyncRequest struct {
	Source string                 `json:"source" binding:"required"`
	Events []CalendarEventRequest `json:"events" binding:"dive"`
}

type CalendarSyncResponse struct {
	Synced bool `json:"synced"`
	Count  int  `json:"count"`
}

type CalendarEventsResponse struct {
	Events []models.CalendarEvent `json:"events"`
}

type SuggestTaskOrderRequest struct {
	Tasks          []uint64 `json:"tasks"`
	CognitiveLoads []int    `json:"cognitive_loads"`
}

type SensoryAlertRequest struct {
	SensorySensitivity map[string]int `json:"sensory_sensitivity"`
}
