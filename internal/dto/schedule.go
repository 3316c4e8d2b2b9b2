package dto

import (
	"time"

	"github.com/cognisync/cognisync-api/internal/models"
	"github.com/cognisync/cognisync-api/internal/utils"
)

type CreateScheduleRequest struct {
	Name    string     `json:"name" binding:"required"`
	Time    string     `json:"time"`
	StartAt *time.Time `json:"start_at"`
	EndAt   *time.Time `json:"end_at"`
	Color   string     `json:"color"`
	Members []uint64   `json:"members"`
}

// ScheduleDTO represents a schedule with its member ids
type ScheduleDTO struct {
	ID        uint64     `json:"id"`
	Name      string     `json:"name"`
	Time      string     `json:"time"`
	StartAt   *time.Time `json:"start_at"`
	EndAt     *time.Time `json:"end_at"`
	Color     string     `json:"color"`
	CreatedBy uint64     `json:"created_by"`
	Members   []uint64   `json:"members"`
	CreatedAt time.Time  `json:"created_at"`
}

type ScheduleListResponse struct {
	Schedules  []ScheduleDTO            `json:"schedules"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

func NewScheduleDTO(schedule *models.Schedule) ScheduleDTO {
	members := make([]uint64, len(schedule.Members))
	for i, member := range schedule.Members {
		members[i] = member.UserID
	}

	return ScheduleDTO{
		ID:        schedule.ID,
		Name:      schedule.Name,
		Time:      schedule.Time,
		StartAt:   schedule.StartAt,
		EndAt:     schedule.EndAt,
		Color:     schedule.Color,
		CreatedBy: schedule.CreatedBy,
		Members:   members,
		CreatedAt: schedule.CreatedAt,
	}
}

func NewScheduleListResponse(schedules []models.Schedule, params utils.PaginationParams, total int64) ScheduleListResponse {
	items := make([]ScheduleDTO, len(schedules))
	for i := range schedules {
		items[i] = NewScheduleDTO(&schedules[i])
	}
	return ScheduleListResponse{
		Schedules:  items,
		Pagination: utils.NewPaginationResponse(params, total),
	}
}
