package dto

import (
	"time"

	"github.com/cognisync/cognisync-api/internal/models"
	"github.com/cognisync/cognisync-api/internal/utils"
)

// CreateTaskRequest is the body of POST /api/tasks. Title is accepted as an
// alias of name.
type CreateTaskRequest struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	AssignedTo  uint64 `json:"assigned_to" binding:"required"`
	Status      string `json:"status"`
	DueDate     string `json:"due_date"`
	IsUpcoming  bool   `json:"is_upcoming"`
}

// TaskName returns name, falling back to title
func (r CreateTaskRequest) TaskName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Title
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID                    uint64            `json:"id"`
	Name                  string            `json:"name"`
	Description           string            `json:"description"`
	Status                models.TaskStatus `json:"status"`
	AssignedTo            uint64            `json:"assigned_to"`
	AssignedBy            uint64            `json:"assigned_by"`
	Checked               bool              `json:"checked"`
	IsUpcoming            bool              `json:"is_upcoming"`
	DueDate               *time.Time        `json:"due_date"`
	CognitiveLoadEstimate *int              `json:"cognitive_load_estimate"`
	CreatedAt             time.Time         `json:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO                `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// LoadEstimateResponse is returned by the estimate_load endpoint
type LoadEstimateResponse struct {
	TaskID                uint64 `json:"task_id"`
	CognitiveLoadEstimate int    `json:"cognitive_load_estimate"`
}

func NewTaskDTO(task *models.Task) TaskDTO {
	return TaskDTO{
		ID:                    task.ID,
		Name:                  task.Name,
		Description:           task.Description,
		Status:                task.Status,
		AssignedTo:            task.AssignedTo,
		AssignedBy:            task.AssignedBy,
		Checked:               task.Checked,
		IsUpcoming:            task.IsUpcoming,
		DueDate:               task.DueDate,
		CognitiveLoadEstimate: task.CognitiveLoadEstimate,
		CreatedAt:             task.CreatedAt,
		UpdatedAt:             task.UpdatedAt,
	}
}

func NewTaskListResponse(tasks []models.Task, params utils.PaginationParams, total int64) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i := range tasks {
		items[i] = NewTaskDTO(&tasks[i])
	}
	return TaskListResponse{
		Tasks:      items,
		Pagination: utils.NewPaginationResponse(params, total),
	}
}
