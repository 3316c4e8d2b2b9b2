package handlers

import (
	"net/http"

	"github.com/cognisync/cognisync-api/internal/dto"
	apierrors "github.com/cognisync/cognisync-api/internal/errors"
	"github.com/cognisync/cognisync-api/internal/middleware"
	"github.com/cognisync/cognisync-api/internal/services"
	"github.com/cognisync/cognisync-api/internal/utils"
	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns all tasks for privileged callers and the caller's own
// tasks otherwise. Filters: status, assigned_to (privileged only).
func (h *TaskHandler) ListTasks(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	assignedTo, ok := optionalUintQuery(c, "assigned_to")
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	tasks, total, err := h.taskService.ListTasks(c.Request.Context(), claims, services.ListTasksInput{
		Status:     c.Query("status"),
		AssignedTo: assignedTo,
		Page:       params.Page,
		PageSize:   params.Limit,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTaskListResponse(tasks, params, total))
}

// GetTask returns a specific task by ID
// Task is already loaded by RequireTaskAccess middleware
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, exists := middleware.GetTask(c)
	if !exists {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.NewTaskDTO(task))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), claims, services.CreateTaskInput{
		Name:        req.TaskName(),
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		Status:      req.Status,
		DueDate:     req.DueDate,
		IsUpcoming:  req.IsUpcoming,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewTaskDTO(task))
}

// UpdateTask applies a partial update. PUT and PATCH behave the same.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "id", "task")
	if !ok {
		return
	}

	var patch services.TaskPatch
	if !bindJSON(c, &patch) {
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), claims, taskID, patch)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTaskDTO(task))
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "id", "task")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), claims, taskID); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// EstimateLoad scores and stores the task's cognitive load
func (h *TaskHandler) EstimateLoad(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "id", "task")
	if !ok {
		return
	}

	task, err := h.taskService.EstimateLoad(c.Request.Context(), claims, taskID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoadEstimateResponse{
		TaskID:                task.ID,
		CognitiveLoadEstimate: *task.CognitiveLoadEstimate,
	})
}
