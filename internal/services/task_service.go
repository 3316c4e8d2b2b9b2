package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	apierrors "github.com/cognisync/cognisync-api/internal/errors"
	"github.com/cognisync/cognisync-api/internal/models"
	"github.com/cognisync/cognisync-api/internal/repository"
	"github.com/cognisync/cognisync-api/internal/security"
	"go.uber.org/zap"
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo  repository.TaskRepository
	userRepo  repository.UserRepository
	estimator LoadEstimator
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, estimator LoadEstimator) *TaskService {
	if estimator == nil {
		estimator = NewHeuristicEstimator()
	}
	return &TaskService{
		taskRepo:  taskRepo,
		userRepo:  userRepo,
		estimator: estimator,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Name        string
	Description string
	AssignedTo  uint64
	Status      string
	DueDate     string
	IsUpcoming  bool
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	Status     string
	AssignedTo *uint64
	Page       int
	PageSize   int
}

// TaskPatch maps raw JSON values by field name. Keys are matched after
// lower-casing and removing underscores.
type TaskPatch map[string]json.RawMessage

const (
	fieldName        = "name"
	fieldDescription = "description"
	fieldStatus      = "status"
	fieldAssignedTo  = "assignedto"
	fieldChecked     = "checked"
	fieldIsUpcoming  = "isupcoming"
	fieldDueDate     = "duedate"
)

var patchableTaskFields = map[string]bool{
	fieldName:        true,
	fieldDescription: true,
	fieldStatus:      true,
	fieldAssignedTo:  true,
	fieldChecked:     true,
	fieldIsUpcoming:  true,
	fieldDueDate:     true,
}

// assigneeTaskFields are the only fields a non-privileged assignee may patch.
var assigneeTaskFields = map[string]bool{
	fieldStatus:  true,
	fieldChecked: true,
}

// CreateTask creates a task assigned by the caller
func (s *TaskService) CreateTask(ctx context.Context, caller *security.Claims, input CreateTaskInput) (*models.Task, error) {
	if !security.IsPrivileged(caller) {
		return nil, ErrTaskCreateForbidden
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTaskNameRequired
	}

	status := models.TaskStatusWaiting
	if input.Status != "" {
		status = models.TaskStatus(strings.ToLower(strings.TrimSpace(input.Status)))
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
	}

	if input.AssignedTo == 0 {
		return nil, ErrAssigneeRequired
	}
	if err := s.ensureUserExists(ctx, input.AssignedTo); err != nil {
		return nil, err
	}

	dueDate, err := ParseDate(input.DueDate)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Name:        name,
		Description: input.Description,
		Status:      status,
		AssignedTo:  input.AssignedTo,
		AssignedBy:  caller.UserID,
		Checked:     false,
		IsUpcoming:  input.IsUpcoming,
		DueDate:     dueDate,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		if errors.Is(err, repository.ErrInvalidReference) {
			return nil, ErrInvalidAssignee
		}
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// ListTasks returns every task to privileged callers and only the caller's
// own tasks to everyone else.
func (s *TaskService) ListTasks(ctx context.Context, caller *security.Claims, input ListTasksInput) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		Page:     input.Page,
		PageSize: input.PageSize,
	}

	if input.Status != "" {
		status := models.TaskStatus(strings.ToLower(input.Status))
		if !status.Valid() {
			return nil, 0, ErrInvalidStatus
		}
		filter.Status = &status
	}

	if security.IsPrivileged(caller) {
		filter.AssignedTo = input.AssignedTo
	} else {
		userID := caller.UserID
		filter.AssignedTo = &userID
	}

	tasks, total, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// GetTask returns a task visible to the caller
func (s *TaskService) GetTask(ctx context.Context, caller *security.Claims, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !canAccessTask(caller, task) {
		return nil, ErrTaskForbidden
	}

	return task, nil
}

// UpdateTask applies patch to a task. The stored task is left unchanged on
// any validation or authorization failure.
func (s *TaskService) UpdateTask(ctx context.Context, caller *security.Claims, taskID uint64, patch TaskPatch) (*models.Task, error) {
	task, err := s.GetTask(ctx, caller, taskID)
	if err != nil {
		return nil, err
	}

	fields, err := normalizeTaskPatch(patch, security.IsPrivileged(caller))
	if err != nil {
		return nil, err
	}

	columns, err := s.applyTaskPatch(ctx, task, fields)
	if err != nil {
		return nil, err
	}

	if err := s.taskRepo.UpdateFields(ctx, task.ID, columns); err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidReference):
			return nil, ErrInvalidAssignee
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.reloadTask(ctx, task.ID)
}

// DeleteTask soft deletes a task. Only privileged callers may delete.
func (s *TaskService) DeleteTask(ctx context.Context, caller *security.Claims, taskID uint64) error {
	if !security.IsPrivileged(caller) {
		return ErrTaskDeleteForbidden
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// EstimateLoad scores the task's cognitive load and stores the result.
func (s *TaskService) EstimateLoad(ctx context.Context, caller *security.Claims, taskID uint64) (*models.Task, error) {
	task, err := s.GetTask(ctx, caller, taskID)
	if err != nil {
		return nil, err
	}

	score, err := s.estimator.EstimateLoad(ctx, task)
	if err != nil {
		zap.L().Warn("load estimation failed, using heuristic", zap.Uint64("task_id", task.ID), zap.Error(err))
		score = heuristicLoad(task, time.Now())
	}
	score = clampLoad(score)

	if err := s.taskRepo.UpdateFields(ctx, task.ID, map[string]interface{}{"cognitive_load_estimate": score}); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to store load estimate: %w", err)
	}

	return s.reloadTask(ctx, task.ID)
}

func (s *TaskService) reloadTask(ctx context.Context, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to reload task: %w", err)
	}
	return task, nil
}

func (s *TaskService) ensureUserExists(ctx context.Context, userID uint64) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidAssignee
		}
		return fmt.Errorf("failed to find assignee: %w", err)
	}
	return nil
}

// normalizeTaskPatch folds key casing and rejects unknown keys (400) before
// rejecting keys the caller may not change (403).
func normalizeTaskPatch(patch TaskPatch, privileged bool) (map[string]json.RawMessage, error) {
	if len(patch) == 0 {
		return nil, ErrEmptyPatch
	}

	keys := make([]string, 0, len(patch))
	for key := range patch {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fields := make(map[string]json.RawMessage, len(patch))
	for _, key := range keys {
		normalized := normalizePatchKey(key)
		if !patchableTaskFields[normalized] {
			return nil, apierrors.New(apierrors.KindValidation, fmt.Sprintf("unknown field %q", key))
		}
		fields[normalized] = patch[key]
	}

	if !privileged {
		for _, key := range keys {
			if !assigneeTaskFields[normalizePatchKey(key)] {
				return nil, apierrors.New(apierrors.KindForbidden, fmt.Sprintf("field %q can only be changed by a manager or admin", key))
			}
		}
	}

	return fields, nil
}

func normalizePatchKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "_", "")
}

// applyTaskPatch decodes every field before mutating task so a bad value
// leaves it untouched. It returns the changed columns keyed by column name.
func (s *TaskService) applyTaskPatch(ctx context.Context, task *models.Task, fields map[string]json.RawMessage) (map[string]interface{}, error) {
	updated := *task
	columns := make(map[string]interface{}, len(fields))

	for key, raw := range fields {
		switch key {
		case fieldName:
			var name string
			if err := decodePatchValue(raw, &name, key); err != nil {
				return nil, err
			}
			if name = strings.TrimSpace(name); name == "" {
				return nil, ErrTaskNameRequired
			}
			updated.Name = name
			columns["name"] = name
		case fieldDescription:
			var description *string
			if err := decodePatchValue(raw, &description, key); err != nil {
				return nil, err
			}
			updated.Description = ""
			if description != nil {
				updated.Description = *description
			}
			columns["description"] = updated.Description
		case fieldStatus:
			var status string
			if err := decodePatchValue(raw, &status, key); err != nil {
				return nil, err
			}
			next := models.TaskStatus(strings.ToLower(strings.TrimSpace(status)))
			if !next.Valid() {
				return nil, ErrInvalidStatus
			}
			updated.Status = next
			columns["status"] = string(next)
		case fieldAssignedTo:
			var assignee uint64
			if err := decodePatchValue(raw, &assignee, key); err != nil {
				return nil, err
			}
			if assignee == 0 {
				return nil, ErrAssigneeRequired
			}
			if err := s.ensureUserExists(ctx, assignee); err != nil {
				return nil, err
			}
			updated.AssignedTo = assignee
			columns["assigned_to"] = assignee
		case fieldChecked:
			if err := decodePatchValue(raw, &updated.Checked, key); err != nil {
				return nil, err
			}
			columns["checked"] = updated.Checked
		case fieldIsUpcoming:
			if err := decodePatchValue(raw, &updated.IsUpcoming, key); err != nil {
				return nil, err
			}
			columns["is_upcoming"] = updated.IsUpcoming
		case fieldDueDate:
			var value *string
			if err := decodePatchValue(raw, &value, key); err != nil {
				return nil, err
			}
			updated.DueDate = nil
			if value != nil {
				dueDate, err := ParseDate(*value)
				if err != nil {
					return nil, err
				}
				updated.DueDate = dueDate
			}
			if updated.DueDate == nil {
				columns["due_date"] = nil
			} else {
				columns["due_date"] = *updated.DueDate
			}
		}
	}

	*task = updated
	return columns, nil
}

func decodePatchValue(raw json.RawMessage, dest interface{}, field string) error {
	if err := json.Unmarshal(raw, dest); err != nil {
		return apierrors.New(apierrors.KindValidation, fmt.Sprintf("invalid value for %s", field))
	}
	return nil
}

func canAccessTask(caller *security.Claims, task *models.Task) bool {
	if caller == nil {
		return false
	}
	return task.AssignedTo == caller.UserID || security.IsPrivileged(caller)
}

// ParseDate accepts YYYY-MM-DD or RFC3339. An empty string yields nil.
func ParseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if parsed, err := time.Parse(layout, value); err == nil {
			parsed = parsed.UTC()
			return &parsed, nil
		}
	}
	return nil, ErrInvalidDueDate
}
