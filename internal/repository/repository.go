package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cognisync/cognisync-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a keyed lookup matches no row.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = errors.New("repository: duplicate record")
	// ErrInvalidReference is returned when a write points at a missing parent row.
	ErrInvalidReference = errors.New("repository: invalid reference")
)

// translate maps gorm sentinel errors onto the repository's own.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", ErrInvalidReference, err)
	default:
		return err
	}
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// FindByIdentity finds a user whose username or email equals identity
	FindByIdentity(ctx context.Context, identity string) (*models.User, error)

	// Update persists profile changes
	Update(ctx context.Context, user *models.User) error

	// CountByIDs counts how many of the given user IDs exist
	CountByIDs(ctx context.Context, ids []uint64) (int64, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id uint64) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error)

	// UpdateFields writes only the given columns of a live task
	UpdateFields(ctx context.Context, id uint64, fields map[string]interface{}) error

	// Delete soft deletes a task
	Delete(ctx context.Context, id uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	AssignedTo *uint64
	Status     *models.TaskStatus
	Page       int
	PageSize   int
}

// ScheduleRepository defines the interface for schedule data access
type ScheduleRepository interface {
	// CreateWithMembers creates a schedule and its member rows atomically
	CreateWithMembers(ctx context.Context, schedule *models.Schedule, memberIDs []uint64) error

	// FindByID finds a schedule by ID with its members
	FindByID(ctx context.Context, id uint64) (*models.Schedule, error)

	// List retrieves schedules with their members
	List(ctx context.Context, filter ScheduleFilter) ([]models.Schedule, int64, error)

	// Delete removes a schedule and its member rows
	Delete(ctx context.Context, id uint64) error
}

// ScheduleFilter holds filtering options for listing schedules
type ScheduleFilter struct {
	MemberID *uint64
	Page     int
	PageSize int
}

// FeedbackRepository defines the interface for feedback log access
type FeedbackRepository interface {
	Create(ctx context.Context, log *models.FeedbackLog) error
	FindByID(ctx context.Context, id uint64) (*models.FeedbackLog, error)
	List(ctx context.Context, filter FeedbackFilter) ([]models.FeedbackLog, int64, error)
	// ListByUser returns every log of a user in chronological order
	ListByUser(ctx context.Context, userID uint64) ([]models.FeedbackLog, error)
}

// FeedbackFilter holds filtering options for listing feedback logs
type FeedbackFilter struct {
	UserID   *uint64
	Page     int
	PageSize int
}

// CalendarRepository defines the interface for synced calendar events
type CalendarRepository interface {
	// Upsert inserts events or updates them when (user, source, external id) already exists
	Upsert(ctx context.Context, events []models.CalendarEvent) error
	FindByID(ctx context.Context, id uint64) (*models.CalendarEvent, error)
	ListByUser(ctx context.Context, userID uint64, from, to *time.Time) ([]models.CalendarEvent, error)
	Delete(ctx context.Context, id uint64) error
}
