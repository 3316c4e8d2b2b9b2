package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cognisync/cognisync-api/internal/models"
	"github.com/cognisync/cognisync-api/internal/repository"
	"github.com/cognisync/cognisync-api/internal/security"
)

// ScheduleService handles schedules and their membership lists
type ScheduleService struct {
	scheduleRepo repository.ScheduleRepository
	userRepo     repository.UserRepository
}

// NewScheduleService creates a new ScheduleService
func NewScheduleService(scheduleRepo repository.ScheduleRepository, userRepo repository.UserRepository) *ScheduleService {
	return &ScheduleService{
		scheduleRepo: scheduleRepo,
		userRepo:     userRepo,
	}
}

// CreateScheduleInput represents input for creating a schedule
type CreateScheduleInput struct {
	Name    string
	Time    string
	StartAt *time.Time
	EndAt   *time.Time
	Color   string
	Members []uint64
}

// CreateSchedule validates every member before anything is written.
func (s *ScheduleService) CreateSchedule(ctx context.Context, caller *security.Claims, input CreateScheduleInput) (*models.Schedule, error) {
	if !security.IsPrivileged(caller) {
		return nil, ErrScheduleManageForbidden
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrScheduleNameRequired
	}
	if input.StartAt != nil && input.EndAt != nil && input.EndAt.Before(*input.StartAt) {
		return nil, ErrInvalidTimeRange
	}

	memberIDs := uniqueUint64(input.Members)
	for _, id := range memberIDs {
		if id == 0 {
			return nil, ErrInvalidScheduleMember
		}
	}

	count, err := s.userRepo.CountByIDs(ctx, memberIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to verify members: %w", err)
	}
	if int(count) != len(memberIDs) {
		return nil, ErrInvalidScheduleMember
	}

	schedule := &models.Schedule{
		Name:      name,
		Time:      strings.TrimSpace(input.Time),
		StartAt:   input.StartAt,
		EndAt:     input.EndAt,
		Color:     strings.TrimSpace(input.Color),
		CreatedBy: caller.UserID,
	}

	if err := s.scheduleRepo.CreateWithMembers(ctx, schedule, memberIDs); err != nil {
		if errors.Is(err, repository.ErrInvalidReference) {
			return nil, ErrInvalidScheduleMember
		}
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}

	return schedule, nil
}

// ListSchedules returns all schedules to privileged callers and only the
// schedules the caller belongs to otherwise.
func (s *ScheduleService) ListSchedules(ctx context.Context, caller *security.Claims, page, pageSize int) ([]models.Schedule, int64, error) {
	filter := repository.ScheduleFilter{
		Page:     page,
		PageSize: pageSize,
	}
	if !security.IsPrivileged(caller) {
		userID := caller.UserID
		filter.MemberID = &userID
	}

	schedules, total, err := s.scheduleRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list schedules: %w", err)
	}

	return schedules, total, nil
}

// GetSchedule returns a schedule to its members or a privileged caller
func (s *ScheduleService) GetSchedule(ctx context.Context, caller *security.Claims, scheduleID uint64) (*models.Schedule, error) {
	schedule, err := s.scheduleRepo.FindByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, fmt.Errorf("failed to find schedule: %w", err)
	}

	if security.IsPrivileged(caller) {
		return schedule, nil
	}
	for _, member := range schedule.Members {
		if member.UserID == caller.UserID {
			return schedule, nil
		}
	}
	return nil, ErrScheduleForbidden
}

// DeleteSchedule removes a schedule. Only privileged callers may delete.
func (s *ScheduleService) DeleteSchedule(ctx context.Context, caller *security.Claims, scheduleID uint64) error {
	if !security.IsPrivileged(caller) {
		return ErrScheduleManageForbidden
	}

	if err := s.scheduleRepo.Delete(ctx, scheduleID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrScheduleNotFound
		}
		return fmt.Errorf("failed to delete schedule: %w", err)
	}

	return nil
}

// uniqueUint64 drops duplicates and keeps first-seen order
func uniqueUint64(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	result := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
