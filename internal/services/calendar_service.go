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

// CalendarService stores events pulled from external calendars
type CalendarService struct {
	calendarRepo repository.CalendarRepository
}

func NewCalendarService(calendarRepo repository.CalendarRepository) *CalendarService {
	return &CalendarService{calendarRepo: calendarRepo}
}

// SyncEvent is one event as reported by the external calendar
type SyncEvent struct {
	ExternalID string
	Title      string
	StartAt    time.Time
	EndAt      *time.Time
}

// Sync upserts the caller's events for source and returns how many were written.
// When an external id repeats within one batch the last occurrence wins.
func (s *CalendarService) Sync(ctx context.Context, caller *security.Claims, source string, events []SyncEvent) (int, error) {
	source = strings.ToLower(strings.TrimSpace(source))
	if source == "" {
		return 0, ErrSourceRequired
	}

	positions := make(map[string]int, len(events))
	rows := make([]models.CalendarEvent, 0, len(events))
	for _, event := range events {
		externalID := strings.TrimSpace(event.ExternalID)
		title := strings.TrimSpace(event.Title)
		if externalID == "" || title == "" || event.StartAt.IsZero() {
			return 0, ErrInvalidCalendarRow
		}
		if event.EndAt != nil && event.EndAt.Before(event.StartAt) {
			return 0, ErrInvalidTimeRange
		}

		row := models.CalendarEvent{
			UserID:     caller.UserID,
			Source:     source,
			ExternalID: externalID,
			Title:      title,
			StartAt:    event.StartAt.UTC(),
			EndAt:      event.EndAt,
		}
		if i, ok := positions[externalID]; ok {
			rows[i] = row
			continue
		}
		positions[externalID] = len(rows)
		rows = append(rows, row)
	}

	if err := s.calendarRepo.Upsert(ctx, rows); err != nil {
		return 0, fmt.Errorf("failed to sync calendar: %w", err)
	}
	return len(rows), nil
}

// ListEvents returns a user's events, optionally within [from, to)
func (s *CalendarService) ListEvents(ctx context.Context, caller *security.Claims, userID uint64, from, to *time.Time) ([]models.CalendarEvent, error) {
	if !canAccessUser(caller, userID) {
		return nil, ErrCalendarForbidden
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, ErrInvalidTimeRange
	}

	events, err := s.calendarRepo.ListByUser(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}
	return events, nil
}

// DeleteEvent removes an event owned by the caller, or any event for a
// privileged caller
func (s *CalendarService) DeleteEvent(ctx context.Context, caller *security.Claims, eventID uint64) error {
	event, err := s.calendarRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to find calendar event: %w", err)
	}

	if !canAccessUser(caller, event.UserID) {
		return ErrCalendarForbidden
	}

	if err := s.calendarRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to delete calendar event: %w", err)
	}
	return nil
}
