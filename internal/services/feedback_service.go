package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cognisync/cognisync-api/internal/constants"
	"github.com/cognisync/cognisync-api/internal/models"
	"github.com/cognisync/cognisync-api/internal/repository"
	"github.com/cognisync/cognisync-api/internal/security"
)

// FeedbackService stores mood and sensory feedback logs
type FeedbackService struct {
	feedbackRepo repository.FeedbackRepository
}

func NewFeedbackService(feedbackRepo repository.FeedbackRepository) *FeedbackService {
	return &FeedbackService{feedbackRepo: feedbackRepo}
}

type CreateFeedbackInput struct {
	MoodScore            int
	SensoryOverloadEvent bool
	CognitiveLoad        *int
	Notes                string
}

type ListFeedbackInput struct {
	UserID   *uint64
	Page     int
	PageSize int
}

// CreateFeedback records a log for the caller
func (s *FeedbackService) CreateFeedback(ctx context.Context, caller *security.Claims, input CreateFeedbackInput) (*models.FeedbackLog, error) {
	if input.MoodScore < 0 || input.MoodScore > constants.MaxMoodScore {
		return nil, ErrInvalidMoodScore
	}
	if input.CognitiveLoad != nil &&
		(*input.CognitiveLoad < constants.MinCognitiveLoad || *input.CognitiveLoad > constants.MaxCognitiveLoad) {
		return nil, ErrInvalidLoadScore
	}

	log := &models.FeedbackLog{
		UserID:               caller.UserID,
		MoodScore:            input.MoodScore,
		SensoryOverloadEvent: input.SensoryOverloadEvent,
		CognitiveLoad:        input.CognitiveLoad,
		Notes:                strings.TrimSpace(input.Notes),
	}

	if err := s.feedbackRepo.Create(ctx, log); err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}

	return log, nil
}

// ListFeedback returns the caller's own logs. Privileged callers see every
// log, optionally narrowed to one user.
func (s *FeedbackService) ListFeedback(ctx context.Context, caller *security.Claims, input ListFeedbackInput) ([]models.FeedbackLog, int64, error) {
	filter := repository.FeedbackFilter{
		UserID:   input.UserID,
		Page:     input.Page,
		PageSize: input.PageSize,
	}
	if !security.IsPrivileged(caller) {
		userID := caller.UserID
		filter.UserID = &userID
	}

	logs, total, err := s.feedbackRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list feedback: %w", err)
	}
	return logs, total, nil
}

// GetFeedback returns a log to its owner or a privileged caller
func (s *FeedbackService) GetFeedback(ctx context.Context, caller *security.Claims, id uint64) (*models.FeedbackLog, error) {
	log, err := s.feedbackRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("failed to find feedback: %w", err)
	}

	if !canAccessUser(caller, log.UserID) {
		return nil, ErrFeedbackForbidden
	}
	return log, nil
}
