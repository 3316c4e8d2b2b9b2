package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cognisync/cognisync-api/internal/models"
	"github.com/cognisync/cognisync-api/internal/repository"
	"github.com/cognisync/cognisync-api/internal/security"
)

// UserService handles profile reads and updates.
type UserService struct {
	userRepo     repository.UserRepository
	feedbackRepo repository.FeedbackRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, feedbackRepo repository.FeedbackRepository) *UserService {
	return &UserService{
		userRepo:     userRepo,
		feedbackRepo: feedbackRepo,
	}
}

// UpdateProfileInput holds optional profile fields. Nil leaves a field unchanged.
type UpdateProfileInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Tel       *string
	Avatar    *string
}

// Analytics summarises a user's feedback history in chronological order.
type Analytics struct {
	CognitiveTrend []int  `json:"cognitive_trend"`
	SensoryEvents  []bool `json:"sensory_events"`
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// GetProfile returns a user's profile to the user or a privileged caller.
func (s *UserService) GetProfile(ctx context.Context, caller *security.Claims, id uint64) (*models.User, error) {
	if !canAccessUser(caller, id) {
		return nil, ErrProfileForbidden
	}
	return s.GetUser(ctx, id)
}

// UpdateProfile applies the non-nil fields of input.
func (s *UserService) UpdateProfile(ctx context.Context, caller *security.Claims, id uint64, input UpdateProfileInput) (*models.User, error) {
	if !canAccessUser(caller, id) {
		return nil, ErrProfileForbidden
	}

	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		user.Email = normalizeEmail(input.Email)
	}
	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Tel != nil {
		user.Tel = strings.TrimSpace(*input.Tel)
	}
	if input.Avatar != nil {
		user.Avatar = strings.TrimSpace(*input.Avatar)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrIdentityTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// Analytics builds the mood trend and sensory event series for a user.
func (s *UserService) Analytics(ctx context.Context, caller *security.Claims, id uint64) (*Analytics, error) {
	if !canAccessUser(caller, id) {
		return nil, ErrProfileForbidden
	}
	if _, err := s.GetUser(ctx, id); err != nil {
		return nil, err
	}

	logs, err := s.feedbackRepo.ListByUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load feedback: %w", err)
	}

	analytics := &Analytics{
		CognitiveTrend: make([]int, 0, len(logs)),
		SensoryEvents:  make([]bool, 0, len(logs)),
	}
	for _, log := range logs {
		analytics.CognitiveTrend = append(analytics.CognitiveTrend, log.MoodScore)
		analytics.SensoryEvents = append(analytics.SensoryEvents, log.SensoryOverloadEvent)
	}

	return analytics, nil
}

func canAccessUser(caller *security.Claims, userID uint64) bool {
	if caller == nil {
		return false
	}
	return caller.UserID == userID || security.IsPrivileged(caller)
}
