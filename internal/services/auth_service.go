package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/cognisync/cognisync-api/internal/constants"
	"github.com/cognisync/cognisync-api/internal/models"
	"github.com/cognisync/cognisync-api/internal/repository"
	"github.com/cognisync/cognisync-api/internal/security"
)

var usernamePattern = regexp.MustCompile(fmt.Sprintf(`^[A-Za-z0-9._]{%d,%d}$`,
	constants.UsernameMinLength, constants.UsernameMaxLength))

// AuthService handles registration, login and logout.
type AuthService struct {
	userRepo repository.UserRepository
	hasher   *security.PasswordHasher
	tokens   *security.TokenManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, hasher *security.PasswordHasher, tokens *security.TokenManager) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Username  string
	Password  string
	Role      string
	Email     *string
	FirstName string
	LastName  string
	Tel       string
	Avatar    string
}

// Register validates input and stores a new user with a hashed password.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if !usernamePattern.MatchString(username) {
		return nil, ErrInvalidUsername
	}
	if input.Password == "" {
		return nil, ErrPasswordRequired
	}
	role, ok := models.ParseRole(strings.ToLower(strings.TrimSpace(input.Role)))
	if !ok {
		return nil, ErrInvalidRole
	}

	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, ErrIdentityTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := s.hasher.Hash(ctx, input.Password)
	if err != nil {
		if errors.Is(err, security.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        normalizeEmail(input.Email),
		PasswordHash: hashedPassword,
		Role:         role,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Tel:          strings.TrimSpace(input.Tel),
		Avatar:       strings.TrimSpace(input.Avatar),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrIdentityTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies credentials and issues a token. Unknown identities
// and wrong passwords both return ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, identity, password string) (*models.User, string, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByIdentity(ctx, identity)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.hasher.CompareDummy(ctx, password)
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.hasher.Compare(ctx, user.PasswordHash, password); err != nil {
		if errors.Is(err, security.ErrPasswordMismatch) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Logout revokes the presented token when a denylist is configured and
// reports whether it did.
func (s *AuthService) Logout(ctx context.Context, claims *security.Claims) (bool, error) {
	if !s.tokens.RevocationEnabled() {
		return false, nil
	}
	if err := s.tokens.Revoke(ctx, claims); err != nil {
		return false, err
	}
	return true, nil
}

func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	trimmed := strings.ToLower(strings.TrimSpace(*email))
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
