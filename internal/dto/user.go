package dto

import (
	"time"

	"github.com/cognisync/cognisync-api/internal/models"
)

// RegisterRequest is the body of the registration endpoints
type RegisterRequest struct {
	Username  string  `json:"username" binding:"required"`
	Password  string  `json:"password" binding:"required"`
	Role      string  `json:"role" binding:"required"`
	Email     *string `json:"email" binding:"omitempty,email"`
	FirstName string  `json:"firstname"`
	LastName  string  `json:"lastname"`
	Tel       string  `json:"tel"`
	Avatar    string  `json:"avatar"`
}

// LoginRequest accepts the identity under any of its three names
type LoginRequest struct {
	Identity string `json:"identity"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// LoginIdentity returns the first identity field that was supplied
func (r LoginRequest) LoginIdentity() string {
	for _, candidate := range []string{r.Identity, r.Username, r.Email} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

// UpdateProfileRequest holds the profile fields a user may change
type UpdateProfileRequest struct {
	Email     *string `json:"email" binding:"omitempty,email"`
	FirstName *string `json:"firstname"`
	LastName  *string `json:"lastname"`
	Tel       *string `json:"tel"`
	Avatar    *string `json:"avatar"`
}

// UserDTO represents a user in API responses. The password hash is never included.
type UserDTO struct {
	ID        uint64      `json:"id"`
	Username  string      `json:"username"`
	Email     *string     `json:"email,omitempty"`
	Role      models.Role `json:"role"`
	FirstName string      `json:"firstname"`
	LastName  string      `json:"lastname"`
	Tel       string      `json:"tel"`
	Avatar    string      `json:"avatar"`
	CreatedAt time.Time   `json:"created_at"`
}

// LoginResponse is returned by a successful login
type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// RegisterResponse is returned by a successful registration
type RegisterResponse struct {
	Message string  `json:"message"`
	User    UserDTO `json:"user"`
}

func NewUserDTO(user *models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Tel:       user.Tel,
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt,
	}
}
