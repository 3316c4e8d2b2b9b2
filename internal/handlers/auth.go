package handlers

import (
	"net/http"

	"github.com/cognisync/cognisync-api/internal/dto"
	apierrors "github.com/cognisync/cognisync-api/internal/errors"
	"github.com/cognisync/cognisync-api/internal/services"
	"github.com/gin-gonic/gin"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, userService *services.UserService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
	}
}

// Register creates a new user.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Username:  req.Username,
		Password:  req.Password,
		Role:      req.Role,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Tel:       req.Tel,
		Avatar:    req.Avatar,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		Message: "User registered successfully",
		User:    dto.NewUserDTO(user),
	})
}

// Login authenticates a user and returns a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	identity := req.LoginIdentity()
	if identity == "" {
		apierrors.BadRequest(c, "username or email is required")
		return
	}

	user, token, err := h.authService.Authenticate(c.Request.Context(), identity, req.Password)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: token,
		User:  dto.NewUserDTO(user),
	})
}

// Logout revokes the token server-side when revocation is configured.
// Otherwise the client simply discards it.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	revoked, err := h.authService.Logout(c.Request.Context(), claims)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"revoked": revoked,
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), claims.UserID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserDTO(user))
}
