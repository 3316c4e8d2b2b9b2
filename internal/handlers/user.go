package handlers

import (
	"net/http"

	"github.com/cognisync/cognisync-api/internal/dto"
	apierrors "github.com/cognisync/cognisync-api/internal/errors"
	"github.com/cognisync/cognisync-api/internal/services"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetUser returns a profile to its owner or a privileged caller
func (h *UserHandler) GetUser(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), claims, userID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserDTO(user))
}

// UpdateUser changes profile fields only
func (h *UserHandler) UpdateUser(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), claims, userID, services.UpdateProfileInput{
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

	c.JSON(http.StatusOK, dto.NewUserDTO(user))
}

// GetAnalytics returns the user's mood trend and sensory events
func (h *UserHandler) GetAnalytics(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}

	analytics, err := h.userService.Analytics(c.Request.Context(), claims, userID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, analytics)
}
