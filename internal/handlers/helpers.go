package handlers

import (
	"strconv"
	"time"

	apierrors "github.com/cognisync/cognisync-api/internal/errors"
	"github.com/cognisync/cognisync-api/internal/middleware"
	"github.com/cognisync/cognisync-api/internal/security"
	"github.com/gin-gonic/gin"
)

// currentClaims returns the caller's claims or writes a 401
func currentClaims(c *gin.Context) (*security.Claims, bool) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return nil, false
	}
	return claims, true
}

// parseIDParam parses a numeric path parameter or writes a 400
func parseIDParam(c *gin.Context, name, label string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, "Invalid "+label+" ID")
		return 0, false
	}
	return id, true
}

// optionalUintQuery parses an optional numeric query parameter
func optionalUintQuery(c *gin.Context, name string) (*uint64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return nil, false
	}
	return &value, true
}

// optionalTimeQuery parses an optional RFC3339 query parameter
func optionalTimeQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	value, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name+": expected RFC3339")
		return nil, false
	}
	return &value, true
}

func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		apierrors.Respond(c, apierrors.ErrInvalidInput)
		return false
	}
	return true
}
