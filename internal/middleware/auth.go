package middleware

import (
	"strings"

	"github.com/cognisync/cognisync-api/internal/constants"
	apierrors "github.com/cognisync/cognisync-api/internal/errors"
	"github.com/cognisync/cognisync-api/internal/models"
	"github.com/cognisync/cognisync-api/internal/security"
	"github.com/gin-gonic/gin"
)

// RequireAuth verifies the bearer token and stores its claims in the context.
// A missing token is 401; a token that fails verification is 400.
func RequireAuth(tokens *security.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		claims, err := tokens.Verify(c.Request.Context(), token)
		if err != nil {
			if security.IsInvalidToken(err) {
				apierrors.InvalidToken(c, "")
			} else {
				apierrors.Respond(c, err)
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyClaims, claims)
		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Next()
	}
}

// RequireRole rejects callers whose role is not in roles with 403. It must
// run after RequireAuth.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !security.HasRole(claims, roles...) {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequirePrivileged admits managers and admins only
func RequirePrivileged() gin.HandlerFunc {
	return RequireRole(models.PrivilegedRoles...)
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// GetClaims retrieves the verified token claims from context
func GetClaims(c *gin.Context) (*security.Claims, bool) {
	value, exists := c.Get(constants.ContextKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*security.Claims)
	return claims, ok && claims != nil
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	id, ok := userID.(uint64)
	return id, ok
}
