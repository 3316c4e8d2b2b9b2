package security

import "github.com/cognisync/cognisync-api/internal/models"

// HasRole reports whether the caller holds one of the allowed roles. An
// empty allow-list accepts any authenticated caller.
func HasRole(claims *Claims, allowed ...models.Role) bool {
	if claims == nil {
		return false
	}
	if len(allowed) == 0 {
		return true
	}
	for _, role := range allowed {
		if claims.Role == role {
			return true
		}
	}
	return false
}

// IsPrivileged reports whether the caller is a manager or admin.
func IsPrivileged(claims *Claims) bool {
	return HasRole(claims, models.PrivilegedRoles...)
}
