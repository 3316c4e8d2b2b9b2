package security

import (
	"context"
	"errors"
	"fmt"
	"time"

	apierrors "github.com/cognisync/cognisync-api/internal/errors"
	"github.com/cognisync/cognisync-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = apierrors.New(apierrors.KindInvalidToken, "invalid or expired token")

// Claims is the payload of an access token. It is the only authority on
// identity for a request: a user deleted or re-roled after issuance keeps the
// old identity until the token expires, or forever when expiry is disabled.
type Claims struct {
	UserID   uint64      `json:"user_id"`
	Role     models.Role `json:"role"`
	Username string      `json:"username"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HS256 bearer tokens.
type TokenManager struct {
	secret   []byte
	issuer   string
	ttl      time.Duration
	denylist Denylist
	now      func() time.Time
}

// NewTokenManager creates a TokenManager. A zero ttl issues tokens without
// expiry; a nil denylist makes Revoke a no-op.
func NewTokenManager(secret, issuer string, ttl time.Duration, denylist Denylist) *TokenManager {
	return &TokenManager{
		secret:   []byte(secret),
		issuer:   issuer,
		ttl:      ttl,
		denylist: denylist,
		now:      time.Now,
	}
}

// Issue signs a token for user.
func (m *TokenManager) Issue(user *models.User) (string, error) {
	now := m.now().UTC()
	claims := Claims{
		UserID:   user.ID,
		Role:     user.Role,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			Subject:  fmt.Sprintf("%d", user.ID),
			Issuer:   m.issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if m.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(m.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses tokenString and returns its claims. Every verification
// failure is reported as ErrInvalidToken; denylist lookups that fail are
// returned as-is.
func (m *TokenManager) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	if _, ok := models.ParseRole(string(claims.Role)); !ok {
		return nil, ErrInvalidToken
	}

	if m.denylist != nil && claims.ID != "" {
		revoked, err := m.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check token denylist: %w", err)
		}
		if revoked {
			return nil, ErrInvalidToken
		}
	}

	return claims, nil
}

// Revoke denylists the token until it would have expired anyway.
func (m *TokenManager) Revoke(ctx context.Context, claims *Claims) error {
	if m.denylist == nil || claims.ID == "" {
		return nil
	}

	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Time.Sub(m.now())
		if ttl <= 0 {
			return nil
		}
	}

	if err := m.denylist.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// RevocationEnabled reports whether logout invalidates tokens server-side.
func (m *TokenManager) RevocationEnabled() bool {
	return m.denylist != nil
}

// IsInvalidToken reports whether err came from token verification.
func IsInvalidToken(err error) bool {
	return errors.Is(err, ErrInvalidToken)
}
