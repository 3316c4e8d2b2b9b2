package security

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cognisync/cognisync-api/internal/constants"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

var (
	ErrPasswordMismatch = errors.New("password does not match")
	ErrPasswordTooLong  = errors.New("password exceeds 72 bytes")
)

// PasswordHasher hashes and verifies passwords with bcrypt. At most
// `concurrency` hash computations run at once so a burst of logins cannot
// occupy every CPU.
type PasswordHasher struct {
	cost int
	sem  *semaphore.Weighted

	dummyOnce sync.Once
	dummyHash []byte
}

// NewPasswordHasher creates a hasher using the standard cost factor.
func NewPasswordHasher(concurrency int) *PasswordHasher {
	return newPasswordHasher(constants.PasswordHashCost, concurrency)
}

func newPasswordHasher(cost, concurrency int) *PasswordHasher {
	if concurrency < 1 {
		concurrency = 1
	}
	return &PasswordHasher{
		cost: cost,
		sem:  semaphore.NewWeighted(int64(concurrency)),
	}
}

// Hash returns the bcrypt hash of password.
func (h *PasswordHasher) Hash(ctx context.Context, password string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.sem.Release(1)

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Compare checks password against hash and returns ErrPasswordMismatch on
// any verification failure.
func (h *PasswordHasher) Compare(ctx context.Context, hash, password string) error {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer h.sem.Release(1)

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}

// CompareDummy spends the same work as Compare against a fixed hash. Login
// calls it for unknown identities so both failures take similar time.
func (h *PasswordHasher) CompareDummy(ctx context.Context, password string) {
	h.dummyOnce.Do(func() {
		h.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("cognisync-dummy-password"), h.cost)
	})
	_ = h.Compare(ctx, string(h.dummyHash), password)
}
