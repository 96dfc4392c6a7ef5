package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes and verifies passwords with bcrypt. The work
// factor is configurable so tests can run at the minimum cost.
type PasswordHasher struct {
	cost        int
	dummyDigest []byte
}

// NewPasswordHasher creates a PasswordHasher with the given bcrypt cost.
func NewPasswordHasher(cost int) *PasswordHasher {
	// Pre-computed digest of an unguessable value, used to burn the
	// same bcrypt work when the username does not exist.
	dummy, err := bcrypt.GenerateFromPassword([]byte("authbox-dummy-password"), cost)
	if err != nil {
		// Only reachable with a cost outside bcrypt's range, which
		// config validation already rejects.
		panic(fmt.Sprintf("bcrypt dummy digest: %v", err))
	}
	return &PasswordHasher{cost: cost, dummyDigest: dummy}
}

// Hash returns the bcrypt digest of plaintext.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches the stored digest. A
// missing or malformed digest fails closed: it never matches and never
// panics.
func (h *PasswordHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// VerifyDummy performs a bcrypt comparison against a throwaway digest.
// Called when the username is unknown, so lookups for existing and
// nonexistent users cost the same.
func (h *PasswordHasher) VerifyDummy(plaintext string) {
	_ = bcrypt.CompareHashAndPassword(h.dummyDigest, []byte(plaintext))
}
