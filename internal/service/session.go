package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tomasgx/authbox/internal/domain"
)

// tokenBytes gives 256 bits of entropy per session token.
const tokenBytes = 32

// SessionManager issues, validates, and destroys sessions. The session
// record in the store is authoritative: the cookie value is an HMAC
// signed envelope around the random token, and destroying the record
// invalidates the cookie no matter what it claims.
type SessionManager struct {
	sessions domain.SessionRepository
	secret   []byte
	ttl      time.Duration
}

// NewSessionManager creates a SessionManager signing cookie values with
// secret and issuing sessions with the given TTL.
func NewSessionManager(sessions domain.SessionRepository, secret string, ttl time.Duration) *SessionManager {
	return &SessionManager{
		sessions: sessions,
		secret:   []byte(secret),
		ttl:      ttl,
	}
}

// TTL returns the session lifetime, for the transport layer to size
// cookie expiry.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Create mints a session for the user and returns the signed cookie
// value alongside the stored session.
func (m *SessionManager) Create(ctx context.Context, userID int64) (string, *domain.Session, error) {
	token, err := generateToken()
	if err != nil {
		return "", nil, fmt.Errorf("generate session token: %w", err)
	}

	now := time.Now().UTC()
	session := &domain.Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.sessions.Create(ctx, session); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}

	cookieValue, err := m.sign(session)
	if err != nil {
		return "", nil, fmt.Errorf("sign session cookie: %w", err)
	}
	return cookieValue, session, nil
}

// Resolve maps a presented cookie value to a user ID. Forged, unknown,
// destroyed, and expired sessions all yield domain.ErrUnauthorized.
// Store failures are returned as-is so callers never mistake an outage
// for a bad session.
func (m *SessionManager) Resolve(ctx context.Context, cookieValue string) (int64, error) {
	token, err := m.verify(cookieValue)
	if err != nil {
		return 0, domain.ErrUnauthorized
	}

	session, err := m.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, domain.ErrUnauthorized
		}
		return 0, fmt.Errorf("load session: %w", err)
	}

	if session.Expired(time.Now().UTC()) {
		// Lazy eviction; correctness does not depend on it.
		_ = m.sessions.Delete(ctx, token)
		return 0, domain.ErrUnauthorized
	}

	return session.UserID, nil
}

// Destroy ends the session carried by cookieValue. It is idempotent:
// garbage cookies and already-destroyed sessions are not errors.
func (m *SessionManager) Destroy(ctx context.Context, cookieValue string) error {
	token, err := m.verify(cookieValue)
	if err != nil {
		return nil
	}
	if err := m.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// sign wraps the session token in a signed JWT. Expiry is deliberately
// not a claim: the stored session decides when access ends, so logout
// and TTL behave identically whether or not the client keeps the
// cookie.
func (m *SessionManager) sign(session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid": session.Token,
		"iat": session.CreatedAt.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// verify checks the cookie signature and extracts the session token.
func (m *SessionManager) verify(cookieValue string) (string, error) {
	token, err := jwt.Parse(cookieValue, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid session cookie")
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", errors.New("session cookie missing sid")
	}
	return sid, nil
}
