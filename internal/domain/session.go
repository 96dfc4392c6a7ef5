package domain

import (
	"context"
	"time"
)

// Session binds an unguessable token to a user identity for a fixed
// lifetime. A session that has been destroyed or whose ExpiresAt has
// passed must never authorize access.
type Session struct {
	Token     string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session's lifetime has elapsed at the
// given instant.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// SessionRepository defines persistence operations for sessions.
// Delete is idempotent: deleting an unknown token is not an error.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// LoginRecord is one row of the login audit trail, written on every
// successful authentication.
type LoginRecord struct {
	ID         int64
	UserID     int64
	LoggedInAt time.Time
	IPAddress  string
	UserAgent  string
}

// LoginStats summarizes a user's audit trail for the profile view.
type LoginStats struct {
	TotalSessions int64
	FirstLogin    *time.Time
}

// LoginAuditRepository records successful logins and aggregates them.
type LoginAuditRepository interface {
	Record(ctx context.Context, rec *LoginRecord) error
	StatsForUser(ctx context.Context, userID int64) (*LoginStats, error)
}
