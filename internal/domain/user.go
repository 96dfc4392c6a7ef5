package domain

import (
	"context"
	"time"
)

// User represents a registered account holder.
// PasswordHash holds the bcrypt digest of the password; the plaintext
// is never persisted.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Name         string
	Age          *int
	Email        string
	Study        string
	CivilStatus  string
	Avatar       string
	LoginCount   int64
	CreatedAt    time.Time
	LastLogin    *time.Time
	IsActive     bool
}

// ClientInfo carries transport-level facts about a login attempt for
// the audit trail. The core treats both fields as opaque strings.
type ClientInfo struct {
	IPAddress string
	UserAgent string
}

// UserRepository defines persistence operations for users.
//
// FindByUsername matches active users by exact, parameterized equality.
// RecordLogin increments login_count and stamps last_login in a single
// atomic statement so concurrent logins never lose an update.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	RecordLogin(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
