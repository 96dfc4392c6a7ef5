package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomasgx/authbox/internal/domain"
)

// AuthService orchestrates credential lookup, password verification,
// session establishment, and login bookkeeping.
type AuthService struct {
	users    domain.UserRepository
	audit    domain.LoginAuditRepository
	sessions *SessionManager
	hasher   *PasswordHasher
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, audit domain.LoginAuditRepository, sessions *SessionManager, hasher *PasswordHasher) *AuthService {
	return &AuthService{
		users:    users,
		audit:    audit,
		sessions: sessions,
		hasher:   hasher,
	}
}

// Login verifies the credentials and, on success, records the login and
// mints a session. It returns the fresh user record and the signed
// session cookie value.
//
// Unknown usernames and wrong passwords both come back as
// domain.ErrInvalidCredentials, with the same bcrypt work spent either
// way, so the response never betrays which factor failed. Store
// failures surface as wrapped errors, never as invalid credentials.
func (s *AuthService) Login(ctx context.Context, username, password string, client domain.ClientInfo) (*domain.User, string, error) {
	if username == "" || password == "" {
		return nil, "", domain.ErrMissingCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.hasher.VerifyDummy(password)
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", domain.ErrInvalidCredentials
	}

	if err := s.users.RecordLogin(ctx, user.ID); err != nil {
		return nil, "", fmt.Errorf("record login: %w", err)
	}

	if err := s.audit.Record(ctx, &domain.LoginRecord{
		UserID:    user.ID,
		IPAddress: client.IPAddress,
		UserAgent: client.UserAgent,
	}); err != nil {
		return nil, "", fmt.Errorf("record audit entry: %w", err)
	}

	cookieValue, _, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}

	// Re-read so the response carries the updated counters.
	user, err = s.users.GetByID(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("reload user: %w", err)
	}

	return user, cookieValue, nil
}

// Profile resolves the session and returns the current user record with
// its login statistics. An unresolvable session yields
// domain.ErrUnauthorized; a session whose user has vanished yields
// domain.ErrNotFound.
func (s *AuthService) Profile(ctx context.Context, cookieValue string) (*domain.User, *domain.LoginStats, error) {
	userID, err := s.sessions.Resolve(ctx, cookieValue)
	if err != nil {
		return nil, nil, err
	}
	return s.ProfileByID(ctx, userID)
}

// ProfileByID returns the user record and login statistics for an
// already-resolved session. Used by the transport layer after its
// session gate has run.
func (s *AuthService) ProfileByID(ctx context.Context, userID int64) (*domain.User, *domain.LoginStats, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get user: %w", err)
	}
	if !user.IsActive {
		// A session must never resolve to a deactivated account.
		return nil, nil, domain.ErrNotFound
	}

	stats, err := s.audit.StatsForUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("login stats: %w", err)
	}

	return user, stats, nil
}

// Logout destroys the presented session. From the caller's perspective
// it always succeeds; only a store failure is reported.
func (s *AuthService) Logout(ctx context.Context, cookieValue string) error {
	return s.sessions.Destroy(ctx, cookieValue)
}

// Status reports whether the presented cookie maps to a live session,
// and for whom.
func (s *AuthService) Status(ctx context.Context, cookieValue string) (int64, bool) {
	userID, err := s.sessions.Resolve(ctx, cookieValue)
	if err != nil {
		return 0, false
	}
	return userID, true
}
