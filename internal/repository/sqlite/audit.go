package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomasgx/authbox/internal/domain"
)

// loginAuditRepo implements domain.LoginAuditRepository using SQLite.
type loginAuditRepo struct {
	db *sql.DB
}

func (r *loginAuditRepo) Record(ctx context.Context, rec *domain.LoginRecord) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO login_audit (user_id, logged_in_at, ip_address, user_agent)
		 VALUES (?, ?, ?, ?)`,
		rec.UserID, now, rec.IPAddress, rec.UserAgent,
	)
	if err != nil {
		return fmt.Errorf("insert login record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	rec.ID = id
	rec.LoggedInAt = now
	return nil
}

func (r *loginAuditRepo) StatsForUser(ctx context.Context, userID int64) (*domain.LoginStats, error) {
	stats := &domain.LoginStats{}
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM login_audit WHERE user_id = ?`, userID,
	).Scan(&stats.TotalSessions)
	if err != nil {
		return nil, fmt.Errorf("count login records: %w", err)
	}

	var first time.Time
	err = r.db.QueryRowContext(ctx,
		`SELECT logged_in_at FROM login_audit WHERE user_id = ?
		 ORDER BY logged_in_at ASC LIMIT 1`, userID,
	).Scan(&first)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// no logins yet
	case err != nil:
		return nil, fmt.Errorf("query first login: %w", err)
	default:
		stats.FirstLogin = &first
	}
	return stats, nil
}
