package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"formular230/internal/domain/session"
)

type SessionRepository struct {
	db  *sql.DB
	now func() time.Time
	log *slog.Logger
}

func NewSessionRepository(db *sql.DB, log *slog.Logger) *SessionRepository {
	return &SessionRepository{
		db:  db,
		now: time.Now,
		log: log.With("component", "sqlite_sessions"),
	}
}

func (r *SessionRepository) Create(ctx context.Context, subject, tokenHash string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (token_hash, subject, expires_at) VALUES (?, ?, ?)`,
		tokenHash, subject, expiresAt.UTC())
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Validate(ctx context.Context, tokenHash string) (string, error) {
	var subject string
	err := r.db.QueryRowContext(ctx,
		`SELECT subject FROM sessions WHERE token_hash = ? AND expires_at > ?`,
		tokenHash, r.now().UTC()).Scan(&subject)
	if errors.Is(err, sql.ErrNoRows) {
		return "", session.ErrInvalidSession
	}
	if err != nil {
		return "", fmt.Errorf("select session: %w", err)
	}
	return subject, nil
}

func (r *SessionRepository) Delete(ctx context.Context, tokenHash string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token_hash = ?`, tokenHash); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// PurgeExpired удаляет просроченные сессии, возвращает их количество
func (r *SessionRepository) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, r.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		r.log.Debug("expired sessions purged", "count", n)
	}
	return n, nil
}
