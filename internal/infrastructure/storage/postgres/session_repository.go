package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/exp/slog"

	"formular230/internal/domain/session"
)

type SessionRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewSessionRepository(db *Storage, log *slog.Logger) *SessionRepository {
	return &SessionRepository{
		db:  db,
		log: log.With("component", "postgres_sessions"),
	}
}

func (r *SessionRepository) Create(ctx context.Context, subject, tokenHash string, expiresAt time.Time) error {
	_, err := r.db.Pool().Exec(ctx,
		`INSERT INTO sessions (subject, token_hash, expires_at)
         VALUES ($1, decode($2, 'hex'), $3)`,
		subject, tokenHash, expiresAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Validate(ctx context.Context, tokenHash string) (string, error) {
	var subject string
	err := r.db.Pool().QueryRow(ctx,
		`SELECT subject FROM sessions
         WHERE token_hash = decode($1, 'hex') AND expires_at > NOW()`,
		tokenHash).Scan(&subject)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", session.ErrInvalidSession
	}
	if err != nil {
		r.log.Error("failed to validate session", "error", err)
		return "", fmt.Errorf("select session: %w", err)
	}
	return subject, nil
}

func (r *SessionRepository) Delete(ctx context.Context, tokenHash string) error {
	_, err := r.db.Pool().Exec(ctx,
		`DELETE FROM sessions WHERE token_hash = decode($1, 'hex')`, tokenHash)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// PurgeExpired удаляет просроченные сессии, возвращает их количество
func (r *SessionRepository) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Pool().Exec(ctx, `DELETE FROM sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
