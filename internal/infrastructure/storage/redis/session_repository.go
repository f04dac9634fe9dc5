package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/exp/slog"

	"formular230/internal/domain/session"
)

const keyPrefix = "formular230:session:"

type Options struct {
	Addr     string
	Password string
	DB       int
}

// Connect создает клиента и проверяет соединение
func Connect(ctx context.Context, opts Options) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// SessionRepository - срок жизни сессии совпадает с TTL ключа
type SessionRepository struct {
	rdb *redis.Client
	now func() time.Time
	log *slog.Logger
}

func NewSessionRepository(rdb *redis.Client, log *slog.Logger) *SessionRepository {
	return &SessionRepository{
		rdb: rdb,
		now: time.Now,
		log: log.With("component", "redis_sessions"),
	}
}

func (r *SessionRepository) Create(ctx context.Context, subject, tokenHash string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(r.now())
	if ttl <= 0 {
		return fmt.Errorf("session already expired at %s", expiresAt)
	}
	if err := r.rdb.Set(ctx, keyPrefix+tokenHash, subject, ttl).Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Validate(ctx context.Context, tokenHash string) (string, error) {
	subject, err := r.rdb.Get(ctx, keyPrefix+tokenHash).Result()
	if errors.Is(err, redis.Nil) {
		return "", session.ErrInvalidSession
	}
	if err != nil {
		return "", fmt.Errorf("get session: %w", err)
	}
	return subject, nil
}

func (r *SessionRepository) Delete(ctx context.Context, tokenHash string) error {
	if err := r.rdb.Del(ctx, keyPrefix+tokenHash).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
