package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
)

const tokenSize = 32

type Servicer interface {
	Create(ctx context.Context, subject string) (string, time.Time, error)
	Validate(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
}

type Service struct {
	repo Repository
	ttl  time.Duration
	now  func() time.Time
	log  *slog.Logger
}

func NewService(repo Repository, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		ttl:  ttl,
		now:  time.Now,
		log:  log.With("component", "session_service"),
	}
}

func (s *Service) Create(ctx context.Context, subject string) (string, time.Time, error) {
	// Генерация токена
	tokenBytes := make([]byte, tokenSize)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", time.Time{}, fmt.Errorf("generate token: %w", err)
	}

	token := base64.URLEncoding.EncodeToString(tokenBytes)
	expiresAt := s.now().Add(s.ttl).UTC()

	if err := s.repo.Create(ctx, subject, hashToken(token), expiresAt); err != nil {
		return "", time.Time{}, fmt.Errorf("save session: %w", err)
	}

	s.log.Debug("session created", "subject", subject, "expires_at", expiresAt)
	return token, expiresAt, nil
}

func (s *Service) Validate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrInvalidSession
	}
	return s.repo.Validate(ctx, hashToken(token))
}

// Revoke удаляет сессию. Неизвестный токен не ошибка.
func (s *Service) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.repo.Delete(ctx, hashToken(token)); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
