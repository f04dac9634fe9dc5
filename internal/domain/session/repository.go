package session

import (
	"context"
	"time"
)

// Repository хранит только sha256 хэш токена, сам токен знает лишь клиент
type Repository interface {
	Create(ctx context.Context, subject, tokenHash string, expiresAt time.Time) error
	// Validate возвращает ErrInvalidSession для неизвестного или просроченного токена
	Validate(ctx context.Context, tokenHash string) (string, error)
	Delete(ctx context.Context, tokenHash string) error
}
