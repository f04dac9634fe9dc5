package settings

import (
	"context"

	"formular230/internal/domain/result"
)

type Repository interface {
	// Read при сбое возвращает Default() и Available == false
	Read(ctx context.Context) result.Result[Settings]
	Write(ctx context.Context, s Settings) error
}
