// Package blob хранит заявки и настройки как JSON файлы в репозитории GitHub.
// Каждая запись передает sha предыдущего чтения, гонки превращаются в конфликт.
package blob

import (
	"context"
	"errors"

	"formular230/internal/infrastructure/github"
)

var errNotReady = errors.New("remote repository is not ready")

type Store interface {
	ReadBlob(ctx context.Context, path string) (*github.Blob, error)
	WriteBlob(ctx context.Context, path string, content any, sha string) error
}

type Readiness interface {
	EnsureReady(ctx context.Context) bool
}
