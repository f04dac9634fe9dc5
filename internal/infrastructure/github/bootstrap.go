package github

import (
	"context"
	"errors"
	"time"

	"golang.org/x/exp/slog"
)

// Seed - файл, который должен существовать в репозитории, и его начальное содержимое
type Seed struct {
	Path    string
	Content any
}

// Bootstrapper готовит репозиторий к работе: создает его и начальные файлы
type Bootstrapper struct {
	client *Client
	delay  time.Duration
	seeds  []Seed
	log    *slog.Logger
}

func NewBootstrapper(client *Client, delay time.Duration, log *slog.Logger, seeds ...Seed) *Bootstrapper {
	return &Bootstrapper{
		client: client,
		delay:  delay,
		seeds:  seeds,
		log:    log.With("component", "github_bootstrap"),
	}
}

// EnsureReady идемпотентна. Ошибки только логируются, результат - готов ли репозиторий.
func (b *Bootstrapper) EnsureReady(ctx context.Context) bool {
	exists, err := b.client.RepositoryExists(ctx)
	if err != nil {
		b.log.Error("failed to check repository", "error", err)
		return false
	}

	if !exists {
		if err := b.client.CreateRepository(ctx); err != nil {
			b.log.Error("failed to create repository", "error", err)
			return false
		}
		// GitHub не сразу отдает только что созданный репозиторий
		if !sleep(ctx, b.delay) {
			return false
		}
	}

	for _, seed := range b.seeds {
		if err := b.ensureFile(ctx, seed); err != nil {
			b.log.Error("failed to ensure file", "path", seed.Path, "error", err)
			return false
		}
	}

	return true
}

func (b *Bootstrapper) ensureFile(ctx context.Context, seed Seed) error {
	_, err := b.client.ReadBlob(ctx, seed.Path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}

	err = b.client.WriteBlob(ctx, seed.Path, seed.Content, "")
	if errors.Is(err, ErrConflict) {
		// файл успел создать параллельный EnsureReady, его содержимое не трогаем
		if _, rerr := b.client.ReadBlob(ctx, seed.Path); rerr == nil {
			b.log.Debug("file created concurrently", "path", seed.Path)
			return nil
		}
	}
	if err != nil {
		return err
	}
	b.log.Info("file created", "path", seed.Path)
	return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
