package blob

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"

	"formular230/internal/domain/result"
	"formular230/internal/domain/settings"
	"formular230/internal/infrastructure/github"
	"formular230/internal/infrastructure/storage"
)

type SettingsRepository struct {
	store Store
	ready Readiness
	log   *slog.Logger
}

func NewSettingsRepository(store Store, ready Readiness, log *slog.Logger) *SettingsRepository {
	return &SettingsRepository{
		store: store,
		ready: ready,
		log:   log.With("component", "settings_repository"),
	}
}

// Read: пустой или отсутствующий файл - настройки по умолчанию
func (r *SettingsRepository) Read(ctx context.Context) result.Result[settings.Settings] {
	if !r.ready.EnsureReady(ctx) {
		return result.Unavailable(settings.Default(), errNotReady)
	}

	blob, err := r.store.ReadBlob(ctx, storage.SettingsPath)
	if errors.Is(err, github.ErrNotFound) {
		return result.Ok(settings.Default())
	}
	if err != nil {
		r.log.Error("failed to read settings", "error", err)
		return result.Unavailable(settings.Default(), err)
	}
	if len(blob.Content) == 0 {
		return result.Ok(settings.Default())
	}

	var s settings.Settings
	if err := json.Unmarshal(blob.Content, &s); err != nil {
		err = fmt.Errorf("decode %s: %w", storage.SettingsPath, err)
		r.log.Error("failed to decode settings", "error", err)
		return result.Unavailable(settings.Default(), err)
	}
	return result.Ok(s)
}

// Write читает файл только ради sha и перезаписывает его целиком
func (r *SettingsRepository) Write(ctx context.Context, s settings.Settings) error {
	var sha string
	blob, err := r.store.ReadBlob(ctx, storage.SettingsPath)
	switch {
	case err == nil:
		sha = blob.SHA
	case errors.Is(err, github.ErrNotFound):
	default:
		return err
	}

	if err := r.store.WriteBlob(ctx, storage.SettingsPath, s, sha); err != nil {
		if errors.Is(err, github.ErrConflict) {
			return fmt.Errorf("%w: %v", settings.ErrConflict, err)
		}
		return err
	}
	return nil
}
