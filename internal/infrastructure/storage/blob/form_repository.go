package blob

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"

	"formular230/internal/domain/form"
	"formular230/internal/domain/result"
	"formular230/internal/infrastructure/github"
	"formular230/internal/infrastructure/storage"
)

type FormRepository struct {
	store Store
	ready Readiness
	clock *form.IDClock
	log   *slog.Logger
}

func NewFormRepository(store Store, ready Readiness, clock *form.IDClock, log *slog.Logger) *FormRepository {
	return &FormRepository{
		store: store,
		ready: ready,
		clock: clock,
		log:   log.With("component", "form_repository"),
	}
}

func (r *FormRepository) Append(ctx context.Context, f form.Form) (form.Form, error) {
	if !r.ready.EnsureReady(ctx) {
		return form.Form{}, errNotReady
	}

	forms, sha, err := r.read(ctx)
	if err != nil && !errors.Is(err, github.ErrNotFound) {
		return form.Form{}, err
	}

	f.ID, f.CreatedAt = r.clock.Next()
	forms = append(forms, f)

	if err := r.store.WriteBlob(ctx, storage.FormsPath, forms, sha); err != nil {
		return form.Form{}, mapWriteError(err)
	}

	r.log.Debug("form appended", "form_id", f.ID, "total", len(forms))
	return f, nil
}

func (r *FormRepository) List(ctx context.Context) result.Result[[]form.Form] {
	if !r.ready.EnsureReady(ctx) {
		return result.Unavailable([]form.Form{}, errNotReady)
	}

	forms, _, err := r.read(ctx)
	switch {
	case err == nil:
		return result.Ok(forms)
	case errors.Is(err, github.ErrNotFound):
		return result.Ok([]form.Form{})
	default:
		r.log.Error("failed to read forms", "error", err)
		return result.Unavailable([]form.Form{}, err)
	}
}

// Delete не проверяет готовность репозитория: без файла удалять нечего
func (r *FormRepository) Delete(ctx context.Context, id int64) error {
	forms, sha, err := r.read(ctx)
	if errors.Is(err, github.ErrNotFound) {
		return form.ErrStoreMissing
	}
	if err != nil {
		return err
	}

	kept := make([]form.Form, 0, len(forms))
	for _, f := range forms {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	if len(kept) == len(forms) {
		return nil
	}

	if err := r.store.WriteBlob(ctx, storage.FormsPath, kept, sha); err != nil {
		return mapWriteError(err)
	}
	return nil
}

// read возвращает пустой список, если файла нет, вместе с ошибкой github.ErrNotFound
func (r *FormRepository) read(ctx context.Context) ([]form.Form, string, error) {
	blob, err := r.store.ReadBlob(ctx, storage.FormsPath)
	if err != nil {
		return []form.Form{}, "", err
	}

	forms := []form.Form{}
	if len(blob.Content) > 0 {
		if err := json.Unmarshal(blob.Content, &forms); err != nil {
			return nil, "", fmt.Errorf("decode %s: %w", storage.FormsPath, err)
		}
	}
	return forms, blob.SHA, nil
}

func mapWriteError(err error) error {
	if errors.Is(err, github.ErrConflict) {
		return fmt.Errorf("%w: %v", form.ErrConflict, err)
	}
	return err
}
