package form

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"

	"formular230/internal/domain/result"
)

type Servicer interface {
	Submit(ctx context.Context, f Form) (Form, error)
	List(ctx context.Context, query string) result.Result[[]Form]
	Find(ctx context.Context, id int64) (Form, error)
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo      Repository
	validator Validator
	log       *slog.Logger
}

func NewService(repo Repository, validator Validator, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		log:       log.With("component", "form_service"),
	}
}

// Submit проверяет заявку и сохраняет ее
func (s *Service) Submit(ctx context.Context, f Form) (Form, error) {
	if f.DistributionPeriod == "" {
		f.DistributionPeriod = DefaultPeriod
	}

	if err := s.validator.Validate(f); err != nil {
		s.log.Debug("form validation failed", "error", err)
		return Form{}, err
	}

	f.ID = 0
	saved, err := s.repo.Append(ctx, f)
	if err != nil {
		s.log.Error("failed to save form", "error", err)
		if errors.Is(err, ErrConflict) {
			return Form{}, err
		}
		return Form{}, fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	s.log.Info("form submitted", "form_id", saved.ID, "authorization", saved.WantsAuthorization)
	return saved, nil
}

// List возвращает заявки, отфильтрованные по строке поиска
func (s *Service) List(ctx context.Context, query string) result.Result[[]Form] {
	res := s.repo.List(ctx)
	if !res.Available {
		s.log.Warn("forms store unavailable", "error", res.Err)
		return res
	}

	res.Data = Search(res.Data, query)
	return res
}

// Find ищет заявку по id
func (s *Service) Find(ctx context.Context, id int64) (Form, error) {
	res := s.repo.List(ctx)
	if !res.Available {
		return Form{}, fmt.Errorf("%w: %v", ErrUnavailable, res.Err)
	}

	for _, f := range res.Data {
		if f.ID == id {
			return f, nil
		}
	}
	return Form{}, ErrNotFound
}

// Delete удаляет заявку. Повторное удаление не ошибка.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error("failed to delete form", "form_id", id, "error", err)
		if errors.Is(err, ErrStoreMissing) || errors.Is(err, ErrConflict) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}

	s.log.Info("form deleted", "form_id", id)
	return nil
}
