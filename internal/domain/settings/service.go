package settings

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"

	"formular230/internal/domain/result"
)

type Servicer interface {
	Get(ctx context.Context) result.Result[Settings]
	Update(ctx context.Context, s Settings) error
	VerifyPassword(ctx context.Context, candidate string) bool
}

type Service struct {
	repo   Repository
	master string
	log    *slog.Logger
}

// NewService - master пароль действует всегда, даже если хранилище недоступно
func NewService(repo Repository, master string, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		master: master,
		log:    log.With("component", "settings_service"),
	}
}

func (s *Service) Get(ctx context.Context) result.Result[Settings] {
	res := s.repo.Read(ctx)
	if !res.Available {
		s.log.Warn("settings store unavailable, using defaults", "error", res.Err)
	}
	return res
}

// Update перезаписывает настройки целиком
func (s *Service) Update(ctx context.Context, in Settings) error {
	in.Email = strings.TrimSpace(in.Email)
	if !strings.Contains(in.Email, "@") {
		return fmt.Errorf("%w: email-ul nu este valid", ErrInvalidInput)
	}
	if in.Password == "" {
		return fmt.Errorf("%w: parola nu poate fi goală", ErrInvalidInput)
	}

	if err := s.repo.Write(ctx, in); err != nil {
		s.log.Error("failed to save settings", "error", err)
		if errors.Is(err, ErrConflict) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	s.log.Info("settings updated", "email", in.Email)
	return nil
}

// VerifyPassword сначала сверяет master пароль, затем сохраненный
func (s *Service) VerifyPassword(ctx context.Context, candidate string) bool {
	if candidate == "" {
		return false
	}
	if s.master != "" && equal(candidate, s.master) {
		s.log.Debug("admin login with master password")
		return true
	}

	res := s.repo.Read(ctx)
	if !res.Available {
		s.log.Warn("settings store unavailable, only master password accepted", "error", res.Err)
		return false
	}

	return matches(res.Data.Password, candidate)
}

func matches(stored, candidate string) bool {
	if stored == "" {
		return false
	}
	if isBcrypt(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
	}
	return equal(stored, candidate)
}

func isBcrypt(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
