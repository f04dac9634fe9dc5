package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"formular230/internal/domain/session"
)

type Auth struct {
	session session.Servicer
	log     *slog.Logger
}

func New(session session.Servicer, log *slog.Logger) *Auth {
	return &Auth{
		session: session,
		log:     log.With("component", "auth_middleware"),
	}
}

type contextKey string

const (
	SubjectKey contextKey = "subject"
	TokenKey   contextKey = "token"
)

// Middleware пропускает запрос дальше только с действующим Bearer токеном
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		token, ok := strings.CutPrefix(ctx.Header("Authorization"), "Bearer ")
		if !ok || token == "" {
			a.log.Debug("missing bearer token", "path", ctx.URL().Path)
			a.unauthorized(ctx, "Autentificare necesară")
			return
		}

		// Валидируем токен
		subject, err := a.session.Validate(ctx.Context(), token)
		if err != nil {
			a.log.Info("session rejected", "path", ctx.URL().Path, "error", err)
			a.unauthorized(ctx, "Sesiunea a expirat, autentificați-vă din nou")
			return
		}

		next(huma.WithContext(ctx, WithSession(ctx.Context(), subject, token)))
	}
}

func (a *Auth) unauthorized(ctx huma.Context, detail string) {
	ctx.SetHeader("Content-Type", "application/problem+json")
	ctx.SetStatus(http.StatusUnauthorized)

	err := json.NewEncoder(ctx.BodyWriter()).Encode(huma.ErrorModel{
		Title:  http.StatusText(http.StatusUnauthorized),
		Status: http.StatusUnauthorized,
		Detail: detail,
	})
	if err != nil {
		a.log.Error("failed to write response", "error", err)
	}
}

// WithSession кладет в контекст данные проверенной сессии
func WithSession(ctx context.Context, subject, token string) context.Context {
	ctx = context.WithValue(ctx, SubjectKey, subject)
	return context.WithValue(ctx, TokenKey, token)
}

func GetSubject(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(SubjectKey).(string)
	return subject, ok
}

func GetToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenKey).(string)
	return token, ok
}
