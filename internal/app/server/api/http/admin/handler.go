package admin

import (
	"context"
	"errors"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"formular230/internal/app/server/api/http/middleware/auth"
	"formular230/internal/domain/session"
	"formular230/internal/domain/settings"
)

// Subject - единственный субъект сессий, учетных записей нет
const Subject = "admin"

type Handler struct {
	settings settings.Servicer
	session  session.Servicer
	log      *slog.Logger
	public   huma.Middlewares
	admin    huma.Middlewares
}

func NewHandler(settings settings.Servicer, session session.Servicer, log *slog.Logger, public, admin huma.Middlewares) *Handler {
	return &Handler{
		settings: settings,
		session:  session,
		log:      log.With("component", "admin_handler"),
		public:   public,
		admin:    admin,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.logoutOp(), h.logout)
	huma.Register(api, h.getSettingsOp(), h.getSettings)
	huma.Register(api, h.updateSettingsOp(), h.updateSettings)
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*loginOutput, error) {
	if !h.settings.VerifyPassword(ctx, input.Body.Password) {
		h.log.Info("admin login rejected")
		return nil, huma.Error401Unauthorized("Parolă incorectă")
	}

	token, expiresAt, err := h.session.Create(ctx, Subject)
	if err != nil {
		h.log.Error("failed to create session", "error", err)
		return nil, huma.Error500InternalServerError("Sesiunea nu a putut fi creată")
	}

	return &loginOutput{
		Body: loginResponse{Token: token, ExpiresAt: expiresAt},
	}, nil
}

func (h *Handler) logout(ctx context.Context, _ *struct{}) (*logoutOutput, error) {
	token, _ := auth.GetToken(ctx)
	if err := h.session.Revoke(ctx, token); err != nil {
		h.log.Error("failed to revoke session", "error", err)
		return nil, huma.Error500InternalServerError("Deconectarea a eșuat")
	}
	return &logoutOutput{Body: ackResponse{Status: "Ok"}}, nil
}

func (h *Handler) getSettings(ctx context.Context, _ *struct{}) (*settingsOutput, error) {
	res := h.settings.Get(ctx)
	return &settingsOutput{
		Body: settingsResponse{Email: res.Data.Email, Available: res.Available},
	}, nil
}

func (h *Handler) updateSettings(ctx context.Context, input *updateSettingsInput) (*updateSettingsOutput, error) {
	err := h.settings.Update(ctx, settings.Settings{
		Email:    input.Body.Email,
		Password: input.Body.Password,
	})
	switch {
	case err == nil:
		return &updateSettingsOutput{Body: ackResponse{Status: "Ok"}}, nil
	case errors.Is(err, settings.ErrInvalidInput):
		msg := strings.TrimPrefix(err.Error(), settings.ErrInvalidInput.Error()+": ")
		return nil, huma.Error422UnprocessableEntity(msg)
	case errors.Is(err, settings.ErrConflict):
		return nil, huma.Error409Conflict("Setările au fost modificate între timp, reîncercați")
	default:
		return nil, huma.Error502BadGateway("Setările nu au putut fi salvate")
	}
}
