// Публичные операции:
//GET  /api/v1/health            # Состояние сервиса и хранилища
//POST /api/forms                # Прием заявки
//POST /api/admin/login          # Вход администратора
//
// Операции администратора (Bearer токен):
//POST   /api/admin/logout
//GET    /api/admin/forms?q=
//DELETE /api/admin/forms/{id}
//GET    /api/admin/forms/{id}/pdf
//GET    /api/admin/forms/{id}/json
//GET    /api/admin/forms/export/pdf?q=
//GET    /api/admin/forms/export/xlsx?q=
//GET    /api/admin/settings
//PUT    /api/admin/settings

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	adminAPI "formular230/internal/app/server/api/http/admin"
	formAPI "formular230/internal/app/server/api/http/form"
	healthAPI "formular230/internal/app/server/api/http/health"
	"formular230/internal/app/server/api/http/middleware"
	"formular230/internal/app/server/api/http/middleware/auth"
	"formular230/internal/app/server/api/http/middleware/logger"
	"formular230/internal/domain/form"
	"formular230/internal/domain/session"
	"formular230/internal/domain/settings"
)

// Services - собранные в main зависимости обработчиков
type Services struct {
	Storage  healthAPI.Pinger
	Forms    form.Servicer
	Exporter formAPI.Exporter
	Settings settings.Servicer
	Sessions session.Servicer
}

type Handlers struct {
	Health *healthAPI.Handler
	Form   *formAPI.Handler
	Admin  *adminAPI.Handler
}

// New создает *chi.Mux с ВСЕМИ операциями через huma.Register
func New(services Services, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("Formular 230 API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, config)

	h := handlers(services, log)
	h.Health.SetupRoutes(API)
	h.Form.SetupRoutes(API)
	h.Admin.SetupRoutes(API)

	return mux
}

func handlers(s Services, log *slog.Logger) *Handlers {
	authMW := auth.New(s.Sessions, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(s.Storage, log, middlewares.GetAllAndClear())

	// logger идет первым, чтобы 401 тоже попадали в журнал
	middlewares.Add(loggerMW.Middleware())
	public := middlewares.GetAllAndClear()
	middlewares.Add(loggerMW.Middleware(), authMW.Middleware())
	admin := middlewares.GetAllAndClear()

	formHandler := formAPI.NewHandler(s.Forms, s.Exporter, log, public, admin)
	adminHandler := adminAPI.NewHandler(s.Settings, s.Sessions, log, public, admin)

	return &Handlers{
		Health: healthHandler,
		Form:   formHandler,
		Admin:  adminHandler,
	}
}
