package admin

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) loginOp() huma.Operation {
	return huma.Operation{
		OperationID: "admin-login",
		Method:      http.MethodPost,
		Path:        "/api/admin/login",
		Summary:     "Вход администратора",
		Description: "Принимает master пароль или пароль из настроек.",
		Tags:        []string{"admin"},
		Middlewares: h.public,
	}
}

func (h *Handler) logoutOp() huma.Operation {
	return huma.Operation{
		OperationID: "admin-logout",
		Method:      http.MethodPost,
		Path:        "/api/admin/logout",
		Summary:     "Выход администратора",
		Tags:        []string{"admin"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.admin,
	}
}

func (h *Handler) getSettingsOp() huma.Operation {
	return huma.Operation{
		OperationID: "admin-settings-get",
		Method:      http.MethodGet,
		Path:        "/api/admin/settings",
		Summary:     "Текущие настройки",
		Tags:        []string{"admin", "settings"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.admin,
	}
}

func (h *Handler) updateSettingsOp() huma.Operation {
	return huma.Operation{
		OperationID: "admin-settings-update",
		Method:      http.MethodPut,
		Path:        "/api/admin/settings",
		Summary:     "Сменить email и пароль",
		Tags:        []string{"admin", "settings"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.admin,
	}
}
