package form

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) submitOp() huma.Operation {
	return huma.Operation{
		OperationID:   "forms-submit",
		Method:        http.MethodPost,
		Path:          "/api/forms",
		Summary:       "Отправить Formular 230",
		Description:   "Публичная точка приема заявок. Ошибки валидации возвращаются по полям на румынском.",
		Tags:          []string{"forms"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.public,
	}
}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "forms-list",
		Method:      http.MethodGet,
		Path:        "/api/admin/forms",
		Summary:     "Список заявок с поиском",
		Tags:        []string{"admin", "forms"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.admin,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "forms-delete",
		Method:      http.MethodDelete,
		Path:        "/api/admin/forms/{id}",
		Summary:     "Удалить заявку",
		Description: "Удаление отсутствующей заявки не ошибка.",
		Tags:        []string{"admin", "forms"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.admin,
	}
}

func (h *Handler) pdfOp() huma.Operation {
	return huma.Operation{
		OperationID: "forms-pdf",
		Method:      http.MethodGet,
		Path:        "/api/admin/forms/{id}/pdf",
		Summary:     "Скачать заявку в PDF",
		Tags:        []string{"admin", "export"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.admin,
	}
}

func (h *Handler) jsonOp() huma.Operation {
	return huma.Operation{
		OperationID: "forms-json",
		Method:      http.MethodGet,
		Path:        "/api/admin/forms/{id}/json",
		Summary:     "Скачать заявку в JSON",
		Tags:        []string{"admin", "export"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.admin,
	}
}

func (h *Handler) exportPDFOp() huma.Operation {
	return huma.Operation{
		OperationID: "forms-export-pdf",
		Method:      http.MethodGet,
		Path:        "/api/admin/forms/export/pdf",
		Summary:     "Все заявки одним PDF",
		Description: "Страницы заявок идут в порядке списка, имя файла содержит дату выгрузки.",
		Tags:        []string{"admin", "export"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.admin,
	}
}

func (h *Handler) exportXLSXOp() huma.Operation {
	return huma.Operation{
		OperationID: "forms-export-xlsx",
		Method:      http.MethodGet,
		Path:        "/api/admin/forms/export/xlsx",
		Summary:     "Таблица заявок в XLSX",
		Tags:        []string{"admin", "export"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.admin,
	}
}
