package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

const (
	StorageOK          = "ok"
	StorageUnavailable = "unavailable"
	StorageUnchecked   = "unchecked"
)

// Pinger проверяет доступность удаленного хранилища
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	storage    Pinger
	log        *slog.Logger
	middleware huma.Middlewares
}

// NewHandler - storage может быть nil, тогда хранилище не проверяется
func NewHandler(storage Pinger, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		storage:    storage,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

// healthCheck всегда отвечает 200: сервис жив, даже если GitHub недоступен
func (h *Handler) healthCheck(ctx context.Context, _ *Input) (*Output, error) {
	h.log.Debug("health check request received")

	storage := StorageUnchecked
	if h.storage != nil {
		storage = StorageOK
		if err := h.storage.Ping(ctx); err != nil {
			h.log.Warn("storage ping failed", "error", err)
			storage = StorageUnavailable
		}
	}

	return &Output{
		Body: Response{
			Status:  "OK",
			Storage: storage,
		},
	}, nil
}
