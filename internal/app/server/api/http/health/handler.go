package health

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// Pinger проверяет доступность хранилища
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	log        *slog.Logger
	pinger     Pinger
	middleware huma.Middlewares
}

// NewHandler создает обработчик. pinger может быть nil.
func NewHandler(log *slog.Logger, pinger Pinger, middleware huma.Middlewares) *Handler {
	return &Handler{
		log:        log,
		pinger:     pinger,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

func (h *Handler) healthCheck(ctx context.Context, _ *Input) (*Output, error) {
	h.log.Debug("health check request received")

	out := &Output{
		Status: http.StatusOK,
		Body:   Response{Status: "OK"},
	}
	if h.pinger == nil {
		return out, nil
	}

	if err := h.pinger.Ping(ctx); err != nil {
		h.log.Error("storage is unavailable", "error", err)
		out.Status = http.StatusServiceUnavailable
		out.Body = Response{Status: "DEGRADED", Storage: "UNAVAILABLE"}
		return out, nil
	}
	out.Body.Storage = "OK"
	return out, nil
}
