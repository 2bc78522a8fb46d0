package trip

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"payanam/internal/app/server/api/http/middleware/auth"
	"payanam/internal/domain/trip"
)

type Handler struct {
	service    trip.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service trip.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	trips, err := h.service.List(ctx, userID)
	if err != nil {
		return nil, h.mapError(err)
	}

	return &listOutput{Body: trips}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*tripOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	t, err := h.service.Create(ctx, userID, input.Body)
	if err != nil {
		return nil, h.mapError(err)
	}

	return &tripOutput{Body: t}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*tripOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	t, err := h.service.Update(ctx, userID, input.ID, input.Body)
	if err != nil {
		return nil, h.mapError(err)
	}

	return &tripOutput{Body: t}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*deleteOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Delete(ctx, userID, input.ID); err != nil {
		return nil, h.mapError(err)
	}

	return &deleteOutput{Body: MessageResponse{Message: "Trip deleted"}}, nil
}

func (h *Handler) mapError(err error) error {
	var verr *trip.ValidationError
	switch {
	case errors.Is(err, trip.ErrNotFound):
		return huma.Error404NotFound("Trip not found")
	case errors.As(err, &verr):
		return huma.Error422UnprocessableEntity(verr.Error(), &huma.ErrorDetail{
			Message:  verr.Message,
			Location: "body." + verr.Field,
		})
	default:
		h.log.Error("trip operation failed", "error", err)
		return huma.Error500InternalServerError("internal error")
	}
}
