package user

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"payanam/internal/domain/session"
	"payanam/internal/domain/user"
)

type Handler struct {
	service    user.Servicer
	session    session.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service user.Servicer, session session.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		session:    session,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.signupOp(), h.signup)
	huma.Register(api, h.loginOp(), h.login)
}

func (h *Handler) signup(ctx context.Context, input *signupInput) (*authOutput, error) {
	u, err := h.service.Register(ctx, input.Body)
	if err != nil {
		var derr *user.DomainError
		switch {
		case errors.Is(err, user.ErrAlreadyExists):
			return nil, huma.Error400BadRequest("User already exists")
		case errors.As(err, &derr):
			return nil, huma.Error400BadRequest(derr.Error())
		default:
			h.log.Error("register user", "error", err)
			return nil, huma.Error500InternalServerError("internal error")
		}
	}

	return h.issue(ctx, u)
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*authOutput, error) {
	u, err := h.service.Authenticate(ctx, input.Body)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			return nil, huma.Error400BadRequest("User not found")
		case errors.Is(err, user.ErrInvalidAuth):
			return nil, huma.Error400BadRequest("Invalid credentials")
		}
		h.log.Error("authenticate user", "error", err)
		return nil, huma.Error500InternalServerError("internal error")
	}

	return h.issue(ctx, u)
}

func (h *Handler) issue(ctx context.Context, u user.User) (*authOutput, error) {
	token, err := h.session.Create(ctx, u.ID)
	if err != nil {
		h.log.Error("create session", "user_id", u.ID, "error", err)
		return nil, huma.Error500InternalServerError("internal error")
	}

	return &authOutput{
		Body: user.AuthResponse{Token: token, User: u.Profile()},
	}, nil
}
