// POST   /api/auth/signup   # Регистрация (публичный)
// POST   /api/auth/login    # Логин (публичный)
// GET    /api/health        # Состояние сервера (публичный)
// GET    /api/trips         # Список поездок, новые первыми (auth)
// POST   /api/trips         # Создать поездку (auth)
// PUT    /api/trips/{id}    # Частично обновить поездку (auth)
// DELETE /api/trips/{id}    # Удалить поездку (auth)

package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/exp/slog"

	healthAPI "payanam/internal/app/server/api/http/health"
	"payanam/internal/app/server/api/http/middleware"
	"payanam/internal/app/server/api/http/middleware/auth"
	"payanam/internal/app/server/api/http/middleware/logger"
	tripAPI "payanam/internal/app/server/api/http/trip"
	userAPI "payanam/internal/app/server/api/http/user"
	"payanam/internal/domain/session"
	"payanam/internal/domain/trip"
	"payanam/internal/domain/user"
)

// Deps - зависимости API. Pinger может быть nil (in-memory хранилище).
type Deps struct {
	Users          user.Repository
	Trips          trip.Repository
	Session        session.Servicer
	Pinger         healthAPI.Pinger
	AllowedOrigins []string
}

type Handlers struct {
	Health *healthAPI.Handler
	User   *userAPI.Handler
	Trip   *tripAPI.Handler
}

// New собирает http.Handler со всеми операциями, зарегистрированными через huma.Register
func New(deps Deps, log *slog.Logger) http.Handler {
	mux := chi.NewMux()
	mux.Use(chimiddleware.RequestID)
	mux.Use(chimiddleware.RealIP)
	mux.Use(chimiddleware.Recoverer)

	config := huma.DefaultConfig("Payanam API", "1.0.0")
	// Тела ответов без поля $schema: клиенты ждут плоский JSON
	config.CreateHooks = nil
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
	}

	API := humachi.New(mux, config)

	h := handlers(deps, log)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Trip.SetupRoutes(API)

	return newCORS(deps.AllowedOrigins).Handler(mux)
}

func newCORS(origins []string) *cors.Cors {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "Accept"},
	})
}

func handlers(deps Deps, log *slog.Logger) *Handlers {
	authMW := auth.New(deps.Session, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, deps.Pinger, middlewares.GetAllAndClear())

	userService := user.NewService(deps.Users, user.NewCredentialsValidator(), log)
	middlewares.Add(loggerMW.Middleware())
	userHandler := userAPI.NewHandler(userService, deps.Session, log, middlewares.GetAllAndClear())

	tripService := trip.NewService(deps.Trips, log)
	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(authMW.Middleware())
	tripHandler := tripAPI.NewHandler(tripService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		User:   userHandler,
		Trip:   tripHandler,
	}
}
