package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/exp/slog"

	"payanam/internal/app/server/api"
	"payanam/internal/app/server/config"
	"payanam/internal/domain/session"
	"payanam/internal/infrastructure/storage/memory"
	"payanam/internal/infrastructure/storage/postgres"
	"payanam/internal/utils/logger"
)

func main() {
	conf := config.MustLoad()
	log := logger.New(conf.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, closeStorage, err := storage(ctx, conf, log)
	if err != nil {
		log.Error("failed to init storage", "storage", conf.Storage, "error", err)
		os.Exit(1)
	}
	defer closeStorage()

	sess, err := session.NewService(conf.JWT.Secret, conf.JWT.TTL, log)
	if err != nil {
		log.Error("failed to init session service", "error", err)
		os.Exit(1)
	}
	deps.Session = sess
	deps.AllowedOrigins = conf.CORS.AllowedOrigins

	srv := &http.Server{
		Addr:         conf.Server.RunAddress,
		Handler:      api.New(deps, log),
		ReadTimeout:  conf.Server.ReadTimeout,
		WriteTimeout: conf.Server.WriteTimeout,
	}

	go func() {
		log.Info("server starting", "addr", srv.Addr, "env", conf.Env, "storage", conf.Storage)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
		return
	}
	log.Info("server stopped")
}

func storage(ctx context.Context, conf *config.Config, log *slog.Logger) (api.Deps, func(), error) {
	if conf.Storage == config.StorageMemory {
		log.Warn("using in-memory storage, data is lost on restart")
		return api.Deps{
			Users: memory.NewUserRepository(),
			Trips: memory.NewTripRepository(),
		}, func() {}, nil
	}

	st, err := postgres.New(ctx, conf)
	if err != nil {
		return api.Deps{}, nil, err
	}

	deps := api.Deps{
		Users:  postgres.NewUserRepository(st.Pool(), log),
		Trips:  postgres.NewTripRepository(st.Pool(), log),
		Pinger: st,
	}
	closeFn := func() {
		if err := st.Close(); err != nil {
			log.Error("close storage", "error", err)
		}
	}
	return deps, closeFn, nil
}
