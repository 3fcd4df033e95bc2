package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"eventhub/internal/config"
	"eventhub/internal/http-server/handlers/auth/currentUser"
	"eventhub/internal/http-server/handlers/auth/login"
	"eventhub/internal/http-server/handlers/auth/logout"
	"eventhub/internal/http-server/handlers/auth/register"
	"eventhub/internal/http-server/handlers/event/createEvent"
	"eventhub/internal/http-server/handlers/event/deleteEvent"
	"eventhub/internal/http-server/handlers/event/getAllEvents"
	"eventhub/internal/http-server/handlers/event/getEventInfo"
	"eventhub/internal/http-server/handlers/event/getMyRsvp"
	"eventhub/internal/http-server/handlers/event/rsvpEvent"
	"eventhub/internal/http-server/handlers/event/updateEvent"
	"eventhub/internal/http-server/middleware/authmw"
	"eventhub/internal/http-server/middleware/mwlogger"
	"eventhub/internal/lib/logger/handlers/slogpretty"
	"eventhub/internal/lib/logger/sl"
	"eventhub/internal/storage/postgres"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting eventhub", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	if err := postgres.RunMigrations(&cfg.Database, cfg.MigrationsPath); err != nil {
		log.Error("failed to run migrations", sl.Err(err))
		os.Exit(1)
	}

	storage, err := postgres.InitDB(&cfg.Database)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Post("/auth/register", register.New(log, storage, cfg.Auth.Secret, cfg.Auth.TokenTTL))
	router.Post("/auth/token", login.New(log, storage, cfg.Auth.Secret, cfg.Auth.TokenTTL))

	router.Group(func(r chi.Router) {
		r.Use(authmw.New(log, cfg.Auth.Secret))

		r.Get("/auth/me", currentUser.New(log, storage))
		r.Post("/auth/logout", logout.New(log))

		r.Get("/events", getAllEvents.New(log, storage))
		r.Post("/events", createEvent.New(log, storage))
		r.Get("/events/{id}", getEventInfo.New(log, storage))
		r.Put("/events/{id}", updateEvent.New(log, storage))
		r.Delete("/events/{id}", deleteEvent.New(log, storage))
		r.Post("/events/{id}/rsvp", rsvpEvent.New(log, storage))
		r.Get("/rsvps/event/{id}", getMyRsvp.New(log, storage))
	})

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	go func() {
		if err = srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	if err = storage.Close(); err != nil {
		log.Error("failed to close postgres connection", sl.Err(err))
	}

	log.Info("postgres connection closed")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
