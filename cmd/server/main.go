package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/sangkips/flight-notify-service/internal/app"
	"github.com/sangkips/flight-notify-service/internal/auth"
	"github.com/sangkips/flight-notify-service/internal/config"
	"github.com/sangkips/flight-notify-service/internal/domains/messages"
	"github.com/sangkips/flight-notify-service/internal/domains/notifications"
	"github.com/sangkips/flight-notify-service/internal/domains/routes"
	"github.com/sangkips/flight-notify-service/internal/domains/templates"
	"github.com/sangkips/flight-notify-service/internal/domains/users"
	"github.com/sangkips/flight-notify-service/internal/logging"
	"github.com/sangkips/flight-notify-service/internal/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Setup(cfg.LogLevel, cfg.LogFile)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize service")
	}
	defer a.Close()

	r := newRouter(a)

	// Push history entries parked in the local cache while the store was down.
	if a.Local != nil {
		scheduler := worker.NewScheduler(a.Messages, cfg.HistoryResyncInterval)
		go scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Signals close the listener at once; in-flight requests are not drained.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("received signal, shutting down")
		cancel()
		if err := srv.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close server")
		}
	}()

	log.Info().Msg("server starting on :" + cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("failed to start server")
	}
	log.Info().Msg("server stopped")
}

func newRouter(a *app.App) http.Handler {
	cfg := a.Config

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	a.Health.RegisterHealthRoutes(r)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if cfg.AuthEnabled {
			r.Use(auth.Middleware(a.Verifier))
		} else {
			log.Warn().Msg("AUTH_ENABLED is false, API is unauthenticated")
		}

		notifications.NewHandler(a.Notifications, cfg.UploadDir, cfg.MaxUploadBytes).RegisterNotificationRoutes(r)

		templateHandler := templates.NewHandler(a.Templates)
		r.Route("/templates", func(r chi.Router) {
			templateHandler.RegisterTemplateRoutes(r)
		})

		routeHandler := routes.NewHandler(a.Routes, cfg.MaxUploadBytes)
		r.Route("/routes", func(r chi.Router) {
			routeHandler.RegisterRouteRoutes(r)
		})

		userHandler := users.NewHandler(a.Users)
		r.Route("/users", func(r chi.Router) {
			userHandler.RegisterUserRoutes(r)
		})

		messageHandler := messages.NewHandler(a.Messages)
		r.Route("/messages", func(r chi.Router) {
			messageHandler.RegisterMessageRoutes(r)
		})
	})

	return r
}
