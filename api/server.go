package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rpupo63/album-review-backend/config"
	"github.com/rpupo63/album-review-backend/database"
	"github.com/rpupo63/album-review-backend/security"
	"github.com/rpupo63/album-review-backend/services"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(c map[string]string, database database.Database, covers services.CoverStorage, mailer services.Mailer) (Server, error) {
	secret := config.GetString(c, "JWT_SECRET", "")
	if secret == "" {
		return Server{}, errors.New("JWT_SECRET is not set")
	}
	if covers == nil {
		return Server{}, errors.New("no cover storage configured")
	}
	ttl := time.Duration(config.GetInt(c, "JWT_TTL_MINUTES", 60)) * time.Minute

	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port)

	startupTime := time.Now()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := newRouter(database,
		withConfig(c),
		withStartupTime(startupTime),
		withCoverStorage(covers),
		withMailer(mailer),
		withTokenIssuer(security.NewTokenIssuer(secret, ttl)),
		withRegistry(registry),
	)

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  config.GetSeconds(c, "READ_TIMEOUT_SECONDS", 180*time.Second),
		WriteTimeout: config.GetSeconds(c, "WRITE_TIMEOUT_SECONDS", 180*time.Second),
		IdleTimeout:  config.GetSeconds(c, "IDLE_TIMEOUT_SECONDS", 180*time.Second),
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
	covers      services.CoverStorage
	mailer      services.Mailer
	tokens      *security.TokenIssuer
	registry    *prometheus.Registry
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func withCoverStorage(covers services.CoverStorage) func(*router) {
	return func(r *router) {
		r.covers = covers
	}
}

func withMailer(mailer services.Mailer) func(*router) {
	return func(r *router) {
		r.mailer = mailer
	}
}

func withTokenIssuer(tokens *security.TokenIssuer) func(*router) {
	return func(r *router) {
		r.tokens = tokens
	}
}

func withRegistry(registry *prometheus.Registry) func(*router) {
	return func(r *router) {
		r.registry = registry
	}
}

func newRouter(database database.Database, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}
	if router.mailer == nil {
		router.mailer = services.LogMailer{}
	}
	if router.tokens == nil {
		router.tokens = security.NewTokenIssuer(config.GetString(router.config, "JWT_SECRET", ""), time.Hour)
	}
	if router.registry == nil {
		router.registry = prometheus.NewRegistry()
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(corsMiddleware(config.GetList(router.config, "ACCEPTED_ORIGINS", []string{"*"})))
	chiRouter.Use(newHTTPMetrics(router.registry).middleware)
	chiRouter.Use(ColoredHTTPLoggingMiddleware)

	handlers := initializeHandlers(database, router)
	authMiddleware := newAuthMiddleware(router.tokens, database.UserRepo())

	chiRouter.Get("/health", handlers.healthHandler.health())
	chiRouter.Handle("/metrics", promhttp.HandlerFor(router.registry, promhttp.HandlerOpts{}))

	if local, ok := router.covers.(*services.LocalCoverStorage); ok {
		chiRouter.Handle("/covers/*", http.StripPrefix("/covers/", http.FileServer(http.Dir(local.Dir()))))
	}

	chiRouter.Group(func(r chi.Router) {
		r.Use(authMiddleware.loadUser)

		setupPublicRoutes(r, handlers, config.GetInt(router.config, "LOGIN_RATE_LIMIT", 10))
		setupAuthenticatedRoutes(r, handlers, authMiddleware)
		setupAdminRoutes(r, handlers, authMiddleware)
	})

	return chiRouter
}

// Run serves until ctx is done, then shuts down within shutdownTimeout.
func (s Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Msgf("Server started on: %s", s.Addr)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.ShutdownGracefully(shutdownTimeout)
		return nil
	})

	return g.Wait()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msgf("HttpServer gracefully shut down after %s", time.Since(s.startupTime).Round(time.Second))
	}
}
