package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"listTracker/internal/config"
	"listTracker/internal/handlers"
	"listTracker/internal/logger"
	"listTracker/internal/middleware"
	"listTracker/internal/repository/inmemory"
	"listTracker/internal/repository/postgres"
	"listTracker/internal/service"
)

type App struct {
	config    *config.Config
	server    *http.Server
	router    *chi.Mux
	store     service.Store
	shutdowns []func()
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

// Init builds the whole dependency chain: logger, storage backend,
// services, handlers and the router.
func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("logger init: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("flushing logs...")
		logger.Sync()
	})

	store, err := a.openStore(ctx)
	if err != nil {
		return fmt.Errorf("storage init: %w", err)
	}
	a.store = store
	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("closing storage...")
		a.store.Close()
	})

	a.router = a.buildRouter()
	a.server = &http.Server{
		Addr:         a.config.ServerAddr(),
		Handler:      a.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	return nil
}

func (a *App) openStore(ctx context.Context) (service.Store, error) {
	switch a.config.Repository.Type {
	case "postgres":
		storage, err := postgres.New(ctx, a.config.Database.URL)
		if err != nil {
			return nil, err
		}
		if err := storage.Migrate(); err != nil {
			storage.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
		return storage, nil
	case "inmemory":
		return inmemory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown repository type %q", a.config.Repository.Type)
	}
}

func (a *App) buildRouter() *chi.Mux {
	listHandler := handlers.NewListHandler(service.NewListService(a.store))
	taskHandler := handlers.NewTaskHandler(service.NewTaskService(a.store))
	tagHandler := handlers.NewTagHandler(service.NewTagService(a.store))
	commentHandler := handlers.NewCommentHandler(service.NewCommentService(a.store))
	shareHandler := handlers.NewShareHandler(service.NewShareService(a.store))
	healthHandler := handlers.NewHealthHandler(a.store)

	auth := middleware.NewAuthenticator(a.config.Auth.Secret)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(a.config.Server.RequestTimeout))
	r.Use(middleware.RateLimit(a.config.Server.RateLimitRPM))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", healthHandler.Get)

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.Middleware)

		r.Route("/todolists", func(r chi.Router) {
			r.Get("/", listHandler.GetLists)
			r.Post("/", listHandler.PostList)

			r.Route("/{listID}", func(r chi.Router) {
				r.Get("/", listHandler.GetList)
				r.Put("/", listHandler.PutList)
				r.Delete("/", listHandler.DeleteList)

				r.Get("/tasks", taskHandler.GetListTasks)
				r.Post("/tasks", taskHandler.PostTask)

				r.Route("/users", func(r chi.Router) {
					r.Get("/", shareHandler.GetShares)
					r.Post("/", shareHandler.PostShare)
					r.Put("/{userName}", shareHandler.PutShare)
					r.Delete("/{userName}", shareHandler.DeleteShare)
				})
			})
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/assigned", taskHandler.GetAssigned)
			r.Get("/search", taskHandler.GetSearch)

			r.Route("/{taskID}", func(r chi.Router) {
				r.Get("/", taskHandler.GetTask)
				r.Put("/", taskHandler.PutTask)
				r.Delete("/", taskHandler.DeleteTask)
				r.Put("/status", taskHandler.PutTaskStatus)

				r.Route("/tags", func(r chi.Router) {
					r.Get("/", tagHandler.GetTags)
					r.Post("/", tagHandler.PostTag)
					r.Delete("/{tagID}", tagHandler.DeleteTag)
				})

				r.Route("/comments", func(r chi.Router) {
					r.Get("/", commentHandler.GetComments)
					r.Post("/", commentHandler.PostComment)
				})
			})
		})

		r.Route("/comments/{commentID}", func(r chi.Router) {
			r.Put("/", commentHandler.PutComment)
			r.Delete("/", commentHandler.DeleteComment)
		})
	})

	return r
}

// Router exposes the configured mux, mainly for tests.
func (a *App) Router() http.Handler {
	return a.router
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.runShutdowns()
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	err := a.server.Shutdown(shutdownCtx)
	a.runShutdowns()
	return err
}

func (a *App) runShutdowns() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
}
