package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jagruti-foundation/apiserver/config"
	"github.com/jagruti-foundation/apiserver/internal/auth"
	"github.com/jagruti-foundation/apiserver/internal/db"
	"github.com/jagruti-foundation/apiserver/internal/events"
	"github.com/jagruti-foundation/apiserver/internal/handlers"
	"github.com/jagruti-foundation/apiserver/internal/services"
	"github.com/jagruti-foundation/apiserver/internal/storage"
	"github.com/jagruti-foundation/apiserver/internal/store"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	bus        *events.Bus
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	mediaStorage, err := newStorage(ctx, cfg)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}
	if err := mediaStorage.EnsureBucket(ctx); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("ensure bucket: %w", err)
	}

	bus, err := newEventBus(ctx, cfg)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	userRepo := store.NewUserRepository(dbConn)
	newsRepo := store.NewNewsRepository(dbConn)
	storyRepo := store.NewStoryRepository(dbConn)
	galleryRepo := store.NewGalleryRepository(dbConn)
	donationRepo := store.NewDonationRepository(dbConn)
	enewspaperRepo := store.NewENewspaperRepository(dbConn)

	tokens := auth.NewTokenService(cfg.JWTSecret)

	userService := services.NewUserService(userRepo, tokens, bus, cfg.BaseURL)
	newsService := services.NewNewsService(newsRepo, mediaStorage)
	ngoService := services.NewNGOService(storyRepo, galleryRepo, donationRepo, mediaStorage, bus)
	enewspaperService := services.NewENewspaperService(enewspaperRepo, mediaStorage)

	mw := handlers.NewMiddleware(userService, tokens)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, userService)
	})
	router.Route("/admin", func(r chi.Router) {
		handlers.AdminRouter(r, userService, mw)
	})
	router.Route("/news", func(r chi.Router) {
		handlers.NewsRouter(r, newsService, mw)
	})
	router.Route("/ngo", func(r chi.Router) {
		handlers.NGORouter(r, ngoService, mw)
	})
	router.Route("/enewspapers", func(r chi.Router) {
		handlers.ENewspaperRouter(r, enewspaperService, mw)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		bus:        bus,
	}, nil
}

func newStorage(ctx context.Context, cfg config.Config) (*storage.Storage, error) {
	switch cfg.Storage.Backend {
	case "", "minio":
		client, err := storage.NewMinioClient(cfg.Storage.Minio)
		if err != nil {
			return nil, fmt.Errorf("minio: %w", err)
		}
		return storage.NewStorage(client), nil
	case "gcs":
		client, err := storage.NewGCSClient(ctx, cfg.Storage.GCS)
		if err != nil {
			return nil, fmt.Errorf("gcs: %w", err)
		}
		return storage.NewStorage(client), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// newEventBus returns a nil bus when eventing is disabled; the services
// treat a nil bus as a no-op.
func newEventBus(ctx context.Context, cfg config.Config) (*events.Bus, error) {
	switch cfg.Events.Backend {
	case "", "none":
		return nil, nil
	case "rabbitmq":
		client, err := events.NewRabbitMQClient(cfg.Events.RabbitMQ)
		if err != nil {
			return nil, fmt.Errorf("rabbitmq: %w", err)
		}
		return events.New(client), nil
	case "pubsub":
		client, err := events.NewPubSubClient(ctx, cfg.Events.PubSub)
		if err != nil {
			return nil, fmt.Errorf("pubsub: %w", err)
		}
		return events.New(client), nil
	default:
		return nil, fmt.Errorf("unknown events backend %q", cfg.Events.Backend)
	}
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.bus != nil {
		_ = s.bus.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}
