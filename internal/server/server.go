package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fa-emon/glamhub-server/config"
	"github.com/fa-emon/glamhub-server/internal/db"
	"github.com/fa-emon/glamhub-server/internal/handlers"
	"github.com/fa-emon/glamhub-server/internal/mq"
	"github.com/fa-emon/glamhub-server/internal/payments"
	"github.com/fa-emon/glamhub-server/internal/services"
	"github.com/fa-emon/glamhub-server/internal/storage"
	"github.com/fa-emon/glamhub-server/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.mongodb.org/mongo-driver/mongo"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	client     *mongo.Client
	broker     *mq.MQ
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("ACCESS_TOKEN_SECRET is required")
	}

	client, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	database := client.Database(cfg.Database.DBName)

	userRepo := store.NewUserRepository(database)
	courseRepo := store.NewCourseRepository(database)
	cartRepo := store.NewCartRepository(database)
	paymentRepo := store.NewPaymentRepository(client, database)

	broker, err := newBroker(ctx, cfg)
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	images, err := newObjectStorage(ctx, cfg)
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	intents, err := payments.NewStripeClient(cfg.Stripe.SecretKey)
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	userService := services.NewUserService(userRepo)
	courseService := services.NewCourseService(courseRepo)
	cartService := services.NewCartService(cartRepo)
	paymentService := services.NewPaymentService(paymentRepo, intents, eventPublisher(broker), cfg.Stripe.Currency)

	tokens := handlers.NewTokenService(cfg.JWTSecret)
	authMiddleware := handlers.RequireAuth(tokens)
	adminMiddleware := handlers.RequireAdmin(userService)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/", handlers.Home)
	router.Get("/healthz", handlers.Healthz)
	handlers.AuthRouter(router, tokens)
	router.Route("/users", func(r chi.Router) {
		handlers.UserRouter(r, userService, authMiddleware, adminMiddleware)
	})
	router.Route("/allCourses", func(r chi.Router) {
		handlers.CourseRouter(r, courseService, images, authMiddleware, adminMiddleware)
	})
	router.Route("/allInstructors", func(r chi.Router) {
		handlers.InstructorRouter(r, courseService)
	})
	router.Route("/carts", func(r chi.Router) {
		handlers.CartRouter(r, cartService, authMiddleware)
	})
	handlers.PaymentRouter(router, paymentService, authMiddleware)
	handlers.AdminRouter(router, userService, courseService, paymentService, authMiddleware, adminMiddleware)

	port := cfg.ServerPort
	if port == 0 {
		port = 5000
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
		client:     client,
		broker:     broker,
	}, nil
}

// newBroker selects the event broker backend. An empty MQ_BACKEND disables
// event publishing.
func newBroker(ctx context.Context, cfg config.Config) (*mq.MQ, error) {
	switch cfg.MQ.Backend {
	case "":
		return nil, nil
	case "rabbitmq":
		backend, err := mq.NewRabbitMQClient(cfg.MQ.RabbitMQ)
		if err != nil {
			return nil, err
		}
		return mq.New(backend), nil
	case "pubsub":
		backend, err := mq.NewPubSubClient(ctx, cfg.MQ.PubSub)
		if err != nil {
			return nil, err
		}
		return mq.New(backend), nil
	default:
		return nil, fmt.Errorf("unknown MQ backend %q", cfg.MQ.Backend)
	}
}

// newObjectStorage selects the object-storage backend for course images. An
// empty STORAGE_BACKEND disables the image endpoints.
func newObjectStorage(ctx context.Context, cfg config.Config) (*storage.Storage, error) {
	switch cfg.Storage.Backend {
	case "":
		return nil, nil
	case "minio":
		backend, err := storage.NewMinioClient(cfg.Storage.Minio)
		if err != nil {
			return nil, err
		}
		wrapped := storage.NewStorage(backend)
		if err := wrapped.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return wrapped, nil
	case "gcs":
		backend, err := storage.NewGCSClient(ctx, cfg.Storage.GCS)
		if err != nil {
			return nil, err
		}
		return storage.NewStorage(backend), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// eventPublisher adapts an optional broker to the service interface without
// handing it a typed nil.
func eventPublisher(broker *mq.MQ) services.EventPublisher {
	if broker == nil {
		return nil
	}
	return broker
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
	if s.broker != nil {
		_ = s.broker.Close()
	}
	if s.client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.client.Disconnect(ctx)
	}
	return s.httpServer.Close()
}
