package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/redis/go-redis/v9"

	"eventsexpress/config"
	_ "eventsexpress/docs" // swagger docs
	"eventsexpress/internal/adapters/auth"
	"eventsexpress/internal/adapters/cache"
	"eventsexpress/internal/adapters/email"
	httpdelivery "eventsexpress/internal/delivery/http"
	"eventsexpress/internal/delivery/http/controllers"
	"eventsexpress/internal/delivery/http/middleware"
	"eventsexpress/internal/domain"
	"eventsexpress/internal/notification"
	"eventsexpress/internal/notification/handlers"
	"eventsexpress/internal/repository/postgres"
	"eventsexpress/internal/services"
)

const (
	serviceTimeout  = 10 * time.Second
	shutdownTimeout = 15 * time.Second
	bcryptCost      = 12
)

// @title EventsExpress API
// @version 1.0
// @description Event platform backend: event lifecycle, visitor admission, ratings, and notifications.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Error("ping redis", "err", err)
		os.Exit(1)
	}

	// Repositories
	eventRepo := postgres.NewEventRepository(db)
	visitorRepo := postgres.NewVisitorRepository(db)
	rateRepo := postgres.NewRateRepository(db)
	userRepo := postgres.NewUserRepository(db)
	photoRepo := postgres.NewPhotoRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)

	// Adapters
	mailer, err := email.NewMailer(cfg.Mailer)
	if err != nil {
		logger.Error("init mailer", "err", err)
		os.Exit(1)
	}
	renderer := email.NewTemplateRenderer()
	hasher := auth.NewBcryptHasher(bcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret)
	verificationStore := cache.NewVerificationStore(redisClient, cfg.VerificationTTL)

	// Notification bus and handlers
	bus := notification.NewBus(logger)
	emailService := services.NewEmailService(mailer, renderer)
	bus.Subscribe(domain.MessageEventBlocked,
		handlers.NewBlockedEventHandler(userRepo, emailService, cfg.AppBaseURL, logger))
	bus.Subscribe(domain.MessageEventCreated,
		handlers.NewEventCreatedHandler(userRepo, emailService, cfg.AppBaseURL, logger))
	bus.Subscribe(domain.MessageRegisterVerification,
		handlers.NewRegisterVerificationHandler(verificationStore, emailService, cfg.AppBaseURL, logger))

	// Services
	photoService := services.NewPhotoService(photoRepo)
	rateService := services.NewRateService(rateRepo)
	eventService := services.NewEventService(eventRepo, visitorRepo, rateService, photoService, bus, serviceTimeout)
	visitorService := services.NewVisitorService(eventRepo, visitorRepo)
	userService := services.NewUserService(userRepo, hasher, jwtManager, verificationStore, bus, cfg.JWTExpiry)

	// HTTP delivery
	mux := httpdelivery.NewRouter(httpdelivery.Controllers{
		Events:     controllers.NewEventController(logger, eventService),
		Visitors:   controllers.NewVisitorController(logger, visitorService),
		Auth:       controllers.NewAuthController(logger, userService),
		Users:      controllers.NewUserController(logger, userService),
		Categories: controllers.NewCategoryController(logger, categoryRepo),
	}, jwtManager)

	handler := middleware.LoggingMiddleware(logger,
		middleware.CORS(cfg.CORSAllowedOrigins, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", "err", err)
	}
	// Let in-flight notification handlers finish before closing connections.
	bus.Wait()
	logger.Info("server stopped")
}
