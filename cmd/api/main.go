package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/poopticket/citation-service/internal/api/http"
	"github.com/poopticket/citation-service/internal/api/http/handlers"
	"github.com/poopticket/citation-service/internal/auth"
	"github.com/poopticket/citation-service/internal/config"
	"github.com/poopticket/citation-service/internal/events"
	"github.com/poopticket/citation-service/internal/observability"
	"github.com/poopticket/citation-service/internal/persistence"
	"github.com/poopticket/citation-service/internal/repository"
	"github.com/poopticket/citation-service/internal/service"
	"github.com/poopticket/citation-service/internal/session"
	"github.com/poopticket/citation-service/internal/throttle"
	"github.com/poopticket/citation-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations && pg.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var citationRepo repository.CitationRepository
	var userRepo repository.UserRepository
	var propertyRepo repository.PropertyRepository
	if pool := pg.PoolHandle(); pool != nil {
		citationRepo = repository.NewCitationRepository(pool)
		userRepo = repository.NewUserRepository(pool)
		propertyRepo = repository.NewPropertyRepository(pool)
	} else {
		seed, err := persistence.Seed(cfg.Auth.BcryptCost)
		if err != nil {
			logger.Fatal("failed to build seed data", zap.Error(err))
		}
		citationRepo = repository.NewMemoryCitationRepository(seed.Citations)
		userRepo = repository.NewMemoryUserRepository(seed.Users)
		propertyRepo = repository.NewMemoryPropertyRepository(seed.Properties)
		logger.Info("seeded in-memory store",
			zap.Int("citations", len(seed.Citations)),
			zap.Int("users", len(seed.Users)),
			zap.Int("properties", len(seed.Properties)))
	}

	var sessions session.Store
	if redis.Ping(ctx) == nil {
		sessions = session.NewRedisStore(redis.Client)
	} else {
		sessions = session.NewMemoryStore()
	}

	loginThrottles := throttle.NewRegistry(throttle.Config{
		Mode:        throttle.ModeConsecutiveFailures,
		MaxAttempts: cfg.Throttle.LoginMaxAttempts,
		BlockFor:    cfg.Throttle.LoginBlock(),
	})
	searchThrottles := throttle.NewRegistry(throttle.Config{
		Mode:        throttle.ModeSlidingWindow,
		MaxAttempts: cfg.Throttle.SearchMaxAttempts,
		Window:      cfg.Throttle.SearchWindow(),
		BlockFor:    cfg.Throttle.SearchBlock(),
	})
	defer loginThrottles.StopAll()
	defer searchThrottles.StopAll()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	lookupService := service.NewLookupService(service.LookupDependencies{
		CitationRepo: citationRepo,
		UserRepo:     userRepo,
		PropertyRepo: propertyRepo,
	}, logger)
	revenueService := service.NewRevenueService()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Sessions:   sessions,
		Throttles:  loginThrottles,
		Dispatcher: dispatcher,
		Metrics:    metrics,
	}, logger)
	citationService := service.NewCitationService(service.CitationDependencies{
		CitationRepo: citationRepo,
		PropertyRepo: propertyRepo,
		Lookup:       lookupService,
		Revenue:      revenueService,
		Throttles:    searchThrottles,
		Dispatcher:   dispatcher,
		Metrics:      metrics,
	}, logger)
	directoryService := service.NewDirectoryService(service.DirectoryDependencies{
		UserRepo:     userRepo,
		PropertyRepo: propertyRepo,
		Lookup:       lookupService,
		Revenue:      revenueService,
		Dispatcher:   dispatcher,
	}, cfg.Auth.BcryptCost, logger)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Citations:      handlers.NewCitationsHandler(citationService),
		Auth:           handlers.NewAuthHandler(authService),
		AdminCitations: handlers.NewAdminCitationsHandler(citationService),
		AdminDirectory: handlers.NewAdminDirectoryHandler(directoryService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
