package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/precisionto/funnel-go/internal/config"
	"github.com/precisionto/funnel-go/internal/redis"
	redisrepo "github.com/precisionto/funnel-go/internal/repository/redis"
	"github.com/precisionto/funnel-go/internal/service"
	"github.com/precisionto/funnel-go/internal/service/availability"
	httpgin "github.com/precisionto/funnel-go/internal/transport/http/gin"
	"github.com/precisionto/funnel-go/internal/upstream"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	services   *service.Services
	httpServer *http.Server
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Initialize dependencies
	rdb, err := redis.New(context.Background(), redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	backend := upstream.New(upstream.Config{
		BaseURL: cfg.Upstream.BaseURL,
		Timeout: cfg.Upstream.Timeout,
	})

	// Initialize repositories
	slot := redisrepo.NewDraftSlot(rdb)
	cache := redisrepo.NewCache(rdb)
	bus := redisrepo.NewDraftPubSub(rdb)
	limiter := redisrepo.NewSlidingWindowLimiter(rdb, "checkout", 10, 1*time.Minute)
	idempotencyStore := redisrepo.NewIdempotencyStore(rdb, 2*time.Hour)

	// Initialize services
	services := service.NewServices(slot, bus, cache, backend, logger, service.Config{
		Availability:   availability.Config{},
		AdminJWTSecret: cfg.Admin.JWTSecret,
	})

	// Initialize Gin router
	router := httpgin.NewRouter(services, idempotencyStore, limiter, logger)

	return &App{
		cfg:      cfg,
		logger:   logger,
		services: services,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler: router,
		},
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server
	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	// Drafts channel consumer: reconciles sessions touched elsewhere
	g.Go(func() error {
		return a.services.Funnel.RunSync(gCtx)
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	return g.Wait()
}
