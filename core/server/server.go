// Package server assembles the HTTP API and the notification worker.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go-booking-api/core/cache"
	"go-booking-api/core/config"
	"go-booking-api/core/database"
	"go-booking-api/core/logger"
	"go-booking-api/core/middleware"
	"go-booking-api/core/queue"
	"go-booking-api/core/session"
	"go-booking-api/modules/auth"
	authService "go-booking-api/modules/auth/service"
	"go-booking-api/modules/availability"
	"go-booking-api/modules/booking"
	"go-booking-api/modules/calendar"
	"go-booking-api/modules/event"
	"go-booking-api/modules/eventtype"
	"go-booking-api/modules/notification"
	"go-booking-api/modules/notification/worker"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	Echo          *echo.Echo
	cfg           *config.Config
	cache         cache.Cache
	limiter       *middleware.RateLimiter
	notifications *notification.Module
}

// New wires every module onto a fresh echo instance.
func New(cfg *config.Config, db database.IDatabase) (*Server, error) {
	codec, err := session.NewCodec(cfg.App.Secret, cfg.Session.TTL)
	if err != nil {
		return nil, fmt.Errorf("session codec: %w", err)
	}

	c := newCache(cfg.Redis)
	mw := middleware.NewMiddleware(codec, c, cfg.Session.CookieName)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.BookingsPerMinute, cfg.RateLimit.Burst)
	notifications := notification.Init(cfg)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))
	e.Use(mw.SessionMiddleware())

	e.GET("/healthz", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := db.SQLx().PingContext(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")
	auth.Init(api, db, c, codec, mw, cfg)
	availabilityService := availability.Init(api, db, mw)
	eventService := event.Init(api, db, mw)
	eventtype.Init(api, db, mw, availabilityService, eventService)
	booking.Init(api, db, mw, limiter, notifications.Dispatcher)
	calendar.Init(api, db, mw, authService.GoogleOAuthConfig(cfg.GoogleAPI))

	return &Server{
		Echo:          e,
		cfg:           cfg,
		cache:         c,
		limiter:       limiter,
		notifications: notifications,
	}, nil
}

// newCache falls back to an in-process blacklist when Redis is absent or
// unreachable.
func newCache(cfg config.RedisConfig) cache.Cache {
	if !cfg.Enabled() {
		return cache.NewMemoryCache()
	}
	rc, err := cache.NewRedisCache(cfg)
	if err != nil {
		logger.Warn("Server:Cache:Redis:Unavailable", "error", err)
		return cache.NewMemoryCache()
	}
	return rc
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests and
// pending notifications. With Redis configured it also runs the queue worker.
func (s *Server) Run(ctx context.Context) error {
	go s.limiter.Run(ctx)

	var queueWorker *asynq.Server
	if s.cfg.Redis.Enabled() {
		queueWorker = queue.NewServer(s.cfg.Redis, 0)
		if err := queueWorker.Start(worker.NewServeMux(s.notifications.Sender)); err != nil {
			return fmt.Errorf("start worker: %w", err)
		}
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server:Start", "addr", addr)
		if err := s.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}

	logger.Info("Server:Shutdown:Start")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Echo.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server:Shutdown:Error", "error", err)
	}
	if queueWorker != nil {
		queueWorker.Shutdown()
	}
	s.notifications.Close()
	if err := s.cache.Close(); err != nil {
		logger.Warn("Server:Cache:Close:Error", "error", err)
	}
	logger.Info("Server:Shutdown:Done")
	return runErr
}

// Serve opens the database, applies migrations when enabled and runs the API.
func Serve(ctx context.Context, cfg *config.Config) error {
	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	srv, err := New(cfg, db)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}

// Worker runs only the notification queue consumer.
func Worker(ctx context.Context, cfg *config.Config) error {
	if !cfg.Redis.Enabled() {
		return errors.New("worker needs REDIS_ADDR")
	}

	sender := notification.NewSender(cfg)
	srv := queue.NewServer(cfg.Redis, 0)
	if err := srv.Start(worker.NewServeMux(sender)); err != nil {
		return fmt.Errorf("start worker: %w", err)
	}
	logger.Info("Worker:Start", "redis", cfg.Redis.Addr)

	<-ctx.Done()
	srv.Shutdown()
	logger.Info("Worker:Stopped")
	return nil
}

func Migrate(ctx context.Context, cfg *config.Config) error {
	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	logger.Info("Migrate:Done")
	return nil
}
