package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/virallens/emotionarc/internal/config"
	"github.com/virallens/emotionarc/internal/domain"
	apperrors "github.com/virallens/emotionarc/internal/errors"
	"github.com/virallens/emotionarc/internal/platform/correlation"
)

const rateLimiterExpiry = 3 * time.Minute

// appService is the application layer surface the handlers need.
type appService interface {
	AnalyzeEmotion(ctx context.Context, text string) domain.EmotionResult
	AnalyzeTrajectory(ctx context.Context, personaID, text string, segments []string) (*domain.Trajectory, error)
	GetTrajectory(ctx context.Context, id uuid.UUID) (*domain.Trajectory, error)
}

// redisHealthChecker is a minimal interface for Redis health checks.
type redisHealthChecker interface {
	Ping(ctx context.Context) *goredis.StatusCmd
}

// postgresHealthChecker is a minimal interface for PostgreSQL health checks.
type postgresHealthChecker interface {
	Ping(ctx context.Context) error
}

// modelReadiness reports whether the transformer model path is usable.
type modelReadiness interface {
	Ready() bool
}

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	app       appService
	redis     redisHealthChecker
	postgres  postgresHealthChecker
	model     modelReadiness
	clock     clockwork.Clock
	startTime time.Time
}

// NewServer wires routes and middleware. redis, postgres and model may be nil;
// nil dependencies are skipped by the readiness probe.
func NewServer(cfg *config.Config, app appService, redis redisHealthChecker, postgres postgresHealthChecker, model modelReadiness, clock clockwork.Clock) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(correlationMiddleware())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:      e,
		config:    cfg,
		app:       app,
		redis:     redis,
		postgres:  postgres,
		model:     model,
		clock:     clock,
		startTime: clock.Now(),
	}

	srv.registerRoutes()
	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo exposes the underlying router for handler tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// correlationMiddleware injects a correlation ID into the request context,
// reusing the client-provided X-Correlation-ID header when present.
func correlationMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get("X-Correlation-ID")
			if id == "" {
				id = correlation.NewID()
			}

			ctx := correlation.WithID(c.Request().Context(), id)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set("X-Correlation-ID", id)
			return next(c)
		}
	}
}

// rateLimiter limits analyze requests per client IP.
func (s *Server) rateLimiter() echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(s.config.RateLimitRPS),
		Burst:     s.config.RateLimitBurst,
		ExpiresIn: rateLimiterExpiry,
	})
	return middleware.RateLimiter(store)
}
