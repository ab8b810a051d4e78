package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"gymgate/config"
	"gymgate/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// RateLimitMiddleware throttles check-in requests per client IP using a
// fixed window counter in Redis. Without a Redis client it is a no-op, and
// a Redis outage fails open: entry scans must not be blocked by an
// unavailable limiter.
type RateLimitMiddleware struct {
	client *redis.Client
	logger *slog.Logger
	limit  int
	window time.Duration
}

// NewRateLimitMiddleware is the constructor for RateLimitMiddleware.
func NewRateLimitMiddleware(client *redis.Client, cfg *config.Config, logger *slog.Logger) *RateLimitMiddleware {
	limit := 60
	window := time.Minute
	if cfg.RateLimit != nil {
		if cfg.RateLimit.Limit > 0 {
			limit = cfg.RateLimit.Limit
		}
		if cfg.RateLimit.Window > 0 {
			window = cfg.RateLimit.Window
		}
	}

	return &RateLimitMiddleware{
		client: client,
		logger: logger,
		limit:  limit,
		window: window,
	}
}

// Limit is the middleware function.
func (m *RateLimitMiddleware) Limit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.client == nil {
			return next(c)
		}

		ctx := c.Request().Context()
		key := "ratelimit:" + c.Path() + ":" + c.RealIP()

		count, err := m.client.Incr(ctx, key).Result()
		if err != nil {
			m.logger.Warn("Rate limiter unavailable, allowing request",
				slog.String("error", err.Error()),
			)

			return next(c)
		}
		if count == 1 {
			m.client.Expire(ctx, key, m.window)
		}

		if count > int64(m.limit) {
			c.Response().Header().Set("Retry-After", strconv.Itoa(int(m.window.Seconds())))

			return response.Error(c, http.StatusTooManyRequests, "RATE_LIMITED",
				"Too many requests", "request rate limit exceeded")
		}

		return next(c)
	}
}
