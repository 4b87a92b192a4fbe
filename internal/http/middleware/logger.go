package middleware

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"donationpoints/internal/logging"
)

// Logger writes one structured record per request with request_id, method, path, status and latency_ms.
// It also places a request-scoped logger in the user context for downstream code.
// Mount it after RequestID.
func Logger(log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		reqLog := log.With("request_id", RequestIDFrom(c))
		c.SetUserContext(logging.WithContext(c.UserContext(), reqLog))

		err := c.Next()

		status := statusOf(c, err)
		level := slog.LevelInfo
		switch {
		case status >= fiber.StatusInternalServerError:
			level = slog.LevelError
		case status >= fiber.StatusBadRequest:
			level = slog.LevelWarn
		}

		reqLog.LogAttrs(c.UserContext(), level, "http_request",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", status),
			slog.Float64("latency_ms", float64(time.Since(start).Microseconds())/1000),
		)
		return err
	}
}

// statusOf resolves the final status when a handler returned err to the global error handler.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
