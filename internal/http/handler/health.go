package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

const healthTimeout = 2 * time.Second

// HealthCheck is one dependency probed by /health.
type HealthCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

// Health reports 200 when every dependency answers within two seconds, 503 otherwise.
//
// @Summary      Readiness check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      503  {object}  errorPayload
// @Router       /health [get]
func Health(checks ...HealthCheck) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()

		results := make(map[string]string, len(checks))
		healthy := true
		for _, chk := range checks {
			if err := chk.Ping(ctx); err != nil {
				results[chk.Name] = "unavailable"
				healthy = false
				continue
			}
			results[chk.Name] = "ok"
		}

		if !healthy {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy", "checks": results})
	}
}

// LivenessProbe always answers 200 while the process serves requests.
//
// @Summary      Liveness probe
// @Tags         health
// @Success      200
// @Router       /healthz [get]
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
