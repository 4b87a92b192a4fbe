package handler

import (
	"github.com/gofiber/fiber/v2"

	"donationpoints/internal/service"
)

// RegisterRoutes attaches the public API and health endpoints to app.
func RegisterRoutes(app *fiber.App, pointSvc service.DonationPointService, checks ...HealthCheck) {
	app.Get("/health", Health(checks...))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")
	api.Get("/locations", ListLocations(pointSvc))
	api.Post("/locations", CreateLocation(pointSvc))
	api.Post("/locations/snapshots", CreateSnapshot(pointSvc))
}
