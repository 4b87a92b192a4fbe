package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"donationpoints/internal/http/middleware"
	"donationpoints/internal/model"
	"donationpoints/internal/validation"
)

// errorPayload is the failure envelope shared by every endpoint.
type errorPayload struct {
	Success        bool                 `json:"success"`
	RequestID      string               `json:"request_id"`
	Error          errorEnvelope        `json:"error"`
	Details        []validation.Issue   `json:"details,omitempty"`
	NearbyLocation *model.DonationPoint `json:"nearbyLocation,omitempty"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newErrorPayload(c *fiber.Ctx, code, message string) errorPayload {
	return errorPayload{
		RequestID: middleware.RequestIDFrom(c),
		Error:     errorEnvelope{Code: code, Message: message},
	}
}

// writeError writes the failure envelope. message must be safe to show to clients.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(newErrorPayload(c, code, message))
}

// ErrorHandler returns the Fiber global error handler.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "BODY_TOO_LARGE", "request body too large")
		default:
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
	}
}
