package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"coparent/internal/http/middleware"
	"coparent/internal/logger"
	"coparent/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func requestIDFromCtx(c *fiber.Ctx) string {
	s, _ := c.Locals(middleware.RequestIDLocalKey).(string)
	return s
}

// writeError writes a standardized JSON error response. message must be safe
// to show to clients.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return writeFieldError(c, status, code, message, "")
}

func writeFieldError(c *fiber.Ctx, status int, code, message, field string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
			Field:   field,
		},
	}
	return c.Status(status).JSON(res)
}

// respondError maps service errors onto HTTP responses. Anything that is not
// a *service.Error is logged and reported as a bare 500.
func respondError(c *fiber.Ctx, err error) error {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		switch {
		case errors.Is(svcErr, service.ErrValidation):
			return writeFieldError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", svcErr.Message, svcErr.Field)
		case errors.Is(svcErr, service.ErrNotFound):
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", svcErr.Message)
		case errors.Is(svcErr, service.ErrConflict):
			return writeError(c, fiber.StatusConflict, "CONFLICT", svcErr.Message)
		case errors.Is(svcErr, service.ErrForbidden):
			return writeError(c, fiber.StatusForbidden, "FORBIDDEN", svcErr.Message)
		case errors.Is(svcErr, service.ErrUnavailable):
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", svcErr.Message)
		}
	}

	logger.FromContext(c.UserContext()).Error("request failed",
		slog.String("method", c.Method()),
		slog.String("path", c.Path()),
		slog.Any("err", err),
	)
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
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
		case fiber.StatusUnauthorized:
			return writeError(c, status, "UNAUTHORIZED", fe.Message)
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			if fe == nil {
				logger.FromContext(c.UserContext()).Error("unhandled error", slog.Any("err", err))
			}
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
