package server

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/inkpost/inkpost/internal/auth"
)

// errorResponse is the single wire shape every failed request gets.
type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// NewErrorHandler returns the centralized fiber error handler: every handler
// error funnels here and leaves as {statusCode, message} JSON. Nothing is
// retried and no stack traces reach the client.
func NewErrorHandler(logger auth.Logger) fiber.ErrorHandler {
	if logger == nil {
		logger = noopLogger{}
	}

	return func(c *fiber.Ctx, err error) error {
		var richErr *errors.Error
		if errors.As(err, &richErr) {
			status := richErr.Code
			if status == 0 {
				status = statusFromCategory(richErr.Category)
			}
			return c.Status(status).JSON(errorResponse{
				StatusCode: status,
				Message:    richErr.Message,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(errorResponse{
				StatusCode: fiberErr.Code,
				Message:    fiberErr.Message,
			})
		}

		logger.Error("unexpected handler error", "error", err, "path", c.Path())

		return c.Status(http.StatusInternalServerError).JSON(errorResponse{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal Server Error",
		})
	}
}

func statusFromCategory(category errors.Category) int {
	switch category {
	case errors.CategoryAuth:
		return http.StatusUnauthorized
	case errors.CategoryAuthz:
		return http.StatusForbidden
	case errors.CategoryValidation, errors.CategoryBadInput:
		return http.StatusBadRequest
	case errors.CategoryNotFound:
		return http.StatusNotFound
	case errors.CategoryConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
