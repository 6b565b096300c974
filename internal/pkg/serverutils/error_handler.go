package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"realtime-chat-be/internal/pkg/apperror"
	"realtime-chat-be/internal/pkg/logger"
)

func statusForKind(kind apperror.Kind) int {
	switch kind {
	case apperror.KindInvalidInput:
		return fiber.StatusBadRequest
	case apperror.KindForbidden:
		return fiber.StatusForbidden
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindInvalidOperation:
		return fiber.StatusUnprocessableEntity
	case apperror.KindRateLimited:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandlerMiddleware recovers domain errors at the boundary and converts
// them to structured JSON. Unclassified errors are logged with request context
// and surfaced as a generic internal failure; internals never leak.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorBody{
				Success: false,
				Message: fiberErr.Message,
				Code:    "http_error",
			})
		}

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Kind == apperror.KindInternal {
				log.Error("HTTP", "Internal error", map[string]interface{}{
					"path":  ctx.Path(),
					"error": appErr.Error(),
				})
				return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorBody{
					Success: false,
					Message: "internal server error",
					Code:    appErr.Kind.String(),
				})
			}
			return ctx.Status(statusForKind(appErr.Kind)).JSON(ErrorBody{
				Success: false,
				Message: appErr.Message,
				Code:    appErr.Kind.String(),
			})
		}

		log.Error("HTTP", "Unhandled error", map[string]interface{}{
			"path":  ctx.Path(),
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorBody{
			Success: false,
			Message: "internal server error",
			Code:    "internal",
		})
	}
}
