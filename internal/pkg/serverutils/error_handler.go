package serverutils

import (
	"marketplace-billing-be/internal/dto"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware translates domain errors surfaced by controllers
// into the matching HTTP status and response envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError
		switch {
		case dto.IsValidation(err):
			status = fiber.StatusBadRequest
		case dto.IsNotFound(err):
			status = fiber.StatusNotFound
		case dto.IsStateConflict(err), dto.IsAlreadyProcessed(err):
			status = fiber.StatusConflict
		case dto.IsExternalDependency(err):
			status = fiber.StatusBadGateway
		default:
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		return ctx.Status(status).JSON(ErrorResponse(status, err.Error()))
	}
}
