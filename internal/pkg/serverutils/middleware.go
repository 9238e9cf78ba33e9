package serverutils

import (
	"github.com/gofiber/fiber/v2"

	"ai-assistant-be/pkg/fault"
)

// ErrorHandlerMiddleware converts errors that escape a handler into the
// standard envelope. Fault kinds map onto HTTP status codes; anything else
// is a 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if fiberErr, ok := err.(*fiber.Error); ok {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		code := statusForFault(err)
		return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
	}
}

func statusForFault(err error) int {
	kind, ok := fault.KindOf(err)
	if !ok {
		return fiber.StatusInternalServerError
	}
	switch kind {
	case fault.Input:
		return fiber.StatusBadRequest
	case fault.Workflow:
		return fiber.StatusUnprocessableEntity
	case fault.Transport, fault.Parse:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
