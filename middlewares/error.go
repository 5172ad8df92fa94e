package middlewares

import (
	"errors"

	"posdz-backend/ledger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorHandler centralizes error responses and keeps messages sanitized.
func ErrorHandler(c *fiber.Ctx, err error) error {
	// 1) Fiber errors (use their status code + message)
	if fe, ok := err.(*fiber.Error); ok {
		return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
	}

	// 2) Request validation errors (422 + per-field info)
	if ve, ok := err.(validator.ValidationErrors); ok {
		out := make(map[string]string, len(ve))
		for _, fe := range ve {
			out[fe.Field()] = fe.Tag()
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "validation failed",
			"errors":  out,
		})
	}

	// 3) Ledger taxonomy: validation -> 422, not found -> 404
	if ledger.IsValidation(err) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": err.Error()})
	}
	if ledger.IsNotFound(err) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	}

	// 4) Partial sale commit: the sale exists but its items may not. Surface
	// it distinctly so the till can reconcile instead of re-submitting.
	if errors.Is(err, ledger.ErrItemsNotPersisted) {
		log.Error().Err(err).Msg("partial sale commit")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "sale recorded but items incomplete; do not re-submit",
		})
	}

	// 5) Unknown errors (500)
	log.Error().Err(err).Msg("internal error")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "internal server error",
	})
}
