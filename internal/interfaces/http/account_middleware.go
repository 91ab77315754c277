package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Vitrine-api/internal/application/dto"
)

// accountChecker es el contrato mínimo que necesita el middleware para verificar la cuenta.
// Lo implementa *usecase.UserUseCase.
type accountChecker interface {
	IsActive(ctx context.Context, userID string) (bool, error)
}

// RequireActiveAccount bloquea las escrituras de cuentas inactivas o suspendidas.
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalUserID).
//
// Comportamiento:
//   - 403 Forbidden → cuenta inactiva, suspendida o eliminada.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
func RequireActiveAccount(checker accountChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return unauthorized(c)
		}
		active, err := checker.IsActive(c.UserContext(), userID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "ACCOUNT_CHECK_FAILED",
				Message: "no se pudo verificar la cuenta, intente más tarde",
			})
		}
		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "ACCOUNT_DISABLED",
				Message: "la cuenta no está activa",
			})
		}
		return c.Next()
	}
}
