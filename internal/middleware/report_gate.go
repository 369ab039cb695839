package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ReportGuard decides whether the reports screen is locked and validates
// unlock tokens.
type ReportGuard interface {
	Required(ctx context.Context) (bool, error)
	ValidateToken(token string) error
}

// ReportsUnlocked is a Fiber middleware that requires a valid report token
// when a PIN is set. Without a PIN every request passes.
func ReportsUnlocked(guard ReportGuard, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		required, err := guard.Required(c.UserContext())
		if err != nil {
			logger.Error("report gate could not read settings", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not check report access",
				"error":   err.Error(),
			})
		}
		if !required {
			return c.Next()
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Reports are locked, unlock with the PIN first",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		if err := guard.ValidateToken(parts[1]); err != nil {
			logger.Debug("report token rejected", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired report token",
				"error":   err.Error(),
			})
		}
		return c.Next()
	}
}
