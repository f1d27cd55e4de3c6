package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-stock/internal/application/dto"
	"github.com/jhoicas/catalogo-stock/pkg/jwt"
)

// LocalService clave de c.Locals con el nombre del servicio autenticado.
const LocalService = "service"

// ServiceAuthMiddleware valida el Bearer token de servicio con el que los
// otros tiers llaman a esta API y deja el nombre del servicio en c.Locals.
func ServiceAuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		service, err := jwt.ParseServiceToken(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalService, service)
		return c.Next()
	}
}

// GetService devuelve el nombre del servicio autenticado (tras el middleware).
func GetService(c *fiber.Ctx) string {
	v := c.Locals(LocalService)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
