// Package business expone la API pública del business tier con Fiber. Los
// handlers consumen el data tier a través de la fachada resiliente: las
// lecturas degradadas responden 200 con datos vacíos y el header X-Degraded,
// las escrituras degradadas responden 503 porque el cambio no ocurrió.
package business

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-stock/internal/application/dto"
)

// HeaderDegraded header que marca una respuesta construida sin el data tier.
const HeaderDegraded = "X-Degraded"

func markDegraded(c *fiber.Ctx, degraded bool) {
	if degraded {
		c.Set(HeaderDegraded, "true")
	}
}

func writeUnavailable(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
		Code:    "DEPENDENCY_UNAVAILABLE",
		Message: "el servicio de datos no está disponible, intente más tarde",
	})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
