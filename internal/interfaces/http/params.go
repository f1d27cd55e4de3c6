package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-stock/internal/domain"
)

// pathParam devuelve el parámetro de ruta decodificado (los nombres de
// categoría pueden llevar espacios o acentos escapados).
func pathParam(c *fiber.Ctx, name string) (string, error) {
	raw := c.Params(name)
	if raw == "" {
		return "", domain.ErrInvalidInput
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return "", domain.ErrInvalidInput
	}
	return decoded, nil
}
