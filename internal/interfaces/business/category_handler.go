package business

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-stock/internal/application/dto"
	"github.com/jhoicas/catalogo-stock/internal/application/remote"
	apphttp "github.com/jhoicas/catalogo-stock/internal/interfaces/http"
)

// CategoryHandler pasamanos de categorías hacia el data tier.
type CategoryHandler struct {
	facade *remote.Facade
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(facade *remote.Facade) *CategoryHandler {
	return &CategoryHandler{facade: facade}
}

// List godoc
// @Summary      Listar categorías
// @Tags         categorias
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categorias [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, degraded, err := h.facade.ListCategories(c.Context())
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	markDegraded(c, degraded)
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener categoría por ID
// @Tags         categorias
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categorias/{id} [get]
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	out, degraded, err := h.facade.GetCategory(c.Context(), c.Params("id"))
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	if degraded {
		return writeUnavailable(c)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categorias
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Datos de la categoría"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categorias [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, degraded, err := h.facade.CreateCategory(c.Context(), in)
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	if degraded {
		return writeUnavailable(c)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar categoría
// @Tags         categorias
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la categoría"
// @Param        body  body  dto.UpdateCategoryRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/categorias/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, degraded, err := h.facade.UpdateCategory(c.Context(), c.Params("id"), in)
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	if degraded {
		return writeUnavailable(c)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar categoría (falla si tiene productos)
// @Tags         categorias
// @Param        id  path  string  true  "ID de la categoría"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/categorias/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	degraded, err := h.facade.DeleteCategory(c.Context(), c.Params("id"))
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	if degraded {
		return writeUnavailable(c)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Stats estadísticas por categoría.
func (h *CategoryHandler) Stats(c *fiber.Ctx) error {
	out, degraded, err := h.facade.CategoryStats(c.Context())
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	markDegraded(c, degraded)
	return c.JSON(out)
}
