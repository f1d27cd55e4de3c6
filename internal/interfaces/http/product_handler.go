package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-stock/internal/application/catalog"
	"github.com/jhoicas/catalogo-stock/internal/application/dto"
)

// ProductHandler maneja las peticiones HTTP para productos del data tier.
type ProductHandler struct {
	uc *catalog.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *catalog.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /data/productos [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /data/productos/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos activos
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /data/productos [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListActive(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar productos por texto
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        q    query  string  true  "Texto a buscar"
// @Success      200  {array}  dto.ProductResponse
// @Router       /data/productos/buscar [get]
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.SearchByText(c.Context(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByCategory godoc
// @Summary      Productos de una categoría
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        nombre  path  string  true  "Nombre de la categoría"
// @Success      200     {array}  dto.ProductResponse
// @Router       /data/productos/categoria/{nombre} [get]
func (h *ProductHandler) ListByCategory(c *fiber.Ctx) error {
	name, err := pathParam(c, "nombre")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListByCategoryName(c.Context(), name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByPriceRange godoc
// @Summary      Productos por rango de precio
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        min  query  number  true  "Precio mínimo"
// @Param        max  query  number  true  "Precio máximo"
// @Success      200  {array}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /data/productos/precio [get]
func (h *ProductHandler) ListByPriceRange(c *fiber.Ctx) error {
	min, errMin := decimal.NewFromString(c.Query("min", "0"))
	max, errMax := decimal.NewFromString(c.Query("max", "0"))
	if errMin != nil || errMax != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "min y max deben ser numéricos"})
	}
	out, err := h.uc.ListByPriceRange(c.Context(), min, max)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListValues godoc
// @Summary      Valor de inventario por producto
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductValueDTO
// @Router       /data/productos/valores [get]
func (h *ProductHandler) ListValues(c *fiber.Ctx) error {
	out, err := h.uc.ListProductValues(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /data/productos/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Baja lógica de producto
// @Tags         productos
// @Security     Bearer
// @Param        id  path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /data/productos/{id} [delete]
func (h *ProductHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reactivate godoc
// @Summary      Reactivar producto
// @Tags         productos
// @Security     Bearer
// @Param        id  path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /data/productos/{id}/reactivar [post]
func (h *ProductHandler) Reactivate(c *fiber.Ctx) error {
	if err := h.uc.Reactivate(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PermanentDelete godoc
// @Summary      Purga permanente de producto y su ledger
// @Tags         productos
// @Security     Bearer
// @Param        id  path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /data/productos/{id}/purgar [delete]
func (h *ProductHandler) PermanentDelete(c *fiber.Ctx) error {
	if err := h.uc.PermanentDelete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
