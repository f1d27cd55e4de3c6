package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-stock/internal/application/dto"
	"github.com/jhoicas/catalogo-stock/internal/application/stock"
	"github.com/jhoicas/catalogo-stock/internal/domain"
)

// InventoryHandler maneja las peticiones HTTP del inventario del data tier.
type InventoryHandler struct {
	uc *stock.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *stock.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Create godoc
// @Summary      Crear ledger de stock para un producto
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLedgerRequest  true  "Producto, cantidad inicial y umbral"
// @Success      201   {object}  dto.LedgerResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /data/inventario [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLedgerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Inventario completo
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LedgerResponse
// @Router       /data/inventario [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListAll(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByProduct godoc
// @Summary      Ledger de un producto
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.LedgerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /data/inventario/producto/{productId} [get]
func (h *InventoryHandler) GetByProduct(c *fiber.Ctx) error {
	out, err := h.uc.GetByProductID(c.Context(), c.Params("productId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Ledger por ID
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ledger"
// @Success      200  {object}  dto.LedgerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /data/inventario/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cantidad y umbral de un ledger
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ledger"
// @Param        body  body  dto.UpdateLedgerRequest  true  "Cantidad y umbral"
// @Success      200   {object}  dto.LedgerResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /data/inventario/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLedgerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetStock godoc
// @Summary      Fijar la cantidad exacta de stock
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Param        body       body  dto.SetStockRequest  true  "Cantidad"
// @Success      200  {object}  dto.MutationResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /data/inventario/producto/{productId}/stock [patch]
func (h *InventoryHandler) SetStock(c *fiber.Ctx) error {
	var in dto.SetStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SetStock(c.Context(), c.Params("productId"), in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Increase godoc
// @Summary      Incrementar stock
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Param        body       body  dto.AdjustStockRequest  true  "Cantidad a sumar"
// @Success      200  {object}  dto.MutationResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /data/inventario/producto/{productId}/incrementar [post]
func (h *InventoryHandler) Increase(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.IncreaseStock(c.Context(), c.Params("productId"), in.Amount)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Decrease godoc
// @Summary      Decrementar stock
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Param        body       body  dto.AdjustStockRequest  true  "Cantidad a restar"
// @Success      200  {object}  dto.MutationResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /data/inventario/producto/{productId}/decrementar [post]
func (h *InventoryHandler) Decrease(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.DecreaseStock(c.Context(), c.Params("productId"), in.Amount)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateThreshold godoc
// @Summary      Cambiar el umbral de reorden
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Param        body       body  dto.ThresholdRequest  true  "Umbral nuevo"
// @Success      200  {object}  dto.MutationResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /data/inventario/producto/{productId}/umbral [patch]
func (h *InventoryHandler) UpdateThreshold(c *fiber.Ctx) error {
	var in dto.ThresholdRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateThreshold(c.Context(), c.Params("productId"), in.Threshold)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListLow productos en la banda BAJO.
func (h *InventoryHandler) ListLow(c *fiber.Ctx) error {
	out, err := h.uc.ListLowStock(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListCritical productos en la banda CRITICO.
func (h *InventoryHandler) ListCritical(c *fiber.Ctx) error {
	out, err := h.uc.ListCriticalStock(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListZero productos sin existencias.
func (h *InventoryHandler) ListZero(c *fiber.Ctx) error {
	out, err := h.uc.ListZeroStock(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListReplenishment productos bajo la condición urgente del 20%.
func (h *InventoryHandler) ListReplenishment(c *fiber.Ctx) error {
	out, err := h.uc.ListForReplenishment(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByCategory inventario de una categoría.
func (h *InventoryHandler) ListByCategory(c *fiber.Ctx) error {
	name, err := pathParam(c, "nombre")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListByCategory(c.Context(), name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByQuantityRange inventario con cantidad dentro de [min, max].
func (h *InventoryHandler) ListByQuantityRange(c *fiber.Ctx) error {
	min := int64(c.QueryInt("min", 0))
	max := int64(c.QueryInt("max", 0))
	out, err := h.uc.ListByQuantityRange(c.Context(), min, max)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListUpdatedSince inventario actualizado desde la fecha dada (RFC 3339).
func (h *InventoryHandler) ListUpdatedSince(c *fiber.Ctx) error {
	since, err := time.Parse(time.RFC3339, c.Query("desde"))
	if err != nil {
		return writeError(c, domain.ErrInvalidInput)
	}
	out, err := h.uc.ListUpdatedSince(c.Context(), since)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Stats agregados globales del inventario.
func (h *InventoryHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TotalValue valor monetario total del inventario.
func (h *InventoryHandler) TotalValue(c *fiber.Ctx) error {
	out, err := h.uc.TotalValue(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// LowByCategory conteo de stock bajo por categoría.
func (h *InventoryHandler) LowByCategory(c *fiber.Ctx) error {
	out, err := h.uc.CountLowStockByCategory(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Sufficiency verifica si el producto cubre la cantidad requerida.
func (h *InventoryHandler) Sufficiency(c *fiber.Ctx) error {
	required := int64(c.QueryInt("cantidad", 0))
	out, err := h.uc.HasSufficientStock(c.Context(), c.Params("productId"), required)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete borra un ledger por ID.
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
