package business

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-stock/internal/application/dto"
	"github.com/jhoicas/catalogo-stock/internal/application/remote"
	apphttp "github.com/jhoicas/catalogo-stock/internal/interfaces/http"
)

// StockHandler pasamanos de inventario hacia el data tier. Las mutaciones son
// escrituras: si el data tier no responde, salen 503, nunca un éxito fingido.
type StockHandler struct {
	facade *remote.Facade
}

// NewStockHandler construye el handler.
func NewStockHandler(facade *remote.Facade) *StockHandler {
	return &StockHandler{facade: facade}
}

// List godoc
// @Summary      Listar inventario completo
// @Tags         inventario
// @Produce      json
// @Success      200  {array}  dto.LedgerResponse
// @Router       /api/inventario [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	out, degraded, err := h.facade.ListInventory(c.Context())
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	markDegraded(c, degraded)
	return c.JSON(out)
}

// GetByProduct godoc
// @Summary      Obtener el ledger de un producto
// @Tags         inventario
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.LedgerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventario/producto/{productId} [get]
func (h *StockHandler) GetByProduct(c *fiber.Ctx) error {
	out, degraded, err := h.facade.GetLedgerByProduct(c.Context(), c.Params("productId"))
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	if degraded {
		return writeUnavailable(c)
	}
	return c.JSON(out)
}

// Create crea el ledger de stock de un producto.
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLedgerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, degraded, err := h.facade.CreateLedger(c.Context(), in)
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	if degraded {
		return writeUnavailable(c)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SetStock godoc
// @Summary      Fijar la cantidad exacta de stock
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Param        body  body  dto.SetStockRequest  true  "Cantidad"
// @Success      200  {object}  dto.MutationResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventario/producto/{productId}/stock [patch]
func (h *StockHandler) SetStock(c *fiber.Ctx) error {
	var in dto.SetStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, degraded, err := h.facade.SetStock(c.Context(), c.Params("productId"), in.Quantity)
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	if degraded {
		return writeUnavailable(c)
	}
	return c.JSON(out)
}

// Increase godoc
// @Summary      Incrementar stock
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "Cantidad a sumar"
// @Success      200  {object}  dto.MutationResponse
// @Router       /api/inventario/producto/{productId}/incrementar [post]
func (h *StockHandler) Increase(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, degraded, err := h.facade.IncreaseStock(c.Context(), c.Params("productId"), in.Amount)
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	if degraded {
		return writeUnavailable(c)
	}
	return c.JSON(out)
}

// Decrease godoc
// @Summary      Decrementar stock
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "Cantidad a restar"
// @Success      200  {object}  dto.MutationResponse
// @Failure      409  {object}  dto.ErrorResponse  "stock insuficiente o conflicto de revisión"
// @Router       /api/inventario/producto/{productId}/decrementar [post]
func (h *StockHandler) Decrease(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, degraded, err := h.facade.DecreaseStock(c.Context(), c.Params("productId"), in.Amount)
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	if degraded {
		return writeUnavailable(c)
	}
	return c.JSON(out)
}

// UpdateThreshold cambia el umbral de reorden sin tocar la cantidad.
func (h *StockHandler) UpdateThreshold(c *fiber.Ctx) error {
	var in dto.ThresholdRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, degraded, err := h.facade.UpdateThreshold(c.Context(), c.Params("productId"), in.Threshold)
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	if degraded {
		return writeUnavailable(c)
	}
	return c.JSON(out)
}

// ListLow productos en banda BAJO.
func (h *StockHandler) ListLow(c *fiber.Ctx) error {
	out, degraded, err := h.facade.ListLowStock(c.Context())
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	markDegraded(c, degraded)
	return c.JSON(out)
}

// ListCritical productos en banda CRITICO.
func (h *StockHandler) ListCritical(c *fiber.Ctx) error {
	out, degraded, err := h.facade.ListCriticalStock(c.Context())
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	markDegraded(c, degraded)
	return c.JSON(out)
}

// ListZero productos sin stock.
func (h *StockHandler) ListZero(c *fiber.Ctx) error {
	out, degraded, err := h.facade.ListZeroStock(c.Context())
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	markDegraded(c, degraded)
	return c.JSON(out)
}

// ListReplenishment productos que requieren reabastecimiento urgente.
func (h *StockHandler) ListReplenishment(c *fiber.Ctx) error {
	out, degraded, err := h.facade.ListForReplenishment(c.Context())
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	markDegraded(c, degraded)
	return c.JSON(out)
}

// ListByCategory inventario de una categoría por nombre.
func (h *StockHandler) ListByCategory(c *fiber.Ctx) error {
	out, degraded, err := h.facade.ListInventoryByCategory(c.Context(), c.Params("nombre"))
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	markDegraded(c, degraded)
	return c.JSON(out)
}

// ListUpdatedSince ledgers modificados desde una fecha RFC3339.
func (h *StockHandler) ListUpdatedSince(c *fiber.Ctx) error {
	since, err := time.Parse(time.RFC3339, c.Query("desde"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "desde debe ser una fecha RFC3339"})
	}
	out, degraded, err := h.facade.ListUpdatedSince(c.Context(), since)
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	markDegraded(c, degraded)
	return c.JSON(out)
}

// Stats agregados globales del inventario. Son lecturas: en degradación
// responden 200 con los agregados en cero y el header X-Degraded.
func (h *StockHandler) Stats(c *fiber.Ctx) error {
	out, degraded, err := h.facade.StockStats(c.Context())
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	markDegraded(c, degraded)
	return c.JSON(out)
}

// TotalValue valor monetario total del inventario.
func (h *StockHandler) TotalValue(c *fiber.Ctx) error {
	out, degraded, err := h.facade.TotalValue(c.Context())
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	markDegraded(c, degraded)
	return c.JSON(out)
}

// LowByCategory conteo de stock bajo por categoría.
func (h *StockHandler) LowByCategory(c *fiber.Ctx) error {
	out, degraded, err := h.facade.CountLowStockByCategory(c.Context())
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	markDegraded(c, degraded)
	return c.JSON(out)
}

// Sufficiency verifica si alcanza el stock para la cantidad requerida.
func (h *StockHandler) Sufficiency(c *fiber.Ctx) error {
	required, err := strconv.ParseInt(c.Query("cantidad", "0"), 10, 64)
	if err != nil || required <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cantidad debe ser un entero positivo"})
	}
	out, degraded, err := h.facade.HasSufficientStock(c.Context(), c.Params("productId"), required)
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	if degraded {
		return writeUnavailable(c)
	}
	return c.JSON(out)
}
