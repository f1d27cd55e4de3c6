package business

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-stock/internal/application/dto"
	"github.com/jhoicas/catalogo-stock/internal/application/remote"
	"github.com/jhoicas/catalogo-stock/internal/domain"
	apphttp "github.com/jhoicas/catalogo-stock/internal/interfaces/http"
)

// ProductHandler expone el catálogo enriquecido con datos de stock.
type ProductHandler struct {
	facade *remote.Facade
}

// NewProductHandler construye el handler.
func NewProductHandler(facade *remote.Facade) *ProductHandler {
	return &ProductHandler{facade: facade}
}

// List godoc
// @Summary      Listar productos con su stock
// @Tags         productos
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/productos [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, degraded, err := h.facade.ListProducts(c.Context())
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	if !degraded {
		degraded = h.enrichAll(c, products)
	}
	markDegraded(c, degraded)
	return c.JSON(products)
}

// enrichAll completa stock, estado y valor de cada producto con una sola
// lectura del inventario. Devuelve true si la lectura llegó degradada, en
// cuyo caso los productos salen sin enriquecer.
func (h *ProductHandler) enrichAll(c *fiber.Ctx, products []dto.ProductResponse) bool {
	inventory, degraded, err := h.facade.ListInventory(c.Context())
	if err != nil || degraded {
		return degraded
	}
	byProduct := make(map[string]dto.LedgerResponse, len(inventory))
	for _, item := range inventory {
		byProduct[item.ProductID] = item
	}
	for i := range products {
		if ledger, ok := byProduct[products[i].ID]; ok {
			enrich(&products[i], &ledger)
		}
	}
	return false
}

func enrich(p *dto.ProductResponse, ledger *dto.LedgerResponse) {
	quantity := ledger.Quantity
	p.Stock = &quantity
	p.StockStatus = ledger.Status
	if ledger.InventoryValue != nil {
		value := *ledger.InventoryValue
		p.InventoryValue = &value
	} else {
		value := p.Price.Mul(decimal.NewFromInt(quantity))
		p.InventoryValue = &value
	}
}

// Get godoc
// @Summary      Obtener producto con su stock
// @Tags         productos
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [get]
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	product, degraded, err := h.facade.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	if degraded {
		return writeUnavailable(c)
	}

	ledger, ledgerDegraded, err := h.facade.GetLedgerByProduct(c.Context(), product.ID)
	switch {
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return apphttp.WriteError(c, err)
	case err == nil && ledger != nil:
		enrich(product, ledger)
	}
	// Sin ledger el producto viaja sin datos de stock.
	markDegraded(c, ledgerDegraded)
	return c.JSON(product)
}

// Create godoc
// @Summary      Crear producto (con stock inicial opcional)
// @Tags         productos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/productos [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, degraded, err := h.facade.CreateProduct(c.Context(), in)
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	if degraded {
		return writeUnavailable(c)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         productos
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, degraded, err := h.facade.UpdateProduct(c.Context(), c.Params("id"), in)
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	if degraded {
		return writeUnavailable(c)
	}
	return c.JSON(out)
}

// Deactivate baja lógica del producto.
func (h *ProductHandler) Deactivate(c *fiber.Ctx) error {
	degraded, err := h.facade.DeactivateProduct(c.Context(), c.Params("id"))
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	if degraded {
		return writeUnavailable(c)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reactivate revierte la baja lógica.
func (h *ProductHandler) Reactivate(c *fiber.Ctx) error {
	degraded, err := h.facade.ReactivateProduct(c.Context(), c.Params("id"))
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	if degraded {
		return writeUnavailable(c)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Search busca productos por texto.
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	out, degraded, err := h.facade.SearchProducts(c.Context(), c.Query("q"))
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	markDegraded(c, degraded)
	return c.JSON(out)
}

// ListByCategory productos de una categoría por nombre.
func (h *ProductHandler) ListByCategory(c *fiber.Ctx) error {
	out, degraded, err := h.facade.ListProductsByCategory(c.Context(), c.Params("nombre"))
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	markDegraded(c, degraded)
	return c.JSON(out)
}

// ListByPriceRange productos dentro de un rango de precio.
func (h *ProductHandler) ListByPriceRange(c *fiber.Ctx) error {
	min, errMin := decimal.NewFromString(c.Query("min", "0"))
	max, errMax := decimal.NewFromString(c.Query("max", "0"))
	if errMin != nil || errMax != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "min y max deben ser numéricos"})
	}
	out, degraded, err := h.facade.ListProductsByPriceRange(c.Context(), min, max)
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	markDegraded(c, degraded)
	return c.JSON(out)
}

// ListValues valor de inventario por producto.
func (h *ProductHandler) ListValues(c *fiber.Ctx) error {
	out, degraded, err := h.facade.ListProductValues(c.Context())
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	markDegraded(c, degraded)
	return c.JSON(out)
}
