package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-stock/internal/application/catalog"
	"github.com/jhoicas/catalogo-stock/internal/application/dto"
	"github.com/jhoicas/catalogo-stock/internal/application/stock"
)

// RouterDeps dependencias para el router del data tier.
type RouterDeps struct {
	ProductUC  *catalog.ProductUseCase
	CategoryUC *catalog.CategoryUseCase
	StockUC    *stock.UseCase
	JWTSecret  string
	AppName    string
}

// Router registra las rutas del data tier. Todo lo que cuelga de /data exige
// token de servicio; /health queda abierto para probes.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: deps.AppName})
	})

	data := app.Group("/data", ServiceAuthMiddleware(deps.JWTSecret))

	// Productos. Las rutas fijas van antes que /:id.
	products := data.Group("/productos")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/buscar", productHandler.Search)
	products.Get("/precio", productHandler.ListByPriceRange)
	products.Get("/valores", productHandler.ListValues)
	products.Get("/categoria/:nombre", productHandler.ListByCategory)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Deactivate)
	products.Post("/:id/reactivar", productHandler.Reactivate)
	products.Delete("/:id/purgar", productHandler.PermanentDelete)

	// Categorías
	categories := data.Group("/categorias")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/buscar", categoryHandler.Search)
	categories.Get("/con-productos", categoryHandler.ListWithProducts)
	categories.Get("/estadisticas", categoryHandler.Stats)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Inventario
	inventory := data.Group("/inventario")
	inventoryHandler := NewInventoryHandler(deps.StockUC)
	inventory.Post("/", inventoryHandler.Create)
	inventory.Get("/", inventoryHandler.List)
	inventory.Get("/bajo", inventoryHandler.ListLow)
	inventory.Get("/critico", inventoryHandler.ListCritical)
	inventory.Get("/sin-stock", inventoryHandler.ListZero)
	inventory.Get("/reabastecer", inventoryHandler.ListReplenishment)
	inventory.Get("/rango", inventoryHandler.ListByQuantityRange)
	inventory.Get("/actualizados", inventoryHandler.ListUpdatedSince)
	inventory.Get("/estadisticas", inventoryHandler.Stats)
	inventory.Get("/valor-total", inventoryHandler.TotalValue)
	inventory.Get("/bajo-por-categoria", inventoryHandler.LowByCategory)
	inventory.Get("/categoria/:nombre", inventoryHandler.ListByCategory)
	inventory.Get("/producto/:productId/suficiente", inventoryHandler.Sufficiency)
	inventory.Get("/producto/:productId", inventoryHandler.GetByProduct)
	inventory.Patch("/producto/:productId/stock", inventoryHandler.SetStock)
	inventory.Post("/producto/:productId/incrementar", inventoryHandler.Increase)
	inventory.Post("/producto/:productId/decrementar", inventoryHandler.Decrease)
	inventory.Patch("/producto/:productId/umbral", inventoryHandler.UpdateThreshold)
	inventory.Get("/:id", inventoryHandler.GetByID)
	inventory.Put("/:id", inventoryHandler.Update)
	inventory.Delete("/:id", inventoryHandler.Delete)
}
