package business

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-stock/internal/application/dto"
	"github.com/jhoicas/catalogo-stock/internal/application/remote"
	"github.com/jhoicas/catalogo-stock/internal/application/report"
)

// RouterDeps dependencias para el router del business tier.
type RouterDeps struct {
	Facade  *remote.Facade
	Reports *report.Service
	AppName string
}

// Router registra las rutas públicas bajo /api. El health del business tier
// incluye el veredicto del data tier: si el ping falla, el servicio sigue
// respondiendo pero reporta estado degradado.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		if err := deps.Facade.Ping(c.Context()); err != nil {
			return c.JSON(dto.HealthResponse{
				Status:  "degraded",
				Service: deps.AppName,
				Message: "el servicio de datos no responde",
			})
		}
		return c.JSON(dto.HealthResponse{Status: "ok", Service: deps.AppName})
	})

	// Productos. Las rutas fijas van antes que /:id.
	products := api.Group("/productos")
	productHandler := NewProductHandler(deps.Facade)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/buscar", productHandler.Search)
	products.Get("/precio", productHandler.ListByPriceRange)
	products.Get("/valores", productHandler.ListValues)
	products.Get("/categoria/:nombre", productHandler.ListByCategory)
	products.Get("/:id", productHandler.Get)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Deactivate)
	products.Post("/:id/reactivar", productHandler.Reactivate)

	// Categorías
	categories := api.Group("/categorias")
	categoryHandler := NewCategoryHandler(deps.Facade)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/estadisticas", categoryHandler.Stats)
	categories.Get("/:id", categoryHandler.Get)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Inventario
	inventory := api.Group("/inventario")
	stockHandler := NewStockHandler(deps.Facade)
	inventory.Post("/", stockHandler.Create)
	inventory.Get("/", stockHandler.List)
	inventory.Get("/bajo", stockHandler.ListLow)
	inventory.Get("/critico", stockHandler.ListCritical)
	inventory.Get("/sin-stock", stockHandler.ListZero)
	inventory.Get("/reabastecer", stockHandler.ListReplenishment)
	inventory.Get("/actualizados", stockHandler.ListUpdatedSince)
	inventory.Get("/estadisticas", stockHandler.Stats)
	inventory.Get("/valor-total", stockHandler.TotalValue)
	inventory.Get("/bajo-por-categoria", stockHandler.LowByCategory)
	inventory.Get("/categoria/:nombre", stockHandler.ListByCategory)
	inventory.Get("/producto/:productId/suficiente", stockHandler.Sufficiency)
	inventory.Get("/producto/:productId", stockHandler.GetByProduct)
	inventory.Patch("/producto/:productId/stock", stockHandler.SetStock)
	inventory.Post("/producto/:productId/incrementar", stockHandler.Increase)
	inventory.Post("/producto/:productId/decrementar", stockHandler.Decrease)
	inventory.Patch("/producto/:productId/umbral", stockHandler.UpdateThreshold)

	// Reportes
	reports := api.Group("/reportes")
	reportHandler := NewReportHandler(deps.Reports)
	reports.Get("/stock", reportHandler.StockState)
	reports.Get("/categorias", reportHandler.ByCategory)
	reports.Get("/alertas", reportHandler.Alerts)
	reports.Get("/alertas/pdf", reportHandler.AlertsPDF)
	reports.Get("/financiero", reportHandler.Financial)
}
