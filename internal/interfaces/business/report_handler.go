package business

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-stock/internal/application/report"
	apphttp "github.com/jhoicas/catalogo-stock/internal/interfaces/http"
)

// ReportHandler expone los reportes agregados. Los reportes nunca responden
// 503: salen con Degraded=true cuando los datos llegaron incompletos.
type ReportHandler struct {
	reports *report.Service
}

// NewReportHandler construye el handler.
func NewReportHandler(reports *report.Service) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// StockState godoc
// @Summary      Reporte del estado general del inventario
// @Tags         reportes
// @Produce      json
// @Success      200  {object}  dto.StockStateReport
// @Router       /api/reportes/stock [get]
func (h *ReportHandler) StockState(c *fiber.Ctx) error {
	out, err := h.reports.StockState(c.Context())
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	markDegraded(c, out.Degraded)
	return c.JSON(out)
}

// ByCategory godoc
// @Summary      Reporte de distribución por categoría
// @Tags         reportes
// @Produce      json
// @Success      200  {object}  dto.CategoryReport
// @Router       /api/reportes/categorias [get]
func (h *ReportHandler) ByCategory(c *fiber.Ctx) error {
	out, err := h.reports.ByCategory(c.Context())
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	markDegraded(c, out.Degraded)
	return c.JSON(out)
}

// Alerts godoc
// @Summary      Reporte de alertas de stock
// @Tags         reportes
// @Produce      json
// @Success      200  {object}  dto.AlertReport
// @Router       /api/reportes/alertas [get]
func (h *ReportHandler) Alerts(c *fiber.Ctx) error {
	out, err := h.reports.Alerts(c.Context())
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	markDegraded(c, out.Degraded)
	return c.JSON(out)
}

// AlertsPDF godoc
// @Summary      Reporte de alertas en PDF
// @Tags         reportes
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reportes/alertas/pdf [get]
func (h *ReportHandler) AlertsPDF(c *fiber.Ctx) error {
	pdf, err := h.reports.AlertsPDF(c.Context())
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte_alertas.pdf"`)
	return c.Send(pdf)
}

// Financial godoc
// @Summary      Reporte financiero del inventario
// @Tags         reportes
// @Produce      json
// @Success      200  {object}  dto.FinancialReport
// @Router       /api/reportes/financiero [get]
func (h *ReportHandler) Financial(c *fiber.Ctx) error {
	out, err := h.reports.Financial(c.Context())
	if err != nil {
		return apphttp.WriteError(c, err)
	}
	markDegraded(c, out.Degraded)
	return c.JSON(out)
}
