package report

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/catalogo-stock/internal/application/dto"
	"github.com/jhoicas/catalogo-stock/internal/application/remote"
	"github.com/jhoicas/catalogo-stock/pkg/logger"
)

// AlertRenderer exporta el reporte de alertas a un documento descargable.
type AlertRenderer interface {
	RenderAlertReport(report *dto.AlertReport) ([]byte, error)
}

// ErrRendererDisabled indica que el servicio se construyó sin renderer y se
// pidió la exportación a PDF.
var ErrRendererDisabled = errors.New("exportación a PDF no habilitada")

// Service obtiene los datos del data tier a través de la fachada resiliente y
// delega la agregación a las funciones puras. Si alguna de las llamadas llegó
// degradada, el reporte sale marcado Degraded=true: números parciales se
// entregan, pero nunca como si fueran completos.
type Service struct {
	facade   *remote.Facade
	renderer AlertRenderer
	log      *logger.Logger
}

// NewService construye el servicio de reportes. renderer puede ser nil si la
// exportación a PDF no está habilitada.
func NewService(facade *remote.Facade, renderer AlertRenderer, log *logger.Logger) *Service {
	return &Service{facade: facade, renderer: renderer, log: log}
}

// StockState reporte del estado general del inventario.
func (s *Service) StockState(ctx context.Context) (*dto.StockStateReport, error) {
	items, degraded, err := s.facade.ListInventory(ctx)
	if err != nil {
		return nil, err
	}
	report := BuildStockStateReport(time.Now(), items)
	report.Degraded = degraded
	return report, nil
}

// ByCategory reporte de distribución por categoría.
func (s *Service) ByCategory(ctx context.Context) (*dto.CategoryReport, error) {
	stats, degraded, err := s.facade.CategoryStats(ctx)
	if err != nil {
		return nil, err
	}
	report := BuildCategoryReport(time.Now(), stats)
	report.Degraded = degraded
	return report, nil
}

// Alerts reporte de productos que requieren atención.
func (s *Service) Alerts(ctx context.Context) (*dto.AlertReport, error) {
	zero, d1, err := s.facade.ListZeroStock(ctx)
	if err != nil {
		return nil, err
	}
	critical, d2, err := s.facade.ListCriticalStock(ctx)
	if err != nil {
		return nil, err
	}
	low, d3, err := s.facade.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	replenishment, d4, err := s.facade.ListForReplenishment(ctx)
	if err != nil {
		return nil, err
	}
	report := BuildAlertReport(time.Now(), zero, critical, low, replenishment)
	report.Degraded = d1 || d2 || d3 || d4
	return report, nil
}

// Financial reporte financiero con los diez productos de mayor valor.
func (s *Service) Financial(ctx context.Context) (*dto.FinancialReport, error) {
	values, degraded, err := s.facade.ListProductValues(ctx)
	if err != nil {
		return nil, err
	}
	report := BuildFinancialReport(time.Now(), values)
	report.Degraded = degraded
	return report, nil
}

// AlertsPDF genera el reporte de alertas y lo exporta como PDF.
// ErrRendererDisabled si el servicio se construyó sin renderer.
func (s *Service) AlertsPDF(ctx context.Context) ([]byte, error) {
	if s.renderer == nil {
		return nil, ErrRendererDisabled
	}
	report, err := s.Alerts(ctx)
	if err != nil {
		return nil, err
	}
	pdf, err := s.renderer.RenderAlertReport(report)
	if err != nil {
		s.log.Error().Err(err).Msg("fallo al generar el PDF de alertas")
		return nil, err
	}
	return pdf, nil
}
