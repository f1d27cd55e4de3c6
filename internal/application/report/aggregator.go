// Package report construye los cuatro reportes de negocio a partir de datos
// ya obtenidos del data tier. La agregación es pura: recibe slices y devuelve
// el reporte, sin tocar red ni almacenamiento, para que las reglas se puedan
// probar en aislamiento.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-stock/internal/application/dto"
	"github.com/jhoicas/catalogo-stock/internal/domain/entity"
)

// topProductsLimit cuántos productos lista el reporte financiero.
const topProductsLimit = 10

// BuildStockStateReport clasifica el inventario por estado y calcula
// porcentajes y valor total. Con inventario vacío los porcentajes son 0.
func BuildStockStateReport(now time.Time, items []dto.LedgerResponse) *dto.StockStateReport {
	report := &dto.StockStateReport{
		GeneratedAt:   now,
		TotalProducts: len(items),
		TotalValue:    decimal.Zero,
		AverageValue:  decimal.Zero,
		Items:         items,
	}
	for _, item := range items {
		switch item.Status {
		case string(entity.StatusSinStock):
			report.CountZero++
		case string(entity.StatusCritico):
			report.CountCritical++
		case string(entity.StatusBajo):
			report.CountLow++
		default:
			report.CountNormal++
		}
		if item.InventoryValue != nil {
			report.TotalValue = report.TotalValue.Add(*item.InventoryValue)
		}
	}
	if len(items) > 0 {
		total := float64(len(items))
		report.PctLow = float64(report.CountLow) / total * 100
		report.PctCritical = float64(report.CountCritical) / total * 100
		report.PctZero = float64(report.CountZero) / total * 100
		report.AverageValue = report.TotalValue.Div(decimal.NewFromInt(int64(len(items)))).Round(2)
	}
	return report
}

// BuildCategoryReport agrega productos y valor por categoría y determina la
// categoría dominante por cada métrica. En empate gana el nombre menor, para
// que el reporte sea determinista.
func BuildCategoryReport(now time.Time, stats []dto.CategoryStatsDTO) *dto.CategoryReport {
	report := &dto.CategoryReport{
		GeneratedAt:        now,
		TotalCategories:    len(stats),
		TotalValue:         decimal.Zero,
		ProductsByCategory: make(map[string]int64, len(stats)),
		ValueByCategory:    make(map[string]decimal.Decimal, len(stats)),
	}
	for _, s := range stats {
		report.TotalProducts += s.ProductCount
		report.TotalValue = report.TotalValue.Add(s.InventoryValue)
		report.ProductsByCategory[s.Name] = s.ProductCount
		report.ValueByCategory[s.Name] = s.InventoryValue
	}
	for _, s := range stats {
		if report.TopByProducts == "" ||
			s.ProductCount > report.ProductsByCategory[report.TopByProducts] ||
			(s.ProductCount == report.ProductsByCategory[report.TopByProducts] && s.Name < report.TopByProducts) {
			report.TopByProducts = s.Name
		}
		if report.TopByValue == "" ||
			s.InventoryValue.GreaterThan(report.ValueByCategory[report.TopByValue]) ||
			(s.InventoryValue.Equal(report.ValueByCategory[report.TopByValue]) && s.Name < report.TopByValue) {
			report.TopByValue = s.Name
		}
	}
	return report
}

// BuildAlertReport agrupa los productos que requieren atención. Las tres
// recomendaciones son independientes: cada banda con elementos aporta la suya
// y un mismo reporte puede traerlas todas.
func BuildAlertReport(now time.Time, zero, critical, low, replenishment []dto.LedgerResponse) *dto.AlertReport {
	report := &dto.AlertReport{
		GeneratedAt:     now,
		ZeroStock:       zero,
		Critical:        critical,
		Low:             low,
		Replenishment:   replenishment,
		TotalAlerts:     len(zero) + len(critical) + len(low),
		OutOfStockCount: len(zero),
		ValueAtRisk:     decimal.Zero,
		Recommendations: map[string]string{},
	}
	for _, item := range critical {
		if item.InventoryValue != nil {
			report.ValueAtRisk = report.ValueAtRisk.Add(*item.InventoryValue)
		}
	}
	for _, item := range low {
		if item.InventoryValue != nil {
			report.ValueAtRisk = report.ValueAtRisk.Add(*item.InventoryValue)
		}
	}
	if len(zero) > 0 {
		report.Recommendations[dto.RecommendationUrgent] = "Reabastecer de inmediato los productos sin existencias"
	}
	if len(critical) > 0 {
		report.Recommendations[dto.RecommendationPlanning] = "Planificar la compra de los productos en nivel crítico"
	}
	if len(low) > 0 {
		report.Recommendations[dto.RecommendationMonitoring] = "Vigilar los productos con stock bajo antes de que crucen a crítico"
	}
	return report
}

// BuildFinancialReport ordena por valor de inventario descendente y toma los
// primeros diez. A igual valor se conserva el orden de llegada (orden
// estable), así dos corridas sobre los mismos datos producen el mismo reporte.
func BuildFinancialReport(now time.Time, values []dto.ProductValueDTO) *dto.FinancialReport {
	report := &dto.FinancialReport{
		GeneratedAt:  now,
		TotalValue:   decimal.Zero,
		AverageValue: decimal.Zero,
	}
	for _, v := range values {
		report.TotalValue = report.TotalValue.Add(v.TotalValue)
	}
	if len(values) > 0 {
		report.AverageValue = report.TotalValue.Div(decimal.NewFromInt(int64(len(values)))).Round(2)
	}

	sorted := make([]dto.ProductValueDTO, len(values))
	copy(sorted, values)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalValue.GreaterThan(sorted[j].TotalValue)
	})
	if len(sorted) > topProductsLimit {
		sorted = sorted[:topProductsLimit]
	}
	report.TopProducts = sorted
	return report
}
