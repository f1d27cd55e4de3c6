package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-stock/internal/application/dto"
)

func ledgerItem(status string, value int64) dto.LedgerResponse {
	v := decimal.NewFromInt(value)
	return dto.LedgerResponse{Status: status, InventoryValue: &v}
}

func TestBuildStockStateReport_ConteosYPorcentajes(t *testing.T) {
	items := []dto.LedgerResponse{
		ledgerItem("NORMAL", 100),
		ledgerItem("NORMAL", 100),
		ledgerItem("BAJO", 50),
		ledgerItem("CRITICO", 20),
		ledgerItem("SIN_STOCK", 0),
	}
	report := BuildStockStateReport(time.Now(), items)

	assert.Equal(t, 5, report.TotalProducts)
	assert.Equal(t, 2, report.CountNormal)
	assert.Equal(t, 1, report.CountLow)
	assert.Equal(t, 1, report.CountCritical)
	assert.Equal(t, 1, report.CountZero)
	assert.InDelta(t, 20.0, report.PctLow, 0.001)
	assert.InDelta(t, 20.0, report.PctCritical, 0.001)
	assert.InDelta(t, 20.0, report.PctZero, 0.001)
	assert.True(t, report.TotalValue.Equal(decimal.NewFromInt(270)))
	assert.True(t, report.AverageValue.Equal(decimal.NewFromInt(54)))
}

func TestBuildStockStateReport_InventarioVacio(t *testing.T) {
	report := BuildStockStateReport(time.Now(), nil)

	assert.Equal(t, 0, report.TotalProducts)
	assert.Zero(t, report.PctLow)
	assert.Zero(t, report.PctCritical)
	assert.Zero(t, report.PctZero)
	assert.True(t, report.TotalValue.IsZero())
	assert.True(t, report.AverageValue.IsZero())
}

// La categoría con más productos y la de mayor valor no tienen por qué
// coincidir: A domina en productos, B en valor.
func TestBuildCategoryReport_DominantesIndependientes(t *testing.T) {
	stats := []dto.CategoryStatsDTO{
		{CategoryID: "a", Name: "A", ProductCount: 3, InventoryValue: decimal.NewFromInt(300)},
		{CategoryID: "b", Name: "B", ProductCount: 1, InventoryValue: decimal.NewFromInt(700)},
	}
	report := BuildCategoryReport(time.Now(), stats)

	assert.Equal(t, "A", report.TopByProducts)
	assert.Equal(t, "B", report.TopByValue)
	assert.Equal(t, int64(4), report.TotalProducts)
	assert.True(t, report.TotalValue.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, int64(3), report.ProductsByCategory["A"])
	assert.True(t, report.ValueByCategory["B"].Equal(decimal.NewFromInt(700)))
}

func TestBuildCategoryReport_EmpateResueltoPorNombre(t *testing.T) {
	stats := []dto.CategoryStatsDTO{
		{Name: "Zapatos", ProductCount: 2, InventoryValue: decimal.NewFromInt(100)},
		{Name: "Abrigos", ProductCount: 2, InventoryValue: decimal.NewFromInt(100)},
	}
	report := BuildCategoryReport(time.Now(), stats)

	assert.Equal(t, "Abrigos", report.TopByProducts)
	assert.Equal(t, "Abrigos", report.TopByValue)
}

func TestBuildAlertReport_RecomendacionesIndependientes(t *testing.T) {
	zero := []dto.LedgerResponse{ledgerItem("SIN_STOCK", 0)}
	critical := []dto.LedgerResponse{ledgerItem("CRITICO", 30)}
	low := []dto.LedgerResponse{ledgerItem("BAJO", 45), ledgerItem("BAJO", 25)}

	report := BuildAlertReport(time.Now(), zero, critical, low, zero)

	assert.Equal(t, 4, report.TotalAlerts)
	assert.Equal(t, 1, report.OutOfStockCount)
	assert.True(t, report.ValueAtRisk.Equal(decimal.NewFromInt(100)))
	require.Len(t, report.Recommendations, 3)
	assert.Contains(t, report.Recommendations, dto.RecommendationUrgent)
	assert.Contains(t, report.Recommendations, dto.RecommendationPlanning)
	assert.Contains(t, report.Recommendations, dto.RecommendationMonitoring)
}

func TestBuildAlertReport_SinAlertasSinRecomendaciones(t *testing.T) {
	report := BuildAlertReport(time.Now(), nil, nil, nil, nil)

	assert.Zero(t, report.TotalAlerts)
	assert.Empty(t, report.Recommendations)
	assert.True(t, report.ValueAtRisk.IsZero())
}

func TestBuildFinancialReport_TopDiezDeterminista(t *testing.T) {
	values := make([]dto.ProductValueDTO, 0, 12)
	for i := 0; i < 12; i++ {
		values = append(values, dto.ProductValueDTO{
			ProductID:   string(rune('a' + i)),
			ProductName: string(rune('A' + i)),
			TotalValue:  decimal.NewFromInt(int64(100 + i)),
		})
	}
	report := BuildFinancialReport(time.Now(), values)

	require.Len(t, report.TopProducts, 10)
	assert.Equal(t, "L", report.TopProducts[0].ProductName, "el mayor valor encabeza")
	assert.Equal(t, "C", report.TopProducts[9].ProductName)
	assert.True(t, report.TotalValue.Equal(decimal.NewFromInt(1266)))
	assert.True(t, report.AverageValue.Equal(decimal.NewFromFloat(105.5)))
}

// A igual valor se conserva el orden de llegada: el orden estable no
// reordena empates, aunque los nombres sugieran otro orden.
func TestBuildFinancialReport_EmpateConservaOrdenDeLlegada(t *testing.T) {
	values := []dto.ProductValueDTO{
		{ProductID: "2", ProductName: "Zapato", TotalValue: decimal.NewFromInt(50)},
		{ProductID: "1", ProductName: "Abrigo", TotalValue: decimal.NewFromInt(50)},
		{ProductID: "3", ProductName: "Camisa", TotalValue: decimal.NewFromInt(80)},
	}
	report := BuildFinancialReport(time.Now(), values)

	require.Len(t, report.TopProducts, 3)
	assert.Equal(t, "Camisa", report.TopProducts[0].ProductName, "el mayor valor encabeza")
	assert.Equal(t, "Zapato", report.TopProducts[1].ProductName)
	assert.Equal(t, "Abrigo", report.TopProducts[2].ProductName)
}

func TestBuildFinancialReport_Vacio(t *testing.T) {
	report := BuildFinancialReport(time.Now(), nil)

	assert.Empty(t, report.TopProducts)
	assert.True(t, report.TotalValue.IsZero())
	assert.True(t, report.AverageValue.IsZero())
}
