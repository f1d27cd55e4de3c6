package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Claves de recomendación del reporte de alertas. Independientes entre sí:
// un mismo reporte puede traer las tres.
const (
	RecommendationUrgent     = "urgente"
	RecommendationPlanning   = "critico"
	RecommendationMonitoring = "preventivo"
)

// StockStateReport estado general del inventario.
type StockStateReport struct {
	GeneratedAt   time.Time       `json:"generated_at"`
	Degraded      bool            `json:"degraded"`
	TotalProducts int             `json:"total_products"`
	CountNormal   int             `json:"count_normal"`
	CountLow      int             `json:"count_low"`
	CountCritical int             `json:"count_critical"`
	CountZero     int             `json:"count_zero"`
	PctLow        float64         `json:"pct_low"`
	PctCritical   float64         `json:"pct_critical"`
	PctZero       float64         `json:"pct_zero"`
	TotalValue    decimal.Decimal `json:"total_value"`
	AverageValue  decimal.Decimal `json:"average_value"`
	Items         []LedgerResponse `json:"items"`
}

// CategoryReport distribución de productos y valor por categoría.
type CategoryReport struct {
	GeneratedAt        time.Time                  `json:"generated_at"`
	Degraded           bool                       `json:"degraded"`
	TotalCategories    int                        `json:"total_categories"`
	TotalProducts      int64                      `json:"total_products"`
	TotalValue         decimal.Decimal            `json:"total_value"`
	ProductsByCategory map[string]int64           `json:"products_by_category"`
	ValueByCategory    map[string]decimal.Decimal `json:"value_by_category"`
	TopByProducts      string                     `json:"top_by_products"`
	TopByValue         string                     `json:"top_by_value"`
}

// AlertReport productos que requieren atención, agrupados por urgencia.
type AlertReport struct {
	GeneratedAt     time.Time         `json:"generated_at"`
	Degraded        bool              `json:"degraded"`
	ZeroStock       []LedgerResponse  `json:"zero_stock"`
	Critical        []LedgerResponse  `json:"critical"`
	Low             []LedgerResponse  `json:"low"`
	Replenishment   []LedgerResponse  `json:"replenishment"`
	TotalAlerts     int               `json:"total_alerts"`
	OutOfStockCount int               `json:"out_of_stock_count"`
	// ValueAtRisk valor del inventario que queda en las bandas CRITICO y BAJO.
	ValueAtRisk     decimal.Decimal   `json:"value_at_risk"`
	Recommendations map[string]string `json:"recommendations"`
}

// FinancialReport análisis financiero del inventario.
type FinancialReport struct {
	GeneratedAt  time.Time         `json:"generated_at"`
	Degraded     bool              `json:"degraded"`
	TotalValue   decimal.Decimal   `json:"total_value"`
	AverageValue decimal.Decimal   `json:"average_value"`
	TopProducts  []ProductValueDTO `json:"top_products"`
}
