package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLedgerRequest body para crear el ledger de stock de un producto.
// Threshold por defecto es 0 si se omite.
type CreateLedgerRequest struct {
	ProductID       string `json:"product_id"`
	InitialQuantity int64  `json:"initial_quantity"`
	Threshold       *int64 `json:"threshold,omitempty"`
}

// UpdateLedgerRequest body para actualizar cantidad y umbral de un ledger.
type UpdateLedgerRequest struct {
	Quantity  int64 `json:"quantity"`
	Threshold int64 `json:"threshold"`
}

// SetStockRequest body para fijar la cantidad exacta.
type SetStockRequest struct {
	Quantity int64 `json:"quantity"`
}

// AdjustStockRequest body para incrementar o decrementar.
type AdjustStockRequest struct {
	Amount int64 `json:"amount"`
}

// ThresholdRequest body para cambiar el umbral de reorden.
type ThresholdRequest struct {
	Threshold int64 `json:"threshold"`
}

// LedgerResponse representación de un ledger con su estado derivado.
type LedgerResponse struct {
	ID                 string           `json:"id"`
	ProductID          string           `json:"product_id"`
	ProductName        string           `json:"product_name,omitempty"`
	CategoryName       string           `json:"category_name,omitempty"`
	Quantity           int64            `json:"quantity"`
	Threshold          int64            `json:"threshold"`
	Revision           int64            `json:"revision"`
	Status             string           `json:"status"`
	NeedsReplenishment bool             `json:"needs_replenishment"`
	InventoryValue     *decimal.Decimal `json:"inventory_value,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// MutationResponse resultado de una mutación de stock. AlertTriggered es
// contrato, no un log: true cuando un decremento cruza desde NORMAL/BAJO
// hacia CRITICO o SIN_STOCK, para que el caller pueda alertar.
type MutationResponse struct {
	Ledger         LedgerResponse `json:"ledger"`
	PreviousStatus string         `json:"previous_status"`
	NewStatus      string         `json:"new_status"`
	AlertTriggered bool           `json:"alert_triggered"`
}

// StockStatsResponse agregados globales del inventario.
type StockStatsResponse struct {
	Count           int64           `json:"count"`
	TotalQuantity   int64           `json:"total_quantity"`
	AverageQuantity decimal.Decimal `json:"average_quantity"`
	BelowThreshold  int64           `json:"below_threshold"`
}

// TotalValueResponse valor monetario total del inventario.
type TotalValueResponse struct {
	TotalValue decimal.Decimal `json:"total_value"`
}

// CategoryLowStockDTO conteo de stock bajo por categoría.
type CategoryLowStockDTO struct {
	CategoryName string `json:"category_name"`
	Count        int64  `json:"count"`
}

// SufficiencyResponse respuesta de la verificación de stock suficiente.
type SufficiencyResponse struct {
	ProductID  string `json:"product_id"`
	Required   int64  `json:"required"`
	Sufficient bool   `json:"sufficient"`
}
