package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para crear un producto. Si InitialQuantity viene
// presente se crea el ledger de stock en la misma operación.
type CreateProductRequest struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	CategoryID      string          `json:"category_id"`
	InitialQuantity *int64          `json:"initial_quantity,omitempty"`
	Threshold       *int64          `json:"threshold,omitempty"`
}

// UpdateProductRequest body para actualizar un producto (campos opcionales).
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	CategoryID  *string          `json:"category_id,omitempty"`
}

// ProductResponse representación de un producto. Los campos de stock los
// completa el tier de negocio al enriquecer; el data tier los deja vacíos.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  string          `json:"category_id"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Stock          *int64           `json:"stock,omitempty"`
	StockStatus    string           `json:"stock_status,omitempty"`
	InventoryValue *decimal.Decimal `json:"inventory_value,omitempty"`
}

// ProductValueDTO valor de inventario de un producto (precio × cantidad).
type ProductValueDTO struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	TotalValue  decimal.Decimal `json:"total_value"`
}
