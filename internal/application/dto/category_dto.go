package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCategoryRequest body para crear una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateCategoryRequest body para actualizar una categoría.
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CategoryResponse representación de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryStatsDTO agregados por categoría.
type CategoryStatsDTO struct {
	CategoryID     string          `json:"category_id"`
	Name           string          `json:"name"`
	ProductCount   int64           `json:"product_count"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
}
