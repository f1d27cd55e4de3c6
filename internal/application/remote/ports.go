// Package remote define el contrato del cliente hacia el data tier y la
// fachada resiliente que degrada las respuestas cuando el data tier no
// responde, en lugar de propagar el fallo al usuario.
package remote

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-stock/internal/application/dto"
)

// CatalogClient contrato del business tier hacia el data tier. Toda falla de
// transporte (conexión rechazada, timeout, 5xx) se reporta envuelta en
// domain.ErrDependencyUnavailable; los errores de negocio del data tier
// (no encontrado, duplicado, stock insuficiente, conflicto) llegan mapeados a
// los errores de dominio equivalentes.
type CatalogClient interface {
	// Productos
	ListProducts(ctx context.Context) ([]dto.ProductResponse, error)
	GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error)
	CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error)
	UpdateProduct(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error)
	DeactivateProduct(ctx context.Context, id string) error
	ReactivateProduct(ctx context.Context, id string) error
	SearchProducts(ctx context.Context, text string) ([]dto.ProductResponse, error)
	ListProductsByCategory(ctx context.Context, categoryName string) ([]dto.ProductResponse, error)
	ListProductsByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]dto.ProductResponse, error)
	ListProductValues(ctx context.Context) ([]dto.ProductValueDTO, error)

	// Categorías
	ListCategories(ctx context.Context) ([]dto.CategoryResponse, error)
	GetCategory(ctx context.Context, id string) (*dto.CategoryResponse, error)
	CreateCategory(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id string) error
	CategoryStats(ctx context.Context) ([]dto.CategoryStatsDTO, error)

	// Inventario
	GetLedgerByProduct(ctx context.Context, productID string) (*dto.LedgerResponse, error)
	CreateLedger(ctx context.Context, in dto.CreateLedgerRequest) (*dto.LedgerResponse, error)
	SetStock(ctx context.Context, productID string, quantity int64) (*dto.MutationResponse, error)
	IncreaseStock(ctx context.Context, productID string, amount int64) (*dto.MutationResponse, error)
	DecreaseStock(ctx context.Context, productID string, amount int64) (*dto.MutationResponse, error)
	UpdateThreshold(ctx context.Context, productID string, threshold int64) (*dto.MutationResponse, error)
	ListInventory(ctx context.Context) ([]dto.LedgerResponse, error)
	ListLowStock(ctx context.Context) ([]dto.LedgerResponse, error)
	ListCriticalStock(ctx context.Context) ([]dto.LedgerResponse, error)
	ListZeroStock(ctx context.Context) ([]dto.LedgerResponse, error)
	ListForReplenishment(ctx context.Context) ([]dto.LedgerResponse, error)
	ListInventoryByCategory(ctx context.Context, categoryName string) ([]dto.LedgerResponse, error)
	ListUpdatedSince(ctx context.Context, since time.Time) ([]dto.LedgerResponse, error)
	StockStats(ctx context.Context) (*dto.StockStatsResponse, error)
	TotalValue(ctx context.Context) (*dto.TotalValueResponse, error)
	CountLowStockByCategory(ctx context.Context) ([]dto.CategoryLowStockDTO, error)
	HasSufficientStock(ctx context.Context, productID string, required int64) (*dto.SufficiencyResponse, error)

	// Ping verifica que el data tier responde.
	Ping(ctx context.Context) error
}
