package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-stock/internal/domain/entity"
)

// LedgerView modelo de lectura: ledger más los campos del producto que las
// consultas necesitan para enriquecer respuestas y reportes.
type LedgerView struct {
	Ledger       entity.StockLedger
	ProductName  string
	CategoryName string
	Price        decimal.Decimal
}

// InventoryValue devuelve precio × cantidad de esta vista.
func (v *LedgerView) InventoryValue() decimal.Decimal {
	return v.Price.Mul(decimal.NewFromInt(v.Ledger.Quantity))
}

// LedgerStats agregados globales del inventario (solo productos activos).
type LedgerStats struct {
	Count           int64
	TotalQuantity   int64
	AverageQuantity decimal.Decimal
	BelowThreshold  int64
}

// CategoryLowStockCount cuántos ledgers con stock bajo hay por categoría.
type CategoryLowStockCount struct {
	CategoryName string
	Count        int64
}

// ProductValue valor de inventario de un producto (precio × cantidad).
type ProductValue struct {
	ProductID   string
	ProductName string
	Quantity    int64
	Price       decimal.Decimal
	TotalValue  decimal.Decimal
}

// LedgerRepository puerto de persistencia del ledger de stock.
//
// CompareAndSwap es la única vía de escritura de cantidad/umbral: persiste el
// estado nuevo solo si la fila almacenada sigue en expectedRevision y reporta
// el conflicto sin sobrescribir. Las consultas de lista consideran únicamente
// productos activos, igual que el almacén de origen.
type LedgerRepository interface {
	Create(ctx context.Context, ledger *entity.StockLedger) error
	GetByID(ctx context.Context, id string) (*entity.StockLedger, error)
	GetByProductID(ctx context.Context, productID string) (*entity.StockLedger, error)
	// CompareAndSwap persiste ledger (ya mutado, con la revisión nueva) si la
	// fila sigue en expectedRevision. Devuelve false en conflicto.
	CompareAndSwap(ctx context.Context, ledger *entity.StockLedger, expectedRevision int64) (bool, error)

	ListAll(ctx context.Context) ([]*LedgerView, error)
	ListLowStock(ctx context.Context) ([]*LedgerView, error)
	ListCriticalStock(ctx context.Context) ([]*LedgerView, error)
	ListZeroStock(ctx context.Context) ([]*LedgerView, error)
	ListForReplenishment(ctx context.Context) ([]*LedgerView, error)
	ListByCategory(ctx context.Context, categoryName string) ([]*LedgerView, error)
	ListByQuantityRange(ctx context.Context, min, max int64) ([]*LedgerView, error)
	ListUpdatedSince(ctx context.Context, since time.Time) ([]*LedgerView, error)
	ListProductValues(ctx context.Context) ([]ProductValue, error)

	Stats(ctx context.Context) (*LedgerStats, error)
	TotalValue(ctx context.Context) (decimal.Decimal, error)
	CountLowStockByCategory(ctx context.Context) ([]CategoryLowStockCount, error)
	HasSufficientStock(ctx context.Context, productID string, required int64) (bool, error)

	Delete(ctx context.Context, id string) error
	// DeleteByProductID lo usa la purga permanente de producto.
	DeleteByProductID(ctx context.Context, productID string) error
}
