package remote

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-stock/internal/application/dto"
	"github.com/jhoicas/catalogo-stock/internal/domain"
	"github.com/jhoicas/catalogo-stock/pkg/logger"
)

// Facade fachada resiliente sobre el CatalogClient. La degradación se decide
// llamada a llamada, sin estado entre llamadas: si el data tier no responde,
// las lecturas devuelven el valor vacío del tipo con degraded=true y las
// escrituras devuelven nil con degraded=true, nunca un error de transporte.
// Los errores de negocio pasan intactos al caller.
type Facade struct {
	client CatalogClient
	log    *logger.Logger
}

// NewFacade construye la fachada.
func NewFacade(client CatalogClient, log *logger.Logger) *Facade {
	return &Facade{client: client, log: log}
}

func (f *Facade) absorb(op string, err error) bool {
	if errors.Is(err, domain.ErrDependencyUnavailable) {
		f.log.Warn().Err(err).Str("operation", op).Msg("data tier no disponible, respuesta degradada")
		return true
	}
	return false
}

// listFallback lecturas de lista: lista vacía en degradación.
func listFallback[T any](f *Facade, op string, vals []T, err error) ([]T, bool, error) {
	if err == nil {
		return vals, false, nil
	}
	if f.absorb(op, err) {
		return []T{}, true, nil
	}
	return nil, false, err
}

// ptrFallback lecturas y escrituras puntuales: nil en degradación.
func ptrFallback[T any](f *Facade, op string, v *T, err error) (*T, bool, error) {
	if err == nil {
		return v, false, nil
	}
	if f.absorb(op, err) {
		return nil, true, nil
	}
	return nil, false, err
}

// zeroFallback agregados escalares: el valor cero del tipo en degradación
// (conteos y totales en cero), nunca nil. El caller siempre recibe un
// agregado usable y decide con el flag degraded.
func zeroFallback[T any](f *Facade, op string, v *T, err error) (*T, bool, error) {
	if err == nil {
		return v, false, nil
	}
	if f.absorb(op, err) {
		return new(T), true, nil
	}
	return nil, false, err
}

// bareFallback operaciones sin cuerpo de respuesta.
func (f *Facade) bareFallback(op string, err error) (bool, error) {
	if err == nil {
		return false, nil
	}
	if f.absorb(op, err) {
		return true, nil
	}
	return false, err
}

// ── Productos ────────────────────────────────────────────────────────────────

func (f *Facade) ListProducts(ctx context.Context) ([]dto.ProductResponse, bool, error) {
	vals, err := f.client.ListProducts(ctx)
	return listFallback(f, "list_products", vals, err)
}

func (f *Facade) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, bool, error) {
	v, err := f.client.GetProduct(ctx, id)
	return ptrFallback(f, "get_product", v, err)
}

func (f *Facade) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, bool, error) {
	v, err := f.client.CreateProduct(ctx, in)
	return ptrFallback(f, "create_product", v, err)
}

func (f *Facade) UpdateProduct(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, bool, error) {
	v, err := f.client.UpdateProduct(ctx, id, in)
	return ptrFallback(f, "update_product", v, err)
}

func (f *Facade) DeactivateProduct(ctx context.Context, id string) (bool, error) {
	return f.bareFallback("deactivate_product", f.client.DeactivateProduct(ctx, id))
}

func (f *Facade) ReactivateProduct(ctx context.Context, id string) (bool, error) {
	return f.bareFallback("reactivate_product", f.client.ReactivateProduct(ctx, id))
}

func (f *Facade) SearchProducts(ctx context.Context, text string) ([]dto.ProductResponse, bool, error) {
	vals, err := f.client.SearchProducts(ctx, text)
	return listFallback(f, "search_products", vals, err)
}

func (f *Facade) ListProductsByCategory(ctx context.Context, categoryName string) ([]dto.ProductResponse, bool, error) {
	vals, err := f.client.ListProductsByCategory(ctx, categoryName)
	return listFallback(f, "list_products_by_category", vals, err)
}

func (f *Facade) ListProductsByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]dto.ProductResponse, bool, error) {
	vals, err := f.client.ListProductsByPriceRange(ctx, min, max)
	return listFallback(f, "list_products_by_price_range", vals, err)
}

func (f *Facade) ListProductValues(ctx context.Context) ([]dto.ProductValueDTO, bool, error) {
	vals, err := f.client.ListProductValues(ctx)
	return listFallback(f, "list_product_values", vals, err)
}

// ── Categorías ───────────────────────────────────────────────────────────────

func (f *Facade) ListCategories(ctx context.Context) ([]dto.CategoryResponse, bool, error) {
	vals, err := f.client.ListCategories(ctx)
	return listFallback(f, "list_categories", vals, err)
}

func (f *Facade) GetCategory(ctx context.Context, id string) (*dto.CategoryResponse, bool, error) {
	v, err := f.client.GetCategory(ctx, id)
	return ptrFallback(f, "get_category", v, err)
}

func (f *Facade) CreateCategory(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, bool, error) {
	v, err := f.client.CreateCategory(ctx, in)
	return ptrFallback(f, "create_category", v, err)
}

func (f *Facade) UpdateCategory(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, bool, error) {
	v, err := f.client.UpdateCategory(ctx, id, in)
	return ptrFallback(f, "update_category", v, err)
}

func (f *Facade) DeleteCategory(ctx context.Context, id string) (bool, error) {
	return f.bareFallback("delete_category", f.client.DeleteCategory(ctx, id))
}

func (f *Facade) CategoryStats(ctx context.Context) ([]dto.CategoryStatsDTO, bool, error) {
	vals, err := f.client.CategoryStats(ctx)
	return listFallback(f, "category_stats", vals, err)
}

// ── Inventario ───────────────────────────────────────────────────────────────

func (f *Facade) GetLedgerByProduct(ctx context.Context, productID string) (*dto.LedgerResponse, bool, error) {
	v, err := f.client.GetLedgerByProduct(ctx, productID)
	return ptrFallback(f, "get_ledger_by_product", v, err)
}

func (f *Facade) CreateLedger(ctx context.Context, in dto.CreateLedgerRequest) (*dto.LedgerResponse, bool, error) {
	v, err := f.client.CreateLedger(ctx, in)
	return ptrFallback(f, "create_ledger", v, err)
}

func (f *Facade) SetStock(ctx context.Context, productID string, quantity int64) (*dto.MutationResponse, bool, error) {
	v, err := f.client.SetStock(ctx, productID, quantity)
	return ptrFallback(f, "set_stock", v, err)
}

func (f *Facade) IncreaseStock(ctx context.Context, productID string, amount int64) (*dto.MutationResponse, bool, error) {
	v, err := f.client.IncreaseStock(ctx, productID, amount)
	return ptrFallback(f, "increase_stock", v, err)
}

func (f *Facade) DecreaseStock(ctx context.Context, productID string, amount int64) (*dto.MutationResponse, bool, error) {
	v, err := f.client.DecreaseStock(ctx, productID, amount)
	return ptrFallback(f, "decrease_stock", v, err)
}

func (f *Facade) UpdateThreshold(ctx context.Context, productID string, threshold int64) (*dto.MutationResponse, bool, error) {
	v, err := f.client.UpdateThreshold(ctx, productID, threshold)
	return ptrFallback(f, "update_threshold", v, err)
}

func (f *Facade) ListInventory(ctx context.Context) ([]dto.LedgerResponse, bool, error) {
	vals, err := f.client.ListInventory(ctx)
	return listFallback(f, "list_inventory", vals, err)
}

func (f *Facade) ListLowStock(ctx context.Context) ([]dto.LedgerResponse, bool, error) {
	vals, err := f.client.ListLowStock(ctx)
	return listFallback(f, "list_low_stock", vals, err)
}

func (f *Facade) ListCriticalStock(ctx context.Context) ([]dto.LedgerResponse, bool, error) {
	vals, err := f.client.ListCriticalStock(ctx)
	return listFallback(f, "list_critical_stock", vals, err)
}

func (f *Facade) ListZeroStock(ctx context.Context) ([]dto.LedgerResponse, bool, error) {
	vals, err := f.client.ListZeroStock(ctx)
	return listFallback(f, "list_zero_stock", vals, err)
}

func (f *Facade) ListForReplenishment(ctx context.Context) ([]dto.LedgerResponse, bool, error) {
	vals, err := f.client.ListForReplenishment(ctx)
	return listFallback(f, "list_for_replenishment", vals, err)
}

func (f *Facade) ListInventoryByCategory(ctx context.Context, categoryName string) ([]dto.LedgerResponse, bool, error) {
	vals, err := f.client.ListInventoryByCategory(ctx, categoryName)
	return listFallback(f, "list_inventory_by_category", vals, err)
}

func (f *Facade) ListUpdatedSince(ctx context.Context, since time.Time) ([]dto.LedgerResponse, bool, error) {
	vals, err := f.client.ListUpdatedSince(ctx, since)
	return listFallback(f, "list_updated_since", vals, err)
}

func (f *Facade) StockStats(ctx context.Context) (*dto.StockStatsResponse, bool, error) {
	v, err := f.client.StockStats(ctx)
	return zeroFallback(f, "stock_stats", v, err)
}

func (f *Facade) TotalValue(ctx context.Context) (*dto.TotalValueResponse, bool, error) {
	v, err := f.client.TotalValue(ctx)
	return zeroFallback(f, "total_value", v, err)
}

func (f *Facade) CountLowStockByCategory(ctx context.Context) ([]dto.CategoryLowStockDTO, bool, error) {
	vals, err := f.client.CountLowStockByCategory(ctx)
	return listFallback(f, "count_low_stock_by_category", vals, err)
}

func (f *Facade) HasSufficientStock(ctx context.Context, productID string, required int64) (*dto.SufficiencyResponse, bool, error) {
	v, err := f.client.HasSufficientStock(ctx, productID, required)
	return ptrFallback(f, "has_sufficient_stock", v, err)
}

// Ping reporta si el data tier responde; no degrada, el health endpoint
// necesita el veredicto real.
func (f *Facade) Ping(ctx context.Context) error {
	return f.client.Ping(ctx)
}
