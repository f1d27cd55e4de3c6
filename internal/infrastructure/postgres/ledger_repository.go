package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-stock/internal/domain"
	"github.com/jhoicas/catalogo-stock/internal/domain/entity"
	"github.com/jhoicas/catalogo-stock/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// ledgerViewSelect columnas de la vista de lectura: ledger más nombre de
// producto, categoría y precio. Solo productos activos.
const ledgerViewSelect = `
	SELECT l.id, l.product_id, l.quantity, l.threshold, l.revision, l.created_at, l.updated_at,
	       p.name, c.name, p.price
	FROM stock_ledgers l
	JOIN products p ON p.id = l.product_id AND p.active
	JOIN categories c ON c.id = p.category_id`

// LedgerRepo implementación del puerto LedgerRepository sobre PostgreSQL
// (usable con pool o tx).
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Create persiste un ledger nuevo. La constraint única de product_id convierte
// la carrera de doble alta en ErrDuplicate.
func (r *LedgerRepo) Create(ctx context.Context, ledger *entity.StockLedger) error {
	query := `
		INSERT INTO stock_ledgers (id, product_id, quantity, threshold, revision, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		ledger.ID, ledger.ProductID, ledger.Quantity, ledger.Threshold,
		ledger.Revision, ledger.CreatedAt, ledger.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert ledger: %w", err)
	}
	return nil
}

// GetByID obtiene un ledger por ID.
func (r *LedgerRepo) GetByID(ctx context.Context, id string) (*entity.StockLedger, error) {
	return r.getOne(ctx, `
		SELECT id, product_id, quantity, threshold, revision, created_at, updated_at
		FROM stock_ledgers WHERE id = $1`, id)
}

// GetByProductID obtiene el ledger del producto.
func (r *LedgerRepo) GetByProductID(ctx context.Context, productID string) (*entity.StockLedger, error) {
	return r.getOne(ctx, `
		SELECT id, product_id, quantity, threshold, revision, created_at, updated_at
		FROM stock_ledgers WHERE product_id = $1`, productID)
}

func (r *LedgerRepo) getOne(ctx context.Context, query, arg string) (*entity.StockLedger, error) {
	var l entity.StockLedger
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&l.ID, &l.ProductID, &l.Quantity, &l.Threshold, &l.Revision, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger: %w", err)
	}
	return &l, nil
}

// CompareAndSwap persiste el ledger mutado solo si la fila sigue en
// expectedRevision. El WHERE sobre revision es lo que hace atómica la
// escritura: cero filas afectadas significa que otro escritor ganó.
func (r *LedgerRepo) CompareAndSwap(ctx context.Context, ledger *entity.StockLedger, expectedRevision int64) (bool, error) {
	query := `
		UPDATE stock_ledgers
		SET quantity = $1, threshold = $2, revision = $3, updated_at = $4
		WHERE product_id = $5 AND revision = $6`
	tag, err := r.q.Exec(ctx, query,
		ledger.Quantity, ledger.Threshold, ledger.Revision, ledger.UpdatedAt,
		ledger.ProductID, expectedRevision,
	)
	if err != nil {
		return false, fmt.Errorf("cas ledger: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListAll inventario completo de productos activos.
func (r *LedgerRepo) ListAll(ctx context.Context) ([]*repository.LedgerView, error) {
	return r.listViews(ctx, ledgerViewSelect+` ORDER BY p.name`)
}

// ListLowStock banda BAJO: sobre la mitad del umbral pero sin superarlo.
func (r *LedgerRepo) ListLowStock(ctx context.Context) ([]*repository.LedgerView, error) {
	return r.listViews(ctx, ledgerViewSelect+`
		WHERE 2 * l.quantity > l.threshold AND l.quantity <= l.threshold
		ORDER BY l.quantity`)
}

// ListCriticalStock banda CRITICO: a lo sumo la mitad del umbral, sin llegar a cero.
func (r *LedgerRepo) ListCriticalStock(ctx context.Context) ([]*repository.LedgerView, error) {
	return r.listViews(ctx, ledgerViewSelect+`
		WHERE l.quantity > 0 AND 2 * l.quantity <= l.threshold
		ORDER BY l.quantity`)
}

// ListZeroStock productos sin existencias.
func (r *LedgerRepo) ListZeroStock(ctx context.Context) ([]*repository.LedgerView, error) {
	return r.listViews(ctx, ledgerViewSelect+` WHERE l.quantity = 0 ORDER BY p.name`)
}

// ListForReplenishment condición urgente: sin existencias o a lo sumo el 20%
// del umbral. Es un corte distinto al de la clasificación por estado.
func (r *LedgerRepo) ListForReplenishment(ctx context.Context) ([]*repository.LedgerView, error) {
	return r.listViews(ctx, ledgerViewSelect+`
		WHERE l.quantity = 0 OR 5 * l.quantity <= l.threshold
		ORDER BY l.quantity`)
}

// ListByCategory inventario de una categoría por nombre.
func (r *LedgerRepo) ListByCategory(ctx context.Context, categoryName string) ([]*repository.LedgerView, error) {
	return r.listViews(ctx, ledgerViewSelect+` WHERE c.name = $1 ORDER BY p.name`, categoryName)
}

// ListByQuantityRange inventario con cantidad dentro de [min, max].
func (r *LedgerRepo) ListByQuantityRange(ctx context.Context, min, max int64) ([]*repository.LedgerView, error) {
	return r.listViews(ctx, ledgerViewSelect+`
		WHERE l.quantity BETWEEN $1 AND $2
		ORDER BY l.quantity`, min, max)
}

// ListUpdatedSince ledgers tocados desde la fecha dada.
func (r *LedgerRepo) ListUpdatedSince(ctx context.Context, since time.Time) ([]*repository.LedgerView, error) {
	return r.listViews(ctx, ledgerViewSelect+` WHERE l.updated_at >= $1 ORDER BY l.updated_at DESC`, since)
}

func (r *LedgerRepo) listViews(ctx context.Context, query string, args ...any) ([]*repository.LedgerView, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledgers: %w", err)
	}
	defer rows.Close()

	var views []*repository.LedgerView
	for rows.Next() {
		var v repository.LedgerView
		if err := rows.Scan(
			&v.Ledger.ID, &v.Ledger.ProductID, &v.Ledger.Quantity, &v.Ledger.Threshold,
			&v.Ledger.Revision, &v.Ledger.CreatedAt, &v.Ledger.UpdatedAt,
			&v.ProductName, &v.CategoryName, &v.Price,
		); err != nil {
			return nil, fmt.Errorf("scan ledger view: %w", err)
		}
		views = append(views, &v)
	}
	return views, rows.Err()
}

// ListProductValues valor de inventario por producto activo.
func (r *LedgerRepo) ListProductValues(ctx context.Context) ([]repository.ProductValue, error) {
	query := `
		SELECT l.product_id, p.name, l.quantity, p.price, p.price * l.quantity
		FROM stock_ledgers l
		JOIN products p ON p.id = l.product_id AND p.active
		ORDER BY p.price * l.quantity DESC, p.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list product values: %w", err)
	}
	defer rows.Close()

	var values []repository.ProductValue
	for rows.Next() {
		var v repository.ProductValue
		if err := rows.Scan(&v.ProductID, &v.ProductName, &v.Quantity, &v.Price, &v.TotalValue); err != nil {
			return nil, fmt.Errorf("scan product value: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// Stats agregados globales del inventario de productos activos.
func (r *LedgerRepo) Stats(ctx context.Context) (*repository.LedgerStats, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(l.quantity), 0),
		       COALESCE(AVG(l.quantity), 0),
		       COUNT(*) FILTER (WHERE l.quantity <= l.threshold)
		FROM stock_ledgers l
		JOIN products p ON p.id = l.product_id AND p.active`
	var stats repository.LedgerStats
	err := r.q.QueryRow(ctx, query).Scan(
		&stats.Count, &stats.TotalQuantity, &stats.AverageQuantity, &stats.BelowThreshold,
	)
	if err != nil {
		return nil, fmt.Errorf("ledger stats: %w", err)
	}
	return &stats, nil
}

// TotalValue valor monetario total del inventario activo.
func (r *LedgerRepo) TotalValue(ctx context.Context) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(p.price * l.quantity), 0)
		FROM stock_ledgers l
		JOIN products p ON p.id = l.product_id AND p.active`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("total value: %w", err)
	}
	return total, nil
}

// CountLowStockByCategory cuántos productos con stock en o bajo el umbral hay
// por categoría.
func (r *LedgerRepo) CountLowStockByCategory(ctx context.Context) ([]repository.CategoryLowStockCount, error) {
	query := `
		SELECT c.name, COUNT(*)
		FROM stock_ledgers l
		JOIN products p ON p.id = l.product_id AND p.active
		JOIN categories c ON c.id = p.category_id
		WHERE l.quantity <= l.threshold
		GROUP BY c.name
		ORDER BY c.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count low stock by category: %w", err)
	}
	defer rows.Close()

	var counts []repository.CategoryLowStockCount
	for rows.Next() {
		var c repository.CategoryLowStockCount
		if err := rows.Scan(&c.CategoryName, &c.Count); err != nil {
			return nil, fmt.Errorf("scan low stock count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// HasSufficientStock verifica si el producto cubre la cantidad requerida.
// Sin ledger la respuesta es false, no error.
func (r *LedgerRepo) HasSufficientStock(ctx context.Context, productID string, required int64) (bool, error) {
	query := `SELECT l.quantity >= $2 FROM stock_ledgers l WHERE l.product_id = $1`
	var sufficient bool
	err := r.q.QueryRow(ctx, query, productID, required).Scan(&sufficient)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("has sufficient stock: %w", err)
	}
	return sufficient, nil
}

// Delete borra un ledger por ID.
func (r *LedgerRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM stock_ledgers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete ledger: %w", err)
	}
	return nil
}

// DeleteByProductID borra el ledger del producto; lo usa la purga permanente.
func (r *LedgerRepo) DeleteByProductID(ctx context.Context, productID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM stock_ledgers WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete ledger by product: %w", err)
	}
	return nil
}
