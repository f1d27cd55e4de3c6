package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-stock/internal/domain"
	"github.com/jhoicas/catalogo-stock/internal/domain/entity"
	"github.com/jhoicas/catalogo-stock/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productSelect = `
	SELECT id, name, description, price, category_id, active, created_at, updated_at
	FROM products`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
// Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un producto nuevo. La columna name_fold tiene constraint
// única y respalda la unicidad sin distinguir mayúsculas ante altas en carrera.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, name_fold, description, price, category_id, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, entity.FoldName(product.Name), product.Description,
		product.Price, product.CategoryID, product.Active, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, productSelect+` WHERE id = $1`, id)
}

// GetByFoldedName busca por nombre normalizado; base de la unicidad.
func (r *ProductRepo) GetByFoldedName(ctx context.Context, nameFold string) (*entity.Product, error) {
	return r.getOne(ctx, productSelect+` WHERE name_fold = $1`, nameFold)
}

func (r *ProductRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.CategoryID, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// ListActive lista los productos activos ordenados por nombre.
func (r *ProductRepo) ListActive(ctx context.Context) ([]*entity.Product, error) {
	return r.list(ctx, productSelect+` WHERE active ORDER BY name`)
}

// ListByCategoryID productos activos de una categoría.
func (r *ProductRepo) ListByCategoryID(ctx context.Context, categoryID string) ([]*entity.Product, error) {
	return r.list(ctx, productSelect+` WHERE active AND category_id = $1 ORDER BY name`, categoryID)
}

// ListByCategoryName productos activos de una categoría por nombre.
func (r *ProductRepo) ListByCategoryName(ctx context.Context, categoryName string) ([]*entity.Product, error) {
	query := `
		SELECT p.id, p.name, p.description, p.price, p.category_id, p.active, p.created_at, p.updated_at
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.active AND c.name = $1
		ORDER BY p.name`
	return r.list(ctx, query, categoryName)
}

// SearchByText busca productos activos por texto en nombre o descripción.
func (r *ProductRepo) SearchByText(ctx context.Context, text string) ([]*entity.Product, error) {
	return r.list(ctx, productSelect+`
		WHERE active AND (name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		ORDER BY name`, text)
}

// ListByPriceRange productos activos con precio dentro de [min, max].
func (r *ProductRepo) ListByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]*entity.Product, error) {
	return r.list(ctx, productSelect+` WHERE active AND price BETWEEN $1 AND $2 ORDER BY price`, min, max)
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.CategoryID, &p.Active, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}

// Update actualiza los campos editables del producto.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $1, name_fold = $2, description = $3, price = $4, category_id = $5, updated_at = $6
		WHERE id = $7`
	_, err := r.q.Exec(ctx, query,
		product.Name, entity.FoldName(product.Name), product.Description,
		product.Price, product.CategoryID, product.UpdatedAt, product.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// SetActive cambia la baja lógica del producto.
func (r *ProductRepo) SetActive(ctx context.Context, id string, active bool) error {
	_, err := r.q.Exec(ctx, `UPDATE products SET active = $1, updated_at = now() WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("set product active: %w", err)
	}
	return nil
}

// Delete borra físicamente la fila; solo lo usa la purga permanente.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
