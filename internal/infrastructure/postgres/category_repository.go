package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalogo-stock/internal/domain"
	"github.com/jhoicas/catalogo-stock/internal/domain/entity"
	"github.com/jhoicas/catalogo-stock/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categorySelect = `
	SELECT id, name, description, created_at, updated_at
	FROM categories`

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL
// (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una categoría nueva.
func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	query := `
		INSERT INTO categories (id, name, name_fold, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		category.ID, category.Name, entity.FoldName(category.Name),
		category.Description, category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return r.getOne(ctx, categorySelect+` WHERE id = $1`, id)
}

// GetByFoldedName busca por nombre normalizado.
func (r *CategoryRepo) GetByFoldedName(ctx context.Context, nameFold string) (*entity.Category, error) {
	return r.getOne(ctx, categorySelect+` WHERE name_fold = $1`, nameFold)
}

func (r *CategoryRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// ListAll lista todas las categorías ordenadas por nombre.
func (r *CategoryRepo) ListAll(ctx context.Context) ([]*entity.Category, error) {
	return r.list(ctx, categorySelect+` ORDER BY name`)
}

// SearchByText busca categorías por texto en el nombre.
func (r *CategoryRepo) SearchByText(ctx context.Context, text string) ([]*entity.Category, error) {
	return r.list(ctx, categorySelect+` WHERE name ILIKE '%' || $1 || '%' ORDER BY name`, text)
}

// ListWithProducts categorías con al menos un producto activo.
func (r *CategoryRepo) ListWithProducts(ctx context.Context) ([]*entity.Category, error) {
	query := `
		SELECT DISTINCT c.id, c.name, c.description, c.created_at, c.updated_at
		FROM categories c
		JOIN products p ON p.category_id = c.id AND p.active
		ORDER BY c.name`
	return r.list(ctx, query)
}

func (r *CategoryRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

// Update actualiza nombre y descripción.
func (r *CategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	query := `
		UPDATE categories
		SET name = $1, name_fold = $2, description = $3, updated_at = $4
		WHERE id = $5`
	_, err := r.q.Exec(ctx, query,
		category.Name, entity.FoldName(category.Name), category.Description,
		category.UpdatedAt, category.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete borra la categoría. La FK desde products convierte el borrado de una
// categoría en uso en conflicto, por si el chequeo previo corrió en carrera.
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// CountProducts cuenta los productos (activos o no) que referencian la categoría.
func (r *CategoryRepo) CountProducts(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE category_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products by category: %w", err)
	}
	return count, nil
}

// Stats productos activos y valor de inventario por categoría.
func (r *CategoryRepo) Stats(ctx context.Context) ([]repository.CategoryStats, error) {
	query := `
		SELECT c.id, c.name,
		       COUNT(p.id) FILTER (WHERE p.active),
		       COALESCE(SUM(p.price * l.quantity) FILTER (WHERE p.active), 0)
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		LEFT JOIN stock_ledgers l ON l.product_id = p.id
		GROUP BY c.id, c.name
		ORDER BY c.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("category stats: %w", err)
	}
	defer rows.Close()

	var stats []repository.CategoryStats
	for rows.Next() {
		var s repository.CategoryStats
		if err := rows.Scan(&s.CategoryID, &s.Name, &s.ProductCount, &s.InventoryValue); err != nil {
			return nil, fmt.Errorf("scan category stats: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
