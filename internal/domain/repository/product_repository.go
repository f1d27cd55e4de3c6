package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-stock/internal/domain/entity"
)

// ProductRepository puerto de persistencia para productos.
// Los Get devuelven (nil, nil) cuando el recurso no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetByFoldedName busca por nombre normalizado (case folding); es la base
	// de la unicidad de nombre sin distinguir mayúsculas.
	GetByFoldedName(ctx context.Context, nameFold string) (*entity.Product, error)
	ListActive(ctx context.Context) ([]*entity.Product, error)
	ListByCategoryID(ctx context.Context, categoryID string) ([]*entity.Product, error)
	ListByCategoryName(ctx context.Context, categoryName string) ([]*entity.Product, error)
	SearchByText(ctx context.Context, text string) ([]*entity.Product, error)
	ListByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	SetActive(ctx context.Context, id string, active bool) error
	// Delete borra físicamente la fila; solo lo usa la purga permanente.
	Delete(ctx context.Context, id string) error
}
