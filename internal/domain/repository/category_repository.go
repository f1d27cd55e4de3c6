package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-stock/internal/domain/entity"
)

// CategoryStats agregados por categoría: cuántos productos activos tiene y
// cuánto vale su inventario (Σ precio × cantidad).
type CategoryStats struct {
	CategoryID     string
	Name           string
	ProductCount   int64
	InventoryValue decimal.Decimal
}

// CategoryRepository puerto de persistencia para categorías.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetByFoldedName(ctx context.Context, nameFold string) (*entity.Category, error)
	ListAll(ctx context.Context) ([]*entity.Category, error)
	SearchByText(ctx context.Context, text string) ([]*entity.Category, error)
	ListWithProducts(ctx context.Context) ([]*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) error
	// CountProducts cuenta los productos (activos o no) que referencian la
	// categoría; una categoría con productos no puede eliminarse.
	CountProducts(ctx context.Context, id string) (int64, error)
	Stats(ctx context.Context) ([]CategoryStats, error)
}
