// Package catalog implementa los casos de uso del catálogo: productos y
// categorías, con unicidad de nombre sin distinguir mayúsculas y alta
// transaccional de producto con su ledger de stock.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-stock/internal/application/dto"
	"github.com/jhoicas/catalogo-stock/internal/domain"
	"github.com/jhoicas/catalogo-stock/internal/domain/entity"
	"github.com/jhoicas/catalogo-stock/internal/domain/repository"
	"github.com/jhoicas/catalogo-stock/pkg/logger"
)

// ProductUseCase casos de uso de productos.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	ledgerRepo   repository.LedgerRepository
	tx           repository.TxRunner
	log          *logger.Logger
}

// NewProductUseCase construye el caso de uso de productos.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	ledgerRepo repository.LedgerRepository,
	tx repository.TxRunner,
	log *logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		ledgerRepo:   ledgerRepo,
		tx:           tx,
		log:          log,
	}
}

// Create crea un producto activo. Si la petición trae cantidad inicial, el
// ledger de stock se crea en la misma transacción: o existen ambos o ninguno.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.CategoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Price.IsPositive() {
		return nil, fmt.Errorf("el precio debe ser mayor que cero: %w", domain.ErrInvalidInput)
	}
	if in.InitialQuantity != nil && *in.InitialQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Threshold != nil && *in.Threshold < 0 {
		return nil, domain.ErrInvalidInput
	}

	category, err := uc.categoryRepo.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("categoría %s: %w", in.CategoryID, domain.ErrNotFound)
	}
	existing, err := uc.productRepo.GetByFoldedName(ctx, entity.FoldName(in.Name))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("ya existe un producto con nombre %q: %w", in.Name, domain.ErrDuplicate)
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		CategoryID:  in.CategoryID,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if in.InitialQuantity == nil {
		if err := uc.productRepo.Create(ctx, product); err != nil {
			return nil, err
		}
		resp := ProductToResponse(product)
		return &resp, nil
	}

	threshold := int64(0)
	if in.Threshold != nil {
		threshold = *in.Threshold
	}
	ledger := &entity.StockLedger{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Quantity:  *in.InitialQuantity,
		Threshold: threshold,
		Revision:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = uc.tx.RunInTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if err := repos.Products.Create(ctx, product); err != nil {
			return err
		}
		return repos.Ledgers.Create(ctx, ledger)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("product_id", product.ID).
		Int64("initial_quantity", ledger.Quantity).
		Msg("producto creado con ledger de stock")
	resp := ProductToResponse(product)
	resp.Stock = &ledger.Quantity
	resp.StockStatus = string(ledger.Status())
	return &resp, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	resp := ProductToResponse(product)
	return &resp, nil
}

// ListActive lista los productos activos.
func (uc *ProductUseCase) ListActive(ctx context.Context) ([]dto.ProductResponse, error) {
	return uc.list(uc.productRepo.ListActive(ctx))
}

// ListByCategoryID productos activos de una categoría.
func (uc *ProductUseCase) ListByCategoryID(ctx context.Context, categoryID string) ([]dto.ProductResponse, error) {
	if categoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.list(uc.productRepo.ListByCategoryID(ctx, categoryID))
}

// ListByCategoryName productos activos de una categoría por nombre.
func (uc *ProductUseCase) ListByCategoryName(ctx context.Context, categoryName string) ([]dto.ProductResponse, error) {
	if categoryName == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.list(uc.productRepo.ListByCategoryName(ctx, categoryName))
}

// SearchByText busca productos por texto en nombre o descripción.
func (uc *ProductUseCase) SearchByText(ctx context.Context, text string) ([]dto.ProductResponse, error) {
	if text == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.list(uc.productRepo.SearchByText(ctx, text))
}

// ListByPriceRange productos activos con precio dentro de [min, max].
func (uc *ProductUseCase) ListByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]dto.ProductResponse, error) {
	if min.IsNegative() || max.LessThan(min) {
		return nil, domain.ErrInvalidInput
	}
	return uc.list(uc.productRepo.ListByPriceRange(ctx, min, max))
}

// ListProductValues valor de inventario por producto (precio × cantidad).
func (uc *ProductUseCase) ListProductValues(ctx context.Context) ([]dto.ProductValueDTO, error) {
	values, err := uc.ledgerRepo.ListProductValues(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductValueDTO, 0, len(values))
	for _, v := range values {
		out = append(out, dto.ProductValueDTO{
			ProductID:   v.ProductID,
			ProductName: v.ProductName,
			Quantity:    v.Quantity,
			Price:       v.Price,
			TotalValue:  v.TotalValue,
		})
	}
	return out, nil
}

// Update actualiza campos del producto. El cambio de nombre revalida la
// unicidad y el cambio de categoría exige que la categoría exista.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		if entity.FoldName(*in.Name) != entity.FoldName(product.Name) {
			other, err := uc.productRepo.GetByFoldedName(ctx, entity.FoldName(*in.Name))
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != product.ID {
				return nil, fmt.Errorf("ya existe un producto con nombre %q: %w", *in.Name, domain.ErrDuplicate)
			}
		}
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if !in.Price.IsPositive() {
			return nil, fmt.Errorf("el precio debe ser mayor que cero: %w", domain.ErrInvalidInput)
		}
		product.Price = *in.Price
	}
	if in.CategoryID != nil {
		category, err := uc.categoryRepo.GetByID(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, fmt.Errorf("categoría %s: %w", *in.CategoryID, domain.ErrNotFound)
		}
		product.CategoryID = *in.CategoryID
	}
	product.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	resp := ProductToResponse(product)
	return &resp, nil
}

// Deactivate baja lógica: el producto deja de aparecer en listados e informes
// pero conserva su fila y su ledger.
func (uc *ProductUseCase) Deactivate(ctx context.Context, id string) error {
	return uc.setActive(ctx, id, false)
}

// Reactivate revierte la baja lógica.
func (uc *ProductUseCase) Reactivate(ctx context.Context, id string) error {
	return uc.setActive(ctx, id, true)
}

func (uc *ProductUseCase) setActive(ctx context.Context, id string, active bool) error {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if product.Active == active {
		return nil
	}
	return uc.productRepo.SetActive(ctx, id, active)
}

// PermanentDelete purga físicamente el producto y su ledger en una sola
// transacción. Operación administrativa; el flujo normal es Deactivate.
func (uc *ProductUseCase) PermanentDelete(ctx context.Context, id string) error {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	err = uc.tx.RunInTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if err := repos.Ledgers.DeleteByProductID(ctx, id); err != nil {
			return err
		}
		return repos.Products.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Warn().Str("product_id", id).Msg("producto purgado permanentemente")
	return nil
}

func (uc *ProductUseCase) list(products []*entity.Product, err error) ([]dto.ProductResponse, error) {
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ProductToResponse(p))
	}
	return out, nil
}

// ProductToResponse mapea la entidad a su DTO (sin campos de stock).
func ProductToResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		CategoryID:  p.CategoryID,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
