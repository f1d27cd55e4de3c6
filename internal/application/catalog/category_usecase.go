package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/catalogo-stock/internal/application/dto"
	"github.com/jhoicas/catalogo-stock/internal/domain"
	"github.com/jhoicas/catalogo-stock/internal/domain/entity"
	"github.com/jhoicas/catalogo-stock/internal/domain/repository"
	"github.com/jhoicas/catalogo-stock/pkg/logger"
)

// CategoryUseCase casos de uso de categorías.
type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
	log          *logger.Logger
}

// NewCategoryUseCase construye el caso de uso de categorías.
func NewCategoryUseCase(categoryRepo repository.CategoryRepository, log *logger.Logger) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo, log: log}
}

// Create crea una categoría. El nombre es único sin distinguir mayúsculas.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.categoryRepo.GetByFoldedName(ctx, entity.FoldName(in.Name))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("ya existe una categoría con nombre %q: %w", in.Name, domain.ErrDuplicate)
	}

	now := time.Now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	resp := CategoryToResponse(category)
	return &resp, nil
}

// GetByID obtiene una categoría por ID.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	resp := CategoryToResponse(category)
	return &resp, nil
}

// ListAll lista todas las categorías.
func (uc *CategoryUseCase) ListAll(ctx context.Context) ([]dto.CategoryResponse, error) {
	return uc.list(uc.categoryRepo.ListAll(ctx))
}

// SearchByText busca categorías por texto en el nombre.
func (uc *CategoryUseCase) SearchByText(ctx context.Context, text string) ([]dto.CategoryResponse, error) {
	if text == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.list(uc.categoryRepo.SearchByText(ctx, text))
}

// ListWithProducts categorías con al menos un producto activo.
func (uc *CategoryUseCase) ListWithProducts(ctx context.Context) ([]dto.CategoryResponse, error) {
	return uc.list(uc.categoryRepo.ListWithProducts(ctx))
}

// Update actualiza nombre o descripción; el cambio de nombre revalida la
// unicidad.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		if entity.FoldName(*in.Name) != entity.FoldName(category.Name) {
			other, err := uc.categoryRepo.GetByFoldedName(ctx, entity.FoldName(*in.Name))
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != category.ID {
				return nil, fmt.Errorf("ya existe una categoría con nombre %q: %w", *in.Name, domain.ErrDuplicate)
			}
		}
		category.Name = *in.Name
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	category.UpdatedAt = time.Now()

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	resp := CategoryToResponse(category)
	return &resp, nil
}

// Delete elimina una categoría sin productos. Con productos asociados la
// eliminación se rechaza con conflicto.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	count, err := uc.categoryRepo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("la categoría %q tiene %d productos asociados: %w", category.Name, count, domain.ErrConflict)
	}
	return uc.categoryRepo.Delete(ctx, id)
}

// Stats agregados por categoría: productos activos y valor de inventario.
func (uc *CategoryUseCase) Stats(ctx context.Context) ([]dto.CategoryStatsDTO, error) {
	stats, err := uc.categoryRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryStatsDTO, 0, len(stats))
	for _, s := range stats {
		out = append(out, dto.CategoryStatsDTO{
			CategoryID:     s.CategoryID,
			Name:           s.Name,
			ProductCount:   s.ProductCount,
			InventoryValue: s.InventoryValue,
		})
	}
	return out, nil
}

func (uc *CategoryUseCase) list(categories []*entity.Category, err error) ([]dto.CategoryResponse, error) {
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryToResponse(c))
	}
	return out, nil
}

// CategoryToResponse mapea la entidad a su DTO.
func CategoryToResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
