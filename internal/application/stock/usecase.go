// Package stock implementa el servicio de mutación de stock: creación de
// ledgers, los tres verbos de mutación bajo concurrencia optimista y la
// superficie de consulta del inventario.
package stock

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

// maxMutationAttempts reintentos del ciclo leer-mutar-CAS ante conflicto de
// revisión antes de devolver el conflicto al caller.
const maxMutationAttempts = 3

// UseCase servicio de mutación y consulta de stock. Toda escritura de
// cantidad/umbral pasa por el ciclo leer-mutar-CompareAndSwap.
type UseCase struct {
	ledgerRepo  repository.LedgerRepository
	productRepo repository.ProductRepository
	log         *logger.Logger
}

// NewUseCase construye el servicio.
func NewUseCase(ledgerRepo repository.LedgerRepository, productRepo repository.ProductRepository, log *logger.Logger) *UseCase {
	return &UseCase{ledgerRepo: ledgerRepo, productRepo: productRepo, log: log}
}

// Create crea el ledger de un producto en revisión 0.
// ErrNotFound si el producto no existe, ErrDuplicate si ya tiene ledger.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateLedgerRequest) (*dto.LedgerResponse, error) {
	if in.ProductID == "" || in.InitialQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	threshold := int64(0)
	if in.Threshold != nil {
		if *in.Threshold < 0 {
			return nil, domain.ErrInvalidInput
		}
		threshold = *in.Threshold
	}

	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.ledgerRepo.GetByProductID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	ledger := &entity.StockLedger{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Quantity:  in.InitialQuantity,
		Threshold: threshold,
		Revision:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	// La restricción única de product_id cubre la carrera entre el chequeo
	// de arriba y este insert.
	if err := uc.ledgerRepo.Create(ctx, ledger); err != nil {
		return nil, err
	}
	resp := LedgerToResponse(ledger)
	return &resp, nil
}

// mutación aplicada sobre el ledger ya leído, con su revisión vigente.
type mutation func(l *entity.StockLedger, expectedRevision int64, now time.Time) error

// mutateByProduct ejecuta el ciclo leer-mutar-CAS con reintento acotado.
// Los fallos de negocio (entrada inválida, stock insuficiente) cortan el
// ciclo de inmediato: solo el conflicto de revisión se reintenta, porque la
// precondición puede haber cambiado y debe reevaluarse con estado fresco.
func (uc *UseCase) mutateByProduct(ctx context.Context, productID string, fn mutation) (*dto.MutationResponse, error) {
	for attempt := 1; attempt <= maxMutationAttempts; attempt++ {
		ledger, err := uc.ledgerRepo.GetByProductID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if ledger == nil {
			return nil, domain.ErrNotFound
		}
		previous := ledger.Status()
		expected := ledger.Revision

		if err := fn(ledger, expected, time.Now()); err != nil {
			return nil, err
		}
		ok, err := uc.ledgerRepo.CompareAndSwap(ctx, ledger, expected)
		if err != nil {
			return nil, err
		}
		if !ok {
			uc.log.Warn().
				Str("product_id", productID).
				Int64("expected_revision", expected).
				Int("attempt", attempt).
				Msg("conflicto de revisión en mutación de stock, reintentando")
			continue
		}

		current := ledger.Status()
		alert := crossedIntoAlert(previous, current)
		if alert {
			uc.log.Warn().
				Str("product_id", productID).
				Str("previous_status", string(previous)).
				Str("new_status", string(current)).
				Int64("quantity", ledger.Quantity).
				Msg("el stock cruzó a nivel de alerta")
		}
		return &dto.MutationResponse{
			Ledger:         LedgerToResponse(ledger),
			PreviousStatus: string(previous),
			NewStatus:      string(current),
			AlertTriggered: alert,
		}, nil
	}
	return nil, fmt.Errorf("mutación de stock para producto %s agotó %d intentos: %w",
		productID, maxMutationAttempts, domain.ErrConflict)
}

// crossedIntoAlert detecta el cruce NORMAL/BAJO → CRITICO/SIN_STOCK.
func crossedIntoAlert(previous, current entity.StockStatus) bool {
	wasSafe := previous == entity.StatusNormal || previous == entity.StatusBajo
	isAlert := current == entity.StatusCritico || current == entity.StatusSinStock
	return wasSafe && isAlert
}

// SetStock reemplaza la cantidad del producto.
func (uc *UseCase) SetStock(ctx context.Context, productID string, quantity int64) (*dto.MutationResponse, error) {
	return uc.mutateByProduct(ctx, productID, func(l *entity.StockLedger, expected int64, now time.Time) error {
		return l.SetQuantity(expected, quantity, now)
	})
}

// IncreaseStock suma amount a la cantidad del producto.
func (uc *UseCase) IncreaseStock(ctx context.Context, productID string, amount int64) (*dto.MutationResponse, error) {
	return uc.mutateByProduct(ctx, productID, func(l *entity.StockLedger, expected int64, now time.Time) error {
		return l.Increment(expected, amount, now)
	})
}

// DecreaseStock resta amount a la cantidad del producto. InsufficientStock es
// condición de negocio y no se reintenta; el conflicto de revisión sí.
func (uc *UseCase) DecreaseStock(ctx context.Context, productID string, amount int64) (*dto.MutationResponse, error) {
	return uc.mutateByProduct(ctx, productID, func(l *entity.StockLedger, expected int64, now time.Time) error {
		return l.Decrement(expected, amount, now)
	})
}

// Update actualiza cantidad y umbral de un ledger por ID, bajo la misma
// disciplina de revisión (un solo incremento por actualización).
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateLedgerRequest) (*dto.LedgerResponse, error) {
	if in.Quantity < 0 || in.Threshold < 0 {
		return nil, domain.ErrInvalidInput
	}
	for attempt := 1; attempt <= maxMutationAttempts; attempt++ {
		ledger, err := uc.ledgerRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if ledger == nil {
			return nil, domain.ErrNotFound
		}
		expected := ledger.Revision
		ledger.Threshold = in.Threshold
		if err := ledger.SetQuantity(expected, in.Quantity, time.Now()); err != nil {
			return nil, err
		}
		ok, err := uc.ledgerRepo.CompareAndSwap(ctx, ledger, expected)
		if err != nil {
			return nil, err
		}
		if ok {
			resp := LedgerToResponse(ledger)
			return &resp, nil
		}
	}
	return nil, fmt.Errorf("actualización de ledger %s agotó %d intentos: %w",
		id, maxMutationAttempts, domain.ErrConflict)
}

// UpdateThreshold cambia solo el umbral de reorden del producto.
func (uc *UseCase) UpdateThreshold(ctx context.Context, productID string, threshold int64) (*dto.MutationResponse, error) {
	if threshold < 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.mutateByProduct(ctx, productID, func(l *entity.StockLedger, expected int64, now time.Time) error {
		l.Threshold = threshold
		// La cantidad no cambia; el umbral viaja en el mismo paso de revisión.
		return l.SetQuantity(expected, l.Quantity, now)
	})
}

// ── Superficie de consulta (solo lectura) ────────────────────────────────────

// GetByID obtiene un ledger por su ID.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.LedgerResponse, error) {
	ledger, err := uc.ledgerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ledger == nil {
		return nil, domain.ErrNotFound
	}
	resp := LedgerToResponse(ledger)
	return &resp, nil
}

// GetByProductID obtiene el ledger del producto.
func (uc *UseCase) GetByProductID(ctx context.Context, productID string) (*dto.LedgerResponse, error) {
	ledger, err := uc.ledgerRepo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if ledger == nil {
		return nil, domain.ErrNotFound
	}
	resp := LedgerToResponse(ledger)
	return &resp, nil
}

// ListAll lista todo el inventario de productos activos.
func (uc *UseCase) ListAll(ctx context.Context) ([]dto.LedgerResponse, error) {
	return uc.list(uc.ledgerRepo.ListAll(ctx))
}

// ListLowStock ledgers en la banda BAJO (sobre la mitad del umbral, sin superarlo).
func (uc *UseCase) ListLowStock(ctx context.Context) ([]dto.LedgerResponse, error) {
	return uc.list(uc.ledgerRepo.ListLowStock(ctx))
}

// ListCriticalStock ledgers en la banda CRITICO (a lo sumo la mitad del umbral, sin llegar a cero).
func (uc *UseCase) ListCriticalStock(ctx context.Context) ([]dto.LedgerResponse, error) {
	return uc.list(uc.ledgerRepo.ListCriticalStock(ctx))
}

// ListZeroStock ledgers sin existencias.
func (uc *UseCase) ListZeroStock(ctx context.Context) ([]dto.LedgerResponse, error) {
	return uc.list(uc.ledgerRepo.ListZeroStock(ctx))
}

// ListForReplenishment ledgers bajo la condición urgente del 20%.
func (uc *UseCase) ListForReplenishment(ctx context.Context) ([]dto.LedgerResponse, error) {
	return uc.list(uc.ledgerRepo.ListForReplenishment(ctx))
}

// ListByCategory inventario de una categoría por nombre.
func (uc *UseCase) ListByCategory(ctx context.Context, categoryName string) ([]dto.LedgerResponse, error) {
	if categoryName == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.list(uc.ledgerRepo.ListByCategory(ctx, categoryName))
}

// ListByQuantityRange inventario con cantidad dentro de [min, max].
func (uc *UseCase) ListByQuantityRange(ctx context.Context, min, max int64) ([]dto.LedgerResponse, error) {
	if min < 0 || max < min {
		return nil, domain.ErrInvalidInput
	}
	return uc.list(uc.ledgerRepo.ListByQuantityRange(ctx, min, max))
}

// ListUpdatedSince inventario actualizado desde la fecha dada.
func (uc *UseCase) ListUpdatedSince(ctx context.Context, since time.Time) ([]dto.LedgerResponse, error) {
	return uc.list(uc.ledgerRepo.ListUpdatedSince(ctx, since))
}

// Stats agregados globales: conteo, suma, promedio y bajo umbral.
func (uc *UseCase) Stats(ctx context.Context) (*dto.StockStatsResponse, error) {
	stats, err := uc.ledgerRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.StockStatsResponse{
		Count:           stats.Count,
		TotalQuantity:   stats.TotalQuantity,
		AverageQuantity: stats.AverageQuantity,
		BelowThreshold:  stats.BelowThreshold,
	}, nil
}

// TotalValue valor monetario total del inventario (Σ cantidad × precio).
func (uc *UseCase) TotalValue(ctx context.Context) (*dto.TotalValueResponse, error) {
	total, err := uc.ledgerRepo.TotalValue(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.TotalValueResponse{TotalValue: total}, nil
}

// CountLowStockByCategory conteo de stock bajo agrupado por categoría.
func (uc *UseCase) CountLowStockByCategory(ctx context.Context) ([]dto.CategoryLowStockDTO, error) {
	counts, err := uc.ledgerRepo.CountLowStockByCategory(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryLowStockDTO, 0, len(counts))
	for _, c := range counts {
		out = append(out, dto.CategoryLowStockDTO{CategoryName: c.CategoryName, Count: c.Count})
	}
	return out, nil
}

// HasSufficientStock verifica si el producto cubre la cantidad requerida.
func (uc *UseCase) HasSufficientStock(ctx context.Context, productID string, required int64) (*dto.SufficiencyResponse, error) {
	if required <= 0 {
		return nil, domain.ErrInvalidInput
	}
	ok, err := uc.ledgerRepo.HasSufficientStock(ctx, productID, required)
	if err != nil {
		return nil, err
	}
	return &dto.SufficiencyResponse{ProductID: productID, Required: required, Sufficient: ok}, nil
}

// Delete borra un ledger por ID. Solo lo usa la purga permanente de producto.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	ledger, err := uc.ledgerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if ledger == nil {
		return domain.ErrNotFound
	}
	return uc.ledgerRepo.Delete(ctx, id)
}

func (uc *UseCase) list(views []*repository.LedgerView, err error) ([]dto.LedgerResponse, error) {
	if err != nil {
		return nil, err
	}
	out := make([]dto.LedgerResponse, 0, len(views))
	for _, v := range views {
		out = append(out, ViewToResponse(v))
	}
	return out, nil
}

// LedgerToResponse mapea la entidad con su estado derivado.
func LedgerToResponse(l *entity.StockLedger) dto.LedgerResponse {
	return dto.LedgerResponse{
		ID:                 l.ID,
		ProductID:          l.ProductID,
		Quantity:           l.Quantity,
		Threshold:          l.Threshold,
		Revision:           l.Revision,
		Status:             string(l.Status()),
		NeedsReplenishment: l.NeedsReplenishment(),
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}
}

// ViewToResponse mapea la vista de lectura, incluido el valor de inventario.
func ViewToResponse(v *repository.LedgerView) dto.LedgerResponse {
	resp := LedgerToResponse(&v.Ledger)
	resp.ProductName = v.ProductName
	resp.CategoryName = v.CategoryName
	value := v.InventoryValue()
	resp.InventoryValue = &value
	return resp
}
