package stock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-stock/internal/application/dto"
	"github.com/jhoicas/catalogo-stock/internal/domain"
	"github.com/jhoicas/catalogo-stock/internal/domain/entity"
	"github.com/jhoicas/catalogo-stock/internal/domain/repository"
	"github.com/jhoicas/catalogo-stock/pkg/logger"
)

// fakeLedgerRepo almacén en memoria con semántica CompareAndSwap real
// (protegido por mutex), suficiente para ejercitar el ciclo leer-mutar-CAS.
// Los métodos de consulta no usados entran por la interfaz embebida y
// entrarían en pánico si un test los tocara.
type fakeLedgerRepo struct {
	repository.LedgerRepository

	mu       sync.Mutex
	byProd   map[string]*entity.StockLedger
	casCalls int
	// forceConflicts fuerza ese número de CAS fallidos antes de aceptar.
	forceConflicts int
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{byProd: map[string]*entity.StockLedger{}}
}

func (f *fakeLedgerRepo) put(l *entity.StockLedger) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *l
	f.byProd[l.ProductID] = &cp
}

func (f *fakeLedgerRepo) Create(_ context.Context, l *entity.StockLedger) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byProd[l.ProductID]; ok {
		return domain.ErrDuplicate
	}
	cp := *l
	f.byProd[l.ProductID] = &cp
	return nil
}

func (f *fakeLedgerRepo) GetByProductID(_ context.Context, productID string) (*entity.StockLedger, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.byProd[productID]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLedgerRepo) GetByID(_ context.Context, id string) (*entity.StockLedger, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.byProd {
		if l.ID == id {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeLedgerRepo) CompareAndSwap(_ context.Context, l *entity.StockLedger, expectedRevision int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.casCalls++
	if f.forceConflicts > 0 {
		f.forceConflicts--
		return false, nil
	}
	stored, ok := f.byProd[l.ProductID]
	if !ok || stored.Revision != expectedRevision {
		return false, nil
	}
	cp := *l
	f.byProd[l.ProductID] = &cp
	return true, nil
}

type fakeProductRepo struct {
	repository.ProductRepository
	products map[string]*entity.Product
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return f.products[id], nil
}

func newUseCaseForTest(ledgers *fakeLedgerRepo, productIDs ...string) *UseCase {
	products := map[string]*entity.Product{}
	for _, id := range productIDs {
		products[id] = &entity.Product{ID: id, Name: "producto " + id, Active: true}
	}
	return NewUseCase(ledgers, &fakeProductRepo{products: products}, logger.Nop())
}

func seedLedger(repo *fakeLedgerRepo, productID string, quantity, threshold int64) {
	repo.put(&entity.StockLedger{
		ID:        "led-" + productID,
		ProductID: productID,
		Quantity:  quantity,
		Threshold: threshold,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	})
}

func TestCreate_LedgerNuevoEnRevisionCero(t *testing.T) {
	repo := newFakeLedgerRepo()
	uc := newUseCaseForTest(repo, "p1")

	threshold := int64(5)
	resp, err := uc.Create(context.Background(), dto.CreateLedgerRequest{
		ProductID: "p1", InitialQuantity: 10, Threshold: &threshold,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Revision)
	assert.Equal(t, int64(10), resp.Quantity)
	assert.Equal(t, "NORMAL", resp.Status)
}

func TestCreate_ProductoInexistente(t *testing.T) {
	uc := newUseCaseForTest(newFakeLedgerRepo())
	_, err := uc.Create(context.Background(), dto.CreateLedgerRequest{ProductID: "fantasma", InitialQuantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_LedgerDuplicado(t *testing.T) {
	repo := newFakeLedgerRepo()
	seedLedger(repo, "p1", 3, 0)
	uc := newUseCaseForTest(repo, "p1")

	_, err := uc.Create(context.Background(), dto.CreateLedgerRequest{ProductID: "p1", InitialQuantity: 1})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestSetStock_CantidadNegativa(t *testing.T) {
	repo := newFakeLedgerRepo()
	seedLedger(repo, "p1", 5, 2)
	uc := newUseCaseForTest(repo, "p1")

	_, err := uc.SetStock(context.Background(), "p1", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	stored, _ := repo.GetByProductID(context.Background(), "p1")
	assert.Equal(t, int64(5), stored.Quantity, "el estado no debe cambiar")
}

func TestDecreaseStock_InsuficienteNoSeReintenta(t *testing.T) {
	repo := newFakeLedgerRepo()
	seedLedger(repo, "p1", 1, 5)
	uc := newUseCaseForTest(repo, "p1")

	_, err := uc.DecreaseStock(context.Background(), "p1", 2)
	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(1), insufficient.Available)
	assert.Equal(t, int64(2), insufficient.Requested)
	assert.Equal(t, 0, repo.casCalls, "una condición de negocio nunca llega al CAS ni se reintenta")
}

func TestMutacion_ReintentaTrasConflictoYTermina(t *testing.T) {
	repo := newFakeLedgerRepo()
	seedLedger(repo, "p1", 10, 5)
	repo.forceConflicts = 2 // dos CAS fallidos, el tercero entra
	uc := newUseCaseForTest(repo, "p1")

	resp, err := uc.IncreaseStock(context.Background(), "p1", 4)
	require.NoError(t, err)
	assert.Equal(t, int64(14), resp.Ledger.Quantity)
	assert.Equal(t, 3, repo.casCalls)
}

func TestMutacion_ConflictoPersistenteSeSurfacea(t *testing.T) {
	repo := newFakeLedgerRepo()
	seedLedger(repo, "p1", 10, 5)
	repo.forceConflicts = 99
	uc := newUseCaseForTest(repo, "p1")

	_, err := uc.IncreaseStock(context.Background(), "p1", 1)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 3, repo.casCalls, "el reintento es acotado")

	stored, _ := repo.GetByProductID(context.Background(), "p1")
	assert.Equal(t, int64(10), stored.Quantity, "nada se sobrescribe en silencio")
}

func TestDecreaseStock_MutacionInexistente(t *testing.T) {
	uc := newUseCaseForTest(newFakeLedgerRepo())
	_, err := uc.DecreaseStock(context.Background(), "nadie", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestDecrementosConcurrentes_UnSoloGanador: dos callers decrementan 7 sobre
// 10 unidades. El CAS garantiza un ganador por paso de revisión; el perdedor
// relee y encuentra stock insuficiente. Nunca hay saldo negativo.
func TestDecrementosConcurrentes_UnSoloGanador(t *testing.T) {
	repo := newFakeLedgerRepo()
	seedLedger(repo, "p1", 10, 5)
	uc := newUseCaseForTest(repo, "p1")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.DecreaseStock(context.Background(), "p1", 7)
		}(i)
	}
	wg.Wait()

	var okCount, insufficientCount int
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		default:
			var insufficient *domain.InsufficientStockError
			require.ErrorAs(t, err, &insufficient, "el perdedor debe ver stock insuficiente, no corrupción")
			insufficientCount++
		}
	}
	assert.Equal(t, 1, okCount)
	assert.Equal(t, 1, insufficientCount)

	stored, _ := repo.GetByProductID(context.Background(), "p1")
	assert.Equal(t, int64(3), stored.Quantity)
	assert.GreaterOrEqual(t, stored.Quantity, int64(0))
}

func TestDecreaseStock_CruceDisparaAlerta(t *testing.T) {
	repo := newFakeLedgerRepo()
	seedLedger(repo, "p1", 10, 5)
	uc := newUseCaseForTest(repo, "p1")
	ctx := context.Background()

	// NORMAL → BAJO: sin alerta
	resp, err := uc.DecreaseStock(ctx, "p1", 7)
	require.NoError(t, err)
	assert.Equal(t, "BAJO", resp.NewStatus)
	assert.False(t, resp.AlertTriggered)

	// BAJO → CRITICO: alerta
	resp, err = uc.DecreaseStock(ctx, "p1", 2)
	require.NoError(t, err)
	assert.Equal(t, "CRITICO", resp.NewStatus)
	assert.True(t, resp.AlertTriggered)

	// CRITICO → SIN_STOCK: ya estaba en alerta, no vuelve a disparar
	resp, err = uc.DecreaseStock(ctx, "p1", 1)
	require.NoError(t, err)
	assert.Equal(t, "SIN_STOCK", resp.NewStatus)
	assert.False(t, resp.AlertTriggered)
}

func TestUpdate_CantidadYUmbralEnUnPasoDeRevision(t *testing.T) {
	repo := newFakeLedgerRepo()
	seedLedger(repo, "p1", 10, 5)
	uc := newUseCaseForTest(repo, "p1")

	resp, err := uc.Update(context.Background(), "led-p1", dto.UpdateLedgerRequest{Quantity: 4, Threshold: 8})
	require.NoError(t, err)
	assert.Equal(t, int64(4), resp.Quantity)
	assert.Equal(t, int64(8), resp.Threshold)
	assert.Equal(t, int64(1), resp.Revision)
	assert.Equal(t, "BAJO", resp.Status)
}

func TestUpdateThreshold_NoCambiaCantidad(t *testing.T) {
	repo := newFakeLedgerRepo()
	seedLedger(repo, "p1", 10, 5)
	uc := newUseCaseForTest(repo, "p1")

	resp, err := uc.UpdateThreshold(context.Background(), "p1", 20)
	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.Ledger.Quantity)
	assert.Equal(t, int64(20), resp.Ledger.Threshold)
	assert.Equal(t, int64(1), resp.Ledger.Revision)
	assert.Equal(t, "BAJO", resp.Ledger.Status)
}
