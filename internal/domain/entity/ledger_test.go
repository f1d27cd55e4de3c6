package entity_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-stock/internal/domain"
	"github.com/jhoicas/catalogo-stock/internal/domain/entity"
)

func newLedger(quantity, threshold int64) *entity.StockLedger {
	return &entity.StockLedger{
		ID:        "led-1",
		ProductID: "prod-1",
		Quantity:  quantity,
		Threshold: threshold,
		Revision:  0,
	}
}

// TestClassifyStock_Particion verifica que los cuatro predicados particionan
// el espacio (cantidad, umbral) sin solapes ni huecos.
func TestClassifyStock_Particion(t *testing.T) {
	for q := int64(0); q <= 30; q++ {
		for umbral := int64(0); umbral <= 12; umbral++ {
			status := entity.ClassifyStock(q, umbral)
			switch {
			case q == 0:
				assert.Equal(t, entity.StatusSinStock, status, "q=%d umbral=%d", q, umbral)
			case 2*q <= umbral:
				assert.Equal(t, entity.StatusCritico, status, "q=%d umbral=%d", q, umbral)
			case q <= umbral:
				assert.Equal(t, entity.StatusBajo, status, "q=%d umbral=%d", q, umbral)
			default:
				assert.Equal(t, entity.StatusNormal, status, "q=%d umbral=%d", q, umbral)
			}
		}
	}
}

func TestClassifyStock_CasosConocidos(t *testing.T) {
	// umbral 5: 3 es BAJO (3 <= 5 y 3 > 2.5), 1 es CRITICO (1 <= 2.5)
	assert.Equal(t, entity.StatusNormal, entity.ClassifyStock(10, 5))
	assert.Equal(t, entity.StatusBajo, entity.ClassifyStock(3, 5))
	assert.Equal(t, entity.StatusCritico, entity.ClassifyStock(1, 5))
	assert.Equal(t, entity.StatusSinStock, entity.ClassifyStock(0, 5))
	// umbral 0: cualquier cantidad positiva es NORMAL
	assert.Equal(t, entity.StatusNormal, entity.ClassifyStock(1, 0))
	assert.Equal(t, entity.StatusSinStock, entity.ClassifyStock(0, 0))
}

// TestNeedsReplenishment_CorteDistintoDeCritico comprueba que el corte urgente
// del 20% es independiente del 50% de CRITICO.
func TestNeedsReplenishment_CorteDistintoDeCritico(t *testing.T) {
	// umbral 10: q=4 es CRITICO (4 <= 5) pero NO urgente (4 > 2)
	assert.Equal(t, entity.StatusCritico, entity.ClassifyStock(4, 10))
	assert.False(t, entity.NeedsReplenishment(4, 10))

	// q=2 sí es urgente (2 <= 2)
	assert.True(t, entity.NeedsReplenishment(2, 10))
	// sin stock siempre es urgente, incluso con umbral 0
	assert.True(t, entity.NeedsReplenishment(0, 0))
	assert.False(t, entity.NeedsReplenishment(1, 0))
}

func TestSetQuantity_ActualizaYSubeRevision(t *testing.T) {
	l := newLedger(10, 5)
	now := time.Now()

	err := l.SetQuantity(0, 25, now)
	require.NoError(t, err)
	assert.Equal(t, int64(25), l.Quantity)
	assert.Equal(t, int64(1), l.Revision)
	assert.Equal(t, now, l.UpdatedAt)
}

func TestSetQuantity_RechazaNegativa(t *testing.T) {
	l := newLedger(10, 5)
	err := l.SetQuantity(0, -1, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, int64(10), l.Quantity, "el estado no debe cambiar")
	assert.Equal(t, int64(0), l.Revision)
}

func TestMutaciones_RevisionObsoleta(t *testing.T) {
	l := newLedger(10, 5)
	now := time.Now()
	require.NoError(t, l.Increment(0, 5, now)) // revisión pasa a 1

	err := l.SetQuantity(0, 3, now) // revisión 0 ya es obsoleta
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, int64(0), conflict.ExpectedRevision)
	assert.Equal(t, int64(1), conflict.ActualRevision)
	assert.Equal(t, int64(15), l.Quantity, "el estado no debe cambiar")
}

func TestIncrement_RechazaCero(t *testing.T) {
	l := newLedger(10, 5)
	assert.ErrorIs(t, l.Increment(0, 0, time.Now()), domain.ErrInvalidInput)
	assert.ErrorIs(t, l.Increment(0, -3, time.Now()), domain.ErrInvalidInput)
}

// TestDecrement_SecuenciaFinDeSemana reproduce el escenario de extremo a
// extremo: 10 unidades, umbral 5, decrementos sucesivos con el estado derivado
// en cada paso.
func TestDecrement_SecuenciaFinDeSemana(t *testing.T) {
	l := newLedger(10, 5)
	now := time.Now()
	assert.Equal(t, entity.StatusNormal, l.Status())

	require.NoError(t, l.Decrement(0, 7, now))
	assert.Equal(t, int64(3), l.Quantity)
	assert.Equal(t, entity.StatusBajo, l.Status())

	require.NoError(t, l.Decrement(1, 2, now))
	assert.Equal(t, int64(1), l.Quantity)
	assert.Equal(t, entity.StatusCritico, l.Status())

	err := l.Decrement(2, 2, now)
	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(1), insufficient.Available)
	assert.Equal(t, int64(2), insufficient.Requested)
	assert.Equal(t, int64(1), l.Quantity, "un rechazo no modifica la cantidad")
	assert.Equal(t, int64(2), l.Revision, "un rechazo no sube la revisión")
}

func TestDecrement_NuncaDejaNegativo(t *testing.T) {
	l := newLedger(6, 0)
	now := time.Now()
	for _, amount := range []int64{1, 2, 3} {
		require.NoError(t, l.Decrement(l.Revision, amount, now))
	}
	assert.Equal(t, int64(0), l.Quantity)

	err := l.Decrement(l.Revision, 1, now)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Equal(t, int64(0), l.Quantity)
}

func TestRevision_SubeExactamenteUnoPorMutacion(t *testing.T) {
	l := newLedger(0, 3)
	now := time.Now()
	require.NoError(t, l.Increment(0, 10, now))
	require.NoError(t, l.Decrement(1, 4, now))
	require.NoError(t, l.SetQuantity(2, 8, now))
	assert.Equal(t, int64(3), l.Revision)
}
