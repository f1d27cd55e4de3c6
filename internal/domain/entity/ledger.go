package entity

import (
	"time"

	"github.com/jhoicas/catalogo-stock/internal/domain"
)

// StockStatus clasificación derivada del nivel de stock. No se persiste:
// siempre se calcula desde (cantidad, umbral) con ClassifyStock.
type StockStatus string

const (
	StatusSinStock StockStatus = "SIN_STOCK"
	StatusCritico  StockStatus = "CRITICO"
	StatusBajo     StockStatus = "BAJO"
	StatusNormal   StockStatus = "NORMAL"
)

// StockLedger es el registro de existencias de un producto: cantidad actual,
// umbral de reorden y contador de revisión para concurrencia optimista.
// Exactamente un ledger por producto. Toda mutación pasa por las primitivas
// SetQuantity/Increment/Decrement; ningún otro componente escribe Quantity.
type StockLedger struct {
	ID        string
	ProductID string
	Quantity  int64 // nunca negativa
	Threshold int64 // umbral de reorden (>= 0)
	Revision  int64 // crece en exactamente 1 por mutación exitosa
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClassifyStock es la única implementación de la clasificación de stock.
// Los cortes usan aritmética entera para evitar bordes de coma flotante:
// 2q <= t equivale a q <= 0.5t.
//
//	SIN_STOCK  cantidad == 0
//	CRITICO    0 < cantidad <= umbral*0.5
//	BAJO       umbral*0.5 < cantidad <= umbral
//	NORMAL     cantidad > umbral
func ClassifyStock(quantity, threshold int64) StockStatus {
	switch {
	case quantity == 0:
		return StatusSinStock
	case 2*quantity <= threshold:
		return StatusCritico
	case quantity <= threshold:
		return StatusBajo
	default:
		return StatusNormal
	}
}

// NeedsReplenishment es la condición de reabastecimiento urgente: sin stock o
// cantidad <= umbral*0.2 (5q <= t). El corte del 20% es deliberadamente
// distinto del 50% de CRITICO; no colapsar los dos.
func NeedsReplenishment(quantity, threshold int64) bool {
	return quantity == 0 || 5*quantity <= threshold
}

// Status clasifica el estado actual del ledger.
func (l *StockLedger) Status() StockStatus {
	return ClassifyStock(l.Quantity, l.Threshold)
}

// NeedsReplenishment indica si el ledger requiere reabastecimiento urgente.
func (l *StockLedger) NeedsReplenishment() bool {
	return NeedsReplenishment(l.Quantity, l.Threshold)
}

// checkRevision valida la disciplina de concurrencia optimista.
func (l *StockLedger) checkRevision(expected int64) error {
	if expected != l.Revision {
		return &domain.ConflictError{
			ProductID:        l.ProductID,
			ExpectedRevision: expected,
			ActualRevision:   l.Revision,
		}
	}
	return nil
}

// bump registra una mutación exitosa: revisión +1 y sello de tiempo.
func (l *StockLedger) bump(now time.Time) {
	l.Revision++
	l.UpdatedAt = now
}

// SetQuantity reemplaza la cantidad bajo la disciplina de revisión.
// Falla con ErrInvalidInput si newQuantity < 0 y con ConflictError si la
// revisión esperada no coincide.
func (l *StockLedger) SetQuantity(expectedRevision, newQuantity int64, now time.Time) error {
	if newQuantity < 0 {
		return domain.ErrInvalidInput
	}
	if err := l.checkRevision(expectedRevision); err != nil {
		return err
	}
	l.Quantity = newQuantity
	l.bump(now)
	return nil
}

// Increment suma amount (> 0) a la cantidad bajo la disciplina de revisión.
func (l *StockLedger) Increment(expectedRevision, amount int64, now time.Time) error {
	if amount <= 0 {
		return domain.ErrInvalidInput
	}
	if err := l.checkRevision(expectedRevision); err != nil {
		return err
	}
	l.Quantity += amount
	l.bump(now)
	return nil
}

// Decrement resta amount (> 0) a la cantidad bajo la disciplina de revisión.
// Si amount > cantidad devuelve InsufficientStockError sin tocar el estado:
// el caller distingue esta condición de negocio (parar) de un
// ConflictError (releer y reintentar).
func (l *StockLedger) Decrement(expectedRevision, amount int64, now time.Time) error {
	if amount <= 0 {
		return domain.ErrInvalidInput
	}
	if err := l.checkRevision(expectedRevision); err != nil {
		return err
	}
	if amount > l.Quantity {
		return &domain.InsufficientStockError{
			ProductID: l.ProductID,
			Available: l.Quantity,
			Requested: amount,
		}
	}
	l.Quantity -= amount
	l.bump(now)
	return nil
}
