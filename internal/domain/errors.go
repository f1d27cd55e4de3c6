package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrConflict              = errors.New("conflicto de concurrencia")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrDependencyUnavailable = errors.New("dependencia no disponible")
)

// InsufficientStockError indica que un decremento pidió más unidades de las
// disponibles. Es una condición de negocio: el caller decide con
// Available/Requested, nunca se reintenta con cantidades ajustadas.
type InsufficientStockError struct {
	ProductID string
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s: disponible %d, solicitado %d",
		e.ProductID, e.Available, e.Requested)
}

// Is permite errors.Is(err, domain.ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// ConflictError indica que la revisión esperada no coincide con la almacenada.
// El caller debe releer el estado y reintentar; nunca se sobrescribe en silencio.
type ConflictError struct {
	ProductID        string
	ExpectedRevision int64
	ActualRevision   int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicto de revisión para producto %s: esperada %d, actual %d",
		e.ProductID, e.ExpectedRevision, e.ActualRevision)
}

// Is permite errors.Is(err, domain.ErrConflict).
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
