package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// Product representa un producto del catálogo. Posee a lo sumo un StockLedger
// (1:1). La baja es lógica (Active=false); los flujos normales nunca borran
// la fila.
type Product struct {
	ID          string
	Name        string // único (sin distinguir mayúsculas)
	Description string
	Price       decimal.Decimal // > 0, dos decimales
	CategoryID  string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InventoryValue devuelve precio × cantidad para el ledger dado.
func (p *Product) InventoryValue(quantity int64) decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(quantity))
}

// FoldName normaliza un nombre para comparación de unicidad: recorta espacios
// y aplica case folding Unicode ("Teclado" y "TECLADO" colisionan).
func FoldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
