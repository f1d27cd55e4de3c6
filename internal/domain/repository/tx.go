package repository

import "context"

// Repositories repositorios ligados a una misma transacción.
type Repositories struct {
	Products   ProductRepository
	Categories CategoryRepository
	Ledgers    LedgerRepository
}

// TxRunner ejecuta fn dentro de una transacción. Si fn devuelve error la
// transacción se revierte completa; se usa para operaciones que tocan producto
// y ledger a la vez (alta con stock inicial, purga permanente).
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
