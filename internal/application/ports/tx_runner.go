package ports

import (
	"context"

	"github.com/jhoicas/sakti-pos/internal/domain/repository"
)

// Repositories agrupa los repositorios de todos los ledgers atados a una misma unidad de trabajo.
type Repositories struct {
	Stock       repository.StockItemRepository
	Sales       repository.SaleRepository
	Suppliers   repository.SupplierOrderRepository
	Receivables repository.ReceivableRepository
	Expenses    repository.ExpenseRepository
	Snapshots   repository.SnapshotRepository
}

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Run hace Commit si fn retorna nil y Rollback en cualquier otro caso: persisten todos los
// ledgers tocados o ninguno. View es de solo lectura y nunca persiste.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repositories) error) error
	View(ctx context.Context, fn func(repos Repositories) error) error
}
