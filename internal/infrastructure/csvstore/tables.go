package csvstore

import "github.com/jhoicas/sakti-pos/internal/domain/entity"

// Nombres de ledger usados para marcar qué archivos reescribir al hacer commit.
const (
	ledgerStock       = "stock"
	ledgerSales       = "sales"
	ledgerSuppliers   = "suppliers"
	ledgerReceivables = "receivables"
	ledgerExpenses    = "expenses"
	ledgerSnapshots   = "snapshots"
)

// ledgerFiles archivo de cada ledger.
var ledgerFiles = map[string]string{
	ledgerStock:       stockCodec.file,
	ledgerSales:       saleCodec.file,
	ledgerSuppliers:   supplierCodec.file,
	ledgerReceivables: receivableCodec.file,
	ledgerExpenses:    expenseCodec.file,
	ledgerSnapshots:   snapshotCodec.file,
}

// tables estado en memoria de todos los ledgers, en el orden de los archivos.
// Las entidades guardadas no se mutan nunca: una escritura reemplaza el puntero,
// así clone() puede copiar solo los slices.
type tables struct {
	stock       []*entity.StockItem
	sales       []*entity.Sale
	suppliers   []*entity.SupplierOrder
	receivables []*entity.Receivable
	expenses    []*entity.ExpenseEntry
	snapshots   []*entity.FinancialSnapshot
}

func (t *tables) clone() *tables {
	return &tables{
		stock:       append([]*entity.StockItem(nil), t.stock...),
		sales:       append([]*entity.Sale(nil), t.sales...),
		suppliers:   append([]*entity.SupplierOrder(nil), t.suppliers...),
		receivables: append([]*entity.Receivable(nil), t.receivables...),
		expenses:    append([]*entity.ExpenseEntry(nil), t.expenses...),
		snapshots:   append([]*entity.FinancialSnapshot(nil), t.snapshots...),
	}
}

// unit unidad de trabajo: la copia de tablas sobre la que operan los repos y los ledgers tocados.
type unit struct {
	t        *tables
	readOnly bool
	dirty    map[string]bool
}

func (u *unit) touch(ledger string) error {
	if u.readOnly {
		return errReadOnly
	}
	u.dirty[ledger] = true
	return nil
}

func copyOf[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func indexByID[T any](items []*T, id string, idOf func(*T) string) int {
	for i, it := range items {
		if idOf(it) == id {
			return i
		}
	}
	return -1
}
