package csvstore

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/sakti-pos/internal/domain"
	"github.com/jhoicas/sakti-pos/internal/domain/entity"
	"github.com/jhoicas/sakti-pos/internal/domain/repository"
	"github.com/jhoicas/sakti-pos/pkg/textsearch"
)

var (
	_ repository.StockItemRepository     = (*stockRepo)(nil)
	_ repository.SaleRepository          = (*saleRepo)(nil)
	_ repository.SupplierOrderRepository = (*supplierRepo)(nil)
	_ repository.ReceivableRepository    = (*receivableRepo)(nil)
	_ repository.ExpenseRepository       = (*expenseRepo)(nil)
	_ repository.SnapshotRepository      = (*snapshotRepo)(nil)
)

// ── Stock ────────────────────────────────────────────────────────────────────

type stockRepo struct{ u *unit }

func stockID(s *entity.StockItem) string { return s.ID }

func (r *stockRepo) Create(_ context.Context, item *entity.StockItem) error {
	if indexByID(r.u.t.stock, item.ID, stockID) >= 0 {
		return domain.ErrDuplicate
	}
	if err := r.u.touch(ledgerStock); err != nil {
		return err
	}
	r.u.t.stock = append(r.u.t.stock, copyOf(item))
	return nil
}

func (r *stockRepo) Update(_ context.Context, item *entity.StockItem) error {
	i := indexByID(r.u.t.stock, item.ID, stockID)
	if i < 0 {
		return domain.ErrNotFound
	}
	if err := r.u.touch(ledgerStock); err != nil {
		return err
	}
	r.u.t.stock[i] = copyOf(item)
	return nil
}

func (r *stockRepo) GetByID(_ context.Context, id string) (*entity.StockItem, error) {
	if i := indexByID(r.u.t.stock, id, stockID); i >= 0 {
		return copyOf(r.u.t.stock[i]), nil
	}
	return nil, nil
}

// GetForUpdate no necesita bloqueo de fila: Run ya tiene el mutex de escritura.
func (r *stockRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error) {
	return r.GetByID(ctx, id)
}

func (r *stockRepo) ListByIdentity(_ context.Context, name, brand, size string) ([]*entity.StockItem, error) {
	want := entity.ItemKey{Name: name, Brand: brand, Size: size}
	var out []*entity.StockItem
	for _, it := range r.u.t.stock {
		if it.Key().SameIdentity(want) {
			out = append(out, copyOf(it))
		}
	}
	return out, nil
}

func (r *stockRepo) List(_ context.Context) ([]*entity.StockItem, error) {
	out := make([]*entity.StockItem, 0, len(r.u.t.stock))
	for _, it := range r.u.t.stock {
		out = append(out, copyOf(it))
	}
	return out, nil
}

func (r *stockRepo) Search(_ context.Context, q string) ([]*entity.StockItem, error) {
	var out []*entity.StockItem
	for _, it := range r.u.t.stock {
		if textsearch.AnyContains(q, it.Name, it.Brand) {
			out = append(out, copyOf(it))
		}
	}
	return out, nil
}

func (r *stockRepo) Delete(_ context.Context, id string) error {
	i := indexByID(r.u.t.stock, id, stockID)
	if i < 0 {
		return domain.ErrNotFound
	}
	if err := r.u.touch(ledgerStock); err != nil {
		return err
	}
	r.u.t.stock = append(r.u.t.stock[:i:i], r.u.t.stock[i+1:]...)
	return nil
}

// ── Sales ────────────────────────────────────────────────────────────────────

type saleRepo struct{ u *unit }

func saleID(s *entity.Sale) string { return s.ID }

func (r *saleRepo) Create(_ context.Context, sale *entity.Sale) error {
	if indexByID(r.u.t.sales, sale.ID, saleID) >= 0 {
		return domain.ErrDuplicate
	}
	if err := r.u.touch(ledgerSales); err != nil {
		return err
	}
	r.u.t.sales = append(r.u.t.sales, copyOf(sale))
	return nil
}

func (r *saleRepo) Update(_ context.Context, sale *entity.Sale) error {
	i := indexByID(r.u.t.sales, sale.ID, saleID)
	if i < 0 {
		return domain.ErrNotFound
	}
	if err := r.u.touch(ledgerSales); err != nil {
		return err
	}
	r.u.t.sales[i] = copyOf(sale)
	return nil
}

func (r *saleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	if i := indexByID(r.u.t.sales, id, saleID); i >= 0 {
		return copyOf(r.u.t.sales[i]), nil
	}
	return nil, nil
}

func (r *saleRepo) List(_ context.Context) ([]*entity.Sale, error) {
	out := make([]*entity.Sale, 0, len(r.u.t.sales))
	for _, s := range r.u.t.sales {
		out = append(out, copyOf(s))
	}
	return out, nil
}

func (r *saleRepo) Search(_ context.Context, q string) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.u.t.sales {
		if textsearch.AnyContains(q, s.Customer.Name, s.Customer.Phone) {
			out = append(out, copyOf(s))
		}
	}
	return out, nil
}

// ── Supplier ─────────────────────────────────────────────────────────────────

type supplierRepo struct{ u *unit }

func supplierID(o *entity.SupplierOrder) string { return o.ID }

func (r *supplierRepo) Create(_ context.Context, order *entity.SupplierOrder) error {
	if indexByID(r.u.t.suppliers, order.ID, supplierID) >= 0 {
		return domain.ErrDuplicate
	}
	if err := r.u.touch(ledgerSuppliers); err != nil {
		return err
	}
	r.u.t.suppliers = append(r.u.t.suppliers, copyOf(order))
	return nil
}

func (r *supplierRepo) Update(_ context.Context, order *entity.SupplierOrder) error {
	i := indexByID(r.u.t.suppliers, order.ID, supplierID)
	if i < 0 {
		return domain.ErrNotFound
	}
	if err := r.u.touch(ledgerSuppliers); err != nil {
		return err
	}
	r.u.t.suppliers[i] = copyOf(order)
	return nil
}

func (r *supplierRepo) GetByID(_ context.Context, id string) (*entity.SupplierOrder, error) {
	if i := indexByID(r.u.t.suppliers, id, supplierID); i >= 0 {
		return copyOf(r.u.t.suppliers[i]), nil
	}
	return nil, nil
}

func (r *supplierRepo) List(_ context.Context) ([]*entity.SupplierOrder, error) {
	out := make([]*entity.SupplierOrder, 0, len(r.u.t.suppliers))
	for _, o := range r.u.t.suppliers {
		out = append(out, copyOf(o))
	}
	return out, nil
}

func (r *supplierRepo) Search(_ context.Context, q string) ([]*entity.SupplierOrder, error) {
	var out []*entity.SupplierOrder
	for _, o := range r.u.t.suppliers {
		if textsearch.AnyContains(q, o.Item.Name, o.Item.Brand) {
			out = append(out, copyOf(o))
		}
	}
	return out, nil
}

// ── Receivables ──────────────────────────────────────────────────────────────

type receivableRepo struct{ u *unit }

func receivableID(v *entity.Receivable) string { return v.ID }

func (r *receivableRepo) Create(_ context.Context, v *entity.Receivable) error {
	if indexByID(r.u.t.receivables, v.ID, receivableID) >= 0 {
		return domain.ErrDuplicate
	}
	if err := r.u.touch(ledgerReceivables); err != nil {
		return err
	}
	r.u.t.receivables = append(r.u.t.receivables, copyOf(v))
	return nil
}

func (r *receivableRepo) Update(_ context.Context, v *entity.Receivable) error {
	i := indexByID(r.u.t.receivables, v.ID, receivableID)
	if i < 0 {
		return domain.ErrNotFound
	}
	if err := r.u.touch(ledgerReceivables); err != nil {
		return err
	}
	r.u.t.receivables[i] = copyOf(v)
	return nil
}

func (r *receivableRepo) GetByID(_ context.Context, id string) (*entity.Receivable, error) {
	if i := indexByID(r.u.t.receivables, id, receivableID); i >= 0 {
		return copyOf(r.u.t.receivables[i]), nil
	}
	return nil, nil
}

func (r *receivableRepo) List(_ context.Context) ([]*entity.Receivable, error) {
	out := make([]*entity.Receivable, 0, len(r.u.t.receivables))
	for _, v := range r.u.t.receivables {
		out = append(out, copyOf(v))
	}
	return out, nil
}

func (r *receivableRepo) Delete(_ context.Context, id string) error {
	i := indexByID(r.u.t.receivables, id, receivableID)
	if i < 0 {
		return domain.ErrNotFound
	}
	if err := r.u.touch(ledgerReceivables); err != nil {
		return err
	}
	r.u.t.receivables = append(r.u.t.receivables[:i:i], r.u.t.receivables[i+1:]...)
	return nil
}

func (r *receivableRepo) DeleteByCustomerName(_ context.Context, name string) (int, error) {
	kept := make([]*entity.Receivable, 0, len(r.u.t.receivables))
	for _, v := range r.u.t.receivables {
		if strings.TrimSpace(v.Customer.Name) != name {
			kept = append(kept, v)
		}
	}
	n := len(r.u.t.receivables) - len(kept)
	if n == 0 {
		return 0, nil
	}
	if err := r.u.touch(ledgerReceivables); err != nil {
		return 0, err
	}
	r.u.t.receivables = kept
	return n, nil
}

// ── Expenses ─────────────────────────────────────────────────────────────────

type expenseRepo struct{ u *unit }

func (r *expenseRepo) Create(_ context.Context, e *entity.ExpenseEntry) error {
	if err := r.u.touch(ledgerExpenses); err != nil {
		return err
	}
	r.u.t.expenses = append(r.u.t.expenses, copyOf(e))
	return nil
}

func (r *expenseRepo) List(_ context.Context) ([]*entity.ExpenseEntry, error) {
	out := make([]*entity.ExpenseEntry, 0, len(r.u.t.expenses))
	for _, e := range r.u.t.expenses {
		out = append(out, copyOf(e))
	}
	return out, nil
}

// ── Snapshots ────────────────────────────────────────────────────────────────

type snapshotRepo struct{ u *unit }

func (r *snapshotRepo) Upsert(_ context.Context, s *entity.FinancialSnapshot) error {
	if err := r.u.touch(ledgerSnapshots); err != nil {
		return err
	}
	for i, cur := range r.u.t.snapshots {
		if cur.Date == s.Date {
			r.u.t.snapshots[i] = copyOf(s)
			return nil
		}
	}
	r.u.t.snapshots = append(r.u.t.snapshots, copyOf(s))
	sort.SliceStable(r.u.t.snapshots, func(a, b int) bool {
		return r.u.t.snapshots[a].Date < r.u.t.snapshots[b].Date
	})
	return nil
}

func (r *snapshotRepo) GetByDate(_ context.Context, date string) (*entity.FinancialSnapshot, error) {
	for _, s := range r.u.t.snapshots {
		if s.Date == date {
			return copyOf(s), nil
		}
	}
	return nil, nil
}

func (r *snapshotRepo) List(_ context.Context) ([]*entity.FinancialSnapshot, error) {
	out := make([]*entity.FinancialSnapshot, 0, len(r.u.t.snapshots))
	for _, s := range r.u.t.snapshots {
		out = append(out, copyOf(s))
	}
	return out, nil
}
