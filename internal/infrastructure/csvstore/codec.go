package csvstore

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sakti-pos/internal/domain/entity"
)

// codec describe el archivo de un ledger: nombre, columnas y conversión fila <-> entidad.
type codec[T any] struct {
	file   string
	header []string
	encode func(*T) []string
	decode func(r row) (*T, error)
}

// row acceso por nombre de columna a un registro leído.
type row struct {
	index map[string]int
	rec   []string
	err   error
}

func (r *row) str(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.rec) {
		return ""
	}
	return r.rec[i]
}

func (r *row) dec(col string) decimal.Decimal {
	s := r.str(col)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("columna %s: %w", col, err)
	}
	return d
}

func (r *row) num(col string) int64 {
	s := r.str(col)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("columna %s: %w", col, err)
	}
	return n
}

func (r *row) ts(col string) time.Time {
	s := r.str(col)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("columna %s: %w", col, err)
	}
	return t
}

func (r *row) date(col string) time.Time {
	s := r.str(col)
	if s == "" {
		return time.Time{}
	}
	t, err := time.ParseInLocation(entity.DateLayout, s, time.Local)
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("columna %s: %w", col, err)
	}
	return t
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(entity.DateLayout)
}

func fmtInt(n int64) string { return strconv.FormatInt(n, 10) }

// read decodifica un archivo completo. La primera fila es el encabezado; "id" es obligatoria.
func (c codec[T]) read(r io.Reader) ([]*T, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.file, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	index := make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		index[col] = i
	}
	if _, ok := index["id"]; !ok {
		return nil, fmt.Errorf("%s: falta la columna id", c.file)
	}
	out := make([]*T, 0, len(records)-1)
	for n, rec := range records[1:] {
		v, err := c.decode(row{index: index, rec: rec})
		if err != nil {
			return nil, fmt.Errorf("%s fila %d: %w", c.file, n+2, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// write escribe encabezado y filas en el orden recibido.
func (c codec[T]) write(w io.Writer, items []*T) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(c.header); err != nil {
		return err
	}
	for _, it := range items {
		if err := cw.Write(c.encode(it)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var stockCodec = codec[entity.StockItem]{
	file:   "stock_items.csv",
	header: []string{"id", "name", "brand", "size", "color", "price", "margin_pct", "quantity", "created_at", "updated_at"},
	encode: func(s *entity.StockItem) []string {
		return []string{
			s.ID, s.Name, s.Brand, s.Size, s.Color,
			s.Price.String(), s.MarginPct.String(), fmtInt(s.Quantity),
			fmtTime(s.CreatedAt), fmtTime(s.UpdatedAt),
		}
	},
	decode: func(r row) (*entity.StockItem, error) {
		s := &entity.StockItem{
			ID:        r.str("id"),
			Name:      r.str("name"),
			Brand:     r.str("brand"),
			Size:      r.str("size"),
			Color:     r.str("color"),
			Price:     r.dec("price"),
			MarginPct: r.dec("margin_pct"),
			Quantity:  r.num("quantity"),
			CreatedAt: r.ts("created_at"),
			UpdatedAt: r.ts("updated_at"),
		}
		return s, r.err
	},
}

var saleCodec = codec[entity.Sale]{
	file: "sales.csv",
	header: []string{
		"id", "customer_name", "customer_phone", "customer_address",
		"item_name", "item_brand", "item_size", "item_color",
		"quantity", "unit_price", "margin_pct", "total", "profit", "sold_at", "updated_at",
	},
	encode: func(s *entity.Sale) []string {
		return []string{
			s.ID, s.Customer.Name, s.Customer.Phone, s.Customer.Address,
			s.Item.Name, s.Item.Brand, s.Item.Size, s.Item.Color,
			fmtInt(s.Quantity), s.UnitPrice.String(), s.MarginPct.String(),
			s.Total.String(), s.Profit.String(), fmtTime(s.SoldAt), fmtTime(s.UpdatedAt),
		}
	},
	decode: func(r row) (*entity.Sale, error) {
		s := &entity.Sale{
			ID: r.str("id"),
			Customer: entity.Customer{
				Name:    r.str("customer_name"),
				Phone:   r.str("customer_phone"),
				Address: r.str("customer_address"),
			},
			Item: entity.ItemKey{
				Name:  r.str("item_name"),
				Brand: r.str("item_brand"),
				Size:  r.str("item_size"),
				Color: r.str("item_color"),
			},
			Quantity:  r.num("quantity"),
			UnitPrice: r.dec("unit_price"),
			MarginPct: r.dec("margin_pct"),
			Total:     r.dec("total"),
			Profit:    r.dec("profit"),
			SoldAt:    r.ts("sold_at"),
			UpdatedAt: r.ts("updated_at"),
		}
		return s, r.err
	},
}

var supplierCodec = codec[entity.SupplierOrder]{
	file: "supplier_orders.csv",
	header: []string{
		"id", "item_name", "item_brand", "item_size", "quantity",
		"supplier_name", "billed_amount", "due_date", "created_at", "updated_at",
	},
	encode: func(o *entity.SupplierOrder) []string {
		return []string{
			o.ID, o.Item.Name, o.Item.Brand, o.Item.Size, fmtInt(o.Quantity),
			o.SupplierName, o.BilledAmount.String(), fmtDate(o.DueDate),
			fmtTime(o.CreatedAt), fmtTime(o.UpdatedAt),
		}
	},
	decode: func(r row) (*entity.SupplierOrder, error) {
		o := &entity.SupplierOrder{
			ID:           r.str("id"),
			Item:         entity.ItemKey{Name: r.str("item_name"), Brand: r.str("item_brand"), Size: r.str("item_size")},
			Quantity:     r.num("quantity"),
			SupplierName: r.str("supplier_name"),
			BilledAmount: r.dec("billed_amount"),
			DueDate:      r.date("due_date"),
			CreatedAt:    r.ts("created_at"),
			UpdatedAt:    r.ts("updated_at"),
		}
		return o, r.err
	},
}

var receivableCodec = codec[entity.Receivable]{
	file: "receivables.csv",
	header: []string{
		"id", "customer_name", "customer_address", "customer_phone",
		"item_name", "item_brand", "item_size", "item_color",
		"quantity", "total", "paid", "remaining", "promised_at", "created_at", "updated_at",
	},
	encode: func(v *entity.Receivable) []string {
		return []string{
			v.ID, v.Customer.Name, v.Customer.Address, v.Customer.Phone,
			v.Item.Name, v.Item.Brand, v.Item.Size, v.Item.Color,
			fmtInt(v.Quantity), v.Total.String(), v.Paid.String(), v.Remaining.String(),
			fmtDate(v.PromisedAt), fmtTime(v.CreatedAt), fmtTime(v.UpdatedAt),
		}
	},
	decode: func(r row) (*entity.Receivable, error) {
		v := &entity.Receivable{
			ID: r.str("id"),
			Customer: entity.Customer{
				Name:    r.str("customer_name"),
				Phone:   r.str("customer_phone"),
				Address: r.str("customer_address"),
			},
			Item: entity.ItemKey{
				Name:  r.str("item_name"),
				Brand: r.str("item_brand"),
				Size:  r.str("item_size"),
				Color: r.str("item_color"),
			},
			Quantity:   r.num("quantity"),
			Total:      r.dec("total"),
			Paid:       r.dec("paid"),
			Remaining:  r.dec("remaining"),
			PromisedAt: r.date("promised_at"),
			CreatedAt:  r.ts("created_at"),
			UpdatedAt:  r.ts("updated_at"),
		}
		return v, r.err
	},
}

var expenseCodec = codec[entity.ExpenseEntry]{
	file:   "expenses.csv",
	header: []string{"id", "category", "amount", "note", "created_at"},
	encode: func(e *entity.ExpenseEntry) []string {
		return []string{e.ID, e.Category, e.Amount.String(), e.Note, fmtTime(e.CreatedAt)}
	},
	decode: func(r row) (*entity.ExpenseEntry, error) {
		e := &entity.ExpenseEntry{
			ID:        r.str("id"),
			Category:  r.str("category"),
			Amount:    r.dec("amount"),
			Note:      r.str("note"),
			CreatedAt: r.ts("created_at"),
		}
		return e, r.err
	},
}

var snapshotCodec = codec[entity.FinancialSnapshot]{
	file: "snapshots.csv",
	header: []string{
		"id", "date", "total_sales", "sales_profit", "month_supplier_bills",
		"total_supplier_bills", "total_expenses", "net_profit", "sales_minus_bills", "taken_at",
	},
	encode: func(s *entity.FinancialSnapshot) []string {
		return []string{
			s.ID, s.Date, s.TotalSales.String(), s.SalesProfit.String(), s.MonthSupplierBills.String(),
			s.TotalSupplierBills.String(), s.TotalExpenses.String(), s.NetProfit.String(),
			s.SalesMinusBills.String(), fmtTime(s.TakenAt),
		}
	},
	decode: func(r row) (*entity.FinancialSnapshot, error) {
		s := &entity.FinancialSnapshot{
			ID:                 r.str("id"),
			Date:               r.str("date"),
			TotalSales:         r.dec("total_sales"),
			SalesProfit:        r.dec("sales_profit"),
			MonthSupplierBills: r.dec("month_supplier_bills"),
			TotalSupplierBills: r.dec("total_supplier_bills"),
			TotalExpenses:      r.dec("total_expenses"),
			NetProfit:          r.dec("net_profit"),
			SalesMinusBills:    r.dec("sales_minus_bills"),
			TakenAt:            r.ts("taken_at"),
		}
		return s, r.err
	},
}
