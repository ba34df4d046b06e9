// Package excel exporta los ledgers a un libro xlsx con excelize.
package excel

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/sakti-pos/internal/application/ports"
	"github.com/jhoicas/sakti-pos/internal/domain/entity"
)

var _ ports.WorkbookExporter = (*WorkbookExporter)(nil)

// Nombres de hoja, en el orden en que aparecen en el libro.
const (
	SheetStock       = "Stok Barang"
	SheetSales       = "Penjualan"
	SheetSuppliers   = "Supplier"
	SheetExpenses    = "Pengeluaran"
	SheetReceivables = "Piutang Konsumen"
	SheetSnapshots   = "Histori Analisis Keuangan"
	SheetNetProfit   = "Keuntungan Bersih"
)

const timeLayout = "2006-01-02 15:04:05"

// WorkbookExporter implementa ports.WorkbookExporter.
type WorkbookExporter struct{}

// NewWorkbookExporter construye el exportador.
func NewWorkbookExporter() *WorkbookExporter { return &WorkbookExporter{} }

// sheet encabezado y filas de una hoja.
type sheet struct {
	name   string
	header []interface{}
	rows   [][]interface{}
}

// ExportWorkbook arma el libro y devuelve los bytes del xlsx.
func (e *WorkbookExporter) ExportWorkbook(_ context.Context, data ports.WorkbookData) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheets := []sheet{
		stockSheet(data.Stock),
		salesSheet(data.Sales),
		supplierSheet(data.Suppliers),
		expenseSheet(data.Expenses),
		receivableSheet(data.Receivables),
		snapshotSheet(data.Snapshots),
		netProfitSheet(data.NetProfitLine),
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.name); err != nil {
				return nil, fmt.Errorf("excel: hoja %s: %w", s.name, err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return nil, fmt.Errorf("excel: hoja %s: %w", s.name, err)
		}
		if err := writeSheet(f, s); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, s sheet) error {
	header := s.header
	if err := f.SetSheetRow(s.name, "A1", &header); err != nil {
		return fmt.Errorf("excel: encabezado %s: %w", s.name, err)
	}
	for i, r := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := r
		if err := f.SetSheetRow(s.name, cell, &values); err != nil {
			return fmt.Errorf("excel: fila %d de %s: %w", i+2, s.name, err)
		}
	}
	return nil
}

// money celda numérica; el xlsx no guarda decimales arbitrarios.
func money(d decimal.Decimal) float64 { return d.InexactFloat64() }

func stockSheet(items []*entity.StockItem) sheet {
	s := sheet{
		name:   SheetStock,
		header: []interface{}{"ID", "Nama Barang", "Merek", "Ukuran/Kemasan", "Kode Warna", "Harga", "Persentase Keuntungan", "Jumlah Stok"},
	}
	for _, it := range items {
		s.rows = append(s.rows, []interface{}{
			it.ID, it.Name, it.Brand, it.Size, it.Color, money(it.Price), money(it.MarginPct), it.Quantity,
		})
	}
	return s
}

func salesSheet(sales []*entity.Sale) sheet {
	s := sheet{
		name: SheetSales,
		header: []interface{}{
			"ID", "Nama Pelanggan", "Nomor Telepon", "Alamat", "Nama Barang", "Ukuran/Kemasan", "Merk",
			"Kode Warna", "Jumlah", "Harga Satuan", "Total Harga", "Keuntungan", "Waktu",
		},
	}
	for _, v := range sales {
		s.rows = append(s.rows, []interface{}{
			v.ID, v.Customer.Name, v.Customer.Phone, v.Customer.Address,
			v.Item.Name, v.Item.Size, v.Item.Brand, v.Item.Color,
			v.Quantity, money(v.UnitPrice), money(v.Total), money(v.Profit), v.SoldAt.Format(timeLayout),
		})
	}
	return s
}

func supplierSheet(orders []*entity.SupplierOrder) sheet {
	s := sheet{
		name: SheetSuppliers,
		header: []interface{}{
			"ID", "Nama Barang", "Merek", "Ukuran/Kemasan", "Jumlah", "Nama Supplier", "Jumlah Tagihan", "Jatuh Tempo", "Waktu",
		},
	}
	for _, o := range orders {
		s.rows = append(s.rows, []interface{}{
			o.ID, o.Item.Name, o.Item.Brand, o.Item.Size, o.Quantity, o.SupplierName,
			money(o.BilledAmount), o.DueDate.Format(entity.DateLayout), o.CreatedAt.Format(timeLayout),
		})
	}
	return s
}

func expenseSheet(expenses []*entity.ExpenseEntry) sheet {
	s := sheet{
		name:   SheetExpenses,
		header: []interface{}{"ID", "Kategori", "Jumlah", "Keterangan", "Waktu"},
	}
	for _, e := range expenses {
		s.rows = append(s.rows, []interface{}{e.ID, e.Category, money(e.Amount), e.Note, e.CreatedAt.Format(timeLayout)})
	}
	return s
}

func receivableSheet(list []*entity.Receivable) sheet {
	s := sheet{
		name: SheetReceivables,
		header: []interface{}{
			"ID", "Nama Konsumen", "Alamat", "Nomor Telepon", "Nama Barang", "Merek", "Ukuran/Kemasan",
			"Jumlah", "Total Harga", "Cicilan", "Sisa", "Tanggal Janji Bayar",
		},
	}
	for _, r := range list {
		promised := ""
		if !r.PromisedAt.IsZero() {
			promised = r.PromisedAt.Format(entity.DateLayout)
		}
		s.rows = append(s.rows, []interface{}{
			r.ID, r.Customer.Name, r.Customer.Address, r.Customer.Phone,
			r.Item.Name, r.Item.Brand, r.Item.Size, r.Quantity,
			money(r.Total), money(r.Paid), money(r.Remaining), promised,
		})
	}
	return s
}

func snapshotSheet(list []*entity.FinancialSnapshot) sheet {
	s := sheet{
		name: SheetSnapshots,
		header: []interface{}{
			"Tanggal", "Total Penjualan", "Total Keuntungan", "Tagihan Supplier Bulan Ini",
			"Total Tagihan Supplier", "Total Pengeluaran", "Keuntungan Bersih", "Selisih", "Waktu",
		},
	}
	for _, v := range list {
		s.rows = append(s.rows, []interface{}{
			v.Date, money(v.TotalSales), money(v.SalesProfit), money(v.MonthSupplierBills),
			money(v.TotalSupplierBills), money(v.TotalExpenses), money(v.NetProfit),
			money(v.SalesMinusBills), v.TakenAt.Format(timeLayout),
		})
	}
	return s
}

func netProfitSheet(line ports.NetProfitLine) sheet {
	return sheet{
		name:   SheetNetProfit,
		header: []interface{}{"Total Penjualan", "Total Pengeluaran", "Keuntungan Bersih"},
		rows: [][]interface{}{
			{money(line.TotalSales), money(line.TotalExpenses), money(line.NetProfit)},
		},
	}
}
