// Package legacy lee los CSV de la aplicación anterior de la tienda (stok_barang.csv,
// penjualan.csv, supplier.csv) con sus encabezados en indonesio y los convierte a entidades.
package legacy

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/sakti-pos/internal/domain/entity"
)

// Archivos esperados en el directorio de origen.
const (
	StockFile    = "stok_barang.csv"
	SalesFile    = "penjualan.csv"
	SupplierFile = "supplier.csv"
)

// Charsets soportados por Decode.
const (
	CharsetUTF8        = "utf-8"
	CharsetWindows1252 = "windows-1252"
)

var hundred = decimal.NewFromInt(100)

// Formatos que escribe pandas para datetime y date.
var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Decode envuelve r para entregar UTF-8. Quita el BOM si lo hay.
func Decode(r io.Reader, charset string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", CharsetUTF8, "utf8":
		return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())), nil
	case CharsetWindows1252, "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("charset no soportado %q (utf-8|windows-1252)", charset)
	}
}

// table filas de un CSV indexadas por el nombre de la columna.
type table struct {
	name string
	cols map[string]int
	rows [][]string
}

func readTable(name string, r io.Reader, required ...string) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: archivo vacío", name)
	}
	t := &table{name: name, cols: make(map[string]int, len(records[0])), rows: records[1:]}
	for i, h := range records[0] {
		t.cols[strings.TrimSpace(h)] = i
	}
	var missing []string
	for _, col := range required {
		if _, ok := t.cols[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s: faltan columnas %s", name, strings.Join(missing, ", "))
	}
	return t, nil
}

// cell valor recortado; columnas opcionales ausentes devuelven "".
func (t *table) cell(row []string, col string) string {
	i, ok := t.cols[col]
	if !ok || i >= len(row) {
		return ""
	}
	v := strings.TrimSpace(row[i])
	if strings.EqualFold(v, "nan") {
		return ""
	}
	return v
}

func (t *table) dec(row []string, line int, col string) (decimal.Decimal, error) {
	v := t.cell(row, col)
	if v == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s línea %d: %s %q no es numérico", t.name, line, col, v)
	}
	return d, nil
}

// qty acepta "5" y también "5.0" (pandas convierte a float las columnas con vacíos).
func (t *table) qty(row []string, line int, col string) (int64, error) {
	d, err := t.dec(row, line, col)
	if err != nil {
		return 0, err
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("%s línea %d: %s debe ser entero", t.name, line, col)
	}
	return d.IntPart(), nil
}

// nonNegative error de línea si d es negativo.
func (t *table) nonNegative(line int, col string, d decimal.Decimal) error {
	if d.IsNegative() {
		return fmt.Errorf("%s línea %d: %s no puede ser negativo (%s)", t.name, line, col, d)
	}
	return nil
}

// percent error de línea si d está fuera de 0..100.
func (t *table) percent(line int, col string, d decimal.Decimal) error {
	if d.IsNegative() || d.GreaterThan(hundred) {
		return fmt.Errorf("%s línea %d: %s debe estar entre 0 y 100 (%s)", t.name, line, col, d)
	}
	return nil
}

func (t *table) when(row []string, line int, col string, loc *time.Location) (time.Time, error) {
	v := t.cell(row, col)
	if v == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if ts, err := time.ParseInLocation(layout, v, loc); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("%s línea %d: %s %q no es una fecha", t.name, line, col, v)
}

// Reader convierte los CSV legados. Las fechas sin zona se interpretan en Location;
// las filas sin fecha reciben Now.
type Reader struct {
	Location *time.Location
	Now      func() time.Time
}

// NewReader construye un Reader con hora local.
func NewReader() *Reader {
	return &Reader{Location: time.Local, Now: time.Now}
}

func (rd *Reader) orNow(t time.Time) time.Time {
	if t.IsZero() {
		return rd.Now()
	}
	return t
}

// ReadStock lee stok_barang.csv.
func (rd *Reader) ReadStock(r io.Reader) ([]*entity.StockItem, error) {
	t, err := readTable(StockFile, r, "Nama Barang", "Merk", "Ukuran/Kemasan", "Harga", "Stok")
	if err != nil {
		return nil, err
	}
	var (
		out  []*entity.StockItem
		errs []error
	)
	for i, row := range t.rows {
		line := i + 2
		price, err1 := t.dec(row, line, "Harga")
		stock, err2 := t.qty(row, line, "Stok")
		margin, err3 := t.dec(row, line, "Persentase Keuntungan")
		created, err4 := t.when(row, line, "Waktu Input", rd.Location)
		if err := errors.Join(err1, err2, err3, err4); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := errors.Join(
			t.nonNegative(line, "Harga", price),
			t.nonNegative(line, "Stok", decimal.NewFromInt(stock)),
			t.percent(line, "Persentase Keuntungan", margin),
		); err != nil {
			errs = append(errs, err)
			continue
		}
		key := entity.ItemKey{
			Name:  t.cell(row, "Nama Barang"),
			Brand: t.cell(row, "Merk"),
			Size:  t.cell(row, "Ukuran/Kemasan"),
			Color: t.cell(row, "Kode Warna"),
		}.Normalize()
		if !key.Valid() {
			errs = append(errs, fmt.Errorf("%s línea %d: nombre, marca y tamaño son obligatorios", t.name, line))
			continue
		}
		created = rd.orNow(created)
		out = append(out, &entity.StockItem{
			ID:        uuid.NewString(),
			Name:      key.Name,
			Brand:     key.Brand,
			Size:      key.Size,
			Color:     key.Color,
			Price:     price,
			MarginPct: margin,
			Quantity:  stock,
			CreatedAt: created,
			UpdatedAt: created,
		})
	}
	return out, errors.Join(errs...)
}

// ReadSales lee penjualan.csv. Total y ganancia se conservan tal cual; precio unitario y
// margen se derivan de ellos.
func (rd *Reader) ReadSales(r io.Reader) ([]*entity.Sale, error) {
	t, err := readTable(SalesFile, r, "Nama Pelanggan", "Nama Barang", "Ukuran/Kemasan", "Merk", "Jumlah", "Total Harga")
	if err != nil {
		return nil, err
	}
	var (
		out  []*entity.Sale
		errs []error
	)
	for i, row := range t.rows {
		line := i + 2
		qty, err1 := t.qty(row, line, "Jumlah")
		total, err2 := t.dec(row, line, "Total Harga")
		profit, err3 := t.dec(row, line, "Keuntungan")
		soldAt, err4 := t.when(row, line, "Waktu", rd.Location)
		if err := errors.Join(err1, err2, err3, err4); err != nil {
			errs = append(errs, err)
			continue
		}
		if qty <= 0 {
			errs = append(errs, fmt.Errorf("%s línea %d: Jumlah debe ser mayor que cero", t.name, line))
			continue
		}
		if err := t.nonNegative(line, "Total Harga", total); err != nil {
			errs = append(errs, err)
			continue
		}
		unit := total.Div(decimal.NewFromInt(qty))
		margin := decimal.Zero
		if total.IsPositive() {
			margin = profit.Mul(hundred).Div(total)
		}
		soldAt = rd.orNow(soldAt)
		out = append(out, &entity.Sale{
			ID: uuid.NewString(),
			Customer: entity.Customer{
				Name:    t.cell(row, "Nama Pelanggan"),
				Phone:   t.cell(row, "Nomor Telepon"),
				Address: t.cell(row, "Alamat"),
			},
			Item: entity.ItemKey{
				Name:  t.cell(row, "Nama Barang"),
				Brand: t.cell(row, "Merk"),
				Size:  t.cell(row, "Ukuran/Kemasan"),
				Color: t.cell(row, "Kode Warna"),
			}.Normalize(),
			Quantity:  qty,
			UnitPrice: unit,
			MarginPct: margin,
			Total:     total,
			Profit:    profit,
			SoldAt:    soldAt,
			UpdatedAt: soldAt,
		})
	}
	return out, errors.Join(errs...)
}

// ReadSuppliers lee supplier.csv. Sin "Jatuh Tempo" el vencimiento es la fecha del pedido.
func (rd *Reader) ReadSuppliers(r io.Reader) ([]*entity.SupplierOrder, error) {
	t, err := readTable(SupplierFile, r, "Nama Barang", "Merk", "Ukuran/Kemasan", "Jumlah Barang", "Nama Supplier", "Tagihan")
	if err != nil {
		return nil, err
	}
	var (
		out  []*entity.SupplierOrder
		errs []error
	)
	for i, row := range t.rows {
		line := i + 2
		qty, err1 := t.qty(row, line, "Jumlah Barang")
		billed, err2 := t.dec(row, line, "Tagihan")
		created, err3 := t.when(row, line, "Waktu", rd.Location)
		due, err4 := t.when(row, line, "Jatuh Tempo", rd.Location)
		if err := errors.Join(err1, err2, err3, err4); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := errors.Join(
			t.nonNegative(line, "Jumlah Barang", decimal.NewFromInt(qty)),
			t.nonNegative(line, "Tagihan", billed),
		); err != nil {
			errs = append(errs, err)
			continue
		}
		key := entity.ItemKey{
			Name:  t.cell(row, "Nama Barang"),
			Brand: t.cell(row, "Merk"),
			Size:  t.cell(row, "Ukuran/Kemasan"),
		}.Normalize()
		supplierName := t.cell(row, "Nama Supplier")
		if !key.Valid() || supplierName == "" {
			errs = append(errs, fmt.Errorf("%s línea %d: nombre, marca, tamaño y proveedor son obligatorios", t.name, line))
			continue
		}
		created = rd.orNow(created)
		if due.IsZero() {
			due = created
		}
		y, m, d := due.Date()
		out = append(out, &entity.SupplierOrder{
			ID: uuid.NewString(),
			Item:         key,
			Quantity:     qty,
			SupplierName: supplierName,
			BilledAmount: billed,
			DueDate:      time.Date(y, m, d, 0, 0, 0, 0, rd.Location),
			CreatedAt:    created,
			UpdatedAt:    created,
		})
	}
	return out, errors.Join(errs...)
}
