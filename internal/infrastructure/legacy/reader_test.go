package legacy_test

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/sakti-pos/internal/infrastructure/legacy"
)

var importedAt = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

func newReader() *legacy.Reader {
	return &legacy.Reader{Location: time.UTC, Now: func() time.Time { return importedAt }}
}

func TestReadStock_ColumnasLegadas(t *testing.T) {
	in := "ID,Nama Barang,Merk,Ukuran/Kemasan,Harga,Stok,Persentase Keuntungan,Waktu Input\n" +
		"1,Cat Tembok ,Avian,5L,100000.0,12.0,20.0,2024-05-01 13:45:12.123456\n" +
		"2,Semen,Tiga Roda,50kg,65000,3,,\n"

	items, err := newReader().ReadStock(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Cat Tembok", items[0].Name)
	assert.Equal(t, "100000", items[0].Price.String())
	assert.EqualValues(t, 12, items[0].Quantity)
	assert.Equal(t, "20", items[0].MarginPct.String())
	assert.Equal(t, time.Date(2024, 5, 1, 13, 45, 12, 123456000, time.UTC), items[0].CreatedAt)

	assert.True(t, items[1].MarginPct.IsZero())
	assert.Equal(t, importedAt, items[1].CreatedAt)
	assert.NotEqual(t, items[0].ID, items[1].ID)
}

func TestReadStock_FilasInvalidasSeReportanYLasDemasSiguen(t *testing.T) {
	in := "Nama Barang,Merk,Ukuran/Kemasan,Harga,Stok\n" +
		"Cat Tembok,Avian,5L,abc,1\n" +
		"Semen,Tiga Roda,50kg,65000,2.5\n" +
		",Avian,5L,1000,1\n" +
		"Kuas,Eterna,2in,15000,4\n"

	items, err := newReader().ReadStock(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "línea 2")
	assert.Contains(t, err.Error(), "línea 3")
	assert.Contains(t, err.Error(), "línea 4")
	require.Len(t, items, 1)
	assert.Equal(t, "Kuas", items[0].Name)
}

func TestReadStock_RechazaValoresFueraDeRango(t *testing.T) {
	in := "Nama Barang,Merk,Ukuran/Kemasan,Harga,Stok,Persentase Keuntungan\n" +
		"Cat Tembok,Avian,5L,-100000,-3,150\n" +
		"Cat Kayu,Avian,1L,50000,-1,10\n" +
		"Dempul,Avian,1kg,30000,2,-5\n" +
		"Kuas,Eterna,2in,15000,4,100\n"

	items, err := newReader().ReadStock(strings.NewReader(in))
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "línea 2: Harga no puede ser negativo")
	assert.Contains(t, msg, "línea 2: Stok no puede ser negativo")
	assert.Contains(t, msg, "línea 2: Persentase Keuntungan debe estar entre 0 y 100")
	assert.Contains(t, msg, "línea 3: Stok no puede ser negativo")
	assert.Contains(t, msg, "línea 4: Persentase Keuntungan debe estar entre 0 y 100")
	require.Len(t, items, 1)
	assert.Equal(t, "Kuas", items[0].Name)
	assert.Equal(t, "100", items[0].MarginPct.String())
}

func TestReadStock_FaltanColumnas(t *testing.T) {
	_, err := newReader().ReadStock(strings.NewReader("Nama Barang,Merk\nCat,Avian\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Ukuran/Kemasan")
}

func TestReadSales_DerivaPrecioYMargen(t *testing.T) {
	in := "ID,Nama Pelanggan,Nomor Telepon,Alamat,Nama Barang,Ukuran/Kemasan,Merk,Kode Warna,Jumlah,Total Harga,Keuntungan,Waktu\n" +
		"1,Budi,0812,Jl. Merdeka 1,Cat Tembok,5L,Avian,Putih,2,200000,40000,2024-05-02 10:00:00\n"

	sales, err := newReader().ReadSales(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, sales, 1)

	s := sales[0]
	assert.Equal(t, "Budi", s.Customer.Name)
	assert.Equal(t, "Putih", s.Item.Color)
	assert.Equal(t, "100000", s.UnitPrice.String())
	assert.Equal(t, "20", s.MarginPct.String())
	assert.Equal(t, "40000", s.Profit.String())
	assert.Equal(t, time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC), s.SoldAt)
}

func TestReadSuppliers_JatuhTempoOpcional(t *testing.T) {
	in := "ID,Nama Barang,Merk,Ukuran/Kemasan,Jumlah Barang,Nama Supplier,Tagihan,Waktu,Jatuh Tempo\n" +
		"1,Cat Tembok,Avian,5L,10,PT Warna,400000,2024-05-03 08:00:00,2024-06-03\n" +
		"2,Semen,Tiga Roda,50kg,5,CV Bangun,250000,2024-05-04 08:00:00,\n"

	orders, err := newReader().ReadSuppliers(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), orders[0].DueDate)
	assert.Equal(t, time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC), orders[1].DueDate)
	assert.Equal(t, "PT Warna", orders[0].SupplierName)
}

func TestReadSuppliers_RechazaNegativosYFaltantes(t *testing.T) {
	in := "Nama Barang,Merk,Ukuran/Kemasan,Jumlah Barang,Nama Supplier,Tagihan,Waktu\n" +
		"Cat Tembok,Avian,5L,-10,PT Warna,400000,2024-05-03 08:00:00\n" +
		"Semen,Tiga Roda,50kg,5,CV Bangun,-250000,2024-05-04 08:00:00\n" +
		"Semen,Tiga Roda,50kg,5,,250000,2024-05-04 08:00:00\n" +
		"Kuas,Eterna,2in,0,PT Kuas,0,2024-05-05 08:00:00\n"

	orders, err := newReader().ReadSuppliers(strings.NewReader(in))
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "línea 2: Jumlah Barang no puede ser negativo")
	assert.Contains(t, msg, "línea 3: Tagihan no puede ser negativo")
	assert.Contains(t, msg, "línea 4: nombre, marca, tamaño y proveedor son obligatorios")
	require.Len(t, orders, 1)
	assert.Equal(t, "PT Kuas", orders[0].SupplierName)
}

func TestReadSales_RechazaTotalNegativo(t *testing.T) {
	in := "Nama Pelanggan,Nama Barang,Ukuran/Kemasan,Merk,Jumlah,Total Harga\n" +
		"Budi,Cat Tembok,5L,Avian,1,-100000\n"

	sales, err := newReader().ReadSales(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "línea 2: Total Harga no puede ser negativo")
	assert.Empty(t, sales)
}

func TestDecode_Windows1252(t *testing.T) {
	raw, err := charmap.Windows1252.NewEncoder().String("Nama Pelanggan\nJosé\n")
	require.NoError(t, err)

	r, err := legacy.Decode(bytes.NewReader([]byte(raw)), "windows-1252")
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Nama Pelanggan\nJosé\n", string(got))
}

func TestDecode_QuitaBOM(t *testing.T) {
	r, err := legacy.Decode(strings.NewReader("\ufeffNama Barang\n"), "")
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Nama Barang\n", string(got))

	_, err = legacy.Decode(strings.NewReader(""), "latin-9")
	assert.Error(t, err)
}
