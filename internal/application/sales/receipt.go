package sales

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/sakti-pos/internal/domain/entity"
)

// ReceiptTimeLayout formato de la línea Waktu del struk.
const ReceiptTimeLayout = "2006-01-02 15:04:05"

// ReceiptText arma el struk de texto plano de una venta.
// El encabezado lleva el nombre de la tienda en mayúsculas; los montos van en su forma decimal exacta.
func ReceiptText(shopName string, s *entity.Sale) string {
	header := "STRUK PENJUALAN"
	if name := strings.TrimSpace(shopName); name != "" {
		header += " " + cases.Upper(language.Indonesian).String(name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "=== %s ===\n", header)
	fmt.Fprintf(&b, "Nama Pelanggan: %s\n", s.Customer.Name)
	fmt.Fprintf(&b, "Nomor Telepon: %s\n", s.Customer.Phone)
	fmt.Fprintf(&b, "Alamat: %s\n", s.Customer.Address)
	fmt.Fprintf(&b, "Nama Barang: %s\n", s.Item.Name)
	fmt.Fprintf(&b, "Ukuran/Kemasan: %s\n", s.Item.Size)
	fmt.Fprintf(&b, "Merk: %s\n", s.Item.Brand)
	if s.Item.Color != "" {
		fmt.Fprintf(&b, "Kode Warna: %s\n", s.Item.Color)
	}
	fmt.Fprintf(&b, "Jumlah: %d\n", s.Quantity)
	fmt.Fprintf(&b, "Total Harga: %s\n", s.Total.String())
	fmt.Fprintf(&b, "Waktu: %s\n", s.SoldAt.Format(ReceiptTimeLayout))
	b.WriteString("============ TERIMA KASIH ============\n")
	return b.String()
}
