// Package pdf implementa el struk de venta en PDF.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────┐
//	│  STRUK PENJUALAN <TIENDA>                 │
//	│  ───────────────────────────────────────  │
//	│  Cliente: nombre / teléfono / dirección   │
//	│  Artículo: nombre / tamaño / marca / color│
//	│  ───────────────────────────────────────  │
//	│  Jumlah | Total Harga | Waktu             │
//	│  ───────────────────────────────────────  │
//	│  QR con el ID de la venta + TERIMA KASIH  │
//	└───────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/sakti-pos/internal/application/ports"
	"github.com/jhoicas/sakti-pos/internal/domain/entity"
)

var _ ports.ReceiptPDFGenerator = (*MarotoReceiptGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 160, Green: 30, Blue: 30}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const receiptTimeLayout = "2006-01-02 15:04:05"

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReceiptGenerator implementa ports.ReceiptPDFGenerator usando Maroto v2.
type MarotoReceiptGenerator struct {
	printer *message.Printer
}

// NewMarotoReceiptGenerator construye el generador; los montos se formatean en Rupiah (separador de miles ".").
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{printer: message.NewPrinter(language.Indonesian)}
}

// GenerateReceiptPDF genera el PDF del struk y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(_ context.Context, shopName string, sale *entity.Sale) ([]byte, error) {
	if sale == nil {
		return nil, fmt.Errorf("pdf: venta nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Struk Penjualan", true).
		WithAuthor(shopName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(shopName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRows(sale.Customer)...)
	m.AddRows(itemRows(sale.Item)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(g.rupiah(sale.Total), sale))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(sale.ID))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar struk: %w", err)
	}
	return doc.GetBytes(), nil
}

// rupiah formatea el monto redondeado a rupiah entero: 1250000 → "Rp 1.250.000".
func (g *MarotoReceiptGenerator) rupiah(d decimal.Decimal) string {
	return g.printer.Sprintf("Rp %d", d.Round(0).IntPart())
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(shopName string) core.Row {
	title := "STRUK PENJUALAN"
	if s := strings.TrimSpace(shopName); s != "" {
		title += " " + cases.Upper(language.Indonesian).String(s)
	}
	return row.New(12).Add(
		col.New(12).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: colorPrimary, Top: 2,
		})),
	)
}

func field(label, value string) core.Row {
	return row.New(6).Add(
		col.New(4).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
		col.New(8).Add(text.New(nonEmpty(value, "-"), props.Text{Size: 8, Top: 1})),
	)
}

func customerRows(c entity.Customer) []core.Row {
	return []core.Row{
		field("Nama Pelanggan", c.Name),
		field("Nomor Telepon", c.Phone),
		field("Alamat", c.Address),
	}
}

func itemRows(k entity.ItemKey) []core.Row {
	rows := []core.Row{
		field("Nama Barang", k.Name),
		field("Ukuran/Kemasan", k.Size),
		field("Merk", k.Brand),
	}
	if k.Color != "" {
		rows = append(rows, field("Kode Warna", k.Color))
	}
	return rows
}

func totalsRow(total string, sale *entity.Sale) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 1})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 10, Top: top})
	}
	return row.New(14).Add(
		col.New(3).Add(label("Jumlah"), value(fmt.Sprintf("%d", sale.Quantity), 6)),
		col.New(5).Add(label("Total Harga"), value(total, 6)),
		col.New(4).Add(label("Waktu"), text.New(sale.SoldAt.Format(receiptTimeLayout), props.Text{Size: 8, Top: 7})),
	)
}

func footerRow(saleID string) core.Row {
	return row.New(30).Add(
		col.New(4).Add(code.NewQr(saleID, props.Rect{Percent: 90, Center: true})),
		col.New(8).Add(
			text.New("TERIMA KASIH", props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: colorPrimary, Top: 8,
			}),
			text.New("ID transaksi: "+saleID, props.Text{Size: 6.5, Align: align.Center, Color: colorGray, Top: 18}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
