package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sakti-pos/internal/domain/entity"
)

// ReceiptPDFGenerator genera la representación PDF del struk de una venta.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, shopName string, sale *entity.Sale) ([]byte, error)
}

// WorkbookData contenido completo del reporte exportado (una hoja por ledger).
type WorkbookData struct {
	Stock         []*entity.StockItem
	Sales         []*entity.Sale
	Suppliers     []*entity.SupplierOrder
	Expenses      []*entity.ExpenseEntry
	Receivables   []*entity.Receivable
	Snapshots     []*entity.FinancialSnapshot
	NetProfitLine NetProfitLine
}

// NetProfitLine fila de la hoja calculada de ganancia neta.
type NetProfitLine struct {
	TotalSales    decimal.Decimal
	TotalExpenses decimal.Decimal
	NetProfit     decimal.Decimal
}

// WorkbookExporter serializa WorkbookData a una hoja de cálculo multi-hoja.
type WorkbookExporter interface {
	ExportWorkbook(ctx context.Context, data WorkbookData) ([]byte, error)
}

// CredentialVerifier verifica usuario/contraseña y devuelve el principal autenticado.
// Retorna domain.ErrUnauthorized si las credenciales no son válidas.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (*entity.Principal, error)
}
