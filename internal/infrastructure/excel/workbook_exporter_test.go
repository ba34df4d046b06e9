package excel_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/sakti-pos/internal/application/ports"
	"github.com/jhoicas/sakti-pos/internal/domain/entity"
	"github.com/jhoicas/sakti-pos/internal/infrastructure/excel"
)

func TestExportWorkbook_HojasYFilas(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	data := ports.WorkbookData{
		Stock: []*entity.StockItem{{
			ID: "a", Name: "Cat Tembok", Brand: "X", Size: "5L",
			Price: decimal.NewFromInt(100000), MarginPct: decimal.NewFromInt(20), Quantity: 8,
		}},
		Sales: []*entity.Sale{{
			ID: "s1", Customer: entity.Customer{Name: "Budi"},
			Item:     entity.ItemKey{Name: "Cat Tembok", Brand: "X", Size: "5L"},
			Quantity: 2, Total: decimal.NewFromInt(200000), Profit: decimal.NewFromInt(40000), SoldAt: ts,
		}},
		Expenses: []*entity.ExpenseEntry{{ID: "e1", Category: entity.ExpenseSalary, Amount: decimal.NewFromInt(50000), CreatedAt: ts}},
		NetProfitLine: ports.NetProfitLine{
			TotalSales:    decimal.NewFromInt(200000),
			TotalExpenses: decimal.NewFromInt(50000),
			NetProfit:     decimal.NewFromInt(150000),
		},
	}

	out, err := excel.NewWorkbookExporter().ExportWorkbook(context.Background(), data)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{
		excel.SheetStock, excel.SheetSales, excel.SheetSuppliers, excel.SheetExpenses,
		excel.SheetReceivables, excel.SheetSnapshots, excel.SheetNetProfit,
	}, f.GetSheetList())

	stock, err := f.GetRows(excel.SheetStock)
	require.NoError(t, err)
	require.Len(t, stock, 2)
	assert.Equal(t, "Nama Barang", stock[0][1])
	assert.Equal(t, "Cat Tembok", stock[1][1])

	sales, err := f.GetRows(excel.SheetSales)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, "Budi", sales[1][1])

	suppliers, err := f.GetRows(excel.SheetSuppliers)
	require.NoError(t, err)
	assert.Len(t, suppliers, 1, "solo encabezado")

	net, err := f.GetCellValue(excel.SheetNetProfit, "C2")
	require.NoError(t, err)
	assert.Equal(t, "150000", net)
}
