// Package reporting contiene los reportes financieros de la tienda: resumen,
// ganancia por artículo, histórico de snapshots y la exportación a hoja de cálculo.
package reporting

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sakti-pos/internal/application/dto"
	"github.com/jhoicas/sakti-pos/internal/application/ports"
	"github.com/jhoicas/sakti-pos/internal/application/supplier"
	"github.com/jhoicas/sakti-pos/internal/domain"
	"github.com/jhoicas/sakti-pos/internal/domain/entity"
	"github.com/jhoicas/sakti-pos/internal/domain/ledger"
)

// SnapshotCSVHeader columnas del export CSV del histórico.
var SnapshotCSVHeader = []string{
	"date", "total_sales", "sales_profit", "month_supplier_bills",
	"total_supplier_bills", "total_expenses", "net_profit", "sales_minus_bills", "taken_at",
}

// UseCase reportes de solo lectura más la captura explícita de snapshots.
// Ver un reporte nunca escribe; solo TakeSnapshot persiste.
type UseCase struct {
	txRunner ports.TxRunner
	exporter ports.WorkbookExporter
	now      func() time.Time
}

// NewUseCase construye el caso de uso. exporter puede ser nil si no se expone el xlsx.
func NewUseCase(txRunner ports.TxRunner, exporter ports.WorkbookExporter) *UseCase {
	return &UseCase{txRunner: txRunner, exporter: exporter, now: time.Now}
}

// WithClock reemplaza el reloj.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Figures cifras calculadas sobre los ledgers en un instante.
type Figures struct {
	TotalSales         decimal.Decimal
	SalesProfit        decimal.Decimal
	TotalExpenses      decimal.Decimal
	NetProfit          decimal.Decimal // TotalSales - TotalExpenses
	MonthSupplierBills decimal.Decimal
	TotalSupplierBills decimal.Decimal
	SalesMinusBills    decimal.Decimal // TotalSales - TotalSupplierBills
}

// Compute calcula las cifras del resumen a partir de los ledgers ya cargados.
func Compute(sales []*entity.Sale, expenses []*entity.ExpenseEntry, orders []*entity.SupplierOrder, yearMonth string) Figures {
	f := Figures{
		TotalSales:    decimal.Zero,
		SalesProfit:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, s := range sales {
		f.TotalSales = f.TotalSales.Add(s.Total)
		f.SalesProfit = f.SalesProfit.Add(s.Profit)
	}
	for _, e := range expenses {
		f.TotalExpenses = f.TotalExpenses.Add(e.Amount)
	}
	f.NetProfit = f.TotalSales.Sub(f.TotalExpenses)
	f.MonthSupplierBills = supplier.BillsForMonth(orders, yearMonth)
	f.TotalSupplierBills = supplier.TotalBills(orders)
	f.SalesMinusBills = f.TotalSales.Sub(f.TotalSupplierBills)
	return f
}

// Summary resumen financiero; month vacío usa el mes actual.
func (uc *UseCase) Summary(ctx context.Context, month string) (*dto.FinancialSummaryDTO, error) {
	month, err := uc.resolveMonth(month)
	if err != nil {
		return nil, err
	}
	f, err := uc.figures(ctx, month)
	if err != nil {
		return nil, err
	}
	return &dto.FinancialSummaryDTO{
		Month:              month,
		TotalSales:         f.TotalSales,
		SalesProfit:        f.SalesProfit,
		TotalExpenses:      f.TotalExpenses,
		NetProfit:          f.NetProfit,
		MonthSupplierBills: f.MonthSupplierBills,
		TotalSupplierBills: f.TotalSupplierBills,
		SalesMinusBills:    f.SalesMinusBills,
	}, nil
}

// TotalSales suma de Sale.Total (0 sin ventas).
func (uc *UseCase) TotalSales(ctx context.Context) (decimal.Decimal, error) {
	f, err := uc.figures(ctx, uc.now().Format("2006-01"))
	return f.TotalSales, err
}

// TotalExpenses suma de los gastos.
func (uc *UseCase) TotalExpenses(ctx context.Context) (decimal.Decimal, error) {
	f, err := uc.figures(ctx, uc.now().Format("2006-01"))
	return f.TotalExpenses, err
}

// NetProfit ventas totales menos gastos totales.
func (uc *UseCase) NetProfit(ctx context.Context) (decimal.Decimal, error) {
	f, err := uc.figures(ctx, uc.now().Format("2006-01"))
	return f.NetProfit, err
}

// ProfitByItem agrupa las ventas por nombre, marca y tamaño (sin color),
// ordenado por ganancia descendente y luego por etiqueta.
func (uc *UseCase) ProfitByItem(ctx context.Context) ([]dto.ItemProfitDTO, error) {
	var sales []*entity.Sale
	err := uc.txRunner.View(ctx, func(repos ports.Repositories) error {
		var err error
		sales, err = repos.Sales.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return GroupProfitByItem(sales), nil
}

// GroupProfitByItem agregación pura usada por ProfitByItem.
func GroupProfitByItem(sales []*entity.Sale) []dto.ItemProfitDTO {
	index := map[entity.ItemKey]int{}
	out := []dto.ItemProfitDTO{}
	for _, s := range sales {
		k := s.Item.Normalize()
		k.Color = ""
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, dto.ItemProfitDTO{
				Item:   dto.ItemKeyDTO{Name: k.Name, Brand: k.Brand, Size: k.Size},
				Label:  k.String(),
				Profit: decimal.Zero,
			})
		}
		out[i].Quantity += s.Quantity
		out[i].Profit = out[i].Profit.Add(s.Profit)
	}
	sort.SliceStable(out, func(a, b int) bool {
		if !out[a].Profit.Equal(out[b].Profit) {
			return out[a].Profit.GreaterThan(out[b].Profit)
		}
		return out[a].Label < out[b].Label
	})
	return out
}

// TakeSnapshot captura las cifras para date ("YYYY-MM-DD", vacío = hoy), contando solo
// ventas, gastos y pedidos registrados hasta el final de ese día. Fechas futuras son inválidas.
// Si ya existe un snapshot de esa fecha se reemplaza.
func (uc *UseCase) TakeSnapshot(ctx context.Context, date string) (*dto.SnapshotDTO, error) {
	now := uc.now()
	if date == "" {
		date = now.Format(entity.DateLayout)
	}
	day, err := time.ParseInLocation(entity.DateLayout, date, now.Location())
	if err != nil {
		return nil, fmt.Errorf("%w: date debe ser YYYY-MM-DD", domain.ErrInvalidInput)
	}
	endOfDay := day.AddDate(0, 0, 1)
	if day.After(now) {
		return nil, fmt.Errorf("%w: date %s es posterior a hoy", domain.ErrInvalidInput, date)
	}
	month := day.Format("2006-01")

	var snap *entity.FinancialSnapshot
	err = uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		f, err := loadFiguresUntil(ctx, repos, month, endOfDay)
		if err != nil {
			return err
		}
		snap = &entity.FinancialSnapshot{
			ID:                 uuid.New().String(),
			Date:               date,
			TotalSales:         f.TotalSales,
			SalesProfit:        f.SalesProfit,
			MonthSupplierBills: f.MonthSupplierBills,
			TotalSupplierBills: f.TotalSupplierBills,
			TotalExpenses:      f.TotalExpenses,
			NetProfit:          f.NetProfit,
			SalesMinusBills:    f.SalesMinusBills,
			TakenAt:            now,
		}
		existing, err := repos.Snapshots.GetByDate(ctx, date)
		if err != nil {
			return err
		}
		if existing != nil {
			snap.ID = existing.ID
		}
		return repos.Snapshots.Upsert(ctx, snap)
	})
	if err != nil {
		return nil, err
	}
	return toSnapshotDTO(snap), nil
}

// ListSnapshots histórico ordenado por fecha.
func (uc *UseCase) ListSnapshots(ctx context.Context) ([]dto.SnapshotDTO, error) {
	list, err := uc.snapshots(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SnapshotDTO, 0, len(list))
	for _, s := range list {
		out = append(out, *toSnapshotDTO(s))
	}
	return out, nil
}

// SnapshotsCSV exporta el histórico como CSV con SnapshotCSVHeader.
func (uc *UseCase) SnapshotsCSV(ctx context.Context) ([]byte, error) {
	list, err := uc.snapshots(ctx)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(SnapshotCSVHeader); err != nil {
		return nil, err
	}
	for _, s := range list {
		row := []string{
			s.Date,
			s.TotalSales.String(),
			s.SalesProfit.String(),
			s.MonthSupplierBills.String(),
			s.TotalSupplierBills.String(),
			s.TotalExpenses.String(),
			s.NetProfit.String(),
			s.SalesMinusBills.String(),
			s.TakenAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportWorkbook arma el libro con una hoja por ledger más la hoja de ganancia neta.
func (uc *UseCase) ExportWorkbook(ctx context.Context) ([]byte, error) {
	if uc.exporter == nil {
		return nil, fmt.Errorf("reporting: exportador no configurado")
	}
	var data ports.WorkbookData
	err := uc.txRunner.View(ctx, func(repos ports.Repositories) error {
		var err error
		if data.Stock, err = repos.Stock.List(ctx); err != nil {
			return err
		}
		if data.Sales, err = repos.Sales.List(ctx); err != nil {
			return err
		}
		if data.Suppliers, err = repos.Suppliers.List(ctx); err != nil {
			return err
		}
		if data.Expenses, err = repos.Expenses.List(ctx); err != nil {
			return err
		}
		if data.Receivables, err = repos.Receivables.List(ctx); err != nil {
			return err
		}
		data.Snapshots, err = repos.Snapshots.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	f := Compute(data.Sales, data.Expenses, nil, "")
	data.NetProfitLine = ports.NetProfitLine{
		TotalSales:    f.TotalSales,
		TotalExpenses: f.TotalExpenses,
		NetProfit:     f.NetProfit,
	}
	return uc.exporter.ExportWorkbook(ctx, data)
}

func (uc *UseCase) resolveMonth(month string) (string, error) {
	if month == "" {
		return uc.now().Format("2006-01"), nil
	}
	if _, err := ledger.ParseYearMonth(month, time.Local); err != nil {
		return "", fmt.Errorf("%w: month debe ser YYYY-MM", domain.ErrInvalidInput)
	}
	return month, nil
}

func (uc *UseCase) figures(ctx context.Context, month string) (Figures, error) {
	var f Figures
	err := uc.txRunner.View(ctx, func(repos ports.Repositories) error {
		var err error
		f, err = loadFigures(ctx, repos, month)
		return err
	})
	return f, err
}

func (uc *UseCase) snapshots(ctx context.Context) ([]*entity.FinancialSnapshot, error) {
	var list []*entity.FinancialSnapshot
	err := uc.txRunner.View(ctx, func(repos ports.Repositories) error {
		var err error
		list, err = repos.Snapshots.List(ctx)
		return err
	})
	return list, err
}

func loadFigures(ctx context.Context, repos ports.Repositories, month string) (Figures, error) {
	return loadFiguresUntil(ctx, repos, month, time.Time{})
}

// loadFiguresUntil con cutoff no cero ignora los registros de cutoff en adelante.
func loadFiguresUntil(ctx context.Context, repos ports.Repositories, month string, cutoff time.Time) (Figures, error) {
	sales, err := repos.Sales.List(ctx)
	if err != nil {
		return Figures{}, err
	}
	expenses, err := repos.Expenses.List(ctx)
	if err != nil {
		return Figures{}, err
	}
	orders, err := repos.Suppliers.List(ctx)
	if err != nil {
		return Figures{}, err
	}
	if !cutoff.IsZero() {
		sales = before(sales, cutoff, func(s *entity.Sale) time.Time { return s.SoldAt })
		expenses = before(expenses, cutoff, func(e *entity.ExpenseEntry) time.Time { return e.CreatedAt })
		orders = before(orders, cutoff, func(o *entity.SupplierOrder) time.Time { return o.CreatedAt })
	}
	return Compute(sales, expenses, orders, month), nil
}

func before[T any](items []*T, cutoff time.Time, at func(*T) time.Time) []*T {
	out := make([]*T, 0, len(items))
	for _, it := range items {
		if at(it).Before(cutoff) {
			out = append(out, it)
		}
	}
	return out
}

func toSnapshotDTO(s *entity.FinancialSnapshot) *dto.SnapshotDTO {
	return &dto.SnapshotDTO{
		ID:                 s.ID,
		Date:               s.Date,
		TotalSales:         s.TotalSales,
		SalesProfit:        s.SalesProfit,
		MonthSupplierBills: s.MonthSupplierBills,
		TotalSupplierBills: s.TotalSupplierBills,
		TotalExpenses:      s.TotalExpenses,
		NetProfit:          s.NetProfit,
		SalesMinusBills:    s.SalesMinusBills,
		TakenAt:            s.TakenAt,
	}
}
