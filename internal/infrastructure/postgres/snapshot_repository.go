package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sakti-pos/internal/domain/entity"
	"github.com/jhoicas/sakti-pos/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

const snapshotColumns = `id, to_char(snapshot_date, 'YYYY-MM-DD'), total_sales, sales_profit, month_supplier_bills,
	total_supplier_bills, total_expenses, net_profit, sales_minus_bills, taken_at`

// SnapshotRepo histórico financiero sobre PostgreSQL (snapshot_date es UNIQUE).
type SnapshotRepo struct {
	q Querier
}

// NewSnapshotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSnapshotRepository(q Querier) *SnapshotRepo {
	return &SnapshotRepo{q: q}
}

// Upsert inserta o reemplaza el snapshot de esa fecha.
func (r *SnapshotRepo) Upsert(ctx context.Context, s *entity.FinancialSnapshot) error {
	query := `
		INSERT INTO financial_snapshots (id, snapshot_date, total_sales, sales_profit, month_supplier_bills,
			total_supplier_bills, total_expenses, net_profit, sales_minus_bills, taken_at)
		VALUES ($1, $2::date, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (snapshot_date) DO UPDATE SET
			total_sales = EXCLUDED.total_sales,
			sales_profit = EXCLUDED.sales_profit,
			month_supplier_bills = EXCLUDED.month_supplier_bills,
			total_supplier_bills = EXCLUDED.total_supplier_bills,
			total_expenses = EXCLUDED.total_expenses,
			net_profit = EXCLUDED.net_profit,
			sales_minus_bills = EXCLUDED.sales_minus_bills,
			taken_at = EXCLUDED.taken_at`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Date, s.TotalSales, s.SalesProfit, s.MonthSupplierBills,
		s.TotalSupplierBills, s.TotalExpenses, s.NetProfit, s.SalesMinusBills, s.TakenAt,
	)
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}

func (r *SnapshotRepo) GetByDate(ctx context.Context, date string) (*entity.FinancialSnapshot, error) {
	s, err := scanSnapshot(r.q.QueryRow(ctx,
		`SELECT `+snapshotColumns+` FROM financial_snapshots WHERE snapshot_date = $1::date`, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return s, nil
}

func (r *SnapshotRepo) List(ctx context.Context) ([]*entity.FinancialSnapshot, error) {
	rows, err := r.q.Query(ctx, `SELECT `+snapshotColumns+` FROM financial_snapshots ORDER BY snapshot_date`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()
	var list []*entity.FinancialSnapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSnapshot(row pgx.Row) (*entity.FinancialSnapshot, error) {
	var s entity.FinancialSnapshot
	err := row.Scan(
		&s.ID, &s.Date, &s.TotalSales, &s.SalesProfit, &s.MonthSupplierBills,
		&s.TotalSupplierBills, &s.TotalExpenses, &s.NetProfit, &s.SalesMinusBills, &s.TakenAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
