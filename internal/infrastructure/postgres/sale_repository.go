package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sakti-pos/internal/domain"
	"github.com/jhoicas/sakti-pos/internal/domain/entity"
	"github.com/jhoicas/sakti-pos/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, customer_name, customer_phone, customer_address,
	item_name, item_brand, item_size, item_color,
	quantity, unit_price, margin_pct, total, profit, sold_at, updated_at`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la venta.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Customer.Name, s.Customer.Phone, s.Customer.Address,
		s.Item.Name, s.Item.Brand, s.Item.Size, s.Item.Color,
		s.Quantity, s.UnitPrice, s.MarginPct, s.Total, s.Profit, s.SoldAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// Update reescribe la venta (sold_at no cambia).
func (r *SaleRepo) Update(ctx context.Context, s *entity.Sale) error {
	query := `
		UPDATE sales SET customer_name = $2, customer_phone = $3, customer_address = $4,
			item_name = $5, item_brand = $6, item_size = $7, item_color = $8,
			quantity = $9, unit_price = $10, margin_pct = $11, total = $12, profit = $13, updated_at = $14
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		s.ID, s.Customer.Name, s.Customer.Phone, s.Customer.Address,
		s.Item.Name, s.Item.Brand, s.Item.Size, s.Item.Color,
		s.Quantity, s.UnitPrice, s.MarginPct, s.Total, s.Profit, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene una venta por ID; (nil, nil) si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// List todas las ventas en orden cronológico.
func (r *SaleRepo) List(ctx context.Context) ([]*entity.Sale, error) {
	return r.list(ctx, `SELECT `+saleColumns+` FROM sales ORDER BY sold_at, id`)
}

// Search por subcadena en nombre o teléfono del cliente.
func (r *SaleRepo) Search(ctx context.Context, q string) ([]*entity.Sale, error) {
	return r.list(ctx, `SELECT `+saleColumns+` FROM sales
		WHERE customer_name ILIKE $1 OR customer_phone ILIKE $1 ORDER BY sold_at, id`, likePattern(q))
}

func (r *SaleRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(
		&s.ID, &s.Customer.Name, &s.Customer.Phone, &s.Customer.Address,
		&s.Item.Name, &s.Item.Brand, &s.Item.Size, &s.Item.Color,
		&s.Quantity, &s.UnitPrice, &s.MarginPct, &s.Total, &s.Profit, &s.SoldAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
