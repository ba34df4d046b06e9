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

var _ repository.SupplierOrderRepository = (*SupplierOrderRepo)(nil)

const supplierOrderColumns = `id, item_name, item_brand, item_size, quantity, supplier_name,
	billed_amount, due_date, created_at, updated_at`

// SupplierOrderRepo implementación del puerto SupplierOrderRepository sobre PostgreSQL.
type SupplierOrderRepo struct {
	q Querier
}

// NewSupplierOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierOrderRepository(q Querier) *SupplierOrderRepo {
	return &SupplierOrderRepo{q: q}
}

func (r *SupplierOrderRepo) Create(ctx context.Context, o *entity.SupplierOrder) error {
	query := `INSERT INTO supplier_orders (` + supplierOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.Item.Name, o.Item.Brand, o.Item.Size, o.Quantity, o.SupplierName,
		o.BilledAmount, o.DueDate, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier order: %w", err)
	}
	return nil
}

func (r *SupplierOrderRepo) Update(ctx context.Context, o *entity.SupplierOrder) error {
	query := `
		UPDATE supplier_orders SET item_name = $2, item_brand = $3, item_size = $4, quantity = $5,
			supplier_name = $6, billed_amount = $7, due_date = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		o.ID, o.Item.Name, o.Item.Brand, o.Item.Size, o.Quantity, o.SupplierName,
		o.BilledAmount, o.DueDate, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update supplier order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SupplierOrderRepo) GetByID(ctx context.Context, id string) (*entity.SupplierOrder, error) {
	o, err := scanSupplierOrder(r.q.QueryRow(ctx, `SELECT `+supplierOrderColumns+` FROM supplier_orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier order: %w", err)
	}
	return o, nil
}

func (r *SupplierOrderRepo) List(ctx context.Context) ([]*entity.SupplierOrder, error) {
	return r.list(ctx, `SELECT `+supplierOrderColumns+` FROM supplier_orders ORDER BY created_at, id`)
}

// Search por subcadena en nombre o marca del artículo.
func (r *SupplierOrderRepo) Search(ctx context.Context, q string) ([]*entity.SupplierOrder, error) {
	return r.list(ctx, `SELECT `+supplierOrderColumns+` FROM supplier_orders
		WHERE item_name ILIKE $1 OR item_brand ILIKE $1 ORDER BY created_at, id`, likePattern(q))
}

func (r *SupplierOrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.SupplierOrder, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list supplier orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.SupplierOrder
	for rows.Next() {
		o, err := scanSupplierOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func scanSupplierOrder(row pgx.Row) (*entity.SupplierOrder, error) {
	var o entity.SupplierOrder
	err := row.Scan(
		&o.ID, &o.Item.Name, &o.Item.Brand, &o.Item.Size, &o.Quantity, &o.SupplierName,
		&o.BilledAmount, &o.DueDate, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
