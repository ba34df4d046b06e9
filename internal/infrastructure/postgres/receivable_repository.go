package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sakti-pos/internal/domain"
	"github.com/jhoicas/sakti-pos/internal/domain/entity"
	"github.com/jhoicas/sakti-pos/internal/domain/repository"
)

var _ repository.ReceivableRepository = (*ReceivableRepo)(nil)

const receivableColumns = `id, customer_name, customer_address, customer_phone,
	item_name, item_brand, item_size, item_color,
	quantity, total, paid, remaining, promised_at, created_at, updated_at`

// ReceivableRepo implementación del puerto ReceivableRepository sobre PostgreSQL.
type ReceivableRepo struct {
	q Querier
}

// NewReceivableRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReceivableRepository(q Querier) *ReceivableRepo {
	return &ReceivableRepo{q: q}
}

func (r *ReceivableRepo) Create(ctx context.Context, v *entity.Receivable) error {
	query := `INSERT INTO receivables (` + receivableColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		v.ID, v.Customer.Name, v.Customer.Address, v.Customer.Phone,
		v.Item.Name, v.Item.Brand, v.Item.Size, v.Item.Color,
		v.Quantity, v.Total, v.Paid, v.Remaining, nullDate(v.PromisedAt), v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert receivable: %w", err)
	}
	return nil
}

func (r *ReceivableRepo) Update(ctx context.Context, v *entity.Receivable) error {
	query := `
		UPDATE receivables SET customer_name = $2, customer_address = $3, customer_phone = $4,
			item_name = $5, item_brand = $6, item_size = $7, item_color = $8,
			quantity = $9, total = $10, paid = $11, remaining = $12, promised_at = $13, updated_at = $14
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		v.ID, v.Customer.Name, v.Customer.Address, v.Customer.Phone,
		v.Item.Name, v.Item.Brand, v.Item.Size, v.Item.Color,
		v.Quantity, v.Total, v.Paid, v.Remaining, nullDate(v.PromisedAt), v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update receivable: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ReceivableRepo) GetByID(ctx context.Context, id string) (*entity.Receivable, error) {
	v, err := scanReceivable(r.q.QueryRow(ctx, `SELECT `+receivableColumns+` FROM receivables WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receivable: %w", err)
	}
	return v, nil
}

func (r *ReceivableRepo) List(ctx context.Context) ([]*entity.Receivable, error) {
	rows, err := r.q.Query(ctx, `SELECT `+receivableColumns+` FROM receivables ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list receivables: %w", err)
	}
	defer rows.Close()
	var list []*entity.Receivable
	for rows.Next() {
		v, err := scanReceivable(rows)
		if err != nil {
			return nil, fmt.Errorf("scan receivable: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

func (r *ReceivableRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM receivables WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete receivable: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByCustomerName borra por nombre exacto y devuelve cuántas filas borró.
func (r *ReceivableRepo) DeleteByCustomerName(ctx context.Context, name string) (int, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM receivables WHERE btrim(customer_name) = $1`, name)
	if err != nil {
		return 0, fmt.Errorf("delete receivables by customer: %w", err)
	}
	return int(cmd.RowsAffected()), nil
}

func scanReceivable(row pgx.Row) (*entity.Receivable, error) {
	var v entity.Receivable
	var promised *time.Time
	err := row.Scan(
		&v.ID, &v.Customer.Name, &v.Customer.Address, &v.Customer.Phone,
		&v.Item.Name, &v.Item.Brand, &v.Item.Size, &v.Item.Color,
		&v.Quantity, &v.Total, &v.Paid, &v.Remaining, &promised, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.PromisedAt = fromNullDate(promised)
	return &v, nil
}
