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

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

const stockItemColumns = `id, name, brand, size, color, price, margin_pct, quantity, created_at, updated_at`

// StockItemRepo implementación del puerto StockItemRepository sobre PostgreSQL (usable con pool o tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

// Create persiste un nuevo artículo. La clave compuesta es única en la tabla.
func (r *StockItemRepo) Create(ctx context.Context, s *entity.StockItem) error {
	query := `INSERT INTO stock_items (` + stockItemColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Name, s.Brand, s.Size, s.Color, s.Price, s.MarginPct, s.Quantity, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock item: %w", err)
	}
	return nil
}

// Update reescribe todos los campos editables.
func (r *StockItemRepo) Update(ctx context.Context, s *entity.StockItem) error {
	query := `
		UPDATE stock_items SET name = $2, brand = $3, size = $4, color = $5, price = $6,
			margin_pct = $7, quantity = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, s.ID, s.Name, s.Brand, s.Size, s.Color, s.Price, s.MarginPct, s.Quantity, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update stock item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un artículo por ID; (nil, nil) si no existe.
func (r *StockItemRepo) GetByID(ctx context.Context, id string) (*entity.StockItem, error) {
	return r.getOne(ctx, `SELECT `+stockItemColumns+` FROM stock_items WHERE id = $1`, id)
}

// GetForUpdate igual que GetByID pero con SELECT ... FOR UPDATE (usar dentro de una tx).
func (r *StockItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error) {
	return r.getOne(ctx, `SELECT `+stockItemColumns+` FROM stock_items WHERE id = $1 FOR UPDATE`, id)
}

// ListByIdentity artículos con ese nombre, marca y tamaño en cualquier color.
func (r *StockItemRepo) ListByIdentity(ctx context.Context, name, brand, size string) ([]*entity.StockItem, error) {
	return r.list(ctx, `SELECT `+stockItemColumns+` FROM stock_items
		WHERE name = $1 AND brand = $2 AND size = $3 ORDER BY created_at, id`, name, brand, size)
}

// List todos los artículos en orden de alta.
func (r *StockItemRepo) List(ctx context.Context) ([]*entity.StockItem, error) {
	return r.list(ctx, `SELECT `+stockItemColumns+` FROM stock_items ORDER BY created_at, id`)
}

// Search por subcadena en nombre o marca, sin distinguir mayúsculas.
func (r *StockItemRepo) Search(ctx context.Context, q string) ([]*entity.StockItem, error) {
	return r.list(ctx, `SELECT `+stockItemColumns+` FROM stock_items
		WHERE name ILIKE $1 OR brand ILIKE $1 ORDER BY created_at, id`, likePattern(q))
}

// Delete elimina un artículo por ID.
func (r *StockItemRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM stock_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *StockItemRepo) getOne(ctx context.Context, query string, args ...any) (*entity.StockItem, error) {
	s, err := scanStockItem(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return s, nil
}

func (r *StockItemRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockItem
	for rows.Next() {
		s, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanStockItem(row pgx.Row) (*entity.StockItem, error) {
	var s entity.StockItem
	err := row.Scan(&s.ID, &s.Name, &s.Brand, &s.Size, &s.Color, &s.Price, &s.MarginPct, &s.Quantity, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
