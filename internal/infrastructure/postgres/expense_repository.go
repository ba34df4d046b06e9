package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/sakti-pos/internal/domain/entity"
	"github.com/jhoicas/sakti-pos/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo gastos append-only sobre PostgreSQL.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

func (r *ExpenseRepo) Create(ctx context.Context, e *entity.ExpenseEntry) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO expenses (id, category, amount, note, created_at) VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.Category, e.Amount, e.Note, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepo) List(ctx context.Context) ([]*entity.ExpenseEntry, error) {
	rows, err := r.q.Query(ctx, `SELECT id, category, amount, note, created_at FROM expenses ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.ExpenseEntry
	for rows.Next() {
		var e entity.ExpenseEntry
		if err := rows.Scan(&e.ID, &e.Category, &e.Amount, &e.Note, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
