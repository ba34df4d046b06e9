package repository

import (
	"context"

	"github.com/jhoicas/sakti-pos/internal/domain/entity"
)

// ExpenseRepository puerto append-only para gastos.
type ExpenseRepository interface {
	Create(ctx context.Context, e *entity.ExpenseEntry) error
	List(ctx context.Context) ([]*entity.ExpenseEntry, error)
}
