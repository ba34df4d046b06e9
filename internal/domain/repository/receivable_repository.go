package repository

import (
	"context"

	"github.com/jhoicas/sakti-pos/internal/domain/entity"
)

// ReceivableRepository define el puerto de persistencia para cuentas por cobrar.
type ReceivableRepository interface {
	Create(ctx context.Context, r *entity.Receivable) error
	Update(ctx context.Context, r *entity.Receivable) error
	GetByID(ctx context.Context, id string) (*entity.Receivable, error)
	List(ctx context.Context) ([]*entity.Receivable, error)
	Delete(ctx context.Context, id string) error
	// DeleteByCustomerName borra todas las filas con ese nombre exacto y devuelve cuántas borró.
	DeleteByCustomerName(ctx context.Context, name string) (int, error)
}
