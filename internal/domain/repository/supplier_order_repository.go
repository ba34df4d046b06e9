package repository

import (
	"context"

	"github.com/jhoicas/sakti-pos/internal/domain/entity"
)

// SupplierOrderRepository define el puerto de persistencia para pedidos de proveedor.
type SupplierOrderRepository interface {
	Create(ctx context.Context, order *entity.SupplierOrder) error
	Update(ctx context.Context, order *entity.SupplierOrder) error
	GetByID(ctx context.Context, id string) (*entity.SupplierOrder, error)
	List(ctx context.Context) ([]*entity.SupplierOrder, error)
	// Search busca por subcadena en nombre o marca del artículo.
	Search(ctx context.Context, q string) ([]*entity.SupplierOrder, error)
}
