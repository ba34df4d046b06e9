package repository

import (
	"context"

	"github.com/jhoicas/sakti-pos/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	Update(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	List(ctx context.Context) ([]*entity.Sale, error)
	// Search busca por subcadena en nombre o teléfono del cliente.
	Search(ctx context.Context, q string) ([]*entity.Sale, error)
}
