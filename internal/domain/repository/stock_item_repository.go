package repository

import (
	"context"

	"github.com/jhoicas/sakti-pos/internal/domain/entity"
)

// StockItemRepository define el puerto de persistencia para StockItem (DIP).
type StockItemRepository interface {
	Create(ctx context.Context, item *entity.StockItem) error
	Update(ctx context.Context, item *entity.StockItem) error
	GetByID(ctx context.Context, id string) (*entity.StockItem, error)
	// ListByIdentity devuelve los artículos con el mismo nombre, marca y tamaño (cualquier color).
	ListByIdentity(ctx context.Context, name, brand, size string) ([]*entity.StockItem, error)
	// GetForUpdate igual que GetByID pero bloquea la fila dentro de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error)
	List(ctx context.Context) ([]*entity.StockItem, error)
	// Search busca por subcadena (sin distinguir mayúsculas) en nombre o marca.
	Search(ctx context.Context, q string) ([]*entity.StockItem, error)
	Delete(ctx context.Context, id string) error
}
