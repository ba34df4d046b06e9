package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sakti-pos/internal/application/dto"
	"github.com/jhoicas/sakti-pos/internal/application/ports"
	"github.com/jhoicas/sakti-pos/internal/domain"
	"github.com/jhoicas/sakti-pos/internal/domain/entity"
	"github.com/jhoicas/sakti-pos/internal/domain/repository"
)

var maxMargin = decimal.NewFromInt(100)

// UseCase casos de uso del ledger de inventario (stok barang).
// Cada operación que modifica corre en una transacción del TxRunner.
type UseCase struct {
	txRunner ports.TxRunner
	now      func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner ports.TxRunner) *UseCase {
	return &UseCase{txRunner: txRunner, now: time.Now}
}

// WithClock reemplaza el reloj (tests e importaciones).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Upsert crea el artículo si id está vacío o lo actualiza si no.
// La clave compuesta (nombre, marca, tamaño, color) debe ser única.
// Solo el dueño fija el margen: en manos del kasir se conserva el margen existente (0 si es nuevo).
func (uc *UseCase) Upsert(ctx context.Context, role, id string, in dto.UpsertStockItemRequest) (*dto.StockItemResponse, error) {
	key := entity.ItemKey{Name: in.Name, Brand: in.Brand, Size: in.Size, Color: in.Color}.Normalize()
	if !key.Valid() || in.Price.IsNegative() || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	isOwner := role == entity.RoleOwner
	if isOwner && in.MarginPct != nil && (in.MarginPct.IsNegative() || in.MarginPct.GreaterThan(maxMargin)) {
		return nil, fmt.Errorf("%w: margin_pct debe estar entre 0 y 100", domain.ErrInvalidInput)
	}

	now := uc.now()
	var saved *entity.StockItem
	err := uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		siblings, err := repos.Stock.ListByIdentity(ctx, key.Name, key.Brand, key.Size)
		if err != nil {
			return err
		}
		for _, s := range siblings {
			if s.ID != id && s.Key().Normalize().Color == key.Color {
				return domain.ErrDuplicate
			}
		}

		if id == "" {
			item := &entity.StockItem{
				ID:        uuid.New().String(),
				Name:      key.Name,
				Brand:     key.Brand,
				Size:      key.Size,
				Color:     key.Color,
				Price:     in.Price,
				MarginPct: decimal.Zero,
				Quantity:  in.Quantity,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if isOwner && in.MarginPct != nil {
				item.MarginPct = *in.MarginPct
			}
			saved = item
			return repos.Stock.Create(ctx, item)
		}

		item, err := repos.Stock.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		item.Name, item.Brand, item.Size, item.Color = key.Name, key.Brand, key.Size, key.Color
		item.Price = in.Price
		item.Quantity = in.Quantity
		if isOwner && in.MarginPct != nil {
			item.MarginPct = *in.MarginPct
		}
		item.UpdatedAt = now
		saved = item
		return repos.Stock.Update(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return toStockItemResponse(saved, isOwner), nil
}

// FindByKey busca el artículo que atiende la clave compuesta. Retorna domain.ErrItemNotFound si no hay.
func (uc *UseCase) FindByKey(ctx context.Context, role string, key entity.ItemKey) (*dto.StockItemResponse, error) {
	var found *entity.StockItem
	err := uc.txRunner.View(ctx, func(repos ports.Repositories) error {
		var err error
		found, err = FindByKey(ctx, repos.Stock, key)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toStockItemResponse(found, role == entity.RoleOwner), nil
}

// AdjustQuantity suma delta (negativo = salida) al stock del artículo con esa clave.
// Retorna domain.ErrOutOfStock si el stock quedaría negativo.
func (uc *UseCase) AdjustQuantity(ctx context.Context, key entity.ItemKey, delta int64) (*dto.StockItemResponse, error) {
	var item *entity.StockItem
	err := uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		var err error
		item, err = uc.AdjustInTx(ctx, repos.Stock, key, delta, uc.now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return toStockItemResponse(item, true), nil
}

// AdjustInTx aplica el ajuste usando el repositorio del caller (misma transacción).
// Bloquea la fila (GetForUpdate), valida que el stock no quede negativo y actualiza.
// Si retorna error el caller debe hacer rollback.
func (uc *UseCase) AdjustInTx(
	ctx context.Context,
	stockRepo repository.StockItemRepository,
	key entity.ItemKey,
	delta int64,
	now time.Time,
) (*entity.StockItem, error) {
	match, err := FindByKey(ctx, stockRepo, key)
	if err != nil {
		return nil, err
	}
	item, err := stockRepo.GetForUpdate(ctx, match.ID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	if item.Quantity+delta < 0 {
		return nil, domain.ErrOutOfStock
	}
	item.Quantity += delta
	item.UpdatedAt = now
	if err := stockRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Remove elimina un artículo por ID.
func (uc *UseCase) Remove(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		item, err := repos.Stock.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		return repos.Stock.Delete(ctx, id)
	})
}

// Get obtiene un artículo por ID; (nil, nil) si no existe.
func (uc *UseCase) Get(ctx context.Context, role, id string) (*dto.StockItemResponse, error) {
	var item *entity.StockItem
	err := uc.txRunner.View(ctx, func(repos ports.Repositories) error {
		var err error
		item, err = repos.Stock.GetByID(ctx, id)
		return err
	})
	if err != nil || item == nil {
		return nil, err
	}
	return toStockItemResponse(item, role == entity.RoleOwner), nil
}

// Search lista artículos cuyo nombre o marca contiene q; q vacío lista todo.
func (uc *UseCase) Search(ctx context.Context, role, q string) (*dto.StockItemListResponse, error) {
	var list []*entity.StockItem
	err := uc.txRunner.View(ctx, func(repos ports.Repositories) error {
		var err error
		if q == "" {
			list, err = repos.Stock.List(ctx)
		} else {
			list, err = repos.Stock.Search(ctx, q)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	withMargin := role == entity.RoleOwner
	items := make([]dto.StockItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toStockItemResponse(it, withMargin))
	}
	return &dto.StockItemListResponse{Items: items, Total: len(items)}, nil
}

// FindByKey resuelve la clave compuesta contra el repositorio recibido.
func FindByKey(ctx context.Context, stockRepo repository.StockItemRepository, key entity.ItemKey) (*entity.StockItem, error) {
	key = key.Normalize()
	if !key.Valid() {
		return nil, domain.ErrInvalidInput
	}
	candidates, err := stockRepo.ListByIdentity(ctx, key.Name, key.Brand, key.Size)
	if err != nil {
		return nil, err
	}
	item := entity.PickByKey(candidates, key)
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	return item, nil
}

func toStockItemResponse(it *entity.StockItem, withMargin bool) *dto.StockItemResponse {
	if it == nil {
		return nil
	}
	out := &dto.StockItemResponse{
		ID:        it.ID,
		Name:      it.Name,
		Brand:     it.Brand,
		Size:      it.Size,
		Color:     it.Color,
		Price:     it.Price,
		Quantity:  it.Quantity,
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
	if withMargin {
		m := it.MarginPct
		out.MarginPct = &m
	}
	return out
}
