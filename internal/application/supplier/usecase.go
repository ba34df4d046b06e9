package supplier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sakti-pos/internal/application/dto"
	"github.com/jhoicas/sakti-pos/internal/application/ports"
	"github.com/jhoicas/sakti-pos/internal/domain"
	"github.com/jhoicas/sakti-pos/internal/domain/entity"
	"github.com/jhoicas/sakti-pos/internal/domain/ledger"
)

// UseCase ledger de pedidos a proveedores y sus cuentas de cobro.
type UseCase struct {
	txRunner ports.TxRunner
	now      func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner ports.TxRunner) *UseCase {
	return &UseCase{txRunner: txRunner, now: time.Now}
}

// WithClock reemplaza el reloj.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Upsert crea (id vacío) o edita un pedido. No toca el stock.
func (uc *UseCase) Upsert(ctx context.Context, id string, in dto.UpsertSupplierOrderRequest) (*dto.SupplierOrderResponse, error) {
	key := entity.ItemKey{Name: in.ItemName, Brand: in.Brand, Size: in.Size}.Normalize()
	supplierName := strings.TrimSpace(in.SupplierName)
	if !key.Valid() || supplierName == "" || in.Quantity < 0 || in.BilledAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	due, err := time.ParseInLocation(entity.DateLayout, strings.TrimSpace(in.DueDate), time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: due_date debe ser YYYY-MM-DD", domain.ErrInvalidInput)
	}

	now := uc.now()
	var saved *entity.SupplierOrder
	err = uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		if id == "" {
			saved = &entity.SupplierOrder{
				ID:           uuid.New().String(),
				Item:         key,
				Quantity:     in.Quantity,
				SupplierName: supplierName,
				BilledAmount: in.BilledAmount,
				DueDate:      due,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			return repos.Suppliers.Create(ctx, saved)
		}
		order, err := repos.Suppliers.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		order.Item = key
		order.Quantity = in.Quantity
		order.SupplierName = supplierName
		order.BilledAmount = in.BilledAmount
		order.DueDate = due
		order.UpdatedAt = now
		saved = order
		return repos.Suppliers.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(saved), nil
}

// Get obtiene un pedido por ID; (nil, nil) si no existe.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.SupplierOrderResponse, error) {
	var order *entity.SupplierOrder
	err := uc.txRunner.View(ctx, func(repos ports.Repositories) error {
		var err error
		order, err = repos.Suppliers.GetByID(ctx, id)
		return err
	})
	if err != nil || order == nil {
		return nil, err
	}
	return toResponse(order), nil
}

// List lista los pedidos; q no vacío filtra por nombre o marca del artículo.
func (uc *UseCase) List(ctx context.Context, q string) (*dto.SupplierOrderListResponse, error) {
	var list []*entity.SupplierOrder
	err := uc.txRunner.View(ctx, func(repos ports.Repositories) error {
		var err error
		if strings.TrimSpace(q) == "" {
			list, err = repos.Suppliers.List(ctx)
		} else {
			list, err = repos.Suppliers.Search(ctx, q)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toResponse(o))
	}
	return &dto.SupplierOrderListResponse{Items: items, Total: len(items)}, nil
}

// SumBillsForMonth suma lo facturado en el mes "YYYY-MM".
func (uc *UseCase) SumBillsForMonth(ctx context.Context, yearMonth string) (decimal.Decimal, error) {
	if _, err := ledger.ParseYearMonth(yearMonth, time.Local); err != nil {
		return decimal.Zero, fmt.Errorf("%w: mes debe ser YYYY-MM", domain.ErrInvalidInput)
	}
	var list []*entity.SupplierOrder
	err := uc.txRunner.View(ctx, func(repos ports.Repositories) error {
		var err error
		list, err = repos.Suppliers.List(ctx)
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}
	return BillsForMonth(list, yearMonth), nil
}

// TotalBills suma histórica de lo facturado por proveedores.
func (uc *UseCase) TotalBills(ctx context.Context) (decimal.Decimal, error) {
	var list []*entity.SupplierOrder
	err := uc.txRunner.View(ctx, func(repos ports.Repositories) error {
		var err error
		list, err = repos.Suppliers.List(ctx)
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}
	return TotalBills(list), nil
}

// BillsForMonth suma BilledAmount de los pedidos creados en yearMonth.
func BillsForMonth(orders []*entity.SupplierOrder, yearMonth string) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		if o.InMonth(yearMonth) {
			total = total.Add(o.BilledAmount)
		}
	}
	return total
}

// TotalBills suma BilledAmount de todos los pedidos.
func TotalBills(orders []*entity.SupplierOrder) decimal.Decimal {
	amounts := make([]decimal.Decimal, 0, len(orders))
	for _, o := range orders {
		amounts = append(amounts, o.BilledAmount)
	}
	return ledger.Sum(amounts...)
}

func toResponse(o *entity.SupplierOrder) *dto.SupplierOrderResponse {
	return &dto.SupplierOrderResponse{
		ID:           o.ID,
		ItemName:     o.Item.Name,
		Brand:        o.Item.Brand,
		Size:         o.Item.Size,
		Quantity:     o.Quantity,
		SupplierName: o.SupplierName,
		BilledAmount: o.BilledAmount,
		DueDate:      o.DueDate.Format(entity.DateLayout),
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}
