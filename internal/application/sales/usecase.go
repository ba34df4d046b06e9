package sales

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/sakti-pos/internal/application/dto"
	"github.com/jhoicas/sakti-pos/internal/application/ports"
	"github.com/jhoicas/sakti-pos/internal/domain"
	"github.com/jhoicas/sakti-pos/internal/domain/entity"
	"github.com/jhoicas/sakti-pos/internal/domain/ledger"
	"github.com/jhoicas/sakti-pos/internal/domain/repository"
)

// StockAdjuster ajusta stock dentro de la transacción de la venta.
// Lo implementa inventory.UseCase.
type StockAdjuster interface {
	AdjustInTx(ctx context.Context, stockRepo repository.StockItemRepository, key entity.ItemKey, delta int64, now time.Time) (*entity.StockItem, error)
}

// UseCase registro, edición y consulta de ventas (penjualan).
type UseCase struct {
	txRunner ports.TxRunner
	stock    StockAdjuster
	pdf      ports.ReceiptPDFGenerator
	shopName string
	now      func() time.Time
}

// NewUseCase construye el caso de uso. pdf puede ser nil si no se exponen struk en PDF.
func NewUseCase(txRunner ports.TxRunner, stock StockAdjuster, pdf ports.ReceiptPDFGenerator, shopName string) *UseCase {
	return &UseCase{txRunner: txRunner, stock: stock, pdf: pdf, shopName: shopName, now: time.Now}
}

// WithClock reemplaza el reloj.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// RecordSale registra una venta de forma atómica:
// 1) resuelve el artículo por clave compuesta y lo bloquea
// 2) descuenta la cantidad (ErrOutOfStock si no alcanza)
// 3) calcula total y ganancia con el precio y margen vigentes
// 4) persiste la venta.
// Si cualquier paso falla no cambia ni el stock ni el ledger de ventas.
func (uc *UseCase) RecordSale(ctx context.Context, in dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	customer, key, err := normalizeInput(in)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	var sale *entity.Sale
	err = uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		item, err := uc.stock.AdjustInTx(ctx, repos.Stock, key, -in.Quantity, now)
		if err != nil {
			return err
		}
		total, profit := ledger.SaleAmounts(item.Price, item.MarginPct, in.Quantity)
		sale = &entity.Sale{
			ID:        uuid.New().String(),
			Customer:  customer,
			Item:      key,
			Quantity:  in.Quantity,
			UnitPrice: item.Price,
			MarginPct: item.MarginPct,
			Total:     total,
			Profit:    profit,
			SoldAt:    now,
			UpdatedAt: now,
		}
		return repos.Sales.Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// EditSale reescribe una venta existente y recalcula total/ganancia con el precio y margen
// vigentes del artículo. No mueve stock: la corrección de existencias se hace con el ajuste de inventario.
func (uc *UseCase) EditSale(ctx context.Context, id string, in dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	customer, key, err := normalizeInput(in)
	if err != nil {
		return nil, err
	}

	var sale *entity.Sale
	err = uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		existing, err := repos.Sales.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		candidates, err := repos.Stock.ListByIdentity(ctx, key.Name, key.Brand, key.Size)
		if err != nil {
			return err
		}
		item := entity.PickByKey(candidates, key)
		if item == nil {
			return domain.ErrItemNotFound
		}
		total, profit := ledger.SaleAmounts(item.Price, item.MarginPct, in.Quantity)
		existing.Customer = customer
		existing.Item = key
		existing.Quantity = in.Quantity
		existing.UnitPrice = item.Price
		existing.MarginPct = item.MarginPct
		existing.Total = total
		existing.Profit = profit
		existing.UpdatedAt = uc.now()
		sale = existing
		return repos.Sales.Update(ctx, existing)
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// Get obtiene una venta por ID; (nil, nil) si no existe.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.getEntity(ctx, id)
	if err != nil || sale == nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// List lista las ventas; q no vacío filtra por nombre o teléfono del cliente.
func (uc *UseCase) List(ctx context.Context, q string) (*dto.SaleListResponse, error) {
	var list []*entity.Sale
	err := uc.txRunner.View(ctx, func(repos ports.Repositories) error {
		var err error
		if strings.TrimSpace(q) == "" {
			list, err = repos.Sales.List(ctx)
		} else {
			list, err = repos.Sales.Search(ctx, q)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s))
	}
	return &dto.SaleListResponse{Items: items, Total: len(items)}, nil
}

// Receipt devuelve el struk en texto plano de la venta.
func (uc *UseCase) Receipt(ctx context.Context, id string) (string, error) {
	sale, err := uc.getEntity(ctx, id)
	if err != nil {
		return "", err
	}
	if sale == nil {
		return "", domain.ErrNotFound
	}
	return ReceiptText(uc.shopName, sale), nil
}

// ReceiptPDF devuelve el struk de la venta en PDF.
func (uc *UseCase) ReceiptPDF(ctx context.Context, id string) ([]byte, error) {
	if uc.pdf == nil {
		return nil, domain.ErrNotFound
	}
	sale, err := uc.getEntity(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return uc.pdf.GenerateReceiptPDF(ctx, uc.shopName, sale)
}

func (uc *UseCase) getEntity(ctx context.Context, id string) (*entity.Sale, error) {
	var sale *entity.Sale
	err := uc.txRunner.View(ctx, func(repos ports.Repositories) error {
		var err error
		sale, err = repos.Sales.GetByID(ctx, id)
		return err
	})
	return sale, err
}

func normalizeInput(in dto.RecordSaleRequest) (entity.Customer, entity.ItemKey, error) {
	customer := entity.Customer{
		Name:    strings.TrimSpace(in.Customer.Name),
		Phone:   strings.TrimSpace(in.Customer.Phone),
		Address: strings.TrimSpace(in.Customer.Address),
	}
	key := entity.ItemKey{Name: in.Item.Name, Brand: in.Item.Brand, Size: in.Item.Size, Color: in.Item.Color}.Normalize()
	if customer.Name == "" || !key.Valid() || in.Quantity <= 0 {
		return customer, key, domain.ErrInvalidInput
	}
	return customer, key, nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID: s.ID,
		Customer: dto.CustomerDTO{
			Name:    s.Customer.Name,
			Phone:   s.Customer.Phone,
			Address: s.Customer.Address,
		},
		Item:      dto.ItemKeyDTO{Name: s.Item.Name, Brand: s.Item.Brand, Size: s.Item.Size, Color: s.Item.Color},
		Quantity:  s.Quantity,
		UnitPrice: s.UnitPrice,
		Total:     s.Total,
		Profit:    s.Profit,
		SoldAt:    s.SoldAt,
		UpdatedAt: s.UpdatedAt,
	}
}
