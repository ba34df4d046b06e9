package receivable

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
)

// UseCase cuentas por cobrar (piutang konsumen).
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

// Upsert crea (id vacío) o edita una cuenta por cobrar. Remaining se recalcula en cada escritura.
func (uc *UseCase) Upsert(ctx context.Context, id string, in dto.UpsertReceivableRequest) (*dto.ReceivableResponse, error) {
	customer := entity.Customer{
		Name:    strings.TrimSpace(in.Customer.Name),
		Phone:   strings.TrimSpace(in.Customer.Phone),
		Address: strings.TrimSpace(in.Customer.Address),
	}
	if customer.Name == "" || in.Quantity < 1 || in.Total.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.Paid.IsNegative() || in.Paid.GreaterThan(in.Total) {
		return nil, fmt.Errorf("%w: paid debe estar entre 0 y total", domain.ErrInvalidInput)
	}
	var promised time.Time
	if s := strings.TrimSpace(in.PromisedAt); s != "" {
		var err error
		promised, err = time.ParseInLocation(entity.DateLayout, s, time.Local)
		if err != nil {
			return nil, fmt.Errorf("%w: promised_at debe ser YYYY-MM-DD", domain.ErrInvalidInput)
		}
	}
	key := entity.ItemKey{Name: in.Item.Name, Brand: in.Item.Brand, Size: in.Item.Size, Color: in.Item.Color}.Normalize()

	now := uc.now()
	var saved *entity.Receivable
	err := uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		r := &entity.Receivable{ID: uuid.New().String(), CreatedAt: now}
		if id != "" {
			existing, err := repos.Receivables.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if existing == nil {
				return domain.ErrNotFound
			}
			r = existing
		}
		r.Customer = customer
		r.Item = key
		r.Quantity = in.Quantity
		r.Total = in.Total
		r.Paid = in.Paid
		r.PromisedAt = promised
		r.UpdatedAt = now
		r.Recompute()
		saved = r
		if id == "" {
			return repos.Receivables.Create(ctx, r)
		}
		return repos.Receivables.Update(ctx, r)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(saved), nil
}

// RemoveByCustomer borra todas las filas cuyo nombre de cliente es exactamente name.
// Retorna domain.ErrNotFound si ninguna coincidió.
func (uc *UseCase) RemoveByCustomer(ctx context.Context, name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, domain.ErrInvalidInput
	}
	var n int
	err := uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		var err error
		n, err = repos.Receivables.DeleteByCustomerName(ctx, name)
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Remove borra una fila por ID.
func (uc *UseCase) Remove(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		r, err := repos.Receivables.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if r == nil {
			return domain.ErrNotFound
		}
		return repos.Receivables.Delete(ctx, id)
	})
}

// Get obtiene una cuenta por cobrar por ID; (nil, nil) si no existe.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.ReceivableResponse, error) {
	var r *entity.Receivable
	err := uc.txRunner.View(ctx, func(repos ports.Repositories) error {
		var err error
		r, err = repos.Receivables.GetByID(ctx, id)
		return err
	})
	if err != nil || r == nil {
		return nil, err
	}
	return toResponse(r), nil
}

// List lista las cuentas por cobrar junto con el saldo pendiente total.
func (uc *UseCase) List(ctx context.Context) (*dto.ReceivableListResponse, error) {
	var list []*entity.Receivable
	err := uc.txRunner.View(ctx, func(repos ports.Repositories) error {
		var err error
		list, err = repos.Receivables.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := &dto.ReceivableListResponse{Items: make([]dto.ReceivableResponse, 0, len(list)), TotalRemaining: decimal.Zero}
	for _, r := range list {
		out.Items = append(out.Items, *toResponse(r))
		out.TotalRemaining = out.TotalRemaining.Add(r.Remaining)
	}
	out.Total = len(out.Items)
	return out, nil
}

func toResponse(r *entity.Receivable) *dto.ReceivableResponse {
	out := &dto.ReceivableResponse{
		ID: r.ID,
		Customer: dto.CustomerDTO{
			Name:    r.Customer.Name,
			Phone:   r.Customer.Phone,
			Address: r.Customer.Address,
		},
		Item:      dto.ItemKeyDTO{Name: r.Item.Name, Brand: r.Item.Brand, Size: r.Item.Size, Color: r.Item.Color},
		Quantity:  r.Quantity,
		Total:     r.Total,
		Paid:      r.Paid,
		Remaining: r.Remaining,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if !r.PromisedAt.IsZero() {
		out.PromisedAt = r.PromisedAt.Format(entity.DateLayout)
	}
	return out
}
