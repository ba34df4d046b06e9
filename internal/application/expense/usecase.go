package expense

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sakti-pos/internal/application/dto"
	"github.com/jhoicas/sakti-pos/internal/application/ports"
	"github.com/jhoicas/sakti-pos/internal/domain"
	"github.com/jhoicas/sakti-pos/internal/domain/entity"
)

// UseCase gastos de la tienda (pengeluaran). Solo alta y listado.
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

// Add registra un gasto. amount debe ser > 0.
func (uc *UseCase) Add(ctx context.Context, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	category := strings.TrimSpace(in.Category)
	if !entity.ValidExpenseCategory(category) || !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	e := &entity.ExpenseEntry{
		ID:        uuid.New().String(),
		Category:  category,
		Amount:    in.Amount,
		Note:      strings.TrimSpace(in.Note),
		CreatedAt: uc.now(),
	}
	err := uc.txRunner.Run(ctx, func(repos ports.Repositories) error {
		return repos.Expenses.Create(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(e), nil
}

// List lista los gastos junto con el monto total.
func (uc *UseCase) List(ctx context.Context) (*dto.ExpenseListResponse, error) {
	var list []*entity.ExpenseEntry
	err := uc.txRunner.View(ctx, func(repos ports.Repositories) error {
		var err error
		list, err = repos.Expenses.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := &dto.ExpenseListResponse{Items: make([]dto.ExpenseResponse, 0, len(list)), TotalAmount: decimal.Zero}
	for _, e := range list {
		out.Items = append(out.Items, *toResponse(e))
		out.TotalAmount = out.TotalAmount.Add(e.Amount)
	}
	out.Total = len(out.Items)
	return out, nil
}

func toResponse(e *entity.ExpenseEntry) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:        e.ID,
		Category:  e.Category,
		Amount:    e.Amount,
		Note:      e.Note,
		CreatedAt: e.CreatedAt,
	}
}
