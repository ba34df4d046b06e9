package expense_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sakti-pos/internal/application/dto"
	"github.com/jhoicas/sakti-pos/internal/application/expense"
	"github.com/jhoicas/sakti-pos/internal/domain"
	"github.com/jhoicas/sakti-pos/internal/domain/entity"
	"github.com/jhoicas/sakti-pos/internal/infrastructure/csvstore"
)

func TestAdd_YListaConTotal(t *testing.T) {
	store, err := csvstore.Open(t.TempDir(), nil)
	require.NoError(t, err)
	uc := expense.NewUseCase(store)
	ctx := context.Background()

	_, err = uc.Add(ctx, dto.CreateExpenseRequest{Category: entity.ExpenseSalary, Amount: decimal.NewFromInt(750000), Note: "gaji Maret"})
	require.NoError(t, err)
	_, err = uc.Add(ctx, dto.CreateExpenseRequest{Category: entity.ExpenseOperations, Amount: decimal.NewFromInt(50000)})
	require.NoError(t, err)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
	assert.Equal(t, "800000", list.TotalAmount.String())
	assert.Equal(t, "gaji Maret", list.Items[0].Note)
}

func TestAdd_Validaciones(t *testing.T) {
	store, err := csvstore.Open(t.TempDir(), nil)
	require.NoError(t, err)
	uc := expense.NewUseCase(store)
	ctx := context.Background()

	_, err = uc.Add(ctx, dto.CreateExpenseRequest{Category: "listrik", Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Add(ctx, dto.CreateExpenseRequest{Category: entity.ExpenseOther, Amount: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
