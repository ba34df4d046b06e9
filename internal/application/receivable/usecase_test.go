package receivable_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sakti-pos/internal/application/dto"
	"github.com/jhoicas/sakti-pos/internal/application/receivable"
	"github.com/jhoicas/sakti-pos/internal/domain"
	"github.com/jhoicas/sakti-pos/internal/infrastructure/csvstore"
)

func newUseCase(t *testing.T) *receivable.UseCase {
	t.Helper()
	store, err := csvstore.Open(t.TempDir(), nil)
	require.NoError(t, err)
	return receivable.NewUseCase(store)
}

func entry(name string, total, paid int64) dto.UpsertReceivableRequest {
	return dto.UpsertReceivableRequest{
		Customer:   dto.CustomerDTO{Name: name, Phone: "0812"},
		Item:       dto.ItemKeyDTO{Name: "Cat Tembok", Brand: "X", Size: "5L"},
		Quantity:   5,
		Total:      decimal.NewFromInt(total),
		Paid:       decimal.NewFromInt(paid),
		PromisedAt: "2026-04-01",
	}
}

func TestUpsert_RecalculaSaldo(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	created, err := uc.Upsert(ctx, "", entry("Siti", 500000, 200000))
	require.NoError(t, err)
	assert.Equal(t, "300000", created.Remaining.String())
	assert.Equal(t, "2026-04-01", created.PromisedAt)

	paid, err := uc.Upsert(ctx, created.ID, entry("Siti", 500000, 500000))
	require.NoError(t, err)
	assert.True(t, paid.Remaining.IsZero())
	assert.Equal(t, created.ID, paid.ID)
}

func TestUpsert_PagoFueraDeRango(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	_, err := uc.Upsert(ctx, "", entry("Siti", 500000, 600000))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Upsert(ctx, "", entry("Siti", 500000, -1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Upsert(ctx, "", entry("", 500000, 0))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRemoveByCustomer(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()
	for _, name := range []string{"Siti", "Siti", "Budi"} {
		_, err := uc.Upsert(ctx, "", entry(name, 100000, 0))
		require.NoError(t, err)
	}

	n, err := uc.RemoveByCustomer(ctx, "Siti")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = uc.RemoveByCustomer(ctx, "Siti")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "100000", list.TotalRemaining.String())
}

func TestRemove_PorID(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()
	created, err := uc.Upsert(ctx, "", entry("Siti", 100000, 0))
	require.NoError(t, err)

	require.NoError(t, uc.Remove(ctx, created.ID))
	assert.ErrorIs(t, uc.Remove(ctx, created.ID), domain.ErrNotFound)

	got, err := uc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
