package supplier_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sakti-pos/internal/application/dto"
	"github.com/jhoicas/sakti-pos/internal/application/supplier"
	"github.com/jhoicas/sakti-pos/internal/domain"
	"github.com/jhoicas/sakti-pos/internal/domain/entity"
	"github.com/jhoicas/sakti-pos/internal/infrastructure/csvstore"
)

func order(billed int64) dto.UpsertSupplierOrderRequest {
	return dto.UpsertSupplierOrderRequest{
		ItemName:     "Semen",
		Brand:        "Tiga Roda",
		Size:         "50kg",
		Quantity:     20,
		SupplierName: "PT Maju",
		BilledAmount: decimal.NewFromInt(billed),
		DueDate:      "2026-04-30",
	}
}

func TestSumBillsForMonth_SoloMesPedido(t *testing.T) {
	store, err := csvstore.Open(t.TempDir(), nil)
	require.NoError(t, err)
	ctx := context.Background()
	thisMonth := time.Date(2026, 3, 10, 8, 0, 0, 0, time.Local)
	lastMonth := time.Date(2026, 2, 27, 8, 0, 0, 0, time.Local)

	_, err = supplier.NewUseCase(store).WithClock(func() time.Time { return thisMonth }).Upsert(ctx, "", order(100000))
	require.NoError(t, err)
	_, err = supplier.NewUseCase(store).WithClock(func() time.Time { return lastMonth }).Upsert(ctx, "", order(50000))
	require.NoError(t, err)

	uc := supplier.NewUseCase(store)
	sum, err := uc.SumBillsForMonth(ctx, "2026-03")
	require.NoError(t, err)
	assert.Equal(t, "100000", sum.String())

	total, err := uc.TotalBills(ctx)
	require.NoError(t, err)
	assert.Equal(t, "150000", total.String())

	_, err = uc.SumBillsForMonth(ctx, "03/2026")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpsert_EditaYValida(t *testing.T) {
	store, err := csvstore.Open(t.TempDir(), nil)
	require.NoError(t, err)
	uc := supplier.NewUseCase(store)
	ctx := context.Background()

	created, err := uc.Upsert(ctx, "", order(100000))
	require.NoError(t, err)
	assert.Equal(t, "2026-04-30", created.DueDate)

	in := order(120000)
	in.DueDate = "2026-05-15"
	updated, err := uc.Upsert(ctx, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "120000", updated.BilledAmount.String())
	assert.Equal(t, "2026-05-15", updated.DueDate)

	bad := order(1)
	bad.DueDate = "mañana"
	_, err = uc.Upsert(ctx, "", bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	noSupplier := order(1)
	noSupplier.SupplierName = ""
	_, err = uc.Upsert(ctx, "", noSupplier)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Upsert(ctx, "no-existe", order(1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_Busqueda(t *testing.T) {
	store, err := csvstore.Open(t.TempDir(), nil)
	require.NoError(t, err)
	uc := supplier.NewUseCase(store)
	ctx := context.Background()
	_, err = uc.Upsert(ctx, "", order(1))
	require.NoError(t, err)
	paint := order(2)
	paint.ItemName, paint.Brand = "Cat Tembok", "Avian"
	_, err = uc.Upsert(ctx, "", paint)
	require.NoError(t, err)

	list, err := uc.List(ctx, "avian")
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "Cat Tembok", list.Items[0].ItemName)

	all, err := uc.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)
}

func TestBillsForMonth_ListaVacia(t *testing.T) {
	assert.True(t, supplier.BillsForMonth(nil, "2026-03").IsZero())
	assert.True(t, supplier.TotalBills([]*entity.SupplierOrder{}).IsZero())
}
