package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sakti-pos/internal/application/dto"
	"github.com/jhoicas/sakti-pos/internal/application/inventory"
	"github.com/jhoicas/sakti-pos/internal/domain"
	"github.com/jhoicas/sakti-pos/internal/domain/entity"
	"github.com/jhoicas/sakti-pos/internal/infrastructure/csvstore"
)

func newUseCase(t *testing.T) *inventory.UseCase {
	t.Helper()
	store, err := csvstore.Open(t.TempDir(), nil)
	require.NoError(t, err)
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	return inventory.NewUseCase(store).WithClock(func() time.Time { return now })
}

func margin(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func catTembok() dto.UpsertStockItemRequest {
	return dto.UpsertStockItemRequest{
		Name:      "Cat Tembok",
		Brand:     "X",
		Size:      "5L",
		Price:     decimal.NewFromInt(100000),
		Quantity:  10,
		MarginPct: margin("20"),
	}
}

func TestUpsert_CreaYLuegoEdita(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	created, err := uc.Upsert(ctx, entity.RoleOwner, "", catTembok())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.NotNil(t, created.MarginPct)
	assert.Equal(t, "20", created.MarginPct.String())

	in := catTembok()
	in.Price = decimal.NewFromInt(110000)
	updated, err := uc.Upsert(ctx, entity.RoleOwner, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "110000", updated.Price.String())

	list, err := uc.Search(ctx, entity.RoleOwner, "")
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
}

func TestUpsert_ClaveDuplicada(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()
	_, err := uc.Upsert(ctx, entity.RoleOwner, "", catTembok())
	require.NoError(t, err)

	_, err = uc.Upsert(ctx, entity.RoleOwner, "", catTembok())
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	colored := catTembok()
	colored.Color = "Putih"
	_, err = uc.Upsert(ctx, entity.RoleOwner, "", colored)
	assert.NoError(t, err)
}

func TestUpsert_Validaciones(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	noBrand := catTembok()
	noBrand.Brand = "  "
	_, err := uc.Upsert(ctx, entity.RoleOwner, "", noBrand)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	badMargin := catTembok()
	badMargin.MarginPct = margin("120")
	_, err = uc.Upsert(ctx, entity.RoleOwner, "", badMargin)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	negative := catTembok()
	negative.Quantity = -1
	_, err = uc.Upsert(ctx, entity.RoleOwner, "", negative)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Upsert(ctx, entity.RoleOwner, "no-existe", catTembok())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpsert_KasirNoCambiaMargen(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()
	created, err := uc.Upsert(ctx, entity.RoleOwner, "", catTembok())
	require.NoError(t, err)

	in := catTembok()
	in.MarginPct = margin("90")
	edited, err := uc.Upsert(ctx, entity.RoleCashier, created.ID, in)
	require.NoError(t, err)
	assert.Nil(t, edited.MarginPct, "el kasir no ve el margen")

	asOwner, err := uc.Get(ctx, entity.RoleOwner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "20", asOwner.MarginPct.String())

	fresh := catTembok()
	fresh.Name = "Semen"
	byCashier, err := uc.Upsert(ctx, entity.RoleCashier, "", fresh)
	require.NoError(t, err)
	got, err := uc.Get(ctx, entity.RoleOwner, byCashier.ID)
	require.NoError(t, err)
	assert.True(t, got.MarginPct.IsZero())
}

func TestFindByKey(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()
	_, err := uc.Upsert(ctx, entity.RoleOwner, "", catTembok())
	require.NoError(t, err)

	found, err := uc.FindByKey(ctx, entity.RoleCashier, entity.ItemKey{Name: "Cat Tembok", Brand: "X", Size: "5L", Color: "RAL-9010"})
	require.NoError(t, err)
	assert.Equal(t, "Cat Tembok", found.Name)
	assert.Nil(t, found.MarginPct)

	_, err = uc.FindByKey(ctx, entity.RoleOwner, entity.ItemKey{Name: "Cat Tembok", Brand: "X", Size: "25L"})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestAdjustQuantity_NoPermiteNegativo(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()
	_, err := uc.Upsert(ctx, entity.RoleOwner, "", catTembok())
	require.NoError(t, err)
	key := entity.ItemKey{Name: "Cat Tembok", Brand: "X", Size: "5L"}

	item, err := uc.AdjustQuantity(ctx, key, 5)
	require.NoError(t, err)
	assert.EqualValues(t, 15, item.Quantity)

	_, err = uc.AdjustQuantity(ctx, key, -16)
	assert.ErrorIs(t, err, domain.ErrOutOfStock)

	item, err = uc.AdjustQuantity(ctx, key, -15)
	require.NoError(t, err)
	assert.EqualValues(t, 0, item.Quantity)
}

func TestRemove(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()
	created, err := uc.Upsert(ctx, entity.RoleOwner, "", catTembok())
	require.NoError(t, err)

	require.NoError(t, uc.Remove(ctx, created.ID))
	assert.ErrorIs(t, uc.Remove(ctx, created.ID), domain.ErrNotFound)

	got, err := uc.Get(ctx, entity.RoleOwner, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSearch_SinDistinguirMayusculas(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()
	_, err := uc.Upsert(ctx, entity.RoleOwner, "", catTembok())
	require.NoError(t, err)
	semen := catTembok()
	semen.Name, semen.Brand, semen.Size = "Semen", "Tiga Roda", "50kg"
	_, err = uc.Upsert(ctx, entity.RoleOwner, "", semen)
	require.NoError(t, err)

	list, err := uc.Search(ctx, entity.RoleCashier, "TEMBOK")
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "Cat Tembok", list.Items[0].Name)
	assert.Nil(t, list.Items[0].MarginPct)
}
