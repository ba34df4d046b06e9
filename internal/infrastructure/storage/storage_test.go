package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sakti-pos/internal/application/ports"
	"github.com/jhoicas/sakti-pos/internal/domain/entity"
	"github.com/jhoicas/sakti-pos/internal/infrastructure/storage"
	"github.com/jhoicas/sakti-pos/pkg/config"
	"github.com/jhoicas/sakti-pos/pkg/logger"
)

func TestOpen_DriverCSVPersisteEnDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	cfg := &config.Config{Storage: config.StorageConfig{Driver: config.StorageCSV, DataDir: dir}}
	ctx := context.Background()

	tx, closeFn, err := storage.Open(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	defer closeFn()

	now := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	err = tx.Run(ctx, func(r ports.Repositories) error {
		return r.Stock.Create(ctx, &entity.StockItem{
			ID: "a1", Name: "Cat Tembok", Brand: "X", Size: "5L",
			Price: decimal.NewFromInt(100000), MarginPct: decimal.Zero, Quantity: 3,
			CreatedAt: now, UpdatedAt: now,
		})
	})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "stock_items.csv"))
	assert.NoError(t, err)

	reopened, closeAgain, err := storage.Open(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	defer closeAgain()

	var items []*entity.StockItem
	require.NoError(t, reopened.View(ctx, func(r ports.Repositories) error {
		var err error
		items, err = r.Stock.List(ctx)
		return err
	}))
	require.Len(t, items, 1)
	assert.Equal(t, int64(3), items[0].Quantity)
}
