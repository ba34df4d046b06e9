package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/sakti-pos/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ports.Repositories) error) error {
	return r.run(ctx, pgx.TxOptions{}, fn)
}

// View igual que Run pero en una transacción READ ONLY; nunca hace commit de cambios.
func (r *TxRunner) View(ctx context.Context, fn func(repos ports.Repositories) error) error {
	return r.run(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, fn)
}

func (r *TxRunner) run(ctx context.Context, opts pgx.TxOptions, fn func(repos ports.Repositories) error) error {
	tx, err := r.pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(Repositories(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Repositories arma el juego completo de repos sobre un Querier (pool o tx).
func Repositories(q Querier) ports.Repositories {
	return ports.Repositories{
		Stock:       NewStockItemRepository(q),
		Sales:       NewSaleRepository(q),
		Suppliers:   NewSupplierOrderRepository(q),
		Receivables: NewReceivableRepository(q),
		Expenses:    NewExpenseRepository(q),
		Snapshots:   NewSnapshotRepository(q),
	}
}
