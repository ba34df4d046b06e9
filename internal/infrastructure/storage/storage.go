// Package storage abre el backend de ledgers elegido en la configuración.
package storage

import (
	"context"

	"github.com/jhoicas/sakti-pos/internal/application/ports"
	"github.com/jhoicas/sakti-pos/internal/infrastructure/csvstore"
	"github.com/jhoicas/sakti-pos/internal/infrastructure/postgres"
	"github.com/jhoicas/sakti-pos/pkg/config"
	"github.com/jhoicas/sakti-pos/pkg/logger"
)

// Open devuelve el TxRunner de CSV (DATA_DIR) o PostgreSQL y la función que lo cierra.
// Con PostgreSQL aplica antes el esquema embebido.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (ports.TxRunner, func(), error) {
	if cfg.Storage.Driver == config.StoragePostgres {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Info().Msg("esquema PostgreSQL verificado")
		return postgres.NewTxRunner(pool), pool.Close, nil
	}
	store, err := csvstore.Open(cfg.Storage.DataDir, log)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("dir", store.Dir()).Msg("ledgers CSV cargados")
	return store, func() {
		if err := store.Close(); err != nil {
			log.Warn().Err(err).Msg("cerrar csvstore")
		}
	}, nil
}
