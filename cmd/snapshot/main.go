// snapshot guarda el análisis financiero del día en el histórico (pensado para cron).
//
// Uso: go run ./cmd/snapshot [-date 2026-10-14]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/sakti-pos/internal/application/reporting"
	"github.com/jhoicas/sakti-pos/internal/infrastructure/storage"
	"github.com/jhoicas/sakti-pos/pkg/config"
	"github.com/jhoicas/sakti-pos/pkg/logger"
)

func main() {
	date := flag.String("date", "", "fecha YYYY-MM-DD (por defecto hoy)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "snapshot"})

	ctx := context.Background()
	txRunner, closeStore, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer closeStore()

	snap, err := reporting.NewUseCase(txRunner, nil).TakeSnapshot(ctx, *date)
	if err != nil {
		log.Fatal().Err(err).Msg("guardar snapshot")
	}
	log.Info().
		Str("date", snap.Date).
		Str("total_sales", snap.TotalSales.String()).
		Str("net_profit", snap.NetProfit.String()).
		Str("sales_minus_bills", snap.SalesMinusBills.String()).
		Msg("snapshot guardado")
}
