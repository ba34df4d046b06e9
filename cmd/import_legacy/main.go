// import_legacy carga en los ledgers los CSV de la aplicación anterior de la tienda
// (stok_barang.csv, penjualan.csv, supplier.csv) en una sola unidad de trabajo.
//
// Uso: go run ./cmd/import_legacy -dir ./legacy [-charset windows-1252] [-dry-run]
// El destino es el backend configurado (STORAGE_DRIVER, DATA_DIR / DATABASE_URL).
// Los artículos que ya existen con la misma clave compuesta se omiten.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jhoicas/sakti-pos/internal/application/ports"
	"github.com/jhoicas/sakti-pos/internal/domain/entity"
	"github.com/jhoicas/sakti-pos/internal/infrastructure/legacy"
	"github.com/jhoicas/sakti-pos/internal/infrastructure/storage"
	"github.com/jhoicas/sakti-pos/pkg/config"
	"github.com/jhoicas/sakti-pos/pkg/logger"
)

type batch struct {
	stock     []*entity.StockItem
	sales     []*entity.Sale
	suppliers []*entity.SupplierOrder
}

func main() {
	dir := flag.String("dir", ".", "directorio con los CSV legados")
	charset := flag.String("charset", legacy.CharsetUTF8, "codificación de los CSV (utf-8|windows-1252)")
	dryRun := flag.Bool("dry-run", false, "solo validar, no escribir")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "import_legacy"})

	b, err := readAll(*dir, *charset)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV legados")
	}
	log.Info().
		Int("stok_barang", len(b.stock)).
		Int("penjualan", len(b.sales)).
		Int("supplier", len(b.suppliers)).
		Bool("dry_run", *dryRun).
		Msg("filas válidas")
	if *dryRun {
		return
	}

	ctx := context.Background()
	txRunner, closeStore, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer closeStore()

	skipped := 0
	err = txRunner.Run(ctx, func(repos ports.Repositories) error {
		for _, it := range b.stock {
			existing, err := repos.Stock.ListByIdentity(ctx, it.Name, it.Brand, it.Size)
			if err != nil {
				return err
			}
			if hasColor(existing, it.Color) {
				skipped++
				continue
			}
			if err := repos.Stock.Create(ctx, it); err != nil {
				return fmt.Errorf("stok %s: %w", it.Key(), err)
			}
		}
		for _, s := range b.sales {
			if err := repos.Sales.Create(ctx, s); err != nil {
				return fmt.Errorf("penjualan %s: %w", s.ID, err)
			}
		}
		for _, o := range b.suppliers {
			if err := repos.Suppliers.Create(ctx, o); err != nil {
				return fmt.Errorf("supplier %s: %w", o.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("importación revertida")
	}
	log.Info().Int("stok_omitidos", skipped).Msg("importación completada")
}

// readAll lee los tres archivos; uno ausente se omite, cualquier fila inválida aborta.
func readAll(dir, charset string) (*batch, error) {
	rd := legacy.NewReader()
	b := &batch{}
	var errs []error

	read := func(name string, parse func(io.Reader) error) {
		f, err := os.Open(filepath.Join(dir, name))
		if errors.Is(err, os.ErrNotExist) {
			return
		}
		if err != nil {
			errs = append(errs, err)
			return
		}
		defer f.Close()
		r, err := legacy.Decode(f, charset)
		if err != nil {
			errs = append(errs, err)
			return
		}
		errs = append(errs, parse(r))
	}

	read(legacy.StockFile, func(r io.Reader) (err error) {
		b.stock, err = rd.ReadStock(r)
		return err
	})
	read(legacy.SalesFile, func(r io.Reader) (err error) {
		b.sales, err = rd.ReadSales(r)
		return err
	})
	read(legacy.SupplierFile, func(r io.Reader) (err error) {
		b.suppliers, err = rd.ReadSuppliers(r)
		return err
	})
	return b, errors.Join(errs...)
}

func hasColor(items []*entity.StockItem, color string) bool {
	for _, it := range items {
		if it.Key().Normalize().Color == color {
			return true
		}
	}
	return false
}
