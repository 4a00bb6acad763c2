// seed copies the product and movement tables from a source xlsx workbook
// into the store configured by the environment. It is the migration path
// from a standalone workbook to the PostgreSQL backend, and also rebuilds a
// fresh workbook store from an exported one.
//
// Usage: go run ./cmd/seed [source.xlsx]
// Defaults to data/depo.xlsx.
package main

import (
	"context"
	"os"
	"time"

	appinv "github.com/huseyintonguc/DEPO/internal/application/inventory"
	"github.com/huseyintonguc/DEPO/internal/infrastructure/postgres"
	"github.com/huseyintonguc/DEPO/internal/infrastructure/sheet"
	"github.com/huseyintonguc/DEPO/pkg/config"
	"github.com/huseyintonguc/DEPO/pkg/logger"
)

func main() {
	source := "data/depo.xlsx"
	if len(os.Args) > 1 {
		source = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	data, err := os.ReadFile(source)
	if err != nil {
		log.Fatal().Err(err).Str("source", source).Msg("read source workbook")
	}

	products, ledger, load, err := sheet.DecodeWorkbook(data)
	if err != nil {
		log.Fatal().Err(err).Msg("decode source workbook")
	}
	if !load.Clean() {
		log.Warn().
			Int("skipped", len(load.Skipped)).
			Int("coerced", len(load.Coerced)).
			Msg("source workbook has unusable rows")
		for _, issue := range load.Skipped {
			log.Warn().Str("table", issue.Table).Int("row", issue.Row).Msg(issue.Reason)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store, cleanup, err := buildStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("configure table store")
	}
	defer cleanup()

	if err := store.ReplaceProducts(ctx, products); err != nil {
		log.Fatal().Err(err).Msg("write products")
	}
	if err := store.ReplaceMovements(ctx, ledger); err != nil {
		log.Fatal().Err(err).Msg("write movements")
	}

	log.Info().
		Str("driver", cfg.Store.Driver).
		Int("products", len(products)).
		Int("movements", len(ledger)).
		Msg("seed finished")
}

func buildStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (appinv.TableStore, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreSheet:
		var blob sheet.Blob
		if cfg.Store.RemoteURL != "" {
			blob = sheet.NewHTTPBlob(cfg.Store.RemoteURL, cfg.Store.RemoteToken, cfg.Store.Timeout)
		} else {
			blob = sheet.NewFileBlob(cfg.Store.SheetPath)
		}
		return sheet.NewStore(blob, log), func() {}, nil

	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		store := postgres.NewTableStore(pool, log)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil
	}
	return nil, nil, cfg.Store.Validate()
}
