package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AntonStoeckl/library-catalog-go/app/shell/config"
	"github.com/AntonStoeckl/library-catalog-go/catalog"
	"github.com/AntonStoeckl/library-catalog-go/catalog/csvsource"
	"github.com/AntonStoeckl/library-catalog-go/catalog/jsonsource"
	"github.com/AntonStoeckl/library-catalog-go/catalog/postgressource"
)

// openSource returns the configured record source and a function releasing its connections.
func openSource(ctx context.Context, cfg config.Config, logger *slog.Logger) (catalog.RecordSource, func(), error) {
	noop := func() {}

	switch cfg.Catalog.Source {
	case config.SourceCSV:
		source, err := csvsource.NewFileSource(cfg.Catalog.File)
		return source, noop, err

	case config.SourceJSON:
		return jsonsource.NewFileSource(cfg.Catalog.File), noop, nil

	case config.SourcePostgres:
		return openPostgresSource(ctx, cfg.Postgres, logger)

	default:
		return nil, noop, fmt.Errorf("%w: unknown source %q", config.ErrInvalidConfig, cfg.Catalog.Source)
	}
}

func openPostgresSource(ctx context.Context, cfg config.PostgresConfig, logger *slog.Logger) (catalog.RecordSource, func(), error) {
	noop := func() {}
	options := []postgressource.Option{
		postgressource.WithTableName(cfg.Table),
		postgressource.WithLogger(logger),
	}

	switch cfg.Driver {
	case config.DriverSQLDB:
		db, err := config.OpenSQLDB(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}

		source, err := postgressource.NewSourceFromSQLDB(db, options...)

		return sourceOrClose(source, func() { _ = db.Close() }, err)

	case config.DriverSQLX:
		db, err := config.OpenSQLX(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}

		source, err := postgressource.NewSourceFromSQLX(db, options...)

		return sourceOrClose(source, func() { _ = db.Close() }, err)

	default:
		pool, err := config.OpenPGXPool(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}

		source, err := postgressource.NewSourceFromPGXPool(pool, options...)

		return sourceOrClose(source, pool.Close, err)
	}
}

// sourceOrClose releases the connections right away when the source could not be built on top of them.
func sourceOrClose(source catalog.RecordSource, closeSource func(), err error) (catalog.RecordSource, func(), error) {
	if err != nil {
		closeSource()
		return nil, func() {}, err
	}

	return source, closeSource, nil
}
