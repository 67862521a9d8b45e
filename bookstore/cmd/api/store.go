package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AntonStoeckl/bookstore/bookstore/shared/shell/config"
	"github.com/AntonStoeckl/bookstore/bookstore/transport/httpapi"
	"github.com/AntonStoeckl/bookstore/store/memengine"
	"github.com/AntonStoeckl/bookstore/store/postgresengine"
)

// openStore creates the configured storage engine and migrates its schema.
// The returned function releases its connections.
func openStore(ctx context.Context, cfg config.AppConfig, logger *slog.Logger, obs observability) (httpapi.Store, func(), error) {
	if cfg.StoreEngine == config.EngineMemory {
		logger.Warn("using the in-memory store, nothing will be persisted")
		return memengine.NewStore(memengine.WithLogger(logger)), func() {}, nil
	}

	options := append([]postgresengine.Option{
		postgresengine.WithSchemaName(cfg.PostgresSchema),
		postgresengine.WithLogger(logger),
	}, obs.storeOptions()...)

	var (
		bookstore postgresengine.Store
		closeDB   func()
		err       error
	)

	switch cfg.DBAdapter {
	case config.AdapterSQLDB:
		bookstore, closeDB, err = openSQLDB(ctx, cfg, options)
	case config.AdapterSQLXDB:
		bookstore, closeDB, err = openSQLX(ctx, cfg, options)
	default:
		bookstore, closeDB, err = openPGXPool(ctx, cfg, options)
	}

	if err != nil {
		return nil, nil, err
	}

	if err = bookstore.Migrate(ctx); err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("migrating schema %q: %w", cfg.PostgresSchema, err)
	}

	logger.Info("postgres store ready", slog.String("adapter", cfg.DBAdapter), slog.Bool("replica", cfg.PostgresReplicaDSN != ""))

	return bookstore, closeDB, nil
}

func openPGXPool(ctx context.Context, cfg config.AppConfig, options []postgresengine.Option) (postgresengine.Store, func(), error) {
	primary, err := newPGXPool(ctx, cfg.PostgresDSN)
	if err != nil {
		return postgresengine.Store{}, nil, fmt.Errorf("primary: %w", err)
	}

	if cfg.PostgresReplicaDSN == "" {
		bookstore, storeErr := postgresengine.NewStoreFromPGXPool(primary, options...)
		if storeErr != nil {
			primary.Close()
			return postgresengine.Store{}, nil, storeErr
		}

		return bookstore, primary.Close, nil
	}

	replica, err := newPGXPool(ctx, cfg.PostgresReplicaDSN)
	if err != nil {
		primary.Close()
		return postgresengine.Store{}, nil, fmt.Errorf("replica: %w", err)
	}

	closeBoth := func() {
		replica.Close()
		primary.Close()
	}

	bookstore, err := postgresengine.NewStoreFromPGXPoolAndReplica(primary, replica, options...)
	if err != nil {
		closeBoth()
		return postgresengine.Store{}, nil, err
	}

	return bookstore, closeBoth, nil
}

func newPGXPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolConfig, err := config.PostgresPGXPoolConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

func openSQLDB(ctx context.Context, cfg config.AppConfig, options []postgresengine.Option) (postgresengine.Store, func(), error) {
	db, err := config.PostgresSQLDB(ctx, cfg.PostgresDSN)
	if err != nil {
		return postgresengine.Store{}, nil, err
	}

	closeDB := func() { _ = db.Close() }

	bookstore, err := postgresengine.NewStoreFromSQLDB(db, options...)
	if err != nil {
		closeDB()
		return postgresengine.Store{}, nil, err
	}

	return bookstore, closeDB, nil
}

func openSQLX(ctx context.Context, cfg config.AppConfig, options []postgresengine.Option) (postgresengine.Store, func(), error) {
	db, err := config.PostgresSQLX(ctx, cfg.PostgresDSN)
	if err != nil {
		return postgresengine.Store{}, nil, err
	}

	closeDB := func() { _ = db.Close() }

	bookstore, err := postgresengine.NewStoreFromSQLX(db, options...)
	if err != nil {
		closeDB()
		return postgresengine.Store{}, nil, err
	}

	return bookstore, closeDB, nil
}
