package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver

	"github.com/iguene/Bibliovirtuelle/eventstore/memengine"
	"github.com/iguene/Bibliovirtuelle/eventstore/postgresengine"
	"github.com/iguene/Bibliovirtuelle/lending/shared/shell"
	"github.com/iguene/Bibliovirtuelle/migrations"
)

const (
	defaultMaxConnLifetime   = time.Hour
	defaultMaxConnIdleTime   = time.Minute * 5
	defaultHealthCheckPeriod = time.Minute
	defaultConnectTimeout    = time.Second * 5
)

// ErrUnknownAdapterType is returned for an ADAPTER_TYPE other than pgx.pool, sql.db or sqlx.db.
var ErrUnknownAdapterType = errors.New("unknown adapter type")

// PostgresPGXPoolConfig creates a pgxpool.Config for DatabaseURL.
func (c Config) PostgresPGXPoolConfig() (*pgxpool.Config, error) {
	dbConfig, err := pgxpool.ParseConfig(c.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing DATABASE_URL: %w", err)
	}

	dbConfig.MaxConns = int32(c.DBMaxConns) //nolint:gosec // validated small
	dbConfig.MinConns = min(2, dbConfig.MaxConns)
	dbConfig.MaxConnLifetime = defaultMaxConnLifetime
	dbConfig.MaxConnIdleTime = defaultMaxConnIdleTime
	dbConfig.HealthCheckPeriod = defaultHealthCheckPeriod
	dbConfig.ConnConfig.ConnectTimeout = defaultConnectTimeout

	return dbConfig, nil
}

// NewPGXPool opens and pings a pgx pool.
func (c Config) NewPGXPool(ctx context.Context) (*pgxpool.Pool, error) {
	dbConfig, err := c.PostgresPGXPoolConfig()
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, dbConfig)
	if err != nil {
		return nil, fmt.Errorf("creating pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return pool, nil
}

// NewSQLDB opens and pings a database/sql pool on the lib/pq driver.
func (c Config) NewSQLDB(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("postgres", c.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	configureSQLPool(db, c.DBMaxConns)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

// NewSQLX opens and pings a sqlx pool on the lib/pq driver.
func (c Config) NewSQLX(ctx context.Context) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", c.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	configureSQLPool(db.DB, c.DBMaxConns)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func configureSQLPool(db *sql.DB, maxConns int) {
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(max(1, maxConns/4))
	db.SetConnMaxLifetime(defaultMaxConnLifetime)
	db.SetConnMaxIdleTime(defaultMaxConnIdleTime)
}

// NewEventStore builds the configured event store. The returned close function releases its connections.
// For Postgres the schema is migrated first when MigrateOnStart is set; migrations always run over pgx,
// since they hold an advisory lock on one connection.
func (c Config) NewEventStore(
	ctx context.Context,
	pgOptions []postgresengine.Option,
	memOptions []memengine.Option,
) (shell.EventStore, func(), error) {
	if c.EventStore == StoreMemory {
		return memengine.NewEventStore(memOptions...), func() {}, nil
	}

	if c.MigrateOnStart {
		if err := c.migrate(ctx); err != nil {
			return nil, nil, err
		}
	}

	switch c.AdapterType {
	case AdapterPGXPool:
		pool, err := c.NewPGXPool(ctx)
		if err != nil {
			return nil, nil, err
		}

		store, err := postgresengine.NewEventStoreFromPGXPool(pool, pgOptions...)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}

		return store, pool.Close, nil

	case AdapterSQLDB:
		db, err := c.NewSQLDB(ctx)
		if err != nil {
			return nil, nil, err
		}

		store, err := postgresengine.NewEventStoreFromSQLDB(db, pgOptions...)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		return store, func() { _ = db.Close() }, nil

	case AdapterSQLXDB:
		db, err := c.NewSQLX(ctx)
		if err != nil {
			return nil, nil, err
		}

		store, err := postgresengine.NewEventStoreFromSQLX(db, pgOptions...)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		return store, func() { _ = db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownAdapterType, c.AdapterType)
	}
}

func (c Config) migrate(ctx context.Context) error {
	pool, err := c.NewPGXPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := migrations.Apply(ctx, pool); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	return nil
}
