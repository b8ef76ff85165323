// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/ludquiz-hash/visiocaret-sub000/internal/logging"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/monitoring"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/tracing"
)

const defaultTxTimeout = 30 * time.Second

type lazyTxContextKey struct{}

type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	TracingEnabled  bool
}

// lazyTx defers BEGIN until the first statement runs inside WithTx.
type lazyTx struct {
	db        *sql.DB
	tx        TxInterface
	committed bool
	cancel    context.CancelFunc
	err       error
}

func (lt *lazyTx) get() (TxInterface, error) {
	if lt.tx != nil {
		return lt.tx, nil
	}

	if lt.err != nil {
		return nil, lt.err
	}

	// detached from the caller context so a cancelled request does not roll back a commit
	// that is already in flight
	ctx, cancel := context.WithTimeout(context.Background(), defaultTxTimeout)
	tx, err := lt.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		cancel()
		lt.err = fmt.Errorf("failed to begin transaction: %w", err)
		return nil, lt.err
	}

	lt.tx = tx
	lt.cancel = cancel
	return tx, nil
}

func (lt *lazyTx) started() bool {
	return lt.tx != nil
}

type DBClient struct {
	pool     *pgxpool.Pool
	db       *sql.DB
	dbRunner sq.BaseRunner

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// failedRunner answers every statement with the error that prevented the transaction from starting.
type failedRunner struct {
	err error
}

func (r failedRunner) Exec(string, ...interface{}) (sql.Result, error) { return nil, r.err }

func (r failedRunner) Query(string, ...interface{}) (*sql.Rows, error) { return nil, r.err }

func (r failedRunner) QueryRow(string, ...interface{}) sq.RowScanner { return failedRow(r) }

func (r failedRunner) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, r.err
}

func (r failedRunner) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, r.err
}

func (r failedRunner) QueryRowContext(context.Context, string, ...interface{}) sq.RowScanner {
	return failedRow(r)
}

type failedRow struct {
	err error
}

func (r failedRow) Scan(...interface{}) error { return r.err }

// Statement returns a dollar-placeholder builder bound to the transaction in ctx, if any,
// otherwise to the pool. Statements inside a transaction that failed to begin never reach the pool.
func (d *DBClient) Statement(ctx context.Context) sq.StatementBuilderType {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	if lt, ok := ctx.Value(lazyTxContextKey{}).(*lazyTx); ok {
		tx, err := lt.get()
		if err != nil {
			d.logger.Errorf("statement not run: %v", err)
			return builder.RunWith(failedRunner{err: err})
		}
		return builder.RunWith(tx)
	}

	return builder.RunWith(d.dbRunner)
}

// WithTx runs fn in a transaction that is only opened if fn touches the database.
// It commits when fn returns nil and rolls back otherwise.
func (d *DBClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	lt := &lazyTx{db: d.db}
	txCtx := context.WithValue(ctx, lazyTxContextKey{}, lt)

	defer func() {
		if lt.started() && !lt.committed {
			if err := lt.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
				d.logger.Errorf("failed to rollback transaction: %v", err)
			}
		}
		if lt.cancel != nil {
			lt.cancel()
		}
	}()

	if err := fn(txCtx); err != nil {
		return err
	}

	if lt.err != nil {
		return lt.err
	}

	if !lt.started() {
		return nil
	}

	if err := lt.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	lt.committed = true

	return nil
}

func (d *DBClient) Ping(ctx context.Context) error {
	ctx, span := d.tracer.Start(ctx, "db.DBClient.Ping")
	defer span.End()

	err := d.db.PingContext(ctx)

	available := 1.0
	if err != nil {
		available = 0
	}
	if mErr := d.monitor.SetDependencyAvailability(map[string]string{"component": "database"}, available); mErr != nil {
		d.logger.Debugf("failed to set database availability metric: %v", mErr)
	}

	return err
}

func (d *DBClient) Close() {
	if d.db != nil {
		_ = d.db.Close()
	}

	if d.pool != nil {
		d.pool.Close()
	}
}

// NewDBClient opens a pgx pool and exposes it through database/sql for squirrel.
func NewDBClient(cfg Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*DBClient, error) {
	config, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("invalid DSN: %w", err)
	}

	if cfg.TracingEnabled {
		config.ConnConfig.Tracer = otelpgx.NewTracer()
	}

	config.MaxConns = cfg.MaxConns
	config.MinConns = cfg.MinConns
	config.MaxConnLifetime = cfg.MaxConnLifetime
	config.MaxConnLifetimeJitter = cfg.MaxConnLifetime / 10
	config.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create db pool: %w", err)
	}

	if cfg.TracingEnabled {
		if err := otelpgx.RecordStats(pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to start metrics collection for database: %w", err)
		}
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	if err := sqlDB.Ping(); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	return newDBClient(pool, sqlDB, tracer, monitor, logger), nil
}

func newDBClient(pool *pgxpool.Pool, sqlDB *sql.DB, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *DBClient {
	return &DBClient{
		pool:     pool,
		db:       sqlDB,
		dbRunner: sqlDB,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}
