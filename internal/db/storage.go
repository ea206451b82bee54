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

	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/monitoring"
	"github.com/canonical/compliance-service/internal/tracing"
)

// requestTxTimeout bounds a request transaction independently of the request context,
// so a client hanging up mid-write does not roll back a membership change half way.
const requestTxTimeout = 60 * time.Second

var txOptions = &sql.TxOptions{Isolation: sql.LevelReadCommitted}

type pendingTxKey struct{}

type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	TracingEnabled  bool
}

// pendingTx is a transaction that only opens on the first statement issued inside WithTx.
type pendingTx struct {
	db     *sql.DB
	tx     TxInterface
	done   bool
	cancel context.CancelFunc
}

func (p *pendingTx) open() (TxInterface, error) {
	if p.tx != nil {
		return p.tx, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTxTimeout)
	tx, err := p.db.BeginTx(ctx, txOptions)
	if err != nil {
		cancel()
		return nil, err
	}

	p.tx = tx
	p.cancel = cancel

	return tx, nil
}

func (p *pendingTx) finish(commit bool) error {
	defer func() {
		if p.cancel != nil {
			p.cancel()
		}
	}()

	if p.tx == nil || p.done {
		return nil
	}

	p.done = true

	if commit {
		return p.tx.Commit()
	}

	if err := p.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}

	return nil
}

func pendingTxFrom(ctx context.Context) *pendingTx {
	p, _ := ctx.Value(pendingTxKey{}).(*pendingTx)
	return p
}

// DBClient hands out squirrel builders bound either to the pool or to the
// transaction carried by the context.
type DBClient struct {
	pool *pgxpool.Pool
	db   *sql.DB

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (d *DBClient) builder(runner sq.BaseRunner) sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).RunWith(runner)
}

// Statement returns a builder for ctx. Inside WithTx the first call opens the transaction;
// if that fails the statement runs outside of it and the failure is logged.
func (d *DBClient) Statement(ctx context.Context) sq.StatementBuilderType {
	p := pendingTxFrom(ctx)
	if p == nil {
		return d.builder(d.db)
	}

	tx, err := p.open()
	if err != nil {
		d.logger.Errorf("failed to open transaction: %v", err)
		return d.builder(d.db)
	}

	return d.builder(tx)
}

// WithTx runs fn so that every Statement issued with the derived context shares one transaction.
// Nothing is opened unless fn touches the database. An error from fn rolls back, otherwise the
// transaction commits. Nested calls join the outer transaction.
func (d *DBClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	if pendingTxFrom(ctx) != nil {
		return fn(ctx)
	}

	p := &pendingTx{db: d.db}

	if err := fn(context.WithValue(ctx, pendingTxKey{}, p)); err != nil {
		if rbErr := p.finish(false); rbErr != nil {
			d.logger.Errorf("failed to rollback transaction: %v", rbErr)
		}
		return err
	}

	if err := p.finish(true); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (d *DBClient) Ping(ctx context.Context) error {
	ctx, span := d.tracer.Start(ctx, "db.DBClient.Ping")
	defer span.End()

	if err := d.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

func (d *DBClient) Close() {
	if d.db != nil {
		_ = d.db.Close()
	}

	if d.pool != nil {
		d.pool.Close()
	}
}

func poolConfig(cfg Config) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("invalid database DSN: %w", err)
	}

	if cfg.TracingEnabled {
		pc.ConnConfig.Tracer = otelpgx.NewTracer()
	}

	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		pc.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		pc.MaxConnLifetime = cfg.MaxConnLifetime
		pc.MaxConnLifetimeJitter = cfg.MaxConnLifetime / 10
	}
	if cfg.MaxConnIdleTime > 0 {
		pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	}

	return pc, nil
}

// NewDBClient opens a pgx pool for cfg and verifies it answers before returning.
func NewDBClient(cfg Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*DBClient, error) {
	pc, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), pc)
	if err != nil {
		return nil, fmt.Errorf("failed to create db pool: %w", err)
	}

	if cfg.TracingEnabled {
		if err := otelpgx.RecordStats(pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to record database pool stats: %w", err)
		}
	}

	d := new(DBClient)
	d.pool = pool
	d.db = stdlib.OpenDBFromPool(pool)
	d.tracer = tracer
	d.monitor = monitor
	d.logger = logger

	if err := d.db.Ping(); err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	logger.Debugf("database pool ready, max conns %d", pc.MaxConns)

	return d, nil
}
