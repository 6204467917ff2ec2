package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/airops/config"
	"github.com/Domenick1991/airops/internal/apperrors"
	"github.com/Domenick1991/airops/internal/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresDB owns the process-wide connection pool.
type PostgresDB struct {
	Pool *pgxpool.Pool
}

// Connect opens the pool and pings it. Any failure is a connectivity error.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*PostgresDB, error) {
	timeout := time.Duration(cfg.ConnectTimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgxpool config: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.MaxConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, apperrors.NewConnectivityError(fmt.Sprintf("Error - Unable to Connect to Database: %v", err), err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, apperrors.NewConnectivityError(fmt.Sprintf("Error - Unable to Connect to Database: %v", err), err)
	}

	return &PostgresDB{Pool: pool}, nil
}

func (db *PostgresDB) Close() {
	if db != nil && db.Pool != nil {
		db.Pool.Close()
	}
}

// TransactionFn is a function that executes within a transaction
type TransactionFn func(ctx context.Context, tx pgx.Tx) error

// WithTransaction runs fn in one transaction, committing on success and
// rolling back on error or panic.
func (db *PostgresDB) WithTransaction(ctx context.Context, fn TransactionFn) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	return runInTx(ctx, tx, fn)
}

// runInTx runs fn on an open transaction and finishes it. A failed rollback
// is joined to fn's error, so both stay matchable with errors.Is.
func runInTx(ctx context.Context, tx pgx.Tx, fn TransactionFn) error {
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
