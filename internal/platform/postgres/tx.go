// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// # Query Surface

// Queryer is satisfied by [pgxpool.Pool], [pgx.Tx] and pgxmock pools.
type Queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// TxBeginner starts transactions. [pgxpool.Pool] implements it.
type TxBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type txKey struct{}

// QueryerFromContext returns the transaction carried by ctx, or fallback when none is open.
func QueryerFromContext(ctx context.Context, fallback Queryer) Queryer {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return fallback
}

// # Transaction Manager

// TxManager runs functions inside a single database transaction.
//
// Nested calls reuse the outer transaction, so a service can compose
// repository calls without knowing whether a caller already opened one.
type TxManager struct {
	beginner TxBeginner
}

// ReadWriteTx is the option set every [TxManager] transaction begins with.
var ReadWriteTx = pgx.TxOptions{AccessMode: pgx.ReadWrite}

// NewTxManager constructs a [TxManager] over a pool.
func NewTxManager(beginner TxBeginner) *TxManager {
	return &TxManager{beginner: beginner}
}

// WithinTx executes fn in a read-write transaction and commits when fn returns nil.
func (manager *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := manager.beginner.BeginTx(ctx, ReadWriteTx)
	if err != nil {
		return fmt.Errorf("postgres: begin tx: %w", err)
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return errors.Join(err, fmt.Errorf("postgres: rollback: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

// NoTx runs fn directly. Services use it in tests and in tools without a pool.
type NoTx struct{}

// WithinTx implements the transactor contract without a transaction.
func (NoTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
