// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the common interface implemented by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB is a [Querier] that can also open transactions.
type DB interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Builder returns a squirrel statement builder using PostgreSQL placeholders.
func Builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// RunInTx executes fn within a database transaction.
// Isolation level: Read Committed (PostgreSQL default).
//
//   - On success: commits.
//   - On error from fn: rolls back and returns the error unchanged.
//   - On panic from fn: rolls back and re-panics.
//
// The connection is released on every path.
func RunInTx(ctx context.Context, db DB, fn func(tx pgx.Tx) error) (err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		// A cancelled request context must not prevent the rollback.
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil {
			return fmt.Errorf("rollback failed: %w (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// WithSavepoint runs fn inside a nested transaction (SAVEPOINT) on tx.
// A failure rolls back to the savepoint only; the outer transaction stays usable.
func WithSavepoint(ctx context.Context, tx pgx.Tx, fn func(sp pgx.Tx) error) error {
	savepoint, err := tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("create savepoint: %w", err)
	}

	if err := fn(savepoint); err != nil {
		if rbErr := savepoint.Rollback(context.WithoutCancel(ctx)); rbErr != nil {
			return fmt.Errorf("rollback to savepoint failed: %w (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := savepoint.Commit(ctx); err != nil {
		return fmt.Errorf("release savepoint: %w", err)
	}

	return nil
}
