// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/tagbook/internal/platform/apperr"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// resource names the row being touched ("Entry", "Tag") and action the
// operation, which ends up in the logged cause only.
func Wrap(err error, resource, action string) error {
	if err == nil {
		return nil
	}

	// Errors that were already classified pass through unchanged.
	if apperr.IsAppError(err) {
		return err
	}

	cause := fmt.Errorf("postgres: %s: %w", action, err)

	// Deadlines and cancellations are storage failures, never "not found".
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperr.Internal(cause)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return withCause(apperr.NotFound(resource), cause)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return withCause(apperr.Conflict(resource+" already exists"), cause)
		case pgerrcode.ForeignKeyViolation:
			return withCause(apperr.NotFound(resource), cause)
		case pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
			return withCause(apperr.ValidationError("bad format"), cause)
		case pgerrcode.InvalidTextRepresentation:
			// A malformed uuid can never match a row.
			return withCause(apperr.NotFound(resource), cause)
		case pgerrcode.QueryCanceled:
			return apperr.Internal(cause)
		}
	}

	return apperr.Internal(cause)
}

// IsUniqueViolation reports whether err is a PostgreSQL unique_violation,
// optionally restricted to a named constraint or index.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != pgerrcode.UniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

func withCause(appErr *apperr.AppError, cause error) *apperr.AppError {
	appErr.Cause = cause
	return appErr
}
