// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/medora/internal/platform/apperr"
)

// PostgreSQL SQLSTATE codes translated by [Wrap].
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
	CodeCheckViolation      = "23514"
	CodeInvalidTextRep      = "22P02"
)

// ErrNotFound is the generic error returned when a queried row doesn't exist.
var ErrNotFound = apperr.NotFound("Resource")

// Wrap inspects a database error and converts it into an [apperr.AppError].
// Errors that already are AppErrors pass through untouched.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if apperr.As(err) != nil {
		return err
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Constraint mapping
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case CodeUniqueViolation:
			return conflictFor(pgErr)
		case CodeForeignKeyViolation:
			return apperr.NotFound("Referenced record")
		case CodeCheckViolation, CodeInvalidTextRep:
			return apperr.ValidationError("Invalid value")
		}
	}

	// 3. Everything else is a server fault; the action names where it happened.
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// IsUniqueViolation reports whether err is a unique-constraint failure.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == CodeUniqueViolation
}

func conflictFor(pgErr *pgconn.PgError) *apperr.AppError {
	switch pgErr.ConstraintName {
	case "users_email_key", "employees_email_key":
		return apperr.Conflict("Email is already registered")
	case "employees_employee_id_key":
		return apperr.Conflict("Employee ID already allocated")
	default:
		return apperr.Conflict("Record already exists")
	}
}
