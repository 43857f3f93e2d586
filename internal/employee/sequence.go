// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package employee

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/medora/internal/platform/apperr"
	"github.com/taibuivan/medora/internal/platform/dberr"
	"github.com/taibuivan/medora/internal/platform/postgres"
)

// SequenceName is the counter row backing employee codes.
const SequenceName = "employee"

// Sequence hands out strictly increasing employee numbers.
type Sequence interface {
	Next(ctx context.Context) (int64, error)
}

const (
	queryNextSequence = `
		UPDATE sequences SET value = value + 1
		WHERE name = $1
		RETURNING value`

	querySetSequence = `
		INSERT INTO sequences (name, value) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value`
)

// PostgresSequence increments a row in the sequences table.
//
// Callers run Next inside the transaction that inserts the employee, so the
// row lock serializes concurrent creations and a rollback releases the number.
type PostgresSequence struct {
	db   postgres.Queryer
	name string
}

// NewPostgresSequence returns the employee counter.
func NewPostgresSequence(db postgres.Queryer) *PostgresSequence {
	return &PostgresSequence{db: db, name: SequenceName}
}

// Next increments the counter and returns the new value.
func (sequence *PostgresSequence) Next(ctx context.Context) (int64, error) {
	var value int64
	err := postgres.QueryerFromContext(ctx, sequence.db).QueryRow(ctx, queryNextSequence, sequence.name).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, apperr.Internal(fmt.Errorf("sequence %q is not initialised", sequence.name))
	}
	if err != nil {
		return 0, dberr.Wrap(err, "next_employee_sequence")
	}
	return value, nil
}

// Set overwrites the counter. Used by the admin CLI to repair drift.
func (sequence *PostgresSequence) Set(ctx context.Context, value int64) error {
	_, err := postgres.QueryerFromContext(ctx, sequence.db).Exec(ctx, querySetSequence, sequence.name, value)
	return dberr.Wrap(err, "set_employee_sequence")
}

// # Codes

// FormatEmployeeID renders n as PREFIX-NNN. Numbers past 999 keep all digits.
func FormatEmployeeID(prefix string, n int64) string {
	return fmt.Sprintf("%s-%03d", prefix, n)
}

// MaxSuffix returns the largest numeric suffix among ids, ignoring malformed ones.
func MaxSuffix(ids []string) int64 {
	var highest int64
	for _, id := range ids {
		index := strings.LastIndex(id, "-")
		if index < 0 {
			continue
		}
		n, err := strconv.ParseInt(id[index+1:], 10, 64)
		if err != nil || n < 0 {
			continue
		}
		highest = max(highest, n)
	}
	return highest
}
