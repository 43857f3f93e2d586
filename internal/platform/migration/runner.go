// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration wraps golang-migrate for applying the SQL schema under
// data/migrations. The API applies pending migrations at startup; the admin
// CLI exposes the same runner for operators.
package migration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers "pgx5" scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// file source reads .sql files from disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// RunUp applies all pending UP migrations.
func RunUp(dsn string, migrationsPath string, logger *zap.Logger) error {
	migrator, err := migrate.New("file://"+migrationsPath, ToPgx5DSN(dsn))
	if err != nil {
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}
	defer func() {
		sourceErr, dbErr := migrator.Close()
		if sourceErr != nil {
			logger.Error("migration_source_close_failed", zap.Error(sourceErr))
		}
		if dbErr != nil {
			logger.Error("migration_db_close_failed", zap.Error(dbErr))
		}
	}()

	migrator.Log = &zapMigrateLogger{logger: logger.Sugar()}

	fromVersion, dirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration: failed to get current version: %w", err)
	}
	if dirty {
		return fmt.Errorf("migration: database is dirty at version %d (manual intervention required)", fromVersion)
	}

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migration_up_to_date", zap.Uint("version", fromVersion))
			return nil
		}
		return fmt.Errorf("migration: up failed: %w", err)
	}

	toVersion, _, _ := migrator.Version()
	logger.Info("migration_applied",
		zap.Uint("from_version", fromVersion),
		zap.Uint("to_version", toVersion),
	)

	return nil
}

// ToPgx5DSN rewrites postgres:// and postgresql:// URLs to the pgx5:// scheme.
func ToPgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// zapMigrateLogger adapts golang-migrate's logger interface to zap.
type zapMigrateLogger struct {
	logger *zap.SugaredLogger
}

func (l *zapMigrateLogger) Printf(format string, args ...any) {
	l.logger.Debugf(strings.TrimSuffix(format, "\n"), args...)
}

func (l *zapMigrateLogger) Verbose() bool { return false }
