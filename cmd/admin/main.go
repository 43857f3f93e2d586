// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command admin is the operator CLI for Medora.
//
// It shares configuration and wiring with the API server but talks to
// PostgreSQL directly, so it can run before the server is up:
//
//	medora-admin migrate up
//	medora-admin create-admin --email root@medora.local --password s3cret! --first-name Root
//	medora-admin seed -f deploy/seed.yaml
//	medora-admin sequence sync
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taibuivan/medora/internal/employee"
	"github.com/taibuivan/medora/internal/platform/cache"
	"github.com/taibuivan/medora/internal/platform/config"
	"github.com/taibuivan/medora/internal/platform/constants"
	"github.com/taibuivan/medora/internal/platform/logger"
	"github.com/taibuivan/medora/internal/platform/migration"
	pgstore "github.com/taibuivan/medora/internal/platform/postgres"
	redisstore "github.com/taibuivan/medora/internal/platform/redis"
	"github.com/taibuivan/medora/internal/product"
	"github.com/taibuivan/medora/internal/user"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := buildCLI().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// app is the wiring shared by every subcommand.
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	flush  func()
	pool   *pgxpool.Pool
	rdb    *goredis.Client
}

func (rt *app) Close() {
	if rt.rdb != nil {
		_ = rt.rdb.Close()
	}
	if rt.pool != nil {
		rt.pool.Close()
	}
	rt.flush()
}

// open loads configuration and, when withDB is set, connects to PostgreSQL.
func open(ctx context.Context, withDB bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	log, flush := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		JSON:   false,
		Fields: []zap.Field{zap.String("app", "medora-admin")},
	})
	rt := &app{cfg: cfg, log: log, flush: flush}
	if !withDB {
		return rt, nil
	}

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, pgstore.PoolOptions{MaxConns: cfg.DBMaxConns, MinConns: cfg.DBMinConns}, log)
	if err != nil {
		flush()
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	rt.pool = pool
	return rt, nil
}

// connectRedis is needed only by commands that change cached data.
func (rt *app) connectRedis(ctx context.Context) error {
	rdb, err := redisstore.NewClient(ctx, rt.cfg.RedisURL, rt.cfg.RedisPoolSize, rt.log)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	rt.rdb = rdb
	return nil
}

func (rt *app) users() *user.Service {
	return user.NewService(user.NewPostgresRepository(rt.pool), rt.log)
}

func (rt *app) employees() *employee.Service {
	return employee.NewService(
		employee.NewPostgresRepository(rt.pool),
		employee.NewPostgresSequence(rt.pool),
		pgstore.NewTxManager(rt.pool),
		rt.cfg.EmployeeIDPrefix,
		rt.log,
	)
}

// products shares the API's cache so new products show up in the next listing.
func (rt *app) products() *product.Service {
	return product.NewService(
		product.NewPostgresRepository(rt.pool),
		cache.New(cache.NewRedisStore(rt.rdb)),
		rt.cfg.ProductCacheTTL,
		nil,
		rt.log,
	)
}

func buildCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "medora-admin",
		Short:         "Medora operator tooling",
		Version:       constants.AppVersion,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(buildMigrateCommand())
	rootCmd.AddCommand(buildCreateAdminCommand())
	rootCmd.AddCommand(buildSeedCommand())
	rootCmd.AddCommand(buildSequenceCommand())

	return rootCmd
}

func buildMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := open(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer rt.Close()
			return migration.RunUp(rt.cfg.DatabaseURL, rt.cfg.MigrationPath, rt.log)
		},
	})
	return cmd
}

func buildCreateAdminCommand() *cobra.Command {
	var input user.RegisterInput

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := open(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer rt.Close()

			admin, err := rt.users().CreateAdmin(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", admin.Email, admin.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Email, "email", "", "admin email")
	cmd.Flags().StringVar(&input.Password, "password", "", "admin password")
	cmd.Flags().StringVar(&input.FirstName, "first-name", "Admin", "first name")
	cmd.Flags().StringVar(&input.LastName, "last-name", "", "last name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func buildSeedCommand() *cobra.Command {
	var seedPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load admins, employees and products from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(seedPath)
			if err != nil {
				return fmt.Errorf("open seed file: %w", err)
			}
			defer f.Close()

			file, err := decodeSeed(f)
			if err != nil {
				return err
			}

			rt, err := open(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer rt.Close()
			if err := rt.connectRedis(cmd.Context()); err != nil {
				return err
			}

			s := &seeder{admins: rt.users(), employees: rt.employees(), products: rt.products(), logger: rt.log}
			report, err := s.Apply(cmd.Context(), file)
			fmt.Fprintf(cmd.OutOrStdout(), "admins=%d employees=%d products=%d skipped=%d\n",
				report.Admins, report.Employees, report.Products, report.Skipped)
			return err
		},
	}

	cmd.Flags().StringVarP(&seedPath, "file", "f", "", "seed YAML file")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func buildSequenceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sequence",
		Short: "Inspect or repair the employee ID counter",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "sync",
		Short: "Set the counter to the highest allocated employee ID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := open(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer rt.Close()

			highest, err := rt.employees().HighestAllocated(cmd.Context())
			if err != nil {
				return err
			}
			if err := employee.NewPostgresSequence(rt.pool).Set(cmd.Context(), highest); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "employee counter set to %d (next %s)\n",
				highest, employee.FormatEmployeeID(rt.cfg.EmployeeIDPrefix, highest+1))
			return nil
		},
	})
	return cmd
}
