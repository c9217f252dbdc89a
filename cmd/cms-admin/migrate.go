package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"github.com/tendant/simple-cms/pkg/simplecms/config"
	"github.com/tendant/simple-cms/pkg/simplecms/repo/postgres"
)

// NewMigrateCommand manages the Postgres schema
func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the Postgres schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(cmd, func(ctx context.Context, pool *pgxpool.Pool, schema string) error {
				if err := config.EnsureSchema(ctx, pool, schema); err != nil {
					return err
				}
				if err := postgres.Migrate(ctx, pool); err != nil {
					return err
				}
				return printVersion(ctx, cmd, pool)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(cmd, func(ctx context.Context, pool *pgxpool.Pool, _ string) error {
				if err := postgres.MigrateDown(ctx, pool); err != nil {
					return err
				}
				return printVersion(ctx, cmd, pool)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(cmd, func(ctx context.Context, pool *pgxpool.Pool, _ string) error {
				return printVersion(ctx, cmd, pool)
			})
		},
	})

	return cmd
}

func withPool(cmd *cobra.Command, fn func(ctx context.Context, pool *pgxpool.Pool, schema string) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.DatabaseType != "postgres" {
		return errors.New("migrate requires CMS_DATABASE_URL to point at Postgres")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	pool, err := config.NewPool(ctx, cfg.DatabaseURL, cfg.DBSchema)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := config.PingPostgres(ctx, pool); err != nil {
		return err
	}
	return fn(ctx, pool, cfg.DBSchema)
}

func printVersion(ctx context.Context, cmd *cobra.Command, pool *pgxpool.Pool) error {
	v, err := postgres.MigrationVersion(ctx, pool)
	if err != nil {
		return err
	}
	if jsonOutput(cmd) {
		return printJSON(cmd, map[string]int64{"version": v})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version: %d\n", v)
	return nil
}
