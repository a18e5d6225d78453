package main

// Run database migrations:
//   go run ./cmd/migrate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"resume-o-matic/internal/shared/config"
	"resume-o-matic/internal/shared/storage/db"
	"resume-o-matic/internal/shared/telemetry"
)

var rootCmd = &cobra.Command{
	Use:          "migrate",
	Short:        "Apply database migrations for the configured DB_DRIVER",
	SilenceUsage: true,
	RunE:         runMigrate,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	if err := telemetry.Init(cfg.Env); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer telemetry.Sync()

	if cfg.DBDriver == "memory" {
		return fmt.Errorf("DB_DRIVER=memory has nothing to migrate")
	}
	dialect, err := db.ParseDialect(cfg.DBDriver)
	if err != nil {
		return err
	}
	dsn := cfg.DatabaseURL
	if dialect == db.DialectSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return fmt.Errorf("create sqlite dir: %w", err)
		}
		dsn = db.SQLiteDSN(cfg.SQLitePath)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	sqlDB, err := db.Connect(ctx, dialect, dsn, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB, dialect); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	telemetry.Info("migrations applied", map[string]any{"dialect": string(dialect)})
	return nil
}
